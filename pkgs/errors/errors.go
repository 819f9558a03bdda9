package errors

import (
	"fmt"
)

// Error types for different categories of failures
const (
	// Input/File errors
	ErrInputRead = "INPUT_READ_ERROR"

	// Scanner errors
	ErrIllegalCharacter   = "ILLEGAL_CHARACTER"
	ErrUnterminatedString = "UNTERMINATED_STRING"
	ErrBadEscapeAtEOF     = "BAD_ESCAPE_AT_EOF"

	// Preparser errors
	ErrUnmatchedCloseBracket = "UNMATCHED_CLOSE_BRACKET"
	ErrUnclosedBracketAtEOF  = "UNCLOSED_BRACKET_AT_EOF"

	// Parser errors
	ErrParse = "PARSE_ERROR"
)

// LiltError represents a structured error with a stable type code and the
// source position of the offending token. Line and Column are 1-based; a
// zero Line means the error carries no position (e.g. input errors).
type LiltError struct {
	Type    string
	Message string
	Line    int
	Column  int
	Cause   error
}

// Error implements the error interface
func (e *LiltError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s at %d:%d", e.Type, e.Message, e.Line, e.Column)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *LiltError) Unwrap() error {
	return e.Cause
}

// New creates a new LiltError without position information
func New(errorType, message string) *LiltError {
	return &LiltError{
		Type:    errorType,
		Message: message,
	}
}

// NewAt creates a new LiltError pointing at a source position
func NewAt(errorType, message string, line, column int) *LiltError {
	return &LiltError{
		Type:    errorType,
		Message: message,
		Line:    line,
		Column:  column,
	}
}

// Wrap creates a new LiltError wrapping an existing error
func Wrap(errorType, message string, cause error) *LiltError {
	return &LiltError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewInputError creates an input-related error
func NewInputError(message string, cause error) *LiltError {
	return Wrap(ErrInputRead, message, cause)
}

// GetType returns the error type
func (e *LiltError) GetType() string {
	return e.Type
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	if liltErr, ok := err.(*LiltError); ok {
		return liltErr.Type == errorType
	}
	return false
}
