package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *LiltError
		expected string
	}{
		{
			name:     "positioned error",
			err:      NewAt(ErrIllegalCharacter, `illegal character '$'`, 3, 7),
			expected: "ILLEGAL_CHARACTER: illegal character '$' at 3:7",
		},
		{
			name:     "plain error",
			err:      New(ErrParse, "expected an expression"),
			expected: "PARSE_ERROR: expected an expression",
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrInputRead, "failed to read program.lt", fmt.Errorf("no such file")),
			expected: "INPUT_READ_ERROR: failed to read program.lt (caused by: no such file)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewAt(ErrUnterminatedString, "unterminated string literal", 1, 5)

	if !IsErrorType(err, ErrUnterminatedString) {
		t.Errorf("expected IsErrorType to match %s", ErrUnterminatedString)
	}
	if IsErrorType(err, ErrIllegalCharacter) {
		t.Errorf("IsErrorType matched the wrong type")
	}
	if IsErrorType(fmt.Errorf("plain error"), ErrUnterminatedString) {
		t.Errorf("IsErrorType matched a non-LiltError")
	}
	if IsErrorType(nil, ErrUnterminatedString) {
		t.Errorf("IsErrorType matched nil")
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("disk unplugged")
	err := NewInputError("failed to read stdin", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause through Unwrap")
	}
	if err.GetType() != ErrInputRead {
		t.Errorf("GetType() = %q, want %q", err.GetType(), ErrInputRead)
	}
}
