package lexer

import (
	"fmt"
	"math/big"
)

// Kind represents the type of token in Lilt
type Kind int

const (
	// Special tokens
	EOF Kind = iota

	// Literals and identifiers
	IDENT  // foo, bar_2
	INT    // 42, arbitrary precision
	STRING // 'single' or "double" quoted

	// Keywords
	AND  // and
	DEF  // def
	ELSE // else
	IF   // if
	LET  // let
	OR   // or
	THEN // then

	// Symbols
	PLUS   // +
	MINUS  // -
	EQUALS // =
	ARROW  // ->
	COMMA  // ,
	LPAREN // (
	RPAREN // )

	// SEMICOLON is lexable as a literal ';' but Lilt source has no visible
	// semicolons; in practice the preparser is the only producer, inserting
	// it between expression-statements at the same indentation level.
	SEMICOLON

	// Synthetic tokens, inserted by the preparser
	IN    // closes the value of a 'let' binding
	ENDIF // closes a conditional
)

// Pre-computed token name lookup for fast debugging
var kindNames = [...]string{
	EOF:       "EOF",
	IDENT:     "IDENT",
	INT:       "INT",
	STRING:    "STRING",
	AND:       "AND",
	DEF:       "DEF",
	ELSE:      "ELSE",
	IF:        "IF",
	LET:       "LET",
	OR:        "OR",
	THEN:      "THEN",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	EQUALS:    "EQUALS",
	ARROW:     "ARROW",
	COMMA:     "COMMA",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	SEMICOLON: "SEMICOLON",
	IN:        "IN",
	ENDIF:     "ENDIF",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && int(k) >= 0 {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is one of the fixed keywords.
func (k Kind) IsKeyword() bool {
	switch k {
	case AND, DEF, ELSE, IF, LET, OR, THEN:
		return true
	default:
		return false
	}
}

// IsSynthetic reports whether the kind is only ever produced by the
// preparser, never written by the user.
func (k Kind) IsSynthetic() bool {
	switch k {
	case IN, ENDIF:
		return true
	default:
		return false
	}
}

// Keywords maps lexemes to their keyword token kinds. A lexeme is a keyword
// only on an exact match; anything else is an identifier.
var Keywords = map[string]Kind{
	"and":  AND,
	"def":  DEF,
	"else": ELSE,
	"if":   IF,
	"let":  LET,
	"or":   OR,
	"then": THEN,
}

// Position represents a position in the source code
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// SourceSpan represents a source region. End points one past the last
// character of the token; synthetic tokens are zero-width.
type SourceSpan struct {
	Start Position
	End   Position
}

// Token represents a single lexical unit. Tokens are immutable once
// produced by the scanner or preparser.
type Token struct {
	Kind Kind
	Text string // raw lexeme; empty for synthetic tokens and EOF
	Span SourceSpan

	// Indent is the count of leading space characters on the line this
	// token appears on, the input the preparser's unwind rules run on.
	Indent int

	// Decoded payloads. StringValue holds the decoded body of a STRING
	// token; IntValue holds the full-precision value of an INT token and
	// must not be mutated.
	StringValue string
	IntValue    *big.Int
}

// Position returns a formatted position string for error reporting
func (t Token) Position() string {
	return t.Span.Start.String()
}

func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
