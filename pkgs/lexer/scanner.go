package lexer

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	lilterrors "github.com/liltlang/lilt/pkgs/errors"
)

// ASCII character lookup tables for fast classification
var (
	isDigit         [128]bool
	isIdentStart    [128]bool
	isIdentPart     [128]bool
	singleCharKinds [128]Kind
	isSingleChar    [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}

	// Single character token mappings. '-' is absent: it needs lookahead
	// to distinguish MINUS from ARROW.
	for ch, kind := range map[byte]Kind{
		'+': PLUS,
		'=': EQUALS,
		',': COMMA,
		'(': LPAREN,
		')': RPAREN,
		';': SEMICOLON,
	} {
		singleCharKinds[ch] = kind
		isSingleChar[ch] = true
	}
}

// Scanner converts UTF-8 source text into a lazy stream of raw tokens,
// tracking line, column and per-line indentation. It is single-pass and
// restartable only by constructing a new Scanner; after the first error
// every subsequent Next returns that same error.
type Scanner struct {
	src    string
	offset int // byte offset of next unread character
	line   int // 1-based line of next unread character
	column int // 1-based column of next unread character

	lineIndent int  // leading-space count of the current line
	freshLine  bool // true until the first token of the line is located

	err error
}

// NewScanner creates a scanner over the given source text. The full text is
// assumed resident in memory; the scanner performs no I/O.
func NewScanner(src string) *Scanner {
	return &Scanner{
		src:       src,
		line:      1,
		column:    1,
		freshLine: true,
	}
}

// Next returns the next raw token. At end of input it returns an EOF token,
// and keeps returning it on further calls.
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}

	if err := s.skipTrivia(); err != nil {
		s.err = err
		return Token{}, err
	}

	// The first token of a line fixes the line's indentation level: the
	// run of spaces before it, which is exactly column-1 because tabs are
	// rejected outright.
	if s.freshLine {
		s.lineIndent = s.column - 1
		s.freshLine = false
	}

	start := s.pos()
	if s.offset >= len(s.src) {
		return s.makeToken(EOF, start, ""), nil
	}

	ch := s.src[s.offset]
	switch {
	case ch < 128 && isIdentStart[ch]:
		return s.scanIdentifier(start), nil
	case ch < 128 && isDigit[ch]:
		return s.scanInt(start)
	case ch == '\'' || ch == '"':
		return s.scanString(start)
	case ch == '-':
		s.advance()
		if s.offset < len(s.src) && s.src[s.offset] == '>' {
			s.advance()
			return s.makeToken(ARROW, start, "->"), nil
		}
		return s.makeToken(MINUS, start, "-"), nil
	case ch < 128 && isSingleChar[ch]:
		s.advance()
		return s.makeToken(singleCharKinds[ch], start, s.src[start.Offset:s.offset]), nil
	default:
		r, _ := utf8.DecodeRuneInString(s.src[s.offset:])
		s.err = lilterrors.NewAt(lilterrors.ErrIllegalCharacter,
			fmt.Sprintf("illegal character %q", r), start.Line, start.Column)
		return Token{}, s.err
	}
}

// skipTrivia consumes spaces, newlines and '#' comments. Any other
// whitespace character is rejected: Lilt infers structure from leading
// spaces, so tabs and carriage returns have no defined width.
func (s *Scanner) skipTrivia() error {
	for s.offset < len(s.src) {
		switch ch := s.src[s.offset]; ch {
		case ' ':
			s.advance()
		case '\n':
			s.advanceLine()
		case '#':
			// Comment runs through end of line and is discarded. It does
			// not affect the indentation of any following line.
			for s.offset < len(s.src) && s.src[s.offset] != '\n' {
				s.advance()
			}
		case '\t', '\r', '\v', '\f':
			return lilterrors.NewAt(lilterrors.ErrIllegalCharacter,
				fmt.Sprintf("illegal whitespace character %q", ch), s.line, s.column)
		default:
			return nil
		}
	}
	return nil
}

func (s *Scanner) scanIdentifier(start Position) Token {
	for s.offset < len(s.src) {
		ch := s.src[s.offset]
		if ch >= 128 || !isIdentPart[ch] {
			break
		}
		s.advance()
	}

	text := s.src[start.Offset:s.offset]
	kind := IDENT
	if kw, ok := Keywords[text]; ok {
		kind = kw
	}
	return s.makeToken(kind, start, text)
}

func (s *Scanner) scanInt(start Position) (Token, error) {
	for s.offset < len(s.src) {
		ch := s.src[s.offset]
		if ch >= 128 || !isDigit[ch] {
			break
		}
		s.advance()
	}

	// A letter or underscore directly after the digits is not a new token
	// under maximal munch; it is a malformed, digit-leading identifier.
	if s.offset < len(s.src) {
		if ch := s.src[s.offset]; ch < 128 && isIdentStart[ch] {
			s.err = lilterrors.NewAt(lilterrors.ErrIllegalCharacter,
				fmt.Sprintf("identifier must not start with a digit: %q", s.src[start.Offset:s.offset+1]),
				start.Line, start.Column)
			return Token{}, s.err
		}
	}

	text := s.src[start.Offset:s.offset]
	tok := s.makeToken(INT, start, text)

	// Decoded without width truncation.
	value, ok := new(big.Int).SetString(text, 10)
	if !ok {
		// Digits-only text always parses; this is unreachable.
		s.err = lilterrors.NewAt(lilterrors.ErrIllegalCharacter,
			fmt.Sprintf("malformed integer literal %q", text), start.Line, start.Column)
		return Token{}, s.err
	}
	tok.IntValue = value
	return tok, nil
}

// scanString scans a single- or double-quoted literal. The body uses
// shortest match: each item is one ordinary character or a backslash
// escape, whose escaped character is taken literally, not interpreted.
func (s *Scanner) scanString(start Position) (Token, error) {
	quote := s.src[s.offset]
	s.advance()

	var body strings.Builder
	for {
		if s.offset >= len(s.src) {
			s.err = lilterrors.NewAt(lilterrors.ErrUnterminatedString,
				"unterminated string literal", start.Line, start.Column)
			return Token{}, s.err
		}

		ch := s.src[s.offset]
		switch {
		case ch == quote:
			s.advance()
			tok := s.makeToken(STRING, start, s.src[start.Offset:s.offset])
			tok.StringValue = body.String()
			return tok, nil
		case ch == '\n':
			s.err = lilterrors.NewAt(lilterrors.ErrUnterminatedString,
				"unterminated string literal", start.Line, start.Column)
			return Token{}, s.err
		case ch == '\\':
			escLine, escColumn := s.line, s.column
			s.advance()
			if s.offset >= len(s.src) {
				s.err = lilterrors.NewAt(lilterrors.ErrBadEscapeAtEOF,
					"escape sequence reaches end of input", escLine, escColumn)
				return Token{}, s.err
			}
			if s.src[s.offset] == '\n' {
				s.err = lilterrors.NewAt(lilterrors.ErrUnterminatedString,
					"unterminated string literal", start.Line, start.Column)
				return Token{}, s.err
			}
			_, size := utf8.DecodeRuneInString(s.src[s.offset:])
			body.WriteString(s.src[s.offset : s.offset+size])
			s.advanceBy(size)
		default:
			_, size := utf8.DecodeRuneInString(s.src[s.offset:])
			body.WriteString(s.src[s.offset : s.offset+size])
			s.advanceBy(size)
		}
	}
}

// advance consumes one single-byte character.
func (s *Scanner) advance() {
	s.offset++
	s.column++
}

// advanceBy consumes one character of the given byte width.
func (s *Scanner) advanceBy(size int) {
	s.offset += size
	s.column++
}

func (s *Scanner) advanceLine() {
	s.offset++
	s.line++
	s.column = 1
	s.freshLine = true
}

func (s *Scanner) pos() Position {
	return Position{Line: s.line, Column: s.column, Offset: s.offset}
}

func (s *Scanner) makeToken(kind Kind, start Position, text string) Token {
	return Token{
		Kind:   kind,
		Text:   text,
		Span:   SourceSpan{Start: start, End: s.pos()},
		Indent: s.lineIndent,
	}
}
