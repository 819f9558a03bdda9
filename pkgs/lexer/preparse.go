package lexer

import (
	"fmt"

	lilterrors "github.com/liltlang/lilt/pkgs/errors"
	"github.com/liltlang/lilt/pkgs/invariant"
)

// The preparser removes Lilt's layout sensitivity. It consumes the raw
// token stream and maintains a stack of indentation contexts; when a later
// line's indentation closes a context it inserts the synthetic token that
// a layout-insensitive grammar would have required the user to write:
//
//	let foo =                           LET IDENT EQUALS
//	    print("calculating foo")    =>    IDENT LPAREN STRING RPAREN
//	    "foo"                             SEMICOLON STRING IN
//	print("the value of foo is " + foo)   IDENT LPAREN ... RPAREN EOF
//
// The downstream parser never sees indentation at all.

// entryKind identifies what pushed an indentation-stack entry.
type entryKind int

const (
	entryLine    entryKind = iota // plain line-start
	entryLet                      // binding introducer
	entryIf                       // conditional introducer
	entryBracket                  // opening bracket
)

// dummyTokens is the catalog of synthetic tokens emitted when a stack entry
// is popped. Bracket entries have none. A plain line entry's SEMICOLON is
// emitted only when the entry is replaced by a statement at the same level;
// dedent and bracket/EOF unwinds drop it silently (see emitDummy).
var dummyTokens = map[entryKind]Kind{
	entryLet:  IN,
	entryIf:   ENDIF,
	entryLine: SEMICOLON,
}

// stackEntry is an indentation context. Entries live only for the duration
// of one compilation pass and are never shared outside the stack.
type stackEntry struct {
	kind   entryKind
	indent int
	line   int
	pos    Position // opener position, reported by bracket errors
}

// TokenSource is a pull-based producer of tokens terminated by EOF.
type TokenSource interface {
	Next() (Token, error)
}

// Preparser augments a raw token stream with synthetic IN, ENDIF and
// SEMICOLON tokens. Like the scanner it is pull-based and lazy: memory is
// bounded by the nesting depth of the source, not its length. The first
// error halts production; every later Next returns that same error.
type Preparser struct {
	source   TokenSource
	stack    []stackEntry
	queue    []Token
	lastLine int
	err      error
}

// NewPreparser creates a preparser over the given raw token source.
func NewPreparser(source TokenSource) *Preparser {
	invariant.NotNil(source, "source")
	return &Preparser{source: source}
}

// Next returns the next augmented token. At end of input it returns the
// EOF token, and keeps returning it on further calls.
func (p *Preparser) Next() (Token, error) {
	if p.err != nil {
		return Token{}, p.err
	}
	for len(p.queue) == 0 {
		if err := p.fill(); err != nil {
			p.err = err
			return Token{}, err
		}
	}
	tok := p.queue[0]
	p.queue = p.queue[1:]
	return tok, nil
}

// Tokenize runs the scanner and preparser over the given source text and
// collects the full augmented stream, including the trailing EOF token.
func Tokenize(src string) ([]Token, error) {
	pp := NewPreparser(NewScanner(src))
	var tokens []Token
	for {
		tok, err := pp.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// fill pulls one raw token and processes it, appending at least one token
// to the output queue unless it fails.
func (p *Preparser) fill() error {
	tok, err := p.source.Next()
	if err != nil {
		return err
	}

	switch tok.Kind {
	case RPAREN:
		err = p.processCloseBracket(tok)
	case EOF:
		err = p.processEOF(tok)
	default:
		p.processToken(tok)
	}
	if err != nil {
		return err
	}

	p.lastLine = tok.Span.Start.Line
	return nil
}

// processToken applies the same-level and dedent rules, then pushes the
// context the token introduces, if any.
func (p *Preparser) processToken(tok Token) {
	line := tok.Span.Start.Line
	first := line > p.lastLine
	if first {
		p.unwindForLine(tok)
	}

	// A plain line entry records the statement begun at this line so that
	// a later statement at the same level can emit the joining SEMICOLON.
	// Inside brackets newlines are plain whitespace, so no entry is made.
	// A line-opening `let` is the exception: the binding consumes what
	// follows it as its body, so it replaces the line's statement context
	// instead of stacking on top of one.
	if first && tok.Kind != LET && !p.topIsBracket() {
		p.push(stackEntry{kind: entryLine, indent: tok.Indent, line: line, pos: tok.Span.Start})
	}

	switch tok.Kind {
	case LET:
		p.push(stackEntry{kind: entryLet, indent: tok.Indent, line: line, pos: tok.Span.Start})
	case IF:
		p.push(stackEntry{kind: entryIf, indent: tok.Indent, line: line, pos: tok.Span.Start})
	case LPAREN:
		p.push(stackEntry{kind: entryBracket, indent: 0, line: line, pos: tok.Span.Start})
	}

	p.queue = append(p.queue, tok)
}

// unwindForLine runs the same-level and dedent rules for the first token of
// a line: entries from earlier lines at deeper indentation are closed, and
// an entry at exactly this indentation is replaced by this line's statement.
// Bracket entries pin the stack; their indentation 0 exempts them here.
func (p *Preparser) unwindForLine(tok Token) {
	line, indent := tok.Span.Start.Line, tok.Indent
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if top.line >= line || top.kind == entryBracket || top.indent < indent {
			break
		}
		p.stack = p.stack[:len(p.stack)-1]
		p.emitDummy(top, top.indent == indent, tok)
	}
}

// processCloseBracket unwinds unconditionally, regardless of indentation,
// until the matching bracket entry is consumed.
func (p *Preparser) processCloseBracket(tok Token) error {
	for {
		if len(p.stack) == 0 {
			return lilterrors.NewAt(lilterrors.ErrUnmatchedCloseBracket,
				"no matching opening bracket", tok.Span.Start.Line, tok.Span.Start.Column)
		}
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if top.kind == entryBracket {
			break
		}
		p.emitDummy(top, false, tok)
	}
	p.queue = append(p.queue, tok)
	return nil
}

// processEOF unwinds the whole remaining stack, innermost context first.
// A surviving bracket entry means its bracket is never closed.
func (p *Preparser) processEOF(tok Token) error {
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		if top.kind == entryBracket {
			return lilterrors.NewAt(lilterrors.ErrUnclosedBracketAtEOF,
				fmt.Sprintf("bracket opened at %s is never closed", top.pos),
				top.pos.Line, top.pos.Column)
		}
		p.emitDummy(top, false, tok)
	}
	invariant.Postcondition(len(p.stack) == 0, "stack must be empty at end of input")
	p.queue = append(p.queue, tok)
	return nil
}

// emitDummy appends the synthetic token for a popped entry, if it has one.
// sameLevel distinguishes the same-level replacement rule, the only pop
// that joins two expression-statements with a SEMICOLON.
func (p *Preparser) emitDummy(e stackEntry, sameLevel bool, at Token) {
	kind, ok := dummyTokens[e.kind]
	if !ok {
		return
	}
	if e.kind == entryLine && !sameLevel {
		return
	}
	start := at.Span.Start
	p.queue = append(p.queue, Token{
		Kind:   kind,
		Span:   SourceSpan{Start: start, End: start},
		Indent: at.Indent,
	})
}

func (p *Preparser) push(e stackEntry) {
	if n := len(p.stack); n > 0 {
		invariant.Invariant(e.line >= p.stack[n-1].line,
			"indentation stack must stay ordered by line: %d below %d", p.stack[n-1].line, e.line)
	}
	invariant.Precondition(e.kind != entryBracket || e.indent == 0,
		"bracket entries are pinned at indentation 0")
	p.stack = append(p.stack, e)
}

func (p *Preparser) topIsBracket() bool {
	n := len(p.stack)
	return n > 0 && p.stack[n-1].kind == entryBracket
}
