// Package parser builds Lilt expression trees from the augmented token
// stream produced by the lexer's preparser. It is a conventional
// recursive-descent parser with one function per precedence level; all
// layout sensitivity has already been resolved into synthetic IN, ENDIF
// and SEMICOLON tokens, so no backtracking is needed.
package parser

import (
	"fmt"

	"github.com/liltlang/lilt/pkgs/ast"
	lilterrors "github.com/liltlang/lilt/pkgs/errors"
	"github.com/liltlang/lilt/pkgs/invariant"
	"github.com/liltlang/lilt/pkgs/lexer"
)

// Parser walks a token slice terminated by an EOF token.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// Parse scans, preparses and parses the given source text into a single
// expression. A file with several top-level statements parses as one
// right-nested sequence expression.
func Parse(src string) (ast.Expr, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already-tokenized augmented stream.
func ParseTokens(tokens []lexer.Token) (ast.Expr, error) {
	invariant.Precondition(len(tokens) > 0 && tokens[len(tokens)-1].Kind == lexer.EOF,
		"token stream must be terminated by EOF")

	p := &Parser{tokens: tokens}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.Kind != lexer.EOF {
		return nil, p.errorAt(tok, "expected end of input, found %s", tok.Kind)
	}
	return expr, nil
}

// Precedence levels, lowest first: SEMICOLON (right), or (left),
// and (left), + and - (left), then call application and primaries.

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseSeq()
}

func (p *Parser) parseSeq() (ast.Expr, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().Kind != lexer.SEMICOLON {
		return left, nil
	}
	p.advance()
	right, err := p.parseSeq()
	if err != nil {
		return nil, err
	}
	return &ast.Binary{Op: lexer.SEMICOLON, LHS: left, RHS: right, Loc: spanOver(left, right)}, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	return p.parseBinaryLeft(p.parseAnd, lexer.OR)
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	return p.parseBinaryLeft(p.parseSum, lexer.AND)
}

func (p *Parser) parseSum() (ast.Expr, error) {
	return p.parseBinaryLeft(p.parseCall, lexer.PLUS, lexer.MINUS)
}

// parseBinaryLeft parses a left-associative run of the given operators
// over the next-tighter precedence level.
func (p *Parser) parseBinaryLeft(next func() (ast.Expr, error), ops ...lexer.Kind) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if !kindIn(tok.Kind, ops) {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: tok.Kind, LHS: left, RHS: right, Loc: spanOver(left, right)}
	}
}

// parseCall parses a primary followed by any number of argument lists:
// f(x)(y) is a call of a call.
func (p *Parser) parseCall() (ast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.current().Kind == lexer.LPAREN {
		p.advance()
		var args []ast.Expr
		if p.current().Kind != lexer.RPAREN {
			for {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.current().Kind != lexer.COMMA {
					break
				}
				p.advance()
			}
		}
		rparen, err := p.expect(lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		expr = &ast.Call{
			Callee: expr,
			Args:   args,
			Loc:    lexer.SourceSpan{Start: expr.Span().Start, End: rparen.Span.End},
		}
	}
	return expr, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.IDENT:
		p.advance()
		return &ast.Ident{Name: tok.Text, Loc: tok.Span}, nil
	case lexer.INT:
		p.advance()
		return &ast.IntLit{Value: tok.IntValue, Loc: tok.Span}, nil
	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.StringValue, Loc: tok.Span}, nil
	case lexer.LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.LET:
		return p.parseLet()
	case lexer.IF:
		return p.parseIf()
	case lexer.DEF, lexer.ARROW:
		return nil, p.errorAt(tok, "function definitions are not supported yet")
	default:
		return nil, p.errorAt(tok, "expected an expression, found %s", tok.Kind)
	}
}

// parseLet parses `let NAME = VALUE IN BODY`. The IN is synthetic,
// inserted by the preparser where the binding's layout ends.
func (p *Parser) parseLet() (ast.Expr, error) {
	letTok := p.advance()
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.EQUALS); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.IN); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{
		Name:  name.Text,
		Value: value,
		Body:  body,
		Loc:   lexer.SourceSpan{Start: letTok.Span.Start, End: body.Span().End},
	}, nil
}

// parseIf parses `if COND then THEN [else ELSE]` and consumes the
// synthetic ENDIF when the preparser has already emitted it.
func (p *Parser) parseIf() (ast.Expr, error) {
	ifTok := p.advance()
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.THEN); err != nil {
		return nil, err
	}
	thenExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	var elseExpr ast.Expr
	end := thenExpr.Span().End
	if p.current().Kind == lexer.ELSE {
		p.advance()
		elseExpr, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		end = elseExpr.Span().End
	}
	if p.current().Kind == lexer.ENDIF {
		end = p.advance().Span.End
	}

	return &ast.If{
		Cond: cond,
		Then: thenExpr,
		Else: elseExpr,
		Loc:  lexer.SourceSpan{Start: ifTok.Span.Start, End: end},
	}, nil
}

func (p *Parser) current() lexer.Token {
	return p.tokens[p.pos]
}

// advance consumes and returns the current token. The trailing EOF token
// is never consumed, so current() stays valid.
func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != lexer.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok := p.current()
	if tok.Kind != kind {
		return lexer.Token{}, p.errorAt(tok, "expected %s, found %s", kind, tok.Kind)
	}
	return p.advance(), nil
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...interface{}) error {
	return lilterrors.NewAt(lilterrors.ErrParse,
		fmt.Sprintf(format, args...), tok.Span.Start.Line, tok.Span.Start.Column)
}

func kindIn(kind lexer.Kind, kinds []lexer.Kind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

func spanOver(lhs, rhs ast.Expr) lexer.SourceSpan {
	return lexer.SourceSpan{Start: lhs.Span().Start, End: rhs.Span().End}
}
