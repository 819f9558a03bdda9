// Package ast defines the expression nodes of the Lilt language.
//
// Every expression kind is its own struct carrying only the fields valid
// for that kind, populated atomically at construction; there are no
// nullable placeholder fields shared across kinds. The only genuinely
// optional field is If.Else, which is nil when the conditional has no
// else clause.
package ast

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/liltlang/lilt/pkgs/lexer"
)

// Expr is implemented by every expression variant.
type Expr interface {
	Span() lexer.SourceSpan
	exprNode()
}

// Ident is a reference to a name.
type Ident struct {
	Name string
	Loc  lexer.SourceSpan
}

// IntLit is an integer literal. Value is arbitrary precision and must not
// be mutated.
type IntLit struct {
	Value *big.Int
	Loc   lexer.SourceSpan
}

// StringLit is a string literal; Value holds the decoded body.
type StringLit struct {
	Value string
	Loc   lexer.SourceSpan
}

// Binary applies an infix operator: +, -, and, or, or the sequencing
// semicolon inserted by the preparser.
type Binary struct {
	Op  lexer.Kind
	LHS Expr
	RHS Expr
	Loc lexer.SourceSpan
}

// Call applies a callee to an argument list.
type Call struct {
	Callee Expr
	Args   []Expr
	Loc    lexer.SourceSpan
}

// Let binds a name to a value inside a body expression.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
	Loc   lexer.SourceSpan
}

// If is a conditional expression. Else is nil when absent.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  lexer.SourceSpan
}

func (e *Ident) Span() lexer.SourceSpan     { return e.Loc }
func (e *IntLit) Span() lexer.SourceSpan    { return e.Loc }
func (e *StringLit) Span() lexer.SourceSpan { return e.Loc }
func (e *Binary) Span() lexer.SourceSpan    { return e.Loc }
func (e *Call) Span() lexer.SourceSpan      { return e.Loc }
func (e *Let) Span() lexer.SourceSpan       { return e.Loc }
func (e *If) Span() lexer.SourceSpan        { return e.Loc }

func (*Ident) exprNode()     {}
func (*IntLit) exprNode()    {}
func (*StringLit) exprNode() {}
func (*Binary) exprNode()    {}
func (*Call) exprNode()      {}
func (*Let) exprNode()       {}
func (*If) exprNode()        {}

// operatorText maps binary operator kinds to their rendered symbol.
var operatorText = map[lexer.Kind]string{
	lexer.PLUS:      "+",
	lexer.MINUS:     "-",
	lexer.AND:       "and",
	lexer.OR:        "or",
	lexer.SEMICOLON: ";",
}

// Sexp renders an expression as an s-expression, the canonical display
// format used by tests and the CLI.
func Sexp(e Expr) string {
	switch n := e.(type) {
	case *Ident:
		return n.Name
	case *IntLit:
		return n.Value.String()
	case *StringLit:
		return fmt.Sprintf("%q", n.Value)
	case *Binary:
		op, ok := operatorText[n.Op]
		if !ok {
			op = n.Op.String()
		}
		return fmt.Sprintf("(%s %s %s)", op, Sexp(n.LHS), Sexp(n.RHS))
	case *Call:
		parts := make([]string, 0, len(n.Args)+2)
		parts = append(parts, "call", Sexp(n.Callee))
		for _, arg := range n.Args {
			parts = append(parts, Sexp(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *Let:
		return fmt.Sprintf("(let %s %s %s)", n.Name, Sexp(n.Value), Sexp(n.Body))
	case *If:
		if n.Else == nil {
			return fmt.Sprintf("(if %s %s)", Sexp(n.Cond), Sexp(n.Then))
		}
		return fmt.Sprintf("(if %s %s %s)", Sexp(n.Cond), Sexp(n.Then), Sexp(n.Else))
	default:
		return fmt.Sprintf("<unknown %T>", e)
	}
}
