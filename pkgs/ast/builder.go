package ast

import (
	"math/big"

	"github.com/liltlang/lilt/pkgs/lexer"
)

// Construction helpers for building expected trees concisely, mainly in
// tests. Nodes built this way carry zero spans; compare them with the
// span-insensitive Sexp rendering.

// Id creates an identifier expression
func Id(name string) *Ident {
	return &Ident{Name: name}
}

// Int creates an integer literal from an int64
func Int(value int64) *IntLit {
	return &IntLit{Value: big.NewInt(value)}
}

// IntFrom creates an integer literal from a decimal string, for values
// beyond int64 range
func IntFrom(digits string) *IntLit {
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		panic("ast.IntFrom: not a decimal integer: " + digits)
	}
	return &IntLit{Value: value}
}

// Str creates a string literal expression
func Str(value string) *StringLit {
	return &StringLit{Value: value}
}

// Bin creates a binary expression
func Bin(op lexer.Kind, lhs, rhs Expr) *Binary {
	return &Binary{Op: op, LHS: lhs, RHS: rhs}
}

// Seq sequences two expressions with the synthetic semicolon operator
func Seq(first, rest Expr) *Binary {
	return &Binary{Op: lexer.SEMICOLON, LHS: first, RHS: rest}
}

// Apply creates a call expression
func Apply(callee Expr, args ...Expr) *Call {
	return &Call{Callee: callee, Args: args}
}

// LetIn creates a let binding
func LetIn(name string, value, body Expr) *Let {
	return &Let{Name: name, Value: value, Body: body}
}

// Cond creates a conditional with an else branch
func Cond(cond, then, els Expr) *If {
	return &If{Cond: cond, Then: then, Else: els}
}

// When creates a conditional without an else branch
func When(cond, then Expr) *If {
	return &If{Cond: cond, Then: then}
}
