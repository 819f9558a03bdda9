package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/liltlang/lilt/pkgs/ast"
	lilterrors "github.com/liltlang/lilt/pkgs/errors"
	"github.com/liltlang/lilt/pkgs/lexer"
)

// assertParses parses the input and compares the span-insensitive Sexp
// rendering against the expected tree.
func assertParses(t *testing.T, input string, expected ast.Expr) {
	t.Helper()

	actual, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", input, err)
	}
	if diff := cmp.Diff(ast.Sexp(expected), ast.Sexp(actual)); diff != "" {
		t.Errorf("parse tree mismatch for %q (-want +got):\n%s", input, diff)
	}
}

func TestParsePrimaries(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Expr
	}{
		{"identifier", `foo`, ast.Id("foo")},
		{"integer", `42`, ast.Int(42)},
		{"huge integer", `123456789012345678901234567890`, ast.IntFrom("123456789012345678901234567890")},
		{"string", `"hello"`, ast.Str("hello")},
		{"grouping", `(foo)`, ast.Id("foo")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertParses(t, tt.input, tt.expected)
		})
	}
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Expr
	}{
		{
			name:     "sum is left associative",
			input:    `a + b - c`,
			expected: ast.Bin(lexer.MINUS, ast.Bin(lexer.PLUS, ast.Id("a"), ast.Id("b")), ast.Id("c")),
		},
		{
			name:     "and binds tighter than or",
			input:    `a or b and c`,
			expected: ast.Bin(lexer.OR, ast.Id("a"), ast.Bin(lexer.AND, ast.Id("b"), ast.Id("c"))),
		},
		{
			name:     "sum binds tighter than and",
			input:    `a + b and c`,
			expected: ast.Bin(lexer.AND, ast.Bin(lexer.PLUS, ast.Id("a"), ast.Id("b")), ast.Id("c")),
		},
		{
			name:     "grouping overrides precedence",
			input:    `a and (b or c)`,
			expected: ast.Bin(lexer.AND, ast.Id("a"), ast.Bin(lexer.OR, ast.Id("b"), ast.Id("c"))),
		},
		{
			name:     "explicit semicolon sequences",
			input:    `a; b; c`,
			expected: ast.Seq(ast.Id("a"), ast.Seq(ast.Id("b"), ast.Id("c"))),
		},
		{
			name:     "semicolon binds loosest",
			input:    `a + b; c`,
			expected: ast.Seq(ast.Bin(lexer.PLUS, ast.Id("a"), ast.Id("b")), ast.Id("c")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertParses(t, tt.input, tt.expected)
		})
	}
}

func TestParseCalls(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Expr
	}{
		{name: "no arguments", input: `f()`, expected: ast.Apply(ast.Id("f"))},
		{name: "one argument", input: `f(x)`, expected: ast.Apply(ast.Id("f"), ast.Id("x"))},
		{
			name:     "several arguments",
			input:    `f(x, 1, "s")`,
			expected: ast.Apply(ast.Id("f"), ast.Id("x"), ast.Int(1), ast.Str("s")),
		},
		{
			name:     "curried call",
			input:    `f(x)(y)`,
			expected: ast.Apply(ast.Apply(ast.Id("f"), ast.Id("x")), ast.Id("y")),
		},
		{
			name:     "call binds tighter than sum",
			input:    `f(x) + g(y)`,
			expected: ast.Bin(lexer.PLUS, ast.Apply(ast.Id("f"), ast.Id("x")), ast.Apply(ast.Id("g"), ast.Id("y"))),
		},
		{
			name:     "nested call argument",
			input:    `f(g(x))`,
			expected: ast.Apply(ast.Id("f"), ast.Apply(ast.Id("g"), ast.Id("x"))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertParses(t, tt.input, tt.expected)
		})
	}
}

func TestParseLet(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Expr
	}{
		{
			name:     "binding body from following line",
			input:    "let x = 1\nx + x",
			expected: ast.LetIn("x", ast.Int(1), ast.Bin(lexer.PLUS, ast.Id("x"), ast.Id("x"))),
		},
		{
			name:  "bindings nest to the right",
			input: "let x = 1\nlet y = 2\nx + y",
			expected: ast.LetIn("x", ast.Int(1),
				ast.LetIn("y", ast.Int(2),
					ast.Bin(lexer.PLUS, ast.Id("x"), ast.Id("y")))),
		},
		{
			name:  "indented multi-statement binding value",
			input: "let x =\n    f(1)\n    2\nx",
			expected: ast.LetIn("x",
				ast.Seq(ast.Apply(ast.Id("f"), ast.Int(1)), ast.Int(2)),
				ast.Id("x")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertParses(t, tt.input, tt.expected)
		})
	}
}

func TestParseIf(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ast.Expr
	}{
		{
			name:     "if without else",
			input:    `if a then b`,
			expected: ast.When(ast.Id("a"), ast.Id("b")),
		},
		{
			name:     "if with else",
			input:    `if a then b else c`,
			expected: ast.Cond(ast.Id("a"), ast.Id("b"), ast.Id("c")),
		},
		{
			name:  "conditional followed by a statement",
			input: "if a then b\nc",
			expected: ast.Seq(
				ast.When(ast.Id("a"), ast.Id("b")),
				ast.Id("c")),
		},
		{
			name:  "boolean condition",
			input: `if a and b or c then d`,
			expected: ast.When(
				ast.Bin(lexer.OR, ast.Bin(lexer.AND, ast.Id("a"), ast.Id("b")), ast.Id("c")),
				ast.Id("d")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertParses(t, tt.input, tt.expected)
		})
	}
}

func TestParseFullProgram(t *testing.T) {
	input := "let foo =\n" +
		"    print(\"calculating foo\")\n" +
		"    \"foo\"\n" +
		"print(\"the value of foo is \" + foo)\n"

	assertParses(t, input,
		ast.LetIn("foo",
			ast.Seq(
				ast.Apply(ast.Id("print"), ast.Str("calculating foo")),
				ast.Str("foo")),
			ast.Apply(ast.Id("print"),
				ast.Bin(lexer.PLUS, ast.Str("the value of foo is "), ast.Id("foo")))))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing operand", `a +`},
		{"dangling operator", `+ a`},
		{"let without name", `let = 1`},
		{"let without equals", "let x 1\nx"},
		{"unexpected comma", `a, b`},
		{"function definitions rejected", `def f(x) -> x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("input %q parsed without error", tt.input)
			}
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	_, err := Parse("a +\n    +")
	if !lilterrors.IsErrorType(err, lilterrors.ErrParse) {
		t.Fatalf("expected PARSE_ERROR, got %v", err)
	}
	le := err.(*lilterrors.LiltError)
	if le.Line != 2 || le.Column != 5 {
		t.Errorf("error position: expected 2:5, got %d:%d", le.Line, le.Column)
	}
}

func TestParseTokensRequiresEOF(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic on a stream without a trailing EOF token")
		}
	}()
	_, _ = ParseTokens([]lexer.Token{{Kind: lexer.IDENT, Text: "x"}})
}
