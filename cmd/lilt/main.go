package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/liltlang/lilt/pkgs/ast"
	lilterrors "github.com/liltlang/lilt/pkgs/errors"
	"github.com/liltlang/lilt/pkgs/lexer"
	"github.com/liltlang/lilt/pkgs/parser"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lilt",
		Short:         "Front-end tooling for the Lilt language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var raw bool
	var positions bool
	tokensCmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream for a Lilt source file",
		Long: "Print the augmented token stream for a Lilt source file,\n" +
			"including the synthetic IN, ENDIF and SEMICOLON tokens the\n" +
			"preparser inserts to resolve the indentation-based layout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			return printTokens(cmd.OutOrStdout(), src, raw, positions)
		},
	}
	tokensCmd.Flags().BoolVar(&raw, "raw", false, "Print the scanner's raw stream, before preparsing")
	tokensCmd.Flags().BoolVar(&positions, "positions", false, "Prefix each token with its line:column position")

	parseCmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a Lilt source file and print its syntax tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}
			expr, err := parser.Parse(src)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ast.Sexp(expr))
			return nil
		},
	}

	rootCmd.AddCommand(tokensCmd, parseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readSource reads the optional file argument; `-` or no argument reads
// from stdin.
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", lilterrors.NewInputError("failed to read stdin", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", lilterrors.NewInputError(fmt.Sprintf("failed to read %s", args[0]), err)
	}
	return string(data), nil
}

// printTokens writes one token per line. Pulling tokens one at a time
// keeps output flowing on large inputs instead of buffering the file.
func printTokens(w io.Writer, src string, raw, positions bool) error {
	var source lexer.TokenSource = lexer.NewScanner(src)
	if !raw {
		source = lexer.NewPreparser(source)
	}

	for {
		tok, err := source.Next()
		if err != nil {
			return err
		}
		if positions {
			fmt.Fprintf(w, "%s\t%s\n", tok.Span.Start, tok)
		} else {
			fmt.Fprintln(w, tok)
		}
		if tok.Kind == lexer.EOF {
			return nil
		}
	}
}
