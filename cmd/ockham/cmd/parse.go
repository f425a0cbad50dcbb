package cmd

import (
	"fmt"
	"os"

	okast "github.com/msto63/ockham/pkg/lang/ast"
	okparser "github.com/msto63/ockham/pkg/lang/parser"
	"github.com/spf13/cobra"
)

var parseFormat string

var parseCmd = &cobra.Command{
	Use:   "parse <file.ok>",
	Short: "Parse a script and dump its structure",
	Long: `Parses a script and prints its structure.

Formats:
  json    - AST as indented JSON (default)
  source  - AST rendered back as canonical source
  tokens  - the token stream with positions

Examples:
  ockham parse script.ok
  ockham parse --format tokens script.ok`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format (json, source, tokens)")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	if parseFormat == "tokens" {
		tokens, err := okparser.TokenizeInput(string(source))
		if err != nil {
			return err
		}
		for _, token := range tokens {
			fmt.Printf("%4d:%-4d %s\n", token.Line, token.Column, token.String())
		}
		return nil
	}

	engine, err := newEngine(os.Stdout)
	if err != nil {
		return err
	}
	defer engine.Close()

	program, err := engine.Parse(string(source))
	if err != nil {
		return err
	}

	switch parseFormat {
	case "source":
		fmt.Println(program.String())
	case "json":
		out, err := okast.ToJSON(program)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		return fmt.Errorf("unknown format: %s (expected json, source, or tokens)", parseFormat)
	}

	return nil
}
