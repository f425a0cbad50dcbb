package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt <file.ok>",
	Short: "Format an ockham script",
	Long: `Reformats a script into canonical style: normalized spacing, one
statement per line, two-space block indentation.

Examples:
  ockham fmt script.ok
  ockham fmt --write script.ok`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	engine, err := newEngine(os.Stdout)
	if err != nil {
		return err
	}
	defer engine.Close()

	formatted, err := engine.Format(string(source))
	if err != nil {
		return err
	}
	if !strings.HasSuffix(formatted, "\n") {
		formatted += "\n"
	}

	if fmtWrite {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, []byte(formatted), info.Mode().Perm())
	}

	fmt.Print(formatted)
	return nil
}
