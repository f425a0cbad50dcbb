package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.ok> [file.ok...]",
	Short: "Syntax-check ockham scripts",
	Long: `Checks that scripts parse without errors. Stops at the first
failing file and exits non-zero.

Examples:
  ockham check script.ok
  ockham check examples/*.ok`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(os.Stdout)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, path := range args {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := engine.CheckSyntax(string(source)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: ok\n", path)
	}

	return nil
}
