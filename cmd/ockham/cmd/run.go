package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var runTime bool

var runCmd = &cobra.Command{
	Use:   "run <file.ok>",
	Short: "Run an ockham script",
	Long: `Runs an ockham script file and prints the value of the last
statement unless it is null.

Examples:
  ockham run script.ok
  ockham run --time script.ok`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runTime, "time", false, "print the run duration")
}

func runScript(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	engine, err := newEngine(os.Stdout)
	if err != nil {
		return err
	}
	defer engine.Close()

	result, err := engine.Run(context.Background(), string(source))
	if err != nil {
		return err
	}

	if !result.IsNull() {
		fmt.Println(result.Value.String())
	}
	if runTime {
		fmt.Printf("(%v)\n", result.Duration)
	}

	return nil
}
