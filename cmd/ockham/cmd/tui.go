// ============================================================================
// ockham - A Small Scripting Language
// ============================================================================
//
// Package:     cmd
// Description: CLI command for the ockham full-screen terminal REPL
// Author:      msto63
// Created:     2026-05-12
// License:     MIT
// ============================================================================

package cmd

import (
	"bytes"

	"github.com/msto63/ockham/internal/tui/repl"
	"github.com/spf13/cobra"
)

var tuiNoHistory bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the full-screen terminal REPL",
	Long: `Starts the full-screen terminal REPL.

Key bindings:
  Enter        evaluate input
  Up/Down      navigate input history
  PgUp/PgDn    scroll the transcript
  Ctrl+L       clear the transcript
  Ctrl+C, Esc  quit`,
	RunE: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	tuiCmd.Flags().BoolVar(&tuiNoHistory, "no-history", false, "disable persistent input history")
}

func runTui(cmd *cobra.Command, args []string) error {
	// Builtin print output is captured into the transcript instead of
	// writing under the alternate screen
	var output bytes.Buffer

	engine, err := newEngine(&output)
	if err != nil {
		return err
	}
	defer engine.Close()

	store := openHistoryStore(tuiNoHistory)
	defer store.Close()

	return repl.Run(repl.Config{
		Engine: engine,
		Store:  store,
		Output: &output,
	})
}
