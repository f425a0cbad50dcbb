package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/msto63/ockham/internal/history"
	"github.com/msto63/ockham/pkg/core/version"
	"github.com/msto63/ockham/pkg/lang"
	"github.com/spf13/cobra"
)

var replNoHistory bool

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive REPL",
	Long: `Starts an interactive read-eval-print loop. Statements share one
session, so variables and functions persist across inputs.

Commands inside the REPL:
  exit, quit  - leave the REPL
  clear       - reset the session
  env         - list defined variables
  history     - list recent inputs
  help        - show help`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "disable persistent input history")
}

func runRepl(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(os.Stdout)
	if err != nil {
		return err
	}
	defer engine.Close()

	store := openHistoryStore(replNoHistory)
	defer store.Close()

	ctx := context.Background()
	session := engine.NewSession()

	if err := store.BeginSession(ctx, &history.Session{ID: session.ID, StartedAt: session.StartedAt}); err != nil {
		printError("history unavailable", err)
	}

	prompt := cfg.GetString("repl.prompt", "> ")

	fmt.Println(version.Full())
	fmt.Println("Type 'help' for commands, 'exit' to leave.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			return nil
		case "clear":
			session.Reset()
			fmt.Println("[session reset]")
			continue
		case "help":
			printReplHelp()
			continue
		case "env":
			printEnvironment(session)
			continue
		case "history":
			printHistory(ctx, store)
			continue
		}

		result, err := session.Run(ctx, input)

		var rendered string
		isError := err != nil
		if err != nil {
			rendered = err.Error()
			fmt.Printf("error: %v\n", err)
		} else if !result.IsNull() {
			rendered = result.Value.String()
			fmt.Println(rendered)
		}

		// History persistence is best effort
		_ = store.Append(ctx, &history.Entry{
			SessionID: session.ID,
			Input:     input,
			Result:    rendered,
			IsError:   isError,
		})
	}

	return scanner.Err()
}

// openHistoryStore opens the sqlite history store, falling back to the
// in-memory store when persistence is disabled or unavailable
func openHistoryStore(disabled bool) history.Store {
	if disabled {
		return history.NewMemoryStore()
	}

	path := cfg.GetString("repl.history_path", history.DefaultPath())
	store, err := history.Open(path)
	if err != nil {
		printError("history unavailable", err)
		return history.NewMemoryStore()
	}
	return store
}

func printReplHelp() {
	fmt.Print(`
Commands:
  exit, quit     - leave the REPL
  clear          - reset the session (variables are discarded)
  env            - list defined variables
  history        - list recent inputs
  help           - show this help

Statements end with ';'. Examples:
  set x = 21;
  x * 2;
  fun greet(name) { println("hello " + name); }
`)
}

func printEnvironment(session *lang.Session) {
	env := session.Environment()
	names := session.DeclaredNames()
	if len(names) == 0 {
		fmt.Println("[environment is empty]")
		return
	}

	for _, name := range names {
		value, ok := env.Lookup(name)
		if !ok {
			continue
		}
		keyword := "set"
		if env.IsConstant(name) {
			keyword = "lock"
		}
		fmt.Printf("%-4s %s = %s\n", keyword, name, value.String())
	}
}

func printHistory(ctx context.Context, store history.Store) {
	entries, err := store.Recent(ctx, 20)
	if err != nil {
		printError("history unavailable", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("[history is empty]")
		return
	}

	for _, entry := range entries {
		marker := " "
		if entry.IsError {
			marker = "!"
		}
		fmt.Printf("%s %s\n", marker, entry.Input)
	}
}
