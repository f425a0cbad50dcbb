package cmd

import (
	"fmt"
	"io"
	"os"

	okconfig "github.com/msto63/ockham/pkg/core/config"
	oklog "github.com/msto63/ockham/pkg/core/log"
	"github.com/msto63/ockham/pkg/lang"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string

	cfg *okconfig.Config
)

var rootCmd = &cobra.Command{
	Use:   "ockham",
	Short: "ockham - a small scripting language",
	Long: `ockham is a small scripting language with variables, constants,
functions, objects, and conditionals.

Commands:
  run      - execute a script file
  repl     - interactive line REPL
  tui      - full-screen terminal REPL
  parse    - dump the AST or token stream of a script
  check    - syntax-check scripts
  fmt      - reformat a script canonically`,
	PersistentPreRunE: initialize,
	SilenceUsage:      true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./ockham.toml, ~/.ockham/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")
}

// initialize loads the configuration and configures the default logger.
// Flags override config file values.
func initialize(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = okconfig.Load(cfgFile)
	} else {
		cfg, err = okconfig.DiscoverWithDefaults()
	}
	if err != nil {
		return err
	}

	level := cfg.GetString("log.level", "warn")
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	parsedLevel, err := oklog.ParseLevel(level)
	if err != nil {
		return err
	}

	format := cfg.GetString("log.format", "text")
	if logFormat != "" {
		format = logFormat
	}
	parsedFormat, err := oklog.ParseFormat(format)
	if err != nil {
		return err
	}

	oklog.SetDefault(oklog.New().
		WithName("ockham").
		WithLevel(parsedLevel).
		WithFormat(parsedFormat))

	return nil
}

// newEngine builds an engine from the loaded configuration
func newEngine(output io.Writer) (*lang.Engine, error) {
	return lang.NewEngine(lang.Options{
		Logger:          oklog.GetDefault(),
		MaxSourceLength: cfg.GetInt("engine.max_source_length", 1<<20),
		Output:          output,
		EnableCache:     cfg.GetBool("engine.cache", true),
	})
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
