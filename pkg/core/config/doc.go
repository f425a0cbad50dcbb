// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config provides configuration management for ockham
//              tooling with support for TOML and YAML formats. Features
//              include automatic file discovery, environment variable
//              injection, validation, hot-reloading, and type-safe access.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-13
// Modified: 2026-05-13
//
// Change History:
// - 2026-05-13 v0.1.0: Initial implementation with TOML/YAML support

/*
Package config provides configuration management for ockham tooling.

Package: config
Title: Core Configuration Management
Description: Provides configuration management capabilities for the ockham
             interpreter and its tools with support for TOML and YAML formats,
             environment variable injection, hot-reloading, and type-safe
             access patterns.
Author: msto63
Version: v0.1.0
Created: 2026-05-13
Modified: 2026-05-13

Change History:
- 2026-05-13 v0.1.0: Initial implementation with TOML/YAML support

Key Features:
  • Multi-format support (TOML, YAML) with automatic detection
  • Environment variable injection and override capabilities
  • Configuration validation with structured rules
  • Automatic discovery across standard ockham locations
  • Hot-reloading with change notification callbacks
  • Thread-safe concurrent access patterns
  • Structured error codes via the ockham error package

# Basic Configuration Loading

Load and access configuration values:

	cfg, err := okconfig.Load("ockham.toml")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Type-safe value access with defaults
	prompt := cfg.GetString("repl.prompt", ">> ")
	maxEntries := cfg.GetInt("history.max_entries", 1000)
	timeout := cfg.GetDuration("run.timeout", 30*time.Second)

# Automatic Discovery

The interpreter looks for its configuration in the standard locations
(./ockham.toml, ~/.ockham/config.toml, /etc/ockham/ockham.toml):

	cfg, err := okconfig.DiscoverWithDefaults()
	if err != nil {
		return err
	}

# Environment Variable Integration

Configuration values are automatically overridden by environment variables
following a consistent naming convention:

	# ockham.toml
	[repl]
	prompt = ">> "

	[log]
	level = "info"

	# Environment variables (with prefix)
	export OCKHAM_REPL_PROMPT="ok> "
	export OCKHAM_LOG_LEVEL="debug"

	cfg, _ := okconfig.LoadWithOptions("ockham.toml", okconfig.LoadOptions{
		EnvPrefix: "OCKHAM",
	})

	// Environment variables take precedence
	prompt := cfg.GetString("repl.prompt") // Returns "ok> "

# Configuration Validation

Validate configuration structure and constraints:

	rules := okconfig.ValidationRules{
		"log.level": {
			Type:    "string",
			Pattern: `^(trace|debug|info|warn|error)$`,
			Default: "info",
		},
		"history.max_entries": {
			Type: "int",
			Min:  1,
			Max:  100000,
		},
		"run.timeout": {
			Type:    "duration",
			Default: "30s",
		},
	}

	if result := cfg.Validate(rules); !result.Valid {
		for _, e := range result.Errors {
			oklog.Error(e)
		}
	}

# Hot-Reloading and Change Notifications

Monitor configuration files for changes with automatic reloading:

	cfg, err := okconfig.LoadWithOptions("ockham.toml", okconfig.LoadOptions{
		Watch: true,
	})

	cfg.OnChange(func(oldCfg, newCfg *okconfig.Config) {
		if oldCfg.GetString("log.level") != newCfg.GetString("log.level") {
			oklog.Info("log level changed")
		}
	})

# Struct Binding

Bind configuration sections to typed structs:

	type REPLConfig struct {
		Prompt      string `config:"prompt"`
		HistoryFile string `config:"history_file"`
		Colors      bool   `config:"colors"`
	}

	var replCfg REPLConfig
	if err := cfg.BindToStruct("repl", &replCfg); err != nil {
		return err
	}

# Convenience Methods

Quick access patterns for common operations:

	prompt := cfg.S("repl.prompt", ">> ")          // GetString
	max := cfg.I("history.max_entries", 1000)      // GetInt
	colors := cfg.B("repl.colors", true)           // GetBool
	timeout := cfg.D("run.timeout", 30*time.Second) // GetDuration

# Thread Safety Guarantees

All operations are thread-safe and support concurrent access:

• Configuration loading and parsing: Thread-safe
• Value access (Get* methods): Concurrent reads via RWMutex
• Environment variable lookups: Cached and thread-safe
• Configuration updates: Atomic updates with proper synchronization
• Change notifications: Safe concurrent callback execution
*/
package config
