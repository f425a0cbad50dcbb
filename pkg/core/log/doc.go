// Package log provides structured logging capabilities for the ockham toolchain.
//
// Package: log
// Title: ockham Structured Logging Framework
// Description: This package implements a structured logging system with
//              contextual fields, multiple output formats, log levels, and
//              tight integration with the ockham error handling system. It
//              supports performance timing for parse and evaluation phases
//              and audit trails for script runs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial implementation with structured logging and error integration
//
// Features:
// - Structured logging with JSON, text, console, and logfmt formats
// - Multiple log levels with filtering capabilities
// - Contextual logging with persistent custom fields
// - Integration with the ockham error system for automatic error logging
// - Performance timers with checkpoints for parse and evaluation phases
// - Audit trail capabilities for script and REPL runs
//
// Usage:
//
//	import oklog "github.com/msto63/ockham/pkg/core/log"
//
//	// Create a logger with context
//	logger := oklog.New().
//		WithLevel(oklog.LevelInfo).
//		WithFormat(oklog.FormatConsole).
//		WithField("component", "parser")
//
//	// Log messages with different levels
//	logger.Info("program parsed", oklog.Field("statements", 12))
//	logger.ErrorWithErr("evaluation failed", err)
//	logger.Debug("reading source", oklog.Fields{
//		"file": "fib.ok",
//		"size": 1024,
//	})
//
//	// Log performance metrics
//	timer := logger.StartTimer("parse")
//	// ... parse the source
//	timer.Stop()
//
//	// Audit logging for script runs
//	logger.Audit("script executed", oklog.Fields{
//		"file":    "fib.ok",
//		"success": true,
//	})
package log
