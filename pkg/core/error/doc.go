// Package error provides comprehensive error handling capabilities for the ockham toolchain.
//
// Package: error
// Title: ockham Error Handling Framework
// Description: This package implements a structured error handling system with
//              contextual information, error codes, stack traces, and
//              integration with logging. It provides a foundation for
//              consistent error handling across the parser, the interpreter,
//              and the command line tools.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial implementation with contextual errors and codes
//
// Features:
// - Contextual error wrapping with additional metadata
// - Structured error codes for consistent diagnostics
// - Stack trace capture for debugging
// - Integration with the structured logging system
// - Error severity levels and categorization
// - Exit code mapping for command line tools
//
// Usage:
//
//	import okerror "github.com/msto63/ockham/pkg/core/error"
//
//	// Create a new error with context
//	err := okerror.New("history database unavailable").
//		WithCode(okerror.CodeStorageError).
//		WithDetail("path", "~/.ockham/history.db").
//		WithSeverity(okerror.SeverityHigh)
//
//	// Wrap an existing error with context
//	wrapped := okerror.Wrap(err, "failed to record run").
//		WithCode(okerror.CodeStorageError).
//		WithDetail("session", sessionID)
//
//	// Check error type and code
//	if okerror.HasCode(err, okerror.CodeSyntax) {
//		// Handle syntax errors specifically
//	}
package error
