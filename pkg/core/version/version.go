// ============================================================================
// ockham - A Small Scripting Language
// ============================================================================
//
// Package:     version
// Description: Central version management for all components
// Author:      msto63
// Created:     2026-05-12
// License:     MIT
// ============================================================================

package version

// Version constants for all ockham components
const (
	// Release version
	Release = "0.1.0"

	// Component versions
	Engine      = "0.1.0"
	Parser      = "0.1.0"
	Interpreter = "0.1.0"
	REPL        = "0.1.0"
	History     = "0.1.0"
	CLI         = "0.1.0"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "engine":
		return Engine
	case "parser":
		return Parser
	case "interpreter":
		return Interpreter
	case "repl":
		return REPL
	case "history":
		return History
	case "cli":
		return CLI
	default:
		return Release
	}
}

// Full returns the human-readable release string
func Full() string {
	return "ockham v" + Release
}
