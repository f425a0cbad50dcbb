// ============================================================================
// ockham - A Small Scripting Language
// ============================================================================
//
// Package:     repl
// Description: Message types for async operations in the REPL
// Author:      msto63
// Created:     2026-05-12
// License:     MIT
// ============================================================================

package repl

import (
	"time"
)

// Entry represents one exchange in the REPL transcript
type Entry struct {
	Input    string        // echoed source line
	Output   string        // rendered result or error text
	IsError  bool          // whether Output is an error
	Notice   bool          // whether this is a command notice rather than an evaluation
	Duration time.Duration // how long the evaluation took
}

// Message types for tea.Cmd async operations

// evalResultMsg is sent when an evaluation finishes
type evalResultMsg struct {
	input    string
	output   string
	isError  bool
	duration time.Duration
}

// historyLoadedMsg is sent when persisted input history is loaded
type historyLoadedMsg struct {
	inputs []string
}

// sessionRecordedMsg is sent when the session row has been written
type sessionRecordedMsg struct {
	err error
}
