// File: session.go
// Title: ockham Evaluation Session
// Description: Provides sessions that keep one global environment alive
//              across runs, so consecutive scripts share declarations.
//              The REPL and TUI run on top of this.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial session implementation

package lang

import (
	"context"
	"time"

	"github.com/google/uuid"

	oklog "github.com/msto63/ockham/pkg/core/log"
	okinterp "github.com/msto63/ockham/pkg/lang/interpreter"
	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// Session evaluates scripts against one persistent global environment
type Session struct {
	// ID uniquely identifies this session
	ID string

	// StartedAt is the session creation time
	StartedAt time.Time

	engine *Engine
	env    *okinterp.Environment
	logger *oklog.Logger
	runs   int
}

// NewSession creates a session with a fresh global environment
func (e *Engine) NewSession() *Session {
	id := uuid.NewString()

	session := &Session{
		ID:        id,
		StartedAt: time.Now(),
		engine:    e,
		env:       e.interpreter.GlobalEnvironment(),
		logger:    e.logger.WithField("session", id),
	}

	session.logger.Debug("Session created")
	return session
}

// Run parses and evaluates a script; declarations persist into the next
// Run on the same session
func (s *Session) Run(ctx context.Context, source string) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	timer := s.logger.StartTimer("script_run")
	runID := uuid.NewString()
	s.runs++

	s.logger.Info("Running script", oklog.Fields{
		"runId":  runID,
		"run":    s.runs,
		"bytes":  len(source),
		"source": okstringx.Truncate(source, 80, "..."),
	})

	program, err := s.engine.Parse(source)
	if err != nil {
		timer.StopWithError(err)
		return nil, err
	}
	timer.Checkpoint("parsed")

	value, err := s.engine.evalProgram(ctx, program, s.env)
	if err != nil {
		timer.StopWithError(err)
		s.logger.Warn("Script run failed", oklog.Fields{
			"runId": runID,
			"error": err.Error(),
		})
		return nil, s.engine.wrapRunError(err)
	}

	duration := timer.Stop()

	result := &Result{
		Success:  true,
		Value:    value,
		Program:  program,
		RunID:    runID,
		Duration: duration,
		Source:   source,
	}

	s.logger.Info("Script run completed", oklog.Fields{
		"runId":    runID,
		"type":     value.Type().String(),
		"duration": duration,
	})

	return result, nil
}

// Environment returns the session's global environment
func (s *Session) Environment() *okinterp.Environment {
	return s.env
}

// DeclaredNames returns the names declared by scripts in this session,
// sorted, with the seeded literals and natives filtered out
func (s *Session) DeclaredNames() []string {
	names := make([]string, 0)
	for _, name := range s.env.Names() {
		if name == "true" || name == "false" || name == "null" {
			continue
		}
		if s.engine.registry.Has(name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Runs returns the number of Run calls on this session
func (s *Session) Runs() int {
	return s.runs
}

// Reset replaces the environment with a fresh global scope; declared
// variables and functions are dropped
func (s *Session) Reset() {
	s.env = s.engine.interpreter.GlobalEnvironment()
	s.logger.Debug("Session reset", oklog.Fields{"runs": s.runs})
}
