// File: engine.go
// Title: ockham Engine Interface
// Description: Provides the main ockham engine and high-level API for
//              parsing and running scripts. Integrates parser, AST,
//              interpreter, and native registry components behind one
//              embeddable facade.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial engine implementation

package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	okcache "github.com/msto63/ockham/pkg/core/cache"
	okerror "github.com/msto63/ockham/pkg/core/error"
	oklog "github.com/msto63/ockham/pkg/core/log"
	okast "github.com/msto63/ockham/pkg/lang/ast"
	okinterp "github.com/msto63/ockham/pkg/lang/interpreter"
	okparser "github.com/msto63/ockham/pkg/lang/parser"
	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// Engine coordinates parsing and evaluation of ockham scripts
type Engine struct {
	parser      *okparser.Parser
	interpreter *okinterp.Interpreter
	registry    *okinterp.Registry
	cache       *okcache.ProgramCache
	logger      *oklog.Logger
	options     Options
}

// Options configures the engine behavior
type Options struct {
	// Logger for engine operations (optional, defaults to default logger)
	Logger *oklog.Logger

	// LogLevel for engine-specific logging
	LogLevel oklog.Level

	// MaxSourceLength limits script size in bytes (default: 1 MiB)
	MaxSourceLength int

	// Output receives print/println output (default: os.Stdout)
	Output io.Writer

	// Registry provides native functions; when nil a registry with the
	// builtin set is created
	Registry *okinterp.Registry

	// MaxCallDepth bounds user-function recursion (default: 1000)
	MaxCallDepth int

	// EnableCache reuses parse results keyed by source hash (default: true)
	EnableCache bool

	// CacheSize limits the number of cached programs (default: 256)
	CacheSize int
}

// Result represents the result of one script run
type Result struct {
	// Success indicates the script ran to completion
	Success bool

	// Value is the value of the last evaluated top-level statement
	Value okinterp.Value

	// Program is the parsed AST the run evaluated
	Program *okast.Program

	// RunID uniquely identifies this run
	RunID string

	// Duration is the wall time of parse plus evaluation
	Duration time.Duration

	// Source is the script that was run
	Source string
}

// String returns a one-line summary of the result
func (r *Result) String() string {
	if !r.Success {
		return "FAILED"
	}
	return fmt.Sprintf("SUCCESS: %s (Type: %s, Duration: %v)",
		r.Value.String(), r.Value.Type(), r.Duration)
}

// IsNull returns true if the run produced no value
func (r *Result) IsNull() bool {
	_, isNull := r.Value.(okinterp.NullValue)
	return r.Value == nil || isNull
}

// NewEngine creates a new engine with the specified options
func NewEngine(opts ...Options) (*Engine, error) {
	// Default options
	options := Options{
		Logger:          oklog.GetDefault(),
		LogLevel:        oklog.LevelInfo,
		MaxSourceLength: 1 << 20,
		Output:          os.Stdout,
		MaxCallDepth:    1000,
		EnableCache:     true,
		CacheSize:       256,
	}

	// Apply provided options
	if len(opts) > 0 {
		provided := opts[0]
		if provided.Logger != nil {
			options.Logger = provided.Logger
		}
		if provided.LogLevel != 0 {
			options.LogLevel = provided.LogLevel
		}
		if provided.MaxSourceLength > 0 {
			options.MaxSourceLength = provided.MaxSourceLength
		}
		if provided.Output != nil {
			options.Output = provided.Output
		}
		if provided.MaxCallDepth > 0 {
			options.MaxCallDepth = provided.MaxCallDepth
		}
		if provided.CacheSize > 0 {
			options.CacheSize = provided.CacheSize
		}
		options.Registry = provided.Registry
		options.EnableCache = provided.EnableCache
	}

	// Create logger with engine context
	logger := options.Logger.WithField("component", "ockham-engine")

	// Create registry with builtins unless one was provided
	registry := options.Registry
	if registry == nil {
		registry = okinterp.DefaultRegistry(options.Output)
	}

	// Create parser
	p, err := okparser.New(okparser.Options{
		Logger:          logger,
		MaxSourceLength: options.MaxSourceLength,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize parser: %w", err)
	}

	// Create interpreter
	interp, err := okinterp.New(okinterp.Options{
		Logger:       logger,
		Output:       options.Output,
		Registry:     registry,
		MaxCallDepth: options.MaxCallDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
	}

	// Create parse cache if enabled
	var programCache *okcache.ProgramCache
	if options.EnableCache {
		programCache = okcache.NewProgramCache(okcache.ProgramConfig{
			MaxPrograms: options.CacheSize,
		})
	}

	engine := &Engine{
		parser:      p,
		interpreter: interp,
		registry:    registry,
		cache:       programCache,
		logger:      logger,
		options:     options,
	}

	logger.Info("ockham engine initialized", oklog.Fields{
		"maxSourceLength": options.MaxSourceLength,
		"maxCallDepth":    options.MaxCallDepth,
		"enableCache":     options.EnableCache,
		"cacheSize":       options.CacheSize,
		"natives":         len(registry.Names()),
	})

	return engine, nil
}

// Parse parses a script without running it. Parse results are immutable
// and shared through the cache when caching is enabled.
func (e *Engine) Parse(source string) (*okast.Program, error) {
	if err := e.validateSource(source); err != nil {
		return nil, err
	}

	if e.cache != nil {
		if cached, ok := e.cache.GetProgram(source); ok {
			if program, ok := cached.(*okast.Program); ok {
				e.logger.Debug("Parse cache hit", oklog.Fields{
					"bytes": len(source),
				})
				return program, nil
			}
		}
	}

	program, err := e.parser.Parse(source)
	if err != nil {
		return nil, e.wrapParseError(err)
	}

	if e.cache != nil {
		e.cache.SetProgram(source, program)
	}

	return program, nil
}

// Run parses and evaluates a script in a fresh session
func (e *Engine) Run(ctx context.Context, source string) (*Result, error) {
	return e.NewSession().Run(ctx, source)
}

// CheckSyntax parses a script and reports the first error, if any
func (e *Engine) CheckSyntax(source string) error {
	_, err := e.Parse(source)
	return err
}

// Format parses a script and returns its canonical rendering
func (e *Engine) Format(source string) (string, error) {
	program, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return program.String(), nil
}

// Registry returns the native function registry for registration of
// custom natives
func (e *Engine) Registry() *okinterp.Registry {
	return e.registry
}

// CacheStats returns parse cache statistics, or nil when caching is off
func (e *Engine) CacheStats() map[string]interface{} {
	if e.cache == nil {
		return nil
	}
	return e.cache.Stats()
}

// Close releases engine resources
func (e *Engine) Close() error {
	if e.cache != nil {
		e.cache.Close()
	}
	return nil
}

// evalProgram evaluates top-level statements one at a time so that
// context cancellation takes effect between statements
func (e *Engine) evalProgram(ctx context.Context, program *okast.Program, env *okinterp.Environment) (okinterp.Value, error) {
	var result okinterp.Value = okinterp.NullValue{}

	for _, stmt := range program.Body {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, err := e.interpreter.Evaluate(stmt, env)
		if err != nil {
			return nil, err
		}
		result = value
	}

	return result, nil
}

// validateSource validates the input script
func (e *Engine) validateSource(source string) error {
	if okstringx.IsBlank(source) {
		return okerror.New("source cannot be empty").
			WithCode(okerror.CodeInvalidInput).
			WithOperation("validate")
	}

	if len(source) > e.options.MaxSourceLength {
		return okerror.Newf("source exceeds maximum length: %d > %d",
			len(source), e.options.MaxSourceLength).
			WithCode(okerror.CodeSourceTooLarge).
			WithOperation("validate")
	}

	return nil
}

// wrapParseError attaches the matching error code to a parse failure
func (e *Engine) wrapParseError(err error) error {
	code := okerror.CodeSyntax

	var parseErr *okparser.ParseError
	if errors.As(err, &parseErr) && parseErr.Kind == okparser.DeclarationError {
		code = okerror.CodeDeclaration
	}

	return okerror.Wrap(err, "parse failed").
		WithCode(code).
		WithOperation("parse")
}

// wrapRunError attaches the matching error code to an evaluation failure
func (e *Engine) wrapRunError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return okerror.Wrap(err, "run cancelled").
			WithCode(okerror.CodeTimeout).
			WithOperation("run")
	}

	code := okerror.CodeRuntime
	var runtimeErr *okinterp.RuntimeError
	if errors.As(err, &runtimeErr) {
		code = runtimeErr.Code
	}

	return okerror.Wrap(err, "script failed").
		WithCode(code).
		WithOperation("run")
}
