// File: environment.go
// Title: ockham Variable Environment
// Description: Implements lexically scoped variable environments for the
//              ockham interpreter. Environments form a parent chain that
//              resolves identifiers from the innermost scope outward and
//              enforces constant bindings.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial environment implementation

package interpreter

import (
	"errors"
	"fmt"
	"sort"

	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// Sentinel errors for environment operations; the evaluator inspects them
// to attach positions and error codes.
var (
	ErrUndefinedVariable  = errors.New("undefined variable")
	ErrConstantAssignment = errors.New("cannot assign to constant")
	ErrAlreadyDeclared    = errors.New("already declared in this scope")
)

// Environment holds variable bindings for one lexical scope. Scopes chain
// through parent pointers; resolution walks the chain from the innermost
// scope outward.
//
// An Environment is not safe for concurrent use; each evaluation runs on a
// single goroutine.
type Environment struct {
	parent    *Environment
	variables map[string]Value
	constants map[string]bool
}

// NewEnvironment creates a new environment with the given parent scope.
// A nil parent creates a root scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:    parent,
		variables: make(map[string]Value),
		constants: make(map[string]bool),
	}
}

// Declare binds a new variable in this scope. Redeclaring a name that
// already exists in the same scope fails; shadowing an outer scope is
// allowed.
func (e *Environment) Declare(name string, value Value, constant bool) (Value, error) {
	if okstringx.IsBlank(name) {
		return nil, errors.New("variable name cannot be empty")
	}

	if _, exists := e.variables[name]; exists {
		return nil, fmt.Errorf("variable %s %w", name, ErrAlreadyDeclared)
	}

	e.variables[name] = value
	if constant {
		e.constants[name] = true
	}

	return value, nil
}

// Assign updates an existing binding, resolving through the scope chain.
// Assigning to an undeclared name or to a constant fails.
func (e *Environment) Assign(name string, value Value) (Value, error) {
	scope, ok := e.Resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUndefinedVariable, name)
	}

	if scope.constants[name] {
		return nil, fmt.Errorf("%w %s", ErrConstantAssignment, name)
	}

	scope.variables[name] = value
	return value, nil
}

// Resolve finds the scope that declares a name, walking the parent chain
func (e *Environment) Resolve(name string) (*Environment, bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if _, exists := scope.variables[name]; exists {
			return scope, true
		}
	}
	return nil, false
}

// Lookup returns the value bound to a name, resolving through the chain
func (e *Environment) Lookup(name string) (Value, bool) {
	scope, ok := e.Resolve(name)
	if !ok {
		return nil, false
	}
	return scope.variables[name], true
}

// IsConstant reports whether a name resolves to a constant binding
func (e *Environment) IsConstant(name string) bool {
	scope, ok := e.Resolve(name)
	if !ok {
		return false
	}
	return scope.constants[name]
}

// Names returns the names declared in this scope (not the chain), sorted
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.variables))
	for name := range e.variables {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
