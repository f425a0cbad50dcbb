// File: registry.go
// Title: ockham Native Function Registry
// Description: Implements the registry for Go-implemented builtin functions.
//              Provides thread-safe registration and lookup so embedders can
//              extend the interpreter with their own natives.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial registry implementation

package interpreter

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// Registry holds the native functions available to evaluated programs.
// A registry may be shared between interpreters; access is synchronized.
type Registry struct {
	natives map[string]*NativeFunction
	mutex   sync.RWMutex
}

// NewRegistry creates an empty native function registry
func NewRegistry() *Registry {
	return &Registry{
		natives: make(map[string]*NativeFunction),
	}
}

// Register adds a native function under the given name
func (r *Registry) Register(name string, fn NativeFn) error {
	if okstringx.IsBlank(name) {
		return errors.New("native function name cannot be empty")
	}
	if fn == nil {
		return errors.New("native function cannot be nil")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.natives[name]; exists {
		return fmt.Errorf("native function %s already registered", name)
	}

	r.natives[name] = &NativeFunction{Name: name, Fn: fn}
	return nil
}

// Lookup returns a registered native function
func (r *Registry) Lookup(name string) (*NativeFunction, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	fn, exists := r.natives[name]
	return fn, exists
}

// Has checks whether a native function is registered
func (r *Registry) Has(name string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	_, exists := r.natives[name]
	return exists
}

// Names returns the sorted names of all registered natives
func (r *Registry) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, 0, len(r.natives))
	for name := range r.natives {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
