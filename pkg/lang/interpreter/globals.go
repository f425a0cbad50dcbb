// File: globals.go
// Title: ockham Builtin Functions and Global Environment
// Description: Registers the builtin native functions (print, println, len,
//              type, str, num, time, clock) and seeds the global environment
//              with the literal constants true, false, and null.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial builtin implementation

package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultRegistry creates a registry populated with the standard builtins.
// Output-producing builtins write to the given writer.
func DefaultRegistry(output io.Writer) *Registry {
	registry := NewRegistry()
	RegisterBuiltins(registry, output)
	return registry
}

// RegisterBuiltins registers the standard builtins into an existing
// registry; names that are already taken are left as they are
func RegisterBuiltins(registry *Registry, output io.Writer) {
	builtins := map[string]NativeFn{
		"print":   builtinPrint(output, false),
		"println": builtinPrint(output, true),
		"len":     builtinLen,
		"type":    builtinType,
		"str":     builtinStr,
		"num":     builtinNum,
		"time":    builtinTime,
		"clock":   builtinClock,
	}

	for name, fn := range builtins {
		if registry.Has(name) {
			continue
		}
		// Register only fails on blank names or nil functions
		_ = registry.Register(name, fn)
	}
}

// NewGlobalEnvironment creates a root scope seeded with the literal
// constants and the registry's natives, all bound as constants
func NewGlobalEnvironment(registry *Registry) *Environment {
	env := NewEnvironment(nil)

	_, _ = env.Declare("true", BoolValue{Value: true}, true)
	_, _ = env.Declare("false", BoolValue{Value: false}, true)
	_, _ = env.Declare("null", NullValue{}, true)

	if registry != nil {
		for _, name := range registry.Names() {
			fn, ok := registry.Lookup(name)
			if !ok {
				continue
			}
			// Natives that collide with the seeded constants lose; the
			// literals keep their meaning
			_, _ = env.Declare(name, fn, true)
		}
	}

	return env
}

// builtinPrint writes the space-joined display forms of its arguments.
// println appends a newline, print does not.
func builtinPrint(output io.Writer, newline bool) NativeFn {
	return func(args []Value) (Value, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, arg.String())
		}

		text := strings.Join(parts, " ")
		if newline {
			text += "\n"
		}

		if _, err := io.WriteString(output, text); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		return NullValue{}, nil
	}
}

// builtinLen returns the length of a string (in runes) or the property
// count of an object
func builtinLen(args []Value) (Value, error) {
	if err := expectArgs("len", args, 1); err != nil {
		return nil, err
	}

	switch value := args[0].(type) {
	case StringValue:
		return NumberValue{Value: float64(utf8.RuneCountInString(value.Value))}, nil
	case *ObjectValue:
		return NumberValue{Value: float64(value.Len())}, nil
	default:
		return nil, fmt.Errorf("len: cannot measure %s value", args[0].Type())
	}
}

// builtinType returns the type name of its argument
func builtinType(args []Value) (Value, error) {
	if err := expectArgs("type", args, 1); err != nil {
		return nil, err
	}
	return StringValue{Value: args[0].Type().String()}, nil
}

// builtinStr converts a value to its display string
func builtinStr(args []Value) (Value, error) {
	if err := expectArgs("str", args, 1); err != nil {
		return nil, err
	}
	return StringValue{Value: args[0].String()}, nil
}

// builtinNum converts numbers, numeric strings, and booleans to a number
func builtinNum(args []Value) (Value, error) {
	if err := expectArgs("num", args, 1); err != nil {
		return nil, err
	}

	switch value := args[0].(type) {
	case NumberValue:
		return value, nil
	case StringValue:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Value), 64)
		if err != nil {
			return nil, fmt.Errorf("num: cannot convert %q to number", value.Value)
		}
		return NumberValue{Value: parsed}, nil
	case BoolValue:
		if value.Value {
			return NumberValue{Value: 1}, nil
		}
		return NumberValue{Value: 0}, nil
	default:
		return nil, fmt.Errorf("num: cannot convert %s value to number", args[0].Type())
	}
}

// builtinTime returns the current Unix time in whole seconds
func builtinTime(args []Value) (Value, error) {
	if err := expectArgs("time", args, 0); err != nil {
		return nil, err
	}
	return NumberValue{Value: float64(time.Now().Unix())}, nil
}

// builtinClock returns the current Unix time in fractional seconds, for
// timing script sections
func builtinClock(args []Value) (Value, error) {
	if err := expectArgs("clock", args, 0); err != nil {
		return nil, err
	}
	return NumberValue{Value: float64(time.Now().UnixNano()) / float64(time.Second)}, nil
}

// expectArgs checks an exact builtin arity
func expectArgs(name string, args []Value, want int) error {
	if len(args) == want {
		return nil
	}

	plural := "arguments"
	if want == 1 {
		plural = "argument"
	}
	return fmt.Errorf("%s: expected %d %s, got %d", name, want, plural, len(args))
}
