// File: values.go
// Title: ockham Runtime Value Types
// Description: Defines the runtime value system for the ockham interpreter.
//              Provides typed values for null, booleans, numbers, strings,
//              objects, functions, and native functions, plus truthiness
//              and equality semantics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial value system implementation

package interpreter

import (
	"fmt"
	"strconv"
	"strings"

	okast "github.com/msto63/ockham/pkg/lang/ast"
)

// Type identifies the runtime type of a value
type Type int

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeObject
	TypeFunction
	TypeNative
)

// String returns the type name as reported by the `type` builtin
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeFunction:
		return "function"
	case TypeNative:
		return "native"
	default:
		return "unknown"
	}
}

// Value is the interface implemented by every ockham runtime value
type Value interface {
	// Type returns the runtime type of the value
	Type() Type

	// String returns the display representation of the value
	String() string
}

// NullValue represents the null value
type NullValue struct{}

func (v NullValue) Type() Type     { return TypeNull }
func (v NullValue) String() string { return "null" }

// BoolValue represents a boolean value
type BoolValue struct {
	Value bool
}

func (v BoolValue) Type() Type { return TypeBool }

func (v BoolValue) String() string {
	if v.Value {
		return "true"
	}
	return "false"
}

// NumberValue represents a 64-bit floating point number
type NumberValue struct {
	Value float64
}

func (v NumberValue) Type() Type     { return TypeNumber }
func (v NumberValue) String() string { return formatNumber(v.Value) }

// StringValue represents a string value
type StringValue struct {
	Value string
}

func (v StringValue) Type() Type     { return TypeString }
func (v StringValue) String() string { return v.Value }

// ObjectValue represents an object with insertion-ordered properties.
// Ordering makes printed objects deterministic.
type ObjectValue struct {
	keys  []string
	props map[string]Value
}

// NewObject creates an empty object value
func NewObject() *ObjectValue {
	return &ObjectValue{
		keys:  make([]string, 0),
		props: make(map[string]Value),
	}
}

func (v *ObjectValue) Type() Type { return TypeObject }

func (v *ObjectValue) String() string {
	if len(v.keys) == 0 {
		return "{}"
	}

	var parts []string
	for _, key := range v.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, displayValue(v.props[key])))
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

// Set stores a property, preserving first-insertion order for existing keys
func (v *ObjectValue) Set(key string, value Value) {
	if _, exists := v.props[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.props[key] = value
}

// Get returns a property value and whether it exists
func (v *ObjectValue) Get(key string) (Value, bool) {
	value, exists := v.props[key]
	return value, exists
}

// Has checks whether a property exists
func (v *ObjectValue) Has(key string) bool {
	_, exists := v.props[key]
	return exists
}

// Keys returns the property keys in insertion order
func (v *ObjectValue) Keys() []string {
	keys := make([]string, len(v.keys))
	copy(keys, v.keys)
	return keys
}

// Len returns the number of properties
func (v *ObjectValue) Len() int {
	return len(v.keys)
}

// FunctionValue represents a user-declared function closing over its
// declaration environment
type FunctionValue struct {
	Name       string
	Parameters []string
	Body       []okast.Stmt
	Closure    *Environment
}

func (v *FunctionValue) Type() Type { return TypeFunction }

func (v *FunctionValue) String() string {
	return fmt.Sprintf("fun %s(%s)", v.Name, strings.Join(v.Parameters, ", "))
}

// NativeFn is the signature of a Go-implemented builtin
type NativeFn func(args []Value) (Value, error)

// NativeFunction represents a builtin implemented in Go
type NativeFunction struct {
	Name string
	Fn   NativeFn
}

func (v *NativeFunction) Type() Type     { return TypeNative }
func (v *NativeFunction) String() string { return fmt.Sprintf("native fun %s", v.Name) }

// IsTruthy reports the conditional interpretation of a value: null, false,
// zero, and the empty string are falsy, everything else is truthy
func IsTruthy(v Value) bool {
	switch value := v.(type) {
	case NullValue:
		return false
	case BoolValue:
		return value.Value
	case NumberValue:
		return value.Value != 0
	case StringValue:
		return value.Value != ""
	default:
		return true
	}
}

// Equals compares two values. Primitives compare by value, objects and
// functions by identity, values of different types are never equal.
func Equals(a, b Value) bool {
	switch left := a.(type) {
	case NullValue:
		_, ok := b.(NullValue)
		return ok
	case BoolValue:
		right, ok := b.(BoolValue)
		return ok && left.Value == right.Value
	case NumberValue:
		right, ok := b.(NumberValue)
		return ok && left.Value == right.Value
	case StringValue:
		right, ok := b.(StringValue)
		return ok && left.Value == right.Value
	case *ObjectValue:
		right, ok := b.(*ObjectValue)
		return ok && left == right
	case *FunctionValue:
		right, ok := b.(*FunctionValue)
		return ok && left == right
	case *NativeFunction:
		right, ok := b.(*NativeFunction)
		return ok && left == right
	default:
		return false
	}
}

// formatNumber renders a float without exponent notation, matching the
// numeric literal syntax the lexer accepts
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// displayValue renders a value for embedding in object output; strings are
// quoted so `{ a: "1" }` and `{ a: 1 }` stay distinguishable
func displayValue(v Value) string {
	if str, ok := v.(StringValue); ok {
		return strconv.Quote(str.Value)
	}
	return v.String()
}
