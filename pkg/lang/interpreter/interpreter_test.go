// File: interpreter_test.go
// Title: ockham Interpreter Tests
// Description: Unit tests for the tree-walking evaluator. Tests cover
//              arithmetic, equality, scoping, objects, functions, builtin
//              natives, and runtime error codes and positions.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial interpreter test suite

package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	okerror "github.com/msto63/ockham/pkg/core/error"
	okast "github.com/msto63/ockham/pkg/lang/ast"
	okparser "github.com/msto63/ockham/pkg/lang/parser"
)

func newTestInterpreter(t *testing.T, output io.Writer) *Interpreter {
	t.Helper()
	interp, err := New(Options{Output: output})
	if err != nil {
		t.Fatalf("Failed to create interpreter: %v", err)
	}
	return interp
}

func mustParse(t *testing.T, source string) *okast.Program {
	t.Helper()
	program, err := okparser.ParseSource(source)
	if err != nil {
		t.Fatalf("Parse failed for %q: %v", source, err)
	}
	return program
}

// evalCode runs source against a fresh global environment.
func evalCode(t *testing.T, interp *Interpreter, source string) (Value, error) {
	t.Helper()
	return interp.Evaluate(mustParse(t, source), interp.GlobalEnvironment())
}

func asRuntimeError(t *testing.T, err error) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatal("Expected runtime error, got nil")
	}
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("Expected *RuntimeError, got %T: %v", err, err)
	}
	return runtimeErr
}

func assertNumber(t *testing.T, value Value, expected float64) {
	t.Helper()
	num, ok := value.(NumberValue)
	if !ok {
		t.Fatalf("Expected number, got %T (%v)", value, value)
	}
	if num.Value != expected {
		t.Errorf("Expected %v, got %v", expected, num.Value)
	}
}

func assertString(t *testing.T, value Value, expected string) {
	t.Helper()
	str, ok := value.(StringValue)
	if !ok {
		t.Fatalf("Expected string, got %T (%v)", value, value)
	}
	if str.Value != expected {
		t.Errorf("Expected %q, got %q", expected, str.Value)
	}
}

func assertBool(t *testing.T, value Value, expected bool) {
	t.Helper()
	b, ok := value.(BoolValue)
	if !ok {
		t.Fatalf("Expected bool, got %T (%v)", value, value)
	}
	if b.Value != expected {
		t.Errorf("Expected %v, got %v", expected, b.Value)
	}
}

func assertNull(t *testing.T, value Value) {
	t.Helper()
	if _, ok := value.(NullValue); !ok {
		t.Fatalf("Expected null, got %T (%v)", value, value)
	}
}

func TestNew_Defaults(t *testing.T) {
	interp, err := New(Options{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if interp.Registry() == nil {
		t.Fatal("Expected default registry")
	}
	if !interp.Registry().Has("print") {
		t.Error("Default registry should carry builtins")
	}
	if interp.GlobalEnvironment() == nil {
		t.Error("Expected global environment")
	}
}

func TestEvaluate_InputValidation(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	if _, err := interp.Evaluate(nil, interp.GlobalEnvironment()); err == nil {
		t.Error("Expected error for nil node")
	}
	if _, err := interp.Evaluate(mustParse(t, "1;"), nil); err == nil {
		t.Error("Expected error for nil environment")
	}
}

func TestInterpreter_Literals(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Value)
	}{
		{
			name:  "Number",
			input: "42;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 42) },
		},
		{
			name:  "Float",
			input: "3.14;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3.14) },
		},
		{
			name:  "String",
			input: `"hello";`,
			check: func(t *testing.T, value Value) { assertString(t, value, "hello") },
		},
		{
			name:  "True constant",
			input: "true;",
			check: func(t *testing.T, value Value) { assertBool(t, value, true) },
		},
		{
			name:  "Null constant",
			input: "null;",
			check: func(t *testing.T, value Value) { assertNull(t, value) },
		},
		{
			name:  "Empty program",
			input: "",
			check: func(t *testing.T, value Value) { assertNull(t, value) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			tt.check(t, value)
		})
	}
}

func TestInterpreter_Arithmetic(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Addition", input: "1 + 2;", expected: 3},
		{name: "Subtraction", input: "10 - 4;", expected: 6},
		{name: "Multiplication", input: "6 * 7;", expected: 42},
		{name: "Division", input: "10 / 4;", expected: 2.5},
		{name: "Modulo", input: "10 % 3;", expected: 1},
		{name: "Fractional modulo", input: "7 % 2.5;", expected: 2},
		{name: "Precedence", input: "2 + 3 * 4;", expected: 14},
		{name: "Grouping", input: "(2 + 3) * 4;", expected: 20},
		{name: "Left associative division", input: "20 / 4 / 5;", expected: 1},
		{name: "Left associative subtraction", input: "1 - 2 - 3;", expected: -4},
		{name: "Mixed chain", input: "1 + 10 % 4 * 2;", expected: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			assertNumber(t, value, tt.expected)
		})
	}
}

func TestInterpreter_StringConcatenation(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Simple", input: `"foo" + "bar";`, expected: "foobar"},
		{name: "Chained", input: `"a" + "b" + "c";`, expected: "abc"},
		{name: "Empty left", input: `"" + "x";`, expected: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			assertString(t, value, tt.expected)
		})
	}
}

func TestInterpreter_ArithmeticErrors(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name   string
		input  string
		code   okerror.Code
		errMsg string
	}{
		{
			name:   "Division by zero",
			input:  "1 / 0;",
			code:   okerror.CodeDivisionByZero,
			errMsg: "division by zero",
		},
		{
			name:   "Modulo by zero",
			input:  "5 % 0;",
			code:   okerror.CodeDivisionByZero,
			errMsg: "modulo by zero",
		},
		{
			name:   "String plus number",
			input:  `"a" + 1;`,
			code:   okerror.CodeTypeMismatch,
			errMsg: "unsupported operand types for +: string and number",
		},
		{
			name:   "Number minus string",
			input:  `1 - "a";`,
			code:   okerror.CodeTypeMismatch,
			errMsg: "unsupported operand types for -: number and string",
		},
		{
			name:   "String subtraction",
			input:  `"a" - "b";`,
			code:   okerror.CodeTypeMismatch,
			errMsg: "unsupported operand types for -: string and string",
		},
		{
			name:   "Boolean arithmetic",
			input:  "true + true;",
			code:   okerror.CodeTypeMismatch,
			errMsg: "unsupported operand types for +: bool and bool",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalCode(t, interp, tt.input)
			runtimeErr := asRuntimeError(t, err)
			if runtimeErr.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, runtimeErr.Code)
			}
			if !strings.Contains(runtimeErr.Error(), tt.errMsg) {
				t.Errorf("Expected message containing %q, got: %v", tt.errMsg, runtimeErr)
			}
		})
	}
}

func TestInterpreter_Equality(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "Equal numbers", input: "(1 == 1);", expected: true},
		{name: "Unequal numbers", input: "(1 == 2);", expected: false},
		{name: "Inequality", input: "(1 != 2);", expected: true},
		{name: "Equal strings", input: `("a" == "a");`, expected: true},
		{name: "String not number", input: `("1" == 1);`, expected: false},
		{name: "Null equals null", input: "(null == null);", expected: true},
		{name: "Booleans", input: "(true != false);", expected: true},
		{name: "Arithmetic operand", input: "(1 + 2 == 3);", expected: true},
		{name: "Distinct objects differ", input: "set a = {}; set b = {}; (a == b);", expected: false},
		{name: "Aliased objects match", input: "set a = {}; set b = a; (a == b);", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			assertBool(t, value, tt.expected)
		})
	}
}

func TestInterpreter_Declarations(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Value)
	}{
		{
			name:  "Variable with value",
			input: "set x = 5; x;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 5) },
		},
		{
			name:  "Variable without value reads null",
			input: "set x; x;",
			check: func(t *testing.T, value Value) { assertNull(t, value) },
		},
		{
			name:  "Constant",
			input: "lock pi = 3.14; pi;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3.14) },
		},
		{
			name:  "Initializer expression",
			input: "set x = 1 + 2; x * 2;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 6) },
		},
		{
			name:  "Declaration yields its value",
			input: "set x = 5;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 5) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			tt.check(t, value)
		})
	}
}

func TestInterpreter_DeclarationErrors(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
	}{
		{name: "Redeclared variable", input: "set x = 1; set x = 2;"},
		{name: "Redeclared constant", input: "lock c = 1; lock c = 2;"},
		{name: "Shadowing a global literal", input: "set true = 1;"},
		{name: "Shadowing a native", input: "set print = 1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalCode(t, interp, tt.input)
			runtimeErr := asRuntimeError(t, err)
			if runtimeErr.Code != okerror.CodeDuplicateVariable {
				t.Errorf("Expected %s, got %s", okerror.CodeDuplicateVariable, runtimeErr.Code)
			}
			if !strings.Contains(runtimeErr.Error(), "already declared") {
				t.Errorf("Expected duplicate message, got: %v", runtimeErr)
			}
		})
	}
}

func TestInterpreter_Assignment(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Simple", input: "set x = 1; x = 2; x;", expected: 2},
		{name: "Self reference", input: "set x = 1; x = x + 1; x;", expected: 2},
		{name: "Assignment yields its value", input: "set x = 1; x = 42;", expected: 42},
		{name: "Right associative chain", input: "set a = 1; set b = 2; a = b = 9; a + b;", expected: 18},
		{name: "Member write", input: "set o = { a: 1 }; o.a = 5; o.a;", expected: 5},
		{name: "New member write", input: "set o = {}; o.b = 2; o.b;", expected: 2},
		{name: "Computed member write", input: `set o = {}; o["k"] = 1; o.k;`, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			assertNumber(t, value, tt.expected)
		})
	}
}

func TestInterpreter_NumberKeysNormalize(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	value, err := evalCode(t, interp, `set o = {}; o[1] = "one"; o["1"];`)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	assertString(t, value, "one")
}

func TestInterpreter_AssignmentErrors(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name   string
		input  string
		code   okerror.Code
		errMsg string
	}{
		{
			name:   "Constant reassignment",
			input:  "lock pi = 3; pi = 4;",
			code:   okerror.CodeConstantAssignment,
			errMsg: "cannot assign to constant pi",
		},
		{
			name:   "Global literal reassignment",
			input:  "true = false;",
			code:   okerror.CodeConstantAssignment,
			errMsg: "cannot assign to constant true",
		},
		{
			name:   "Undefined target",
			input:  "ghost = 1;",
			code:   okerror.CodeUndefinedVariable,
			errMsg: "undefined variable: ghost",
		},
		{
			name:   "Literal target",
			input:  "1 = 2;",
			code:   okerror.CodeRuntime,
			errMsg: "invalid assignment target: 1",
		},
		{
			name:   "Member of non-object",
			input:  "set x = 1; x.a = 2;",
			code:   okerror.CodeTypeMismatch,
			errMsg: "cannot assign to member of number value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalCode(t, interp, tt.input)
			runtimeErr := asRuntimeError(t, err)
			if runtimeErr.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, runtimeErr.Code)
			}
			if !strings.Contains(runtimeErr.Error(), tt.errMsg) {
				t.Errorf("Expected message containing %q, got: %v", tt.errMsg, runtimeErr)
			}
		})
	}
}

func TestInterpreter_Scoping(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	t.Run("Block variables do not leak", func(t *testing.T) {
		_, err := evalCode(t, interp, "set x = 1; if x { set y = 2; } y;")
		runtimeErr := asRuntimeError(t, err)
		if runtimeErr.Code != okerror.CodeUndefinedVariable {
			t.Errorf("Expected %s, got %s", okerror.CodeUndefinedVariable, runtimeErr.Code)
		}
	})

	t.Run("Block shadowing leaves outer intact", func(t *testing.T) {
		value, err := evalCode(t, interp, "set x = 1; if x { set x = 99; } x;")
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		assertNumber(t, value, 1)
	})

	t.Run("Assignment reaches outer scope", func(t *testing.T) {
		value, err := evalCode(t, interp, "set x = 1; if x { x = 5; } x;")
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		assertNumber(t, value, 5)
	})

	t.Run("Functions read enclosing scope", func(t *testing.T) {
		value, err := evalCode(t, interp, "set x = 10; fun get() { x } get();")
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		assertNumber(t, value, 10)
	})
}

func TestInterpreter_IfValues(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Value)
	}{
		{
			name:  "True branch",
			input: `if (1 == 1) { "yes" } else { "no" }`,
			check: func(t *testing.T, value Value) { assertString(t, value, "yes") },
		},
		{
			name:  "Zero is falsy",
			input: "if 0 { 1 } else { 2 }",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 2) },
		},
		{
			name:  "Empty string is falsy",
			input: `if "" { 1 } else { 2 }`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 2) },
		},
		{
			name:  "Nonempty string is truthy",
			input: `if "x" { 1 } else { 2 }`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 1) },
		},
		{
			name:  "Null is falsy",
			input: "if null { 1 } else { 2 }",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 2) },
		},
		{
			name:  "Empty object is truthy",
			input: "set o = {}; if o { 1 } else { 2 }",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 1) },
		},
		{
			name:  "No else yields null",
			input: "if 0 { 1 }",
			check: func(t *testing.T, value Value) { assertNull(t, value) },
		},
		{
			name:  "Empty consequent yields null",
			input: "if 1 {}",
			check: func(t *testing.T, value Value) { assertNull(t, value) },
		},
		{
			name:  "Else-if chain",
			input: `set x = 2; if (x == 1) { "one" } else if (x == 2) { "two" } else { "many" }`,
			check: func(t *testing.T, value Value) { assertString(t, value, "two") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			tt.check(t, value)
		})
	}
}

func TestInterpreter_Objects(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Value)
	}{
		{
			name:  "Property reads",
			input: "set o = { a: 1, b: 2 }; o.a + o.b;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3) },
		},
		{
			name:  "Shorthand property",
			input: "set x = 7; set o = { x }; o.x;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 7) },
		},
		{
			name:  "Computed read",
			input: `set o = { a: 1 }; o["a"];`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 1) },
		},
		{
			name:  "Nested objects",
			input: "set o = { inner: { deep: 3 } }; o.inner.deep;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3) },
		},
		{
			name:  "Missing property reads null",
			input: "set o = {}; (o.missing == null);",
			check: func(t *testing.T, value Value) { assertBool(t, value, true) },
		},
		{
			name:  "Rendering keeps insertion order",
			input: `set o = { b: 1, a: "x" }; str(o);`,
			check: func(t *testing.T, value Value) { assertString(t, value, `{ b: 1, a: "x" }`) },
		},
		{
			name:  "Length",
			input: "set o = { a: 1, b: 2 }; len(o);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 2) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			tt.check(t, value)
		})
	}
}

func TestInterpreter_ObjectErrors(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name   string
		input  string
		code   okerror.Code
		errMsg string
	}{
		{
			name:   "Undefined shorthand",
			input:  "set o = { ghost };",
			code:   okerror.CodeUndefinedVariable,
			errMsg: "undefined variable: ghost",
		},
		{
			name:   "Member of null",
			input:  "set o = {}; o.a.b;",
			code:   okerror.CodeTypeMismatch,
			errMsg: "cannot read member of null value",
		},
		{
			name:   "Member of number",
			input:  "set x = 5; x.a;",
			code:   okerror.CodeTypeMismatch,
			errMsg: "cannot read member of number value",
		},
		{
			name:   "Object as key",
			input:  "set o = {}; o[{}];",
			code:   okerror.CodeTypeMismatch,
			errMsg: "object key must be a string or number, got object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalCode(t, interp, tt.input)
			runtimeErr := asRuntimeError(t, err)
			if runtimeErr.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, runtimeErr.Code)
			}
			if !strings.Contains(runtimeErr.Error(), tt.errMsg) {
				t.Errorf("Expected message containing %q, got: %v", tt.errMsg, runtimeErr)
			}
		})
	}
}

func TestInterpreter_Functions(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Value)
	}{
		{
			name:  "Simple call",
			input: "fun add(a, b) { a + b } add(2, 3);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 5) },
		},
		{
			name:  "Result is last body statement",
			input: "fun f() { 1; 2; 3 } f();",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3) },
		},
		{
			name:  "Empty body yields null",
			input: "fun noop() {} noop();",
			check: func(t *testing.T, value Value) { assertNull(t, value) },
		},
		{
			name:  "Parameters shadow outer variables",
			input: "set a = 1; fun f(a) { a } f(9) + a;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 10) },
		},
		{
			name:  "Closure mutates captured state",
			input: "set count = 0; fun bump() { count = count + 1 } bump(); bump(); count;",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 2) },
		},
		{
			name:  "Recursion",
			input: "fun fib(n) { if (n == 0) { 0 } else if (n == 1) { 1 } else { fib(n - 1) + fib(n - 2) } } fib(10);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 55) },
		},
		{
			name:  "Function as value",
			input: "fun f() { 42 } set g = f; g();",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 42) },
		},
		{
			name:  "Declaration yields the function",
			input: "fun f(x) { x }",
			check: func(t *testing.T, value Value) {
				fn, ok := value.(*FunctionValue)
				if !ok {
					t.Fatalf("Expected function, got %T", value)
				}
				if fn.String() != "fun f(x)" {
					t.Errorf("Unexpected rendering: %s", fn.String())
				}
			},
		},
		{
			name:  "Nested function closes over local",
			input: "fun outer() { set x = 5; fun inner() { x } inner() } outer();",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 5) },
		},
		{
			name:  "Higher order call",
			input: "fun apply(f, v) { f(v) } fun double(x) { x * 2 } apply(double, 21);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 42) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			tt.check(t, value)
		})
	}
}

func TestInterpreter_FunctionErrors(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name   string
		input  string
		code   okerror.Code
		errMsg string
	}{
		{
			name:   "Too few arguments",
			input:  "fun f(a) { a } f();",
			code:   okerror.CodeRuntime,
			errMsg: "function f expects 1 argument, got 0",
		},
		{
			name:   "Too many arguments",
			input:  "fun f(a, b) { a } f(1, 2, 3);",
			code:   okerror.CodeRuntime,
			errMsg: "function f expects 2 arguments, got 3",
		},
		{
			name:   "Duplicate parameter",
			input:  "fun f(a, a) { a }",
			code:   okerror.CodeDuplicateVariable,
			errMsg: "duplicate parameter a in function f",
		},
		{
			name:   "Function redeclaration",
			input:  "fun f() {} fun f() {}",
			code:   okerror.CodeDuplicateVariable,
			errMsg: "already declared",
		},
		{
			name:   "Functions are constants",
			input:  "fun f() {} f = 1;",
			code:   okerror.CodeConstantAssignment,
			errMsg: "cannot assign to constant f",
		},
		{
			name:   "Number is not callable",
			input:  "set x = 5; x();",
			code:   okerror.CodeNotCallable,
			errMsg: "cannot call number value",
		},
		{
			name:   "Null is not callable",
			input:  "null();",
			code:   okerror.CodeNotCallable,
			errMsg: "cannot call null value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalCode(t, interp, tt.input)
			runtimeErr := asRuntimeError(t, err)
			if runtimeErr.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, runtimeErr.Code)
			}
			if !strings.Contains(runtimeErr.Error(), tt.errMsg) {
				t.Errorf("Expected message containing %q, got: %v", tt.errMsg, runtimeErr)
			}
		})
	}
}

func TestInterpreter_CallDepthLimit(t *testing.T) {
	var out bytes.Buffer
	interp, err := New(Options{Output: &out, MaxCallDepth: 25})
	if err != nil {
		t.Fatalf("Failed to create interpreter: %v", err)
	}

	_, err = evalCode(t, interp, "fun loop(n) { loop(n + 1) } loop(0);")
	runtimeErr := asRuntimeError(t, err)
	if runtimeErr.Code != okerror.CodeRuntime {
		t.Errorf("Expected %s, got %s", okerror.CodeRuntime, runtimeErr.Code)
	}
	if !strings.Contains(runtimeErr.Error(), "maximum call depth exceeded: 25") {
		t.Errorf("Expected depth message, got: %v", runtimeErr)
	}
}

func TestInterpreter_BuiltinOutput(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "Print joins with spaces", input: `print("a", 1);`, expected: "a 1"},
		{name: "Print adds no newline", input: `print("a"); print("b");`, expected: "ab"},
		{name: "Println appends newline", input: `println("hi");`, expected: "hi\n"},
		{name: "Display forms", input: "println(1, true, null);", expected: "1 true null\n"},
		{name: "Objects render inline", input: "println({ a: 1 });", expected: "{ a: 1 }\n"},
		{name: "Concatenation before print", input: `println("x" + "y");`, expected: "xy\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			assertNull(t, value)
			if out.String() != tt.expected {
				t.Errorf("Expected output %q, got %q", tt.expected, out.String())
			}
		})
	}
}

func TestInterpreter_BuiltinConversions(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, value Value)
	}{
		{
			name:  "Len counts runes",
			input: `len("äöü");`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3) },
		},
		{
			name:  "Len of empty string",
			input: `len("");`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 0) },
		},
		{
			name:  "Len of object literal",
			input: "len({ a: 1 });",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 1) },
		},
		{
			name:  "Type of number",
			input: "type(1);",
			check: func(t *testing.T, value Value) { assertString(t, value, "number") },
		},
		{
			name:  "Type of string",
			input: `type("x");`,
			check: func(t *testing.T, value Value) { assertString(t, value, "string") },
		},
		{
			name:  "Type of null",
			input: "type(null);",
			check: func(t *testing.T, value Value) { assertString(t, value, "null") },
		},
		{
			name:  "Type of bool",
			input: "type(true);",
			check: func(t *testing.T, value Value) { assertString(t, value, "bool") },
		},
		{
			name:  "Type of object",
			input: "type({});",
			check: func(t *testing.T, value Value) { assertString(t, value, "object") },
		},
		{
			name:  "Type of function",
			input: "fun f() {} type(f);",
			check: func(t *testing.T, value Value) { assertString(t, value, "function") },
		},
		{
			name:  "Type of native",
			input: "type(print);",
			check: func(t *testing.T, value Value) { assertString(t, value, "native") },
		},
		{
			name:  "Str of number",
			input: "str(3.14);",
			check: func(t *testing.T, value Value) { assertString(t, value, "3.14") },
		},
		{
			name:  "Str of bool",
			input: "str(true);",
			check: func(t *testing.T, value Value) { assertString(t, value, "true") },
		},
		{
			name:  "Str of null",
			input: "str(null);",
			check: func(t *testing.T, value Value) { assertString(t, value, "null") },
		},
		{
			name:  "Num parses strings",
			input: `num("3.5");`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 3.5) },
		},
		{
			name:  "Num trims whitespace",
			input: `num(" 42 ");`,
			check: func(t *testing.T, value Value) { assertNumber(t, value, 42) },
		},
		{
			name:  "Num of true",
			input: "num(true);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 1) },
		},
		{
			name:  "Num of false",
			input: "num(false);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 0) },
		},
		{
			name:  "Num passes numbers through",
			input: "num(7);",
			check: func(t *testing.T, value Value) { assertNumber(t, value, 7) },
		},
		{
			name:  "Time returns a number",
			input: "type(time());",
			check: func(t *testing.T, value Value) { assertString(t, value, "number") },
		},
		{
			name:  "Clock returns a number",
			input: "type(clock());",
			check: func(t *testing.T, value Value) { assertString(t, value, "number") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := evalCode(t, interp, tt.input)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			tt.check(t, value)
		})
	}
}

func TestInterpreter_BuiltinErrors(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{name: "Len of number", input: "len(1);", errMsg: "len: cannot measure number value"},
		{name: "Len with no arguments", input: "len();", errMsg: "len: expected 1 argument, got 0"},
		{name: "Len with two arguments", input: `len("a", "b");`, errMsg: "len: expected 1 argument, got 2"},
		{name: "Num of word", input: `num("abc");`, errMsg: `num: cannot convert "abc" to number`},
		{name: "Num of null", input: "num(null);", errMsg: "num: cannot convert null value to number"},
		{name: "Time takes no arguments", input: "time(1);", errMsg: "time: expected 0 arguments, got 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := evalCode(t, interp, tt.input)
			runtimeErr := asRuntimeError(t, err)
			if runtimeErr.Code != okerror.CodeRuntime {
				t.Errorf("Expected %s, got %s", okerror.CodeRuntime, runtimeErr.Code)
			}
			if !strings.Contains(runtimeErr.Error(), tt.errMsg) {
				t.Errorf("Expected message containing %q, got: %v", tt.errMsg, runtimeErr)
			}
		})
	}
}

func TestInterpreter_ErrorPositions(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	t.Run("Undefined variable location", func(t *testing.T) {
		_, err := evalCode(t, interp, "set x = 1;\nx = y;")
		runtimeErr := asRuntimeError(t, err)
		if runtimeErr.Pos.Line != 2 || runtimeErr.Pos.Column != 5 {
			t.Errorf("Expected 2:5, got %d:%d", runtimeErr.Pos.Line, runtimeErr.Pos.Column)
		}
		expected := "runtime error at line 2, column 5: undefined variable: y"
		if runtimeErr.Error() != expected {
			t.Errorf("Expected %q, got %q", expected, runtimeErr.Error())
		}
	})

	t.Run("Division by zero location", func(t *testing.T) {
		_, err := evalCode(t, interp, "1 / 0;")
		runtimeErr := asRuntimeError(t, err)
		if runtimeErr.Pos.Line != 1 || runtimeErr.Pos.Column != 3 {
			t.Errorf("Expected 1:3, got %d:%d", runtimeErr.Pos.Line, runtimeErr.Pos.Column)
		}
	})
}

func TestInterpreter_PersistentEnvironment(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	env := interp.GlobalEnvironment()

	if _, err := interp.Evaluate(mustParse(t, "set x = 1;"), env); err != nil {
		t.Fatalf("First evaluation failed: %v", err)
	}

	value, err := interp.Evaluate(mustParse(t, "x + 1;"), env)
	if err != nil {
		t.Fatalf("Second evaluation failed: %v", err)
	}
	assertNumber(t, value, 2)

	// Redeclaration across evaluations still fails
	_, err = interp.Evaluate(mustParse(t, "set x = 3;"), env)
	if asRuntimeError(t, err).Code != okerror.CodeDuplicateVariable {
		t.Error("Expected duplicate variable error across evaluations")
	}

	// A fresh environment does not see previous state
	_, err = interp.Evaluate(mustParse(t, "x;"), interp.GlobalEnvironment())
	if asRuntimeError(t, err).Code != okerror.CodeUndefinedVariable {
		t.Error("Expected undefined variable in fresh environment")
	}
}

func TestInterpreter_EvaluatesBareNodes(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterpreter(t, &out)

	program := mustParse(t, "40 + 2;")
	value, err := interp.Evaluate(program.Body[0], interp.GlobalEnvironment())
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	assertNumber(t, value, 42)
}

func TestInterpreter_CustomNatives(t *testing.T) {
	registry := NewRegistry()
	err := registry.Register("double", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("double: expected 1 argument, got %d", len(args))
		}
		num, ok := args[0].(NumberValue)
		if !ok {
			return nil, fmt.Errorf("double: expected number, got %s", args[0].Type())
		}
		return NumberValue{Value: num.Value * 2}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var out bytes.Buffer
	RegisterBuiltins(registry, &out)

	interp, err := New(Options{Registry: registry, Output: &out})
	if err != nil {
		t.Fatalf("Failed to create interpreter: %v", err)
	}

	value, err := evalCode(t, interp, "double(21);")
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	assertNumber(t, value, 42)

	// Native errors surface as positioned runtime errors
	_, err = evalCode(t, interp, "double();")
	runtimeErr := asRuntimeError(t, err)
	if runtimeErr.Code != okerror.CodeRuntime {
		t.Errorf("Expected %s, got %s", okerror.CodeRuntime, runtimeErr.Code)
	}
	if !strings.Contains(runtimeErr.Error(), "double: expected 1 argument") {
		t.Errorf("Expected native message, got: %v", runtimeErr)
	}
	if runtimeErr.Pos.Line != 1 {
		t.Errorf("Expected position on line 1, got %d", runtimeErr.Pos.Line)
	}
}

func BenchmarkEvaluate(b *testing.B) {
	interp, err := New(Options{Output: io.Discard})
	if err != nil {
		b.Fatalf("Failed to create interpreter: %v", err)
	}

	program, err := okparser.ParseSource("fun fib(n) { if (n == 0) { 0 } else if (n == 1) { 1 } else { fib(n - 1) + fib(n - 2) } } fib(15);")
	if err != nil {
		b.Fatalf("Parse failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := interp.Evaluate(program, interp.GlobalEnvironment()); err != nil {
			b.Fatalf("Evaluate failed: %v", err)
		}
	}
}
