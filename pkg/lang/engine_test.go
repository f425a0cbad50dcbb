// File: engine_test.go
// Title: ockham Engine Tests
// Description: Unit tests for the engine facade covering runs, parse
//              caching, syntax checking, formatting, error codes, and
//              context cancellation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial engine test suite

package lang

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	okerror "github.com/msto63/ockham/pkg/core/error"
	okinterp "github.com/msto63/ockham/pkg/lang/interpreter"
)

func newTestEngine(t *testing.T, output io.Writer) *Engine {
	t.Helper()
	engine, err := NewEngine(Options{Output: output, EnableCache: true})
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestNewEngine_Defaults(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	if engine.Registry() == nil {
		t.Fatal("Expected default registry")
	}
	if !engine.Registry().Has("print") {
		t.Error("Default registry should carry builtins")
	}
	if engine.CacheStats() == nil {
		t.Error("Cache should be enabled by default")
	}
}

func TestNewEngine_CacheDisabled(t *testing.T) {
	engine, err := NewEngine(Options{Output: io.Discard})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	if engine.CacheStats() != nil {
		t.Error("Cache should be off when options do not enable it")
	}
}

func TestEngine_Run(t *testing.T) {
	var out bytes.Buffer
	engine := newTestEngine(t, &out)

	tests := []struct {
		name       string
		source     string
		wantErr    bool
		wantCode   okerror.Code
		wantOutput string
		check      func(t *testing.T, result *Result)
	}{
		{
			name:   "Arithmetic",
			source: "set x = 2; x * 21;",
			check: func(t *testing.T, result *Result) {
				num, ok := result.Value.(okinterp.NumberValue)
				if !ok || num.Value != 42 {
					t.Errorf("Expected 42, got %v", result.Value)
				}
			},
		},
		{
			name:       "Print output reaches the writer",
			source:     `println("hello", 1 + 1);`,
			wantOutput: "hello 2\n",
			check: func(t *testing.T, result *Result) {
				if !result.IsNull() {
					t.Errorf("Expected null result, got %v", result.Value)
				}
			},
		},
		{
			name:   "Function definition and call",
			source: "fun area(w, h) { w * h } area(6, 7);",
			check: func(t *testing.T, result *Result) {
				num, ok := result.Value.(okinterp.NumberValue)
				if !ok || num.Value != 42 {
					t.Errorf("Expected 42, got %v", result.Value)
				}
			},
		},
		{
			name:     "Declaration error",
			source:   "fun f(1) {}",
			wantErr:  true,
			wantCode: okerror.CodeDeclaration,
		},
		{
			name:     "Syntax error",
			source:   "set x = ;",
			wantErr:  true,
			wantCode: okerror.CodeSyntax,
		},
		{
			name:     "Runtime error keeps its code",
			source:   "1 / 0;",
			wantErr:  true,
			wantCode: okerror.CodeDivisionByZero,
		},
		{
			name:     "Undefined variable",
			source:   "missing;",
			wantErr:  true,
			wantCode: okerror.CodeUndefinedVariable,
		},
		{
			name:     "Blank source",
			source:   "   ",
			wantErr:  true,
			wantCode: okerror.CodeInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			result, err := engine.Run(context.Background(), tt.source)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if got := okerror.GetCode(err); got != tt.wantCode {
					t.Errorf("Expected code %s, got %s (%v)", tt.wantCode, got, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if !result.Success {
				t.Error("Expected Success")
			}
			if len(result.RunID) != 36 {
				t.Errorf("Expected uuid RunID, got %q", result.RunID)
			}
			if result.Program == nil {
				t.Error("Expected parsed program in result")
			}
			if result.Source != tt.source {
				t.Errorf("Expected source to round-trip, got %q", result.Source)
			}
			if tt.wantOutput != "" && out.String() != tt.wantOutput {
				t.Errorf("Expected output %q, got %q", tt.wantOutput, out.String())
			}
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestEngine_RunUsesFreshSessions(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	if _, err := engine.Run(context.Background(), "set x = 1;"); err != nil {
		t.Fatalf("First run failed: %v", err)
	}

	_, err := engine.Run(context.Background(), "x;")
	if err == nil {
		t.Fatal("Expected undefined variable in a fresh session")
	}
	if got := okerror.GetCode(err); got != okerror.CodeUndefinedVariable {
		t.Errorf("Expected %s, got %s", okerror.CodeUndefinedVariable, got)
	}
}

func TestEngine_ParseCache(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	source := "set x = 1; x + 1;"
	first, err := engine.Parse(source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	second, err := engine.Parse(source)
	if err != nil {
		t.Fatalf("Second parse failed: %v", err)
	}

	if first != second {
		t.Error("Expected cached program to be shared")
	}

	stats := engine.CacheStats()
	if stats == nil {
		t.Fatal("Expected cache stats")
	}
	if hits, ok := stats["program_hits"].(int64); !ok || hits < 1 {
		t.Errorf("Expected at least one cache hit, got %v", stats["program_hits"])
	}
}

func TestEngine_ParseWithoutCache(t *testing.T) {
	engine, err := NewEngine(Options{Output: io.Discard, EnableCache: false})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	source := "set x = 1;"
	first, _ := engine.Parse(source)
	second, _ := engine.Parse(source)
	if first == second {
		t.Error("Expected distinct programs when caching is off")
	}
}

func TestEngine_CheckSyntax(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	if err := engine.CheckSyntax("set x = 1; if (x == 1) { println(x); }"); err != nil {
		t.Errorf("Expected valid syntax, got: %v", err)
	}

	err := engine.CheckSyntax("if (a == b { 1 }")
	if err == nil {
		t.Fatal("Expected syntax error")
	}
	if got := okerror.GetCode(err); got != okerror.CodeSyntax {
		t.Errorf("Expected %s, got %s", okerror.CodeSyntax, got)
	}

	err = engine.CheckSyntax("lock c;")
	if err == nil {
		t.Fatal("Expected declaration error")
	}
	if got := okerror.GetCode(err); got != okerror.CodeDeclaration {
		t.Errorf("Expected %s, got %s", okerror.CodeDeclaration, got)
	}
}

func TestEngine_Format(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "Declaration spacing",
			source:   "set x=1;",
			expected: "set x = 1;",
		},
		{
			name:     "Block layout",
			source:   "if x{println(x);}",
			expected: "if x {\n  println(x);\n}",
		},
		{
			name:     "Statement separation",
			source:   "set x = 1;   set y = 2;",
			expected: "set x = 1;\nset y = 2;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted, err := engine.Format(tt.source)
			if err != nil {
				t.Fatalf("Format failed: %v", err)
			}
			if formatted != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, formatted)
			}

			// Formatting is idempotent
			again, err := engine.Format(formatted)
			if err != nil {
				t.Fatalf("Reformat failed: %v", err)
			}
			if again != formatted {
				t.Errorf("Expected stable formatting, got %q then %q", formatted, again)
			}
		})
	}

	if _, err := engine.Format("set = 1;"); err == nil {
		t.Error("Expected error for unparsable source")
	}
}

func TestEngine_ContextCancellation(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, "set x = 1; x;")
	if err == nil {
		t.Fatal("Expected cancellation error")
	}
	if got := okerror.GetCode(err); got != okerror.CodeTimeout {
		t.Errorf("Expected %s, got %s", okerror.CodeTimeout, got)
	}
	if !strings.Contains(err.Error(), "run cancelled") {
		t.Errorf("Expected cancellation message, got: %v", err)
	}
}

func TestEngine_MaxSourceLength(t *testing.T) {
	engine, err := NewEngine(Options{Output: io.Discard, MaxSourceLength: 10})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	// Exactly at the limit
	if _, err := engine.Parse("set x = 1;"); err != nil {
		t.Errorf("Expected source at limit to parse, got: %v", err)
	}

	_, err = engine.Parse("set xx = 1;")
	if err == nil {
		t.Fatal("Expected length error")
	}
	if got := okerror.GetCode(err); got != okerror.CodeSourceTooLarge {
		t.Errorf("Expected %s, got %s", okerror.CodeSourceTooLarge, got)
	}
}

func TestEngine_CustomNatives(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	err := engine.Registry().Register("answer", func(args []okinterp.Value) (okinterp.Value, error) {
		return okinterp.NumberValue{Value: 42}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	result, err := engine.Run(context.Background(), "answer();")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	num, ok := result.Value.(okinterp.NumberValue)
	if !ok || num.Value != 42 {
		t.Errorf("Expected 42, got %v", result.Value)
	}
}

func TestResult_String(t *testing.T) {
	engine := newTestEngine(t, io.Discard)

	result, err := engine.Run(context.Background(), "40 + 2;")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	summary := result.String()
	if !strings.Contains(summary, "SUCCESS") || !strings.Contains(summary, "42") {
		t.Errorf("Unexpected summary: %s", summary)
	}
	if result.IsNull() {
		t.Error("Numeric result should not be null")
	}
}

func BenchmarkEngine_Run(b *testing.B) {
	engine, err := NewEngine(Options{Output: io.Discard, EnableCache: true})
	if err != nil {
		b.Fatalf("NewEngine failed: %v", err)
	}
	defer engine.Close()

	source := "fun fib(n) { if (n == 0) { 0 } else if (n == 1) { 1 } else { fib(n - 1) + fib(n - 2) } } fib(10);"
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Run(ctx, source); err != nil {
			b.Fatalf("Run failed: %v", err)
		}
	}
}
