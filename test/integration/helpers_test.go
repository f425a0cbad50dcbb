package integration

import (
	"bytes"
	"testing"

	"github.com/msto63/ockham/pkg/lang"
	okinterp "github.com/msto63/ockham/pkg/lang/interpreter"
)

// newTestEngine creates an engine whose print output goes to the returned
// buffer. The engine is closed when the test finishes.
func newTestEngine(t *testing.T, opts ...lang.Options) (*lang.Engine, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	options := lang.Options{Output: &out}
	if len(opts) > 0 {
		options = opts[0]
		options.Output = &out
	}

	engine, err := lang.NewEngine(options)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	t.Cleanup(func() {
		engine.Close()
	})

	return engine, &out
}

// requireNoError fails the test if err is not nil
func requireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

// requireError fails the test if err is nil
func requireError(t *testing.T, err error, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected an error", msg)
	}
}

// requireTrue fails the test if condition is false
func requireTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Fatalf("Expected true: %s", msg)
	}
}

// requireEqual fails the test if expected != actual
func requireEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Fatalf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// requireNotEmpty fails the test if value is empty
func requireNotEmpty(t *testing.T, value string, msg string) {
	t.Helper()
	if value == "" {
		t.Fatalf("%s: expected non-empty string", msg)
	}
}

// requireNumber fails the test unless the value is a number equal to want
func requireNumber(t *testing.T, value okinterp.Value, want float64, msg string) {
	t.Helper()
	num, ok := value.(okinterp.NumberValue)
	if !ok {
		t.Fatalf("%s: expected number, got %T (%v)", msg, value, value)
	}
	if num.Value != want {
		t.Fatalf("%s: expected %v, got %v", msg, want, num.Value)
	}
}

// logTestStart logs the start of a test with component info
func logTestStart(t *testing.T, component, testName string) {
	t.Helper()
	t.Logf("=== %s: %s ===", component, testName)
}
