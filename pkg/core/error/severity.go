// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors to enable proper
//              prioritization and logging. Severity drives the log level
//              chosen when an error is reported.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a minor error that doesn't affect core functionality
	// Examples: invalid user input, syntax errors in user scripts
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	// Examples: runtime errors in user scripts, recoverable storage issues
	SeverityMedium

	// SeverityHigh indicates a serious error that significantly impacts functionality
	// Examples: history database failures, broken configuration
	SeverityHigh

	// SeverityCritical indicates a critical error that makes the tool unusable
	// Examples: corrupted state, unusable environment
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldLog returns true if this severity level should be logged
func (s Severity) ShouldLog() bool {
	return true // All severities should be logged
}

// Priority returns a priority value for sorting (higher number = higher priority)
func (s Severity) Priority() int {
	return int(s)
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	// Critical system errors
	case CodeEnvironmentError:
		return SeverityCritical

	// High severity errors
	case CodeStorageError, CodeIOError, CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return SeverityHigh

	// Medium severity errors
	case CodeRuntime, CodeUndefinedVariable, CodeDuplicateVariable, CodeConstantAssignment,
		CodeTypeMismatch, CodeDivisionByZero, CodeNotCallable, CodeUndefinedProperty,
		CodeTimeout:
		return SeverityMedium

	// Low severity errors
	case CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeRequiredField,
		CodeInvalidFormat, CodeValueOutOfRange,
		CodeSyntax, CodeDeclaration, CodeUnexpectedToken, CodeUnexpectedEOF,
		CodeIllegalToken, CodeSourceTooLarge:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
