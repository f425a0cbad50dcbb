// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error
//              classification across the ockham toolchain. These codes enable
//              structured error handling, exit code mapping, and diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial implementation with core error codes

package error

// Code represents a structured error code for categorizing errors
type Code string

// Core error codes for the ockham toolchain
const (
	// Generic codes
	CodeUnknown        Code = "UNKNOWN"
	CodeInternal       Code = "INTERNAL"
	CodeNotFound       Code = "NOT_FOUND"
	CodeInvalidInput   Code = "INVALID_INPUT"
	CodeTimeout        Code = "TIMEOUT"
	CodeNotImplemented Code = "NOT_IMPLEMENTED"

	// Language front-end
	CodeSyntax          Code = "SYNTAX_ERROR"
	CodeDeclaration     Code = "DECLARATION_ERROR"
	CodeUnexpectedToken Code = "UNEXPECTED_TOKEN"
	CodeUnexpectedEOF   Code = "UNEXPECTED_EOF"
	CodeIllegalToken    Code = "ILLEGAL_TOKEN"
	CodeSourceTooLarge  Code = "SOURCE_TOO_LARGE"

	// Evaluation
	CodeRuntime            Code = "RUNTIME_ERROR"
	CodeUndefinedVariable  Code = "UNDEFINED_VARIABLE"
	CodeDuplicateVariable  Code = "DUPLICATE_VARIABLE"
	CodeConstantAssignment Code = "CONSTANT_ASSIGNMENT"
	CodeTypeMismatch       Code = "TYPE_MISMATCH"
	CodeDivisionByZero     Code = "DIVISION_BY_ZERO"
	CodeNotCallable        Code = "NOT_CALLABLE"
	CodeUndefinedProperty  Code = "UNDEFINED_PROPERTY"

	// Storage and I/O
	CodeStorageError Code = "STORAGE_ERROR"
	CodeIOError      Code = "IO_ERROR"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeMissingConfig    Code = "MISSING_CONFIG"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout, CodeNotImplemented,
		CodeSyntax, CodeDeclaration, CodeUnexpectedToken, CodeUnexpectedEOF, CodeIllegalToken, CodeSourceTooLarge,
		CodeRuntime, CodeUndefinedVariable, CodeDuplicateVariable, CodeConstantAssignment,
		CodeTypeMismatch, CodeDivisionByZero, CodeNotCallable, CodeUndefinedProperty,
		CodeStorageError, CodeIOError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax, CodeDeclaration, CodeUnexpectedToken, CodeUnexpectedEOF, CodeIllegalToken, CodeSourceTooLarge:
		return "parse"
	case CodeRuntime, CodeUndefinedVariable, CodeDuplicateVariable, CodeConstantAssignment,
		CodeTypeMismatch, CodeDivisionByZero, CodeNotCallable, CodeUndefinedProperty:
		return "runtime"
	case CodeStorageError, CodeIOError:
		return "storage"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError:
		return "configuration"
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange:
		return "validation"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit code for this error code, following
// the sysexits.h conventions used by command line tools
func (c Code) ExitCode() int {
	switch c {
	case CodeInvalidInput, CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange:
		return 64 // EX_USAGE
	case CodeSyntax, CodeDeclaration, CodeUnexpectedToken, CodeUnexpectedEOF, CodeIllegalToken, CodeSourceTooLarge:
		return 65 // EX_DATAERR
	case CodeNotFound:
		return 66 // EX_NOINPUT
	case CodeStorageError, CodeIOError:
		return 74 // EX_IOERR
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError:
		return 78 // EX_CONFIG
	case CodeRuntime, CodeUndefinedVariable, CodeDuplicateVariable, CodeConstantAssignment,
		CodeTypeMismatch, CodeDivisionByZero, CodeNotCallable, CodeUndefinedProperty:
		return 1
	default:
		return 70 // EX_SOFTWARE
	}
}
