// File: doc.go
// Title: ockham Interpreter Package Documentation
// Description: Implements the evaluation engine for ockham programs. Takes
//              parsed AST nodes and evaluates them against lexically scoped
//              environments with a native function registry.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial interpreter implementation

/*
Package interpreter provides evaluation capabilities for ockham programs.

This package implements a tree-walking interpreter that takes parsed ockham
programs (represented as AST nodes) and evaluates them by:

  • Walking statements and expressions with type-based dispatch
  • Resolving identifiers through lexically scoped environments
  • Enforcing constant bindings and declaration rules
  • Calling user-declared closures and Go-implemented natives
  • Reporting runtime errors with positions and error codes

Functions have no return keyword; a call evaluates to the last statement of
the function body. Objects keep their properties in insertion order, so
printed values are deterministic. The registry of native functions can be
extended by embedders before evaluation starts.
*/
package interpreter
