// File: doc.go
// Title: ockham Abstract Syntax Tree Package Documentation
// Description: Defines the Abstract Syntax Tree nodes and structures for
//              representing parsed ockham programs. Provides visitor patterns
//              and tree manipulation utilities.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial AST implementation

/*
Package ast defines the Abstract Syntax Tree structures for ockham programs.

This package provides the node definitions, visitor patterns, and utilities
for representing and manipulating parsed ockham source as structured data.

The AST enables:
  • Structured representation of ockham programs
  • Canonical source rendering via String() for formatting and round-trips
  • Tree traversal, analysis, and validation via visitors
  • JSON export for external tooling
*/
package ast
