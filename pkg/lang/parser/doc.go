// File: doc.go
// Title: ockham Parser Package Documentation
// Description: Implements the lexical analyzer and parser for ockham source.
//              Converts ockham source text into structured AST representations
//              with structured error reporting and position tracking.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial parser implementation

/*
Package parser provides lexical analysis and parsing capabilities for ockham source.

This package implements a recursive descent parser that converts ockham
source text into Abstract Syntax Tree (AST) representations. It includes:

  • Lexical analyzer (tokenizer) for ockham syntax
  • Recursive descent parser with one token of lookahead
  • Structured syntax and declaration errors with position information
  • Support for all ockham language constructs

The parser operates on an immutable token slice behind an index cursor and
produces well-formed AST nodes that can be printed, validated, and executed
by other components. Equality comparison is only recognized inside
parentheses; arithmetic follows the usual additive and multiplicative
precedence levels.
*/
package parser
