// File: doc.go
// Title: ockham Language Package Documentation
// Description: Implements the ockham scripting language engine for the
//              ockham toolchain. Integrates the lexer, parser, AST, and
//              tree-walking interpreter behind one embeddable facade with
//              sessions, parse caching, and canonical formatting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial engine facade

/*
Package lang implements the ockham scripting language engine.

Package: lang
Title: ockham Language Engine
Description: Provides parsing, evaluation, syntax checking, and canonical
             formatting for ockham scripts. The engine integrates the
             parser, AST, interpreter, and native registry subpackages and
             is the only surface the CLI, REPL, and embedders need.
Author: msto63
Version: v0.1.0
Created: 2026-05-12
Modified: 2026-05-12

Change History:
- 2026-05-12 v0.1.0: Initial engine facade

Key Features:
  • One-call script runs with structured results (value, run ID, duration)
  • Sessions with a persistent global environment for REPL use
  • Parse cache keyed by source hash; cached ASTs are immutable and shared
  • Syntax checking and canonical formatting without evaluation
  • Extensible native function registry
  • Structured errors with syntax/declaration/runtime codes

# Language Overview

ockham is a small scripting language with variables, constants, objects,
and functions:

	set greeting = "hello";
	lock pi = 3.14159;

	fun area(r) {
	    pi * r * r
	}

	set result = area(2);
	println(greeting, result);

	set point = { x: 1, y: 2 };
	point.x = point.x + 1;

	if (point.x == 2) {
	    println("moved");
	}

Declarations use set (mutable) and lock (constant). Functions return the
value of their last body statement; there is no return keyword. Equality
comparisons must be parenthesized.

# Basic Usage

Run a script:

	engine, err := lang.NewEngine()
	if err != nil {
	    // handle error
	}
	defer engine.Close()

	result, err := engine.Run(context.Background(), `set x = 2; x * 21;`)
	if err != nil {
	    // handle error
	}
	fmt.Println(result.Value) // 42

Keep state across runs with a session:

	session := engine.NewSession()
	session.Run(ctx, `set x = 1;`)
	session.Run(ctx, `x + 1;`) // sees x from the previous run

Register a custom native:

	engine.Registry().Register("shout", func(args []interpreter.Value) (interpreter.Value, error) {
	    return interpreter.StringValue{Value: strings.ToUpper(args[0].String())}, nil
	})

Check or format without running:

	err := engine.CheckSyntax(source)
	formatted, err := engine.Format(source)
*/
package lang
