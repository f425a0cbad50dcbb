// File: interpreter.go
// Title: ockham Tree-Walking Interpreter
// Description: Implements the evaluation phase of ockham execution. Walks
//              parsed AST nodes against lexically scoped environments,
//              dispatching on node type with structured runtime errors
//              carrying positions and error codes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial interpreter implementation

package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	okerror "github.com/msto63/ockham/pkg/core/error"
	oklog "github.com/msto63/ockham/pkg/core/log"
	okast "github.com/msto63/ockham/pkg/lang/ast"
)

// RuntimeError represents an evaluation failure with position information
type RuntimeError struct {
	Code    okerror.Code   // Error classification for the CLI and engine
	Message string         // Contextual message
	Pos     okast.Position // Source position of the failing node
}

func (re *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error at line %d, column %d: %s",
		re.Pos.Line, re.Pos.Column, re.Message)
}

// Interpreter evaluates ockham AST nodes. An interpreter is stateless
// between Evaluate calls; per-run state such as the call depth lives in an
// internal evaluation worker, so one interpreter may serve many sessions.
type Interpreter struct {
	registry *Registry
	logger   *oklog.Logger
	output   io.Writer
	options  Options
}

// Options configures interpreter behavior
type Options struct {
	Logger       *oklog.Logger
	Output       io.Writer
	Registry     *Registry
	MaxCallDepth int
}

// New creates a new ockham interpreter with the given options
func New(opts Options) (*Interpreter, error) {
	// Set defaults
	if opts.Logger == nil {
		opts.Logger = oklog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry(opts.Output)
	}
	if opts.MaxCallDepth == 0 {
		opts.MaxCallDepth = 1000
	}

	interp := &Interpreter{
		registry: opts.Registry,
		logger:   opts.Logger.WithField("component", "interpreter"),
		output:   opts.Output,
		options:  opts,
	}

	interp.logger.Info("Interpreter initialized", oklog.Fields{
		"natives":      len(opts.Registry.Names()),
		"maxCallDepth": opts.MaxCallDepth,
	})

	return interp, nil
}

// Registry returns the native function registry
func (i *Interpreter) Registry() *Registry {
	return i.registry
}

// GlobalEnvironment creates a fresh root scope seeded with the literal
// constants and this interpreter's natives
func (i *Interpreter) GlobalEnvironment() *Environment {
	return NewGlobalEnvironment(i.registry)
}

// Evaluate evaluates a node against an environment and returns the
// resulting value
func (i *Interpreter) Evaluate(node okast.Node, env *Environment) (Value, error) {
	if node == nil {
		return nil, errors.New("node cannot be nil")
	}
	if env == nil {
		return nil, errors.New("environment cannot be nil")
	}

	ev := &evaluation{interp: i}
	return ev.eval(node, env)
}

// evaluation carries the per-run state of one Evaluate call
type evaluation struct {
	interp    *Interpreter
	callDepth int
}

// eval dispatches on node type
func (ev *evaluation) eval(node okast.Node, env *Environment) (Value, error) {
	switch n := node.(type) {
	case *okast.Program:
		return ev.evalProgram(n, env)
	case *okast.VarDeclaration:
		return ev.evalVarDeclaration(n, env)
	case *okast.FunctionDeclaration:
		return ev.evalFunctionDeclaration(n, env)
	case *okast.IfStmt:
		return ev.evalIfStmt(n, env)
	case *okast.AssignmentExpr:
		return ev.evalAssignment(n, env)
	case *okast.ObjectLiteral:
		return ev.evalObjectLiteral(n, env)
	case *okast.Property:
		// Properties are evaluated through their object literal
		return nil, runtimeError(okerror.CodeRuntime, n.Position(),
			"property %s outside an object literal", n.Key)
	case *okast.BinaryExpr:
		return ev.evalBinary(n, env)
	case *okast.EqualityExpr:
		return ev.evalEquality(n, env)
	case *okast.CallExpr:
		return ev.evalCall(n, env)
	case *okast.MemberExpr:
		return ev.evalMember(n, env)
	case *okast.Identifier:
		value, ok := env.Lookup(n.Symbol)
		if !ok {
			return nil, runtimeError(okerror.CodeUndefinedVariable, n.Position(),
				"undefined variable: %s", n.Symbol)
		}
		return value, nil
	case *okast.NumericLiteral:
		return NumberValue{Value: n.Value}, nil
	case *okast.StringLiteral:
		return StringValue{Value: n.Value}, nil
	default:
		return nil, runtimeError(okerror.CodeRuntime, node.Position(),
			"cannot evaluate node type %T", node)
	}
}

// evalProgram evaluates top-level statements in order; the program's value
// is the last statement's value
func (ev *evaluation) evalProgram(program *okast.Program, env *Environment) (Value, error) {
	ev.interp.logger.Debug("Evaluating program", oklog.Fields{
		"statements": len(program.Body),
	})

	var result Value = NullValue{}
	for _, stmt := range program.Body {
		value, err := ev.eval(stmt, env)
		if err != nil {
			return nil, err
		}
		result = value
	}

	return result, nil
}

// evalVarDeclaration declares a variable; a missing initializer binds null
func (ev *evaluation) evalVarDeclaration(decl *okast.VarDeclaration, env *Environment) (Value, error) {
	var value Value = NullValue{}

	if decl.Value != nil {
		evaluated, err := ev.eval(decl.Value, env)
		if err != nil {
			return nil, err
		}
		value = evaluated
	}

	if _, err := env.Declare(decl.Identifier, value, decl.Constant); err != nil {
		return nil, ev.envError(err, decl.Position())
	}

	return value, nil
}

// evalFunctionDeclaration binds a closure over the declaring environment.
// Named functions are constants.
func (ev *evaluation) evalFunctionDeclaration(decl *okast.FunctionDeclaration, env *Environment) (Value, error) {
	seen := make(map[string]bool, len(decl.Parameters))
	for _, param := range decl.Parameters {
		if seen[param] {
			return nil, runtimeError(okerror.CodeDuplicateVariable, decl.Position(),
				"duplicate parameter %s in function %s", param, decl.Name)
		}
		seen[param] = true
	}

	fn := &FunctionValue{
		Name:       decl.Name,
		Parameters: decl.Parameters,
		Body:       decl.Body,
		Closure:    env,
	}

	if _, err := env.Declare(decl.Name, fn, true); err != nil {
		return nil, ev.envError(err, decl.Position())
	}

	return fn, nil
}

// evalIfStmt evaluates the branch selected by the condition's truthiness
func (ev *evaluation) evalIfStmt(stmt *okast.IfStmt, env *Environment) (Value, error) {
	condition, err := ev.eval(stmt.Conditional, env)
	if err != nil {
		return nil, err
	}

	if IsTruthy(condition) {
		return ev.evalBlock(stmt.Consequent, env)
	}
	if stmt.Alternate != nil {
		return ev.evalBlock(stmt.Alternate, env)
	}

	return NullValue{}, nil
}

// evalBlock evaluates statements in a fresh child scope
func (ev *evaluation) evalBlock(stmts []okast.Stmt, env *Environment) (Value, error) {
	scope := NewEnvironment(env)

	var result Value = NullValue{}
	for _, stmt := range stmts {
		value, err := ev.eval(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = value
	}

	return result, nil
}

// evalAssignment handles identifier and member assignment targets. The
// grammar leaves targets open; anything else fails here.
func (ev *evaluation) evalAssignment(assign *okast.AssignmentExpr, env *Environment) (Value, error) {
	switch target := assign.Assignee.(type) {
	case *okast.Identifier:
		value, err := ev.eval(assign.Value, env)
		if err != nil {
			return nil, err
		}

		result, err := env.Assign(target.Symbol, value)
		if err != nil {
			return nil, ev.envError(err, assign.Position())
		}
		return result, nil

	case *okast.MemberExpr:
		return ev.assignMember(target, assign, env)

	default:
		return nil, runtimeError(okerror.CodeRuntime, assign.Position(),
			"invalid assignment target: %s", assign.Assignee.String())
	}
}

// assignMember evaluates obj.key = value and obj[key] = value
func (ev *evaluation) assignMember(target *okast.MemberExpr, assign *okast.AssignmentExpr, env *Environment) (Value, error) {
	objValue, err := ev.eval(target.Object, env)
	if err != nil {
		return nil, err
	}

	obj, ok := objValue.(*ObjectValue)
	if !ok {
		return nil, runtimeError(okerror.CodeTypeMismatch, target.Position(),
			"cannot assign to member of %s value", objValue.Type())
	}

	key, err := ev.memberKey(target, env)
	if err != nil {
		return nil, err
	}

	value, err := ev.eval(assign.Value, env)
	if err != nil {
		return nil, err
	}

	obj.Set(key, value)
	return value, nil
}

// evalObjectLiteral builds an object; shorthand properties take their value
// from the identifier of the same name
func (ev *evaluation) evalObjectLiteral(literal *okast.ObjectLiteral, env *Environment) (Value, error) {
	obj := NewObject()

	for _, prop := range literal.Properties {
		var value Value

		if prop.Value == nil {
			resolved, ok := env.Lookup(prop.Key)
			if !ok {
				return nil, runtimeError(okerror.CodeUndefinedVariable, prop.Position(),
					"undefined variable: %s", prop.Key)
			}
			value = resolved
		} else {
			evaluated, err := ev.eval(prop.Value, env)
			if err != nil {
				return nil, err
			}
			value = evaluated
		}

		obj.Set(prop.Key, value)
	}

	return obj, nil
}

// evalBinary evaluates arithmetic on numbers; '+' also concatenates strings
func (ev *evaluation) evalBinary(expr *okast.BinaryExpr, env *Environment) (Value, error) {
	left, err := ev.eval(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.eval(expr.Right, env)
	if err != nil {
		return nil, err
	}

	if leftNum, ok := left.(NumberValue); ok {
		if rightNum, ok := right.(NumberValue); ok {
			return ev.evalArithmetic(expr, leftNum.Value, rightNum.Value)
		}
	}

	if expr.Operator == "+" {
		if leftStr, ok := left.(StringValue); ok {
			if rightStr, ok := right.(StringValue); ok {
				return StringValue{Value: leftStr.Value + rightStr.Value}, nil
			}
		}
	}

	return nil, runtimeError(okerror.CodeTypeMismatch, expr.Position(),
		"unsupported operand types for %s: %s and %s",
		expr.Operator, left.Type(), right.Type())
}

// evalArithmetic applies a numeric operator
func (ev *evaluation) evalArithmetic(expr *okast.BinaryExpr, left, right float64) (Value, error) {
	switch expr.Operator {
	case "+":
		return NumberValue{Value: left + right}, nil
	case "-":
		return NumberValue{Value: left - right}, nil
	case "*":
		return NumberValue{Value: left * right}, nil
	case "/":
		if right == 0 {
			return nil, runtimeError(okerror.CodeDivisionByZero, expr.Position(),
				"division by zero")
		}
		return NumberValue{Value: left / right}, nil
	case "%":
		if right == 0 {
			return nil, runtimeError(okerror.CodeDivisionByZero, expr.Position(),
				"modulo by zero")
		}
		return NumberValue{Value: math.Mod(left, right)}, nil
	default:
		return nil, runtimeError(okerror.CodeRuntime, expr.Position(),
			"unknown binary operator %q", expr.Operator)
	}
}

// evalEquality compares two values; different types are never equal
func (ev *evaluation) evalEquality(expr *okast.EqualityExpr, env *Environment) (Value, error) {
	left, err := ev.eval(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ev.eval(expr.Right, env)
	if err != nil {
		return nil, err
	}

	equal := Equals(left, right)
	if expr.Operator == "!=" {
		equal = !equal
	}

	return BoolValue{Value: equal}, nil
}

// evalCall evaluates the callee and arguments, then invokes native or
// user-declared functions
func (ev *evaluation) evalCall(call *okast.CallExpr, env *Environment) (Value, error) {
	callee, err := ev.eval(call.Caller, env)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(call.Args))
	for _, arg := range call.Args {
		value, err := ev.eval(arg, env)
		if err != nil {
			return nil, err
		}
		args = append(args, value)
	}

	switch fn := callee.(type) {
	case *NativeFunction:
		result, err := fn.Fn(args)
		if err != nil {
			return nil, runtimeError(okerror.CodeRuntime, call.Position(), "%s", err)
		}
		if result == nil {
			result = NullValue{}
		}
		return result, nil

	case *FunctionValue:
		return ev.callFunction(fn, args, call.Position())

	default:
		return nil, runtimeError(okerror.CodeNotCallable, call.Position(),
			"cannot call %s value", callee.Type())
	}
}

// callFunction invokes a user-declared function. Parameters bind in a
// fresh scope under the closure; the result is the last evaluated body
// statement.
func (ev *evaluation) callFunction(fn *FunctionValue, args []Value, pos okast.Position) (Value, error) {
	if len(args) != len(fn.Parameters) {
		plural := "arguments"
		if len(fn.Parameters) == 1 {
			plural = "argument"
		}
		return nil, runtimeError(okerror.CodeRuntime, pos,
			"function %s expects %d %s, got %d",
			fn.Name, len(fn.Parameters), plural, len(args))
	}

	if ev.callDepth >= ev.interp.options.MaxCallDepth {
		return nil, runtimeError(okerror.CodeRuntime, pos,
			"maximum call depth exceeded: %d", ev.interp.options.MaxCallDepth)
	}

	ev.callDepth++
	defer func() { ev.callDepth-- }()

	scope := NewEnvironment(fn.Closure)
	for idx, param := range fn.Parameters {
		if _, err := scope.Declare(param, args[idx], false); err != nil {
			return nil, ev.envError(err, pos)
		}
	}

	var result Value = NullValue{}
	for _, stmt := range fn.Body {
		value, err := ev.eval(stmt, scope)
		if err != nil {
			return nil, err
		}
		result = value
	}

	return result, nil
}

// evalMember reads a property from an object; missing keys read as null so
// scripts can probe for presence with `(obj.key == null)`
func (ev *evaluation) evalMember(member *okast.MemberExpr, env *Environment) (Value, error) {
	objValue, err := ev.eval(member.Object, env)
	if err != nil {
		return nil, err
	}

	obj, ok := objValue.(*ObjectValue)
	if !ok {
		return nil, runtimeError(okerror.CodeTypeMismatch, member.Position(),
			"cannot read member of %s value", objValue.Type())
	}

	key, err := ev.memberKey(member, env)
	if err != nil {
		return nil, err
	}

	value, exists := obj.Get(key)
	if !exists {
		return NullValue{}, nil
	}
	return value, nil
}

// memberKey resolves the property key of a member expression. Computed
// keys come from string or number values.
func (ev *evaluation) memberKey(member *okast.MemberExpr, env *Environment) (string, error) {
	if !member.Computed {
		identifier, ok := member.Property.(*okast.Identifier)
		if !ok {
			return "", runtimeError(okerror.CodeRuntime, member.Position(),
				"member property must be a name")
		}
		return identifier.Symbol, nil
	}

	keyValue, err := ev.eval(member.Property, env)
	if err != nil {
		return "", err
	}

	switch key := keyValue.(type) {
	case StringValue:
		return key.Value, nil
	case NumberValue:
		return formatNumber(key.Value), nil
	default:
		return "", runtimeError(okerror.CodeTypeMismatch, member.Position(),
			"object key must be a string or number, got %s", keyValue.Type())
	}
}

// envError converts an environment error to a positioned runtime error
// with the matching error code
func (ev *evaluation) envError(err error, pos okast.Position) error {
	code := okerror.CodeRuntime
	switch {
	case errors.Is(err, ErrUndefinedVariable):
		code = okerror.CodeUndefinedVariable
	case errors.Is(err, ErrConstantAssignment):
		code = okerror.CodeConstantAssignment
	case errors.Is(err, ErrAlreadyDeclared):
		code = okerror.CodeDuplicateVariable
	}

	return &RuntimeError{
		Code:    code,
		Message: err.Error(),
		Pos:     pos,
	}
}

// runtimeError builds a positioned runtime error
func runtimeError(code okerror.Code, pos okast.Position, format string, args ...interface{}) error {
	return &RuntimeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     pos,
	}
}
