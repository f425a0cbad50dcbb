// File: nodes.go
// Title: AST Node Definitions
// Description: Defines all AST node types for representing ockham programs
//              including declarations, control flow, and expressions.
//              Provides canonical source rendering and validation methods.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial AST node definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"

	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns the canonical, re-parseable source form of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the node
	Position() Position

	// Validate performs basic structural validation of the node
	Validate() error
}

// Position represents a position in the source code
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// Stmt represents the base interface for all statements
type Stmt interface {
	Node
	stmtNode() // marker method
}

// Expr represents the base interface for all expressions.
// Every expression can stand as a statement (expression statement),
// so Expr embeds Stmt.
type Expr interface {
	Stmt
	exprNode() // marker method
}

// BinaryOperators is the closed set of arithmetic operators
var BinaryOperators = map[string]bool{
	"+": true,
	"-": true,
	"*": true,
	"/": true,
	"%": true,
}

// Statement types

// Program represents a complete parsed source file
type Program struct {
	Body []Stmt   // Ordered top-level statements
	Pos  Position // Source position
}

// VarDeclaration represents a variable declaration (set/lock)
type VarDeclaration struct {
	Identifier string   // Variable name
	Value      Expr     // Initializer (nil for bare mutable declarations)
	Constant   bool     // true for lock, false for set
	Pos        Position // Source position
}

// FunctionDeclaration represents a named function definition
type FunctionDeclaration struct {
	Name       string   // Function name
	Parameters []string // Ordered parameter names
	Body       []Stmt   // Function body statements
	Pos        Position // Source position
}

// IfStmt represents a conditional branch
type IfStmt struct {
	Conditional Expr     // Branch condition
	Consequent  []Stmt   // Statements when the condition holds
	Alternate   []Stmt   // else branch (nil when absent; a single nested IfStmt models else-if)
	Pos         Position // Source position
}

// Expression types

// AssignmentExpr represents an assignment (target not syntactically restricted)
type AssignmentExpr struct {
	Assignee Expr     // Assignment target
	Value    Expr     // Assigned value
	Pos      Position // Source position
}

// ObjectLiteral represents a structural literal { a, b: 2 }
type ObjectLiteral struct {
	Properties []*Property // Ordered object fields
	Pos        Position    // Source position
}

// Property represents a single object field (shorthand when Value is nil)
type Property struct {
	Key   string   // Field name
	Value Expr     // Field value (nil for shorthand)
	Pos   Position // Source position
}

// BinaryExpr represents an arithmetic binary expression
type BinaryExpr struct {
	Left     Expr     // Left operand
	Right    Expr     // Right operand
	Operator string   // One of + - * / %
	Pos      Position // Source position
}

// EqualityExpr represents an equality comparison (== or !=),
// syntactically reachable only inside a parenthesized primary
type EqualityExpr struct {
	Left     Expr     // Left operand
	Right    Expr     // Right operand
	Operator string   // "==" or "!="
	Pos      Position // Source position
}

// CallExpr represents a function invocation
type CallExpr struct {
	Caller Expr     // Called expression
	Args   []Expr   // Ordered arguments
	Pos    Position // Source position
}

// MemberExpr represents member access (.field or [expr])
type MemberExpr struct {
	Object   Expr     // Accessed object
	Property Expr     // Accessed property (Identifier when not computed)
	Computed bool     // true for [expr], false for .field
	Pos      Position // Source position
}

// Identifier represents a name reference
type Identifier struct {
	Symbol string   // Referenced name
	Pos    Position // Source position
}

// NumericLiteral represents a numeric constant
type NumericLiteral struct {
	Value float64  // Numeric value
	Pos   Position // Source position
}

// StringLiteral represents a string constant
type StringLiteral struct {
	Value string   // Decoded string value
	Pos   Position // Source position
}

// stmtString renders a statement for program/block output, appending the
// terminating semicolon to expression statements so that re-parsing
// preserves statement boundaries.
func stmtString(s Stmt) string {
	str := s.String()
	if _, isExpr := s.(Expr); isExpr {
		return str + ";"
	}
	return str
}

// indentBlock renders a statement sequence indented by one level
func indentBlock(body []Stmt) string {
	if len(body) == 0 {
		return ""
	}

	var lines []string
	for _, stmt := range body {
		for _, line := range strings.Split(stmtString(stmt), "\n") {
			lines = append(lines, "  "+line)
		}
	}
	return strings.Join(lines, "\n")
}

// Implementation of Node interface for Program

func (p *Program) String() string {
	var parts []string
	for _, stmt := range p.Body {
		parts = append(parts, stmtString(stmt))
	}
	return strings.Join(parts, "\n")
}

func (p *Program) Accept(visitor Visitor) interface{} {
	return visitor.VisitProgram(p)
}

func (p *Program) Position() Position {
	return p.Pos
}

func (p *Program) Validate() error {
	for i, stmt := range p.Body {
		if stmt == nil {
			return fmt.Errorf("statement %d is missing", i)
		}
		if err := stmt.Validate(); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return nil
}

func (p *Program) stmtNode() {}

// Implementation of Node interface for VarDeclaration

func (vd *VarDeclaration) String() string {
	keyword := "set"
	if vd.Constant {
		keyword = "lock"
	}

	if vd.Value == nil {
		return fmt.Sprintf("%s %s;", keyword, vd.Identifier)
	}
	return fmt.Sprintf("%s %s = %s;", keyword, vd.Identifier, vd.Value.String())
}

func (vd *VarDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitVarDeclaration(vd)
}

func (vd *VarDeclaration) Position() Position {
	return vd.Pos
}

func (vd *VarDeclaration) Validate() error {
	if okstringx.IsBlank(vd.Identifier) {
		return fmt.Errorf("variable name is required")
	}

	if vd.Constant && vd.Value == nil {
		return fmt.Errorf("constant declaration requires a value")
	}

	if vd.Value != nil {
		if err := vd.Value.Validate(); err != nil {
			return fmt.Errorf("initializer: %w", err)
		}
	}

	return nil
}

func (vd *VarDeclaration) stmtNode() {}

// Implementation of Node interface for FunctionDeclaration

func (fd *FunctionDeclaration) String() string {
	params := strings.Join(fd.Parameters, ", ")

	if len(fd.Body) == 0 {
		return fmt.Sprintf("fun %s(%s) {}", fd.Name, params)
	}
	return fmt.Sprintf("fun %s(%s) {\n%s\n}", fd.Name, params, indentBlock(fd.Body))
}

func (fd *FunctionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunctionDeclaration(fd)
}

func (fd *FunctionDeclaration) Position() Position {
	return fd.Pos
}

func (fd *FunctionDeclaration) Validate() error {
	if okstringx.IsBlank(fd.Name) {
		return fmt.Errorf("function name is required")
	}

	for i, param := range fd.Parameters {
		if okstringx.IsBlank(param) {
			return fmt.Errorf("parameter %d: name is required", i)
		}
	}

	for i, stmt := range fd.Body {
		if stmt == nil {
			return fmt.Errorf("body statement %d is missing", i)
		}
		if err := stmt.Validate(); err != nil {
			return fmt.Errorf("body statement %d: %w", i, err)
		}
	}

	return nil
}

func (fd *FunctionDeclaration) stmtNode() {}

// Implementation of Node interface for IfStmt

func (is *IfStmt) String() string {
	var sb strings.Builder

	sb.WriteString("if ")
	sb.WriteString(is.Conditional.String())
	if len(is.Consequent) == 0 {
		sb.WriteString(" {}")
	} else {
		sb.WriteString(" {\n")
		sb.WriteString(indentBlock(is.Consequent))
		sb.WriteString("\n}")
	}

	if is.Alternate != nil {
		// A single nested IfStmt renders as an else-if chain
		if len(is.Alternate) == 1 {
			if nested, ok := is.Alternate[0].(*IfStmt); ok {
				sb.WriteString(" else ")
				sb.WriteString(nested.String())
				return sb.String()
			}
		}

		if len(is.Alternate) == 0 {
			sb.WriteString(" else {}")
		} else {
			sb.WriteString(" else {\n")
			sb.WriteString(indentBlock(is.Alternate))
			sb.WriteString("\n}")
		}
	}

	return sb.String()
}

func (is *IfStmt) Accept(visitor Visitor) interface{} {
	return visitor.VisitIfStmt(is)
}

func (is *IfStmt) Position() Position {
	return is.Pos
}

func (is *IfStmt) Validate() error {
	if is.Conditional == nil {
		return fmt.Errorf("condition is required")
	}
	if err := is.Conditional.Validate(); err != nil {
		return fmt.Errorf("condition: %w", err)
	}

	for i, stmt := range is.Consequent {
		if stmt == nil {
			return fmt.Errorf("consequent statement %d is missing", i)
		}
		if err := stmt.Validate(); err != nil {
			return fmt.Errorf("consequent statement %d: %w", i, err)
		}
	}

	for i, stmt := range is.Alternate {
		if stmt == nil {
			return fmt.Errorf("alternate statement %d is missing", i)
		}
		if err := stmt.Validate(); err != nil {
			return fmt.Errorf("alternate statement %d: %w", i, err)
		}
	}

	return nil
}

func (is *IfStmt) stmtNode() {}

// Expression implementations

func (ae *AssignmentExpr) String() string {
	return fmt.Sprintf("(%s = %s)", ae.Assignee.String(), ae.Value.String())
}

func (ae *AssignmentExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitAssignmentExpr(ae)
}

func (ae *AssignmentExpr) Position() Position {
	return ae.Pos
}

func (ae *AssignmentExpr) Validate() error {
	if ae.Assignee == nil {
		return fmt.Errorf("assignment target is required")
	}
	if ae.Value == nil {
		return fmt.Errorf("assignment value is required")
	}

	if err := ae.Assignee.Validate(); err != nil {
		return fmt.Errorf("assignment target: %w", err)
	}
	if err := ae.Value.Validate(); err != nil {
		return fmt.Errorf("assignment value: %w", err)
	}

	return nil
}

func (ae *AssignmentExpr) stmtNode() {}
func (ae *AssignmentExpr) exprNode() {}

func (ol *ObjectLiteral) String() string {
	if len(ol.Properties) == 0 {
		return "{}"
	}

	var parts []string
	for _, prop := range ol.Properties {
		parts = append(parts, prop.String())
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

func (ol *ObjectLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitObjectLiteral(ol)
}

func (ol *ObjectLiteral) Position() Position {
	return ol.Pos
}

func (ol *ObjectLiteral) Validate() error {
	for i, prop := range ol.Properties {
		if prop == nil {
			return fmt.Errorf("property %d is missing", i)
		}
		if err := prop.Validate(); err != nil {
			return fmt.Errorf("property %d: %w", i, err)
		}
	}
	return nil
}

func (ol *ObjectLiteral) stmtNode() {}
func (ol *ObjectLiteral) exprNode() {}

func (p *Property) String() string {
	if p.Value == nil {
		return p.Key
	}
	return fmt.Sprintf("%s: %s", p.Key, p.Value.String())
}

func (p *Property) Accept(visitor Visitor) interface{} {
	return visitor.VisitProperty(p)
}

func (p *Property) Position() Position {
	return p.Pos
}

func (p *Property) Validate() error {
	if okstringx.IsBlank(p.Key) {
		return fmt.Errorf("property key is required")
	}
	if p.Value != nil {
		if err := p.Value.Validate(); err != nil {
			return fmt.Errorf("property %s: %w", p.Key, err)
		}
	}
	return nil
}

func (be *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", be.Left.String(), be.Operator, be.Right.String())
}

func (be *BinaryExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpr(be)
}

func (be *BinaryExpr) Position() Position {
	return be.Pos
}

func (be *BinaryExpr) Validate() error {
	if be.Left == nil {
		return fmt.Errorf("left operand is required")
	}
	if be.Right == nil {
		return fmt.Errorf("right operand is required")
	}
	if !BinaryOperators[be.Operator] {
		return fmt.Errorf("invalid binary operator: %q", be.Operator)
	}

	if err := be.Left.Validate(); err != nil {
		return fmt.Errorf("left operand: %w", err)
	}
	if err := be.Right.Validate(); err != nil {
		return fmt.Errorf("right operand: %w", err)
	}

	return nil
}

func (be *BinaryExpr) stmtNode() {}
func (be *BinaryExpr) exprNode() {}

func (ee *EqualityExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", ee.Left.String(), ee.Operator, ee.Right.String())
}

func (ee *EqualityExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitEqualityExpr(ee)
}

func (ee *EqualityExpr) Position() Position {
	return ee.Pos
}

func (ee *EqualityExpr) Validate() error {
	if ee.Left == nil {
		return fmt.Errorf("left operand is required")
	}
	if ee.Right == nil {
		return fmt.Errorf("right operand is required")
	}
	if ee.Operator != "==" && ee.Operator != "!=" {
		return fmt.Errorf("invalid equality operator: %q", ee.Operator)
	}

	if err := ee.Left.Validate(); err != nil {
		return fmt.Errorf("left operand: %w", err)
	}
	if err := ee.Right.Validate(); err != nil {
		return fmt.Errorf("right operand: %w", err)
	}

	return nil
}

func (ee *EqualityExpr) stmtNode() {}
func (ee *EqualityExpr) exprNode() {}

func (ce *CallExpr) String() string {
	var args []string
	for _, arg := range ce.Args {
		args = append(args, arg.String())
	}
	return fmt.Sprintf("%s(%s)", ce.Caller.String(), strings.Join(args, ", "))
}

func (ce *CallExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitCallExpr(ce)
}

func (ce *CallExpr) Position() Position {
	return ce.Pos
}

func (ce *CallExpr) Validate() error {
	if ce.Caller == nil {
		return fmt.Errorf("call target is required")
	}
	if err := ce.Caller.Validate(); err != nil {
		return fmt.Errorf("call target: %w", err)
	}

	for i, arg := range ce.Args {
		if arg == nil {
			return fmt.Errorf("argument %d is missing", i)
		}
		if err := arg.Validate(); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}

	return nil
}

func (ce *CallExpr) stmtNode() {}
func (ce *CallExpr) exprNode() {}

func (me *MemberExpr) String() string {
	if me.Computed {
		return fmt.Sprintf("%s[%s]", me.Object.String(), me.Property.String())
	}
	return fmt.Sprintf("%s.%s", me.Object.String(), me.Property.String())
}

func (me *MemberExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitMemberExpr(me)
}

func (me *MemberExpr) Position() Position {
	return me.Pos
}

func (me *MemberExpr) Validate() error {
	if me.Object == nil {
		return fmt.Errorf("member object is required")
	}
	if me.Property == nil {
		return fmt.Errorf("member property is required")
	}

	// Non-computed access requires a bare identifier on the right
	if !me.Computed {
		if _, ok := me.Property.(*Identifier); !ok {
			return fmt.Errorf("dot access requires an identifier property")
		}
	}

	if err := me.Object.Validate(); err != nil {
		return fmt.Errorf("member object: %w", err)
	}
	if err := me.Property.Validate(); err != nil {
		return fmt.Errorf("member property: %w", err)
	}

	return nil
}

func (me *MemberExpr) stmtNode() {}
func (me *MemberExpr) exprNode() {}

func (id *Identifier) String() string {
	return id.Symbol
}

func (id *Identifier) Accept(visitor Visitor) interface{} {
	return visitor.VisitIdentifier(id)
}

func (id *Identifier) Position() Position {
	return id.Pos
}

func (id *Identifier) Validate() error {
	if okstringx.IsBlank(id.Symbol) {
		return fmt.Errorf("identifier name is required")
	}
	return nil
}

func (id *Identifier) stmtNode() {}
func (id *Identifier) exprNode() {}

func (nl *NumericLiteral) String() string {
	return strconv.FormatFloat(nl.Value, 'f', -1, 64)
}

func (nl *NumericLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitNumericLiteral(nl)
}

func (nl *NumericLiteral) Position() Position {
	return nl.Pos
}

func (nl *NumericLiteral) Validate() error {
	return nil // Any float64 is a valid literal
}

func (nl *NumericLiteral) stmtNode() {}
func (nl *NumericLiteral) exprNode() {}

// stringEscaper renders the escape sequences the lexer understands
var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

func (sl *StringLiteral) String() string {
	return `"` + stringEscaper.Replace(sl.Value) + `"`
}

func (sl *StringLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitStringLiteral(sl)
}

func (sl *StringLiteral) Position() Position {
	return sl.Pos
}

func (sl *StringLiteral) Validate() error {
	return nil // Any string is a valid literal
}

func (sl *StringLiteral) stmtNode() {}
func (sl *StringLiteral) exprNode() {}
