// File: visitor.go
// Title: AST Visitor Pattern Implementation
// Description: Implements the visitor pattern for AST traversal including
//              base traversal, tree rendering, deep validation, and node
//              collection visitors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial visitor implementations

package ast

import (
	"fmt"
	"strings"

	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// Visitor defines the interface for AST traversal using the visitor pattern
type Visitor interface {
	VisitProgram(node *Program) interface{}
	VisitVarDeclaration(node *VarDeclaration) interface{}
	VisitFunctionDeclaration(node *FunctionDeclaration) interface{}
	VisitIfStmt(node *IfStmt) interface{}
	VisitAssignmentExpr(node *AssignmentExpr) interface{}
	VisitObjectLiteral(node *ObjectLiteral) interface{}
	VisitProperty(node *Property) interface{}
	VisitBinaryExpr(node *BinaryExpr) interface{}
	VisitEqualityExpr(node *EqualityExpr) interface{}
	VisitCallExpr(node *CallExpr) interface{}
	VisitMemberExpr(node *MemberExpr) interface{}
	VisitIdentifier(node *Identifier) interface{}
	VisitNumericLiteral(node *NumericLiteral) interface{}
	VisitStringLiteral(node *StringLiteral) interface{}
}

// BaseVisitor provides a default implementation that traverses all children.
// Embed it to implement only the visit methods you care about.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitProgram(node *Program) interface{} {
	for _, stmt := range node.Body {
		stmt.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitVarDeclaration(node *VarDeclaration) interface{} {
	if node.Value != nil {
		node.Value.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	for _, stmt := range node.Body {
		stmt.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitIfStmt(node *IfStmt) interface{} {
	if node.Conditional != nil {
		node.Conditional.Accept(v)
	}
	for _, stmt := range node.Consequent {
		stmt.Accept(v)
	}
	for _, stmt := range node.Alternate {
		stmt.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitAssignmentExpr(node *AssignmentExpr) interface{} {
	if node.Assignee != nil {
		node.Assignee.Accept(v)
	}
	if node.Value != nil {
		node.Value.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitObjectLiteral(node *ObjectLiteral) interface{} {
	for _, prop := range node.Properties {
		prop.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitProperty(node *Property) interface{} {
	if node.Value != nil {
		node.Value.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitBinaryExpr(node *BinaryExpr) interface{} {
	if node.Left != nil {
		node.Left.Accept(v)
	}
	if node.Right != nil {
		node.Right.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitEqualityExpr(node *EqualityExpr) interface{} {
	if node.Left != nil {
		node.Left.Accept(v)
	}
	if node.Right != nil {
		node.Right.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitCallExpr(node *CallExpr) interface{} {
	if node.Caller != nil {
		node.Caller.Accept(v)
	}
	for _, arg := range node.Args {
		arg.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitMemberExpr(node *MemberExpr) interface{} {
	if node.Object != nil {
		node.Object.Accept(v)
	}
	if node.Property != nil {
		node.Property.Accept(v)
	}
	return nil
}

func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{} {
	return nil
}

func (v *BaseVisitor) VisitNumericLiteral(node *NumericLiteral) interface{} {
	return nil
}

func (v *BaseVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	return nil
}

// StringVisitor builds an indented tree representation of the AST
type StringVisitor struct {
	sb     strings.Builder
	indent int
}

// NewStringVisitor creates a new string visitor
func NewStringVisitor() *StringVisitor {
	return &StringVisitor{}
}

// String returns the accumulated tree representation
func (sv *StringVisitor) String() string {
	return sv.sb.String()
}

// Reset clears the accumulated output
func (sv *StringVisitor) Reset() {
	sv.sb.Reset()
	sv.indent = 0
}

func (sv *StringVisitor) writeIndent() {
	for i := 0; i < sv.indent; i++ {
		sv.sb.WriteString("  ")
	}
}

func (sv *StringVisitor) writeLine(format string, args ...interface{}) {
	sv.writeIndent()
	sv.sb.WriteString(fmt.Sprintf(format, args...))
	sv.sb.WriteString("\n")
}

func (sv *StringVisitor) visitChildren(nodes []Stmt) {
	sv.indent++
	for _, node := range nodes {
		node.Accept(sv)
	}
	sv.indent--
}

func (sv *StringVisitor) VisitProgram(node *Program) interface{} {
	sv.writeLine("Program")
	sv.visitChildren(node.Body)
	return nil
}

func (sv *StringVisitor) VisitVarDeclaration(node *VarDeclaration) interface{} {
	keyword := "set"
	if node.Constant {
		keyword = "lock"
	}
	sv.writeLine("VarDeclaration: %s %s", keyword, node.Identifier)
	if node.Value != nil {
		sv.indent++
		node.Value.Accept(sv)
		sv.indent--
	}
	return nil
}

func (sv *StringVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	sv.writeLine("FunctionDeclaration: %s(%s)", node.Name, strings.Join(node.Parameters, ", "))
	sv.visitChildren(node.Body)
	return nil
}

func (sv *StringVisitor) VisitIfStmt(node *IfStmt) interface{} {
	sv.writeLine("IfStmt")
	sv.indent++

	sv.writeLine("Condition:")
	sv.indent++
	if node.Conditional != nil {
		node.Conditional.Accept(sv)
	}
	sv.indent--

	sv.writeLine("Then:")
	sv.visitChildren(node.Consequent)

	if node.Alternate != nil {
		sv.writeLine("Else:")
		sv.visitChildren(node.Alternate)
	}

	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitAssignmentExpr(node *AssignmentExpr) interface{} {
	sv.writeLine("AssignmentExpr")
	sv.indent++
	if node.Assignee != nil {
		node.Assignee.Accept(sv)
	}
	if node.Value != nil {
		node.Value.Accept(sv)
	}
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitObjectLiteral(node *ObjectLiteral) interface{} {
	sv.writeLine("ObjectLiteral (%d properties)", len(node.Properties))
	sv.indent++
	for _, prop := range node.Properties {
		prop.Accept(sv)
	}
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitProperty(node *Property) interface{} {
	if node.Value == nil {
		sv.writeLine("Property: %s (shorthand)", node.Key)
		return nil
	}
	sv.writeLine("Property: %s", node.Key)
	sv.indent++
	node.Value.Accept(sv)
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitBinaryExpr(node *BinaryExpr) interface{} {
	sv.writeLine("BinaryExpr: %s", node.Operator)
	sv.indent++
	if node.Left != nil {
		node.Left.Accept(sv)
	}
	if node.Right != nil {
		node.Right.Accept(sv)
	}
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitEqualityExpr(node *EqualityExpr) interface{} {
	sv.writeLine("EqualityExpr: %s", node.Operator)
	sv.indent++
	if node.Left != nil {
		node.Left.Accept(sv)
	}
	if node.Right != nil {
		node.Right.Accept(sv)
	}
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitCallExpr(node *CallExpr) interface{} {
	sv.writeLine("CallExpr (%d args)", len(node.Args))
	sv.indent++
	if node.Caller != nil {
		node.Caller.Accept(sv)
	}
	for _, arg := range node.Args {
		arg.Accept(sv)
	}
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitMemberExpr(node *MemberExpr) interface{} {
	if node.Computed {
		sv.writeLine("MemberExpr (computed)")
	} else {
		sv.writeLine("MemberExpr")
	}
	sv.indent++
	if node.Object != nil {
		node.Object.Accept(sv)
	}
	if node.Property != nil {
		node.Property.Accept(sv)
	}
	sv.indent--
	return nil
}

func (sv *StringVisitor) VisitIdentifier(node *Identifier) interface{} {
	sv.writeLine("Identifier: %s", node.Symbol)
	return nil
}

func (sv *StringVisitor) VisitNumericLiteral(node *NumericLiteral) interface{} {
	sv.writeLine("NumericLiteral: %s", node.String())
	return nil
}

func (sv *StringVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	sv.writeLine("StringLiteral: %s", node.String())
	return nil
}

// ValidationVisitor performs deep validation of an AST, collecting all
// structural errors instead of stopping at the first one
type ValidationVisitor struct {
	errors []error
}

// NewValidationVisitor creates a new validation visitor
func NewValidationVisitor() *ValidationVisitor {
	return &ValidationVisitor{
		errors: make([]error, 0),
	}
}

// Errors returns all validation errors found
func (vv *ValidationVisitor) Errors() []error {
	return vv.errors
}

// HasErrors returns true if any validation errors were found
func (vv *ValidationVisitor) HasErrors() bool {
	return len(vv.errors) > 0
}

// Reset clears all validation errors
func (vv *ValidationVisitor) Reset() {
	vv.errors = vv.errors[:0]
}

func (vv *ValidationVisitor) addError(pos Position, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	vv.errors = append(vv.errors, fmt.Errorf("line %d, column %d: %s", pos.Line, pos.Column, msg))
}

func (vv *ValidationVisitor) VisitProgram(node *Program) interface{} {
	for i, stmt := range node.Body {
		if stmt == nil {
			vv.addError(node.Pos, "statement %d is missing", i)
			continue
		}
		stmt.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitVarDeclaration(node *VarDeclaration) interface{} {
	if okstringx.IsBlank(node.Identifier) {
		vv.addError(node.Pos, "variable name is required")
	}
	if node.Constant && node.Value == nil {
		vv.addError(node.Pos, "constant declaration requires a value")
	}
	if node.Value != nil {
		node.Value.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	if okstringx.IsBlank(node.Name) {
		vv.addError(node.Pos, "function name is required")
	}
	for i, param := range node.Parameters {
		if okstringx.IsBlank(param) {
			vv.addError(node.Pos, "parameter %d: name is required", i)
		}
	}
	for i, stmt := range node.Body {
		if stmt == nil {
			vv.addError(node.Pos, "body statement %d is missing", i)
			continue
		}
		stmt.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitIfStmt(node *IfStmt) interface{} {
	if node.Conditional == nil {
		vv.addError(node.Pos, "condition is required")
	} else {
		node.Conditional.Accept(vv)
	}
	for _, stmt := range node.Consequent {
		if stmt != nil {
			stmt.Accept(vv)
		}
	}
	for _, stmt := range node.Alternate {
		if stmt != nil {
			stmt.Accept(vv)
		}
	}
	return nil
}

func (vv *ValidationVisitor) VisitAssignmentExpr(node *AssignmentExpr) interface{} {
	if node.Assignee == nil {
		vv.addError(node.Pos, "assignment target is required")
	} else {
		node.Assignee.Accept(vv)
	}
	if node.Value == nil {
		vv.addError(node.Pos, "assignment value is required")
	} else {
		node.Value.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitObjectLiteral(node *ObjectLiteral) interface{} {
	for i, prop := range node.Properties {
		if prop == nil {
			vv.addError(node.Pos, "property %d is missing", i)
			continue
		}
		prop.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitProperty(node *Property) interface{} {
	if okstringx.IsBlank(node.Key) {
		vv.addError(node.Pos, "property key is required")
	}
	if node.Value != nil {
		node.Value.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitBinaryExpr(node *BinaryExpr) interface{} {
	if !BinaryOperators[node.Operator] {
		vv.addError(node.Pos, "invalid binary operator: %q", node.Operator)
	}
	if node.Left == nil {
		vv.addError(node.Pos, "left operand is required")
	} else {
		node.Left.Accept(vv)
	}
	if node.Right == nil {
		vv.addError(node.Pos, "right operand is required")
	} else {
		node.Right.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitEqualityExpr(node *EqualityExpr) interface{} {
	if node.Operator != "==" && node.Operator != "!=" {
		vv.addError(node.Pos, "invalid equality operator: %q", node.Operator)
	}
	if node.Left == nil {
		vv.addError(node.Pos, "left operand is required")
	} else {
		node.Left.Accept(vv)
	}
	if node.Right == nil {
		vv.addError(node.Pos, "right operand is required")
	} else {
		node.Right.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitCallExpr(node *CallExpr) interface{} {
	if node.Caller == nil {
		vv.addError(node.Pos, "call target is required")
	} else {
		node.Caller.Accept(vv)
	}
	for i, arg := range node.Args {
		if arg == nil {
			vv.addError(node.Pos, "argument %d is missing", i)
			continue
		}
		arg.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitMemberExpr(node *MemberExpr) interface{} {
	if node.Object == nil {
		vv.addError(node.Pos, "member object is required")
	} else {
		node.Object.Accept(vv)
	}
	if node.Property == nil {
		vv.addError(node.Pos, "member property is required")
	} else {
		if !node.Computed {
			if _, ok := node.Property.(*Identifier); !ok {
				vv.addError(node.Pos, "dot access requires an identifier property")
			}
		}
		node.Property.Accept(vv)
	}
	return nil
}

func (vv *ValidationVisitor) VisitIdentifier(node *Identifier) interface{} {
	if okstringx.IsBlank(node.Symbol) {
		vv.addError(node.Pos, "identifier name is required")
	}
	return nil
}

func (vv *ValidationVisitor) VisitNumericLiteral(node *NumericLiteral) interface{} {
	return nil
}

func (vv *ValidationVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	return nil
}

// CollectorVisitor collects nodes of interest during traversal
type CollectorVisitor struct {
	Declarations []Stmt
	Identifiers  []*Identifier
	Calls        []*CallExpr
	Literals     []Expr
}

// NewCollectorVisitor creates a new collector visitor
func NewCollectorVisitor() *CollectorVisitor {
	return &CollectorVisitor{
		Declarations: make([]Stmt, 0),
		Identifiers:  make([]*Identifier, 0),
		Calls:        make([]*CallExpr, 0),
		Literals:     make([]Expr, 0),
	}
}

func (cv *CollectorVisitor) VisitProgram(node *Program) interface{} {
	for _, stmt := range node.Body {
		stmt.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitVarDeclaration(node *VarDeclaration) interface{} {
	cv.Declarations = append(cv.Declarations, node)
	if node.Value != nil {
		node.Value.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	cv.Declarations = append(cv.Declarations, node)
	for _, stmt := range node.Body {
		stmt.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitIfStmt(node *IfStmt) interface{} {
	if node.Conditional != nil {
		node.Conditional.Accept(cv)
	}
	for _, stmt := range node.Consequent {
		stmt.Accept(cv)
	}
	for _, stmt := range node.Alternate {
		stmt.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitAssignmentExpr(node *AssignmentExpr) interface{} {
	if node.Assignee != nil {
		node.Assignee.Accept(cv)
	}
	if node.Value != nil {
		node.Value.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitObjectLiteral(node *ObjectLiteral) interface{} {
	for _, prop := range node.Properties {
		prop.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitProperty(node *Property) interface{} {
	if node.Value != nil {
		node.Value.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitBinaryExpr(node *BinaryExpr) interface{} {
	if node.Left != nil {
		node.Left.Accept(cv)
	}
	if node.Right != nil {
		node.Right.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitEqualityExpr(node *EqualityExpr) interface{} {
	if node.Left != nil {
		node.Left.Accept(cv)
	}
	if node.Right != nil {
		node.Right.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitCallExpr(node *CallExpr) interface{} {
	cv.Calls = append(cv.Calls, node)
	if node.Caller != nil {
		node.Caller.Accept(cv)
	}
	for _, arg := range node.Args {
		arg.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitMemberExpr(node *MemberExpr) interface{} {
	if node.Object != nil {
		node.Object.Accept(cv)
	}
	if node.Property != nil {
		node.Property.Accept(cv)
	}
	return nil
}

func (cv *CollectorVisitor) VisitIdentifier(node *Identifier) interface{} {
	cv.Identifiers = append(cv.Identifiers, node)
	return nil
}

func (cv *CollectorVisitor) VisitNumericLiteral(node *NumericLiteral) interface{} {
	cv.Literals = append(cv.Literals, node)
	return nil
}

func (cv *CollectorVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	cv.Literals = append(cv.Literals, node)
	return nil
}

// Utility functions for common visitor operations

// ValidateAST performs deep validation of an AST and returns all errors found
func ValidateAST(node Node) []error {
	visitor := NewValidationVisitor()
	node.Accept(visitor)
	return visitor.Errors()
}

// ASTToString converts an AST to an indented tree representation
func ASTToString(node Node) string {
	visitor := NewStringVisitor()
	node.Accept(visitor)
	return visitor.String()
}

// CollectNodes traverses an AST and collects declarations, identifiers,
// calls, and literals
func CollectNodes(node Node) *CollectorVisitor {
	visitor := NewCollectorVisitor()
	node.Accept(visitor)
	return visitor
}
