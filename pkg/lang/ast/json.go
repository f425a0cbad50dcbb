// File: json.go
// Title: AST JSON Export
// Description: Converts AST nodes into a JSON representation with "kind"
//              discriminator fields, suitable for tooling and inspection.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial JSON export visitor

package ast

import (
	"encoding/json"
	"fmt"
)

// JSONVisitor converts AST nodes into JSON-marshalable maps with a "kind"
// discriminator per node. Optional fields (bare initializers, shorthand
// property values, absent else branches) are omitted.
type JSONVisitor struct{}

// NewJSONVisitor creates a new JSON visitor
func NewJSONVisitor() *JSONVisitor {
	return &JSONVisitor{}
}

func (jv *JSONVisitor) visitStmts(stmts []Stmt) []interface{} {
	result := make([]interface{}, 0, len(stmts))
	for _, stmt := range stmts {
		result = append(result, stmt.Accept(jv))
	}
	return result
}

func (jv *JSONVisitor) VisitProgram(node *Program) interface{} {
	return map[string]interface{}{
		"kind": "Program",
		"body": jv.visitStmts(node.Body),
	}
}

func (jv *JSONVisitor) VisitVarDeclaration(node *VarDeclaration) interface{} {
	result := map[string]interface{}{
		"kind":       "VarDeclaration",
		"identifier": node.Identifier,
		"constant":   node.Constant,
	}
	if node.Value != nil {
		result["value"] = node.Value.Accept(jv)
	}
	return result
}

func (jv *JSONVisitor) VisitFunctionDeclaration(node *FunctionDeclaration) interface{} {
	params := node.Parameters
	if params == nil {
		params = []string{}
	}
	return map[string]interface{}{
		"kind":       "FunctionDeclaration",
		"name":       node.Name,
		"parameters": params,
		"body":       jv.visitStmts(node.Body),
	}
}

func (jv *JSONVisitor) VisitIfStmt(node *IfStmt) interface{} {
	result := map[string]interface{}{
		"kind":       "IfStmt",
		"consequent": jv.visitStmts(node.Consequent),
	}
	if node.Conditional != nil {
		result["conditional"] = node.Conditional.Accept(jv)
	}
	if node.Alternate != nil {
		result["alternate"] = jv.visitStmts(node.Alternate)
	}
	return result
}

func (jv *JSONVisitor) VisitAssignmentExpr(node *AssignmentExpr) interface{} {
	return map[string]interface{}{
		"kind":     "AssignmentExpr",
		"assignee": node.Assignee.Accept(jv),
		"value":    node.Value.Accept(jv),
	}
}

func (jv *JSONVisitor) VisitObjectLiteral(node *ObjectLiteral) interface{} {
	props := make([]interface{}, 0, len(node.Properties))
	for _, prop := range node.Properties {
		props = append(props, prop.Accept(jv))
	}
	return map[string]interface{}{
		"kind":       "ObjectLiteral",
		"properties": props,
	}
}

func (jv *JSONVisitor) VisitProperty(node *Property) interface{} {
	result := map[string]interface{}{
		"kind": "Property",
		"key":  node.Key,
	}
	if node.Value != nil {
		result["value"] = node.Value.Accept(jv)
	}
	return result
}

func (jv *JSONVisitor) VisitBinaryExpr(node *BinaryExpr) interface{} {
	return map[string]interface{}{
		"kind":     "BinaryExpr",
		"operator": node.Operator,
		"left":     node.Left.Accept(jv),
		"right":    node.Right.Accept(jv),
	}
}

func (jv *JSONVisitor) VisitEqualityExpr(node *EqualityExpr) interface{} {
	return map[string]interface{}{
		"kind":     "EqualityExpr",
		"operator": node.Operator,
		"left":     node.Left.Accept(jv),
		"right":    node.Right.Accept(jv),
	}
}

func (jv *JSONVisitor) VisitCallExpr(node *CallExpr) interface{} {
	args := make([]interface{}, 0, len(node.Args))
	for _, arg := range node.Args {
		args = append(args, arg.Accept(jv))
	}
	return map[string]interface{}{
		"kind":   "CallExpr",
		"caller": node.Caller.Accept(jv),
		"args":   args,
	}
}

func (jv *JSONVisitor) VisitMemberExpr(node *MemberExpr) interface{} {
	return map[string]interface{}{
		"kind":     "MemberExpr",
		"object":   node.Object.Accept(jv),
		"property": node.Property.Accept(jv),
		"computed": node.Computed,
	}
}

func (jv *JSONVisitor) VisitIdentifier(node *Identifier) interface{} {
	return map[string]interface{}{
		"kind":   "Identifier",
		"symbol": node.Symbol,
	}
}

func (jv *JSONVisitor) VisitNumericLiteral(node *NumericLiteral) interface{} {
	return map[string]interface{}{
		"kind":  "NumericLiteral",
		"value": node.Value,
	}
}

func (jv *JSONVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	return map[string]interface{}{
		"kind":  "StringLiteral",
		"value": node.Value,
	}
}

// ToJSON converts an AST node to an indented JSON string
func ToJSON(node Node) (string, error) {
	visitor := NewJSONVisitor()
	value := node.Accept(visitor)

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling AST: %w", err)
	}
	return string(data), nil
}
