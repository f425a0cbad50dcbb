// File: parser.go
// Title: ockham Recursive Descent Parser
// Description: Implements the parsing phase of ockham source processing.
//              Converts token streams into Abstract Syntax Trees using
//              recursive descent with a precedence-climbing expression
//              grammar. Reports structured syntax and declaration errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"
	"strconv"

	oklog "github.com/msto63/ockham/pkg/core/log"
	okast "github.com/msto63/ockham/pkg/lang/ast"
)

// ErrorKind distinguishes the two classes of parse failure
type ErrorKind int

const (
	// SyntaxError marks a structural mismatch: an expected token was not
	// the next token, unbalanced delimiters, unexpected token in
	// expression position.
	SyntaxError ErrorKind = iota

	// DeclarationError marks a structurally well-formed but invalid
	// declaration: a constant without an initializer, a non-identifier
	// function parameter.
	DeclarationError
)

// String returns the human-readable error kind
func (k ErrorKind) String() string {
	if k == DeclarationError {
		return "declaration error"
	}
	return "syntax error"
}

// ParseError represents a parsing error with position information
type ParseError struct {
	Kind     ErrorKind // Syntax or declaration error
	Message  string    // Contextual message
	Expected string    // Expected token type, when known
	Token    Token     // Offending token
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
	Position int       // Byte offset
}

func (pe *ParseError) Error() string {
	near := pe.Token.Value
	if near == "" {
		near = "end of input"
	}
	return fmt.Sprintf("%s at line %d, column %d: %s (near '%s')",
		pe.Kind.String(), pe.Line, pe.Column, pe.Message, near)
}

// Parser implements recursive descent parsing for ockham.
//
// The token slice is built fresh per Parse call and never mutated; the
// cursor is an index into it. A parser instance must not be shared by
// concurrent Parse calls.
type Parser struct {
	tokens  []Token
	pos     int
	source  string
	logger  *oklog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger          *oklog.Logger
	MaxSourceLength int
}

// New creates a new ockham parser with the given options
func New(opts Options) (*Parser, error) {
	// Set defaults
	if opts.Logger == nil {
		opts.Logger = oklog.GetDefault()
	}
	if opts.MaxSourceLength == 0 {
		opts.MaxSourceLength = 1 << 20
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "parser"),
		options: opts,
	}, nil
}

// Parse parses ockham source text and returns a Program AST
func (p *Parser) Parse(source string) (*okast.Program, error) {
	// Validate input length
	if len(source) > p.options.MaxSourceLength {
		return nil, fmt.Errorf("source exceeds maximum length: %d > %d",
			len(source), p.options.MaxSourceLength)
	}

	tokens, err := TokenizeInput(source)
	if err != nil {
		p.logger.Warn("Tokenizing failed", oklog.Fields{
			"length": len(source),
			"error":  err.Error(),
		})
		return nil, err
	}

	p.tokens = tokens
	p.pos = 0
	p.source = source

	p.logger.Debug("Starting parse", oklog.Fields{
		"length": len(source),
		"tokens": len(tokens),
	})

	program := &okast.Program{
		Body: make([]okast.Stmt, 0),
		Pos:  p.currentPosition(),
	}

	// Statements until the lone EOF bounds the loop
	for p.current().Type != TokenEOF {
		stmt, err := p.parseStatement()
		if err != nil {
			p.logger.Warn("Parse failed", oklog.Fields{
				"error": err.Error(),
			})
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}

	p.logger.Debug("Parse completed", oklog.Fields{
		"statements": len(program.Body),
	})

	return program, nil
}

// parseStatement dispatches on one-token lookahead
func (p *Parser) parseStatement() (okast.Stmt, error) {
	switch p.current().Type {
	case TokenSet, TokenLock:
		return p.parseVarDeclaration()
	case TokenFun:
		return p.parseFunctionDeclaration()
	case TokenIf:
		return p.parseIfStmt()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		// Expression statements may carry an optional terminator
		if p.current().Type == TokenSemicolon {
			p.advance() // consume ';'
		}

		return expr, nil
	}
}

// parseVarDeclaration parses ("set"|"lock") Identifier (";" | "=" Expr ";")
func (p *Parser) parseVarDeclaration() (okast.Stmt, error) {
	keyword := p.advance() // consume 'set' or 'lock'
	constant := keyword.Type == TokenLock

	name, err := p.expect(TokenIdentifier, "expected variable name after declaration keyword")
	if err != nil {
		return nil, err
	}

	// Bare declaration without initializer
	if p.current().Type == TokenSemicolon {
		semi := p.advance() // consume ';'
		if constant {
			return nil, p.declarationError(semi, "constant declaration requires a value")
		}

		return &okast.VarDeclaration{
			Identifier: name.Value,
			Constant:   false,
			Pos:        tokenPosition(keyword),
		}, nil
	}

	if _, err := p.expect(TokenEquals, "expected '=' or ';' after variable name"); err != nil {
		return nil, err
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, fmt.Errorf("initializer: %w", err)
	}

	if _, err := p.expect(TokenSemicolon, "expected ';' after declaration"); err != nil {
		return nil, err
	}

	return &okast.VarDeclaration{
		Identifier: name.Value,
		Value:      value,
		Constant:   constant,
		Pos:        tokenPosition(keyword),
	}, nil
}

// parseFunctionDeclaration parses "fun" Identifier "(" args ")" "{" Stmt* "}"
func (p *Parser) parseFunctionDeclaration() (okast.Stmt, error) {
	fun := p.advance() // consume 'fun'

	name, err := p.expect(TokenIdentifier, "expected function name after 'fun'")
	if err != nil {
		return nil, err
	}

	// The parameter list reuses call-argument parsing, restricted to
	// bare names; the check runs before the body is parsed
	args, err := p.parseArgs()
	if err != nil {
		return nil, fmt.Errorf("parameter list: %w", err)
	}

	parameters := make([]string, 0, len(args))
	for _, arg := range args {
		identifier, ok := arg.(*okast.Identifier)
		if !ok {
			return nil, p.declarationErrorAt(arg, "function parameters must be names")
		}
		parameters = append(parameters, identifier.Symbol)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, fmt.Errorf("function body: %w", err)
	}

	return &okast.FunctionDeclaration{
		Name:       name.Value,
		Parameters: parameters,
		Body:       body,
		Pos:        tokenPosition(fun),
	}, nil
}

// parseIfStmt parses "if" Expr Block ("else" (IfStmt | Block))?
func (p *Parser) parseIfStmt() (okast.Stmt, error) {
	ifTok := p.advance() // consume 'if'

	conditional, err := p.parseExpr()
	if err != nil {
		return nil, fmt.Errorf("condition: %w", err)
	}

	consequent, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	var alternate []okast.Stmt
	if p.current().Type == TokenElse {
		p.advance() // consume 'else'

		if p.current().Type == TokenIf {
			// else-if recurses, wrapping the result as the single
			// alternate statement
			nested, err := p.parseIfStmt()
			if err != nil {
				return nil, err
			}
			alternate = []okast.Stmt{nested}
		} else {
			alternate, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}

	return &okast.IfStmt{
		Conditional: conditional,
		Consequent:  consequent,
		Alternate:   alternate,
		Pos:         tokenPosition(ifTok),
	}, nil
}

// parseBlock parses a brace-delimited statement sequence
func (p *Parser) parseBlock() ([]okast.Stmt, error) {
	if _, err := p.expect(TokenOpenBrace, "expected '{' to open block"); err != nil {
		return nil, err
	}

	body := make([]okast.Stmt, 0)
	for p.current().Type != TokenEOF && p.current().Type != TokenCloseBrace {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	if _, err := p.expect(TokenCloseBrace, "expected '}' to close block"); err != nil {
		return nil, err
	}

	return body, nil
}

// Expression precedence ladder, lowest to highest binding:
// assignment -> object -> additive -> multiplicative -> call/member ->
// member -> primary.

// parseExpr parses a full expression
func (p *Parser) parseExpr() (okast.Expr, error) {
	return p.parseAssignmentExpr()
}

// parseAssignmentExpr parses right-associative assignment. The target is
// any object-or-lower expression; its validity is the evaluator's
// concern, not the parser's.
func (p *Parser) parseAssignmentExpr() (okast.Expr, error) {
	assignee, err := p.parseObjectExpr()
	if err != nil {
		return nil, err
	}

	if p.current().Type == TokenEquals {
		equals := p.advance() // consume '='

		value, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, err
		}

		return &okast.AssignmentExpr{
			Assignee: assignee,
			Value:    value,
			Pos:      tokenPosition(equals),
		}, nil
	}

	return assignee, nil
}

// parseObjectExpr parses an object literal when '{' opens expression
// position, otherwise falls through to additive
func (p *Parser) parseObjectExpr() (okast.Expr, error) {
	if p.current().Type != TokenOpenBrace {
		return p.parseAdditiveExpr()
	}

	open := p.advance() // consume '{'
	properties := make([]*okast.Property, 0)

	for p.current().Type != TokenEOF && p.current().Type != TokenCloseBrace {
		key, err := p.expect(TokenIdentifier, "expected property key")
		if err != nil {
			return nil, err
		}

		// Shorthand: key followed by ',' or '}'
		if p.current().Type == TokenComma {
			p.advance() // consume ','
			properties = append(properties, &okast.Property{Key: key.Value, Pos: tokenPosition(key)})
			continue
		}
		if p.current().Type == TokenCloseBrace {
			properties = append(properties, &okast.Property{Key: key.Value, Pos: tokenPosition(key)})
			continue
		}

		if _, err := p.expect(TokenColon, "expected ':' after property key"); err != nil {
			return nil, err
		}

		value, err := p.parseExpr()
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", key.Value, err)
		}
		properties = append(properties, &okast.Property{
			Key:   key.Value,
			Value: value,
			Pos:   tokenPosition(key),
		})

		if p.current().Type != TokenCloseBrace {
			if _, err := p.expect(TokenComma, "expected ',' or '}' after property value"); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(TokenCloseBrace, "expected '}' to close object literal"); err != nil {
		return nil, err
	}

	return &okast.ObjectLiteral{
		Properties: properties,
		Pos:        tokenPosition(open),
	}, nil
}

// parseAdditiveExpr parses left-associative chains over '+' and '-'
func (p *Parser) parseAdditiveExpr() (okast.Expr, error) {
	left, err := p.parseMultiplicativeExpr()
	if err != nil {
		return nil, err
	}

	// The operator alternatives are explicitly grouped; the type guard
	// covers both branches and excludes EOF
	for p.current().Type == TokenBinaryOperator &&
		(p.current().Value == "+" || p.current().Value == "-") {
		operator := p.advance() // consume operator

		right, err := p.parseMultiplicativeExpr()
		if err != nil {
			return nil, err
		}

		left = &okast.BinaryExpr{
			Left:     left,
			Right:    right,
			Operator: operator.Value,
			Pos:      tokenPosition(operator),
		}
	}

	return left, nil
}

// parseMultiplicativeExpr parses left-associative chains over '*', '/', '%'
func (p *Parser) parseMultiplicativeExpr() (okast.Expr, error) {
	left, err := p.parseCallMemberExpr()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenBinaryOperator &&
		(p.current().Value == "*" || p.current().Value == "/" || p.current().Value == "%") {
		operator := p.advance() // consume operator

		right, err := p.parseCallMemberExpr()
		if err != nil {
			return nil, err
		}

		left = &okast.BinaryExpr{
			Left:     left,
			Right:    right,
			Operator: operator.Value,
			Pos:      tokenPosition(operator),
		}
	}

	return left, nil
}

// parseCallMemberExpr parses member expressions promoted to calls. Call
// results chain further calls (f()()) and re-enter member access
// (a.b(1)[2]).
func (p *Parser) parseCallMemberExpr() (okast.Expr, error) {
	expr, err := p.parseMemberExpr()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenOpenParen {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}

		expr = &okast.CallExpr{
			Caller: expr,
			Args:   args,
			Pos:    expr.Position(),
		}

		expr, err = p.parseMemberSuffixes(expr)
		if err != nil {
			return nil, err
		}
	}

	return expr, nil
}

// parseMemberExpr parses a primary followed by member accesses
func (p *Parser) parseMemberExpr() (okast.Expr, error) {
	object, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	return p.parseMemberSuffixes(object)
}

// parseMemberSuffixes extends an expression with chains of '.Identifier'
// (non-computed) and '[Expr]' (computed), freely mixed
func (p *Parser) parseMemberSuffixes(object okast.Expr) (okast.Expr, error) {
	for p.current().Type == TokenDot || p.current().Type == TokenOpenBracket {
		operator := p.advance() // consume '.' or '['

		if operator.Type == TokenDot {
			property, err := p.parsePrimaryExpr()
			if err != nil {
				return nil, err
			}
			if _, ok := property.(*okast.Identifier); !ok {
				return nil, p.syntaxErrorAt(operator, TokenIdentifier.String(),
					"dot operator requires an identifier")
			}

			object = &okast.MemberExpr{
				Object:   object,
				Property: property,
				Computed: false,
				Pos:      tokenPosition(operator),
			}
			continue
		}

		property, err := p.parseExpr()
		if err != nil {
			return nil, fmt.Errorf("computed member: %w", err)
		}
		if _, err := p.expect(TokenCloseBracket, "expected ']' after computed member"); err != nil {
			return nil, err
		}

		object = &okast.MemberExpr{
			Object:   object,
			Property: property,
			Computed: true,
			Pos:      tokenPosition(operator),
		}
	}

	return object, nil
}

// parseArgs parses "(" (Expr ("," Expr)*)? ")"
func (p *Parser) parseArgs() ([]okast.Expr, error) {
	if _, err := p.expect(TokenOpenParen, "expected '(' to open argument list"); err != nil {
		return nil, err
	}

	args := make([]okast.Expr, 0)
	if p.current().Type != TokenCloseParen {
		var err error
		args, err = p.parseArgumentsList()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(TokenCloseParen, "expected ')' to close argument list"); err != nil {
		return nil, err
	}

	return args, nil
}

// parseArgumentsList parses comma-separated assignment-level expressions,
// so f(a = 1) is legal
func (p *Parser) parseArgumentsList() ([]okast.Expr, error) {
	first, err := p.parseAssignmentExpr()
	if err != nil {
		return nil, fmt.Errorf("argument: %w", err)
	}

	args := []okast.Expr{first}
	for p.current().Type == TokenComma {
		p.advance() // consume ','

		arg, err := p.parseAssignmentExpr()
		if err != nil {
			return nil, fmt.Errorf("argument: %w", err)
		}
		args = append(args, arg)
	}

	return args, nil
}

// parsePrimaryExpr parses identifiers, literals, and parenthesized
// expressions. Equality comparison is only reachable here, inside
// parentheses; that restriction is a deliberate grammar constraint.
func (p *Parser) parsePrimaryExpr() (okast.Expr, error) {
	tok := p.current()

	switch tok.Type {
	case TokenIdentifier:
		p.advance()
		return &okast.Identifier{Symbol: tok.Value, Pos: tokenPosition(tok)}, nil

	case TokenNumber:
		p.advance()
		value, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, p.syntaxErrorAt(tok, TokenNumber.String(),
				fmt.Sprintf("invalid number: %s", tok.Value))
		}
		return &okast.NumericLiteral{Value: value, Pos: tokenPosition(tok)}, nil

	case TokenString:
		p.advance()
		return &okast.StringLiteral{Value: tok.Value, Pos: tokenPosition(tok)}, nil

	case TokenOpenParen:
		p.advance() // consume '('

		left, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		if p.current().Type == TokenDoubleEquals || p.current().Type == TokenNotEquals {
			operator := p.advance() // consume '==' or '!='

			right, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			left = &okast.EqualityExpr{
				Left:     left,
				Right:    right,
				Operator: operator.Value,
				Pos:      tokenPosition(operator),
			}
		}

		if _, err := p.expect(TokenCloseParen, "expected ')' after expression"); err != nil {
			return nil, err
		}

		return left, nil

	default:
		return nil, p.syntaxError(fmt.Sprintf("unexpected token in expression: %s", tok.Type.String()))
	}
}

// Cursor methods

// current returns the next unconsumed token without removing it. The
// EOF-terminated slice guarantees it is always defined.
func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

// advance consumes and returns the front token. EOF stays current once
// reached.
func (p *Parser) advance() Token {
	tok := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// expect consumes the front token and asserts its type, returning a
// syntax error carrying the expected type, the offending token, and the
// caller's message on mismatch
func (p *Parser) expect(tokenType TokenType, message string) (Token, error) {
	tok := p.advance()
	if tok.Type != tokenType {
		return tok, p.syntaxErrorAt(tok, tokenType.String(), message)
	}
	return tok, nil
}

// currentPosition returns the current AST position
func (p *Parser) currentPosition() okast.Position {
	return tokenPosition(p.current())
}

// tokenPosition converts token coordinates to an AST position
func tokenPosition(tok Token) okast.Position {
	return okast.Position{
		Line:   tok.Line,
		Column: tok.Column,
		Offset: tok.Position,
	}
}

// Error helpers

func (p *Parser) syntaxError(message string) error {
	return p.syntaxErrorAt(p.current(), "", message)
}

func (p *Parser) syntaxErrorAt(tok Token, expected, message string) error {
	return &ParseError{
		Kind:     SyntaxError,
		Message:  message,
		Expected: expected,
		Token:    tok,
		Line:     tok.Line,
		Column:   tok.Column,
		Position: tok.Position,
	}
}

func (p *Parser) declarationError(tok Token, message string) error {
	return &ParseError{
		Kind:     DeclarationError,
		Message:  message,
		Token:    tok,
		Line:     tok.Line,
		Column:   tok.Column,
		Position: tok.Position,
	}
}

// declarationErrorAt reports a declaration error at an already-built
// node, rendering the node's source form as the offending text
func (p *Parser) declarationErrorAt(node okast.Expr, message string) error {
	pos := node.Position()
	return &ParseError{
		Kind:    DeclarationError,
		Message: message,
		Token: Token{
			Type:     TokenIllegal,
			Value:    node.String(),
			Position: pos.Offset,
			Line:     pos.Line,
			Column:   pos.Column,
		},
		Line:     pos.Line,
		Column:   pos.Column,
		Position: pos.Offset,
	}
}

// ParseSource is a convenience function that parses source text with
// default options
func ParseSource(source string) (*okast.Program, error) {
	p, err := New(Options{})
	if err != nil {
		return nil, err
	}
	return p.Parse(source)
}
