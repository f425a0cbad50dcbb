// File: lexer.go
// Title: ockham Lexical Analyzer (Tokenizer)
// Description: Implements the lexical analysis phase of ockham parsing.
//              Converts source text into streams of tokens for the parser.
//              Handles keywords, operators, literals, comments, and provides
//              detailed position information for error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-05-12
// Modified: 2026-05-12
//
// Change History:
// - 2026-05-12 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	okstringx "github.com/msto63/ockham/pkg/utils/stringx"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Identifiers and literals
	TokenIdentifier // counter, total_2
	TokenNumber     // 123, 123.45
	TokenString     // "string literal"

	// Keywords
	TokenSet  // set (mutable declaration)
	TokenLock // lock (immutable declaration)
	TokenFun  // fun
	TokenIf   // if
	TokenElse // else

	// Operators
	TokenEquals         // =
	TokenDoubleEquals   // ==
	TokenNotEquals      // !=
	TokenBinaryOperator // + - * / %

	// Delimiters
	TokenOpenParen    // (
	TokenCloseParen   // )
	TokenOpenBrace    // {
	TokenCloseBrace   // }
	TokenOpenBracket  // [
	TokenCloseBracket // ]
	TokenDot          // .
	TokenComma        // ,
	TokenColon        // :
	TokenSemicolon    // ;
)

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Value    string    // Token text (decoded for strings)
	Position int       // Byte position in input
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
	}
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenNumber:
		return "NUMBER"
	case TokenString:
		return "STRING"
	case TokenSet:
		return "SET"
	case TokenLock:
		return "LOCK"
	case TokenFun:
		return "FUN"
	case TokenIf:
		return "IF"
	case TokenElse:
		return "ELSE"
	case TokenEquals:
		return "EQUALS"
	case TokenDoubleEquals:
		return "DOUBLE_EQUALS"
	case TokenNotEquals:
		return "NOT_EQUALS"
	case TokenBinaryOperator:
		return "BINARY_OPERATOR"
	case TokenOpenParen:
		return "OPEN_PAREN"
	case TokenCloseParen:
		return "CLOSE_PAREN"
	case TokenOpenBrace:
		return "OPEN_BRACE"
	case TokenCloseBrace:
		return "CLOSE_BRACE"
	case TokenOpenBracket:
		return "OPEN_BRACKET"
	case TokenCloseBracket:
		return "CLOSE_BRACKET"
	case TokenDot:
		return "DOT"
	case TokenComma:
		return "COMMA"
	case TokenColon:
		return "COLON"
	case TokenSemicolon:
		return "SEMICOLON"
	default:
		return "UNKNOWN"
	}
}

// Lexer performs lexical analysis of ockham source text
type Lexer struct {
	input    string // Input string
	position int    // Current position in input (points to current char)
	readPos  int    // Current reading position (after current char)
	ch       byte   // Current char under examination
	line     int    // Current line number (1-based)
	column   int    // Current column number (1-based)
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar() // Initialize first character
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespaceAndComments()

	// Save current position for token
	pos := l.position
	line := l.line
	column := l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			tok = Token{Type: TokenDoubleEquals, Value: string(ch) + string(l.ch), Position: pos, Line: line, Column: column}
		} else {
			tok = newToken(TokenEquals, l.ch, pos, line, column)
		}
	case '!':
		if l.peekChar() == '=' {
			ch := l.ch
			l.readChar()
			tok = Token{Type: TokenNotEquals, Value: string(ch) + string(l.ch), Position: pos, Line: line, Column: column}
		} else {
			tok = newToken(TokenIllegal, l.ch, pos, line, column)
		}
	case '+', '-', '*', '/', '%':
		tok = newToken(TokenBinaryOperator, l.ch, pos, line, column)
	case '(':
		tok = newToken(TokenOpenParen, l.ch, pos, line, column)
	case ')':
		tok = newToken(TokenCloseParen, l.ch, pos, line, column)
	case '{':
		tok = newToken(TokenOpenBrace, l.ch, pos, line, column)
	case '}':
		tok = newToken(TokenCloseBrace, l.ch, pos, line, column)
	case '[':
		tok = newToken(TokenOpenBracket, l.ch, pos, line, column)
	case ']':
		tok = newToken(TokenCloseBracket, l.ch, pos, line, column)
	case '.':
		tok = newToken(TokenDot, l.ch, pos, line, column)
	case ',':
		tok = newToken(TokenComma, l.ch, pos, line, column)
	case ':':
		tok = newToken(TokenColon, l.ch, pos, line, column)
	case ';':
		tok = newToken(TokenSemicolon, l.ch, pos, line, column)
	case '"':
		value, ok := l.readString()
		if ok {
			tok = Token{Type: TokenString, Value: value, Position: pos, Line: line, Column: column}
		} else {
			// Keep the opening quote so the error path can tell an
			// unterminated string from a stray character
			tok = Token{Type: TokenIllegal, Value: `"` + value, Position: pos, Line: line, Column: column}
		}
	case 0:
		tok = Token{Type: TokenEOF, Value: "", Position: pos, Line: line, Column: column}
	default:
		if isLetter(l.ch) {
			tok.Position = pos
			tok.Line = line
			tok.Column = column
			tok.Value = l.readIdentifier()
			tok.Type = lookupIdent(tok.Value)
			return tok // Early return to avoid readChar()
		} else if isDigit(l.ch) {
			tok.Type = TokenNumber
			tok.Value = l.readNumber()
			tok.Position = pos
			tok.Line = line
			tok.Column = column
			return tok // Early return to avoid readChar()
		} else {
			tok = newToken(TokenIllegal, l.ch, pos, line, column)
		}
	}

	l.readChar()
	return tok
}

// Tokenize returns all tokens from the input as an EOF-terminated slice
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)

		if tok.Type == TokenEOF {
			break
		}

		if tok.Type == TokenIllegal {
			message := fmt.Sprintf("illegal character %q", tok.Value)
			if strings.HasPrefix(tok.Value, `"`) {
				message = "unterminated string literal"
			}
			return tokens, &ParseError{
				Kind:     SyntaxError,
				Message:  message,
				Token:    tok,
				Line:     tok.Line,
				Column:   tok.Column,
				Position: tok.Position,
			}
		}
	}

	return tokens, nil
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL character represents EOF
	} else {
		l.ch = l.input[l.readPos]
	}

	l.position = l.readPos
	l.readPos++

	// Update line and column tracking
	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// readIdentifier reads an identifier (letters, digits, underscores)
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a numeric literal (integer or float)
func (l *Lexer) readNumber() string {
	start := l.position

	// Read integer part
	for isDigit(l.ch) {
		l.readChar()
	}

	// Check for decimal point followed by digits
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	return l.input[start:l.position]
}

// readString reads a double-quoted string literal, decoding escape
// sequences. Returns false when the string is unterminated.
func (l *Lexer) readString() (string, bool) {
	var sb strings.Builder

	for {
		l.readChar()
		if l.ch == '"' {
			return sb.String(), true
		}
		if l.ch == 0 {
			return sb.String(), false
		}

		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case 0:
				return sb.String(), false
			default:
				// Unknown escapes keep the escaped character
				sb.WriteByte(l.ch)
			}
			continue
		}

		sb.WriteByte(l.ch)
	}
}

// skipWhitespaceAndComments skips whitespace and // line comments
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
			l.readChar()
		}

		if l.ch == '/' && l.peekChar() == '/' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}

		break
	}
}

// Utility functions

// newToken creates a new token with the given parameters
func newToken(tokenType TokenType, ch byte, pos, line, column int) Token {
	return Token{
		Type:     tokenType,
		Value:    string(ch),
		Position: pos,
		Line:     line,
		Column:   column,
	}
}

// isLetter checks if the character is a letter (including Unicode)
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_' || ch > 127
}

// isDigit checks if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Keywords map for identifier lookup
var keywords = map[string]TokenType{
	"set":  TokenSet,
	"lock": TokenLock,
	"fun":  TokenFun,
	"if":   TokenIf,
	"else": TokenElse,
}

// lookupIdent determines if an identifier is a keyword or regular
// identifier. Keywords are case-sensitive: "Set" is an identifier.
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}

// IsValidIdentifier checks if a string is a valid ockham identifier
func IsValidIdentifier(s string) bool {
	if okstringx.IsBlank(s) {
		return false
	}

	if IsKeyword(s) {
		return false
	}

	// Must start with letter or underscore
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) && r != '_' {
		return false
	}

	// Rest can be letters, digits, or underscores
	for _, r := range s[size:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}

// IsKeyword checks if a string is an ockham keyword
func IsKeyword(s string) bool {
	_, isKeyword := keywords[s]
	return isKeyword
}

// TokenizeInput is a convenience function that tokenizes input and returns tokens or error
func TokenizeInput(input string) ([]Token, error) {
	lexer := NewLexer(input)
	return lexer.Tokenize()
}
