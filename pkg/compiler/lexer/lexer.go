// Package lexer provides lexical analysis for tinyexp source code.
package lexer

import (
	"github.com/zurustar/tinyexp/pkg/compiler/token"
)

// Lexer tokenizes tinyexp source code.
type Lexer struct {
	input        string
	position     int  // current position in input
	readPosition int  // current reading position (after current char)
	ch           byte // current char
	line         int  // current line number
	column       int  // current column number

	prev token.TokenType // type of the last token returned
}

// New creates a new Lexer.
func New(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
		prev:   token.ILLEGAL,
	}
	l.readChar()
	return l
}

// NextToken returns the next token. Whitespace and // comments are skipped.
func (l *Lexer) NextToken() token.Token {
	tok := l.scan()
	l.prev = tok.Type
	return tok
}

func (l *Lexer) scan() token.Token {
	var tok token.Token

	l.skipWhitespaceAndComments()

	line, column := l.line, l.column

	switch l.ch {
	case '=':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.EQ)
		}
		tok = l.newToken(token.ASSIGN, l.ch)
	case '!':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.NEQ)
		}
		tok = l.newToken(token.ILLEGAL, l.ch)
	case '<':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.LTE)
		}
		tok = l.newToken(token.LT, l.ch)
	case '>':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.GTE)
		}
		tok = l.newToken(token.GT, l.ch)
	case '&':
		if l.peekChar() == '&' {
			return l.twoCharToken(token.AND)
		}
		tok = l.newToken(token.ILLEGAL, l.ch)
	case '|':
		if l.peekChar() == '|' {
			return l.twoCharToken(token.OR)
		}
		tok = l.newToken(token.ILLEGAL, l.ch)
	case '+':
		tok = l.newToken(token.PLUS, l.ch)
	case '-':
		if isDigit(l.peekChar()) && !l.prevEndsOperand() {
			return l.readNumber(line, column)
		}
		tok = l.newToken(token.MINUS, l.ch)
	case '*':
		tok = l.newToken(token.ASTERISK, l.ch)
	case '/':
		tok = l.newToken(token.SLASH, l.ch)
	case '%':
		tok = l.newToken(token.PERCENT, l.ch)
	case '(':
		tok = l.newToken(token.LPAREN, l.ch)
	case ')':
		tok = l.newToken(token.RPAREN, l.ch)
	case '{':
		tok = l.newToken(token.LBRACE, l.ch)
	case '}':
		tok = l.newToken(token.RBRACE, l.ch)
	case ',':
		tok = l.newToken(token.COMMA, l.ch)
	case ';':
		tok = l.newToken(token.SEMICOLON, l.ch)
	case 0:
		return token.Token{Type: token.EOF, Literal: "", Line: line, Column: column}
	default:
		if isLetter(l.ch) {
			literal := l.readIdentifier()
			return token.Token{Type: token.LookupIdent(literal), Literal: literal, Line: line, Column: column}
		} else if isDigit(l.ch) {
			return l.readNumber(line, column)
		}
		tok = l.newToken(token.ILLEGAL, l.ch)
	}

	l.readChar()
	return tok
}

// prevEndsOperand reports whether the previous token can terminate an operand,
// in which case a following '-' is the subtraction operator.
func (l *Lexer) prevEndsOperand() bool {
	switch l.prev {
	case token.IDENT, token.INT, token.RPAREN:
		return true
	}
	return false
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// twoCharToken consumes the current and the next character as one token.
func (l *Lexer) twoCharToken(tokenType token.TokenType) token.Token {
	tok := token.Token{Type: tokenType, Line: l.line, Column: l.column}
	ch := l.ch
	l.readChar()
	tok.Literal = string(ch) + string(l.ch)
	l.readChar()
	return tok
}

// readIdentifier reads an identifier.
func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads a decimal integer literal with an optional leading '-'.
// The literal is kept as text; conversion happens at evaluation time.
func (l *Lexer) readNumber(line, column int) token.Token {
	position := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	// 12abc is one malformed literal rather than a number followed by an identifier
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return token.Token{Type: token.INT, Literal: l.input[position:l.position], Line: line, Column: column}
}

// skipWhitespaceAndComments skips whitespace and // line comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

// newToken creates a new single-character token.
func (l *Lexer) newToken(tokenType token.TokenType, ch byte) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column}
}

// isLetter checks if a character is a letter.
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if a character is a digit.
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// GetSource returns the source code as a string
func (l *Lexer) GetSource() string {
	return l.input
}
