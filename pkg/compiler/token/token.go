// Package token defines the lexical tokens of the tinyexp language.
package token

// TokenType represents the type of a token.
type TokenType int

// Token types
const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF

	// Literals
	IDENT // foo, fib
	INT   // 123, -7

	// Operators
	PLUS     // +
	MINUS    // -
	ASTERISK // *
	SLASH    // /
	PERCENT  // %
	ASSIGN   // =
	EQ       // ==
	NEQ      // !=
	LT       // <
	GT       // >
	LTE      // <=
	GTE      // >=
	AND      // &&
	OR       // ||

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;

	// Keywords
	FUN    // fun
	VAR    // var
	IF     // if
	ELSE   // else
	WHILE  // while
	RETURN // return
)

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

var tokenTypeNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT: "IDENT",
	INT:   "INT",

	PLUS:     "+",
	MINUS:    "-",
	ASTERISK: "*",
	SLASH:    "/",
	PERCENT:  "%",
	ASSIGN:   "=",
	EQ:       "==",
	NEQ:      "!=",
	LT:       "<",
	GT:       ">",
	LTE:      "<=",
	GTE:      ">=",
	AND:      "&&",
	OR:       "||",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	COMMA:     ",",
	SEMICOLON: ";",

	FUN:    "fun",
	VAR:    "var",
	IF:     "if",
	ELSE:   "else",
	WHILE:  "while",
	RETURN: "return",
}

// String returns a string representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword returns true if the token type is a keyword.
func (t TokenType) IsKeyword() bool {
	return t >= FUN && t <= RETURN
}

// IsOperator returns true if the token type is a binary operator or '='.
func (t TokenType) IsOperator() bool {
	return t >= PLUS && t <= OR
}

// keywords maps reserved words to their TokenType. Matching is case-sensitive.
var keywords = map[string]TokenType{
	"fun":    FUN,
	"var":    VAR,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
}

// LookupIdent returns the keyword type for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
