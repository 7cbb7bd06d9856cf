// Package ast defines the syntax tree consumed by the tinyexp execution engine.
//
// The node set is closed: the evaluator dispatches over it with a type switch.
package ast

import (
	"bytes"
	"strings"

	"github.com/zurustar/tinyexp/pkg/compiler/token"
)

type Node interface {
	TokenLiteral() string
	String() string
}

type Statement interface {
	Node
	statementNode()
}

type Expression interface {
	Node
	expressionNode()
}

// Program is the root node: the statements of one source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	return joinStatements(p.Statements, "\n")
}

// Block is a braced sequence of statements. Executing it opens one child scope.
type Block struct {
	Token      token.Token // '{'
	Statements []Statement
}

func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{ }"
	}
	return "{ " + joinStatements(b.Statements, " ") + " }"
}

// FunctionDefinition: fun NAME(PARAMS) { BODY }
type FunctionDefinition struct {
	Token      token.Token // token.FUN; its Line is the definition line
	Name       string
	Parameters []string
	Body       *Block
}

func (fd *FunctionDefinition) statementNode()       {}
func (fd *FunctionDefinition) TokenLiteral() string { return fd.Token.Literal }
func (fd *FunctionDefinition) String() string {
	var out bytes.Buffer
	out.WriteString("fun ")
	out.WriteString(fd.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(fd.Parameters, ", "))
	out.WriteString(") ")
	out.WriteString(fd.Body.String())
	return out.String()
}

// VariableDeclaration: var NAME = VALUE. Value is nil when no initializer was written.
type VariableDeclaration struct {
	Token token.Token // token.VAR
	Name  string
	Value Expression
}

func (vd *VariableDeclaration) statementNode()       {}
func (vd *VariableDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VariableDeclaration) String() string {
	if vd.Value == nil {
		return "var " + vd.Name
	}
	return "var " + vd.Name + " = " + vd.Value.String()
}

// Assignment: NAME = VALUE
type Assignment struct {
	Token token.Token // the identifier token
	Name  string
	Value Expression
}

func (as *Assignment) statementNode()       {}
func (as *Assignment) TokenLiteral() string { return as.Token.Literal }
func (as *Assignment) String() string       { return as.Name + " = " + as.Value.String() }

// IfStatement: if (COND) { ... } else { ... }. Alternative is nil without else.
type IfStatement struct {
	Token       token.Token // token.IF
	Condition   Expression
	Consequence *Block
	Alternative *Block
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// WhileStatement: while (COND) { ... }
type WhileStatement struct {
	Token     token.Token // token.WHILE
	Condition Expression
	Body      *Block
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ReturnStatement: return VALUE
type ReturnStatement struct {
	Token token.Token // token.RETURN
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string       { return "return " + rs.Value.String() }

// ExpressionStatement is an expression evaluated for its side effects.
type ExpressionStatement struct {
	Token      token.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}

// FunctionCall: NAME(ARGS)
type FunctionCall struct {
	Token     token.Token // the identifier token
	Name      string
	Arguments []Expression
}

func (fc *FunctionCall) expressionNode()      {}
func (fc *FunctionCall) TokenLiteral() string { return fc.Token.Literal }
func (fc *FunctionCall) String() string {
	args := make([]string, 0, len(fc.Arguments))
	for _, a := range fc.Arguments {
		args = append(args, a.String())
	}
	return fc.Name + "(" + strings.Join(args, ", ") + ")"
}

// BinaryExpression: LEFT OP RIGHT
type BinaryExpression struct {
	Token    token.Token // the operator token
	Operator string
	Left     Expression
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// Identifier
type Identifier struct {
	Token token.Token // token.IDENT
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral keeps the literal text; conversion to a number is done by the evaluator.
type IntegerLiteral struct {
	Token token.Token
	Text  string
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Text }

func joinStatements(stmts []Statement, sep string) string {
	parts := make([]string, 0, len(stmts))
	for _, s := range stmts {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, sep)
}
