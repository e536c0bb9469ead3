package ast

import "github.com/kievzenit/strata/internal/lexer"

type VarExpr struct {
	StartToken *lexer.Token

	Name string
}

type NumberExpr struct {
	StartToken *lexer.Token

	Value   float64
	Literal string
}

// StringExpr holds the inner text of a string or character literal. The two
// literal forms are not distinguished past the lexer.
type StringExpr struct {
	StartToken *lexer.Token

	Value string
}

type BoolExpr struct {
	StartToken *lexer.Token

	Value bool
}

// CallExpr is either a plain call name(args) or, with Member set, a member
// call receiver.name(args). Module is the receiver identifier, or empty when
// the receiver is not a bare identifier.
type CallExpr struct {
	StartToken *lexer.Token

	Member bool
	Module string
	Name   string
	Args   []Expr
}

// BinaryExpr covers arithmetic, comparison, logic and assignment. For Op "="
// Left is always a *VarExpr.
type BinaryExpr struct {
	StartToken *lexer.Token

	Left  Expr
	Op    string
	Right Expr
}

type UnaryExpr struct {
	StartToken *lexer.Token

	Op      string
	Operand Expr
}

type TupleExpr struct {
	StartToken *lexer.Token

	Elements []Expr
}

func (VarExpr) AstNode()    {}
func (NumberExpr) AstNode() {}
func (StringExpr) AstNode() {}
func (BoolExpr) AstNode()   {}
func (CallExpr) AstNode()   {}
func (BinaryExpr) AstNode() {}
func (UnaryExpr) AstNode()  {}
func (TupleExpr) AstNode()  {}

func (e *VarExpr) FirstToken() *lexer.Token    { return e.StartToken }
func (e *NumberExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *StringExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *BoolExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *CallExpr) FirstToken() *lexer.Token   { return e.StartToken }
func (e *BinaryExpr) FirstToken() *lexer.Token { return e.StartToken }
func (e *UnaryExpr) FirstToken() *lexer.Token  { return e.StartToken }
func (e *TupleExpr) FirstToken() *lexer.Token  { return e.StartToken }

func (VarExpr) ExprNode()    {}
func (NumberExpr) ExprNode() {}
func (StringExpr) ExprNode() {}
func (BoolExpr) ExprNode()   {}
func (CallExpr) ExprNode()   {}
func (BinaryExpr) ExprNode() {}
func (UnaryExpr) ExprNode()  {}
func (TupleExpr) ExprNode()  {}

func (e *BinaryExpr) IsAssignment() bool {
	return e.Op == "="
}

func IsComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		return true
	}
	return false
}
