package ast

import "github.com/kievzenit/strata/internal/lexer"

type AstNode interface {
	AstNode()
	FirstToken() *lexer.Token
}

// Program is the parsed form of one source text. It is never mutated after
// parsing; the checker, interpreter and emitters all read the same tree.
type Program struct {
	Stmts []Stmt
}

type Stmt interface {
	AstNode
	StmtNode()
}

type Expr interface {
	AstNode
	ExprNode()
}

// LocationOf returns the location of the node's first token, or the zero
// Location for nodes built without one.
func LocationOf(node AstNode) lexer.Location {
	token := node.FirstToken()
	if token == nil {
		return lexer.Location{}
	}

	return token.Location
}
