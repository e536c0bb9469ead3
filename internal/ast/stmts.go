package ast

import (
	"github.com/kievzenit/strata/internal/lexer"
	"github.com/kievzenit/strata/internal/types"
)

// ScopeStmt is a braced statement list. It only appears as the body of
// another statement.
type ScopeStmt struct {
	StartToken *lexer.Token

	Stmts []Stmt
}

type ImportStmt struct {
	StartToken *lexer.Token

	Module string
}

type FuncArg struct {
	Name string
	Type types.TypeDef
}

type FuncStmt struct {
	StartToken *lexer.Token

	Name       string
	Args       []FuncArg
	ReturnType types.TypeDef
	Body       *ScopeStmt
}

// VarDeclStmt is let, const or var. ExplicitType and Value are nil when the
// annotation or initializer is omitted.
type VarDeclStmt struct {
	StartToken *lexer.Token

	Name         string
	ExplicitType *types.TypeDef
	Value        Expr
	Mutable      bool
}

// IfStmt keeps else-if chains as an Else scope holding a single IfStmt.
type IfStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body *ScopeStmt
	Else *ScopeStmt
}

type WhileStmt struct {
	StartToken *lexer.Token

	Cond Expr
	Body *ScopeStmt
}

// ForStmt parts are all optional. A nil Cond loops until break or return.
type ForStmt struct {
	StartToken *lexer.Token

	Init   Stmt
	Cond   Expr
	Update Expr
	Body   *ScopeStmt
}

type BreakStmt struct {
	StartToken *lexer.Token
}

type ContinueStmt struct {
	StartToken *lexer.Token
}

type ReturnStmt struct {
	StartToken *lexer.Token

	Expr Expr
}

type ExprStmt struct {
	Expr Expr
}

func (s *ScopeStmt) AstNode()    {}
func (i *ImportStmt) AstNode()   {}
func (f *FuncStmt) AstNode()     {}
func (v *VarDeclStmt) AstNode()  {}
func (i *IfStmt) AstNode()       {}
func (w *WhileStmt) AstNode()    {}
func (f *ForStmt) AstNode()      {}
func (b *BreakStmt) AstNode()    {}
func (c *ContinueStmt) AstNode() {}
func (r *ReturnStmt) AstNode()   {}
func (e *ExprStmt) AstNode()     {}

func (s *ScopeStmt) FirstToken() *lexer.Token    { return s.StartToken }
func (i *ImportStmt) FirstToken() *lexer.Token   { return i.StartToken }
func (f *FuncStmt) FirstToken() *lexer.Token     { return f.StartToken }
func (v *VarDeclStmt) FirstToken() *lexer.Token  { return v.StartToken }
func (i *IfStmt) FirstToken() *lexer.Token       { return i.StartToken }
func (w *WhileStmt) FirstToken() *lexer.Token    { return w.StartToken }
func (f *ForStmt) FirstToken() *lexer.Token      { return f.StartToken }
func (b *BreakStmt) FirstToken() *lexer.Token    { return b.StartToken }
func (c *ContinueStmt) FirstToken() *lexer.Token { return c.StartToken }
func (r *ReturnStmt) FirstToken() *lexer.Token   { return r.StartToken }
func (e *ExprStmt) FirstToken() *lexer.Token     { return e.Expr.FirstToken() }

func (i *ImportStmt) StmtNode()   {}
func (f *FuncStmt) StmtNode()     {}
func (v *VarDeclStmt) StmtNode()  {}
func (i *IfStmt) StmtNode()       {}
func (w *WhileStmt) StmtNode()    {}
func (f *ForStmt) StmtNode()      {}
func (b *BreakStmt) StmtNode()    {}
func (c *ContinueStmt) StmtNode() {}
func (r *ReturnStmt) StmtNode()   {}
func (e *ExprStmt) StmtNode()     {}
