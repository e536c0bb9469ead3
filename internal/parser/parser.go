package parser

import (
	"fmt"
	"strconv"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/lexer"
	"github.com/kievzenit/strata/internal/types"
)

type Parser struct {
	scanner lexer.TokenScanner

	curr *lexer.Token
}

var bindingPowerLookup = map[string]int{
	"||": 10,
	"&&": 20,
	"==": 30,
	"!=": 30,
	"<":  40,
	">":  40,
	"<=": 40,
	">=": 40,
	"+":  50,
	"-":  50,
	"*":  60,
	"/":  60,
	"%":  60,
}

var unaryOperators = map[string]struct{}{
	"!": {},
	"-": {},
	"+": {},
	"~": {},
}

func NewParser(scanner lexer.TokenScanner) *Parser {
	return &Parser{
		scanner: scanner,
		curr:    scanner.Read(),
	}
}

func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return NewParser(lexer.NewTokenScanner(tokens)).Parse()
}

func ParseSource(src string) (*ast.Program, error) {
	return Parse(lexer.NewLexer([]byte(src)).Tokenize())
}

// Parse consumes every token. The first error aborts the parse; parse
// methods raise it with fail and it is recovered here.
func (p *Parser) Parse() (program *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			parseErr, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			program, err = nil, parseErr
		}
	}()

	stmts := make([]ast.Stmt, 0)
	for p.curr != nil {
		if p.isCurr(";") {
			p.read()
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}

	return &ast.Program{Stmts: stmts}, nil
}

func (p *Parser) parseStmt() ast.Stmt {
	var stmt ast.Stmt

	switch p.curr.Text {
	case "import":
		stmt = p.parseImportStmt()
	case "func":
		stmt = p.parseFuncStmt()
	case "if", "while", "for":
		stmt = p.parseControlStmt()
	case "break", "continue", "return":
		stmt = p.parseJumpStmt()
	default:
		stmt = p.parseLocalStmt()
	}

	if p.isCurr(";") {
		p.read()
	}

	return stmt
}

func (p *Parser) parseControlStmt() ast.Stmt {
	switch p.curr.Text {
	case "if":
		return p.parseIfStmt()
	case "while":
		return p.parseWhileStmt()
	case "for":
		return p.parseForStmt()
	}

	p.unexpected("")
	panic("unreachable")
}

func (p *Parser) parseJumpStmt() ast.Stmt {
	switch p.curr.Text {
	case "break":
		startToken := p.curr
		p.read()
		return &ast.BreakStmt{StartToken: startToken}
	case "continue":
		startToken := p.curr
		p.read()
		return &ast.ContinueStmt{StartToken: startToken}
	case "return":
		return p.parseReturnStmt()
	}

	p.unexpected("")
	panic("unreachable")
}

func (p *Parser) parseLocalStmt() ast.Stmt {
	switch p.curr.Text {
	case "let", "const", "var":
		return p.parseVarDeclStmt()
	}

	return p.parseExprStmt()
}

// parseImportStmt reads `import <module> [from <root>]`. The root only
// names where the module comes from and is not kept.
func (p *Parser) parseImportStmt() *ast.ImportStmt {
	p.expect("import")
	startToken := p.curr
	p.read()

	module := p.parseIdentifier()

	if p.isCurr("from") {
		p.read()
		p.parseIdentifier()
	}

	return &ast.ImportStmt{
		StartToken: startToken,

		Module: module,
	}
}

func (p *Parser) parseFuncStmt() *ast.FuncStmt {
	p.expect("func")
	startToken := p.curr
	p.read()

	name := p.parseIdentifier()

	p.expect("(")
	p.read()

	args := make([]ast.FuncArg, 0)
	for p.curr != nil && !p.isCurr(")") {
		argName := p.parseIdentifier()

		p.expect(":")
		p.read()

		args = append(args, ast.FuncArg{
			Name: argName,
			Type: p.parseTypeIdentifier(),
		})

		if !p.isCurr(",") {
			break
		}
		p.read()
	}

	p.expect(")")
	p.read()

	p.expect("=>")
	p.read()
	returnType := p.parseTypeIdentifier()

	body := p.parseScopeStmt()

	return &ast.FuncStmt{
		StartToken: startToken,

		Name:       name,
		Args:       args,
		ReturnType: returnType,
		Body:       body,
	}
}

func (p *Parser) parseVarDeclStmt() *ast.VarDeclStmt {
	p.expectAny("let", "const", "var")
	startToken := p.curr
	mutable := p.curr.Text == "var"
	p.read()

	name := p.parseIdentifier()

	var explicitType *types.TypeDef
	if p.isCurr(":") {
		p.read()
		typeDef := p.parseTypeIdentifier()
		explicitType = &typeDef
	}

	var value ast.Expr
	if p.isCurr("=") {
		p.read()
		value = p.parseExpr()
	}

	return &ast.VarDeclStmt{
		StartToken: startToken,

		Name:         name,
		ExplicitType: explicitType,
		Value:        value,
		Mutable:      mutable,
	}
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	p.expect("if")
	startToken := p.curr
	p.read()

	cond := p.parseParenExpr()
	body := p.parseScopeStmt()

	if !p.isCurr("else") {
		return &ast.IfStmt{
			StartToken: startToken,

			Cond: cond,
			Body: body,
		}
	}

	elseToken := p.curr
	p.read()

	var elseBody *ast.ScopeStmt
	if p.isCurr("if") {
		elseBody = &ast.ScopeStmt{
			StartToken: elseToken,

			Stmts: []ast.Stmt{p.parseIfStmt()},
		}
	} else {
		elseBody = p.parseScopeStmt()
	}

	return &ast.IfStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
		Else: elseBody,
	}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	p.expect("while")
	startToken := p.curr
	p.read()

	cond := p.parseParenExpr()
	body := p.parseScopeStmt()

	return &ast.WhileStmt{
		StartToken: startToken,

		Cond: cond,
		Body: body,
	}
}

func (p *Parser) parseForStmt() *ast.ForStmt {
	p.expect("for")
	startToken := p.curr
	p.read()

	p.expect("(")
	p.read()

	var init ast.Stmt
	if !p.isCurr(";") {
		init = p.parseLocalStmt()
	}
	p.expect(";")
	p.read()

	var cond ast.Expr
	if !p.isCurr(";") {
		cond = p.parseExpr()
	}
	p.expect(";")
	p.read()

	var update ast.Expr
	if !p.isCurr(")") {
		update = p.parseExpr()
	}
	p.expect(")")
	p.read()

	body := p.parseScopeStmt()

	return &ast.ForStmt{
		StartToken: startToken,

		Init:   init,
		Cond:   cond,
		Update: update,
		Body:   body,
	}
}

// parseReturnStmt takes a value only when one starts on the same line.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	p.expect("return")
	startToken := p.curr
	p.read()

	if p.curr == nil || p.isCurr(";") || p.isCurr("}") ||
		p.curr.Location.Line > startToken.Location.Line {
		return &ast.ReturnStmt{
			StartToken: startToken,
		}
	}

	return &ast.ReturnStmt{
		StartToken: startToken,

		Expr: p.parseExpr(),
	}
}

func (p *Parser) parseScopeStmt() *ast.ScopeStmt {
	p.expect("{")
	startToken := p.curr
	p.read()

	stmts := make([]ast.Stmt, 0)
	for p.curr != nil && !p.isCurr("}") {
		if p.isCurr(";") {
			p.read()
			continue
		}
		stmts = append(stmts, p.parseStmt())
	}

	p.expect("}")
	p.read()

	return &ast.ScopeStmt{
		StartToken: startToken,

		Stmts: stmts,
	}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	return &ast.ExprStmt{
		Expr: p.parseExpr(),
	}
}

// parseTypeIdentifier reads `T`, `T?` or a union `A | B | ...`. Each member
// takes its own trailing `?`.
func (p *Parser) parseTypeIdentifier() types.TypeDef {
	members := []types.TypeDef{p.parseBaseTypeIdentifier()}
	for p.isCurr("|") {
		p.read()
		members = append(members, p.parseBaseTypeIdentifier())
	}

	if len(members) == 1 {
		return members[0]
	}

	return types.Union(members...)
}

func (p *Parser) parseBaseTypeIdentifier() types.TypeDef {
	if p.curr == nil {
		p.fail(newEOFError(p.scanner.Last(), "type name"))
	}
	if !p.curr.IsIdentifier() {
		p.unexpected("type name")
	}

	// Unknown type names are accepted and become any.
	typeDef := types.Lookup(p.curr.Text)
	p.read()

	if p.isCurr("?") {
		p.read()
		typeDef = types.Optional(typeDef)
	}

	return typeDef
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseAssignExpr()
}

func (p *Parser) parseAssignExpr() ast.Expr {
	left := p.parseBinaryExpr(p.parseUnaryExpr(), 0)

	if !p.isCurr("=") {
		return left
	}

	target, ok := left.(*ast.VarExpr)
	if !ok {
		p.fail(&ParseError{
			Message: "invalid assignment target",
			Line:    p.curr.Location.Line,
			Column:  p.curr.Location.Column,
			Source:  p.curr.Location.Source,
		})
	}
	p.read()

	value := p.parseAssignExpr()

	return &ast.BinaryExpr{
		StartToken: target.StartToken,

		Left:  target,
		Op:    "=",
		Right: value,
	}
}

func (p *Parser) parseBinaryExpr(left ast.Expr, bindingPower int) ast.Expr {
	for {
		op := p.curr
		if op == nil {
			return left
		}
		currentBindingPower, ok := bindingPowerLookup[op.Text]
		if !ok || currentBindingPower < bindingPower {
			return left
		}
		p.read()

		right := p.parseUnaryExpr()

		for p.curr != nil {
			nextBindingPower, ok := bindingPowerLookup[p.curr.Text]
			if !ok || nextBindingPower <= currentBindingPower {
				break
			}
			right = p.parseBinaryExpr(right, nextBindingPower)
		}

		left = &ast.BinaryExpr{
			StartToken: left.FirstToken(),

			Left:  left,
			Op:    op.Text,
			Right: right,
		}
	}
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.curr != nil {
		if _, ok := unaryOperators[p.curr.Text]; ok {
			op := p.curr
			p.read()

			return &ast.UnaryExpr{
				StartToken: op,

				Op:      op.Text,
				Operand: p.parseUnaryExpr(),
			}
		}
	}

	return p.parseCallExpr()
}

// parseCallExpr handles `recv.name(args)` chains and `name(args)` on a bare
// identifier.
func (p *Parser) parseCallExpr() ast.Expr {
	expr := p.parsePrimaryExpr()

	for p.curr != nil {
		switch {
		case p.isCurr("."):
			p.read()
			name := p.parseMemberName()

			module := ""
			if receiver, ok := expr.(*ast.VarExpr); ok {
				module = receiver.Name
			}

			expr = &ast.CallExpr{
				StartToken: expr.FirstToken(),

				Member: true,
				Module: module,
				Name:   name,
				Args:   p.parseCallArgs(),
			}
		case p.isCurr("("):
			callee, ok := expr.(*ast.VarExpr)
			if !ok {
				return expr
			}

			expr = &ast.CallExpr{
				StartToken: callee.StartToken,

				Name: callee.Name,
				Args: p.parseCallArgs(),
			}
		default:
			return expr
		}
	}

	return expr
}

func (p *Parser) parseCallArgs() []ast.Expr {
	p.expect("(")
	p.read()

	args := make([]ast.Expr, 0)
	for p.curr != nil && !p.isCurr(")") {
		args = append(args, p.parseExpr())

		if !p.isCurr(",") {
			break
		}
		p.read()
	}

	p.expect(")")
	p.read()

	return args
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	if p.curr == nil {
		p.fail(newEOFError(p.scanner.Last(), "expression"))
	}

	token := p.curr
	switch {
	case p.isCurr("("):
		return p.parseParenOrTupleExpr()
	case p.isCurr("true"), p.isCurr("false"):
		p.read()
		return &ast.BoolExpr{
			StartToken: token,

			Value: token.Text == "true",
		}
	case token.IsString():
		p.read()
		return &ast.StringExpr{
			StartToken: token,

			Value: token.Text[1 : len(token.Text)-1],
		}
	case token.IsNumber():
		value, err := strconv.ParseFloat(token.Text, 64)
		if err != nil {
			p.unexpected("number")
		}
		p.read()
		return &ast.NumberExpr{
			StartToken: token,

			Value:   value,
			Literal: token.Text,
		}
	case token.IsIdentifier() && !lexer.IsKeyword(token.Text):
		p.read()
		return &ast.VarExpr{
			StartToken: token,

			Name: token.Text,
		}
	}

	p.unexpected("")
	panic("unreachable")
}

func (p *Parser) parseParenExpr() ast.Expr {
	p.expect("(")
	p.read()

	expr := p.parseExpr()

	p.expect(")")
	p.read()

	return expr
}

func (p *Parser) parseParenOrTupleExpr() ast.Expr {
	p.expect("(")
	startToken := p.curr
	p.read()

	expr := p.parseExpr()
	if !p.isCurr(",") {
		p.expect(")")
		p.read()
		return expr
	}

	elements := []ast.Expr{expr}
	for p.isCurr(",") {
		p.read()
		elements = append(elements, p.parseExpr())
	}

	p.expect(")")
	p.read()

	return &ast.TupleExpr{
		StartToken: startToken,

		Elements: elements,
	}
}

func (p *Parser) parseIdentifier() string {
	if p.curr == nil {
		p.fail(newEOFError(p.scanner.Last(), "identifier"))
	}
	if !p.curr.IsIdentifier() || lexer.IsKeyword(p.curr.Text) {
		p.unexpected("identifier")
	}

	name := p.curr.Text
	p.read()

	return name
}

// parseMemberName accepts keywords too, so `text.if()` style names still
// reach call dispatch.
func (p *Parser) parseMemberName() string {
	if p.curr == nil {
		p.fail(newEOFError(p.scanner.Last(), "member name"))
	}
	if !p.curr.IsIdentifier() {
		p.unexpected("member name")
	}

	name := p.curr.Text
	p.read()

	return name
}

func (p *Parser) read() *lexer.Token {
	p.curr = p.scanner.Read()
	return p.curr
}

func (p *Parser) isCurr(text string) bool {
	return p.curr != nil && p.curr.Text == text
}

func (p *Parser) expect(text string) {
	if p.curr == nil {
		p.fail(newEOFError(p.scanner.Last(), fmt.Sprintf("'%s'", text)))
	}
	if p.curr.Text != text {
		p.unexpected(fmt.Sprintf("'%s'", text))
	}
}

func (p *Parser) expectAny(texts ...string) {
	for _, text := range texts {
		if p.isCurr(text) {
			return
		}
	}

	quoted := make([]string, len(texts))
	for i, text := range texts {
		quoted[i] = fmt.Sprintf("'%s'", text)
	}
	expected := fmt.Sprintf("one of %v", quoted)

	if p.curr == nil {
		p.fail(newEOFError(p.scanner.Last(), expected))
	}
	p.unexpected(expected)
}

func (p *Parser) unexpected(expected string) {
	p.fail(newUnexpectedError(p.curr, expected))
}

func (p *Parser) fail(err *ParseError) {
	panic(err)
}
