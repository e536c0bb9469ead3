package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/types"
)

const indentUnit = "    "

var cPrologue = []string{
	"#include <stdio.h>",
	"#include <math.h>",
	"#include <stdbool.h>",
	"",
}

// CEmitter lowers a program into the body of a single C main function.
// Constructs without a C counterpart degrade to comments or a 0 placeholder
// instead of failing.
type CEmitter struct {
	program *ast.Program

	lines  []string
	indent int
}

func NewCEmitter(program *ast.Program) *CEmitter {
	return &CEmitter{
		program: program,
	}
}

func GenerateC(program *ast.Program) string {
	return NewCEmitter(program).Emit()
}

func (e *CEmitter) Emit() string {
	e.lines = append(e.lines[:0], cPrologue...)
	e.indent = 0

	e.addLine("int main() {")
	e.indent++
	for _, stmt := range e.program.Stmts {
		e.emitForStmt(stmt)
	}
	e.addLine("return 0;")
	e.indent--
	e.addLine("}")

	return strings.Join(e.lines, "\n") + "\n"
}

func (e *CEmitter) addLine(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	e.lines = append(e.lines, strings.Repeat(indentUnit, e.indent)+line)
}

func (e *CEmitter) emitForStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.ImportStmt:
		e.emitForImportStmt(stmt)
	case *ast.FuncStmt:
		e.emitForFuncStmt(stmt)
	case *ast.VarDeclStmt:
		e.addLine("%s;", e.varDecl(stmt))
	case *ast.IfStmt:
		e.emitForIfStmt(stmt)
	case *ast.WhileStmt:
		e.addLine("while (%s) {", e.emitForExpr(stmt.Cond))
		e.emitForScopeStmt(stmt.Body)
		e.addLine("}")
	case *ast.ForStmt:
		e.emitForForStmt(stmt)
	case *ast.BreakStmt:
		e.addLine("break;")
	case *ast.ContinueStmt:
		e.addLine("continue;")
	case *ast.ReturnStmt:
		e.emitForReturnStmt(stmt)
	case *ast.ExprStmt:
		e.addLine("%s;", e.emitForExpr(stmt.Expr))
	}
}

// Imports have no C meaning; the module name is kept as a comment.
func (e *CEmitter) emitForImportStmt(importStmt *ast.ImportStmt) {
	e.addLine("/* import %s */", importStmt.Module)
}

// Functions are never lowered. Only their signature survives as a comment.
func (e *CEmitter) emitForFuncStmt(funcStmt *ast.FuncStmt) {
	args := make([]string, 0, len(funcStmt.Args))
	for _, arg := range funcStmt.Args {
		args = append(args, fmt.Sprintf("%s: %s", arg.Name, arg.Type.String()))
	}
	e.addLine("/* func %s(%s) => %s */", funcStmt.Name, strings.Join(args, ", "), funcStmt.ReturnType.String())
}

func (e *CEmitter) emitForScopeStmt(scopeStmt *ast.ScopeStmt) {
	if scopeStmt == nil {
		return
	}

	e.indent++
	for _, stmt := range scopeStmt.Stmts {
		e.emitForStmt(stmt)
	}
	e.indent--
}

func (e *CEmitter) emitForIfStmt(ifStmt *ast.IfStmt) {
	e.addLine("if (%s) {", e.emitForExpr(ifStmt.Cond))
	e.emitForScopeStmt(ifStmt.Body)

	for ifStmt.Else != nil {
		if elseIf, ok := elseIfOf(ifStmt.Else); ok {
			e.addLine("} else if (%s) {", e.emitForExpr(elseIf.Cond))
			e.emitForScopeStmt(elseIf.Body)
			ifStmt = elseIf
			continue
		}

		e.addLine("} else {")
		e.emitForScopeStmt(ifStmt.Else)
		break
	}

	e.addLine("}")
}

func elseIfOf(scopeStmt *ast.ScopeStmt) (*ast.IfStmt, bool) {
	if len(scopeStmt.Stmts) != 1 {
		return nil, false
	}
	ifStmt, ok := scopeStmt.Stmts[0].(*ast.IfStmt)
	return ifStmt, ok
}

func (e *CEmitter) emitForForStmt(forStmt *ast.ForStmt) {
	var init, cond, update string

	switch initStmt := forStmt.Init.(type) {
	case *ast.VarDeclStmt:
		init = e.varDecl(initStmt)
	case *ast.ExprStmt:
		init = e.emitForExpr(initStmt.Expr)
	}
	if forStmt.Cond != nil {
		cond = e.emitForExpr(forStmt.Cond)
	}
	if forStmt.Update != nil {
		update = e.emitForExpr(forStmt.Update)
	}

	e.addLine("for (%s; %s; %s) {", init, cond, update)
	e.emitForScopeStmt(forStmt.Body)
	e.addLine("}")
}

// Everything is emitted inside main, so a bare return still has to yield an
// int.
func (e *CEmitter) emitForReturnStmt(returnStmt *ast.ReturnStmt) {
	if returnStmt.Expr == nil {
		e.addLine("return 0;")
		return
	}
	e.addLine("return %s;", e.emitForExpr(returnStmt.Expr))
}

func (e *CEmitter) varDecl(varDeclStmt *ast.VarDeclStmt) string {
	cType := "int"
	if varDeclStmt.ExplicitType != nil {
		cType = CTypeOf(*varDeclStmt.ExplicitType)
	}

	if varDeclStmt.Value == nil {
		return fmt.Sprintf("%s %s", cType, varDeclStmt.Name)
	}
	return fmt.Sprintf("%s %s = %s", cType, varDeclStmt.Name, e.emitForExpr(varDeclStmt.Value))
}

// CTypeOf maps a declared type to its C spelling. Optionals, unions and any
// have no C form and fall back to int.
func CTypeOf(typeDef types.TypeDef) string {
	if typeDef.Kind != types.PrimitiveKind {
		return "int"
	}

	switch typeDef.Name {
	case types.Int, types.Float, types.Bool, types.Char:
		return typeDef.Name
	case types.String:
		return "char*"
	}
	return "int"
}

func (e *CEmitter) emitForExpr(expr ast.Expr) string {
	switch expr := expr.(type) {
	case *ast.NumberExpr:
		// Fractions are dropped even for float declarations.
		return strconv.FormatInt(int64(expr.Value), 10)
	case *ast.StringExpr:
		return cStringLiteral(expr.Value)
	case *ast.BoolExpr:
		return strconv.FormatBool(expr.Value)
	case *ast.VarExpr:
		return expr.Name
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.emitForExpr(expr.Left), expr.Op, e.emitForExpr(expr.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s%s)", expr.Op, e.emitForExpr(expr.Operand))
	case *ast.CallExpr:
		return e.emitForCallExpr(expr)
	}

	// Tuples and anything else without a C form.
	return "0"
}

func (e *CEmitter) emitForCallExpr(callExpr *ast.CallExpr) string {
	args := make([]string, 0, len(callExpr.Args))
	for _, arg := range callExpr.Args {
		args = append(args, e.emitForExpr(arg))
	}

	switch {
	case callExpr.Module == "math":
		return fmt.Sprintf("%s(%s)", callExpr.Name, strings.Join(args, ", "))
	case callExpr.Module == "io" && (callExpr.Name == "print" || callExpr.Name == "println"):
		// Every argument is formatted with %d whatever its type.
		return fmt.Sprintf("printf(%s)", strings.Join(append([]string{`"%d\n"`}, args...), ", "))
	}

	return "0"
}

func cStringLiteral(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
