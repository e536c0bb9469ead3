package parser

import (
	"errors"
	"testing"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	program, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q): unexpected error: %v", src, err)
	}
	return program
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	program := parse(t, src)
	if len(program.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d:\n%s", len(program.Stmts), ast.Dump(program))
	}
	stmt, ok := program.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected expression statement, got:\n%s", ast.Dump(program.Stmts[0]))
	}
	return stmt.Expr
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("ParseSource(%q): expected error", src)
	}
	var parseError *ParseError
	if !errors.As(err, &parseError) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	return parseError
}

// shape renders an expression as a compact prefix form for comparisons.
func shape(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.NumberExpr:
		return e.Literal
	case *ast.VarExpr:
		return e.Name
	case *ast.StringExpr:
		return "'" + e.Value + "'"
	case *ast.BoolExpr:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.BinaryExpr:
		return "(" + e.Op + " " + shape(e.Left) + " " + shape(e.Right) + ")"
	case *ast.UnaryExpr:
		return "(" + e.Op + " " + shape(e.Operand) + ")"
	case *ast.CallExpr:
		out := "(call " + e.Module + "." + e.Name
		for _, arg := range e.Args {
			out += " " + shape(arg)
		}
		return out + ")"
	case *ast.TupleExpr:
		out := "(tuple"
		for _, el := range e.Elements {
			out += " " + shape(el)
		}
		return out + ")"
	}
	return "?"
}

func TestMultiplicationBindsTighterThanAddition(t *testing.T) {
	expr := parseExpr(t, "1 + 2 * 3")

	add, ok := expr.(*ast.BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("expected top-level '+', got:\n%s", ast.Dump(expr))
	}
	if left, ok := add.Left.(*ast.NumberExpr); !ok || left.Value != 1 {
		t.Fatalf("expected Number(1) on the left, got:\n%s", ast.Dump(add.Left))
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected '*' on the right, got:\n%s", ast.Dump(add.Right))
	}
	if l, ok := mul.Left.(*ast.NumberExpr); !ok || l.Value != 2 {
		t.Errorf("expected Number(2), got:\n%s", ast.Dump(mul.Left))
	}
	if r, ok := mul.Right.(*ast.NumberExpr); !ok || r.Value != 3 {
		t.Errorf("expected Number(3), got:\n%s", ast.Dump(mul.Right))
	}
}

func TestExpressionShapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"1 * 2 + 3", "(+ (* 1 2) 3)"},
		{"a + b * c - d", "(- (+ a (* b c)) d)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a == b < c", "(== a (< b c))"},
		{"a < b == c > d", "(== (< a b) (> c d))"},
		{"8 / 4 % 3", "(% (/ 8 4) 3)"},
		{"(1 + 2) * 3", "(* (+ 1 2) 3)"},
		{"-x * 2", "(* (- x) 2)"},
		{"!!a", "(! (! a))"},
		{"~a + +b", "(+ (~ a) (+ b))"},
		{"a = b = 1 + 2", "(= a (= b (+ 1 2)))"},
		{"x = x - 1", "(= x (- x 1))"},
		{"io.print(\"hi\", 1)", "(call io.print 'hi' 1)"},
		{"sqrt(4)", "(call .sqrt 4)"},
		{"math.pow(2, 3) + 1", "(+ (call math.pow 2 3) 1)"},
		{"f(1).g()", "(call .g)"},
		{"(1, x, \"s\")", "(tuple 1 x 's')"},
		{"'c'", "'c'"},
		{"true && false", "(&& true false)"},
		{"3.25", "3.25"},
	}

	for _, tt := range tests {
		if got := shape(parseExpr(t, tt.src)); got != tt.want {
			t.Errorf("%q: got %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestMemberCallsAreMarked(t *testing.T) {
	call, ok := parseExpr(t, "f(1).g(2)").(*ast.CallExpr)
	if !ok {
		t.Fatalf("expected call")
	}
	if !call.Member || call.Module != "" || call.Name != "g" {
		t.Errorf("got member %v module %q name %q", call.Member, call.Module, call.Name)
	}

	plain, ok := parseExpr(t, "g(2)").(*ast.CallExpr)
	if !ok || plain.Member || plain.Module != "" {
		t.Errorf("plain call parsed as %+v", plain)
	}
}

func TestVarDecl(t *testing.T) {
	tests := []struct {
		src      string
		name     string
		mutable  bool
		typeName string
		hasValue bool
	}{
		{"let x = 1", "x", false, "", true},
		{"const y: float = 2.5;", "y", false, "float", true},
		{"var z: string", "z", true, "string", false},
		{"var n: int?", "n", true, "int?", false},
		{"let u: int | string = 1", "u", false, "int|string", true},
		{"let w: void = 1", "w", false, "any", true},
		{"let o: list? = 1", "o", false, "any?", true},
	}

	for _, tt := range tests {
		program := parse(t, tt.src)
		decl, ok := program.Stmts[0].(*ast.VarDeclStmt)
		if !ok {
			t.Fatalf("%q: expected VarDeclStmt, got:\n%s", tt.src, ast.Dump(program.Stmts[0]))
		}
		if decl.Name != tt.name || decl.Mutable != tt.mutable {
			t.Errorf("%q: got name %q mutable %v", tt.src, decl.Name, decl.Mutable)
		}
		if tt.typeName == "" && decl.ExplicitType != nil {
			t.Errorf("%q: expected no type, got %s", tt.src, decl.ExplicitType)
		}
		if tt.typeName != "" && (decl.ExplicitType == nil || decl.ExplicitType.String() != tt.typeName) {
			t.Errorf("%q: got type %v, want %s", tt.src, decl.ExplicitType, tt.typeName)
		}
		if (decl.Value != nil) != tt.hasValue {
			t.Errorf("%q: hasValue = %v, want %v", tt.src, decl.Value != nil, tt.hasValue)
		}
	}
}

func TestUnionMembersTakeTheirOwnOptional(t *testing.T) {
	decl := parse(t, "let v: int? | char").Stmts[0].(*ast.VarDeclStmt)
	want := types.Union(types.Optional(types.Primitive(types.Int)), types.Primitive(types.Char))
	if !decl.ExplicitType.Equal(want) {
		t.Errorf("got %s, want %s", decl.ExplicitType, want)
	}
}

func TestIfElseIfChain(t *testing.T) {
	program := parse(t, `
		if (a) { x = 1 } else if (b) { x = 2 } else { x = 3 }
	`)

	ifStmt, ok := program.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected IfStmt, got:\n%s", ast.Dump(program))
	}
	if ifStmt.Else == nil || len(ifStmt.Else.Stmts) != 1 {
		t.Fatalf("expected else holding one statement, got:\n%s", ast.Dump(ifStmt))
	}
	nested, ok := ifStmt.Else.Stmts[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested IfStmt, got:\n%s", ast.Dump(ifStmt.Else))
	}
	if shape(nested.Cond) != "b" || nested.Else == nil || len(nested.Else.Stmts) != 1 {
		t.Errorf("unexpected nested if:\n%s", ast.Dump(nested))
	}
}

func TestForLoopParts(t *testing.T) {
	program := parse(t, "for (var i = 0; i < 10; i = i + 1) { continue; }")
	forStmt := program.Stmts[0].(*ast.ForStmt)
	if _, ok := forStmt.Init.(*ast.VarDeclStmt); !ok {
		t.Errorf("expected var decl init, got:\n%s", ast.Dump(forStmt.Init))
	}
	if shape(forStmt.Cond) != "(< i 10)" || shape(forStmt.Update) != "(= i (+ i 1))" {
		t.Errorf("unexpected cond/update: %s %s", shape(forStmt.Cond), shape(forStmt.Update))
	}
	if _, ok := forStmt.Body.Stmts[0].(*ast.ContinueStmt); !ok {
		t.Errorf("expected continue in body")
	}

	empty := parse(t, "for (;;) { break }").Stmts[0].(*ast.ForStmt)
	if empty.Init != nil || empty.Cond != nil || empty.Update != nil {
		t.Errorf("expected all parts empty, got:\n%s", ast.Dump(empty))
	}
}

func TestReturnValueMustStartOnSameLine(t *testing.T) {
	program := parse(t, "func f() => int {\n return 1 + 2\n}\nfunc g() => int {\n return\n x\n}")

	f := program.Stmts[0].(*ast.FuncStmt)
	if ret := f.Body.Stmts[0].(*ast.ReturnStmt); shape(ret.Expr) != "(+ 1 2)" {
		t.Errorf("expected return value, got:\n%s", ast.Dump(ret))
	}

	g := program.Stmts[1].(*ast.FuncStmt)
	if len(g.Body.Stmts) != 2 {
		t.Fatalf("expected bare return followed by expression, got:\n%s", ast.Dump(g.Body))
	}
	if ret := g.Body.Stmts[0].(*ast.ReturnStmt); ret.Expr != nil {
		t.Errorf("expected bare return")
	}

	for _, src := range []string{"return;", "return", "if (a) { return }"} {
		parse(t, src)
	}
}

func TestFuncDecl(t *testing.T) {
	program := parse(t, "func add(a: int, b: float) => float { return a + b }")
	f := program.Stmts[0].(*ast.FuncStmt)

	if f.Name != "add" || len(f.Args) != 2 {
		t.Fatalf("unexpected func:\n%s", ast.Dump(f))
	}
	if f.Args[0].Name != "a" || !f.Args[0].Type.IsPrimitive(types.Int) {
		t.Errorf("unexpected first arg: %+v", f.Args[0])
	}
	if !f.ReturnType.IsPrimitive(types.Float) {
		t.Errorf("unexpected return type %s", f.ReturnType)
	}
}

func TestImportDiscardsRoot(t *testing.T) {
	program := parse(t, "import math from std\nimport io")
	if len(program.Stmts) != 2 {
		t.Fatalf("expected 2 imports, got:\n%s", ast.Dump(program))
	}
	if m := program.Stmts[0].(*ast.ImportStmt).Module; m != "math" {
		t.Errorf("got module %q", m)
	}
	if m := program.Stmts[1].(*ast.ImportStmt).Module; m != "io" {
		t.Errorf("got module %q", m)
	}
}

func TestSemicolonsAreOptional(t *testing.T) {
	a := parse(t, "let x = 1; x = 2; io.print(x);")
	b := parse(t, "let x = 1\nx = 2\nio.print(x)\n;;")
	if len(a.Stmts) != 3 || len(b.Stmts) != 3 {
		t.Fatalf("got %d and %d statements", len(a.Stmts), len(b.Stmts))
	}
}

func TestStatementLocations(t *testing.T) {
	program := parse(t, "let a = 1\n  while (a) { a = 0 }")
	loc := ast.LocationOf(program.Stmts[1])
	if loc.Line != 2 || loc.Column != 3 || loc.Source != "  while (a) { a = 0 }" {
		t.Errorf("unexpected location %+v", loc)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src    string
		line   int
		column int
		atEOF  bool
	}{
		{"let = 5", 1, 5, false},
		{"let if = 1", 1, 5, false},
		{"x = @", 1, 5, false},
		{"1 = 2", 1, 3, false},
		{"while x { }", 1, 7, false},
		{"io.print(1", 1, 11, true},
		{"if (x) {\n  let y = 1\n", 2, 12, true},
		{"let x =", 1, 8, true},
		{"for (;;)", 1, 9, true},
	}

	for _, tt := range tests {
		err := parseErr(t, tt.src)
		if err.Line != tt.line || err.Column != tt.column || err.AtEOF != tt.atEOF {
			t.Errorf("%q: got %d:%d atEOF=%v (%s), want %d:%d atEOF=%v",
				tt.src, err.Line, err.Column, err.AtEOF, err.Message, tt.line, tt.column, tt.atEOF)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := parseErr(t, "while (x) [")
	if err.Message != "unexpected token: '[', expected: '{'" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.GetSource() != "while (x) [" {
		t.Errorf("unexpected source %q", err.GetSource())
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "  // nothing\n", ";"} {
		if program := parse(t, src); len(program.Stmts) != 0 {
			t.Errorf("%q: expected no statements", src)
		}
	}
}
