package semantic_analyzer

import (
	"fmt"
	"sort"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/types"
)

// TypeDiagnostic is a non-fatal finding of the checker. It is located by
// line only, so GetColumn is always 0.
type TypeDiagnostic struct {
	message string

	line   int
	source string
}

func (d *TypeDiagnostic) GetMessage() string { return d.message }
func (d *TypeDiagnostic) GetLine() int       { return d.line }
func (d *TypeDiagnostic) GetColumn() int     { return 0 }
func (d *TypeDiagnostic) GetSource() string  { return d.source }

func (d *TypeDiagnostic) String() string {
	return fmt.Sprintf("line %d: %s", d.line, d.message)
}

func newTypeDiagnostic(message string, node ast.AstNode) *TypeDiagnostic {
	location := ast.LocationOf(node)
	return &TypeDiagnostic{
		message: message,

		line:   location.Line,
		source: location.Source,
	}
}

type Options struct {
	// IntegerLiterals makes digit-only number literals infer int instead
	// of float.
	IntegerLiterals bool
}

type SemanticAnalyzer struct {
	options Options

	root  *scope
	scope *scope

	diagnostics []*TypeDiagnostic
}

func NewSemanticAnalyzer(options Options) *SemanticAnalyzer {
	root := newScope(nil)
	return &SemanticAnalyzer{
		options: options,

		root:  root,
		scope: root,
	}
}

// Check runs a fresh analyzer over program and returns the diagnostics as
// "line N: ..." strings.
func Check(program *ast.Program) []string {
	diagnostics := NewSemanticAnalyzer(Options{}).Analyze(program)

	messages := make([]string, len(diagnostics))
	for i, diagnostic := range diagnostics {
		messages[i] = diagnostic.String()
	}
	return messages
}

// Analyze visits every statement and returns the diagnostics found in this
// call. Top-level bindings stay in the root frame for later calls.
func (sa *SemanticAnalyzer) Analyze(program *ast.Program) []*TypeDiagnostic {
	sa.diagnostics = make([]*TypeDiagnostic, 0)
	sa.scope = sa.root

	for _, stmt := range program.Stmts {
		sa.analyzeStmt(stmt)
	}

	return sa.diagnostics
}

func (sa *SemanticAnalyzer) Reset() {
	sa.root = newScope(nil)
	sa.scope = sa.root
}

// Globals returns the root frame's bindings sorted by name.
func (sa *SemanticAnalyzer) Globals() []Binding {
	bindings := make([]Binding, 0, len(sa.root.variables))
	for name, t := range sa.root.variables {
		bindings = append(bindings, Binding{Name: name, Type: t})
	}
	sort.Slice(bindings, func(i, j int) bool {
		return bindings[i].Name < bindings[j].Name
	})
	return bindings
}

type Binding struct {
	Name string
	Type types.TypeDef
}

func (sa *SemanticAnalyzer) enterScope() {
	sa.scope = newScope(sa.scope)
}

func (sa *SemanticAnalyzer) exitScope() {
	sa.scope = sa.scope.parent
}

func (sa *SemanticAnalyzer) analyzeStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.VarDeclStmt:
		sa.analyzeVarDeclStmt(stmt)
	case *ast.FuncStmt:
		sa.analyzeFuncStmt(stmt)
	case *ast.IfStmt:
		sa.analyzeIfStmt(stmt)
	case *ast.WhileStmt:
		sa.analyzeScopeStmt(stmt.Body)
	case *ast.ForStmt:
		sa.analyzeForStmt(stmt)
	case *ast.ImportStmt, *ast.BreakStmt, *ast.ContinueStmt, *ast.ReturnStmt, *ast.ExprStmt:
	default:
		panic(fmt.Sprintf("unknown statement %T", stmt))
	}
}

func (sa *SemanticAnalyzer) analyzeScopeStmt(scopeStmt *ast.ScopeStmt) {
	if scopeStmt == nil {
		return
	}

	sa.enterScope()
	defer sa.exitScope()

	for _, stmt := range scopeStmt.Stmts {
		sa.analyzeStmt(stmt)
	}
}

func (sa *SemanticAnalyzer) analyzeFuncStmt(funcStmt *ast.FuncStmt) {
	sa.enterScope()
	defer sa.exitScope()

	for _, arg := range funcStmt.Args {
		sa.scope.defineVar(arg.Name, arg.Type)
	}

	for _, stmt := range funcStmt.Body.Stmts {
		sa.analyzeStmt(stmt)
	}
}

func (sa *SemanticAnalyzer) analyzeIfStmt(ifStmt *ast.IfStmt) {
	sa.analyzeScopeStmt(ifStmt.Body)
	sa.analyzeScopeStmt(ifStmt.Else)
}

func (sa *SemanticAnalyzer) analyzeForStmt(forStmt *ast.ForStmt) {
	sa.enterScope()
	defer sa.exitScope()

	if forStmt.Init != nil {
		sa.analyzeStmt(forStmt.Init)
	}
	sa.analyzeScopeStmt(forStmt.Body)
}

// analyzeVarDeclStmt reports an initializer that does not fit the declared
// type, then binds the declared type (or the inferred one) either way.
func (sa *SemanticAnalyzer) analyzeVarDeclStmt(varDeclStmt *ast.VarDeclStmt) {
	boundType := types.Primitive(types.Any)

	var valueType types.TypeDef
	if varDeclStmt.Value != nil {
		valueType = sa.InferExprType(varDeclStmt.Value)
		boundType = valueType
	}

	if varDeclStmt.ExplicitType != nil {
		boundType = *varDeclStmt.ExplicitType

		if varDeclStmt.Value != nil && !types.Compatible(valueType, boundType) {
			sa.diagnostics = append(sa.diagnostics, newTypeDiagnostic(
				fmt.Sprintf("type mismatch for '%s': expected %s, got %s",
					varDeclStmt.Name, boundType, valueType),
				varDeclStmt,
			))
		}
	}

	sa.scope.defineVar(varDeclStmt.Name, boundType)
}

func (sa *SemanticAnalyzer) InferExprType(expr ast.Expr) types.TypeDef {
	switch expr := expr.(type) {
	case *ast.NumberExpr:
		if sa.options.IntegerLiterals && isDigitsOnly(expr.Literal) {
			return types.Primitive(types.Int)
		}
		return types.Primitive(types.Float)
	case *ast.StringExpr:
		return types.Primitive(types.String)
	case *ast.BoolExpr:
		return types.Primitive(types.Bool)
	case *ast.VarExpr:
		if t, ok := sa.scope.lookupVar(expr.Name); ok {
			return t
		}
		return types.Primitive(types.Any)
	case *ast.BinaryExpr:
		if ast.IsComparisonOp(expr.Op) {
			return types.Primitive(types.Bool)
		}

		left := sa.InferExprType(expr.Left)
		right := sa.InferExprType(expr.Right)
		if left.IsPrimitive(types.Float) || right.IsPrimitive(types.Float) {
			return types.Primitive(types.Float)
		}
		return left
	case *ast.UnaryExpr:
		if expr.Op == "!" {
			return types.Primitive(types.Bool)
		}
		return sa.InferExprType(expr.Operand)
	}

	return types.Primitive(types.Any)
}

func isDigitsOnly(literal string) bool {
	if literal == "" {
		return false
	}
	for i := 0; i < len(literal); i++ {
		if literal[i] < '0' || literal[i] > '9' {
			return false
		}
	}
	return true
}
