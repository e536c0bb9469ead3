package interpreter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/lexer"
)

type RuntimeError struct {
	Message  string
	Location lexer.Location
}

func (e *RuntimeError) Error() string      { return e.Message }
func (e *RuntimeError) GetMessage() string { return e.Message }
func (e *RuntimeError) GetLine() int       { return e.Location.Line }
func (e *RuntimeError) GetColumn() int     { return e.Location.Column }
func (e *RuntimeError) GetSource() string  { return e.Location.Source }

func newRuntimeError(node ast.AstNode, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Message:  fmt.Sprintf(format, args...),
		Location: ast.LocationOf(node),
	}
}

type signalKind int

const (
	signalNone signalKind = iota
	signalBreak
	signalContinue
	signalReturn
)

// signal is what a statement hands back to its enclosing block: keep going,
// or unwind for break, continue or return.
type signal struct {
	kind  signalKind
	value Value
}

var none = signal{kind: signalNone}

type Option func(*Interpreter)

func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithRandom sets the source used by math.random and util.randomInt. It must
// return values in [0, 1).
func WithRandom(random func() float64) Option {
	return func(i *Interpreter) {
		i.random = random
	}
}

func WithValueMode(mode ValueMode) Option {
	return func(i *Interpreter) {
		i.mode = mode
	}
}

type Interpreter struct {
	out    io.Writer
	random func() float64
	mode   ValueMode

	globals *Environment
	imports map[string]string
	funcs   map[string]struct{}

	lastValue *Value
}

func New(options ...Option) *Interpreter {
	i := &Interpreter{
		out:    os.Stdout,
		random: rand.Float64,
		mode:   NumericMode,
	}
	for _, option := range options {
		option(i)
	}
	i.Reset()

	return i
}

// Reset drops every global binding, import and function declaration.
func (i *Interpreter) Reset() {
	i.globals = NewEnvironment(nil)
	i.imports = make(map[string]string)
	i.funcs = make(map[string]struct{})
	i.lastValue = nil
}

func (i *Interpreter) SetValueMode(mode ValueMode) {
	i.mode = mode
}

func (i *Interpreter) ValueMode() ValueMode {
	return i.mode
}

func (i *Interpreter) Imports() map[string]string {
	imports := make(map[string]string, len(i.imports))
	for module, canonical := range i.imports {
		imports[module] = canonical
	}
	return imports
}

func (i *Interpreter) Globals() []Binding {
	return i.globals.Bindings()
}

// LastValue is the value of the last top-level expression statement executed
// by the most recent Run.
func (i *Interpreter) LastValue() (Value, bool) {
	if i.lastValue == nil {
		return Value{}, false
	}
	return *i.lastValue, true
}

// Run executes program in the global scope, which survives between calls.
// A break, continue or return that reaches the top level ends the run
// without error.
func (i *Interpreter) Run(program *ast.Program) error {
	i.lastValue = nil

	for _, stmt := range program.Stmts {
		if exprStmt, ok := stmt.(*ast.ExprStmt); ok {
			value, err := i.evalExpr(exprStmt.Expr, i.globals)
			if err != nil {
				return err
			}
			i.lastValue = &value
			continue
		}

		sig, err := i.execStmt(stmt, i.globals)
		if err != nil {
			return err
		}
		if sig.kind != signalNone {
			return nil
		}
	}

	return nil
}

func (i *Interpreter) execStmt(stmt ast.Stmt, env *Environment) (signal, error) {
	switch stmt := stmt.(type) {
	case *ast.VarDeclStmt:
		return none, i.execVarDeclStmt(stmt, env)
	case *ast.ExprStmt:
		_, err := i.evalExpr(stmt.Expr, env)
		return none, err
	case *ast.IfStmt:
		return i.execIfStmt(stmt, env)
	case *ast.WhileStmt:
		return i.execWhileStmt(stmt, env)
	case *ast.ForStmt:
		return i.execForStmt(stmt, env)
	case *ast.BreakStmt:
		return signal{kind: signalBreak}, nil
	case *ast.ContinueStmt:
		return signal{kind: signalContinue}, nil
	case *ast.ReturnStmt:
		return i.execReturnStmt(stmt, env)
	case *ast.ImportStmt:
		i.imports[stmt.Module] = canonicalModule(stmt.Module)
		return none, nil
	case *ast.FuncStmt:
		i.funcs[stmt.Name] = struct{}{}
		return none, nil
	}

	return none, newRuntimeError(stmt, "unsupported statement %T", stmt)
}

func (i *Interpreter) execBlock(scopeStmt *ast.ScopeStmt, env *Environment) (signal, error) {
	if scopeStmt == nil {
		return none, nil
	}

	scope := NewEnvironment(env)
	for _, stmt := range scopeStmt.Stmts {
		sig, err := i.execStmt(stmt, scope)
		if err != nil || sig.kind != signalNone {
			return sig, err
		}
	}

	return none, nil
}

func (i *Interpreter) execVarDeclStmt(varDeclStmt *ast.VarDeclStmt, env *Environment) error {
	value := i.absent()
	if varDeclStmt.Value != nil {
		var err error
		value, err = i.evalExpr(varDeclStmt.Value, env)
		if err != nil {
			return err
		}
	}

	env.Define(varDeclStmt.Name, value, varDeclStmt.ExplicitType, varDeclStmt.Mutable)
	return nil
}

func (i *Interpreter) execIfStmt(ifStmt *ast.IfStmt, env *Environment) (signal, error) {
	cond, err := i.evalExpr(ifStmt.Cond, env)
	if err != nil {
		return none, err
	}

	if cond.Truthy() {
		return i.execBlock(ifStmt.Body, env)
	}
	return i.execBlock(ifStmt.Else, env)
}

func (i *Interpreter) execWhileStmt(whileStmt *ast.WhileStmt, env *Environment) (signal, error) {
	for {
		cond, err := i.evalExpr(whileStmt.Cond, env)
		if err != nil {
			return none, err
		}
		if !cond.Truthy() {
			return none, nil
		}

		sig, err := i.execBlock(whileStmt.Body, env)
		if err != nil {
			return none, err
		}

		switch sig.kind {
		case signalBreak:
			return none, nil
		case signalReturn:
			return sig, nil
		}
	}
}

func (i *Interpreter) execForStmt(forStmt *ast.ForStmt, env *Environment) (signal, error) {
	loopEnv := NewEnvironment(env)

	if forStmt.Init != nil {
		sig, err := i.execStmt(forStmt.Init, loopEnv)
		if err != nil || sig.kind != signalNone {
			return sig, err
		}
	}

	for {
		if forStmt.Cond != nil {
			cond, err := i.evalExpr(forStmt.Cond, loopEnv)
			if err != nil {
				return none, err
			}
			if !cond.Truthy() {
				return none, nil
			}
		}

		sig, err := i.execBlock(forStmt.Body, loopEnv)
		if err != nil {
			return none, err
		}

		switch sig.kind {
		case signalBreak:
			return none, nil
		case signalReturn:
			return sig, nil
		}

		if forStmt.Update != nil {
			if _, err := i.evalExpr(forStmt.Update, loopEnv); err != nil {
				return none, err
			}
		}
	}
}

func (i *Interpreter) execReturnStmt(returnStmt *ast.ReturnStmt, env *Environment) (signal, error) {
	if returnStmt.Expr == nil {
		return signal{kind: signalReturn, value: i.absent()}, nil
	}

	value, err := i.evalExpr(returnStmt.Expr, env)
	if err != nil {
		return none, err
	}

	return signal{kind: signalReturn, value: value}, nil
}

func (i *Interpreter) evalExpr(expr ast.Expr, env *Environment) (Value, error) {
	switch expr := expr.(type) {
	case *ast.NumberExpr:
		return Number(expr.Value), nil
	case *ast.BoolExpr:
		return i.boolean(expr.Value), nil
	case *ast.StringExpr:
		return i.text(expr.Value), nil
	case *ast.VarExpr:
		value, err := env.Get(expr.Name)
		if err != nil {
			return Value{}, newRuntimeError(expr, "undefined variable: %s", expr.Name)
		}
		return i.normalize(value), nil
	case *ast.BinaryExpr:
		if expr.IsAssignment() {
			return i.evalAssignExpr(expr, env)
		}
		return i.evalBinaryExpr(expr, env)
	case *ast.UnaryExpr:
		return i.evalUnaryExpr(expr, env)
	case *ast.CallExpr:
		return i.evalCallExpr(expr, env)
	case *ast.TupleExpr:
		for _, element := range expr.Elements {
			if _, err := i.evalExpr(element, env); err != nil {
				return Value{}, err
			}
		}
		return i.absent(), nil
	}

	return Value{}, newRuntimeError(expr, "unsupported expression %T", expr)
}

func (i *Interpreter) evalAssignExpr(expr *ast.BinaryExpr, env *Environment) (Value, error) {
	target := expr.Left.(*ast.VarExpr)

	value, err := i.evalExpr(expr.Right, env)
	if err != nil {
		return Value{}, err
	}

	if err := env.Assign(target.Name, value); err != nil {
		if errors.Is(err, errImmutableVariable) {
			return Value{}, newRuntimeError(expr, "cannot reassign immutable variable: %s", target.Name)
		}
		return Value{}, newRuntimeError(expr, "undefined variable: %s", target.Name)
	}

	return value, nil
}

// evalBinaryExpr evaluates both operands before applying the operator; && and
// || do not short-circuit.
func (i *Interpreter) evalBinaryExpr(expr *ast.BinaryExpr, env *Environment) (Value, error) {
	left, err := i.evalExpr(expr.Left, env)
	if err != nil {
		return Value{}, err
	}
	right, err := i.evalExpr(expr.Right, env)
	if err != nil {
		return Value{}, err
	}

	l, r := left.Float(), right.Float()

	switch expr.Op {
	case "+":
		if left.Kind == TextKind || right.Kind == TextKind {
			return Text(left.String() + right.String()), nil
		}
		return Number(l + r), nil
	case "-":
		return Number(l - r), nil
	case "*":
		return Number(l * r), nil
	case "/":
		return Number(l / r), nil
	case "%":
		return Number(math.Mod(l, r)), nil
	case "==":
		return i.boolean(i.equal(left, right)), nil
	case "!=":
		return i.boolean(!i.equal(left, right)), nil
	case "<":
		return i.boolean(l < r), nil
	case ">":
		return i.boolean(l > r), nil
	case "<=":
		return i.boolean(l <= r), nil
	case ">=":
		return i.boolean(l >= r), nil
	case "&&":
		return i.boolean(left.Truthy() && right.Truthy()), nil
	case "||":
		return i.boolean(left.Truthy() || right.Truthy()), nil
	}

	return Value{}, newRuntimeError(expr, "unknown operator: %s", expr.Op)
}

func (i *Interpreter) equal(left, right Value) bool {
	if left.Kind == TextKind && right.Kind == TextKind {
		return left.Text == right.Text
	}
	return numbersEqual(left.Float(), right.Float())
}

func (i *Interpreter) evalUnaryExpr(expr *ast.UnaryExpr, env *Environment) (Value, error) {
	operand, err := i.evalExpr(expr.Operand, env)
	if err != nil {
		return Value{}, err
	}

	switch expr.Op {
	case "!":
		return i.boolean(!operand.Truthy()), nil
	case "-":
		return Number(-operand.Float()), nil
	case "+":
		return Number(operand.Float()), nil
	case "~":
		return Number(float64(^int64(operand.Float()))), nil
	}

	return Value{}, newRuntimeError(expr, "unknown unary operator: %s", expr.Op)
}

func (i *Interpreter) boolean(b bool) Value {
	if i.mode == TaggedMode {
		return Boolean(b)
	}
	if b {
		return Number(1)
	}
	return Number(0)
}

func (i *Interpreter) text(s string) Value {
	if i.mode == TaggedMode {
		return Text(s)
	}
	return Number(math.NaN())
}

// normalize re-encodes a stored value for the current mode. Values bound
// under tagged mode read back as numbers once the mode is numeric.
func (i *Interpreter) normalize(v Value) Value {
	if i.mode == TaggedMode {
		return v
	}
	return Number(v.Float())
}

func (i *Interpreter) absent() Value {
	if i.mode == TaggedMode {
		return Absent()
	}
	return Number(math.NaN())
}
