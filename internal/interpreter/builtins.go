package interpreter

import (
	"io"
	"math"

	"github.com/kievzenit/strata/internal/ast"
)

type builtin func(i *Interpreter, call *ast.CallExpr, env *Environment) (Value, error)

// textModule has no implemented functions; anything called on it is NaN.
const textModule = "str.text"

// builtinModules is set in init; a composite literal would form an
// initialization cycle through evalArgs and evalCallExpr.
var builtinModules map[string]map[string]builtin

func init() {
	builtinModules = map[string]map[string]builtin{
		"str.math": {
			"sqrt":   mathFunc(func(args []float64) float64 { return math.Sqrt(args[0]) }),
			"pow":    mathFunc(func(args []float64) float64 { return math.Pow(args[0], args[1]) }),
			"abs":    mathFunc(func(args []float64) float64 { return math.Abs(args[0]) }),
			"floor":  mathFunc(func(args []float64) float64 { return math.Floor(args[0]) }),
			"ceil":   mathFunc(func(args []float64) float64 { return math.Ceil(args[0]) }),
			"random": randomFunc,
		},
		"str.util": {
			"randomInt": randomIntFunc,
		},
		"str.io": {
			"print":   printFunc,
			"println": printFunc,
		},
	}
}

func canonicalModule(module string) string {
	return "str." + module
}

func (i *Interpreter) evalCallExpr(call *ast.CallExpr, env *Environment) (Value, error) {
	if !call.Member {
		if _, ok := i.funcs[call.Name]; ok {
			return Value{}, newRuntimeError(call, "cannot call user-defined function: %s", call.Name)
		}
		return Value{}, newRuntimeError(call, "unknown function: %s", call.Name)
	}

	module := canonicalModule(call.Module)
	if module == textModule {
		return Number(math.NaN()), nil
	}

	functions, ok := builtinModules[module]
	if !ok {
		if call.Module == "" {
			return Value{}, newRuntimeError(call, "unknown module: %s", module)
		}
		return Value{}, newRuntimeError(call, "unknown module: %s", call.Module)
	}

	function, ok := functions[call.Name]
	if !ok {
		return Value{}, newRuntimeError(call, "unknown function: %s.%s", call.Module, call.Name)
	}

	return function(i, call, env)
}

// evalArgs evaluates call arguments to numbers, padding with zeros up to n.
func (i *Interpreter) evalArgs(call *ast.CallExpr, env *Environment, n int) ([]float64, error) {
	args := make([]float64, max(n, len(call.Args)))
	for idx, arg := range call.Args {
		value, err := i.evalExpr(arg, env)
		if err != nil {
			return nil, err
		}
		args[idx] = value.Float()
	}

	return args, nil
}

func mathFunc(f func(args []float64) float64) builtin {
	return func(i *Interpreter, call *ast.CallExpr, env *Environment) (Value, error) {
		args, err := i.evalArgs(call, env, 2)
		if err != nil {
			return Value{}, err
		}
		return Number(f(args)), nil
	}
}

func randomFunc(i *Interpreter, call *ast.CallExpr, env *Environment) (Value, error) {
	if _, err := i.evalArgs(call, env, 0); err != nil {
		return Value{}, err
	}
	return Number(i.random()), nil
}

// randomIntFunc is randomInt(max) over [0, max) or randomInt(min, max) over
// [min, max), floored.
func randomIntFunc(i *Interpreter, call *ast.CallExpr, env *Environment) (Value, error) {
	args, err := i.evalArgs(call, env, 2)
	if err != nil {
		return Value{}, err
	}

	lo, hi := 0.0, args[0]
	if len(call.Args) >= 2 {
		lo, hi = args[0], args[1]
	}

	return Number(math.Floor(lo + i.random()*(hi-lo))), nil
}

// printFunc writes each argument followed by a space, then a newline. String
// literal arguments print their text even in numeric mode.
func printFunc(i *Interpreter, call *ast.CallExpr, env *Environment) (Value, error) {
	for _, arg := range call.Args {
		var text string
		if literal, ok := arg.(*ast.StringExpr); ok {
			text = literal.Value
		} else {
			value, err := i.evalExpr(arg, env)
			if err != nil {
				return Value{}, err
			}
			text = value.String()
		}

		if _, err := io.WriteString(i.out, text+" "); err != nil {
			return Value{}, newRuntimeError(call, "write failed: %v", err)
		}
	}

	if _, err := io.WriteString(i.out, "\n"); err != nil {
		return Value{}, newRuntimeError(call, "write failed: %v", err)
	}

	return i.absent(), nil
}
