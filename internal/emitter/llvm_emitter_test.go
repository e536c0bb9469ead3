//go:build llvm

package emitter

import (
	"errors"
	"strings"
	"testing"
)

func emitLLVM(t *testing.T, src string) string {
	t.Helper()
	ir, err := EmitLLVM(mustParse(t, src))
	if err != nil {
		t.Fatalf("EmitLLVM(%q): %v", src, err)
	}
	return ir
}

func expectIRContains(t *testing.T, ir string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(ir, fragment) {
			t.Errorf("IR does not contain %q:\n%s", fragment, ir)
		}
	}
}

func TestLLVMMainAndDeclarations(t *testing.T) {
	ir := emitLLVM(t, "")
	expectIRContains(t, ir,
		"define i32 @main()",
		"declare double @sqrt(double)",
		"declare double @pow(double, double)",
		"declare i32 @printf(",
		"ret i32 0",
	)
}

func TestLLVMVariablesAreDoubles(t *testing.T) {
	ir := emitLLVM(t, "var x: int = 5\nwhile (x > 0) { x = x - 1 }")
	expectIRContains(t, ir,
		"%x = alloca double",
		"store double 5.000000e+00",
		"fcmp ogt double",
		"fsub double",
		"whilecheck:",
		"whilebody:",
		"whileafter:",
	)
}

func TestLLVMControlFlow(t *testing.T) {
	ir := emitLLVM(t, `
		var n = 0
		for (var i = 0; i < 10; i = i + 1) {
			if (i == 3) { break } else { continue }
			n = n + 1
		}
		if (n) { return }
		io.print(n)
	`)
	expectIRContains(t, ir,
		"forinit:",
		"forcheck:",
		"forpost:",
		"forafter:",
		"ifcheck:",
		"call double @fabs(",
	)
}

func TestLLVMBuiltins(t *testing.T) {
	ir := emitLLVM(t, `io.print("n =", math.sqrt(16), math.abs(-2), util.randomInt(3), text.upper("x"))`)
	expectIRContains(t, ir,
		"call double @sqrt(double 1.600000e+01)",
		"call double @fabs(",
		"call i32 @rand()",
		"call double @floor(",
		`c"n =\00"`,
		`c"%s %g %g %g %g \0A\00"`,
	)
}

func TestLLVMErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"foo.bar()", "unknown module: foo"},
		{"math.nope()", "unknown function: math.nope"},
		{"io.write(1)", "unknown function: io.write"},
		{"func f() => int { return 1 }\nf()", "cannot call user-defined function: f"},
		{"g()", "unknown function: g"},
		{"(1).foo()", "unknown module: str."},
		{"x = 1", "undefined variable: x"},
		{"let c = 1\nc = 2", "cannot reassign immutable variable: c"},
		{"if (1) { var inner = 1 }\ninner", "undefined variable: inner"},
	}

	for _, tt := range tests {
		_, err := EmitLLVM(mustParse(t, tt.src))
		var emitErr *EmitError
		if !errors.As(err, &emitErr) {
			t.Errorf("EmitLLVM(%q): expected *EmitError, got %v", tt.src, err)
			continue
		}
		if emitErr.Message != tt.message {
			t.Errorf("EmitLLVM(%q): got %q, want %q", tt.src, emitErr.Message, tt.message)
		}
	}
}
