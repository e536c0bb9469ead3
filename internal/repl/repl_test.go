package repl

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kievzenit/strata/internal/interpreter"
	"github.com/peterh/liner"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		name string
		args []string
		raw  string
	}{
		{":quit", "quit", nil, ""},
		{"  :mode   tagged ", "mode", []string{"tagged"}, "tagged"},
		{`:load "dir/a b.str"`, "load", []string{"dir/a b.str"}, `"dir/a b.str"`},
		{":x 1 2.5 name", "x", []string{"1", "2.5", "name"}, "1 2.5 name"},
		{":ast 1 + 2 * 3", "ast", nil, "1 + 2 * 3"},
		{`:ast io.print("hi")`, "ast", nil, `io.print("hi")`},
	}

	for _, tt := range tests {
		cmd, err := ParseCommand(tt.line)
		if err != nil {
			t.Errorf("ParseCommand(%q): unexpected error: %v", tt.line, err)
			continue
		}
		if cmd.Name != tt.name || cmd.Raw != tt.raw {
			t.Errorf("ParseCommand(%q) = %+v, want name %q raw %q", tt.line, cmd, tt.name, tt.raw)
		}
		if len(cmd.Args) != len(tt.args) || (len(tt.args) > 0 && !reflect.DeepEqual(cmd.Args, tt.args)) {
			t.Errorf("ParseCommand(%q) args = %q, want %q", tt.line, cmd.Args, tt.args)
		}
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, line := range []string{"quit", ":", ":123", ":mode +"} {
		if _, err := ParseCommand(line); err == nil {
			t.Errorf("ParseCommand(%q): expected an error", line)
		}
	}
}

type scriptedPrompter struct {
	lines   []string
	prompts []string
	err     error
}

func (p *scriptedPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if len(p.lines) == 0 {
		if p.err != nil {
			return "", p.err
		}
		return "", io.EOF
	}

	line := p.lines[0]
	p.lines = p.lines[1:]
	return line, nil
}

func TestReadChunkContinuesUnfinishedInput(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"if (1) {", "  io.print(1)", "}", "let x = 1"}}

	chunk, ok := readChunk(p)
	if !ok || chunk != "if (1) {\n  io.print(1)\n}" {
		t.Fatalf("got %q %v", chunk, ok)
	}
	if !reflect.DeepEqual(p.prompts, []string{promptMain, promptCont, promptCont}) {
		t.Errorf("unexpected prompts %q", p.prompts)
	}

	chunk, ok = readChunk(p)
	if !ok || chunk != "let x = 1" {
		t.Errorf("got %q %v", chunk, ok)
	}

	if _, ok := readChunk(p); ok {
		t.Errorf("expected end of input")
	}
}

func TestReadChunkReturnsSyntaxErrorsImmediately(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"let = 1"}}
	chunk, ok := readChunk(p)
	if !ok || chunk != "let = 1" {
		t.Errorf("got %q %v", chunk, ok)
	}
}

func TestReadChunkAbortDropsPendingInput(t *testing.T) {
	p := &scriptedPrompter{lines: []string{"while (1) {"}, err: liner.ErrPromptAborted}
	chunk, ok := readChunk(p)
	if !ok || chunk != "" {
		t.Errorf("got %q %v", chunk, ok)
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"let x =", true},
		{"func f() => int {", true},
		{"io.print(1,", true},
		{"let x = 1", false},
		{"let = 1", false},
		{":ast if (", false},
	}

	for _, tt := range tests {
		if got := needsMore(tt.src); got != tt.want {
			t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func newTestSession(options Options) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewSession(&out, &errOut, options), &out, &errOut
}

func feed(s *Session, lines ...string) {
	for _, line := range lines {
		s.HandleLine(line)
	}
}

func TestSessionKeepsGlobals(t *testing.T) {
	s, out, errOut := newTestSession(Options{})
	feed(s, "var x = 2", "x * 3", "io.print(x)", "x = 5", "")

	if errOut.Len() != 0 {
		t.Fatalf("unexpected errors: %s", errOut.String())
	}
	if out.String() != "6\n2 \n5\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestSessionRejectsChunkWithDiagnostics(t *testing.T) {
	s, out, errOut := newTestSession(Options{})
	feed(s, `let s: int = "a"`, ":env")

	if !strings.Contains(errOut.String(), "type mismatch for 's': expected int, got string") {
		t.Errorf("missing diagnostic in %q", errOut.String())
	}
	if out.String() != "(no bindings)\n" {
		t.Errorf("chunk should not have run, got %q", out.String())
	}
}

func TestSessionIntegerLiterals(t *testing.T) {
	s, _, errOut := newTestSession(Options{IntegerLiterals: true})
	feed(s, "let n: int = 3")
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors: %s", errOut.String())
	}
}

func TestSessionReportsRuntimeErrors(t *testing.T) {
	s, _, errOut := newTestSession(Options{})
	feed(s, "y")

	want := "ERROR: 1:1: undefined variable: y\n    y\n    ^\n"
	if errOut.String() != want {
		t.Errorf("got %q, want %q", errOut.String(), want)
	}
}

func TestSessionEnv(t *testing.T) {
	s, out, _ := newTestSession(Options{})
	feed(s, "var a: float = 1.5; let b = 2; var u", ":env")

	want := "var a: float = 1.5\nlet b = 2\nvar u = NaN\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestSessionModeSwitch(t *testing.T) {
	s, out, errOut := newTestSession(Options{})
	feed(s, ":mode", ":mode tagged", `let s = "hi"`, `s + "!"`, ":mode bogus")

	if out.String() != "mode: numeric\nmode: tagged\nhi!\n" {
		t.Errorf("got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "unknown mode: bogus") {
		t.Errorf("missing mode error in %q", errOut.String())
	}
}

func TestSessionStartsInConfiguredMode(t *testing.T) {
	s, out, _ := newTestSession(Options{ValueMode: interpreter.TaggedMode})
	feed(s, "1 < 2")
	if out.String() != "true\n" {
		t.Errorf("got %q", out.String())
	}
}

func TestSessionEmitsCForHistory(t *testing.T) {
	s, out, _ := newTestSession(Options{})
	feed(s, "var a: float = 1.5", "nope", "a = a + 1", ":c")

	got := out.String()
	if !strings.Contains(got, "    float a = 1;\n    (a = (a + 1));\n") {
		t.Errorf("unexpected C output:\n%s", got)
	}
	if strings.Contains(got, "nope") {
		t.Errorf("failed chunk leaked into C output:\n%s", got)
	}
}

func TestSessionReset(t *testing.T) {
	s, out, errOut := newTestSession(Options{})
	feed(s, "var a = 1", ":reset", ":env", "a")

	if out.String() != "session reset\n(no bindings)\n" {
		t.Errorf("got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "undefined variable: a") {
		t.Errorf("expected a to be gone, got %q", errOut.String())
	}
}

func TestSessionLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.str")
	if err := os.WriteFile(path, []byte("var n = 0\nwhile (n < 3) { n = n + 1 }\nio.print(n)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, out, errOut := newTestSession(Options{})
	feed(s, `:load "`+path+`"`, ":load", `:load "missing.str"`)

	if out.String() != "3 \n" {
		t.Errorf("got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "usage: :load") || !strings.Contains(errOut.String(), "missing.str") {
		t.Errorf("unexpected errors %q", errOut.String())
	}
}

func TestSessionAst(t *testing.T) {
	s, out, _ := newTestSession(Options{})
	feed(s, ":ast 1 + 2")

	if !strings.Contains(out.String(), "BinaryExpr") || !strings.Contains(out.String(), `Op: "+"`) {
		t.Errorf("unexpected dump %q", out.String())
	}
}

func TestSessionCommands(t *testing.T) {
	s, out, errOut := newTestSession(Options{})

	if s.HandleLine(":help") {
		t.Errorf(":help should not quit")
	}
	if !strings.Contains(out.String(), ":quit") {
		t.Errorf("help text missing commands: %q", out.String())
	}

	if s.HandleLine(":frobnicate") {
		t.Errorf("unknown command should not quit")
	}
	if !strings.Contains(errOut.String(), "unknown command: :frobnicate") {
		t.Errorf("got %q", errOut.String())
	}

	if s.HandleLine(":") {
		t.Errorf("invalid command should not quit")
	}
	if !strings.Contains(errOut.String(), "ERROR: invalid command") {
		t.Errorf("got %q", errOut.String())
	}

	if !s.HandleLine(":quit") {
		t.Errorf(":quit should end the session")
	}
}
