package compiler_errors

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type plainError struct{ msg string }

func (e *plainError) GetMessage() string { return e.msg }

type locatedError struct {
	msg          string
	line, column int
	source       string
}

func (e *locatedError) GetMessage() string { return e.msg }
func (e *locatedError) GetLine() int       { return e.line }
func (e *locatedError) GetColumn() int     { return e.column }
func (e *locatedError) GetSource() string  { return e.source }

func TestReportListsEveryError(t *testing.T) {
	var out bytes.Buffer
	eh := NewErrorHandler(&out)
	eh.AddError(&plainError{"first"})
	eh.AddError(&plainError{"second"})

	if !eh.HasErrors() || len(eh.Errors()) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(eh.Errors()))
	}

	eh.Report()
	got := out.String()
	want := "Build failed with errors:\nERROR: first\nERROR: second\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReportLocatedErrorWithCaret(t *testing.T) {
	var out bytes.Buffer
	eh := NewErrorHandler(&out)
	eh.AddError(&locatedError{msg: "unexpected token", line: 3, column: 5, source: "let = 4"})
	eh.Report()

	got := out.String()
	if !strings.Contains(got, "ERROR: 3:5: unexpected token\n") {
		t.Errorf("missing location prefix in %q", got)
	}
	if !strings.Contains(got, "    let = 4\n        ^\n") {
		t.Errorf("caret misplaced in %q", got)
	}
}

func TestFailNowUsesExitFunc(t *testing.T) {
	var out bytes.Buffer
	code := -1
	eh := NewErrorHandlerWithExit(&out, func(c int) { code = c })
	eh.AddError(&plainError{"boom"})
	eh.FailNow()

	if code != 1 {
		t.Errorf("exit code: got %d, want 1", code)
	}
	if !strings.HasPrefix(out.String(), "Build failed with errors:") {
		t.Errorf("report not written before exit: %q", out.String())
	}
}

func TestFormatCaretKeepsTabs(t *testing.T) {
	got := FormatCaret("\tx = 1", 2)
	want := "    \tx = 1\n    \t^\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatSingleError(t *testing.T) {
	tests := []struct {
		err  CompilerError
		want string
	}{
		{&plainError{"plain"}, "ERROR: plain\n"},
		{&locatedError{msg: "no line", source: "x"}, "ERROR: no line\n"},
		{&locatedError{msg: "no source", line: 2, column: 1}, "ERROR: 2:1: no source\n"},
		{&locatedError{msg: "bad", line: 1, column: 3, source: "a b"}, "ERROR: 1:3: bad\n    a b\n      ^\n"},
		{&locatedError{msg: "line only", line: 4}, "ERROR: line 4: line only\n"},
		{&locatedError{msg: "line only", line: 4, source: "let a = 1"}, "ERROR: line 4: line only\n    let a = 1\n"},
	}

	for _, tt := range tests {
		if got := Format(tt.err); got != tt.want {
			t.Errorf("Format(%q) = %q, want %q", tt.err.GetMessage(), got, tt.want)
		}
	}
}

type wrappedLocated struct{ *locatedError }

func (w wrappedLocated) Error() string { return w.msg }

func TestFromError(t *testing.T) {
	plain := FromError(errors.New("disk on fire"))
	if plain.GetMessage() != "disk on fire" {
		t.Errorf("got %q", plain.GetMessage())
	}
	if _, ok := plain.(LocatedError); ok {
		t.Errorf("plain errors should not carry a location")
	}

	located := FromError(fmt.Errorf("wrapped: %w", wrappedLocated{&locatedError{msg: "bad", line: 4, column: 2}}))
	if l, ok := located.(LocatedError); !ok || l.GetLine() != 4 {
		t.Errorf("expected the located error to survive wrapping, got %#v", located)
	}
}
