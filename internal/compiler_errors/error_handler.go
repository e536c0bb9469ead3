package compiler_errors

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type CompilerError interface {
	GetMessage() string
}

// LocatedError is a CompilerError that knows where in the source it happened.
// GetSource returns the full text of the offending line, or "" if unknown.
type LocatedError interface {
	CompilerError
	GetLine() int
	GetColumn() int
	GetSource() string
}

type messageError struct {
	message string
}

func (e *messageError) GetMessage() string { return e.message }

// FromError adapts err for reporting. Errors that already are CompilerErrors
// keep their location.
func FromError(err error) CompilerError {
	var compilerErr CompilerError
	if errors.As(err, &compilerErr) {
		return compilerErr
	}
	return &messageError{message: err.Error()}
}

type ErrorHandler interface {
	AddError(err CompilerError)
	HasErrors() bool
	Errors() []CompilerError
	Report()
	FailNow()
}

type CompilerErrorHandler struct {
	errors []CompilerError
	writer io.Writer

	exit func(code int)
}

func NewErrorHandler(outputWriter io.Writer) ErrorHandler {
	return NewErrorHandlerWithExit(outputWriter, os.Exit)
}

func NewErrorHandlerWithExit(outputWriter io.Writer, exit func(code int)) ErrorHandler {
	return &CompilerErrorHandler{
		errors: make([]CompilerError, 0),
		writer: outputWriter,
		exit:   exit,
	}
}

func (eh *CompilerErrorHandler) AddError(err CompilerError) {
	eh.errors = append(eh.errors, err)
}

func (eh *CompilerErrorHandler) HasErrors() bool {
	return len(eh.errors) > 0
}

func (eh *CompilerErrorHandler) Errors() []CompilerError {
	return eh.errors
}

func (eh *CompilerErrorHandler) Report() {
	fmt.Fprintln(eh.writer, "Build failed with errors:")

	for _, err := range eh.errors {
		fmt.Fprint(eh.writer, Format(err))
	}
}

func (eh *CompilerErrorHandler) FailNow() {
	eh.Report()
	eh.exit(1)
}

// Format renders one error as Report prints it: an ERROR line, then the
// source line and caret when the location is known. Errors located by line
// only get the source line without a caret.
func Format(err CompilerError) string {
	located, ok := err.(LocatedError)
	if !ok || located.GetLine() == 0 {
		return fmt.Sprintf("ERROR: %s\n", err.GetMessage())
	}

	if located.GetColumn() == 0 {
		out := fmt.Sprintf("ERROR: line %d: %s\n", located.GetLine(), err.GetMessage())
		if source := located.GetSource(); source != "" {
			out += fmt.Sprintf("    %s\n", source)
		}
		return out
	}

	out := fmt.Sprintf("ERROR: %d:%d: %s\n", located.GetLine(), located.GetColumn(), err.GetMessage())
	if source := located.GetSource(); source != "" {
		out += FormatCaret(source, located.GetColumn())
	}
	return out
}

// FormatCaret renders a source line followed by a caret under column (1-based).
// Tabs in the prefix are kept so the caret lines up in a terminal.
func FormatCaret(source string, column int) string {
	if column < 1 {
		column = 1
	}

	var pad strings.Builder
	for i := 0; i < column-1 && i < len(source); i++ {
		if source[i] == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteByte(' ')
	}

	return fmt.Sprintf("    %s\n    %s^\n", source, pad.String())
}
