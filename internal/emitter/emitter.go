package emitter

import (
	"errors"
	"fmt"

	"github.com/kievzenit/strata/internal/ast"
	"github.com/kievzenit/strata/internal/lexer"
)

// ErrLLVMUnavailable is returned by EmitLLVM in builds without the llvm tag.
var ErrLLVMUnavailable = errors.New("LLVM backend not available: rebuild with -tags llvm")

// EmitError reports a construct the LLVM backend cannot lower. The C backend
// never fails.
type EmitError struct {
	Message  string
	Location lexer.Location
}

func (e *EmitError) Error() string      { return e.Message }
func (e *EmitError) GetMessage() string { return e.Message }
func (e *EmitError) GetLine() int       { return e.Location.Line }
func (e *EmitError) GetColumn() int     { return e.Location.Column }
func (e *EmitError) GetSource() string  { return e.Location.Source }

func newEmitError(node ast.AstNode, format string, args ...any) *EmitError {
	return &EmitError{
		Message:  fmt.Sprintf(format, args...),
		Location: ast.LocationOf(node),
	}
}
