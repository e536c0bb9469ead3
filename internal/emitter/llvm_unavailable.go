//go:build !llvm

package emitter

import "github.com/kievzenit/strata/internal/ast"

func EmitLLVM(_ *ast.Program) (string, error) {
	return "", ErrLLVMUnavailable
}
