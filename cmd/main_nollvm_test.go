//go:build !llvm

package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestEmitLLVMWithoutBackend(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.ll")
	code, stdout, stderr := runCLI(t, "-emit", "llvm", "-o", out, "testdata/hello.str")

	if code != 1 {
		t.Errorf("exit code %d, want 1", code)
	}
	if stdout != "" {
		t.Errorf("unexpected stdout %q", stdout)
	}
	if !strings.Contains(stderr, "LLVM backend not available") {
		t.Errorf("got %q", stderr)
	}
}
