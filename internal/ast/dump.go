package ast

import (
	"regexp"

	"github.com/sanity-io/litter"
)

var dumpOptions = litter.Options{
	StripPackageNames: true,
	HidePrivateFields: true,
	FieldExclusions:   regexp.MustCompile(`^StartToken$`),
	Separator:         " ",
}

// Dump renders a node or program as Go-like literal syntax without token
// positions. Used by -dump-ast, the REPL :ast command and test failures.
func Dump(node any) string {
	return dumpOptions.Sdump(node)
}
