package semantic_analyzer

import "github.com/kievzenit/strata/internal/types"

type scope struct {
	parent    *scope
	variables map[string]types.TypeDef
}

func newScope(parent *scope) *scope {
	return &scope{
		parent:    parent,
		variables: make(map[string]types.TypeDef),
	}
}

func (s *scope) lookupVar(name string) (types.TypeDef, bool) {
	t, ok := s.variables[name]
	if ok {
		return t, true
	}

	if s.parent != nil {
		return s.parent.lookupVar(name)
	}

	return types.TypeDef{}, false
}

// defineVar overwrites an existing binding in the same frame.
func (s *scope) defineVar(name string, t types.TypeDef) {
	s.variables[name] = t
}

func (s *scope) depth() int {
	depth := 0
	for curr := s.parent; curr != nil; curr = curr.parent {
		depth++
	}
	return depth
}
