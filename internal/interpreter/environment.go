package interpreter

import (
	"errors"

	"github.com/kievzenit/strata/internal/types"
)

var (
	errUndefinedVariable = errors.New("undefined variable")
	errImmutableVariable = errors.New("cannot reassign immutable variable")
)

type binding struct {
	value    Value
	declared *types.TypeDef
	mutable  bool
}

// Environment is one scope. Children hold a reference to their parent and
// lookups walk outward until a binding is found.
type Environment struct {
	parent *Environment

	names    []string
	bindings map[string]*binding
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		parent:   parent,
		names:    make([]string, 0),
		bindings: make(map[string]*binding),
	}
}

// Define binds name in this scope, replacing a binding of the same name.
func (e *Environment) Define(name string, value Value, declared *types.TypeDef, mutable bool) {
	if _, ok := e.bindings[name]; !ok {
		e.names = append(e.names, name)
	}

	e.bindings[name] = &binding{
		value:    value,
		declared: declared,
		mutable:  mutable,
	}
}

func (e *Environment) lookup(name string) (*binding, bool) {
	for curr := e; curr != nil; curr = curr.parent {
		if b, ok := curr.bindings[name]; ok {
			return b, true
		}
	}

	return nil, false
}

func (e *Environment) Get(name string) (Value, error) {
	b, ok := e.lookup(name)
	if !ok {
		return Value{}, errUndefinedVariable
	}

	return b.value, nil
}

func (e *Environment) Assign(name string, value Value) error {
	b, ok := e.lookup(name)
	if !ok {
		return errUndefinedVariable
	}
	if !b.mutable {
		return errImmutableVariable
	}

	b.value = value
	return nil
}

type Binding struct {
	Name    string
	Value   Value
	Type    *types.TypeDef
	Mutable bool
}

// Bindings lists this scope's own bindings in declaration order.
func (e *Environment) Bindings() []Binding {
	out := make([]Binding, 0, len(e.names))
	for _, name := range e.names {
		b := e.bindings[name]
		out = append(out, Binding{
			Name:    name,
			Value:   b.value,
			Type:    b.declared,
			Mutable: b.mutable,
		})
	}

	return out
}
