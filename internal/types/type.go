package types

import "strings"

type Kind int

const (
	PrimitiveKind Kind = iota
	OptionalKind
	UnionKind
)

const (
	Int    = "int"
	Float  = "float"
	Bool   = "bool"
	Char   = "char"
	String = "string"
	Any    = "any"
)

// TypeDef is a closed type term. Two TypeDefs are the same type when they
// are structurally equal; there is no nominal identity.
type TypeDef struct {
	Kind    Kind
	Name    string
	Inner   *TypeDef
	Members []TypeDef
}

func Primitive(name string) TypeDef {
	return TypeDef{Kind: PrimitiveKind, Name: name}
}

func Optional(inner TypeDef) TypeDef {
	return TypeDef{Kind: OptionalKind, Inner: &inner}
}

func Union(members ...TypeDef) TypeDef {
	return TypeDef{Kind: UnionKind, Members: members}
}

func (t TypeDef) IsPrimitive(name string) bool {
	return t.Kind == PrimitiveKind && t.Name == name
}

func (t TypeDef) IsAny() bool {
	return t.IsPrimitive(Any)
}

func (t TypeDef) Equal(other TypeDef) bool {
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case PrimitiveKind:
		return t.Name == other.Name
	case OptionalKind:
		return t.Inner.Equal(*other.Inner)
	case UnionKind:
		if len(t.Members) != len(other.Members) {
			return false
		}
		for i := range t.Members {
			if !t.Members[i].Equal(other.Members[i]) {
				return false
			}
		}
		return true
	}

	return false
}

func (t TypeDef) String() string {
	switch t.Kind {
	case OptionalKind:
		if t.Inner.Kind == UnionKind {
			return "(" + t.Inner.String() + ")?"
		}
		return t.Inner.String() + "?"
	case UnionKind:
		members := make([]string, len(t.Members))
		for i, member := range t.Members {
			members[i] = member.String()
		}
		return strings.Join(members, "|")
	}

	return t.Name
}
