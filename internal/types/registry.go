package types

var registry = map[string]TypeDef{
	Int:    Primitive(Int),
	Float:  Primitive(Float),
	Bool:   Primitive(Bool),
	Char:   Primitive(Char),
	String: Primitive(String),
	Any:    Primitive(Any),
}

// Lookup resolves a primitive type name. Unknown names resolve to any
// instead of failing: annotations like "void" or "list" stay accepted and
// simply opt out of checking.
func Lookup(name string) TypeDef {
	if t, ok := registry[name]; ok {
		return t
	}

	return Primitive(Any)
}
