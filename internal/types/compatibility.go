package types

// Compatible reports whether a value of type actual may be used where
// expected is required.
//
// any is compatible with everything in both positions. The only widenings
// are int -> float and char -> string. A union is compatible with another
// union when every actual member fits some expected member. Anything else,
// including every case involving Optional and union/primitive pairs, is
// incompatible.
func Compatible(actual, expected TypeDef) bool {
	if actual.IsAny() || expected.IsAny() {
		return true
	}

	if actual.Kind == PrimitiveKind && expected.Kind == PrimitiveKind {
		return compatiblePrimitives(actual.Name, expected.Name)
	}

	if actual.Kind == UnionKind && expected.Kind == UnionKind {
		return compatibleUnions(actual, expected)
	}

	// Optional is not handled: Optional(T) vs T, T vs Optional(T) and
	// Optional vs Optional all fall through here.
	return false
}

func compatiblePrimitives(actual, expected string) bool {
	if actual == expected {
		return true
	}

	switch {
	case actual == Int && expected == Float:
		return true
	case actual == Char && expected == String:
		return true
	}

	return false
}

func compatibleUnions(actual, expected TypeDef) bool {
	for _, actualMember := range actual.Members {
		found := false
		for _, expectedMember := range expected.Members {
			if Compatible(actualMember, expectedMember) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
