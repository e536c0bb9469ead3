package interpreter

import (
	"math"
	"strconv"
)

type ValueMode int

const (
	// NumericMode encodes every value as a float64: strings are NaN,
	// booleans are 1 or 0 and absent values are NaN.
	NumericMode ValueMode = iota
	// TaggedMode keeps text, booleans and absence as their own kinds.
	TaggedMode
)

func (m ValueMode) String() string {
	if m == TaggedMode {
		return "tagged"
	}
	return "numeric"
}

type Kind int

const (
	NumberKind Kind = iota
	TextKind
	BooleanKind
	AbsentKind
)

type Value struct {
	Kind    Kind
	Number  float64
	Text    string
	Boolean bool
}

func Number(n float64) Value {
	return Value{Kind: NumberKind, Number: n}
}

func Text(s string) Value {
	return Value{Kind: TextKind, Text: s}
}

func Boolean(b bool) Value {
	return Value{Kind: BooleanKind, Boolean: b}
}

func Absent() Value {
	return Value{Kind: AbsentKind}
}

// Float is the numeric encoding of v.
func (v Value) Float() float64 {
	switch v.Kind {
	case NumberKind:
		return v.Number
	case BooleanKind:
		if v.Boolean {
			return 1
		}
		return 0
	}

	return math.NaN()
}

func (v Value) Truthy() bool {
	switch v.Kind {
	case TextKind:
		return v.Text != ""
	case BooleanKind:
		return v.Boolean
	case AbsentKind:
		return false
	}

	return v.Number != 0 && !math.IsNaN(v.Number)
}

func (v Value) String() string {
	switch v.Kind {
	case TextKind:
		return v.Text
	case BooleanKind:
		return strconv.FormatBool(v.Boolean)
	case AbsentKind:
		return "null"
	}

	return formatNumber(v.Number)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

const epsilon = 1e-9

func numbersEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
