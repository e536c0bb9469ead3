package lexer

import "fmt"

type Location struct {
	Line   int
	Column int
	Source string
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Token is a raw lexeme. The lexer does not classify tokens; the parser
// re-derives keyword, operator and literal meaning from Text.
type Token struct {
	Text     string
	Location Location
}

func (t *Token) String() string {
	return fmt.Sprintf("%q@%s", t.Text, t.Location)
}

func (t *Token) IsString() bool {
	return len(t.Text) > 0 && (t.Text[0] == '"' || t.Text[0] == '\'')
}

func (t *Token) IsNumber() bool {
	return len(t.Text) > 0 && isDigit(t.Text[0])
}

func (t *Token) IsIdentifier() bool {
	return len(t.Text) > 0 && isIdentifierStart(t.Text[0])
}

var twoCharOperators = []string{"==", "!=", "<=", ">=", "=>", "||", "&&", "++", "--"}

var keywords = map[string]struct{}{
	"import":   {},
	"from":     {},
	"func":     {},
	"let":      {},
	"const":    {},
	"var":      {},
	"if":       {},
	"else":     {},
	"while":    {},
	"for":      {},
	"break":    {},
	"continue": {},
	"return":   {},
	"true":     {},
	"false":    {},
}

func IsKeyword(text string) bool {
	_, ok := keywords[text]
	return ok
}

func IsTwoCharOperator(text string) bool {
	for _, op := range twoCharOperators {
		if op == text {
			return true
		}
	}
	return false
}
