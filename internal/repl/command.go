package repl

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle/v2"
)

// commandSyntax is a `:name arg...` line. Arguments are identifiers, quoted
// strings or numbers.
type commandSyntax struct {
	Name string   `parser:"\":\" @Ident"`
	Args []string `parser:"@(Ident | String | Float | Int)*"`
}

var commandParser = participle.MustBuild[commandSyntax](
	participle.Unquote("String"),
)

// rawCommands take the rest of the line verbatim instead of parsed args.
var rawCommands = map[string]bool{
	"ast": true,
}

type Command struct {
	Name string
	Args []string

	// Raw is the text after the command name, trimmed.
	Raw string
}

func ParseCommand(line string) (*Command, error) {
	line = strings.TrimSpace(line)

	head, rest := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		head, rest = line[:i], strings.TrimSpace(line[i:])
	}

	input := line
	if rawCommands[strings.TrimPrefix(head, ":")] {
		input = head
	}

	syntax, err := commandParser.ParseString("", input)
	if err != nil {
		return nil, err
	}

	return &Command{
		Name: syntax.Name,
		Args: syntax.Args,
		Raw:  rest,
	}, nil
}
