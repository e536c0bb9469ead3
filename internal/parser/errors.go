package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/kievzenit/strata/internal/lexer"
)

// ParseError aborts parsing. AtEOF is set when the input ended before the
// construct was complete, which lets interactive callers ask for more lines.
type ParseError struct {
	Message string
	Line    int
	Column  int
	Source  string
	AtEOF   bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Message)
}

func (e *ParseError) GetMessage() string {
	return e.Message
}

func (e *ParseError) GetLine() int {
	return e.Line
}

func (e *ParseError) GetColumn() int {
	return e.Column
}

func (e *ParseError) GetSource() string {
	return e.Source
}

func newUnexpectedError(token *lexer.Token, expected string) *ParseError {
	message := fmt.Sprintf("unexpected token: '%s'", token.Text)
	if expected != "" {
		message = fmt.Sprintf("unexpected token: '%s', expected: %s", token.Text, expected)
	}

	return &ParseError{
		Message: message,
		Line:    token.Location.Line,
		Column:  token.Location.Column,
		Source:  token.Location.Source,
	}
}

// newEOFError points just past the last token of the input.
func newEOFError(last *lexer.Token, expected string) *ParseError {
	message := "unexpected end of input"
	if expected != "" {
		message = fmt.Sprintf("unexpected end of input, expected: %s", expected)
	}

	err := &ParseError{
		Message: message,
		AtEOF:   true,
	}
	if last != nil {
		err.Line = last.Location.Line
		err.Column = last.Location.Column + utf8.RuneCountInString(last.Text)
		err.Source = last.Location.Source
	}

	return err
}
