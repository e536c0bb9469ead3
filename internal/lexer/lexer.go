package lexer

import (
	"strings"
	"unicode/utf8"
)

type Lexer struct {
	buf []byte
	pos int

	line, col int
	lineStart int
}

func NewLexer(buf []byte) *Lexer {
	return &Lexer{
		buf: buf,
		pos: 0,

		line:      1,
		col:       1,
		lineStart: 0,
	}
}

func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0)

	for {
		token := l.NextToken()
		if token == nil {
			break
		}

		tokens = append(tokens, *token)
	}

	return tokens
}

// NextToken returns the next token or nil once the input is exhausted.
// It never fails: malformed literals degrade instead of erroring.
func (l *Lexer) NextToken() *Token {
	for {
		l.skipWhitespace()

		if l.hasNext() && l.read() == '/' && l.next() == '/' {
			l.skipLineComment()
			continue
		}

		break
	}

	if !l.hasChars() {
		return nil
	}

	location := l.location()

	if l.hasNext() {
		twoChars := string(l.buf[l.pos : l.pos+2])
		if IsTwoCharOperator(twoChars) {
			l.advance()
			l.advance()
			return &Token{Text: twoChars, Location: location}
		}
	}

	switch {
	case isIdentifierStart(l.read()):
		return &Token{Text: l.processIdentifier(), Location: location}
	case l.read() == '"':
		return &Token{Text: l.processQuoted('"'), Location: location}
	case l.read() == '\'':
		return &Token{Text: l.processQuoted('\''), Location: location}
	case isDigit(l.read()):
		return &Token{Text: l.processNumber(), Location: location}
	}

	return &Token{Text: l.processSymbol(), Location: location}
}

func (l *Lexer) skipWhitespace() {
	for l.hasChars() {
		switch l.read() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	for l.hasChars() && l.read() != '\n' {
		l.advance()
	}
}

func (l *Lexer) processIdentifier() string {
	start := l.pos
	for l.hasChars() && (isIdentifierStart(l.read()) || isDigit(l.read())) {
		l.advance()
	}

	return string(l.buf[start:l.pos])
}

// processQuoted decodes a string or character literal and re-wraps the
// decoded value in the original quote. An unterminated literal runs to EOF
// and is returned as if it had been closed there.
func (l *Lexer) processQuoted(quote byte) string {
	l.advance()

	var decoded strings.Builder
	for l.hasChars() && l.read() != quote {
		if l.read() != '\\' {
			decoded.WriteByte(l.read())
			l.advance()
			continue
		}

		l.advance()
		if !l.hasChars() {
			break
		}

		switch l.read() {
		case 'n':
			decoded.WriteByte('\n')
		case 't':
			decoded.WriteByte('\t')
		default:
			decoded.WriteByte(l.read())
		}
		l.advance()
	}

	if l.hasChars() {
		l.advance()
	}

	return string(quote) + decoded.String() + string(quote)
}

// processNumber reads a digit run with an optional fraction. The dot is only
// taken when a digit follows it, so "3." lexes as "3" and ".".
func (l *Lexer) processNumber() string {
	start := l.pos
	for l.hasChars() && isDigit(l.read()) {
		l.advance()
	}

	if l.hasNext() && l.read() == '.' && isDigit(l.next()) {
		l.advance()
		for l.hasChars() && isDigit(l.read()) {
			l.advance()
		}
	}

	return string(l.buf[start:l.pos])
}

func (l *Lexer) processSymbol() string {
	_, size := utf8.DecodeRune(l.buf[l.pos:])
	start := l.pos
	for i := 0; i < size; i++ {
		l.advance()
	}

	return string(l.buf[start:l.pos])
}

func (l *Lexer) location() Location {
	end := l.lineStart
	for end < len(l.buf) && l.buf[end] != '\n' {
		end++
	}

	return Location{
		Line:   l.line,
		Column: l.col,
		Source: strings.TrimRight(string(l.buf[l.lineStart:end]), "\r"),
	}
}

func (l *Lexer) advance() {
	if l.buf[l.pos] == '\n' {
		l.line++
		l.col = 1
		l.lineStart = l.pos + 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) hasChars() bool { return l.pos < len(l.buf) }
func (l *Lexer) hasNext() bool  { return l.pos+1 < len(l.buf) }
func (l *Lexer) next() byte     { return l.buf[l.pos+1] }
func (l *Lexer) read() byte     { return l.buf[l.pos] }

func isIdentifierStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
