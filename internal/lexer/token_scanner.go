package lexer

type TokenScanner interface {
	Read() *Token
	Peek(offset int) *Token
	HasTokens() bool
	Last() *Token
}

// SimpleTokenScanner walks a pre-lexed token vector. Peek returns nil past
// the end, so callers get unbounded lookahead without bounds checks.
type SimpleTokenScanner struct {
	tokens []Token

	pos int
}

func NewTokenScanner(tokens []Token) TokenScanner {
	return &SimpleTokenScanner{
		tokens: tokens,
	}
}

func (s *SimpleTokenScanner) Read() *Token {
	if !s.HasTokens() {
		return nil
	}

	token := &s.tokens[s.pos]
	s.pos++

	return token
}

func (s *SimpleTokenScanner) Peek(offset int) *Token {
	i := s.pos + offset
	if i < 0 || i >= len(s.tokens) {
		return nil
	}

	return &s.tokens[i]
}

func (s *SimpleTokenScanner) HasTokens() bool {
	return s.pos < len(s.tokens)
}

func (s *SimpleTokenScanner) Last() *Token {
	if len(s.tokens) == 0 {
		return nil
	}

	return &s.tokens[len(s.tokens)-1]
}
