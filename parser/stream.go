package parser

import (
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/types"
)

// stream is a cursor over a lexed token sequence. It never moves past the
// trailing EOF token.
type stream struct {
	tokens []types.Token
	i      int
}

func (s *stream) Peek() types.Token {
	if s.i < len(s.tokens) {
		return s.tokens[s.i]
	}

	eof := types.Token{Kind: types.EOF, Pos: types.Position{Line: 1, Column: 1}}
	if len(s.tokens) > 0 {
		eof.Pos = s.tokens[len(s.tokens)-1].Pos
	}
	return eof
}

func (s *stream) PeekIs(k ...types.TokenKind) bool {
	token := s.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (s *stream) Lex() types.Token {
	token := s.Peek()
	if token.Kind != types.EOF {
		s.i++
	}
	return token
}

// Match consumes the next token if it is one of k.
func (s *stream) Match(k ...types.TokenKind) (types.Token, bool) {
	if s.PeekIs(k...) {
		return s.Lex(), true
	}
	return types.Token{}, false
}

func (s *stream) LexExpecting(k ...types.TokenKind) types.Token {
	if token, ok := s.Match(k...); ok {
		return token
	}

	panic(errors.ExpectedOneOfKindGotKind(k, s.Peek()))
}
