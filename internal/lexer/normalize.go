package lexer

import (
	"lumina/internal/token"
)

// Normalize prunes Newline tokens the parser never wants to see: one that
// immediately follows an opening delimiter ({, (, [), a comma, or a
// semicolon, and any Newline following another Newline (run collapsing).
// This lets the parser treat Newline as an optional statement terminator
// without special-casing line continuations after every opening bracket.
func Normalize(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == token.Newline && len(out) > 0 {
			switch out[len(out)-1].Kind {
			case token.LBrace, token.LParen, token.LBracket,
				token.Comma, token.Semicolon, token.Newline:
				continue
			}
		}
		if tok.Kind == token.Newline && len(out) == 0 {
			// leading blank lines carry no statement boundary
			continue
		}
		out = append(out, tok)
	}
	return out
}
