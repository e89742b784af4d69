package lexer

import (
	"lumina/internal/token"
)

// scanNumber scans decimal digits with an optional single fractional part:
// digits(.digits)?. No exponents, hex, or underscore separators.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// fractional part only when a digit follows the dot, so that member
	// access on a number-valued expression is not consumed here
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		lx.cursor.Bump() // '.'
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
