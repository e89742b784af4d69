package lexer

import (
	"strings"

	"lumina/internal/diag"
	"lumina/internal/token"
)

// scanString scans either a quoted string ("...", escapes \n \t \\ \")
// or a back-quoted raw string (`...`, no escape processing). Both emit the
// same String kind; for quoted strings Text carries the decoded value, for
// raw strings the verbatim content. Interpolation inside raw strings is a
// parser concern, not handled here.
func (lx *Lexer) scanString() token.Token {
	if lx.cursor.Peek() == '`' {
		return lx.scanRawString()
	}

	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start), Text: sb.String()}
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			switch esc := lx.cursor.Bump(); esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				// unknown escape passes through verbatim
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: sb.String()}
}

func (lx *Lexer) scanRawString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '`'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '`' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End-1])}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End])}
}
