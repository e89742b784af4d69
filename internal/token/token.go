package token

import (
	"lumina/internal/source"
)

// Token represents a single source token with its location.
// Text carries the exact matched text; for quoted strings it is the decoded
// value with escapes applied.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, string, or null
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case Number, String, Bool, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwLet, KwVar, KwFn, KwReturn, KwIf, KwElse, KwFor, KwIn,
		KwComponent, KwState, KwEffect, KwStyle, KwImport, KwExport, KwFrom, KwNull:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Percent, Assign, EqEq, Bang, BangEq,
		Lt, LtEq, Gt, GtEq, AndAnd, OrOr, FatArrow, PipeGt, Question,
		Colon, Semicolon, Comma, Dot, At, LParen, RParen, LBrace, RBrace,
		LBracket, RBracket:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
