package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline is the statement-terminator sentinel produced for '\n'.
	Newline

	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal token.
	Number
	// String represents a string literal token (quoted or back-quoted).
	String
	// Bool represents the 'true' / 'false' literal token.
	Bool

	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwComponent represents the 'component' keyword.
	KwComponent // component
	// KwState represents the 'state' keyword.
	KwState // state
	// KwEffect represents the 'effect' keyword.
	KwEffect // effect
	// KwStyle represents the 'style' keyword.
	KwStyle // style
	// KwImport represents the 'import' keyword.
	KwImport // import
	// KwExport represents the 'export' keyword.
	KwExport // export
	// KwFrom represents the 'from' keyword.
	KwFrom // from
	// KwNull represents the 'null' keyword.
	KwNull // null

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the logical-not operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// AndAnd represents the logical-and operator token.
	AndAnd // &&
	// OrOr represents the logical-or operator token.
	OrOr // ||
	// FatArrow represents the arrow-function operator token.
	FatArrow // =>
	// PipeGt represents the pipe operator token.
	PipeGt // |>
	// Question represents the ternary question operator token.
	Question // ?
	// Colon represents the colon operator token.
	Colon // :
	// Semicolon represents the semicolon operator token.
	Semicolon // ;
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// At represents the event-attribute sigil token.
	At // @
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Newline:     "Newline",
	Ident:       "Ident",
	Number:      "Number",
	String:      "String",
	Bool:        "Bool",
	KwLet:       "let",
	KwVar:       "var",
	KwFn:        "fn",
	KwReturn:    "return",
	KwIf:        "if",
	KwElse:      "else",
	KwFor:       "for",
	KwIn:        "in",
	KwComponent: "component",
	KwState:     "state",
	KwEffect:    "effect",
	KwStyle:     "style",
	KwImport:    "import",
	KwExport:    "export",
	KwFrom:      "from",
	KwNull:      "null",
	Plus:        "+",
	Minus:       "-",
	Star:        "*",
	Slash:       "/",
	Percent:     "%",
	Assign:      "=",
	EqEq:        "==",
	Bang:        "!",
	BangEq:      "!=",
	Lt:          "<",
	LtEq:        "<=",
	Gt:          ">",
	GtEq:        ">=",
	AndAnd:      "&&",
	OrOr:        "||",
	FatArrow:    "=>",
	PipeGt:      "|>",
	Question:    "?",
	Colon:       ":",
	Semicolon:   ";",
	Comma:       ",",
	Dot:         ".",
	At:          "@",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
