package token

var keywords = map[string]Kind{
	"let":       KwLet,
	"var":       KwVar,
	"fn":        KwFn,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"for":       KwFor,
	"in":        KwIn,
	"component": KwComponent,
	"state":     KwState,
	"effect":    KwEffect,
	"style":     KwStyle,
	"import":    KwImport,
	"export":    KwExport,
	"from":      KwFrom,
	"null":      KwNull,
	"true":      Bool,
	"false":     Bool,
}

// LookupKeyword reclassifies an identifier to its keyword kind.
// Keywords are case-sensitive; only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
