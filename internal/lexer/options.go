package lexer

import (
	"lumina/internal/diag"
	"lumina/internal/source"
)

// Options configures a Lexer. The Reporter may be nil, in which case lex
// errors are dropped (scanning still continues).
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
