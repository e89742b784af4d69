package parser

import (
	"fmt"
	"strings"

	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/lexer"
	"lumina/internal/source"
	"lumina/internal/token"
)

// isTemplateString reports whether a String token came from a back-quoted
// literal containing `{expr}` interpolation. The lexer emits one String kind
// for both forms; the opening byte in the source distinguishes them.
func (p *Parser) isTemplateString(tok token.Token) bool {
	file := p.fs.Get(tok.Span.File)
	if tok.Span.Start >= uint32(len(file.Content)) || file.Content[tok.Span.Start] != '`' {
		return false
	}
	return strings.Contains(tok.Text, "{")
}

// parseTemplateLit splits the raw text of a back-quoted string into an
// ordered interleaving of literal fragments and embedded expressions. Each
// embedded fragment is parsed as an expression in its own right.
func (p *Parser) parseTemplateLit(tok token.Token) ast.Expr {
	var parts []ast.TemplatePart
	text := tok.Text

	var literal strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '{' {
			literal.WriteByte(c)
			i++
			continue
		}

		// embedded expression: scan to the matching close brace
		depth := 1
		j := i + 1
		for j < len(text) && depth > 0 {
			switch text[j] {
			case '{':
				depth++
			case '}':
				depth--
			}
			j++
		}
		if depth != 0 {
			p.failAt(diag.SynBadTemplate, tok.Span, "unclosed '{' in template string")
		}

		if literal.Len() > 0 {
			parts = append(parts, ast.TemplatePart{Text: literal.String()})
			literal.Reset()
		}
		fragment := text[i+1 : j-1]
		parts = append(parts, ast.TemplatePart{X: p.parseTemplateExpr(fragment, tok.Span)})
		i = j
	}
	if literal.Len() > 0 {
		parts = append(parts, ast.TemplatePart{Text: literal.String()})
	}

	return ast.NewTemplateLit(parts, tok.Span)
}

// parseTemplateExpr parses one interpolation fragment via a virtual file
// added to the same FileSet, so fragment spans stay resolvable.
func (p *Parser) parseTemplateExpr(fragment string, at source.Span) ast.Expr {
	fileID := p.fs.AddVirtual("template", []byte(fragment))

	tracker := &failureTracker{}
	tokens := lexer.Tokenize(p.fs.Get(fileID), lexer.Options{Reporter: tracker})
	if tracker.failed {
		p.failAt(diag.SynBadTemplate, at, fmt.Sprintf("invalid template expression %q", fragment))
	}

	sub := &Parser{fs: p.fs, fileID: fileID, tokens: tokens, opts: Options{}}
	x, ok := sub.parseExprChecked()
	if !ok || !sub.at(token.EOF) {
		p.failAt(diag.SynBadTemplate, at, fmt.Sprintf("invalid template expression %q", fragment))
	}
	return x
}

// parseExprChecked parses one expression, converting a bailout into a flag
// instead of unwinding the caller.
func (p *Parser) parseExprChecked() (x ast.Expr, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bailout); !isBail {
				panic(r)
			}
			x, ok = nil, false
		}
	}()
	return p.parseExpr(), true
}
