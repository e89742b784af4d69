package parser

import (
	"fmt"
	"strings"

	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/source"
	"lumina/internal/token"
)

// atUIStart reports whether the current token begins a UI element: a `<`
// immediately followed by an identifier starting with an ASCII letter.
func (p *Parser) atUIStart() bool {
	if !p.at(token.Lt) {
		return false
	}
	next := p.peekAt(1)
	if next.Kind != token.Ident || next.Text == "" {
		return false
	}
	c := next.Text[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// parseUINode parses one UI element or component instance. The tag's first
// character decides the variant: upper-case is a ComponentInstance. The
// decision is purely lexical and made exactly once, here; it is never
// revisited even if no component of that name exists.
func (p *Parser) parseUINode() ast.Node {
	start := p.expect(token.Lt, diag.SynExpectToken, "expected '<'").Span
	tag := p.expectIdent("tag name")

	attrs := p.parseUIAttributes()

	// <tag ... />
	if p.eat(token.Slash) {
		end := p.expect(token.Gt, diag.SynExpectToken, "expected '>' after '/'")
		return p.makeUINode(tag.Text, attrs, nil, true, start.Cover(end.Span))
	}

	p.expect(token.Gt, diag.SynExpectToken, "expected '>' to close opening tag")
	children := p.parseUIChildren()

	// </tag>
	p.expect(token.Lt, diag.SynExpectToken, "expected closing tag")
	p.expect(token.Slash, diag.SynExpectToken, "expected closing tag")
	closing := p.expectIdent("closing tag name")
	if closing.Text != tag.Text {
		p.failAt(diag.SynTagMismatch, closing.Span,
			fmt.Sprintf("mismatched closing tag: opened <%s> but found </%s>", tag.Text, closing.Text))
	}
	end := p.expect(token.Gt, diag.SynExpectToken, "expected '>' to close closing tag")

	return p.makeUINode(tag.Text, attrs, children, false, start.Cover(end.Span))
}

// makeUINode builds the element or component-instance variant. For component
// instances only attributes with an explicit value become props; bare
// attributes are silently dropped. Plain elements keep bare attributes as
// zero-value attributes.
func (p *Parser) makeUINode(tag string, attrs []ast.Attribute, children []ast.Node, selfClosing bool, sp source.Span) ast.Node {
	if tag[0] >= 'A' && tag[0] <= 'Z' {
		var props []ast.Prop
		for _, attr := range attrs {
			if attr.Value == nil {
				continue
			}
			props = append(props, ast.Prop{Name: attr.Name, Value: attr.Value, Event: attr.Event})
		}
		return ast.NewComponentInstance(tag, props, children, selfClosing, sp)
	}
	return ast.NewUIElement(tag, attrs, children, selfClosing, sp)
}

// parseUIAttributes parses the attribute list of an opening tag:
// name, name=value, @event=value. Values are literals or `{ expr }`.
func (p *Parser) parseUIAttributes() []ast.Attribute {
	var attrs []ast.Attribute
	for {
		p.skipNewlines()
		event := false
		var name string
		switch p.peek().Kind {
		case token.At:
			p.advance()
			event = true
			name = p.expectIdent("event name").Text
		case token.Ident:
			name = p.advance().Text
		default:
			return attrs
		}

		var value ast.Expr
		if p.eat(token.Assign) {
			value = p.parseUIAttrValue()
		}
		attrs = append(attrs, ast.Attribute{Name: name, Value: value, Event: event})
	}
}

func (p *Parser) parseUIAttrValue() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.String:
		p.advance()
		if p.isTemplateString(tok) {
			return p.parseTemplateLit(tok)
		}
		return ast.NewStringLit(tok.Text, tok.Span)
	case token.Number:
		p.advance()
		return ast.NewNumberLit(tok.Text, tok.Span)
	case token.Bool:
		p.advance()
		return ast.NewBoolLit(tok.Text == "true", tok.Span)
	case token.LBrace:
		p.advance()
		x := p.parseExpr()
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close attribute expression")
		return x
	}
	p.fail(diag.SynUnexpectedToken, fmt.Sprintf("unexpected attribute value %q", tok.Text))
	return nil
}

// parseUIChildren parses element children up to the closing tag. `{ }`
// dispatches to an if block, a for block, or an embedded expression; bare
// word-like tokens form a text run.
func (p *Parser) parseUIChildren() []ast.Node {
	var children []ast.Node
	for {
		p.skipNewlines()
		switch {
		case p.at(token.EOF):
			p.fail(diag.SynUnclosedDelimiter, "unexpected end of input inside element")
		case p.at(token.Lt) && p.peekAt(1).Kind == token.Slash:
			return children
		case p.atUIStart():
			children = append(children, p.parseUINode())
		case p.at(token.LBrace):
			children = append(children, p.parseUIBrace())
		default:
			text, sp, ok := p.parseUIText()
			if !ok {
				p.fail(diag.SynUnexpectedToken, fmt.Sprintf("unexpected token %q in element content", p.peek().Text))
			}
			children = append(children, ast.NewUIText(text, sp))
		}
	}
}

// parseUIBrace parses one `{ ... }` child: an if block, a for block, or a
// generic embedded expression.
func (p *Parser) parseUIBrace() ast.Node {
	start := p.expect(token.LBrace, diag.SynExpectToken, "expected '{'").Span
	p.skipNewlines()

	switch p.peek().Kind {
	case token.KwIf:
		stmt := p.parseIfStmt()
		p.skipNewlines()
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after if block")
		return stmt
	case token.KwFor:
		stmt := p.parseForStmt()
		p.skipNewlines()
		p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after for block")
		return stmt
	default:
		x := p.parseExpr()
		p.skipNewlines()
		end := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after embedded expression")
		return ast.NewUIExpr(x, start.Cover(end.Span))
	}
}

// parseUIText reconstructs a text run by joining consecutive word-like
// tokens (identifiers, keywords, numbers, dot, comma, colon, !) with single
// spaces. This is a deliberately permissive, whitespace-insensitive scan,
// not a faithful re-lex of the original text.
func (p *Parser) parseUIText() (string, source.Span, bool) {
	var parts []string
	var sp source.Span
	for {
		tok := p.peek()
		if !isUITextToken(tok) {
			break
		}
		p.advance()
		if len(parts) == 0 {
			sp = tok.Span
		} else {
			sp = sp.Cover(tok.Span)
		}
		parts = append(parts, tok.Text)
	}
	if len(parts) == 0 {
		return "", sp, false
	}
	return strings.Join(parts, " "), sp, true
}

func isUITextToken(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Number, token.Dot, token.Comma, token.Colon, token.Bang, token.Bool:
		return true
	default:
		return tok.IsKeyword()
	}
}
