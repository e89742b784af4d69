package parser

import (
	"fmt"

	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/token"
)

// parseImportDecl parses `import a, b from "path"` with optional braces
// around the specifier list. The source path is recorded, never resolved.
func (p *Parser) parseImportDecl() *ast.ImportDecl {
	start := p.expect(token.KwImport, diag.SynExpectToken, "expected 'import'").Span

	var specifiers []string
	braced := p.eat(token.LBrace)
	for {
		specifiers = append(specifiers, p.expectIdent("import specifier").Text)
		if !p.eat(token.Comma) {
			break
		}
	}
	if braced {
		p.expect(token.RBrace, diag.SynExpectToken, "expected '}' after import specifiers")
	}

	p.expect(token.KwFrom, diag.SynExpectToken, "expected 'from' in import")
	src := p.expect(token.String, diag.SynExpectToken, "expected import source string")

	return ast.NewImportDecl(specifiers, src.Text, start.Cover(src.Span))
}

// parseExportDecl parses `export { a, b }` or the wrapped-declaration dialect
// `export fn f() { ... }` / `export component C() { ... }`.
func (p *Parser) parseExportDecl() *ast.ExportDecl {
	start := p.expect(token.KwExport, diag.SynExpectToken, "expected 'export'").Span

	if p.eat(token.LBrace) {
		var specifiers []string
		for {
			specifiers = append(specifiers, p.expectIdent("export specifier").Text)
			if !p.eat(token.Comma) {
				break
			}
		}
		end := p.expect(token.RBrace, diag.SynExpectToken, "expected '}' after export specifiers")
		return ast.NewExportDecl(specifiers, nil, start.Cover(end.Span))
	}

	var decl ast.Decl
	switch p.peek().Kind {
	case token.KwComponent:
		decl = p.parseComponentDecl()
	case token.KwFn:
		decl = p.parseFunctionDecl()
	case token.KwLet, token.KwVar:
		decl = p.parseVariableDecl()
	default:
		p.fail(diag.SynUnexpectedToken, fmt.Sprintf("cannot export %q", p.peek().Text))
	}
	return ast.NewExportDecl(nil, decl, start.Cover(decl.Span()))
}

// parseComponentDecl parses `component Name(params) { members }`.
func (p *Parser) parseComponentDecl() *ast.ComponentDecl {
	start := p.expect(token.KwComponent, diag.SynExpectToken, "expected 'component'").Span
	name := p.expectIdent("component name")
	var params []ast.Param
	if p.at(token.LParen) {
		params = p.parseParamList()
	}

	p.expect(token.LBrace, diag.SynExpectToken, "expected '{' to open component body")
	var body []ast.Node
	p.skipTerminators()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		body = append(body, p.parseComponentMember())
		p.skipTerminators()
	}
	end := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close component body")

	return ast.NewComponentDecl(name.Text, params, body, start.Cover(end.Span))
}

// parseComponentMember parses one member of a component body: a state,
// effect, style, function, or variable declaration, a UI element, or a
// plain statement.
func (p *Parser) parseComponentMember() ast.Node {
	switch p.peek().Kind {
	case token.KwState:
		return p.parseStateDecl()
	case token.KwEffect:
		return p.parseEffectDecl()
	case token.KwStyle:
		return p.parseStyleDecl()
	case token.KwFn:
		return p.parseFunctionDecl()
	case token.KwLet, token.KwVar:
		return p.parseVariableDecl()
	case token.Lt:
		if p.atUIStart() {
			return p.parseUINode()
		}
		return p.parseStatement()
	default:
		return p.parseStatement()
	}
}

// parseFunctionDecl parses `fn name(params) (: ReturnType)? { body }`.
func (p *Parser) parseFunctionDecl() *ast.FunctionDecl {
	start := p.expect(token.KwFn, diag.SynExpectToken, "expected 'fn'").Span
	name := p.expectIdent("function name")
	params := p.parseParamList()

	returnType := ""
	if p.eat(token.Colon) {
		returnType = p.parseTypeAnnotation()
	}

	body := p.parseBlock()
	return ast.NewFunctionDecl(name.Text, params, returnType, body, start.Cover(body.Span()))
}

// parseVariableDecl parses `let|var name (: Type)? = init`.
func (p *Parser) parseVariableDecl() *ast.VariableDecl {
	kw := p.advance() // let | var
	mutable := kw.Kind == token.KwVar
	name := p.expectIdent("variable name")

	typ := ""
	if p.eat(token.Colon) {
		typ = p.parseTypeAnnotation()
	}

	p.expect(token.Assign, diag.SynExpectToken, "expected '=' in variable declaration")
	init := p.parseExpr()
	p.endOfStatement()

	return ast.NewVariableDecl(name.Text, mutable, typ, init, kw.Span.Cover(init.Span()))
}

// parseStateDecl parses `state name (: Type)? = init`.
func (p *Parser) parseStateDecl() *ast.StateDecl {
	start := p.expect(token.KwState, diag.SynExpectToken, "expected 'state'").Span
	name := p.expectIdent("state name")

	typ := ""
	if p.eat(token.Colon) {
		typ = p.parseTypeAnnotation()
	}

	p.expect(token.Assign, diag.SynExpectToken, "expected '=' in state declaration")
	init := p.parseExpr()
	p.endOfStatement()

	return ast.NewStateDecl(name.Text, typ, init, start.Cover(init.Span()))
}

// parseEffectDecl parses `effect { body }` or `effect(dep, ...) { body }`.
// An empty dependency list means "run once".
func (p *Parser) parseEffectDecl() *ast.EffectDecl {
	start := p.expect(token.KwEffect, diag.SynExpectToken, "expected 'effect'").Span

	var deps []string
	if p.eat(token.LParen) {
		if !p.at(token.RParen) {
			for {
				deps = append(deps, p.expectIdent("effect dependency").Text)
				if !p.eat(token.Comma) {
					break
				}
			}
		}
		p.expect(token.RParen, diag.SynExpectToken, "expected ')' after effect dependencies")
	}

	body := p.parseBlock()
	return ast.NewEffectDecl(deps, body, start.Cover(body.Span()))
}

// parseStyleDecl parses `style name? { key: value ... }`.
func (p *Parser) parseStyleDecl() *ast.StyleDecl {
	start := p.expect(token.KwStyle, diag.SynExpectToken, "expected 'style'").Span

	name := ""
	if p.at(token.Ident) {
		name = p.advance().Text
	}

	p.expect(token.LBrace, diag.SynExpectToken, "expected '{' to open style block")
	var props []ast.StyleProp
	p.skipTerminators()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		key := p.expectIdent("style property name")
		p.expect(token.Colon, diag.SynExpectToken, "expected ':' after style property name")
		value := p.parseExpr()
		props = append(props, ast.StyleProp{Key: key.Text, Value: value})
		if !p.eat(token.Comma) && !p.at(token.RBrace) {
			p.endOfStatement()
		}
		p.skipTerminators()
	}
	end := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close style block")

	return ast.NewStyleDecl(name, props, start.Cover(end.Span))
}

// parseParamList parses `(name (: Type)? (= default)?, ...)`.
func (p *Parser) parseParamList() []ast.Param {
	p.expect(token.LParen, diag.SynExpectToken, "expected '('")
	var params []ast.Param
	if !p.at(token.RParen) {
		for {
			param := ast.Param{Name: p.expectIdent("parameter name").Text}
			if p.eat(token.Colon) {
				param.Type = p.parseTypeAnnotation()
			}
			if p.eat(token.Assign) {
				param.Default = p.parseExpr()
			}
			params = append(params, param)
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen, diag.SynExpectToken, "expected ')' after parameters")
	return params
}

// parseTypeAnnotation parses a type annotation and returns its text, e.g.
// Int, String, Array<Int>.
func (p *Parser) parseTypeAnnotation() string {
	name := p.expectIdent("type name").Text
	if p.eat(token.Lt) {
		inner := p.parseTypeAnnotation()
		p.expect(token.Gt, diag.SynExpectToken, "expected '>' to close type argument")
		return name + "<" + inner + ">"
	}
	return name
}
