package parser

import (
	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/token"
)

// parseStatement parses one statement. A leading left brace is a block
// statement unless the isObjectLiteral lookahead sees an object literal.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.peek().Kind {
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.LBrace:
		if p.isObjectLiteral() {
			break
		}
		return p.parseBlock()
	}

	x := p.parseExpr()
	stmt := ast.NewExprStmt(x, x.Span())
	p.endOfStatement()
	return stmt
}

// parseBlock parses `{ statements-and-declarations }`.
func (p *Parser) parseBlock() *ast.BlockStmt {
	start := p.expect(token.LBrace, diag.SynExpectToken, "expected '{'").Span
	var body []ast.Node
	p.skipTerminators()
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		body = append(body, p.parseBlockMember())
		p.skipTerminators()
	}
	end := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close block")
	return ast.NewBlockStmt(body, start.Cover(end.Span))
}

// parseBlockMember parses one entry of a block: a nested declaration, a UI
// node (blocks nested under UI if/for children hold elements), or a
// statement.
func (p *Parser) parseBlockMember() ast.Node {
	switch p.peek().Kind {
	case token.KwLet, token.KwVar:
		return p.parseVariableDecl()
	case token.KwFn:
		return p.parseFunctionDecl()
	case token.Lt:
		if p.atUIStart() {
			return p.parseUINode()
		}
		return p.parseStatement()
	default:
		return p.parseStatement()
	}
}

// parseReturnStmt parses `return expr?`.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	kw := p.expect(token.KwReturn, diag.SynExpectToken, "expected 'return'")
	span := kw.Span
	var value ast.Expr
	switch p.peek().Kind {
	case token.Newline, token.Semicolon, token.RBrace, token.EOF:
	default:
		value = p.parseExpr()
		span = span.Cover(value.Span())
	}
	p.endOfStatement()
	return ast.NewReturnStmt(value, span)
}

// parseIfStmt parses `if cond { } (else if ... | else { })?`.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	kw := p.expect(token.KwIf, diag.SynExpectToken, "expected 'if'")
	cond := p.parseExpr()
	consequent := p.parseBlock()
	span := kw.Span.Cover(consequent.Span())

	var alternate ast.Stmt
	// `else` may sit on the line after the closing brace
	mark := p.pos
	p.skipNewlines()
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			alternate = p.parseIfStmt()
		} else {
			alternate = p.parseBlock()
		}
		span = span.Cover(alternate.Span())
	} else {
		p.pos = mark
	}

	return ast.NewIfStmt(cond, consequent, alternate, span)
}

// parseForStmt parses `for name in iterable { body }`.
func (p *Parser) parseForStmt() *ast.ForStmt {
	kw := p.expect(token.KwFor, diag.SynExpectToken, "expected 'for'")
	loopVar := p.expectIdent("loop variable")
	p.expect(token.KwIn, diag.SynExpectToken, "expected 'in' in for statement")
	iterable := p.parseExpr()
	body := p.parseBlock()
	return ast.NewForStmt(loopVar.Text, iterable, body, kw.Span.Cover(body.Span()))
}

// isObjectLiteral peeks past leading newlines after `{` for an `identifier :`
// or `string :` pattern, or an immediately closing `}`, which mark an object
// literal rather than a block.
func (p *Parser) isObjectLiteral() bool {
	if !p.at(token.LBrace) {
		return false
	}
	i := 1
	for p.peekAt(i).Kind == token.Newline {
		i++
	}
	first := p.peekAt(i)
	if first.Kind == token.RBrace {
		return true
	}
	if first.Kind != token.Ident && first.Kind != token.String {
		return false
	}
	return p.peekAt(i+1).Kind == token.Colon
}
