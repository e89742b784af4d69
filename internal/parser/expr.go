package parser

import (
	"fmt"

	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/token"
)

// Precedence climbing, lowest to highest:
// pipe -> assignment -> ternary -> logical-or -> logical-and -> equality ->
// relational -> additive -> multiplicative -> unary -> postfix -> primary.

func (p *Parser) parseExpr() ast.Expr {
	return p.parsePipe()
}

// parsePipe parses `a |> f |> g`, left-associative.
func (p *Parser) parsePipe() ast.Expr {
	left := p.parseAssign()
	for p.at(token.PipeGt) {
		p.advance()
		right := p.parseAssign()
		left = ast.NewPipeExpr(left, right, left.Span().Cover(right.Span()))
	}
	return left
}

// parseAssign parses `target = value`, right-associative. Target validity is
// not enforced here: assigning to a literal parses and is left to the
// checker.
func (p *Parser) parseAssign() ast.Expr {
	left := p.parseTernary()
	if p.at(token.Assign) {
		p.advance()
		value := p.parseAssign()
		return ast.NewAssignExpr(left, value, left.Span().Cover(value.Span()))
	}
	return left
}

func (p *Parser) parseTernary() ast.Expr {
	cond := p.parseLogicalOr()
	if !p.at(token.Question) {
		return cond
	}
	p.advance()
	then := p.parseTernary()
	p.expect(token.Colon, diag.SynExpectToken, "expected ':' in conditional expression")
	els := p.parseTernary()
	return ast.NewConditionalExpr(cond, then, els, cond.Span().Cover(els.Span()))
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.at(token.OrOr) {
		op := p.advance()
		right := p.parseLogicalAnd()
		left = ast.NewBinaryExpr(op.Kind, left, right, left.Span().Cover(right.Span()))
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.at(token.AndAnd) {
		op := p.advance()
		right := p.parseEquality()
		left = ast.NewBinaryExpr(op.Kind, left, right, left.Span().Cover(right.Span()))
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.at(token.EqEq) || p.at(token.BangEq) {
		op := p.advance()
		right := p.parseRelational()
		left = ast.NewBinaryExpr(op.Kind, left, right, left.Span().Cover(right.Span()))
	}
	return left
}

// parseRelational re-applies the UI-start check before treating `<` as a
// comparison, so a UI element is never mis-consumed as a relational operand.
func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for {
		switch p.peek().Kind {
		case token.Lt:
			if p.atUIStart() {
				return left
			}
		case token.LtEq, token.Gt, token.GtEq:
		default:
			return left
		}
		op := p.advance()
		right := p.parseAdditive()
		left = ast.NewBinaryExpr(op.Kind, left, right, left.Span().Cover(right.Span()))
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := p.advance()
		right := p.parseMultiplicative()
		left = ast.NewBinaryExpr(op.Kind, left, right, left.Span().Cover(right.Span()))
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		op := p.advance()
		right := p.parseUnary()
		left = ast.NewBinaryExpr(op.Kind, left, right, left.Span().Cover(right.Span()))
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.at(token.Bang) || p.at(token.Minus) {
		op := p.advance()
		x := p.parseUnary()
		return ast.NewUnaryExpr(op.Kind, x, op.Span.Cover(x.Span()))
	}
	return p.parsePostfix()
}

// parsePostfix parses the call/member/index chain.
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			var args []ast.Expr
			if !p.at(token.RParen) {
				for {
					args = append(args, p.parseExpr())
					if !p.eat(token.Comma) {
						break
					}
				}
			}
			end := p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close call")
			x = ast.NewCallExpr(x, args, x.Span().Cover(end.Span))
		case token.Dot:
			p.advance()
			prop := p.expectIdent("property name")
			x = ast.NewMemberExpr(x, prop.Text, nil, x.Span().Cover(prop.Span))
		case token.LBracket:
			p.advance()
			idx := p.parseExpr()
			end := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close index")
			x = ast.NewMemberExpr(x, "", idx, x.Span().Cover(end.Span))
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.Number:
		p.advance()
		return ast.NewNumberLit(tok.Text, tok.Span)
	case token.String:
		p.advance()
		if p.isTemplateString(tok) {
			return p.parseTemplateLit(tok)
		}
		return ast.NewStringLit(tok.Text, tok.Span)
	case token.Bool:
		p.advance()
		return ast.NewBoolLit(tok.Text == "true", tok.Span)
	case token.KwNull:
		p.advance()
		return ast.NewNullLit(tok.Span)
	case token.Ident:
		p.advance()
		return ast.NewIdent(tok.Text, tok.Span)
	case token.LParen:
		if p.isArrowFunction() {
			return p.parseArrowFunction()
		}
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' to close group")
		return x
	case token.LBracket:
		return p.parseArrayLit()
	case token.LBrace:
		return p.parseObjectLit()
	}
	p.fail(diag.SynUnexpectedToken, fmt.Sprintf("unexpected token %q in expression", tok.Text))
	return nil
}

func (p *Parser) parseArrayLit() ast.Expr {
	start := p.expect(token.LBracket, diag.SynExpectToken, "expected '['").Span
	var elements []ast.Expr
	p.skipNewlines()
	if !p.at(token.RBracket) {
		for {
			elements = append(elements, p.parseExpr())
			p.skipNewlines()
			if !p.eat(token.Comma) {
				break
			}
			p.skipNewlines()
		}
	}
	end := p.expect(token.RBracket, diag.SynUnclosedDelimiter, "expected ']' to close array literal")
	return ast.NewArrayLit(elements, start.Cover(end.Span))
}

func (p *Parser) parseObjectLit() ast.Expr {
	start := p.expect(token.LBrace, diag.SynExpectToken, "expected '{'").Span
	var fields []ast.ObjectField
	p.skipNewlines()
	if !p.at(token.RBrace) {
		for {
			var key string
			switch p.peek().Kind {
			case token.Ident, token.String:
				key = p.advance().Text
			default:
				p.fail(diag.SynExpectIdentifier, "expected object key")
			}
			p.expect(token.Colon, diag.SynExpectToken, "expected ':' after object key")
			value := p.parseExpr()
			fields = append(fields, ast.ObjectField{Key: key, Value: value})
			p.skipNewlines()
			if !p.eat(token.Comma) {
				break
			}
			p.skipNewlines()
		}
	}
	end := p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' to close object literal")
	return ast.NewObjectLit(fields, start.Cover(end.Span))
}

// parseArrowFunction parses `(params) => expr-or-block` after isArrowFunction
// confirmed the shape.
func (p *Parser) parseArrowFunction() ast.Expr {
	start := p.peek().Span
	params := p.parseParamList()
	p.expect(token.FatArrow, diag.SynExpectToken, "expected '=>'")

	if p.at(token.LBrace) && !p.isObjectLiteral() {
		body := p.parseBlock()
		return ast.NewArrowFunction(params, body, nil, start.Cover(body.Span()))
	}
	x := p.parseExpr()
	return ast.NewArrowFunction(params, nil, x, start.Cover(x.Span()))
}

// isArrowFunction scans forward from a `(` to its matching `)` and reports
// whether `=>` follows. This is the parser's one unbounded lookahead.
func (p *Parser) isArrowFunction() bool {
	if !p.at(token.LParen) {
		return false
	}
	depth := 0
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		switch tok.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				j := i + 1
				for p.peekAt(j).Kind == token.Newline {
					j++
				}
				return p.peekAt(j).Kind == token.FatArrow
			}
		case token.EOF:
			return false
		}
	}
}
