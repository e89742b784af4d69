// Package parser builds the Lumina AST from a normalized token sequence by
// recursive descent, with precedence climbing for expressions. The only
// lookahead beyond one token is isArrowFunction (scan to the matching close
// paren) and isObjectLiteral (peek for an `ident :` pattern).
package parser

import (
	"fmt"

	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/lexer"
	"lumina/internal/source"
	"lumina/internal/token"
)

// Options configures a parse. The Reporter receives exactly one diagnostic
// for a failed parse: the parser does not resynchronize after an error.
type Options struct {
	Reporter diag.Reporter
}

// Result carries the parse outcome. Program is nil when Failed is true.
type Result struct {
	Program *ast.Program
	Failed  bool
}

// Parser holds the per-file parse state.
type Parser struct {
	fs     *source.FileSet
	fileID source.FileID
	tokens []token.Token
	pos    int
	opts   Options
}

// bailout unwinds the parser after the first reported error.
type bailout struct{}

// Parse consumes a normalized token sequence and produces a single Program
// root. The sequence must be terminated by an EOF token (lexer.Tokenize
// guarantees this).
func Parse(fs *source.FileSet, fileID source.FileID, tokens []token.Token, opts Options) (result Result) {
	p := &Parser{
		fs:     fs,
		fileID: fileID,
		tokens: tokens,
		opts:   opts,
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			result = Result{Failed: true}
		}
	}()

	return Result{Program: p.parseProgram()}
}

// ParseFile tokenizes and parses one file from the set.
func ParseFile(fs *source.FileSet, fileID source.FileID, opts Options) Result {
	failing := &failureTracker{inner: opts.Reporter}
	tokens := lexer.Tokenize(fs.Get(fileID), lexer.Options{Reporter: failing})
	if failing.failed {
		return Result{Failed: true}
	}
	return Parse(fs, fileID, tokens, opts)
}

// failureTracker notes whether any error-severity diagnostic passed through.
type failureTracker struct {
	inner  diag.Reporter
	failed bool
}

func (t *failureTracker) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	if sev >= diag.SevError {
		t.failed = true
	}
	if t.inner != nil {
		t.inner.Report(code, sev, primary, msg, notes)
	}
}

func (p *Parser) parseProgram() *ast.Program {
	startSpan := p.peek().Span
	var body []ast.Node
	p.skipTerminators()
	for !p.at(token.EOF) {
		body = append(body, p.parseTopLevel())
		p.skipTerminators()
	}
	return ast.NewProgram(body, startSpan.Cover(p.peek().Span))
}

// parseTopLevel dispatches on the leading token of one top-level construct.
func (p *Parser) parseTopLevel() ast.Node {
	switch p.peek().Kind {
	case token.KwImport:
		return p.parseImportDecl()
	case token.KwExport:
		return p.parseExportDecl()
	case token.KwComponent:
		return p.parseComponentDecl()
	case token.KwFn:
		return p.parseFunctionDecl()
	case token.KwLet, token.KwVar:
		return p.parseVariableDecl()
	case token.KwStyle:
		return p.parseStyleDecl()
	default:
		return p.parseStatement()
	}
}

// ===== token stream access =====

func (p *Parser) peek() token.Token {
	return p.tokens[p.pos]
}

// peekAt returns the token n positions ahead, clamped at EOF.
func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	if tok.Kind != token.EOF {
		p.pos++
	}
	return tok
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or aborts the parse.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) token.Token {
	if p.at(k) {
		return p.advance()
	}
	p.fail(code, msg)
	return token.Token{}
}

func (p *Parser) expectIdent(what string) token.Token {
	if p.at(token.Ident) {
		return p.advance()
	}
	p.fail(diag.SynExpectIdentifier, fmt.Sprintf("expected %s, found %q", what, p.peek().Kind))
	return token.Token{}
}

// skipNewlines consumes any Newline tokens.
func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// skipTerminators consumes statement terminators (newlines and semicolons).
func (p *Parser) skipTerminators() {
	for p.at(token.Newline) || p.at(token.Semicolon) {
		p.advance()
	}
}

// endOfStatement consumes one statement terminator. A closing brace or EOF
// also terminates a statement without being consumed.
func (p *Parser) endOfStatement() {
	switch p.peek().Kind {
	case token.Newline, token.Semicolon:
		p.advance()
	case token.RBrace, token.EOF:
	default:
		p.fail(diag.SynUnexpectedToken, fmt.Sprintf("unexpected token %q after statement", p.peek().Text))
	}
}

// fail reports the diagnostic at the current token and unwinds the parse.
func (p *Parser) fail(code diag.Code, msg string) {
	p.failAt(code, p.peek().Span, msg)
}

func (p *Parser) failAt(code diag.Code, sp source.Span, msg string) {
	if p.opts.Reporter != nil {
		start, _ := p.fs.Resolve(sp)
		p.opts.Reporter.Report(code, diag.SevError, sp,
			fmt.Sprintf("%d:%d: %s", start.Line, start.Col, msg), nil)
	}
	panic(bailout{})
}
