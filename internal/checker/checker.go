package checker

import (
	"fmt"

	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/source"
)

// Options configures a check run.
type Options struct {
	// Reporter receives semantic diagnostics. Nil means discard.
	Reporter diag.Reporter
}

// Result is the outcome of checking one program. Messages preserves
// traversal order; OK is true when no diagnostic was produced.
type Result struct {
	OK       bool
	Messages []string
}

// Checker walks a program and accumulates diagnostics. It never aborts: an
// undefined name or a mismatched operand yields Any and the walk continues,
// so one mistake does not hide the rest.
type Checker struct {
	fs       *source.FileSet
	opts     Options
	global   *Scope
	messages []string

	// retStack tracks the declared return type of the enclosing function,
	// innermost last. Empty outside function bodies.
	retStack []*Type
}

// Check runs the two-pass checker: first collect every top-level component
// and function signature so bodies may reference later declarations, then
// check all bodies in order.
func Check(fs *source.FileSet, program *ast.Program, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	c := &Checker{fs: fs, opts: opts, global: NewScope(nil)}
	c.collectSignatures(program)
	for _, node := range program.Body {
		c.checkNode(node, c.global)
	}
	return Result{OK: len(c.messages) == 0, Messages: c.messages}
}

func (c *Checker) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	start, _ := c.fs.Resolve(sp)
	c.messages = append(c.messages, fmt.Sprintf("%d:%d: %s", start.Line, start.Col, msg))
	c.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}

// collectSignatures binds every top-level component and function, including
// export-wrapped ones, before any body is checked.
func (c *Checker) collectSignatures(program *ast.Program) {
	for _, node := range program.Body {
		decl := node
		if ex, ok := node.(*ast.ExportDecl); ok && ex.Decl != nil {
			decl = ex.Decl
		}
		switch d := decl.(type) {
		case *ast.ComponentDecl:
			c.global.Define(d.Name, componentType(d.Params))
		case *ast.FunctionDecl:
			c.global.Define(d.Name, functionType(d.Params, d.ReturnType))
		}
	}
}

func componentType(params []ast.Param) *Type {
	t := &Type{Kind: KindComponent}
	for _, p := range params {
		t.Props = append(t.Props, Field{Name: p.Name, Type: ParseAnnotation(p.Type)})
	}
	return t
}

func functionType(params []ast.Param, returnType string) *Type {
	t := &Type{Kind: KindFunction, Return: ParseAnnotation(returnType)}
	for _, p := range params {
		t.Params = append(t.Params, ParseAnnotation(p.Type))
	}
	return t
}

// checkNode dispatches declarations, statements and UI nodes. Expressions go
// through checkExpr.
func (c *Checker) checkNode(node ast.Node, env *Scope) {
	switch n := node.(type) {
	case *ast.ImportDecl:
		// Imported names resolve at bundle time; treat them as Any so uses
		// check without the foreign module's source.
		for _, name := range n.Specifiers {
			env.Define(name, Any)
		}
	case *ast.ExportDecl:
		c.checkExport(n, env)
	case *ast.ComponentDecl:
		c.checkComponent(n, env)
	case *ast.FunctionDecl:
		c.checkFunction(n, env)
	case *ast.VariableDecl:
		c.checkVariable(n.Name, n.Type, n.Init, n.Span(), env)
	case *ast.StateDecl:
		c.checkVariable(n.Name, n.Type, n.Init, n.Span(), env)
	case *ast.EffectDecl:
		c.checkEffect(n, env)
	case *ast.StyleDecl:
		for _, prop := range n.Props {
			c.checkExpr(prop.Value, env)
		}
	case *ast.ReturnStmt:
		c.checkReturn(n, env)
	case *ast.IfStmt:
		c.checkIf(n, env)
	case *ast.ForStmt:
		c.checkFor(n, env)
	case *ast.BlockStmt:
		c.checkBlock(n, NewScope(env))
	case *ast.ExprStmt:
		c.checkExpr(n.X, env)
	case *ast.UIElement, *ast.ComponentInstance, *ast.UIText, *ast.UIExpr:
		c.checkUINode(node, env)
	}
}

func (c *Checker) checkExport(d *ast.ExportDecl, env *Scope) {
	if d.Decl != nil {
		c.checkNode(d.Decl, env)
		return
	}
	for _, name := range d.Specifiers {
		if _, ok := env.Lookup(name); !ok {
			c.errorf(diag.SemUndefinedVariable, d.Span(), "undefined variable '%s'", name)
		}
	}
}

func (c *Checker) checkComponent(d *ast.ComponentDecl, env *Scope) {
	body := NewScope(env)
	for _, p := range d.Params {
		if p.Default != nil {
			c.checkExpr(p.Default, env)
		}
		body.Define(p.Name, ParseAnnotation(p.Type))
	}
	for _, node := range d.Body {
		c.checkNode(node, body)
	}
}

func (c *Checker) checkFunction(d *ast.FunctionDecl, env *Scope) {
	// Nested functions are bound in the surrounding scope on first
	// encounter; top-level ones are already collected, rebinding is
	// harmless.
	sig := functionType(d.Params, d.ReturnType)
	env.Define(d.Name, sig)

	body := NewScope(env)
	for _, p := range d.Params {
		if p.Default != nil {
			c.checkExpr(p.Default, env)
		}
		body.Define(p.Name, ParseAnnotation(p.Type))
	}
	c.retStack = append(c.retStack, sig.Return)
	c.checkBlock(d.Body, body)
	c.retStack = c.retStack[:len(c.retStack)-1]
}

func (c *Checker) checkVariable(name, annotation string, init ast.Expr, sp source.Span, env *Scope) {
	declared := ParseAnnotation(annotation)
	actual := Any
	if init != nil {
		actual = c.checkExpr(init, env)
	}
	if annotation != "" {
		if !Compatible(actual, declared) {
			c.errorf(diag.SemTypeMismatch, sp,
				"cannot initialize '%s' of type %s with %s", name, declared, actual)
		}
		env.Define(name, declared)
		return
	}
	env.Define(name, actual)
}

func (c *Checker) checkEffect(d *ast.EffectDecl, env *Scope) {
	for _, dep := range d.Deps {
		if _, ok := env.Lookup(dep); !ok {
			c.errorf(diag.SemUndefinedVariable, d.Span(), "undefined variable '%s'", dep)
		}
	}
	c.checkBlock(d.Body, NewScope(env))
}

func (c *Checker) checkReturn(s *ast.ReturnStmt, env *Scope) {
	actual := Void
	if s.Value != nil {
		actual = c.checkExpr(s.Value, env)
	}
	if len(c.retStack) == 0 {
		return
	}
	want := c.retStack[len(c.retStack)-1]
	if !Compatible(actual, want) {
		c.errorf(diag.SemTypeMismatch, s.Span(), "cannot return %s from a function returning %s", actual, want)
	}
}

func (c *Checker) checkIf(s *ast.IfStmt, env *Scope) {
	c.expectBool(s.Cond, env, "if condition")
	c.checkBlock(s.Consequent, NewScope(env))
	if s.Alternate != nil {
		c.checkNode(s.Alternate, env)
	}
}

func (c *Checker) checkFor(s *ast.ForStmt, env *Scope) {
	iter := c.checkExpr(s.Iterable, env)
	elem := Any
	switch iter.Kind {
	case KindArray:
		elem = iter.Elem
	case KindAny:
	default:
		c.errorf(diag.SemBadOperand, s.Iterable.Span(), "cannot iterate over %s", iter)
	}
	body := NewScope(env)
	body.Define(s.Var, elem)
	c.checkBlock(s.Body, body)
}

func (c *Checker) checkBlock(block *ast.BlockStmt, env *Scope) {
	if block == nil {
		return
	}
	for _, node := range block.Body {
		c.checkNode(node, env)
	}
}

func (c *Checker) expectBool(x ast.Expr, env *Scope, what string) {
	got := c.checkExpr(x, env)
	if !Compatible(got, Bool) {
		c.errorf(diag.SemTypeMismatch, x.Span(), "%s must be Bool, got %s", what, got)
	}
}
