package checker

import (
	"lumina/internal/ast"
	"lumina/internal/diag"
	"lumina/internal/token"
)

// checkExpr computes the type of an expression, emitting diagnostics along
// the way. It always returns a usable type; Any stands in after an error.
func (c *Checker) checkExpr(x ast.Expr, env *Scope) *Type {
	switch e := x.(type) {
	case *ast.NumberLit:
		return Int
	case *ast.StringLit:
		return String
	case *ast.BoolLit:
		return Bool
	case *ast.NullLit:
		return Null
	case *ast.TemplateLit:
		for _, part := range e.Parts {
			if part.X != nil {
				c.checkExpr(part.X, env)
			}
		}
		return String
	case *ast.Ident:
		if t, ok := env.Lookup(e.Name); ok {
			return t
		}
		c.errorf(diag.SemUndefinedVariable, e.Span(), "undefined variable '%s'", e.Name)
		return Any
	case *ast.BinaryExpr:
		return c.checkBinary(e, env)
	case *ast.UnaryExpr:
		return c.checkUnary(e, env)
	case *ast.AssignExpr:
		return c.checkAssign(e, env)
	case *ast.CallExpr:
		return c.checkCall(e, env)
	case *ast.MemberExpr:
		return c.checkMember(e, env)
	case *ast.ArrowFunction:
		return c.checkArrow(e, env)
	case *ast.ArrayLit:
		return c.checkArrayLit(e, env)
	case *ast.ObjectLit:
		t := &Type{Kind: KindObject}
		for _, f := range e.Fields {
			t.Fields = append(t.Fields, Field{Name: f.Key, Type: c.checkExpr(f.Value, env)})
		}
		return t
	case *ast.ConditionalExpr:
		c.expectBool(e.Cond, env, "condition")
		thenT := c.checkExpr(e.Then, env)
		elseT := c.checkExpr(e.Else, env)
		if Compatible(thenT, elseT) {
			return thenT
		}
		return Any
	case *ast.PipeExpr:
		arg := c.checkExpr(e.Left, env)
		callee := c.checkExpr(e.Right, env)
		switch callee.Kind {
		case KindFunction:
			if len(callee.Params) >= 1 && !Compatible(arg, callee.Params[0]) {
				c.errorf(diag.SemTypeMismatch, e.Left.Span(),
					"cannot pipe %s into a function expecting %s", arg, callee.Params[0])
			}
			return callee.Return
		case KindAny:
			return Any
		default:
			c.errorf(diag.SemNotCallable, e.Right.Span(), "right side of |> is not callable (%s)", callee)
			return Any
		}
	}
	return Any
}

func (c *Checker) checkBinary(e *ast.BinaryExpr, env *Scope) *Type {
	left := c.checkExpr(e.Left, env)
	right := c.checkExpr(e.Right, env)

	switch e.Op {
	case token.Plus:
		// + is overloaded: concatenation wins when either side is a string.
		if left.Kind == KindString || right.Kind == KindString {
			return String
		}
		if left.Kind == KindInt && right.Kind == KindInt {
			return Int
		}
		if left.Kind == KindAny || right.Kind == KindAny {
			return Any
		}
		c.errorf(diag.SemBadOperand, e.Span(), "invalid operands for '+': %s and %s", left, right)
		return Any
	case token.Minus, token.Star, token.Slash, token.Percent:
		if !Compatible(left, Int) || !Compatible(right, Int) {
			c.errorf(diag.SemBadOperand, e.Span(),
				"invalid operands for '%s': %s and %s", e.Op, left, right)
		}
		return Int
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		// Comparisons are Bool regardless of operands; runtime semantics are
		// the target's.
		return Bool
	case token.AndAnd, token.OrOr:
		if !Compatible(left, Bool) || !Compatible(right, Bool) {
			c.errorf(diag.SemBadOperand, e.Span(),
				"invalid operands for '%s': %s and %s", e.Op, left, right)
		}
		return Bool
	}
	return Any
}

func (c *Checker) checkUnary(e *ast.UnaryExpr, env *Scope) *Type {
	operand := c.checkExpr(e.X, env)
	switch e.Op {
	case token.Bang:
		if !Compatible(operand, Bool) {
			c.errorf(diag.SemBadOperand, e.Span(), "invalid operand for '!': %s", operand)
		}
		return Bool
	case token.Minus:
		if !Compatible(operand, Int) {
			c.errorf(diag.SemBadOperand, e.Span(), "invalid operand for '-': %s", operand)
		}
		return Int
	}
	return Any
}

func (c *Checker) checkAssign(e *ast.AssignExpr, env *Scope) *Type {
	value := c.checkExpr(e.Value, env)
	switch target := e.Target.(type) {
	case *ast.Ident:
		declared, ok := env.Lookup(target.Name)
		if !ok {
			c.errorf(diag.SemUndefinedVariable, target.Span(), "undefined variable '%s'", target.Name)
			return value
		}
		if !Compatible(value, declared) {
			c.errorf(diag.SemTypeMismatch, e.Span(),
				"cannot assign %s to '%s' of type %s", value, target.Name, declared)
		}
		return declared
	case *ast.MemberExpr:
		c.checkExpr(target.Object, env)
		if target.Computed() {
			c.checkExpr(target.Index, env)
		}
		return value
	default:
		c.errorf(diag.SemBadAssignTarget, e.Target.Span(), "cannot assign to a literal")
		return value
	}
}

func (c *Checker) checkCall(e *ast.CallExpr, env *Scope) *Type {
	callee := c.checkExpr(e.Callee, env)
	var args []*Type
	for _, a := range e.Args {
		args = append(args, c.checkExpr(a, env))
	}
	switch callee.Kind {
	case KindFunction:
		if len(args) != len(callee.Params) {
			c.errorf(diag.SemBadOperand, e.Span(),
				"wrong argument count: want %d, got %d", len(callee.Params), len(args))
			return callee.Return
		}
		for i, arg := range args {
			if !Compatible(arg, callee.Params[i]) {
				c.errorf(diag.SemTypeMismatch, e.Args[i].Span(),
					"argument %d: cannot pass %s as %s", i+1, arg, callee.Params[i])
			}
		}
		return callee.Return
	case KindComponent, KindAny:
		return Any
	default:
		c.errorf(diag.SemNotCallable, e.Callee.Span(), "%s is not callable", callee)
		return Any
	}
}

// checkMember is deliberately lenient: unknown fields on a known object
// type come back Any rather than erroring, since most object values flow in
// as unannotated props.
func (c *Checker) checkMember(e *ast.MemberExpr, env *Scope) *Type {
	object := c.checkExpr(e.Object, env)
	if e.Computed() {
		c.checkExpr(e.Index, env)
		if object.Kind == KindArray {
			return object.Elem
		}
		return Any
	}
	if object.Kind == KindObject {
		for _, f := range object.Fields {
			if f.Name == e.Property {
				return f.Type
			}
		}
	}
	return Any
}

func (c *Checker) checkArrow(e *ast.ArrowFunction, env *Scope) *Type {
	sig := &Type{Kind: KindFunction, Return: Any}
	body := NewScope(env)
	for _, p := range e.Params {
		pt := ParseAnnotation(p.Type)
		sig.Params = append(sig.Params, pt)
		body.Define(p.Name, pt)
	}
	if e.ExprBody != nil {
		sig.Return = c.checkExpr(e.ExprBody, body)
		return sig
	}
	c.retStack = append(c.retStack, Any)
	c.checkBlock(e.Body, body)
	c.retStack = c.retStack[:len(c.retStack)-1]
	return sig
}

func (c *Checker) checkArrayLit(e *ast.ArrayLit, env *Scope) *Type {
	if len(e.Elements) == 0 {
		return ArrayOf(Any)
	}
	elem := c.checkExpr(e.Elements[0], env)
	for _, el := range e.Elements[1:] {
		t := c.checkExpr(el, env)
		if !Compatible(t, elem) {
			elem = Any
		}
	}
	return ArrayOf(elem)
}
