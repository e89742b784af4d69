package ssr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"lumina/internal/ast"
	"lumina/internal/token"
)

// Runtime values: nil, bool, float64, string, []any, *objectValue,
// *funcValue, *arrowValue.

type objField struct {
	key   string
	value any
}

// objectValue keeps field order so stringified output is deterministic.
type objectValue struct {
	fields []objField
}

func (o *objectValue) get(key string) (any, bool) {
	for _, f := range o.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

func (o *objectValue) set(key string, v any) {
	for i, f := range o.fields {
		if f.key == key {
			o.fields[i].value = v
			return
		}
	}
	o.fields = append(o.fields, objField{key: key, value: v})
}

type funcValue struct {
	decl    *ast.FunctionDecl
	closure *env
}

type arrowValue struct {
	fn      *ast.ArrowFunction
	closure *env
}

type env struct {
	parent *env
	vars   map[string]any
}

func newEnv(parent *env) *env {
	return &env{parent: parent, vars: make(map[string]any)}
}

func (e *env) define(name string, v any) {
	e.vars[name] = v
}

func (e *env) lookup(name string) (any, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign walks outward to the defining scope; an unbound name becomes a new
// binding in the innermost scope.
func (e *env) assign(name string, v any) {
	for cur := e; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

func (r *renderer) eval(x ast.Expr, scope *env) (any, error) {
	if x == nil {
		return nil, nil
	}
	switch e := x.(type) {
	case *ast.NumberLit:
		n, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("ssr: bad number literal %q", e.Value)
		}
		return n, nil
	case *ast.StringLit:
		return e.Value, nil
	case *ast.BoolLit:
		return e.Value, nil
	case *ast.NullLit:
		return nil, nil
	case *ast.Ident:
		if v, ok := scope.lookup(e.Name); ok {
			return v, nil
		}
		return nil, fmt.Errorf("ssr: undefined variable %q", e.Name)
	case *ast.TemplateLit:
		var sb strings.Builder
		for _, part := range e.Parts {
			if part.X == nil {
				sb.WriteString(part.Text)
				continue
			}
			v, err := r.eval(part.X, scope)
			if err != nil {
				return nil, err
			}
			sb.WriteString(stringify(v))
		}
		return sb.String(), nil
	case *ast.ArrayLit:
		items := make([]any, 0, len(e.Elements))
		for _, el := range e.Elements {
			v, err := r.eval(el, scope)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case *ast.ObjectLit:
		obj := &objectValue{}
		for _, f := range e.Fields {
			v, err := r.eval(f.Value, scope)
			if err != nil {
				return nil, err
			}
			obj.fields = append(obj.fields, objField{key: f.Key, value: v})
		}
		return obj, nil
	case *ast.UnaryExpr:
		return r.evalUnary(e, scope)
	case *ast.BinaryExpr:
		return r.evalBinary(e, scope)
	case *ast.ConditionalExpr:
		cond, err := r.eval(e.Cond, scope)
		if err != nil {
			return nil, err
		}
		if truthy(cond) {
			return r.eval(e.Then, scope)
		}
		return r.eval(e.Else, scope)
	case *ast.AssignExpr:
		return r.evalAssign(e, scope)
	case *ast.MemberExpr:
		return r.evalMember(e, scope)
	case *ast.CallExpr:
		callee, err := r.eval(e.Callee, scope)
		if err != nil {
			return nil, err
		}
		args := make([]any, 0, len(e.Args))
		for _, a := range e.Args {
			v, err := r.eval(a, scope)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return r.call(callee, args)
	case *ast.PipeExpr:
		arg, err := r.eval(e.Left, scope)
		if err != nil {
			return nil, err
		}
		callee, err := r.eval(e.Right, scope)
		if err != nil {
			return nil, err
		}
		return r.call(callee, []any{arg})
	case *ast.ArrowFunction:
		return &arrowValue{fn: e, closure: scope}, nil
	}
	return nil, fmt.Errorf("ssr: cannot evaluate %s", x.Kind())
}

func (r *renderer) evalUnary(e *ast.UnaryExpr, scope *env) (any, error) {
	v, err := r.eval(e.X, scope)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.Bang:
		return !truthy(v), nil
	case token.Minus:
		n, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("ssr: cannot negate %v", v)
		}
		return -n, nil
	}
	return nil, fmt.Errorf("ssr: unknown unary operator %s", e.Op)
}

func (r *renderer) evalBinary(e *ast.BinaryExpr, scope *env) (any, error) {
	left, err := r.eval(e.Left, scope)
	if err != nil {
		return nil, err
	}

	// Short-circuit before the right side is touched.
	switch e.Op {
	case token.AndAnd:
		if !truthy(left) {
			return false, nil
		}
		right, err := r.eval(e.Right, scope)
		return truthy(right), err
	case token.OrOr:
		if truthy(left) {
			return true, nil
		}
		right, err := r.eval(e.Right, scope)
		return truthy(right), err
	}

	right, err := r.eval(e.Right, scope)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.Plus:
		if ls, ok := left.(string); ok {
			return ls + stringify(right), nil
		}
		if rs, ok := right.(string); ok {
			return stringify(left) + rs, nil
		}
		return numericOp(e.Op, left, right)
	case token.Minus, token.Star, token.Slash, token.Percent:
		return numericOp(e.Op, left, right)
	case token.EqEq:
		return looselyEqual(left, right), nil
	case token.BangEq:
		return !looselyEqual(left, right), nil
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return compare(e.Op, left, right)
	}
	return nil, fmt.Errorf("ssr: unknown binary operator %s", e.Op)
}

func numericOp(op token.Kind, left, right any) (any, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, fmt.Errorf("ssr: invalid operands for %s: %v and %v", op, left, right)
	}
	switch op {
	case token.Plus:
		return l + r, nil
	case token.Minus:
		return l - r, nil
	case token.Star:
		return l * r, nil
	case token.Slash:
		return l / r, nil
	case token.Percent:
		// Floating remainder; x % 0 is NaN, same as in the generated JS.
		return math.Mod(l, r), nil
	}
	return nil, fmt.Errorf("ssr: unknown arithmetic operator %s", op)
}

func compare(op token.Kind, left, right any) (any, error) {
	if ls, ok := left.(string); ok {
		if rs, ok := right.(string); ok {
			switch op {
			case token.Lt:
				return ls < rs, nil
			case token.LtEq:
				return ls <= rs, nil
			case token.Gt:
				return ls > rs, nil
			case token.GtEq:
				return ls >= rs, nil
			}
		}
	}
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return nil, fmt.Errorf("ssr: cannot compare %v and %v", left, right)
	}
	switch op {
	case token.Lt:
		return l < r, nil
	case token.LtEq:
		return l <= r, nil
	case token.Gt:
		return l > r, nil
	case token.GtEq:
		return l >= r, nil
	}
	return nil, fmt.Errorf("ssr: unknown comparison operator %s", op)
}

// looselyEqual compares scalars by value and composite values by identity,
// the way the generated JS would. A plain interface comparison is not
// enough here: slices are uncomparable and would panic.
func looselyEqual(left, right any) bool {
	switch l := left.(type) {
	case nil:
		return right == nil
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	case float64:
		r, ok := right.(float64)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	case []any:
		r, ok := right.([]any)
		return ok && len(l) == len(r) && len(l) > 0 && &l[0] == &r[0]
	case *objectValue:
		r, ok := right.(*objectValue)
		return ok && l == r
	case *funcValue:
		r, ok := right.(*funcValue)
		return ok && l == r
	case *arrowValue:
		r, ok := right.(*arrowValue)
		return ok && l == r
	}
	return false
}

func (r *renderer) evalAssign(e *ast.AssignExpr, scope *env) (any, error) {
	value, err := r.eval(e.Value, scope)
	if err != nil {
		return nil, err
	}
	switch target := e.Target.(type) {
	case *ast.Ident:
		scope.assign(target.Name, value)
		return value, nil
	case *ast.MemberExpr:
		obj, err := r.eval(target.Object, scope)
		if err != nil {
			return nil, err
		}
		if target.Computed() {
			idx, err := r.eval(target.Index, scope)
			if err != nil {
				return nil, err
			}
			items, iok := obj.([]any)
			n, nok := idx.(float64)
			if !iok || !nok || int(n) < 0 || int(n) >= len(items) {
				return nil, fmt.Errorf("ssr: bad index assignment")
			}
			items[int(n)] = value
			return value, nil
		}
		fields, ok := obj.(*objectValue)
		if !ok {
			return nil, fmt.Errorf("ssr: cannot assign property on %v", obj)
		}
		fields.set(target.Property, value)
		return value, nil
	}
	return nil, fmt.Errorf("ssr: invalid assignment target")
}

func (r *renderer) evalMember(e *ast.MemberExpr, scope *env) (any, error) {
	obj, err := r.eval(e.Object, scope)
	if err != nil {
		return nil, err
	}
	if e.Computed() {
		idx, err := r.eval(e.Index, scope)
		if err != nil {
			return nil, err
		}
		n, ok := idx.(float64)
		if !ok {
			return nil, fmt.Errorf("ssr: non-numeric index %v", idx)
		}
		items, ok := obj.([]any)
		if !ok || int(n) < 0 || int(n) >= len(items) {
			return nil, fmt.Errorf("ssr: index %v out of range", idx)
		}
		return items[int(n)], nil
	}
	switch o := obj.(type) {
	case *objectValue:
		if v, ok := o.get(e.Property); ok {
			return v, nil
		}
		return nil, nil
	case []any:
		if e.Property == "length" {
			return float64(len(o)), nil
		}
	case string:
		if e.Property == "length" {
			return float64(len(o)), nil
		}
	}
	return nil, fmt.Errorf("ssr: no property %q on %v", e.Property, obj)
}

func (r *renderer) call(callee any, args []any) (any, error) {
	switch fn := callee.(type) {
	case *funcValue:
		scope := newEnv(fn.closure)
		if err := r.bindParams(fn.decl.Params, args, scope); err != nil {
			return nil, err
		}
		v, _, err := r.execBlock(fn.decl.Body, scope)
		return v, err
	case *arrowValue:
		scope := newEnv(fn.closure)
		if err := r.bindParams(fn.fn.Params, args, scope); err != nil {
			return nil, err
		}
		if fn.fn.ExprBody != nil {
			return r.eval(fn.fn.ExprBody, scope)
		}
		v, _, err := r.execBlock(fn.fn.Body, scope)
		return v, err
	}
	return nil, fmt.Errorf("ssr: %v is not callable", callee)
}

func (r *renderer) bindParams(params []ast.Param, args []any, scope *env) error {
	for i, p := range params {
		if i < len(args) {
			scope.define(p.Name, args[i])
			continue
		}
		if p.Default != nil {
			v, err := r.eval(p.Default, scope)
			if err != nil {
				return err
			}
			scope.define(p.Name, v)
			continue
		}
		scope.define(p.Name, nil)
	}
	return nil
}

// execBlock executes statements; the bool result reports whether a return
// was hit, ending the enclosing function call.
func (r *renderer) execBlock(block *ast.BlockStmt, scope *env) (any, bool, error) {
	if block == nil {
		return nil, false, nil
	}
	for _, node := range block.Body {
		v, returned, err := r.execNode(node, scope)
		if err != nil || returned {
			return v, returned, err
		}
	}
	return nil, false, nil
}

func (r *renderer) execNode(node ast.Node, scope *env) (any, bool, error) {
	switch n := node.(type) {
	case *ast.VariableDecl:
		v, err := r.eval(n.Init, scope)
		if err != nil {
			return nil, false, err
		}
		scope.define(n.Name, v)
	case *ast.FunctionDecl:
		scope.define(n.Name, &funcValue{decl: n, closure: scope})
	case *ast.ExprStmt:
		if _, err := r.eval(n.X, scope); err != nil {
			return nil, false, err
		}
	case *ast.ReturnStmt:
		v, err := r.eval(n.Value, scope)
		return v, true, err
	case *ast.IfStmt:
		cond, err := r.eval(n.Cond, scope)
		if err != nil {
			return nil, false, err
		}
		if truthy(cond) {
			return r.execBlock(n.Consequent, newEnv(scope))
		}
		if n.Alternate != nil {
			return r.execNode(n.Alternate, scope)
		}
	case *ast.BlockStmt:
		return r.execBlock(n, newEnv(scope))
	case *ast.ForStmt:
		iter, err := r.eval(n.Iterable, scope)
		if err != nil {
			return nil, false, err
		}
		items, ok := iter.([]any)
		if !ok {
			return nil, false, fmt.Errorf("ssr: for loop over non-array value %v", iter)
		}
		for _, item := range items {
			body := newEnv(scope)
			body.define(n.Var, item)
			v, returned, err := r.execBlock(n.Body, body)
			if err != nil || returned {
				return v, returned, err
			}
		}
	}
	return nil, false, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(t)
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	case *objectValue:
		var sb strings.Builder
		sb.WriteByte('{')
		for i, f := range t.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.key + ": " + stringify(f.value))
		}
		sb.WriteByte('}')
		return sb.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
