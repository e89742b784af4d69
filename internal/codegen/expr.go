package codegen

import (
	"strconv"
	"strings"

	"lumina/internal/ast"
)

// expr lowers one expression to JavaScript text. References to reactive
// state are rewritten to go through the __state descriptors so both reads
// and writes hit the property hooks.
func (jg *jsGen) expr(x ast.Expr) string {
	switch e := x.(type) {
	case *ast.Ident:
		if jg.states[e.Name] {
			return "__state." + e.Name
		}
		return e.Name
	case *ast.NumberLit:
		return e.Value
	case *ast.StringLit:
		return strconv.Quote(e.Value)
	case *ast.BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.NullLit:
		return "null"
	case *ast.TemplateLit:
		return jg.templateLit(e)
	case *ast.BinaryExpr:
		return "(" + jg.expr(e.Left) + " " + e.Op.String() + " " + jg.expr(e.Right) + ")"
	case *ast.UnaryExpr:
		return "(" + e.Op.String() + jg.expr(e.X) + ")"
	case *ast.AssignExpr:
		return "(" + jg.expr(e.Target) + " = " + jg.expr(e.Value) + ")"
	case *ast.ConditionalExpr:
		return "(" + jg.expr(e.Cond) + " ? " + jg.expr(e.Then) + " : " + jg.expr(e.Else) + ")"
	case *ast.PipeExpr:
		return jg.callable(e.Right) + "(" + jg.expr(e.Left) + ")"
	case *ast.CallExpr:
		return jg.call(e)
	case *ast.MemberExpr:
		if e.Computed() {
			return jg.expr(e.Object) + "[" + jg.expr(e.Index) + "]"
		}
		return jg.expr(e.Object) + "." + e.Property
	case *ast.ArrowFunction:
		return jg.arrow(e)
	case *ast.ArrayLit:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = jg.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLit:
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = objectKey(f.Key) + ": " + jg.expr(f.Value)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	}
	return "null /* unsupported expression */"
}

// call lowers a call expression. A call whose callee names a declared
// component is rewritten to a props-object call, zipping positional
// arguments onto the component's parameter names.
func (jg *jsGen) call(e *ast.CallExpr) string {
	if id, ok := e.Callee.(*ast.Ident); ok && !jg.states[id.Name] {
		if params, isComponent := jg.g.componentParams[id.Name]; isComponent {
			return id.Name + "(" + jg.propsObject(params, e.Args) + ")"
		}
	}
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = jg.expr(a)
	}
	return jg.callable(e.Callee) + "(" + strings.Join(args, ", ") + ")"
}

func (jg *jsGen) propsObject(params []string, args []ast.Expr) string {
	if len(args) == 1 {
		if obj, ok := args[0].(*ast.ObjectLit); ok {
			return jg.expr(obj)
		}
	}
	n := len(args)
	if len(params) < n {
		n = len(params)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, objectKey(params[i])+": "+jg.expr(args[i]))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// callable wraps non-atomic callee expressions in parens.
func (jg *jsGen) callable(x ast.Expr) string {
	switch x.(type) {
	case *ast.Ident, *ast.MemberExpr, *ast.CallExpr:
		return jg.expr(x)
	default:
		return "(" + jg.expr(x) + ")"
	}
}

func (jg *jsGen) arrow(e *ast.ArrowFunction) string {
	head := "(" + jg.paramList(e.Params) + ") => "
	if e.ExprBody != nil {
		body := e.ExprBody
		if _, isObj := body.(*ast.ObjectLit); isObj {
			return head + "(" + jg.expr(body) + ")"
		}
		return head + jg.expr(body)
	}
	return head + "{ " + jg.inlineStmts(e.Body) + " }"
}

// inlineStmts renders a block body on one line for arrow functions embedded
// in expression position.
func (jg *jsGen) inlineStmts(block *ast.BlockStmt) string {
	if block == nil {
		return ""
	}
	sub := &writer{}
	jg.emitBlockBody(sub, block)
	lines := strings.Split(strings.TrimRight(sub.String(), "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, " ")
}

func (jg *jsGen) templateLit(e *ast.TemplateLit) string {
	var sb strings.Builder
	sb.WriteByte('`')
	for _, part := range e.Parts {
		if part.X != nil {
			sb.WriteString("${")
			sb.WriteString(jg.expr(part.X))
			sb.WriteString("}")
			continue
		}
		sb.WriteString(escapeTemplateText(part.Text))
	}
	sb.WriteByte('`')
	return sb.String()
}

func escapeTemplateText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "`", "\\`")
	text = strings.ReplaceAll(text, "${", "\\${")
	return text
}

// objectKey emits a bare key when it is a valid identifier, a quoted one
// otherwise.
func objectKey(key string) string {
	if isJSIdent(key) {
		return key
	}
	return strconv.Quote(key)
}

func isJSIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		letter := c == '_' || c == '$' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if i == 0 && !letter {
			return false
		}
		if !letter && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
