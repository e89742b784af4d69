// Package ssr renders a component to a static HTML string by interpreting
// the AST directly, without going through the code generator or a DOM. It
// evaluates the same expression vocabulary the generator lowers, against
// initial state only: effects do not run and event attributes are dropped.
package ssr

import (
	"fmt"
	"html"
	"strings"

	"lumina/internal/ast"
)

// Render evaluates the named component of program against the given props
// and returns its HTML. Components declared anywhere in the program,
// including export-wrapped ones, are in scope for nested instances.
func Render(program *ast.Program, component string, props map[string]any) (string, error) {
	r := &renderer{components: make(map[string]*ast.ComponentDecl)}
	global := newEnv(nil)

	first := ""
	for _, node := range program.Body {
		decl := node
		if ex, ok := node.(*ast.ExportDecl); ok && ex.Decl != nil {
			decl = ex.Decl
		}
		switch d := decl.(type) {
		case *ast.ComponentDecl:
			if first == "" {
				first = d.Name
			}
			r.components[d.Name] = d
		case *ast.FunctionDecl:
			global.define(d.Name, &funcValue{decl: d, closure: global})
		case *ast.VariableDecl:
			v, err := r.eval(d.Init, global)
			if err != nil {
				return "", err
			}
			global.define(d.Name, v)
		}
	}

	// An empty name renders the first component in source order.
	if component == "" {
		component = first
	}
	target, ok := r.components[component]
	if !ok {
		return "", fmt.Errorf("ssr: unknown component %q", component)
	}
	var sb strings.Builder
	if err := r.renderComponent(&sb, target, props, global); err != nil {
		return "", err
	}
	return sb.String(), nil
}

type renderer struct {
	components map[string]*ast.ComponentDecl
}

func (r *renderer) renderComponent(sb *strings.Builder, d *ast.ComponentDecl, props map[string]any, global *env) error {
	scope := newEnv(global)
	for _, p := range d.Params {
		if v, ok := props[p.Name]; ok {
			scope.define(p.Name, v)
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

	var roots []ast.Node
	for _, member := range d.Body {
		switch n := member.(type) {
		case *ast.StateDecl:
			v, err := r.eval(n.Init, scope)
			if err != nil {
				return err
			}
			scope.define(n.Name, v)
		case *ast.VariableDecl:
			v, err := r.eval(n.Init, scope)
			if err != nil {
				return err
			}
			scope.define(n.Name, v)
		case *ast.FunctionDecl:
			scope.define(n.Name, &funcValue{decl: n, closure: scope})
		case *ast.EffectDecl, *ast.StyleDecl:
			// Effects are browser-side; styles ship in the CSS artifact.
		case *ast.UIElement, *ast.ComponentInstance, *ast.UIText, *ast.UIExpr:
			roots = append(roots, member)
		default:
			if _, _, err := r.execNode(member, scope); err != nil {
				return err
			}
		}
	}

	for _, root := range roots {
		if err := r.renderNode(sb, root, scope); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) renderNode(sb *strings.Builder, node ast.Node, scope *env) error {
	switch n := node.(type) {
	case *ast.UIText:
		sb.WriteString(html.EscapeString(n.Text))
	case *ast.UIExpr:
		v, err := r.eval(n.X, scope)
		if err != nil {
			return err
		}
		sb.WriteString(html.EscapeString(stringify(v)))
	case *ast.UIElement:
		return r.renderElement(sb, n, scope)
	case *ast.ComponentInstance:
		return r.renderInstance(sb, n, scope)
	case *ast.IfStmt:
		return r.renderIf(sb, n, scope)
	case *ast.ForStmt:
		iter, err := r.eval(n.Iterable, scope)
		if err != nil {
			return err
		}
		items, ok := iter.([]any)
		if !ok {
			return fmt.Errorf("ssr: for loop over non-array value %v", iter)
		}
		for _, item := range items {
			body := newEnv(scope)
			body.define(n.Var, item)
			if err := r.renderBlock(sb, n.Body, body); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) renderElement(sb *strings.Builder, n *ast.UIElement, scope *env) error {
	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, attr := range n.Attrs {
		if attr.Event {
			continue
		}
		if attr.Value == nil {
			sb.WriteString(" " + attr.Name + `=""`)
			continue
		}
		v, err := r.eval(attr.Value, scope)
		if err != nil {
			return err
		}
		text := stringify(v)
		if attr.Name == "style" {
			if fields, ok := v.(*objectValue); ok {
				text = inlineStyle(fields)
			}
		}
		sb.WriteString(" " + attr.Name + `="` + html.EscapeString(text) + `"`)
	}
	if n.SelfClosing {
		sb.WriteString("/>")
		return nil
	}
	sb.WriteByte('>')
	for _, child := range n.Children {
		if err := r.renderNode(sb, child, scope); err != nil {
			return err
		}
	}
	sb.WriteString("</" + n.Tag + ">")
	return nil
}

func (r *renderer) renderInstance(sb *strings.Builder, n *ast.ComponentInstance, scope *env) error {
	comp, ok := r.components[n.Name]
	if !ok {
		return fmt.Errorf("ssr: unknown component %q", n.Name)
	}
	props := make(map[string]any, len(n.Props))
	for _, prop := range n.Props {
		if prop.Event {
			continue
		}
		v, err := r.eval(prop.Value, scope)
		if err != nil {
			return err
		}
		props[prop.Name] = v
	}
	return r.renderComponent(sb, comp, props, scope)
}

func (r *renderer) renderIf(sb *strings.Builder, n *ast.IfStmt, scope *env) error {
	cond, err := r.eval(n.Cond, scope)
	if err != nil {
		return err
	}
	if truthy(cond) {
		return r.renderBlock(sb, n.Consequent, newEnv(scope))
	}
	switch alt := n.Alternate.(type) {
	case *ast.IfStmt:
		return r.renderIf(sb, alt, scope)
	case *ast.BlockStmt:
		return r.renderBlock(sb, alt, newEnv(scope))
	}
	return nil
}

func (r *renderer) renderBlock(sb *strings.Builder, block *ast.BlockStmt, scope *env) error {
	if block == nil {
		return nil
	}
	for _, node := range block.Body {
		switch node.(type) {
		case *ast.UIElement, *ast.ComponentInstance, *ast.UIText, *ast.UIExpr, *ast.IfStmt, *ast.ForStmt:
			if err := r.renderNode(sb, node, scope); err != nil {
				return err
			}
		default:
			if _, _, err := r.execNode(node, scope); err != nil {
				return err
			}
		}
	}
	return nil
}

// inlineStyle formats an evaluated style object as an inline CSS string,
// suffixing numeric values with the pixel unit.
func inlineStyle(obj *objectValue) string {
	var sb strings.Builder
	for i, f := range obj.fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(kebabCase(f.key))
		sb.WriteString(": ")
		if num, ok := f.value.(float64); ok {
			sb.WriteString(formatNumber(num) + "px")
		} else {
			sb.WriteString(stringify(f.value))
		}
	}
	return sb.String()
}

func kebabCase(key string) string {
	var sb strings.Builder
	for i, c := range key {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(c - 'A' + 'a')
			continue
		}
		sb.WriteRune(c)
	}
	return sb.String()
}
