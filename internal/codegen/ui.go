package codegen

import (
	"fmt"
	"strconv"

	"lumina/internal/ast"
)

// emitUINode lowers one UI child into imperative DOM construction appended
// to parent. Element locals are numbered per render closure so repeated
// compilation stays deterministic.
func (jg *jsGen) emitUINode(w *writer, parent string, node ast.Node) {
	switch n := node.(type) {
	case *ast.UIText:
		w.linef("%s.appendChild(document.createTextNode(%s));", parent, strconv.Quote(n.Text))
	case *ast.UIExpr:
		w.linef("%s.appendChild(document.createTextNode(String(%s)));", parent, jg.expr(n.X))
	case *ast.UIElement:
		jg.emitElement(w, parent, n)
	case *ast.ComponentInstance:
		w.linef("%s.appendChild(%s(%s));", parent, n.Name, jg.instanceProps(n))
	case *ast.IfStmt:
		jg.emitUIIf(w, parent, n)
	case *ast.ForStmt:
		w.linef("for (const %s of %s) {", n.Var, jg.expr(n.Iterable))
		w.indent()
		jg.emitUIBlock(w, parent, n.Body)
		w.outdent()
		w.line("}")
	default:
		w.linef("/* unsupported node: %s */", node.Kind())
	}
}

func (jg *jsGen) emitElement(w *writer, parent string, n *ast.UIElement) {
	v := fmt.Sprintf("__el%d", jg.tmp)
	jg.tmp++
	w.linef("const %s = document.createElement(%s);", v, strconv.Quote(n.Tag))

	for _, attr := range n.Attrs {
		switch {
		case attr.Event:
			w.linef("%s.addEventListener(%s, %s);", v, strconv.Quote(attr.Name), jg.expr(attr.Value))
		case attr.Value == nil:
			// Bare attribute, boolean convention.
			w.linef("%s.setAttribute(%s, \"\");", v, strconv.Quote(attr.Name))
		case attr.Name == "class":
			w.linef("%s.className = %s;", v, jg.expr(attr.Value))
		case attr.Name == "style":
			if obj, ok := attr.Value.(*ast.ObjectLit); ok {
				w.linef("Object.assign(%s.style, %s);", v, jg.styleObject(obj))
			} else {
				w.linef("%s.setAttribute(\"style\", %s);", v, jg.expr(attr.Value))
			}
		default:
			w.linef("%s.setAttribute(%s, %s);", v, strconv.Quote(attr.Name), jg.expr(attr.Value))
		}
	}

	for _, child := range n.Children {
		jg.emitUINode(w, v, child)
	}
	w.linef("%s.appendChild(%s);", parent, v)
}

// instanceProps builds the single object-literal argument of a component
// call. Event props keep their bare key; listener hookup is the component's
// concern.
func (jg *jsGen) instanceProps(n *ast.ComponentInstance) string {
	if len(n.Props) == 0 {
		return "{}"
	}
	out := "{ "
	for i, prop := range n.Props {
		if i > 0 {
			out += ", "
		}
		out += objectKey(prop.Name) + ": " + jg.expr(prop.Value)
	}
	return out + " }"
}

// styleObject lowers an inline style object; numeric values get the pixel
// suffix at compile time.
func (jg *jsGen) styleObject(obj *ast.ObjectLit) string {
	out := "{ "
	for i, f := range obj.Fields {
		if i > 0 {
			out += ", "
		}
		value := jg.expr(f.Value)
		if _, ok := f.Value.(*ast.NumberLit); ok {
			value = strconv.Quote(f.Value.(*ast.NumberLit).Value + "px")
		}
		out += objectKey(f.Key) + ": " + value
	}
	return out + " }"
}

func (jg *jsGen) emitUIIf(w *writer, parent string, n *ast.IfStmt) {
	w.linef("if (%s) {", jg.expr(n.Cond))
	w.indent()
	jg.emitUIBlock(w, parent, n.Consequent)
	w.outdent()
	switch alt := n.Alternate.(type) {
	case nil:
		w.line("}")
	case *ast.IfStmt:
		w.line("} else {")
		w.indent()
		jg.emitUIIf(w, parent, alt)
		w.outdent()
		w.line("}")
	case *ast.BlockStmt:
		w.line("} else {")
		w.indent()
		jg.emitUIBlock(w, parent, alt)
		w.outdent()
		w.line("}")
	default:
		w.line("}")
	}
}

// emitUIBlock lowers a block in UI position: UI children append to parent,
// anything else is an ordinary statement.
func (jg *jsGen) emitUIBlock(w *writer, parent string, block *ast.BlockStmt) {
	if block == nil {
		return
	}
	for _, node := range block.Body {
		switch node.(type) {
		case *ast.UIElement, *ast.ComponentInstance, *ast.UIText, *ast.UIExpr, *ast.IfStmt, *ast.ForStmt:
			jg.emitUINode(w, parent, node)
		default:
			jg.emitStmt(w, node)
		}
	}
}
