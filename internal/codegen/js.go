package codegen

import (
	"lumina/internal/ast"
)

// jsGen lowers one lexical region (a component body or the top level).
// states holds the reactive binding names of the enclosing component so
// identifier references can be rewritten to go through the property
// descriptors; tmp numbers the element locals inside a render closure.
type jsGen struct {
	g      *Generator
	states map[string]bool
	tmp    int
}

func (g *Generator) generateJS(program *ast.Program) string {
	w := &writer{}
	top := &jsGen{g: g, states: map[string]bool{}}

	first := true
	for _, node := range program.Body {
		if style, ok := node.(*ast.StyleDecl); ok {
			g.styles = append(g.styles, style)
			continue
		}
		if !first {
			w.blank()
		}
		first = false
		g.emitTopLevel(w, top, node)
	}

	if len(g.exports) > 0 {
		w.blank()
		w.line("globalThis.__lumina = globalThis.__lumina || {};")
		for _, name := range g.exports {
			w.linef("globalThis.__lumina.%s = %s;", name, name)
		}
	}
	return w.String()
}

func (g *Generator) emitTopLevel(w *writer, top *jsGen, node ast.Node) {
	switch n := node.(type) {
	case *ast.ImportDecl:
		// Specifiers are unresolved; they read from the shared namespace
		// the exporting script publishes onto.
		if len(n.Specifiers) > 0 {
			w.linef("const { %s } = globalThis.__lumina || {};", joinNames(n.Specifiers))
		}
	case *ast.ExportDecl:
		if n.Decl != nil {
			g.emitTopLevel(w, top, n.Decl)
			if name, ok := declName(n.Decl); ok {
				g.exports = append(g.exports, name)
			}
			return
		}
		g.exports = append(g.exports, n.Specifiers...)
	case *ast.ComponentDecl:
		g.emitComponent(w, n)
	case *ast.FunctionDecl:
		top.emitFunction(w, n)
	case *ast.VariableDecl:
		top.emitVariable(w, n)
	default:
		top.emitStmt(w, node)
	}
}

func declName(d ast.Decl) (string, bool) {
	switch n := d.(type) {
	case *ast.ComponentDecl:
		return n.Name, true
	case *ast.FunctionDecl:
		return n.Name, true
	case *ast.VariableDecl:
		return n.Name, true
	}
	return "", false
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// emitComponent lowers one component declaration to a function that builds
// and returns a root container. State writes re-invoke the render closure,
// which clears and rebuilds the whole subtree; effects run exactly once,
// after the first render.
func (g *Generator) emitComponent(w *writer, d *ast.ComponentDecl) {
	jg := &jsGen{g: g, states: map[string]bool{}}
	for _, member := range d.Body {
		if st, ok := member.(*ast.StateDecl); ok {
			jg.states[st.Name] = true
		}
	}

	w.linef("function %s(props) {", d.Name)
	w.indent()
	w.line("props = props || {};")
	w.line("const __root = document.createElement(\"div\");")
	w.line("const __state = {};")

	for _, p := range d.Params {
		fallback := "undefined"
		if p.Default != nil {
			fallback = jg.expr(p.Default)
		}
		w.linef("let %s = props.%s !== undefined ? props.%s : %s;", p.Name, p.Name, p.Name, fallback)
	}

	var uiRoots []ast.Node
	var effects []*ast.EffectDecl
	var setupStmts []ast.Node

	for _, member := range d.Body {
		switch n := member.(type) {
		case *ast.StateDecl:
			init := "undefined"
			if n.Init != nil {
				init = jg.expr(n.Init)
			}
			w.linef("let %s = %s;", n.Name, init)
			w.linef("Object.defineProperty(__state, \"%s\", {", n.Name)
			w.indent()
			w.linef("get() { return %s; },", n.Name)
			w.linef("set(v) { %s = v; __render(); },", n.Name)
			w.outdent()
			w.line("});")
		case *ast.EffectDecl:
			effects = append(effects, n)
		case *ast.StyleDecl:
			g.styles = append(g.styles, n)
			w.linef("__root.className = %q;", "lumina-"+styleName(n))
		case *ast.FunctionDecl:
			jg.emitFunction(w, n)
		case *ast.VariableDecl:
			jg.emitVariable(w, n)
		case *ast.UIElement, *ast.ComponentInstance, *ast.UIText, *ast.UIExpr:
			uiRoots = append(uiRoots, member)
		default:
			// Plain statements may assign state, and the state setter
			// calls __render, so they must not run before it is defined.
			setupStmts = append(setupStmts, member)
		}
	}

	w.line("const __render = () => {")
	w.indent()
	w.line("__root.innerHTML = \"\";")
	jg.tmp = 0
	for _, root := range uiRoots {
		jg.emitUINode(w, "__root", root)
	}
	w.outdent()
	w.line("};")
	for _, stmt := range setupStmts {
		jg.emitStmt(w, stmt)
	}
	w.line("__render();")

	for _, effect := range effects {
		w.line("(() => {")
		w.indent()
		jg.emitBlockBody(w, effect.Body)
		w.outdent()
		w.line("})();")
	}

	w.line("return __root;")
	w.outdent()
	w.line("}")
}

func styleName(d *ast.StyleDecl) string {
	if d.Name == "" {
		return "default"
	}
	return d.Name
}

func (jg *jsGen) emitFunction(w *writer, d *ast.FunctionDecl) {
	w.linef("function %s(%s) {", d.Name, jg.paramList(d.Params))
	w.indent()
	jg.emitBlockBody(w, d.Body)
	w.outdent()
	w.line("}")
}

func (jg *jsGen) paramList(params []ast.Param) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p.Name
		if p.Default != nil {
			out += " = " + jg.expr(p.Default)
		}
	}
	return out
}

func (jg *jsGen) emitVariable(w *writer, d *ast.VariableDecl) {
	kw := "const"
	if d.Mutable {
		kw = "let"
	}
	init := "undefined"
	if d.Init != nil {
		init = jg.expr(d.Init)
	}
	w.linef("%s %s = %s;", kw, d.Name, init)
}

func (jg *jsGen) emitBlockBody(w *writer, block *ast.BlockStmt) {
	if block == nil {
		return
	}
	for _, node := range block.Body {
		jg.emitStmt(w, node)
	}
}

func (jg *jsGen) emitStmt(w *writer, node ast.Node) {
	switch n := node.(type) {
	case *ast.VariableDecl:
		jg.emitVariable(w, n)
	case *ast.FunctionDecl:
		jg.emitFunction(w, n)
	case *ast.ReturnStmt:
		if n.Value == nil {
			w.line("return;")
			return
		}
		w.linef("return %s;", jg.expr(n.Value))
	case *ast.IfStmt:
		jg.emitIf(w, n, "if")
	case *ast.ForStmt:
		w.linef("for (const %s of %s) {", n.Var, jg.expr(n.Iterable))
		w.indent()
		jg.emitBlockBody(w, n.Body)
		w.outdent()
		w.line("}")
	case *ast.BlockStmt:
		w.line("{")
		w.indent()
		jg.emitBlockBody(w, n)
		w.outdent()
		w.line("}")
	case *ast.ExprStmt:
		w.linef("%s;", jg.expr(n.X))
	default:
		w.linef("/* unsupported node: %s */", node.Kind())
	}
}

func (jg *jsGen) emitIf(w *writer, n *ast.IfStmt, head string) {
	w.linef("%s (%s) {", head, jg.expr(n.Cond))
	w.indent()
	jg.emitBlockBody(w, n.Consequent)
	w.outdent()
	switch alt := n.Alternate.(type) {
	case nil:
		w.line("}")
	case *ast.IfStmt:
		w.line("} else {")
		// An else-if chain re-enters emitIf inside its own braces so the
		// indentation stays regular.
		w.indent()
		jg.emitIf(w, alt, "if")
		w.outdent()
		w.line("}")
	case *ast.BlockStmt:
		w.line("} else {")
		w.indent()
		jg.emitBlockBody(w, alt)
		w.outdent()
		w.line("}")
	default:
		w.line("}")
	}
}
