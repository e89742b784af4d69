// Package codegen lowers a parsed program into three textual artifacts:
// a JavaScript module, a CSS sheet, and a wrapping HTML document. Generation
// is a pure structural recursion over the tree; all auxiliary state (the
// component and style registries) lives for a single Generate call, so
// independent compilations never share anything.
package codegen

import (
	"fmt"
	"strings"

	"lumina/internal/ast"
)

// Output holds the three generated artifacts.
type Output struct {
	HTML string
	JS   string
	CSS  string
}

// Generator carries the per-invocation registries. Components are recorded
// by name with their ordered parameter names so call sites can be rewritten
// to props-object calls; styles are recorded for CSS emission.
type Generator struct {
	componentParams map[string][]string
	componentOrder  []string
	styles          []*ast.StyleDecl
	exports         []string
}

// Generate compiles one program. Calling it twice on the same tree yields
// byte-identical output.
func Generate(program *ast.Program) Output {
	g := &Generator{componentParams: make(map[string][]string)}
	g.collect(program)

	js := g.generateJS(program)
	css := g.generateCSS()
	html := g.generateHTML(js, css)
	return Output{HTML: html, JS: js, CSS: css}
}

// collect records every top-level component (and export-wrapped component)
// before lowering starts, so instances and call sites may reference
// components declared later in the file.
func (g *Generator) collect(program *ast.Program) {
	for _, node := range program.Body {
		decl := node
		if ex, ok := node.(*ast.ExportDecl); ok && ex.Decl != nil {
			decl = ex.Decl
		}
		if comp, ok := decl.(*ast.ComponentDecl); ok {
			if _, seen := g.componentParams[comp.Name]; !seen {
				g.componentOrder = append(g.componentOrder, comp.Name)
			}
			g.componentParams[comp.Name] = paramNames(comp.Params)
		}
	}
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// firstComponent returns the auto-mount target: the first component in
// declaration order, or "" when the program declares none.
func (g *Generator) firstComponent() string {
	if len(g.componentOrder) == 0 {
		return ""
	}
	return g.componentOrder[0]
}

// writer is a line-oriented emitter with indentation tracking.
type writer struct {
	sb    strings.Builder
	depth int
}

func (w *writer) line(s string) {
	for i := 0; i < w.depth; i++ {
		w.sb.WriteString("  ")
	}
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

func (w *writer) blank() {
	w.sb.WriteByte('\n')
}

func (w *writer) indent()  { w.depth++ }
func (w *writer) outdent() { w.depth-- }

func (w *writer) String() string { return w.sb.String() }
