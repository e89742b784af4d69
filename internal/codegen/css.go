package codegen

import (
	"strings"

	"lumina/internal/ast"
)

// generateCSS emits one rule block per collected style declaration, in
// discovery order. Camel-cased property keys become kebab-case; bare
// numeric values get a pixel unit.
func (g *Generator) generateCSS() string {
	var sb strings.Builder
	for i, style := range g.styles {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(".lumina-")
		sb.WriteString(styleName(style))
		sb.WriteString(" {\n")
		for _, prop := range style.Props {
			sb.WriteString("  ")
			sb.WriteString(kebabCase(prop.Key))
			sb.WriteString(": ")
			sb.WriteString(g.cssValue(prop.Value))
			sb.WriteString(";\n")
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

func (g *Generator) cssValue(x ast.Expr) string {
	switch e := x.(type) {
	case *ast.NumberLit:
		return e.Value + "px"
	case *ast.StringLit:
		return e.Value
	case *ast.Ident:
		return e.Name
	case *ast.BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	default:
		jg := &jsGen{g: g, states: map[string]bool{}}
		return jg.expr(x)
	}
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
