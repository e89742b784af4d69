package checker

import (
	"lumina/internal/ast"
	"lumina/internal/diag"
)

// checkUINode walks the UI tree. Element tags are never validated against an
// HTML schema; component instances are resolved by name and their props
// checked against the declared parameters.
func (c *Checker) checkUINode(node ast.Node, env *Scope) {
	switch n := node.(type) {
	case *ast.UIText:
		// Nothing to check.
	case *ast.UIExpr:
		c.checkExpr(n.X, env)
	case *ast.UIElement:
		for _, attr := range n.Attrs {
			if attr.Value != nil {
				c.checkExpr(attr.Value, env)
			}
		}
		for _, child := range n.Children {
			c.checkNode(child, env)
		}
	case *ast.ComponentInstance:
		c.checkInstance(n, env)
	}
}

func (c *Checker) checkInstance(n *ast.ComponentInstance, env *Scope) {
	comp, ok := env.Lookup(n.Name)
	if !ok {
		c.errorf(diag.SemUndefinedVariable, n.Span(), "undefined component '%s'", n.Name)
		comp = Any
	}
	for _, prop := range n.Props {
		value := Any
		if prop.Value != nil {
			value = c.checkExpr(prop.Value, env)
		}
		if comp.Kind != KindComponent {
			continue
		}
		declared, found := lookupProp(comp, prop.Name)
		if !found {
			c.errorf(diag.SemUnknownProp, n.Span(), "component '%s' has no prop '%s'", n.Name, prop.Name)
			continue
		}
		if !Compatible(value, declared) {
			c.errorf(diag.SemTypeMismatch, n.Span(),
				"prop '%s': cannot pass %s as %s", prop.Name, value, declared)
		}
	}
	for _, child := range n.Children {
		c.checkNode(child, env)
	}
}

func lookupProp(comp *Type, name string) (*Type, bool) {
	for _, f := range comp.Props {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}
