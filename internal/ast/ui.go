package ast

import (
	"lumina/internal/source"
)

// Attribute is one attribute of a UI element. Value is nil for bare
// boolean-style attributes (<input disabled>). Event reports whether the
// attribute was written with the @ sigil (@click).
type Attribute struct {
	Name  string
	Value Expr
	Event bool
}

// UIElement is a lower-case-tagged DOM element.
type UIElement struct {
	Tag         string
	Attrs       []Attribute
	Children    []Node
	SelfClosing bool
	span        source.Span
}

func (n *UIElement) Kind() NodeKind    { return KindUIElement }
func (n *UIElement) Span() source.Span { return n.span }
func (*UIElement) uiNode()             {}

func NewUIElement(tag string, attrs []Attribute, children []Node, selfClosing bool, span source.Span) *UIElement {
	return &UIElement{Tag: tag, Attrs: attrs, Children: children, SelfClosing: selfClosing, span: span}
}

// UIText is a literal text run between elements.
type UIText struct {
	Text string
	span source.Span
}

func (n *UIText) Kind() NodeKind    { return KindUIText }
func (n *UIText) Span() source.Span { return n.span }
func (*UIText) uiNode()             {}

func NewUIText(text string, span source.Span) *UIText {
	return &UIText{Text: text, span: span}
}

// UIExpr is an embedded expression stringified at render time.
type UIExpr struct {
	X    Expr
	span source.Span
}

func (n *UIExpr) Kind() NodeKind    { return KindUIExpr }
func (n *UIExpr) Span() source.Span { return n.span }
func (*UIExpr) uiNode()             {}

func NewUIExpr(x Expr, span source.Span) *UIExpr {
	return &UIExpr{X: x, span: span}
}

// Prop is one explicit name=value prop of a component instance.
type Prop struct {
	Name  string
	Value Expr
	Event bool
}

// ComponentInstance is an upper-case-tagged reference to a component. The
// upper-case-first-letter rule is a lexical convention decided once at parse
// time; it is never revisited even if no such component exists.
type ComponentInstance struct {
	Name        string
	Props       []Prop
	Children    []Node
	SelfClosing bool
	span        source.Span
}

func (n *ComponentInstance) Kind() NodeKind    { return KindComponentInstance }
func (n *ComponentInstance) Span() source.Span { return n.span }
func (*ComponentInstance) uiNode()             {}

func NewComponentInstance(name string, props []Prop, children []Node, selfClosing bool, span source.Span) *ComponentInstance {
	return &ComponentInstance{Name: name, Props: props, Children: children, SelfClosing: selfClosing, span: span}
}
