package ast

import (
	"lumina/internal/source"
)

// Param is one declared parameter of a component or function.
type Param struct {
	Name    string
	Type    string // annotation text, "" when absent
	Default Expr   // nil when absent
}

// ComponentDecl declares a named, parameterized UI-producing component.
type ComponentDecl struct {
	Name   string
	Params []Param
	Body   []Node
	span   source.Span
}

func (d *ComponentDecl) Kind() NodeKind    { return KindComponentDecl }
func (d *ComponentDecl) Span() source.Span { return d.span }
func (*ComponentDecl) declNode()           {}

func NewComponentDecl(name string, params []Param, body []Node, span source.Span) *ComponentDecl {
	return &ComponentDecl{Name: name, Params: params, Body: body, span: span}
}

// FunctionDecl declares a function, top-level or nested in a component.
type FunctionDecl struct {
	Name       string
	Params     []Param
	ReturnType string // annotation text, "" when absent
	Body       *BlockStmt
	span       source.Span
}

func (d *FunctionDecl) Kind() NodeKind    { return KindFunctionDecl }
func (d *FunctionDecl) Span() source.Span { return d.span }
func (*FunctionDecl) declNode()           {}

func NewFunctionDecl(name string, params []Param, returnType string, body *BlockStmt, span source.Span) *FunctionDecl {
	return &FunctionDecl{Name: name, Params: params, ReturnType: returnType, Body: body, span: span}
}

// VariableDecl declares a let (immutable) or var (mutable) binding.
type VariableDecl struct {
	Name    string
	Mutable bool
	Type    string // annotation text, "" when absent
	Init    Expr
	span    source.Span
}

func (d *VariableDecl) Kind() NodeKind    { return KindVariableDecl }
func (d *VariableDecl) Span() source.Span { return d.span }
func (*VariableDecl) declNode()           {}

func NewVariableDecl(name string, mutable bool, typ string, init Expr, span source.Span) *VariableDecl {
	return &VariableDecl{Name: name, Mutable: mutable, Type: typ, Init: init, span: span}
}

// StateDecl declares a reactive binding: writes re-render the owning
// component.
type StateDecl struct {
	Name string
	Type string // annotation text, "" when absent
	Init Expr
	span source.Span
}

func (d *StateDecl) Kind() NodeKind    { return KindStateDecl }
func (d *StateDecl) Span() source.Span { return d.span }
func (*StateDecl) declNode()           {}

func NewStateDecl(name, typ string, init Expr, span source.Span) *StateDecl {
	return &StateDecl{Name: name, Type: typ, Init: init, span: span}
}

// EffectDecl declares a side effect run on first render. Deps is the parsed
// dependency list; an empty list means "run once". Codegen never consults
// Deps to gate re-runs.
type EffectDecl struct {
	Deps []string
	Body *BlockStmt
	span source.Span
}

func (d *EffectDecl) Kind() NodeKind    { return KindEffectDecl }
func (d *EffectDecl) Span() source.Span { return d.span }
func (*EffectDecl) declNode()           {}

func NewEffectDecl(deps []string, body *BlockStmt, span source.Span) *EffectDecl {
	return &EffectDecl{Deps: deps, Body: body, span: span}
}

// StyleProp is one key/value pair of a style declaration, in source order.
type StyleProp struct {
	Key   string
	Value Expr
}

// StyleDecl declares a style block; Name may be empty ("default").
type StyleDecl struct {
	Name  string
	Props []StyleProp
	span  source.Span
}

func (d *StyleDecl) Kind() NodeKind    { return KindStyleDecl }
func (d *StyleDecl) Span() source.Span { return d.span }
func (*StyleDecl) declNode()           {}

func NewStyleDecl(name string, props []StyleProp, span source.Span) *StyleDecl {
	return &StyleDecl{Name: name, Props: props, span: span}
}

// ImportDecl records specifier names and an unresolved source path.
type ImportDecl struct {
	Specifiers []string
	Source     string
	span       source.Span
}

func (d *ImportDecl) Kind() NodeKind    { return KindImportDecl }
func (d *ImportDecl) Span() source.Span { return d.span }
func (*ImportDecl) declNode()           {}

func NewImportDecl(specifiers []string, src string, span source.Span) *ImportDecl {
	return &ImportDecl{Specifiers: specifiers, Source: src, span: span}
}

// ExportDecl publishes names. Either Specifiers is non-empty (export { a, b })
// or Decl wraps a declaration (export fn f() {...}).
type ExportDecl struct {
	Specifiers []string
	Decl       Decl
	span       source.Span
}

func (d *ExportDecl) Kind() NodeKind    { return KindExportDecl }
func (d *ExportDecl) Span() source.Span { return d.span }
func (*ExportDecl) declNode()           {}

func NewExportDecl(specifiers []string, decl Decl, span source.Span) *ExportDecl {
	return &ExportDecl{Specifiers: specifiers, Decl: decl, span: span}
}
