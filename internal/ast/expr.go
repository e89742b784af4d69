package ast

import (
	"lumina/internal/source"

	"lumina/internal/token"
)

// BinaryExpr applies an infix operator to two operands.
type BinaryExpr struct {
	Op    token.Kind
	Left  Expr
	Right Expr
	span  source.Span
}

func (e *BinaryExpr) Kind() NodeKind    { return KindBinaryExpr }
func (e *BinaryExpr) Span() source.Span { return e.span }
func (*BinaryExpr) exprNode()           {}

func NewBinaryExpr(op token.Kind, left, right Expr, span source.Span) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right, span: span}
}

// UnaryExpr applies a prefix operator (! or -) to one operand.
type UnaryExpr struct {
	Op   token.Kind
	X    Expr
	span source.Span
}

func (e *UnaryExpr) Kind() NodeKind    { return KindUnaryExpr }
func (e *UnaryExpr) Span() source.Span { return e.span }
func (*UnaryExpr) exprNode()           {}

func NewUnaryExpr(op token.Kind, x Expr, span source.Span) *UnaryExpr {
	return &UnaryExpr{Op: op, X: x, span: span}
}

// CallExpr invokes a callee with ordered arguments.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	span   source.Span
}

func (e *CallExpr) Kind() NodeKind    { return KindCallExpr }
func (e *CallExpr) Span() source.Span { return e.span }
func (*CallExpr) exprNode()           {}

func NewCallExpr(callee Expr, args []Expr, span source.Span) *CallExpr {
	return &CallExpr{Callee: callee, Args: args, span: span}
}

// MemberExpr accesses a property (obj.name) or a computed index (obj[idx]).
// Exactly one of Property / Index is set.
type MemberExpr struct {
	Object   Expr
	Property string
	Index    Expr
	span     source.Span
}

func (e *MemberExpr) Kind() NodeKind    { return KindMemberExpr }
func (e *MemberExpr) Span() source.Span { return e.span }
func (*MemberExpr) exprNode()           {}

func NewMemberExpr(object Expr, property string, index Expr, span source.Span) *MemberExpr {
	return &MemberExpr{Object: object, Property: property, Index: index, span: span}
}

// Computed reports whether the access is a computed index.
func (e *MemberExpr) Computed() bool { return e.Index != nil }

// AssignExpr assigns Value to Target. Target validity is not enforced by the
// grammar; the checker reports literal targets.
type AssignExpr struct {
	Target Expr
	Value  Expr
	span   source.Span
}

func (e *AssignExpr) Kind() NodeKind    { return KindAssignExpr }
func (e *AssignExpr) Span() source.Span { return e.span }
func (*AssignExpr) exprNode()           {}

func NewAssignExpr(target, value Expr, span source.Span) *AssignExpr {
	return &AssignExpr{Target: target, Value: value, span: span}
}

// ArrowFunction is (params) => expr-or-block. Exactly one of Body / ExprBody
// is set.
type ArrowFunction struct {
	Params   []Param
	Body     *BlockStmt
	ExprBody Expr
	span     source.Span
}

func (e *ArrowFunction) Kind() NodeKind    { return KindArrowFunction }
func (e *ArrowFunction) Span() source.Span { return e.span }
func (*ArrowFunction) exprNode()           {}

func NewArrowFunction(params []Param, body *BlockStmt, exprBody Expr, span source.Span) *ArrowFunction {
	return &ArrowFunction{Params: params, Body: body, ExprBody: exprBody, span: span}
}

// ArrayLit is an ordered element list.
type ArrayLit struct {
	Elements []Expr
	span     source.Span
}

func (e *ArrayLit) Kind() NodeKind    { return KindArrayLit }
func (e *ArrayLit) Span() source.Span { return e.span }
func (*ArrayLit) exprNode()           {}

func NewArrayLit(elements []Expr, span source.Span) *ArrayLit {
	return &ArrayLit{Elements: elements, span: span}
}

// ObjectField is one ordered key/value pair of an object literal.
type ObjectField struct {
	Key   string
	Value Expr
}

// ObjectLit is an ordered field list.
type ObjectLit struct {
	Fields []ObjectField
	span   source.Span
}

func (e *ObjectLit) Kind() NodeKind    { return KindObjectLit }
func (e *ObjectLit) Span() source.Span { return e.span }
func (*ObjectLit) exprNode()           {}

func NewObjectLit(fields []ObjectField, span source.Span) *ObjectLit {
	return &ObjectLit{Fields: fields, span: span}
}

// Ident is a name reference.
type Ident struct {
	Name string
	span source.Span
}

func (e *Ident) Kind() NodeKind    { return KindIdent }
func (e *Ident) Span() source.Span { return e.span }
func (*Ident) exprNode()           {}

func NewIdent(name string, span source.Span) *Ident {
	return &Ident{Name: name, span: span}
}

// NumberLit is a decimal literal; Value keeps the source spelling.
type NumberLit struct {
	Value string
	span  source.Span
}

func (e *NumberLit) Kind() NodeKind    { return KindNumberLit }
func (e *NumberLit) Span() source.Span { return e.span }
func (*NumberLit) exprNode()           {}

func NewNumberLit(value string, span source.Span) *NumberLit {
	return &NumberLit{Value: value, span: span}
}

// StringLit is a string literal; Value is the decoded text.
type StringLit struct {
	Value string
	span  source.Span
}

func (e *StringLit) Kind() NodeKind    { return KindStringLit }
func (e *StringLit) Span() source.Span { return e.span }
func (*StringLit) exprNode()           {}

func NewStringLit(value string, span source.Span) *StringLit {
	return &StringLit{Value: value, span: span}
}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
	span  source.Span
}

func (e *BoolLit) Kind() NodeKind    { return KindBoolLit }
func (e *BoolLit) Span() source.Span { return e.span }
func (*BoolLit) exprNode()           {}

func NewBoolLit(value bool, span source.Span) *BoolLit {
	return &BoolLit{Value: value, span: span}
}

// NullLit is the null literal.
type NullLit struct {
	span source.Span
}

func (e *NullLit) Kind() NodeKind    { return KindNullLit }
func (e *NullLit) Span() source.Span { return e.span }
func (*NullLit) exprNode()           {}

func NewNullLit(span source.Span) *NullLit {
	return &NullLit{span: span}
}

// TemplatePart is one fragment of a template literal: either literal Text or
// an embedded expression, never both.
type TemplatePart struct {
	Text string
	X    Expr
}

// TemplateLit is an ordered interleaving of text fragments and embedded
// expressions from a back-quoted string.
type TemplateLit struct {
	Parts []TemplatePart
	span  source.Span
}

func (e *TemplateLit) Kind() NodeKind    { return KindTemplateLit }
func (e *TemplateLit) Span() source.Span { return e.span }
func (*TemplateLit) exprNode()           {}

func NewTemplateLit(parts []TemplatePart, span source.Span) *TemplateLit {
	return &TemplateLit{Parts: parts, span: span}
}

// ConditionalExpr is cond ? then : else.
type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
	span source.Span
}

func (e *ConditionalExpr) Kind() NodeKind    { return KindConditionalExpr }
func (e *ConditionalExpr) Span() source.Span { return e.span }
func (*ConditionalExpr) exprNode()           {}

func NewConditionalExpr(cond, then, els Expr, span source.Span) *ConditionalExpr {
	return &ConditionalExpr{Cond: cond, Then: then, Else: els, span: span}
}

// PipeExpr is left |> right: the left value fed to the right callable.
type PipeExpr struct {
	Left  Expr
	Right Expr
	span  source.Span
}

func (e *PipeExpr) Kind() NodeKind    { return KindPipeExpr }
func (e *PipeExpr) Span() source.Span { return e.span }
func (*PipeExpr) exprNode()           {}

func NewPipeExpr(left, right Expr, span source.Span) *PipeExpr {
	return &PipeExpr{Left: left, Right: right, span: span}
}
