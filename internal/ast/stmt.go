package ast

import (
	"lumina/internal/source"
)

// ReturnStmt returns an optional value from a function.
type ReturnStmt struct {
	Value Expr // nil for bare return
	span  source.Span
}

func (s *ReturnStmt) Kind() NodeKind    { return KindReturnStmt }
func (s *ReturnStmt) Span() source.Span { return s.span }
func (*ReturnStmt) stmtNode()           {}

func NewReturnStmt(value Expr, span source.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

// IfStmt is a condition with a consequent block and an optional alternate.
// Alternate is either *BlockStmt (else) or *IfStmt (else-if chain), nil when
// absent.
type IfStmt struct {
	Cond       Expr
	Consequent *BlockStmt
	Alternate  Stmt
	span       source.Span
}

func (s *IfStmt) Kind() NodeKind    { return KindIfStmt }
func (s *IfStmt) Span() source.Span { return s.span }
func (*IfStmt) stmtNode()           {}

func NewIfStmt(cond Expr, consequent *BlockStmt, alternate Stmt, span source.Span) *IfStmt {
	return &IfStmt{Cond: cond, Consequent: consequent, Alternate: alternate, span: span}
}

// ForStmt iterates a loop variable over an iterable expression.
type ForStmt struct {
	Var      string
	Iterable Expr
	Body     *BlockStmt
	span     source.Span
}

func (s *ForStmt) Kind() NodeKind    { return KindForStmt }
func (s *ForStmt) Span() source.Span { return s.span }
func (*ForStmt) stmtNode()           {}

func NewForStmt(loopVar string, iterable Expr, body *BlockStmt, span source.Span) *ForStmt {
	return &ForStmt{Var: loopVar, Iterable: iterable, Body: body, span: span}
}

// ExprStmt wraps an expression evaluated for effect.
type ExprStmt struct {
	X    Expr
	span source.Span
}

func (s *ExprStmt) Kind() NodeKind    { return KindExprStmt }
func (s *ExprStmt) Span() source.Span { return s.span }
func (*ExprStmt) stmtNode()           {}

func NewExprStmt(x Expr, span source.Span) *ExprStmt {
	return &ExprStmt{X: x, span: span}
}

// BlockStmt is an ordered list of statements and nested declarations.
type BlockStmt struct {
	Body []Node
	span source.Span
}

func (s *BlockStmt) Kind() NodeKind    { return KindBlockStmt }
func (s *BlockStmt) Span() source.Span { return s.span }
func (*BlockStmt) stmtNode()           {}

func NewBlockStmt(body []Node, span source.Span) *BlockStmt {
	return &BlockStmt{Body: body, span: span}
}
