// Package ast defines the Lumina syntax tree: a closed set of tagged node
// variants produced once by the parser and read by any number of independent
// passes (checker, codegen, SSR). No pass mutates a node after construction.
package ast

import (
	"lumina/internal/source"
)

// NodeKind discriminates the closed set of node variants. Every variant has
// exactly one kind; the kind uniquely determines the node's shape.
type NodeKind uint8

const (
	KindProgram NodeKind = iota

	// Declarations
	KindComponentDecl
	KindFunctionDecl
	KindVariableDecl
	KindStateDecl
	KindEffectDecl
	KindStyleDecl
	KindImportDecl
	KindExportDecl

	// Statements
	KindReturnStmt
	KindIfStmt
	KindForStmt
	KindExprStmt
	KindBlockStmt

	// UI nodes
	KindUIElement
	KindUIText
	KindUIExpr
	KindComponentInstance

	// Expressions
	KindBinaryExpr
	KindUnaryExpr
	KindCallExpr
	KindMemberExpr
	KindAssignExpr
	KindArrowFunction
	KindArrayLit
	KindObjectLit
	KindIdent
	KindNumberLit
	KindStringLit
	KindBoolLit
	KindNullLit
	KindTemplateLit
	KindConditionalExpr
	KindPipeExpr
)

var kindNames = [...]string{
	KindProgram:           "Program",
	KindComponentDecl:     "ComponentDecl",
	KindFunctionDecl:      "FunctionDecl",
	KindVariableDecl:      "VariableDecl",
	KindStateDecl:         "StateDecl",
	KindEffectDecl:        "EffectDecl",
	KindStyleDecl:         "StyleDecl",
	KindImportDecl:        "ImportDecl",
	KindExportDecl:        "ExportDecl",
	KindReturnStmt:        "ReturnStmt",
	KindIfStmt:            "IfStmt",
	KindForStmt:           "ForStmt",
	KindExprStmt:          "ExprStmt",
	KindBlockStmt:         "BlockStmt",
	KindUIElement:         "UIElement",
	KindUIText:            "UIText",
	KindUIExpr:            "UIExpr",
	KindComponentInstance: "ComponentInstance",
	KindBinaryExpr:        "BinaryExpr",
	KindUnaryExpr:         "UnaryExpr",
	KindCallExpr:          "CallExpr",
	KindMemberExpr:        "MemberExpr",
	KindAssignExpr:        "AssignExpr",
	KindArrowFunction:     "ArrowFunction",
	KindArrayLit:          "ArrayLit",
	KindObjectLit:         "ObjectLit",
	KindIdent:             "Ident",
	KindNumberLit:         "NumberLit",
	KindStringLit:         "StringLit",
	KindBoolLit:           "BoolLit",
	KindNullLit:           "NullLit",
	KindTemplateLit:       "TemplateLit",
	KindConditionalExpr:   "ConditionalExpr",
	KindPipeExpr:          "PipeExpr",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Node is implemented by every AST variant.
type Node interface {
	Kind() NodeKind
	Span() source.Span
}

// Decl marks declaration nodes.
type Decl interface {
	Node
	declNode()
}

// Stmt marks statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr marks expression nodes.
type Expr interface {
	Node
	exprNode()
}

// UINode marks nodes that may appear as UI children (elements, text runs,
// embedded expressions, component instances). If and for statements may also
// appear as UI children; they are dispatched by kind, not by this marker.
type UINode interface {
	Node
	uiNode()
}

// Program is the single root of every parse: an ordered list of top-level
// declarations and statements.
type Program struct {
	Body []Node
	span source.Span
}

func (p *Program) Kind() NodeKind    { return KindProgram }
func (p *Program) Span() source.Span { return p.span }

func NewProgram(body []Node, span source.Span) *Program {
	return &Program{Body: body, span: span}
}
