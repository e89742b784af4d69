// Package checker implements the structural, advisory type checker. It walks
// the AST once signatures are collected, accumulates diagnostics, and never
// mutates or rejects the tree; callers decide whether diagnostics abort the
// build.
package checker

import (
	"strings"
)

// TypeKind is the closed set of type constructors.
type TypeKind uint8

const (
	KindAny TypeKind = iota
	KindVoid
	KindInt
	KindString
	KindBool
	KindNull
	KindArray
	KindObject
	KindFunction
	KindComponent
)

// Field is one named member of an object or component-props type.
type Field struct {
	Name string
	Type *Type
}

// Type describes one Lumina type. Elem is set for arrays, Fields for
// objects, Params/Return for functions, Props for components.
type Type struct {
	Kind   TypeKind
	Elem   *Type
	Fields []Field
	Params []*Type
	Return *Type
	Props  []Field
}

// Shared atoms. These are never mutated.
var (
	Any    = &Type{Kind: KindAny}
	Void   = &Type{Kind: KindVoid}
	Int    = &Type{Kind: KindInt}
	String = &Type{Kind: KindString}
	Bool   = &Type{Kind: KindBool}
	Null   = &Type{Kind: KindNull}
)

// ArrayOf returns an array type with the given element type.
func ArrayOf(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

func (t *Type) String() string {
	switch t.Kind {
	case KindAny:
		return "Any"
	case KindVoid:
		return "Void"
	case KindInt:
		return "Int"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindNull:
		return "Null"
	case KindArray:
		return "Array<" + t.Elem.String() + ">"
	case KindObject:
		var sb strings.Builder
		sb.WriteString("Object{")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			sb.WriteString(f.Type.String())
		}
		sb.WriteString("}")
		return sb.String()
	case KindFunction:
		var sb strings.Builder
		sb.WriteString("Function(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(") -> ")
		sb.WriteString(t.Return.String())
		return sb.String()
	case KindComponent:
		return "Component"
	}
	return "Unknown"
}

// Compatible reports whether an actual type may be used where expected is
// required. Any and Void are universal sorts, compatible with everything in
// both directions; this is a deliberate soundness hole since most
// declarations carry no annotation. Arrays compare element types
// recursively; objects compare by kind only (no structural subtyping), and
// there is no numeric widening and no union type.
func Compatible(actual, expected *Type) bool {
	if actual.Kind == KindAny || expected.Kind == KindAny {
		return true
	}
	if actual.Kind == KindVoid || expected.Kind == KindVoid {
		return true
	}
	if actual.Kind != expected.Kind {
		return false
	}
	if actual.Kind == KindArray {
		return Compatible(actual.Elem, expected.Elem)
	}
	return true
}

// ParseAnnotation maps annotation text to a type. Unknown names map to Any,
// keeping unannotated and foreign code checkable.
func ParseAnnotation(text string) *Type {
	if text == "" {
		return Any
	}
	if inner, ok := arrayInner(text); ok {
		return ArrayOf(ParseAnnotation(inner))
	}
	switch text {
	case "Int":
		return Int
	case "String":
		return String
	case "Bool":
		return Bool
	case "Null":
		return Null
	case "Void":
		return Void
	case "Object":
		return &Type{Kind: KindObject}
	default:
		return Any
	}
}

func arrayInner(text string) (string, bool) {
	if strings.HasPrefix(text, "Array<") && strings.HasSuffix(text, ">") {
		return text[len("Array<") : len(text)-1], true
	}
	return "", false
}
