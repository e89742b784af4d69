package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lumina/internal/ast"
)

// DumpASTTree writes an indented tree view of the program, one node per
// line: the kind tag followed by the salient fields.
func DumpASTTree(w io.Writer, program *ast.Program) error {
	d := &astDumper{w: w}
	d.node(program, 0)
	return d.err
}

// DumpASTJSON writes the program as a JSON document mirroring the node
// structure; every object carries a "type" discriminator.
func DumpASTJSON(w io.Writer, program *ast.Program) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(nodeToJSON(program))
}

type astDumper struct {
	w   io.Writer
	err error
}

func (d *astDumper) printf(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *astDumper) node(n ast.Node, depth int) {
	if n == nil {
		return
	}
	d.printf(depth, "%s%s", n.Kind(), nodeLabel(n))
	for _, child := range children(n) {
		d.node(child, depth+1)
	}
}

// nodeLabel renders the per-kind scalar fields shown next to the kind tag.
func nodeLabel(n ast.Node) string {
	switch x := n.(type) {
	case *ast.ComponentDecl:
		return fmt.Sprintf(" %s(%s)", x.Name, paramLabel(x.Params))
	case *ast.FunctionDecl:
		if x.ReturnType != "" {
			return fmt.Sprintf(" %s(%s): %s", x.Name, paramLabel(x.Params), x.ReturnType)
		}
		return fmt.Sprintf(" %s(%s)", x.Name, paramLabel(x.Params))
	case *ast.VariableDecl:
		kw := "let"
		if x.Mutable {
			kw = "var"
		}
		if x.Type != "" {
			return fmt.Sprintf(" %s %s: %s", kw, x.Name, x.Type)
		}
		return fmt.Sprintf(" %s %s", kw, x.Name)
	case *ast.StateDecl:
		if x.Type != "" {
			return fmt.Sprintf(" %s: %s", x.Name, x.Type)
		}
		return " " + x.Name
	case *ast.EffectDecl:
		if len(x.Deps) > 0 {
			return " (" + strings.Join(x.Deps, ", ") + ")"
		}
		return ""
	case *ast.StyleDecl:
		if x.Name != "" {
			return " " + x.Name
		}
		return " (default)"
	case *ast.ImportDecl:
		return fmt.Sprintf(" {%s} from %q", strings.Join(x.Specifiers, ", "), x.Source)
	case *ast.ExportDecl:
		if len(x.Specifiers) > 0 {
			return " {" + strings.Join(x.Specifiers, ", ") + "}"
		}
		return ""
	case *ast.ForStmt:
		return " " + x.Var
	case *ast.UIElement:
		return " <" + x.Tag + ">"
	case *ast.ComponentInstance:
		return " <" + x.Name + ">"
	case *ast.UIText:
		return fmt.Sprintf(" %q", x.Text)
	case *ast.Ident:
		return " " + x.Name
	case *ast.NumberLit:
		return " " + x.Value
	case *ast.StringLit:
		return fmt.Sprintf(" %q", x.Value)
	case *ast.BoolLit:
		return fmt.Sprintf(" %t", x.Value)
	case *ast.BinaryExpr:
		return " " + x.Op.String()
	case *ast.UnaryExpr:
		return " " + x.Op.String()
	case *ast.MemberExpr:
		if !x.Computed() {
			return " ." + x.Property
		}
		return ""
	}
	return ""
}

func paramLabel(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
		if p.Type != "" {
			parts[i] += ": " + p.Type
		}
	}
	return strings.Join(parts, ", ")
}

// children returns the ordered child nodes of n for tree traversal.
func children(n ast.Node) []ast.Node {
	switch x := n.(type) {
	case *ast.Program:
		return x.Body
	case *ast.ComponentDecl:
		out := make([]ast.Node, 0, len(x.Body)+len(x.Params))
		for _, p := range x.Params {
			if p.Default != nil {
				out = append(out, p.Default)
			}
		}
		return append(out, x.Body...)
	case *ast.FunctionDecl:
		return blockChildren(x.Body)
	case *ast.VariableDecl:
		return exprChildren(x.Init)
	case *ast.StateDecl:
		return exprChildren(x.Init)
	case *ast.EffectDecl:
		return blockChildren(x.Body)
	case *ast.StyleDecl:
		out := make([]ast.Node, 0, len(x.Props))
		for _, p := range x.Props {
			out = append(out, p.Value)
		}
		return out
	case *ast.ExportDecl:
		if x.Decl != nil {
			return []ast.Node{x.Decl}
		}
	case *ast.ReturnStmt:
		return exprChildren(x.Value)
	case *ast.IfStmt:
		out := []ast.Node{x.Cond, x.Consequent}
		if x.Alternate != nil {
			out = append(out, x.Alternate)
		}
		return out
	case *ast.ForStmt:
		return []ast.Node{x.Iterable, x.Body}
	case *ast.BlockStmt:
		return x.Body
	case *ast.ExprStmt:
		return []ast.Node{x.X}
	case *ast.UIElement:
		out := make([]ast.Node, 0, len(x.Attrs)+len(x.Children))
		for _, a := range x.Attrs {
			if a.Value != nil {
				out = append(out, a.Value)
			}
		}
		return append(out, x.Children...)
	case *ast.ComponentInstance:
		out := make([]ast.Node, 0, len(x.Props)+len(x.Children))
		for _, p := range x.Props {
			out = append(out, p.Value)
		}
		return append(out, x.Children...)
	case *ast.UIExpr:
		return []ast.Node{x.X}
	case *ast.BinaryExpr:
		return []ast.Node{x.Left, x.Right}
	case *ast.UnaryExpr:
		return []ast.Node{x.X}
	case *ast.CallExpr:
		out := []ast.Node{x.Callee}
		for _, a := range x.Args {
			out = append(out, a)
		}
		return out
	case *ast.MemberExpr:
		if x.Computed() {
			return []ast.Node{x.Object, x.Index}
		}
		return []ast.Node{x.Object}
	case *ast.AssignExpr:
		return []ast.Node{x.Target, x.Value}
	case *ast.ArrowFunction:
		if x.ExprBody != nil {
			return []ast.Node{x.ExprBody}
		}
		return []ast.Node{x.Body}
	case *ast.ArrayLit:
		out := make([]ast.Node, len(x.Elements))
		for i, el := range x.Elements {
			out[i] = el
		}
		return out
	case *ast.ObjectLit:
		out := make([]ast.Node, len(x.Fields))
		for i, f := range x.Fields {
			out[i] = f.Value
		}
		return out
	case *ast.TemplateLit:
		var out []ast.Node
		for _, p := range x.Parts {
			if p.X != nil {
				out = append(out, p.X)
			}
		}
		return out
	case *ast.ConditionalExpr:
		return []ast.Node{x.Cond, x.Then, x.Else}
	case *ast.PipeExpr:
		return []ast.Node{x.Left, x.Right}
	}
	return nil
}

func blockChildren(b *ast.BlockStmt) []ast.Node {
	if b == nil {
		return nil
	}
	return b.Body
}

func exprChildren(x ast.Expr) []ast.Node {
	if x == nil {
		return nil
	}
	return []ast.Node{x}
}

// nodeToJSON builds the generic JSON value for one node.
func nodeToJSON(n ast.Node) any {
	if n == nil {
		return nil
	}
	obj := map[string]any{"type": n.Kind().String()}
	switch x := n.(type) {
	case *ast.Program:
		obj["body"] = nodesToJSON(x.Body)
	case *ast.ComponentDecl:
		obj["name"] = x.Name
		obj["params"] = paramsToJSON(x.Params)
		obj["body"] = nodesToJSON(x.Body)
	case *ast.FunctionDecl:
		obj["name"] = x.Name
		obj["params"] = paramsToJSON(x.Params)
		if x.ReturnType != "" {
			obj["returnType"] = x.ReturnType
		}
		obj["body"] = nodeToJSON(x.Body)
	case *ast.VariableDecl:
		obj["name"] = x.Name
		obj["mutable"] = x.Mutable
		if x.Type != "" {
			obj["varType"] = x.Type
		}
		obj["init"] = nodeToJSON(x.Init)
	case *ast.StateDecl:
		obj["name"] = x.Name
		if x.Type != "" {
			obj["varType"] = x.Type
		}
		obj["init"] = nodeToJSON(x.Init)
	case *ast.EffectDecl:
		obj["deps"] = x.Deps
		obj["body"] = nodeToJSON(x.Body)
	case *ast.StyleDecl:
		obj["name"] = x.Name
		props := make([]any, len(x.Props))
		for i, p := range x.Props {
			props[i] = map[string]any{"key": p.Key, "value": nodeToJSON(p.Value)}
		}
		obj["props"] = props
	case *ast.ImportDecl:
		obj["specifiers"] = x.Specifiers
		obj["source"] = x.Source
	case *ast.ExportDecl:
		obj["specifiers"] = x.Specifiers
		if x.Decl != nil {
			obj["decl"] = nodeToJSON(x.Decl)
		}
	case *ast.ReturnStmt:
		obj["value"] = nodeToJSON(x.Value)
	case *ast.IfStmt:
		obj["cond"] = nodeToJSON(x.Cond)
		obj["consequent"] = nodeToJSON(x.Consequent)
		if x.Alternate != nil {
			obj["alternate"] = nodeToJSON(x.Alternate)
		}
	case *ast.ForStmt:
		obj["var"] = x.Var
		obj["iterable"] = nodeToJSON(x.Iterable)
		obj["body"] = nodeToJSON(x.Body)
	case *ast.BlockStmt:
		obj["body"] = nodesToJSON(x.Body)
	case *ast.ExprStmt:
		obj["expr"] = nodeToJSON(x.X)
	case *ast.UIElement:
		obj["tag"] = x.Tag
		obj["attrs"] = attrsToJSON(x.Attrs)
		obj["children"] = nodesToJSON(x.Children)
		obj["selfClosing"] = x.SelfClosing
	case *ast.UIText:
		obj["text"] = x.Text
	case *ast.UIExpr:
		obj["expr"] = nodeToJSON(x.X)
	case *ast.ComponentInstance:
		obj["name"] = x.Name
		props := make([]any, len(x.Props))
		for i, p := range x.Props {
			props[i] = map[string]any{"name": p.Name, "value": nodeToJSON(p.Value), "event": p.Event}
		}
		obj["props"] = props
		obj["children"] = nodesToJSON(x.Children)
		obj["selfClosing"] = x.SelfClosing
	case *ast.BinaryExpr:
		obj["op"] = x.Op.String()
		obj["left"] = nodeToJSON(x.Left)
		obj["right"] = nodeToJSON(x.Right)
	case *ast.UnaryExpr:
		obj["op"] = x.Op.String()
		obj["operand"] = nodeToJSON(x.X)
	case *ast.CallExpr:
		obj["callee"] = nodeToJSON(x.Callee)
		obj["args"] = nodesToJSONExprs(x.Args)
	case *ast.MemberExpr:
		obj["object"] = nodeToJSON(x.Object)
		if x.Computed() {
			obj["index"] = nodeToJSON(x.Index)
		} else {
			obj["property"] = x.Property
		}
	case *ast.AssignExpr:
		obj["target"] = nodeToJSON(x.Target)
		obj["value"] = nodeToJSON(x.Value)
	case *ast.ArrowFunction:
		obj["params"] = paramsToJSON(x.Params)
		if x.ExprBody != nil {
			obj["exprBody"] = nodeToJSON(x.ExprBody)
		} else {
			obj["body"] = nodeToJSON(x.Body)
		}
	case *ast.ArrayLit:
		obj["elements"] = nodesToJSONExprs(x.Elements)
	case *ast.ObjectLit:
		fields := make([]any, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = map[string]any{"key": f.Key, "value": nodeToJSON(f.Value)}
		}
		obj["fields"] = fields
	case *ast.Ident:
		obj["name"] = x.Name
	case *ast.NumberLit:
		obj["value"] = x.Value
	case *ast.StringLit:
		obj["value"] = x.Value
	case *ast.BoolLit:
		obj["value"] = x.Value
	case *ast.TemplateLit:
		parts := make([]any, len(x.Parts))
		for i, p := range x.Parts {
			if p.X != nil {
				parts[i] = map[string]any{"expr": nodeToJSON(p.X)}
			} else {
				parts[i] = map[string]any{"text": p.Text}
			}
		}
		obj["parts"] = parts
	case *ast.ConditionalExpr:
		obj["cond"] = nodeToJSON(x.Cond)
		obj["then"] = nodeToJSON(x.Then)
		obj["else"] = nodeToJSON(x.Else)
	case *ast.PipeExpr:
		obj["left"] = nodeToJSON(x.Left)
		obj["right"] = nodeToJSON(x.Right)
	}
	return obj
}

func nodesToJSON(nodes []ast.Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = nodeToJSON(n)
	}
	return out
}

func nodesToJSONExprs(exprs []ast.Expr) []any {
	out := make([]any, len(exprs))
	for i, x := range exprs {
		out[i] = nodeToJSON(x)
	}
	return out
}

func attrsToJSON(attrs []ast.Attribute) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		entry := map[string]any{"name": a.Name, "event": a.Event}
		if a.Value != nil {
			entry["value"] = nodeToJSON(a.Value)
		}
		out[i] = entry
	}
	return out
}

func paramsToJSON(params []ast.Param) []any {
	out := make([]any, len(params))
	for i, p := range params {
		entry := map[string]any{"name": p.Name}
		if p.Type != "" {
			entry["paramType"] = p.Type
		}
		if p.Default != nil {
			entry["default"] = nodeToJSON(p.Default)
		}
		out[i] = entry
	}
	return out
}
