package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"lumina/internal/diag"
	"lumina/internal/lexer"
	"lumina/internal/parser"
	"lumina/internal/source"
)

func TestPrettyHeadingAndCaret(t *testing.T) {
	fs := source.NewFileSet()
	src := "let x = 1\nlet y = oops\n"
	id := fs.AddVirtual("main.lum", []byte(src))

	// Span of "oops" on line 2.
	off := uint32(strings.Index(src, "oops"))
	sp := source.Span{File: id, Start: off, End: off + 4}

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemUndefinedVariable,
		Message:  "undefined variable 'oops'",
		Primary:  sp,
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "main.lum:2:9: ERROR LUM3001: undefined variable 'oops'") {
		t.Fatalf("heading missing:\n%s", out)
	}
	if !strings.Contains(out, "  let y = oops") {
		t.Fatalf("context line missing:\n%s", out)
	}
	if !strings.Contains(out, "  "+strings.Repeat(" ", 8)+"^~~~") {
		t.Fatalf("caret misaligned:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.lum", []byte("component A {}\n"))
	sp := source.Span{File: id, Start: 10, End: 11}

	bag := diag.NewBag(10)
	bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     diag.SemUnknownProp,
		Message:  "something",
		Primary:  sp,
		Notes:    []diag.Note{{Span: sp, Msg: "declared here"}},
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	if !strings.Contains(buf.String(), "declared here") {
		t.Fatalf("note missing:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "declared here") {
		t.Fatalf("notes shown without ShowNotes:\n%s", buf.String())
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.lum", []byte("let n = 1\n"))
	tokens := lexer.Tokenize(fs.Get(id), lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"let", "Ident", `"n"`, "Number", "EOF"} {
		if !strings.Contains(out, want) {
			t.Errorf("token dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpASTTree(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.lum", []byte(`
component App(title: String) {
	state open = false
	<div class="x">{title}</div>
}
`))
	res := parser.ParseFile(fs, id, parser.Options{})
	if res.Failed {
		t.Fatal("parse failed")
	}

	var buf bytes.Buffer
	if err := DumpASTTree(&buf, res.Program); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Program",
		"ComponentDecl App(title: String)",
		"StateDecl open",
		"UIElement <div>",
		"UIExpr",
		"Ident title",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("tree dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.lum", []byte("let n = 1 + 2\n"))
	res := parser.ParseFile(fs, id, parser.Options{})
	if res.Failed {
		t.Fatal("parse failed")
	}

	var buf bytes.Buffer
	if err := DumpASTJSON(&buf, res.Program); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"type": "Program"`, `"type": "VariableDecl"`, `"op": "+"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json dump missing %q:\n%s", want, out)
		}
	}
}
