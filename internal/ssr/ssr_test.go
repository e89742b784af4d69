package ssr

import (
	"strings"
	"testing"

	"lumina/internal/parser"
	"lumina/internal/source"
)

func render(t *testing.T, src, component string, props map[string]any) string {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lum", []byte(src))
	res := parser.ParseFile(fs, id, parser.Options{})
	if res.Failed {
		t.Fatalf("parse failed for:\n%s", src)
	}
	out, err := Render(res.Program, component, props)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestRenderElementTree(t *testing.T) {
	got := render(t, `
component Page {
	<div class="wrap">
		<h1>Hello</h1>
		<input disabled />
	</div>
}
`, "Page", nil)
	want := `<div class="wrap"><h1>Hello</h1><input disabled=""/></div>`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderPropsAndDefaults(t *testing.T) {
	src := `
component Greet(name = "world") {
	<p>{"hi " + name}</p>
}
`
	if got := render(t, src, "Greet", map[string]any{"name": "Ada"}); got != "<p>hi Ada</p>" {
		t.Fatalf("got %q", got)
	}
	if got := render(t, src, "Greet", nil); got != "<p>hi world</p>" {
		t.Fatalf("default fallback: got %q", got)
	}
}

func TestRenderEscapesText(t *testing.T) {
	got := render(t, `
component E(raw: String) {
	<span>{raw}</span>
}
`, "E", map[string]any{"raw": `<script>alert("x")</script>`})
	if strings.Contains(got, "<script>") {
		t.Fatalf("unescaped output: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %q", got)
	}
}

func TestRenderStateInitialValue(t *testing.T) {
	got := render(t, `
component Counter {
	state n = 40
	fn bump(by) { return n + by }
	<div>{bump(2)}</div>
}
`, "Counter", nil)
	if got != "<div>42</div>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderControlFlow(t *testing.T) {
	got := render(t, `
component List(items: Array<String>, empty: Bool) {
	<ul>
		{if empty {
			<li>nothing</li>
		}}
		{for item in items {
			<li>{item}</li>
		}}
	</ul>
}
`, "List", map[string]any{"items": []any{"a", "b"}, "empty": false})
	if got != "<ul><li>a</li><li>b</li></ul>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderNestedComponent(t *testing.T) {
	got := render(t, `
component App {
	<div><Badge label="new" /></div>
}
component Badge(label: String) {
	<b>{label}</b>
}
`, "App", nil)
	if got != "<div><b>new</b></div>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderInlineStyleObject(t *testing.T) {
	got := render(t, `
component Box {
	<div style={ { width: 120, color: "red" } }>x</div>
}
`, "Box", nil)
	if !strings.Contains(got, `style="width: 120px; color: red"`) {
		t.Fatalf("got %q", got)
	}
}

func TestRenderDropsEventAttributes(t *testing.T) {
	got := render(t, `
component B {
	<button @click={(e) => e}>go</button>
}
`, "B", nil)
	if got != "<button>go</button>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderTemplateAndPipe(t *testing.T) {
	got := render(t, "component T(n) {\n"+
		"fn double(x) { return x * 2 }\n"+
		"<p>{`n is {n |> double}`}</p>\n"+
		"}", "T", map[string]any{"n": float64(21)})
	if got != "<p>n is 42</p>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderUnknownComponent(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lum", []byte("component A { <i>a</i> }"))
	res := parser.ParseFile(fs, id, parser.Options{})
	if res.Failed {
		t.Fatal("parse failed")
	}
	if _, err := Render(res.Program, "Missing", nil); err == nil {
		t.Fatal("expected an error for an unknown component")
	}
}

func TestRenderEmptyNamePicksFirstComponent(t *testing.T) {
	got := render(t, "component First { <i>1</i> }\ncomponent Second { <i>2</i> }", "", nil)
	if got != "<i>1</i>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderModuloByZero(t *testing.T) {
	got := render(t, "component App { <div>{5 % 0}</div> }", "App", nil)
	if got != "<div>NaN</div>" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderEqualityOnCompositeValues(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"distinct arrays", "component App { <div>{[1] == [1]}</div> }", "<div>false</div>"},
		{"same array", "component App {\nlet a = [1]\n<div>{a == a}</div>\n}", "<div>true</div>"},
		{"distinct objects", "component App { <div>{{x: 1} != {x: 1}}</div> }", "<div>true</div>"},
		{"array vs scalar", "component App { <div>{[1] == 1}</div> }", "<div>false</div>"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := render(t, tc.src, "App", nil); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}
