package codegen

import (
	"strings"
	"testing"

	"lumina/internal/parser"
	"lumina/internal/source"
)

func compile(t *testing.T, src string) Output {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lum", []byte(src))
	res := parser.ParseFile(fs, id, parser.Options{})
	if res.Failed {
		t.Fatalf("parse failed for:\n%s", src)
	}
	return Generate(res.Program)
}

func wantContains(t *testing.T, artifact, name string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(artifact, sub) {
			t.Errorf("%s missing %q\n%s", name, sub, artifact)
		}
	}
}

const counterSrc = `component C(){ state n = 0
fn inc(){ n = n + 1 }
<div>{n}</div> }`

func TestEndToEndCounter(t *testing.T) {
	out := compile(t, counterSrc)
	wantContains(t, out.JS, "js",
		"function C(props) {",
		"let n = 0;",
		"function inc(",
		"const __render = () => {",
		"document.createTextNode(String(__state.n))",
	)
}

func TestStateWritesGoThroughDescriptor(t *testing.T) {
	out := compile(t, counterSrc)
	wantContains(t, out.JS, "js",
		"Object.defineProperty(__state, \"n\", {",
		"set(v) { n = v; __render(); },",
		"(__state.n = (__state.n + 1));",
	)
}

func TestDeterminism(t *testing.T) {
	src := `
style button {
	fontSize: 14
}
component App(title: String = "hi") {
	state open = false
	<div class="wrap">
		{if open {
			<span>yes</span>
		}}
		<Button label={title} />
	</div>
}
component Button(label: String) {
	<button>{label}</button>
}
`
	a := compile(t, src)
	b := compile(t, src)
	if a.JS != b.JS || a.CSS != b.CSS || a.HTML != b.HTML {
		t.Fatal("repeated compilation of the same source is not byte-identical")
	}
}

func TestParamDefaultFallback(t *testing.T) {
	out := compile(t, `component Greet(name = "world") { <p>{name}</p> }`)
	wantContains(t, out.JS, "js",
		`let name = props.name !== undefined ? props.name : "world";`,
	)
}

func TestComponentInstanceProps(t *testing.T) {
	out := compile(t, `
component App {
	fn handler() { return 0 }
	<Button label="go" @click={handler} />
}
component Button(label: String, click) {
	<button>{label}</button>
}
`)
	wantContains(t, out.JS, "js",
		`__root.appendChild(Button({ label: "go", click: handler }));`,
	)
}

func TestComponentCallRewrite(t *testing.T) {
	out := compile(t, `
component Panel(a, b) {
	<div>{a}</div>
}
fn build() {
	return Panel(1, 2)
}
`)
	wantContains(t, out.JS, "js", "return Panel({ a: 1, b: 2 });")
}

func TestElementAttributes(t *testing.T) {
	out := compile(t, `
component Form {
	<input disabled type="text" class="field" style={ { width: 120, color: "red" } } @input={(e) => e} />
}
`)
	wantContains(t, out.JS, "js",
		`__el0.setAttribute("disabled", "");`,
		`__el0.setAttribute("type", "text");`,
		`__el0.className = "field";`,
		`Object.assign(__el0.style, { width: "120px", color: "red" });`,
		`__el0.addEventListener("input", (e) => e);`,
	)
}

func TestUIControlFlow(t *testing.T) {
	out := compile(t, `
component List(items: Array<String>, visible: Bool) {
	<ul>
		{if visible {
			<li>shown</li>
		}}
		{for item in items {
			<li>{item}</li>
		}}
	</ul>
}
`)
	wantContains(t, out.JS, "js",
		"if (visible) {",
		"for (const item of items) {",
		`document.createTextNode("shown")`,
		"document.createTextNode(String(item))",
	)
}

func TestEffectsRunOnceAfterFirstRender(t *testing.T) {
	out := compile(t, `
component Clock {
	state t = 0
	effect {
		t = 1
	}
	<div>{t}</div>
}
`)
	js := out.JS
	renderCall := strings.Index(js, "\n  __render();")
	effect := strings.Index(js, "(() => {")
	if renderCall < 0 || effect < 0 {
		t.Fatalf("missing render call or effect block:\n%s", js)
	}
	if effect < renderCall {
		t.Fatal("effect must run after the first render")
	}
	// The effect body must not appear inside the render closure, otherwise
	// it would re-run on every state write.
	renderBody := js[strings.Index(js, "const __render"):renderCall]
	if strings.Contains(renderBody, "(() => {") {
		t.Fatal("effect lowered inside the render closure")
	}
}

func TestExportWiring(t *testing.T) {
	out := compile(t, `
export component C { <div></div> }
fn util() { return 1 }
export { util }
`)
	wantContains(t, out.JS, "js",
		"globalThis.__lumina = globalThis.__lumina || {};",
		"globalThis.__lumina.C = C;",
		"globalThis.__lumina.util = util;",
	)
}

func TestImportLowering(t *testing.T) {
	out := compile(t, `
import { fmt, join } from "./strings"
fn use() { return fmt(join) }
`)
	wantContains(t, out.JS, "js",
		"const { fmt, join } = globalThis.__lumina || {};",
	)
}

func TestCSSEmission(t *testing.T) {
	out := compile(t, `
style button {
	fontSize: 14
	backgroundColor: "rebeccapurple"
}
style {
	margin: 8
}
`)
	wantContains(t, out.CSS, "css",
		".lumina-button {",
		"font-size: 14px;",
		"background-color: rebeccapurple;",
		".lumina-default {",
		"margin: 8px;",
	)
}

func TestNestedStyleSetsRootClass(t *testing.T) {
	out := compile(t, `
component Card {
	style card {
		padding: 12
	}
	<div>body</div>
}
`)
	wantContains(t, out.JS, "js", `__root.className = "lumina-card";`)
	wantContains(t, out.CSS, "css", ".lumina-card {", "padding: 12px;")
}

func TestHTMLWrapperAndAutoMount(t *testing.T) {
	out := compile(t, `
component First { <div>one</div> }
component Second { <div>two</div> }
`)
	wantContains(t, out.HTML, "html",
		"<!DOCTYPE html>",
		`<div id="app"></div>`,
		"<style>",
		"<script>",
		`document.getElementById("app").appendChild(First());`,
	)
	if strings.Contains(out.HTML, "appendChild(Second())") {
		t.Error("only the first component auto-mounts")
	}
}

func TestNoComponentNoMount(t *testing.T) {
	out := compile(t, `fn lonely() { return 1 }`)
	if strings.Contains(out.HTML, "appendChild(") {
		t.Errorf("no auto-mount expected:\n%s", out.HTML)
	}
}

func TestTemplateLowering(t *testing.T) {
	out := compile(t, "component T(name) { <p>{`hi {name}!`}</p> }")
	wantContains(t, out.JS, "js", "`hi ${name}!`")
}

func TestTopLevelBindings(t *testing.T) {
	out := compile(t, `
let base = 10
var counter = 0
`)
	wantContains(t, out.JS, "js",
		"const base = 10;",
		"let counter = 0;",
	)
}

func TestPipeAndTernary(t *testing.T) {
	out := compile(t, `
fn double(n) { return n * 2 }
fn pick(flag) { return flag ? 1 : 2 }
let x = 5 |> double
`)
	wantContains(t, out.JS, "js",
		"const x = double(5);",
		"return (flag ? 1 : 2);",
	)
}

func TestSetupStatementsRunAfterRenderIsDefined(t *testing.T) {
	out := compile(t, "component C {\nstate n = 0\nn = 5\n<div>{n}</div>\n}")
	def := strings.Index(out.JS, "const __render")
	assign := strings.Index(out.JS, "__state.n = 5")
	first := strings.Index(out.JS, "\n  __render();")
	if def < 0 || assign < 0 || first < 0 {
		t.Fatalf("missing anchors in:\n%s", out.JS)
	}
	// The state setter calls __render, so the assignment must land after
	// the closure is bound and before the initial render.
	if !(def < assign && assign < first) {
		t.Errorf("setup statement ordering wrong (def=%d assign=%d render=%d):\n%s",
			def, assign, first, out.JS)
	}
}
