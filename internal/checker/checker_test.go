package checker

import (
	"strings"
	"testing"

	"lumina/internal/parser"
	"lumina/internal/source"
)

func checkSource(t *testing.T, src string) Result {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lum", []byte(src))
	res := parser.ParseFile(fs, id, parser.Options{})
	if res.Failed {
		t.Fatalf("parse failed for:\n%s", src)
	}
	return Check(fs, res.Program, Options{})
}

func wantClean(t *testing.T, src string) {
	t.Helper()
	res := checkSource(t, src)
	if !res.OK {
		t.Fatalf("unexpected diagnostics: %v", res.Messages)
	}
}

func wantMessage(t *testing.T, src, substr string) Result {
	t.Helper()
	res := checkSource(t, src)
	if res.OK {
		t.Fatalf("expected a diagnostic containing %q, got none", substr)
	}
	for _, msg := range res.Messages {
		if strings.Contains(msg, substr) {
			return res
		}
	}
	t.Fatalf("no message contains %q: %v", substr, res.Messages)
	return res
}

func TestCompatibleReflexive(t *testing.T) {
	types := []*Type{
		Any, Void, Int, String, Bool, Null,
		ArrayOf(Int),
		ArrayOf(ArrayOf(String)),
		{Kind: KindObject, Fields: []Field{{Name: "x", Type: Int}}},
		{Kind: KindFunction, Params: []*Type{Int}, Return: Bool},
		{Kind: KindComponent},
	}
	for _, ty := range types {
		if !Compatible(ty, ty) {
			t.Errorf("Compatible(%s, %s) = false", ty, ty)
		}
	}
}

func TestCompatibleAnyBothDirections(t *testing.T) {
	others := []*Type{Int, String, Bool, Null, ArrayOf(Int), {Kind: KindComponent}}
	for _, ty := range others {
		if !Compatible(Any, ty) {
			t.Errorf("Compatible(Any, %s) = false", ty)
		}
		if !Compatible(ty, Any) {
			t.Errorf("Compatible(%s, Any) = false", ty)
		}
	}
}

func TestCompatibleArrayElement(t *testing.T) {
	if Compatible(ArrayOf(Int), ArrayOf(String)) {
		t.Error("Array<Int> should not be compatible with Array<String>")
	}
	if !Compatible(ArrayOf(Int), ArrayOf(Any)) {
		t.Error("Array<Int> should be compatible with Array<Any>")
	}
}

func TestParseAnnotation(t *testing.T) {
	if got := ParseAnnotation("Array<Int>"); got.Kind != KindArray || got.Elem.Kind != KindInt {
		t.Errorf("Array<Int> parsed as %s", got)
	}
	if got := ParseAnnotation("Widget"); got.Kind != KindAny {
		t.Errorf("unknown annotation should be Any, got %s", got)
	}
	if got := ParseAnnotation(""); got.Kind != KindAny {
		t.Errorf("empty annotation should be Any, got %s", got)
	}
}

func TestForwardReference(t *testing.T) {
	wantClean(t, `
fn first(): Int {
	return second()
}
fn second(): Int {
	return 1
}
component App {
	<div>{first()}</div>
}
`)
}

func TestUndefinedVariableContinues(t *testing.T) {
	res := wantMessage(t, `
let a = missing
let b = "text" == 3
let c = alsoMissing
`, "undefined variable 'missing'")
	// The walk must not stop at the first failure.
	found := false
	for _, msg := range res.Messages {
		if strings.Contains(msg, "alsoMissing") {
			found = true
		}
	}
	if !found {
		t.Fatalf("checker stopped early: %v", res.Messages)
	}
}

func TestPlusOverload(t *testing.T) {
	wantClean(t, `
let n: Int = 1 + 2
let s: String = "a" + 1
let s2: String = 1 + "a"
`)
	wantMessage(t, `let bad = true + false`, "invalid operands for '+'")
}

func TestArithmeticWantsInt(t *testing.T) {
	wantMessage(t, `let x = "a" * 2`, "invalid operands for '*'")
	wantClean(t, `let x: Int = 10 % 3`)
}

func TestComparisonIsAlwaysBool(t *testing.T) {
	// Operand types are not constrained for comparisons.
	wantClean(t, `let ok: Bool = "a" < 5`)
}

func TestAssignments(t *testing.T) {
	wantMessage(t, `
let x: Int = 1
let y = x = "text"
`, "cannot assign String to 'x' of type Int")
	wantMessage(t, `let y = 5 = 3`, "cannot assign to a literal")
}

func TestVariableAnnotationMismatch(t *testing.T) {
	wantMessage(t, `let count: Int = "zero"`, "cannot initialize 'count' of type Int with String")
}

func TestCallChecking(t *testing.T) {
	wantMessage(t, `
fn add(a: Int, b: Int): Int {
	return a + b
}
let r = add(1)
`, "wrong argument count: want 2, got 1")
	wantMessage(t, `
fn add(a: Int, b: Int): Int {
	return a + b
}
let r = add(1, "two")
`, "argument 2: cannot pass String as Int")
	wantMessage(t, `
let n = 5
let r = n()
`, "Int is not callable")
}

func TestReturnTypeChecked(t *testing.T) {
	wantMessage(t, `
fn name(): Int {
	return "text"
}
`, "cannot return String from a function returning Int")
}

func TestComponentProps(t *testing.T) {
	wantClean(t, `
component Button(label: String) {
	<button>{label}</button>
}
component App {
	<Button label="go" />
}
`)
	wantMessage(t, `
component Button(label: String) {
	<button>{label}</button>
}
component App {
	<Button size=3 />
}
`, "component 'Button' has no prop 'size'")
	wantMessage(t, `
component Button(label: String) {
	<button>{label}</button>
}
component App {
	<Button label=42 />
}
`, "prop 'label': cannot pass Int as String")
}

func TestUndefinedComponent(t *testing.T) {
	wantMessage(t, `
component App {
	<Missing />
}
`, "undefined component 'Missing'")
}

func TestStateAndEffect(t *testing.T) {
	wantClean(t, `
component Counter {
	state count: Int = 0
	effect (count) {
		count = count + 1
	}
	<div>{count}</div>
}
`)
	wantMessage(t, `
component Counter {
	effect (ghost) {
		let x = 1
	}
	<div></div>
}
`, "undefined variable 'ghost'")
}

func TestForLoopElementType(t *testing.T) {
	wantMessage(t, `
let items: Array<Int> = [1, 2, 3]
component App {
	for item in items {
		let s: String = item
	}
}
`, "cannot initialize 's' of type String with Int")
	wantMessage(t, `
component App {
	for item in 5 {
		<li>{item}</li>
	}
}
`, "cannot iterate over Int")
}

func TestImportedNamesAreAny(t *testing.T) {
	wantClean(t, `
import { format } from "./util"
let s: String = format(1, 2, 3)
`)
}

func TestExportSpecifierMustExist(t *testing.T) {
	wantMessage(t, `
let here = 1
export { here, gone }
`, "undefined variable 'gone'")
}

func TestMessagesCarryPosition(t *testing.T) {
	res := checkSource(t, "let a = 1\nlet b = missing\n")
	if res.OK || len(res.Messages) != 1 {
		t.Fatalf("want exactly one message, got %v", res.Messages)
	}
	if !strings.HasPrefix(res.Messages[0], "2:9:") {
		t.Fatalf("message should start with line:col 2:9, got %q", res.Messages[0])
	}
}

func TestMessageOrderFollowsSource(t *testing.T) {
	res := checkSource(t, `
let a = firstMissing
let b = secondMissing
`)
	if len(res.Messages) != 2 {
		t.Fatalf("want 2 messages, got %v", res.Messages)
	}
	if !strings.Contains(res.Messages[0], "firstMissing") || !strings.Contains(res.Messages[1], "secondMissing") {
		t.Fatalf("messages out of order: %v", res.Messages)
	}
}

func TestTernaryAndPipe(t *testing.T) {
	wantClean(t, `
fn double(n: Int): Int {
	return n * 2
}
let x: Int = 5 |> double
let y: Int = true ? 1 : 2
`)
	wantMessage(t, `let x = 1 |> 2`, "right side of |> is not callable")
}

func TestArrowFunctionType(t *testing.T) {
	wantClean(t, `
let double = (n: Int) => n * 2
let x: Int = double(4)
`)
}

func TestObjectMemberType(t *testing.T) {
	wantClean(t, `
let user = { name: "Ada", age: 36 }
let n: String = user.name
let a: Int = user.age
let unknown = user.missing
`)
}
