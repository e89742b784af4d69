package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"lumina/internal/buildpipeline"
	"lumina/internal/project"
)

const counterSrc = `component Counter {
  state n = 0
  fn inc() { n = n + 1 }
  <div>
    <button @click={inc}>+</button>
    {n}
  </div>
}
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.lum", "let s = \"unterminated\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Error("expected a lex error for an unterminated string")
	}
	if len(res.Tokens) == 0 {
		t.Error("tokens should be returned as far as lexing got")
	}
}

func TestParseFailureSetsFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.lum", "component {")

	res, err := Parse(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Failed {
		t.Error("expected parse failure")
	}
	if res.Program != nil {
		t.Error("failed parse must not yield a program")
	}
	if !res.Bag.HasErrors() {
		t.Error("parse failure must leave a diagnostic in the bag")
	}
}

func TestCheckCollectsTypeErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.lum", "fn f() {\n  return missing\n}\n")

	res, err := Check(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed {
		t.Fatal("parse should succeed")
	}
	if res.OK {
		t.Error("expected a type error for an undefined variable")
	}
}

func TestCompileProducesOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "counter.lum", counterSrc)

	res, err := Compile(path, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Failed || !res.OK {
		t.Fatalf("clean source should compile, bag: %v", res.Bag.Items())
	}
	if !strings.Contains(res.Output.JS, "function Counter(props)") {
		t.Error("JS output missing component function")
	}
	if !strings.Contains(res.Output.HTML, "<!DOCTYPE html>") {
		t.Error("HTML output missing doctype")
	}
}

func TestCompileStopsAfterParseFailure(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.lum", "component (")

	res, err := Compile(path, CompileOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Failed {
		t.Fatal("expected parse failure")
	}
	if res.Output.JS != "" {
		t.Error("no code should be generated for a failed parse")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	key := project.DigestBytes([]byte(counterSrc))

	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("empty cache: ok=%v err=%v", ok, err)
	}

	dir := t.TempDir()
	path := writeSource(t, dir, "counter.lum", counterSrc)
	res, err := Compile(path, CompileOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Fatal("first compile must not hit the cache")
	}

	res2, err := Compile(path, CompileOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !res2.CacheHit {
		t.Fatal("second compile should hit the cache")
	}
	if res2.Output.JS != res.Output.JS {
		t.Error("cached output differs from generated output")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Error("DropAll should remove all entries")
	}
}

func TestDiskCacheSkipsDirtyCompiles(t *testing.T) {
	cache, err := OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.lum", "fn f() {\n  return missing\n}\n")

	if _, err := Compile(path, CompileOptions{Cache: cache}); err != nil {
		t.Fatal(err)
	}
	res, err := Compile(path, CompileOptions{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("a compile with type errors must not be cached")
	}
}

func TestCompileDirWritesArtifacts(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeSource(t, src, "counter.lum", counterSrc)
	writeSource(t, src, "about.lum", "component About {\n  <p>hi</p>\n}\n")
	writeSource(t, src, "notes.txt", "not a source file")

	res, err := CompileDir(context.Background(), src, BuildOptions{OutDir: out, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Files) != 2 {
		t.Fatalf("files = %v", res.Files)
	}
	if res.Errors() {
		t.Fatal("clean sources should build without errors")
	}
	for _, name := range []string{"counter.html", "counter.js", "counter.css", "about.html", "about.js"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}

func TestCompileDirEmitsProgressEvents(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "app.lum", "component App {\n  <div>ok</div>\n}\n")

	var mu sync.Mutex
	var events []buildpipeline.Event
	sink := buildpipeline.SinkFunc(func(ev buildpipeline.Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	if _, err := CompileDir(context.Background(), src, BuildOptions{Sink: sink}); err != nil {
		t.Fatal(err)
	}

	stages := map[buildpipeline.Stage]bool{}
	for _, ev := range events {
		if ev.Status == buildpipeline.StatusDone {
			stages[ev.Stage] = true
		}
	}
	for _, st := range []buildpipeline.Stage{buildpipeline.StageParse, buildpipeline.StageCheck, buildpipeline.StageGenerate} {
		if !stages[st] {
			t.Errorf("no done event for stage %s", st)
		}
	}
}

func TestCompileDirKeepsSortedOrder(t *testing.T) {
	src := t.TempDir()
	writeSource(t, src, "b.lum", "component B {\n  <p>b</p>\n}\n")
	writeSource(t, src, "a.lum", "component A {\n  <p>a</p>\n}\n")

	res, err := CompileDir(context.Background(), src, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(res.Files[0]) != "a.lum" || filepath.Base(res.Files[1]) != "b.lum" {
		t.Errorf("files not sorted: %v", res.Files)
	}
	if res.Results[0] == nil || res.Results[1] == nil {
		t.Fatal("results slice has gaps")
	}
}

func TestWriteOutputEmitFilter(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "dist")
	writeSource(t, src, "app.lum", "component App {\n  <div>ok</div>\n}\n")

	_, err := CompileDir(context.Background(), src, BuildOptions{OutDir: out, Emit: "js"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(out, "app.js")); err != nil {
		t.Errorf("js artifact missing: %v", err)
	}
	for _, name := range []string{"app.html", "app.css"} {
		if _, err := os.Stat(filepath.Join(out, name)); err == nil {
			t.Errorf("%s written despite emit=js", name)
		}
	}
}
