package devserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestSnapshotTracksLumFilesOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.lum"), "component App {}")
	writeFile(t, filepath.Join(dir, "pages", "about.lum"), "component About {}")
	writeFile(t, filepath.Join(dir, "readme.md"), "docs")

	snap, err := Snapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 2 {
		t.Fatalf("snapshot = %v", snap)
	}
}

func TestSnapshotEqual(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.lum")
	writeFile(t, path, "component App {}")

	a, err := Snapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Snapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("unchanged tree should compare equal")
	}

	// Push the mtime forward explicitly so the test does not depend on
	// filesystem timestamp resolution.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	c, err := Snapshot(dir)
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(c) {
		t.Error("touched file should change the snapshot")
	}
}

func TestSnapshotMissingDir(t *testing.T) {
	snap, err := Snapshot(filepath.Join(t.TempDir(), "gone"))
	if err != nil {
		t.Fatal(err)
	}
	if len(snap) != 0 {
		t.Errorf("snapshot of a missing dir = %v", snap)
	}
}

func TestNewValidatesOptions(t *testing.T) {
	if _, err := New(Options{OutDir: "dist"}); err == nil {
		t.Error("missing source dir should be rejected")
	}
	if _, err := New(Options{SrcDir: "src"}); err == nil {
		t.Error("missing output dir should be rejected")
	}

	s, err := New(Options{SrcDir: "src", OutDir: "dist"})
	if err != nil {
		t.Fatal(err)
	}
	if s.opts.Addr != "127.0.0.1:3000" {
		t.Errorf("addr default = %q", s.opts.Addr)
	}
	if s.opts.Interval != time.Second {
		t.Errorf("interval default = %v", s.opts.Interval)
	}
}
