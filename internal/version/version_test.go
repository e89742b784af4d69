package version

import (
	"strings"
	"testing"
)

func TestDefaultVersionSet(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestOverride(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3"
	if Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", Version)
	}
}

func TestColoredFallsBackForOddVersions(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("Colored() = %q, want plain fallback", got)
	}
}

func TestSplitSemver(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"0.1.0-dev", []string{"0", "1", "0-dev"}},
		{"1.2.3", []string{"1", "2", "3"}},
		{"nope", nil},
		{"1.2.", nil},
	}
	for _, tc := range cases {
		got := splitSemver(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("splitSemver(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		if got != nil && strings.Join(got, "|") != strings.Join(tc.want, "|") {
			t.Errorf("splitSemver(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
