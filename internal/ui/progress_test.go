package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lumina/internal/buildpipeline"
)

func apply(t *testing.T, m tea.Model, ev buildpipeline.Event) tea.Model {
	t.Helper()
	next, _ := m.Update(eventMsg(ev))
	return next
}

func TestModelTracksStatusPerFile(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewBuildModel("build", []string{"a.lum", "b.lum"}, events)

	m = apply(t, m, buildpipeline.Event{File: "a.lum", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking})
	view := m.View()
	if !strings.Contains(view, "parsing") {
		t.Errorf("view missing working status:\n%s", view)
	}
	if !strings.Contains(view, "queued") {
		t.Errorf("untouched file should stay queued:\n%s", view)
	}

	m = apply(t, m, buildpipeline.Event{File: "a.lum", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	if !strings.Contains(m.View(), "done") {
		t.Errorf("view missing done status:\n%s", m.View())
	}
}

func TestModelMarksErrors(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewBuildModel("build", []string{"a.lum"}, events)

	m = apply(t, m, buildpipeline.Event{File: "a.lum", Stage: buildpipeline.StageCheck, Status: buildpipeline.StatusError})
	if !strings.Contains(m.View(), "error") {
		t.Errorf("view missing error status:\n%s", m.View())
	}
}

func TestModelIgnoresUnknownFiles(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := NewBuildModel("build", []string{"a.lum"}, events)

	m = apply(t, m, buildpipeline.Event{File: "ghost.lum", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusDone})
	if strings.Contains(m.View(), "ghost") {
		t.Errorf("unknown file leaked into the view:\n%s", m.View())
	}
}

func TestModelQuitsWhenChannelCloses(t *testing.T) {
	events := make(chan buildpipeline.Event)
	close(events)
	m := NewBuildModel("build", []string{"a.lum"}, events)

	msg := m.(*buildModel).listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("closed channel should yield doneMsg, got %T", msg)
	}
	next, cmd := m.Update(msg)
	if cmd == nil {
		t.Fatal("doneMsg should produce a quit command")
	}
	if !strings.Contains(next.View(), "done:") {
		t.Errorf("final view missing done header:\n%s", next.View())
	}
}

func TestTruncateKeepsShortPaths(t *testing.T) {
	if got := truncate("a.lum", 20); got != "a.lum" {
		t.Errorf("truncate = %q", got)
	}
	long := strings.Repeat("x", 40)
	got := truncate(long, 10)
	if len(got) > 10 {
		t.Errorf("truncate produced %q (len %d)", got, len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated path should end with ellipsis: %q", got)
	}
}
