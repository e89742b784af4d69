// Package buildpipeline defines the progress vocabulary shared by the
// driver and the terminal UI: stages, per-file statuses, events, and stage
// timings.
package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageParse covers tokenizing and parsing a source file.
	StageParse Stage = "parse"
	// StageCheck is the type-check stage.
	StageCheck Stage = "check"
	// StageGenerate is the code-generation stage.
	StageGenerate Stage = "generate"
	// StageWrite is the artifact-writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File
// is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

// NopSink discards all events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}

// ChanSink forwards events to a channel; Close ends the stream.
type ChanSink struct {
	C chan Event
}

// NewChanSink returns a buffered channel sink.
func NewChanSink(buf int) *ChanSink {
	return &ChanSink{C: make(chan Event, buf)}
}

func (s *ChanSink) OnEvent(ev Event) { s.C <- ev }

// Close ends the event stream.
func (s *ChanSink) Close() { close(s.C) }

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) ensure() {
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	t.ensure()
	t.stages[stage] = dur
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if t.stages == nil {
		return 0
	}
	return t.stages[stage]
}

// Total returns the sum of all recorded durations.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, d := range t.stages {
		total += d
	}
	return total
}
