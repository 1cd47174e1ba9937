package orchestrator

import "time"

// EventKind distinguishes the shapes an Event can carry.
type EventKind string

const (
	EventStateChanged EventKind = "state_changed"
	EventFileDone     EventKind = "file_done"
	EventDiagnostic   EventKind = "diagnostic"
)

// Event is one message on the orchestrator's progress channel (spec.md
// §4.12: "Cancellation, timeouts, and progress reporting are surfaced via
// a small event channel"). Grounded on the teacher's ProgressTracker,
// collapsed from its sharded-counter/polling design into a plain channel
// since this module's workers are bounded per-run rather than indexing a
// long-lived daemon.
type Event struct {
	Kind      EventKind
	Time      time.Time
	State     State  // set on EventStateChanged
	FilePath  string // set on EventFileDone
	Processed int    // cumulative files processed, set on EventFileDone
	Total     int    // total files queued, set on EventFileDone
	Message   string // set on EventDiagnostic
}
