// Package orchestrator implements C12, the deep-context orchestrator:
// an explicit state machine that schedules discovery, parsing, symbol
// resolution, graph building, and analysis across a worker pool, joins
// their outputs into one DeepContextReport, and reports progress on an
// event channel. Grounded on the teacher's internal/indexing/pipeline.go
// and pipeline_integrator.go (parallel per-file worker pool feeding a
// serialized integration/join point), generalized from the teacher's
// single implicit pass into the explicit
// Queued->Parsing->Resolving->GraphBuilding->Analyzing->Serializing->
// Done|Failed|Cancelled machine spec.md §4.12 names.
package orchestrator

// State is one node in the run's state machine (spec.md §4.12).
// Transitions are one-way except Failed, which is terminal and can be
// entered from any non-terminal state.
type State string

const (
	StateQueued        State = "Queued"
	StateParsing       State = "Parsing"
	StateResolving     State = "Resolving"
	StateGraphBuilding State = "GraphBuilding"
	StateAnalyzing     State = "Analyzing"
	StateSerializing   State = "Serializing"
	StateDone          State = "Done"
	StateFailed        State = "Failed"
	StateCancelled     State = "Cancelled"
)

func (s State) Terminal() bool {
	switch s {
	case StateDone, StateFailed, StateCancelled:
		return true
	default:
		return false
	}
}

// validTransitions enumerates the one-way edges spec.md §4.12 allows.
// Failed is reachable from every non-terminal state (a worker panic or a
// fatal ConfigError/I-O error can happen at any stage) so it is checked
// separately in canTransition rather than listed per-source here.
var validTransitions = map[State]State{
	StateQueued:        StateParsing,
	StateParsing:       StateResolving,
	StateResolving:     StateGraphBuilding,
	StateGraphBuilding: StateAnalyzing,
	StateAnalyzing:     StateSerializing,
	StateSerializing:   StateDone,
}

func canTransition(from, to State) bool {
	if from.Terminal() {
		return false
	}
	if to == StateFailed || to == StateCancelled {
		return true
	}
	return validTransitions[from] == to
}
