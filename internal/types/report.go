package types

import "time"

// DeepContextConfig is the single recognized options object C12 accepts
// (spec.md §6's configuration surface), threaded down into discovery,
// parsing, and every analyzer without per-analyzer flags.
type DeepContextConfig struct {
	ProjectRoot string

	IgnorePatterns     []string
	RespectVCSIgnore   bool
	IncludeHidden      bool
	MaxFileSize        int64
	MaxLineLength      int
	ExternalRepoFilter []string

	ComplexityThresholds ComplexityThresholds
	DuplicateMinLines    int
	GraphPruneBudget     int

	AnalyzerVersion string
	ConfigHash      string

	ParallelFileWorkers int
	CacheDir            string // empty disables the L2 disk tier
}

// RunStatus is the terminal classification of a DeepContextReport, per
// spec.md §4.12's "the run succeeds if any file produced a tree".
type RunStatus string

const (
	RunStatusOK         RunStatus = "ok"
	RunStatusOKWarnings RunStatus = "ok_with_warnings"
	RunStatusFailed     RunStatus = "failed"
	RunStatusCancelled  RunStatus = "cancelled"
)

// DeepContextReport aggregates C7-C10's outputs plus file-level AST
// summaries into the one object C12 produces (spec.md §4.12). Every
// externally observable list here is sorted on a documented key so the
// report is reproducible across runs on unchanged input (spec.md §5's
// ordering guarantees).
type DeepContextReport struct {
	AnalysisID  string
	GeneratedAt time.Time
	Status      RunStatus

	Files []SourceFile

	Complexity ProjectComplexity
	DeadCode   []DeadCodeItem
	FileScores []FileDeadCodeScore
	SATD       []SATDItem
	Clones     []CloneGroup
	TDG        []TDGScore
	Graph      *DependencyGraph
	GraphStats GraphMetrics

	Diagnostics []Diagnostic
}
