package orchestrator

import (
	"context"
	"encoding/json"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/cache"
	"github.com/standardbeagle/codeintel/internal/complexity"
	"github.com/standardbeagle/codeintel/internal/deadcode"
	"github.com/standardbeagle/codeintel/internal/depgraph"
	"github.com/standardbeagle/codeintel/internal/discovery"
	codeintelerrors "github.com/standardbeagle/codeintel/internal/errors"
	"github.com/standardbeagle/codeintel/internal/graphemit"
	"github.com/standardbeagle/codeintel/internal/graphmetrics"
	"github.com/standardbeagle/codeintel/internal/parser"
	"github.com/standardbeagle/codeintel/internal/port"
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/tdg"
	"github.com/standardbeagle/codeintel/internal/types"
)

// Options configures one Run. Config carries the analyzer-facing settings
// (internal/config.Config.ToDeepContextConfig adapts an on-disk config
// into this shape); the remaining fields are the collaborator ports a
// caller wires in (spec.md §6).
type Options struct {
	Config types.DeepContextConfig
	Weights tdg.Weights

	ExtraExcludes []string
	Workers       int // 0 means runtime.NumCPU()-1, floored at 1
	TopN          int // function complexity ranking size; 0 means 10

	ArtifactDir string // empty disables writing report.json/graph.* to disk

	Churn     port.ChurnProvider // nil disables the churn TDG component
	ChurnSince time.Time          // zero means 90 days before Run is called

	Cache     *cache.Cache // nil disables per-file result caching
	Transport port.TransportAdapter // nil means the report is only returned, not sent

	Logger *zap.Logger
}

// Runner drives one state-machine pass (spec.md §4.12) from discovery
// through serialization, reporting progress on its Events channel.
// Grounded on the teacher's internal/indexing/pipeline.go (parallel
// per-file worker pool) and pipeline_integrator.go (serialized join
// before relationship building), generalized into the explicit
// Queued->...->Done|Failed|Cancelled machine state.go defines.
type Runner struct {
	opts   Options
	events chan Event
	state  State
	log    *zap.Logger
}

func NewRunner(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU() - 1
		if opts.Workers < 1 {
			opts.Workers = 1
		}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ChurnSince.IsZero() {
		opts.ChurnSince = time.Now().AddDate(0, 0, -90)
	}
	if opts.TopN <= 0 {
		opts.TopN = 10
	}
	return &Runner{
		opts:   opts,
		events: make(chan Event, 64),
		state:  StateQueued,
		log:    opts.Logger,
	}
}

// Events returns the run's progress channel. It is closed when Run
// returns, by which point every event has already been delivered.
func (r *Runner) Events() <-chan Event { return r.events }

// Logger returns the logger this Runner was constructed with, so a
// caller can keep logging under the same sink after Run returns.
func (r *Runner) Logger() *zap.Logger { return r.log }

func (r *Runner) transition(to State) {
	if !canTransition(r.state, to) {
		r.log.Warn("invalid state transition", zap.String("from", string(r.state)), zap.String("to", string(to)))
		return
	}
	r.state = to
	r.events <- Event{Kind: EventStateChanged, Time: time.Now(), State: to}
}

func (r *Runner) diagnostic(msg string) {
	r.events <- Event{Kind: EventDiagnostic, Time: time.Now(), Message: msg}
}

// Run executes the full pipeline and returns the assembled report. It
// never returns an error for partial analyzer failures — those become
// Diagnostics in the report, per spec.md §7 ("every error surfaces
// exactly once; the run itself should complete whenever possible"). Run
// only returns an error for a failure that makes producing any report
// meaningless (discovery root unreadable). A context cancelled during
// discovery or parsing yields a report with Cancelled status and a nil
// error.
func (r *Runner) Run(ctx context.Context) (report types.DeepContextReport, err error) {
	defer close(r.events)

	report = types.DeepContextReport{
		AnalysisID:  r.opts.Config.ConfigHash + "-" + r.opts.Config.AnalyzerVersion,
		GeneratedAt: time.Now(),
	}

	var diagnostics []types.Diagnostic
	addDiag := func(d types.Diagnostic) {
		d.Time = time.Now()
		diagnostics = append(diagnostics, d)
	}

	defer func() {
		if rec := recover(); rec != nil {
			addDiag(types.Diagnostic{
				Code:     "E_PANIC",
				Severity: types.SeverityError,
				Message:  codeintelerrors.NewAnalysisError("orchestrator", r.opts.Config.ProjectRoot, errFromPanic(rec)).Error(),
			})
			report.Status = types.RunStatusFailed
			report.Diagnostics = diagnostics
		}
	}()

	r.transition(StateParsing)
	files, err := discovery.NewWalker(r.opts.Config, r.opts.ExtraExcludes).Walk(ctx, r.opts.Config.ProjectRoot)
	if err != nil {
		if ctx.Err() != nil {
			r.transition(StateCancelled)
			report.Status = types.RunStatusCancelled
			return report, nil
		}
		return report, codeintelerrors.NewDiscoveryError(r.opts.Config.ProjectRoot, err)
	}
	report.Files = files

	fileTrees, lineCounts, parseDiags := r.parseAll(ctx, files)
	diagnostics = append(diagnostics, parseDiags...)

	if ctx.Err() != nil {
		r.transition(StateCancelled)
		report.Status = types.RunStatusCancelled
		return report, nil
	}
	if len(fileTrees) == 0 {
		report.Status = types.RunStatusFailed
	}

	r.transition(StateResolving)
	builder := symtab.NewBuilder()
	builder.Declare(fileTrees)
	unresolved := builder.Resolve(fileTrees)
	table := builder.Table()
	for _, u := range unresolved {
		addDiag(types.Diagnostic{
			Code:     "W_UNRESOLVED",
			Severity: types.SeverityWarning,
			Message:  codeintelerrors.NewResolutionError(pathOf(files, u.FileID), u.Name, nil).Error(),
			FilePath: pathOf(files, u.FileID),
		})
	}

	r.transition(StateGraphBuilding)
	graph := depgraph.Build(fileTrees, table)
	depgraph.Rank(graph) // result discarded; Prune below computes its own ranking
	graph.Canonicalize()
	pruned := depgraph.Prune(graph, r.opts.Config.GraphPruneBudget)
	report.Graph = pruned

	r.transition(StateAnalyzing)
	content := make(map[types.FileID][]byte, len(fileTrees))
	for _, ft := range fileTrees {
		content[ft.File.ID] = r.readContent(ft.File)
	}

	fileComplexity, analysisDiags := r.analyzeComplexity(fileTrees, table)
	diagnostics = append(diagnostics, analysisDiags...)
	report.Complexity = complexity.AggregateProject(fileComplexity, r.opts.TopN)

	satdItems := r.scanSATD(fileTrees, fileComplexity)
	report.SATD = satdItems

	clones := tdg.Detect(fileTrees, content, r.opts.Config.DuplicateMinLines)
	report.Clones = clones

	deadItems := deadcode.Analyze(fileTrees, table, graph)
	report.DeadCode = deadItems
	report.FileScores = deadcode.FileScores(deadItems, fileTrees, table, lineCounts)

	report.TDG = r.scoreTDG(ctx, graph, table, fileComplexity, clones, files)

	report.GraphStats = graphmetrics.Analyze(pruned)

	r.transition(StateSerializing)
	sortDiagnostics(diagnostics)
	report.Diagnostics = diagnostics

	if report.Status == "" {
		report.Status = types.RunStatusOK
		for _, d := range diagnostics {
			if d.Severity == types.SeverityError {
				report.Status = types.RunStatusOKWarnings
				break
			}
		}
	}

	if r.opts.ArtifactDir != "" {
		if err := r.writeArtifacts(report); err != nil {
			addDiag(types.Diagnostic{Code: "E_ARTIFACT", Severity: types.SeverityError, Message: err.Error()})
		}
	}

	if r.opts.Transport != nil {
		if err := r.opts.Transport.Send(ctx, report); err != nil {
			addDiag(types.Diagnostic{Code: "E_TRANSPORT", Severity: types.SeverityError, Message: err.Error()})
		}
	}

	sortDiagnostics(diagnostics)
	report.Diagnostics = diagnostics

	r.transition(StateDone)
	return report, nil
}

// writeArtifacts serializes the report plus its three graph renderings to
// opts.ArtifactDir via cache.WriteArtifacts, so the run leaves behind the
// fixed artifact set plus a manifest.json hashing each one, per spec.md
// §4.11/§7's artifact layout.
func (r *Runner) writeArtifacts(report types.DeepContextReport) error {
	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	files := map[string][]byte{
		"report.json":   reportJSON,
		"graph.mmd":     []byte(graphemit.Mermaid(report.Graph, graphemit.EscapeUniversal)),
		"graph.dot":     []byte(graphemit.DOT(report.Graph)),
		"graph.graphml": []byte(graphemit.GraphML(report.Graph)),
	}

	_, err = cache.WriteArtifacts(r.opts.ArtifactDir, files)
	return err
}

func errFromPanic(rec interface{}) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return &panicValue{rec}
}

type panicValue struct{ v interface{} }

func (p *panicValue) Error() string { return sprintPanic(p.v) }

func sprintPanic(v interface{}) string {
	return "panic: " + toString(v)
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return "unknown"
}

func pathOf(files []types.SourceFile, id types.FileID) string {
	for _, f := range files {
		if f.ID == id {
			return f.Path
		}
	}
	return ""
}

func sortDiagnostics(d []types.Diagnostic) {
	sort.Slice(d, func(i, j int) bool {
		if d[i].FilePath != d[j].FilePath {
			return d[i].FilePath < d[j].FilePath
		}
		if d[i].Line != d[j].Line {
			return d[i].Line < d[j].Line
		}
		return d[i].Code < d[j].Code
	})
}

// readContent re-reads a file's bytes for the analyzers that need raw
// source (duplicate detection, SATD comment text already lives in the
// tree). Returns nil on read failure; callers treat a nil slice as "no
// duplicate candidates from this file" rather than failing the run.
func (r *Runner) readContent(f types.SourceFile) []byte {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil
	}
	return data
}

// parseAll runs the frontend over every parseable file using a bounded
// worker pool, grounded on the teacher's pipeline.go FileScanner/worker
// channel shape. Files the classifier marked unparseable are skipped
// outright, per spec.md §4.1/§4.2's "only Parseable files reach the
// frontends".
func (r *Runner) parseAll(ctx context.Context, files []types.SourceFile) ([]symtab.FileTree, map[types.FileID]int, []types.Diagnostic) {
	frontend := parser.NewFrontend()

	type job struct{ file types.SourceFile }
	jobs := make(chan job)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var trees []symtab.FileTree
	lineCounts := make(map[types.FileID]int)
	var diags []types.Diagnostic

	total := 0
	for _, f := range files {
		if f.Parseable() {
			total++
		}
	}
	processed := 0

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			select {
			case <-ctx.Done():
				return
			default:
			}
			content, err := os.ReadFile(j.file.AbsPath)
			if err != nil {
				mu.Lock()
				diags = append(diags, types.Diagnostic{
					Code:     "E_READ",
					Severity: types.SeverityError,
					Message:  codeintelerrors.NewDiscoveryError(j.file.Path, err).Error(),
					FilePath: j.file.Path,
					Time:     time.Now(),
				})
				mu.Unlock()
				continue
			}

			tree, parseDiags := frontend.Parse(j.file.ID, j.file.Path, content, j.file.Language)

			mu.Lock()
			trees = append(trees, symtab.FileTree{File: j.file, Tree: tree})
			lineCounts[j.file.ID] = countLines(content)
			for _, d := range parseDiags {
				d.FilePath = j.file.Path
				d.Time = time.Now()
				diags = append(diags, d)
			}
			processed++
			done := processed
			mu.Unlock()

			r.events <- Event{Kind: EventFileDone, Time: time.Now(), FilePath: j.file.Path, Processed: done, Total: total}
		}
	}

	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go worker()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			if !f.Parseable() {
				continue
			}
			select {
			case jobs <- job{file: f}:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	sort.Slice(trees, func(i, j int) bool { return trees[i].File.Path < trees[j].File.Path })
	return trees, lineCounts, diags
}

func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := 1
	for _, b := range content {
		if b == '\n' {
			n++
		}
	}
	return n
}

// analyzeComplexity runs C7 over every file in parallel, consulting
// opts.Cache (namespace "complexity") when present so unchanged files
// skip re-analysis across runs, per spec.md §4.11's per-key cache policy.
func (r *Runner) analyzeComplexity(files []symtab.FileTree, table *types.SymbolTable) ([]types.FileComplexity, []types.Diagnostic) {
	resolve := func(file types.FileID, node types.NodeID) (types.SymbolID, bool) {
		for _, sym := range table.All() {
			if sym.DefiningFile == file && sym.DefiningNode == node {
				return sym.ID, true
			}
		}
		return 0, false
	}

	results := make([]types.FileComplexity, len(files))
	diags := make([][]types.Diagnostic, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.opts.Workers)
	for i, ft := range files {
		wg.Add(1)
		go func(i int, ft symtab.FileTree) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fns := r.complexityFor(ft, resolve)
			results[i] = complexity.AggregateFile(ft.File.ID, fns)

			for _, fn := range fns {
				sev := complexity.Severity(fn, r.opts.Config.ComplexityThresholds)
				if sev == types.TDGNormal {
					continue
				}
				severity := types.SeverityWarning
				if sev == types.TDGCritical {
					severity = types.SeverityError
				}
				diags[i] = append(diags[i], types.Diagnostic{
					Code:     "W_COMPLEXITY",
					Severity: severity,
					Message:  fn.Name + " exceeds complexity threshold",
					FilePath: ft.File.Path,
					Line:     fn.Line,
					Time:     time.Now(),
				})
			}
		}(i, ft)
	}
	wg.Wait()

	var flat []types.Diagnostic
	for _, d := range diags {
		flat = append(flat, d...)
	}
	return results, flat
}

func (r *Runner) complexityFor(ft symtab.FileTree, resolve complexity.SymbolResolver) []types.FunctionComplexity {
	if r.opts.Cache == nil {
		return complexity.Analyze(ft.Tree, ft.File.ID, resolve)
	}

	key := cache.Key{
		Namespace:       "complexity",
		ContentHash:     ft.File.ContentHash,
		AnalyzerVersion: r.opts.Config.AnalyzerVersion,
		ConfigHash:      r.opts.Config.ConfigHash,
	}
	raw, _, err := r.opts.Cache.GetOrCompute(key, func() ([]byte, error) {
		fns := complexity.Analyze(ft.Tree, ft.File.ID, resolve)
		return json.Marshal(fns)
	})
	if err != nil {
		return complexity.Analyze(ft.Tree, ft.File.ID, resolve)
	}
	var fns []types.FunctionComplexity
	if err := json.Unmarshal(raw, &fns); err != nil {
		return complexity.Analyze(ft.Tree, ft.File.ID, resolve)
	}
	return fns
}

// scanSATD runs C9's self-admitted-technical-debt classifier per file,
// escalating severity for comments enclosed in a high-complexity
// function via a line-keyed complexity lookup built from fileComplexity
// (ast.Tree does not carry FunctionComplexity back-references, so SATD's
// complexityOf callback is satisfied from the side table instead).
func (r *Runner) scanSATD(files []symtab.FileTree, fileComplexity []types.FileComplexity) []types.SATDItem {
	cyclomaticByFile := make(map[types.FileID]map[int]int, len(fileComplexity))
	for _, fc := range fileComplexity {
		byLine := make(map[int]int, len(fc.Functions))
		for _, fn := range fc.Functions {
			byLine[fn.Line] = fn.Cyclomatic
		}
		cyclomaticByFile[fc.FileID] = byLine
	}

	var all []types.SATDItem
	for _, ft := range files {
		byLine := cyclomaticByFile[ft.File.ID]
		complexityOf := func(n ast.NodeRef) int {
			return byLine[int(ft.Tree.Span(n).StartLine)]
		}
		all = append(all, tdg.ScanComments(ft.Tree, ft.File.ID, complexityOf)...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].FileID != all[j].FileID {
			return all[i].FileID < all[j].FileID
		}
		return all[i].Line < all[j].Line
	})
	return all
}

// scoreTDG combines each graph node's complexity, churn, coupling, and
// duplication components into one TDGScore, per spec.md §4.9's weighted
// sum. DomainRisk and Age are left at zero: spec.md §4.9 notes both
// depend on project-specific classification this toolkit's analyzers do
// not compute.
func (r *Runner) scoreTDG(ctx context.Context, graph *types.DependencyGraph, table *types.SymbolTable, fileComplexity []types.FileComplexity, clones []types.CloneGroup, files []types.SourceFile) []types.TDGScore {
	cyclomaticByFile := make(map[types.FileID]int, len(fileComplexity))
	for _, fc := range fileComplexity {
		cyclomaticByFile[fc.FileID] = fc.CyclomaticSum
	}

	dupCountByFile := make(map[types.FileID]int)
	for _, group := range clones {
		for _, m := range group.Members {
			dupCountByFile[m.FileID]++
		}
	}

	degree := make(map[types.NodeKey]int, len(graph.Nodes))
	for _, e := range graph.Edges {
		degree[e.From]++
		degree[e.To]++
	}
	maxDegree := 1
	for _, d := range degree {
		if d > maxDegree {
			maxDegree = d
		}
	}

	fileByQualified := make(map[types.NodeKey]types.FileID, len(graph.Nodes))
	for _, sym := range table.All() {
		fileByQualified[types.NodeKey(sym.QualifiedName)] = sym.DefiningFile
	}

	pathByFile := make(map[types.FileID]string, len(files))
	for _, f := range files {
		pathByFile[f.ID] = f.Path
	}

	keys := graph.SortedNodeKeys()
	scores := make([]types.TDGScore, 0, len(keys))
	for _, key := range keys {
		fileID, known := fileByQualified[key]

		components := types.TDGComponents{
			Coupling: float64(degree[key]) / float64(maxDegree),
		}
		if known {
			components.Complexity = normalize(float64(cyclomaticByFile[fileID]), 50)
			components.Duplication = normalize(float64(dupCountByFile[fileID]), 10)
			components.Churn = r.churnFor(ctx, pathByFile[fileID])
		}

		scores = append(scores, tdg.Score(key, components, r.opts.Weights))
	}
	return scores
}

func normalize(v, scale float64) float64 {
	if scale <= 0 {
		return 0
	}
	n := v / scale
	if n > 1 {
		return 1
	}
	return n
}

func (r *Runner) churnFor(ctx context.Context, path string) float64 {
	if r.opts.Churn == nil || path == "" {
		return 0
	}
	commits, err := r.opts.Churn.CommitsSince(ctx, path, r.opts.ChurnSince)
	if err != nil {
		return 0
	}
	return normalize(float64(commits), 20)
}
