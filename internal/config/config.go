// Package config loads the KDL configuration surface spec.md §6 names:
// discovery, complexity thresholds, dead-code, TDG weights, cache, and
// output options, merged global-then-project exactly the way the
// teacher's internal/config does it. Trimmed from the teacher's
// search/semantic-scoring/feature-flag configuration (none of which any
// SPEC_FULL.md component reads) down to the fields DeepContextConfig and
// the C7-C10 analyzers actually consume.
package config

import (
	"os"
	"runtime"

	"github.com/standardbeagle/codeintel/internal/discovery"
	"github.com/standardbeagle/codeintel/internal/tdg"
	"github.com/standardbeagle/codeintel/internal/types"
)

// Config is the on-disk configuration shape. ToDeepContextConfig adapts
// it into the options object the orchestrator (C12) actually accepts.
type Config struct {
	Version int
	Project Project

	Discovery   Discovery
	Performance Performance
	Complexity  Complexity
	DeadCode    DeadCode
	TDG         TDGConfig
	Duplicate   Duplicate
	Cache       Cache
	Output      Output

	Include []string
	Exclude []string
}

type Project struct {
	Root string
}

// Discovery controls C1's file walk: which paths are visible and which
// are skipped before classification ever runs.
type Discovery struct {
	RespectVCSIgnore   bool
	IncludeHidden      bool
	MaxFileSize        int64
	MaxLineLength      int
	ExternalRepoFilter []string
}

type Performance struct {
	ParallelFileWorkers int // 0 = auto-detect (NumCPU)
}

// Complexity mirrors types.ComplexityThresholds plus the top-N report
// size C7's consumers (deep-context output) trim to.
type Complexity struct {
	CycloWarn  int
	CycloError int
	CogWarn    int
	CogError   int
	TopFiles   int
}

type DeadCode struct {
	IncludeUnreachable bool
	IncludeTests       bool
	MinDeadLines       int
}

// TDGConfig carries the weighted-sum weights C9's scorer applies.
type TDGConfig struct {
	WeightComplexity  float64
	WeightChurn       float64
	WeightCoupling    float64
	WeightDomainRisk  float64
	WeightDuplication float64
}

type Duplicate struct {
	MinLines int
}

type Cache struct {
	Enabled    bool
	Directory  string
	MaxSizeMB  int64
	TTLSeconds int
}

type Output struct {
	Format        string // "json", "mermaid", "graphml", "dot"
	Deterministic bool
	GraphBudget   int // node budget the PageRank pruner (C5) trims to
}

// Load resolves configuration exactly the way the teacher does: a
// global base at ~/.codeintel.kdl overridden by a project-local
// .codeintel.kdl, falling back to DefaultConfig when neither exists.
func Load(path string) (*Config, error) {
	return LoadWithRoot(path, "")
}

func LoadWithRoot(path string, rootDir string) (*Config, error) {
	searchDir := "."
	if rootDir != "" {
		searchDir = rootDir
	}

	var baseConfig *Config
	if homeDir, err := os.UserHomeDir(); err == nil {
		if globalCfg, err := LoadKDL(homeDir); err == nil && globalCfg != nil {
			baseConfig = globalCfg
		}
	}

	var projectConfig *Config
	kdlCfg, err := LoadKDL(searchDir)
	if err != nil {
		return nil, err
	}
	if kdlCfg != nil {
		projectConfig = kdlCfg
	}

	var cfg *Config
	switch {
	case baseConfig != nil && projectConfig != nil:
		cfg = mergeConfigs(baseConfig, projectConfig)
	case projectConfig != nil:
		cfg = projectConfig
	case baseConfig != nil:
		baseConfig.Project.Root = searchDir
		cfg = baseConfig
	default:
		cwd, err := os.Getwd()
		if err != nil {
			cwd = searchDir
		}
		cfg = DefaultConfig(cwd)
	}

	if rootDir != "" {
		if err := cfg.ApplyVCSIgnore(); err != nil {
			return nil, err
		}
		cfg.ApplyDetectedBuildArtifacts()
	}
	return cfg, nil
}

// DefaultConfig returns the hardcoded baseline used when no .codeintel.kdl
// is found anywhere up the tree, parameterized by project root.
func DefaultConfig(root string) *Config {
	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Discovery: Discovery{
			RespectVCSIgnore:   true,
			IncludeHidden:      false,
			MaxFileSize:        discovery.DefaultMaxFileSize,
			MaxLineLength:      discovery.DefaultMaxLineLength,
			ExternalRepoFilter: nil,
		},
		Performance: Performance{
			ParallelFileWorkers: runtime.NumCPU(),
		},
		Complexity: Complexity{
			CycloWarn:  10,
			CycloError: 20,
			CogWarn:    15,
			CogError:   30,
			TopFiles:   25,
		},
		DeadCode: DeadCode{
			IncludeUnreachable: true,
			IncludeTests:       false,
			MinDeadLines:       3,
		},
		TDG: TDGConfig{
			WeightComplexity:  tdg.DefaultWeights().Complexity,
			WeightChurn:       tdg.DefaultWeights().Churn,
			WeightCoupling:    tdg.DefaultWeights().Coupling,
			WeightDomainRisk:  tdg.DefaultWeights().DomainRisk,
			WeightDuplication: tdg.DefaultWeights().Duplication,
		},
		Duplicate: Duplicate{MinLines: 20},
		Cache: Cache{
			Enabled:    true,
			Directory:  ".codeintel-cache",
			MaxSizeMB:  512,
			TTLSeconds: 0,
		},
		Output: Output{
			Format:        "json",
			Deterministic: true,
			GraphBudget:   500,
		},
		Include: []string{},
		Exclude: []string{},
	}
}

// ApplyVCSIgnore folds .gitignore patterns (from Project.Root) into
// Exclude when Discovery.RespectVCSIgnore is set. Grounded on the
// teacher's Config.EnrichExclusionsWithBuildArtifacts, generalized from
// build-artifact detection to .gitignore folding since this module's
// discovery.Walker already owns its own default exclusion set (C1) and
// only needs the VCS-specific additions layered on top.
func (c *Config) ApplyVCSIgnore() error {
	if !c.Discovery.RespectVCSIgnore || c.Project.Root == "" {
		return nil
	}
	parser := NewGitignoreParser()
	if err := parser.LoadGitignore(c.Project.Root); err != nil {
		return err
	}
	patterns := parser.GetExclusionPatterns()
	if len(patterns) == 0 {
		return nil
	}
	c.Exclude = dedupePatterns(append(c.Exclude, patterns...))
	return nil
}

// ApplyDetectedBuildArtifacts scans Project.Root's manifest files
// (package.json, tsconfig.json, vite.config.*, Cargo.toml,
// pyproject.toml) for custom build-output directories and folds them
// into Exclude. Grounded on the teacher's
// Config.EnrichExclusionsWithBuildArtifacts + BuildArtifactDetector:
// discovery.Walker's static glob defaults (C1) only catch conventional
// directory names, so a project configuring a nonstandard output path
// would otherwise leak into the analysis.
func (c *Config) ApplyDetectedBuildArtifacts() {
	if c.Project.Root == "" {
		return
	}
	detector := NewBuildArtifactDetector(c.Project.Root)
	detected := detector.DetectOutputDirectories()
	if len(detected) == 0 {
		return
	}
	c.Exclude = DeduplicatePatterns(append(c.Exclude, detected...))
}

// ToDeepContextConfig adapts the loaded Config into C12's options object.
func (c *Config) ToDeepContextConfig(analyzerVersion, configHash string) types.DeepContextConfig {
	return types.DeepContextConfig{
		ProjectRoot: c.Project.Root,

		IgnorePatterns:     c.Exclude,
		RespectVCSIgnore:   c.Discovery.RespectVCSIgnore,
		IncludeHidden:      c.Discovery.IncludeHidden,
		MaxFileSize:        c.Discovery.MaxFileSize,
		MaxLineLength:      c.Discovery.MaxLineLength,
		ExternalRepoFilter: c.Discovery.ExternalRepoFilter,

		ComplexityThresholds: types.ComplexityThresholds{
			CycloWarn:  c.Complexity.CycloWarn,
			CycloError: c.Complexity.CycloError,
			CogWarn:    c.Complexity.CogWarn,
			CogError:   c.Complexity.CogError,
		},
		DuplicateMinLines: c.Duplicate.MinLines,
		GraphPruneBudget:  c.Output.GraphBudget,

		AnalyzerVersion: analyzerVersion,
		ConfigHash:      configHash,

		ParallelFileWorkers: c.Performance.ParallelFileWorkers,
		CacheDir:            c.Cache.Directory,
	}
}

// TDGWeights adapts the loaded Config into C9's scorer weights.
func (c *Config) TDGWeights() tdg.Weights {
	return tdg.Weights{
		Complexity:  c.TDG.WeightComplexity,
		Churn:       c.TDG.WeightChurn,
		Coupling:    c.TDG.WeightCoupling,
		DomainRisk:  c.TDG.WeightDomainRisk,
		Duplication: c.TDG.WeightDuplication,
	}
}

// mergeConfigs merges a base config with a project config: project
// settings win, but base exclusions are preserved alongside project
// exclusions.
func mergeConfigs(base, project *Config) *Config {
	merged := *project

	if len(base.Exclude) > 0 {
		merged.Exclude = dedupePatterns(append(append([]string{}, base.Exclude...), project.Exclude...))
	}

	if len(project.Include) == 0 && len(base.Include) > 0 {
		merged.Include = base.Include
	}

	return &merged
}

func dedupePatterns(patterns []string) []string {
	seen := make(map[string]bool, len(patterns))
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
