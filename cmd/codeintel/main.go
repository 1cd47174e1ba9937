// Command codeintel runs the multi-language deep-context analysis
// pipeline (spec.md §4.12) from the command line: discovery through
// parsing, symbol resolution, dependency graph construction, and the
// complexity/dead-code/TDG/duplicate analyzers, emitted as JSON, Mermaid,
// GraphML, or DOT.
//
// Grounded on the teacher's cmd/lci/main.go: a urfave/cli/v2 App with
// global config/root/exclude/workers/artifact-dir/verbose flags and one
// subcommand per operation mode, each of which loads the config itself
// through loadConfig. Trimmed from the
// teacher's dozen search/index/status/debug commands down to the three
// this toolkit's scope actually supports: analyze, graph, and mcp, plus
// small config/cache utility commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/codeintel/internal/cache"
	"github.com/standardbeagle/codeintel/internal/config"
	"github.com/standardbeagle/codeintel/internal/git"
	"github.com/standardbeagle/codeintel/internal/graphemit"
	"github.com/standardbeagle/codeintel/internal/logging"
	"github.com/standardbeagle/codeintel/internal/mcptransport"
	"github.com/standardbeagle/codeintel/internal/orchestrator"
	"github.com/standardbeagle/codeintel/internal/types"
	"github.com/standardbeagle/codeintel/internal/version"
)

func main() {
	app := &cli.App{
		Name:                   "codeintel",
		Usage:                  "Multi-language static analysis and deep-context reporting",
		Version:                version.Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   ".codeintel.kdl",
			},
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Project root directory to analyze (overrides config)",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Additional exclude glob patterns",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Parallel file workers (0 = auto-detect)",
			},
			&cli.StringFlag{
				Name:  "artifact-dir",
				Usage: "Directory to write report.json/graph.mmd/graph.dot/graph.graphml/manifest.json",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug-level logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Run the full analysis pipeline and print the deep-context report as JSON",
				Action: analyzeCommand,
			},
			{
				Name:  "graph",
				Usage: "Run analysis and print the pruned dependency graph",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "mermaid, dot, or graphml",
						Value: "mermaid",
					},
				},
				Action: graphCommand,
			},
			{
				Name:  "mcp",
				Usage: "Run analysis once, then serve the report over MCP on stdio",
				Action: mcpCommand,
			},
			{
				Name:  "cache",
				Usage: "Clear the on-disk analyzer cache",
				Subcommands: []*cli.Command{
					{
						Name:   "clean",
						Usage:  "Remove the configured cache directory",
						Action: cacheCleanCommand,
					},
				},
			},
			{
				Name:  "config",
				Usage: "Configuration utilities",
				Subcommands: []*cli.Command{
					{
						Name:   "validate",
						Usage:  "Load and validate the configuration file",
						Action: configValidateCommand,
					},
					{
						Name:   "show",
						Usage:  "Print the resolved configuration as JSON",
						Action: configShowCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "codeintel:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the on-disk config plus CLI flag overrides, exactly
// the way the teacher's loadConfigWithOverrides does.
func loadConfig(c *cli.Context) (*config.Config, error) {
	root := c.String("root")
	configPath := c.String("config")
	if root != "" && configPath == ".codeintel.kdl" {
		configPath = filepath.Join(root, ".codeintel.kdl")
	}

	cfg, err := config.LoadWithRoot(configPath, root)
	if err != nil {
		return nil, fmt.Errorf("load config from %s: %w", configPath, err)
	}

	if root != "" {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve root path %q: %w", root, err)
		}
		cfg.Project.Root = absRoot
	}

	// LoadWithRoot only folds .gitignore/build-artifact exclusions in when
	// rootDir was passed to it directly; cfg.Project.Root may have just
	// been resolved above (or come from a discovered .codeintel.kdl with
	// no --root flag at all), so apply both here unconditionally. Both
	// methods dedupe against cfg.Exclude, so calling them again when
	// LoadWithRoot already did is harmless.
	if err := cfg.ApplyVCSIgnore(); err != nil {
		return nil, fmt.Errorf("apply vcs ignore: %w", err)
	}
	cfg.ApplyDetectedBuildArtifacts()

	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludes...)
	}
	if workers := c.Int("workers"); workers > 0 {
		cfg.Performance.ParallelFileWorkers = workers
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// configHash fingerprints the resolved config so C12's cache keys (and
// DeepContextReport.AnalysisID) invalidate whenever a setting changes,
// per spec.md §4.11.
func configHash(cfg *config.Config) (string, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(raw)
	return fmt.Sprintf("%x", sum[:8]), nil
}

// buildRunner assembles an orchestrator.Runner from the resolved config
// and global CLI flags, wiring a git.Provider churn port when the project
// root is a git checkout and an on-disk cache when Cache.Enabled is set.
func buildRunner(c *cli.Context) (*orchestrator.Runner, *config.Config, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}

	hash, err := configHash(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("hash config: %w", err)
	}

	logger, err := logging.New(c.Bool("verbose"))
	if err != nil {
		logger = logging.Nop()
	}

	var ch *cache.Cache
	if cfg.Cache.Enabled {
		ch = cache.New(cfg.Cache.Directory, 4096)
	}

	var churn *git.Provider
	if provider, err := git.NewProvider(cfg.Project.Root); err == nil {
		churn = provider
	} else {
		logger.Debug("churn provider unavailable, TDG churn component stays zero", zap.Error(err))
	}

	artifactDir := c.String("artifact-dir")

	opts := orchestrator.Options{
		Config:      cfg.ToDeepContextConfig(version.Version, hash),
		Weights:     cfg.TDGWeights(),
		Workers:     cfg.Performance.ParallelFileWorkers,
		TopN:        cfg.Complexity.TopFiles,
		Cache:       ch,
		ArtifactDir: artifactDir,
		Logger:      logger,
	}
	if churn != nil {
		opts.Churn = churn
	}

	return orchestrator.NewRunner(opts), cfg, nil
}

// runWithSignals executes r.Run under a context cancelled on SIGINT/
// SIGTERM, draining progress events to the logger as they arrive, the
// same signal-driven shutdown shape as the teacher's mcpCommand.
func runWithSignals(r *orchestrator.Runner, logger *zap.Logger) (types.DeepContextReport, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for evt := range r.Events() {
			logEvent(logger, evt)
		}
	}()

	report, err := r.Run(ctx)
	<-done
	return report, err
}

func logEvent(logger *zap.Logger, evt orchestrator.Event) {
	switch evt.Kind {
	case orchestrator.EventStateChanged:
		logger.Info("state", zap.String("state", string(evt.State)))
	case orchestrator.EventFileDone:
		logger.Debug("file analyzed", zap.String("path", evt.FilePath))
	case orchestrator.EventDiagnostic:
		logger.Warn("diagnostic", zap.String("message", evt.Message))
	}
}

func analyzeCommand(c *cli.Context) error {
	r, _, err := buildRunner(c)
	if err != nil {
		return err
	}

	report, err := runWithSignals(r, r.Logger())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	fmt.Println(string(out))

	if report.Status == types.RunStatusFailed {
		return fmt.Errorf("analysis failed, see diagnostics above")
	}
	return nil
}

func graphCommand(c *cli.Context) error {
	r, _, err := buildRunner(c)
	if err != nil {
		return err
	}

	report, err := runWithSignals(r, r.Logger())
	if err != nil {
		return err
	}

	switch c.String("format") {
	case "dot":
		fmt.Println(graphemit.DOT(report.Graph))
	case "graphml":
		fmt.Println(graphemit.GraphML(report.Graph))
	case "mermaid", "":
		fmt.Println(graphemit.Mermaid(report.Graph, graphemit.EscapeUniversal))
	default:
		return fmt.Errorf("unsupported format %q: want mermaid, dot, or graphml", c.String("format"))
	}
	return nil
}

func mcpCommand(c *cli.Context) error {
	r, cfg, err := buildRunner(c)
	if err != nil {
		return err
	}

	report, err := runWithSignals(r, r.Logger())
	if err != nil {
		return err
	}

	server := mcptransport.NewServer("codeintel-mcp-server", version.Version, r.Logger())
	if err := server.Send(context.Background(), report); err != nil {
		return fmt.Errorf("store initial report: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	r.Logger().Info("serving deep context report over MCP", zap.String("project_root", cfg.Project.Root))
	return server.Run(ctx)
}

func cacheCleanCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Cache.Directory == "" {
		return fmt.Errorf("no cache directory configured")
	}
	if err := os.RemoveAll(cfg.Cache.Directory); err != nil {
		return fmt.Errorf("remove cache directory %s: %w", cfg.Cache.Directory, err)
	}
	fmt.Println("removed", cfg.Cache.Directory)
	return nil
}

func configValidateCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return err
	}
	fmt.Println("configuration valid:", cfg.Project.Root)
	return nil
}

func configShowCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
