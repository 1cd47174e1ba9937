package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// LoadKDL attempts to load configuration from a .codeintel.kdl file under
// projectRoot. Grounded on the teacher's LoadKDL: same exists-check, same
// relative-root resolution, same manual document.Node traversal via
// sblinch/kdl-go rather than struct-tag unmarshaling.
func LoadKDL(projectRoot string) (*Config, error) {
	kdlPath := filepath.Join(projectRoot, ".codeintel.kdl")

	if _, err := os.Stat(kdlPath); os.IsNotExist(err) {
		return nil, nil
	}

	content, err := os.ReadFile(kdlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read .codeintel.kdl: %w", err)
	}

	cfg, err := parseKDL(string(content))
	if err != nil {
		return nil, err
	}

	if cfg.Project.Root != "" {
		var absRoot string
		if filepath.IsAbs(cfg.Project.Root) {
			absRoot = cfg.Project.Root
		} else {
			absRoot = filepath.Join(projectRoot, cfg.Project.Root)
		}
		cfg.Project.Root = filepath.Clean(absRoot)
	} else {
		absRoot, err := filepath.Abs(projectRoot)
		if err == nil {
			cfg.Project.Root = absRoot
		} else {
			cfg.Project.Root = projectRoot
		}
	}

	return cfg, nil
}

// parseKDL walks the KDL document into a Config, starting from
// DefaultConfig and overwriting whichever nodes are present.
func parseKDL(content string) (*Config, error) {
	cwd, _ := os.Getwd()
	if cwd == "" {
		cwd = "."
	}
	cfg := DefaultConfig(cwd)

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Project.Root = v })
			}
		case "discovery":
			parseDiscoverySection(cfg, n)
		case "performance":
			for _, cn := range n.Children {
				if nodeName(cn) == "parallel_file_workers" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Performance.ParallelFileWorkers = v
					}
				}
			}
		case "complexity":
			parseComplexitySection(cfg, n)
		case "dead_code":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "include_unreachable":
					if b, ok := firstBoolArg(cn); ok {
						cfg.DeadCode.IncludeUnreachable = b
					}
				case "include_tests":
					if b, ok := firstBoolArg(cn); ok {
						cfg.DeadCode.IncludeTests = b
					}
				case "min_dead_lines":
					if v, ok := firstIntArg(cn); ok {
						cfg.DeadCode.MinDeadLines = v
					}
				}
			}
		case "tdg":
			parseTDGSection(cfg, n)
		case "duplicate":
			for _, cn := range n.Children {
				if nodeName(cn) == "min_lines" {
					if v, ok := firstIntArg(cn); ok {
						cfg.Duplicate.MinLines = v
					}
				}
			}
		case "cache":
			parseCacheSection(cfg, n)
		case "output":
			parseOutputSection(cfg, n)
		case "include":
			cfg.Include = append(cfg.Include, collectStringArgs(n)...)
		case "exclude":
			cfg.Exclude = collectStringArgs(n)
		}
	}

	return cfg, nil
}

func parseDiscoverySection(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "respect_vcs_ignore":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Discovery.RespectVCSIgnore = b
			}
		case "include_hidden":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Discovery.IncludeHidden = b
			}
		case "max_file_size":
			if v, ok := firstIntArg(cn); ok {
				cfg.Discovery.MaxFileSize = int64(v)
			}
			if s, ok := firstStringArg(cn); ok {
				if sz, err := parseSize(s); err == nil {
					cfg.Discovery.MaxFileSize = sz
				}
			}
		case "max_line_length":
			if v, ok := firstIntArg(cn); ok {
				cfg.Discovery.MaxLineLength = v
			}
		case "external_repo_filter":
			cfg.Discovery.ExternalRepoFilter = collectStringArgs(cn)
		}
	}
}

func parseComplexitySection(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "cyclomatic_warn":
			if v, ok := firstIntArg(cn); ok {
				cfg.Complexity.CycloWarn = v
			}
		case "cyclomatic_error":
			if v, ok := firstIntArg(cn); ok {
				cfg.Complexity.CycloError = v
			}
		case "cognitive_warn":
			if v, ok := firstIntArg(cn); ok {
				cfg.Complexity.CogWarn = v
			}
		case "cognitive_error":
			if v, ok := firstIntArg(cn); ok {
				cfg.Complexity.CogError = v
			}
		case "top_files":
			if v, ok := firstIntArg(cn); ok {
				cfg.Complexity.TopFiles = v
			}
		}
	}
}

func parseTDGSection(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "weight_complexity":
			if v, ok := firstFloatArg(cn); ok {
				cfg.TDG.WeightComplexity = v
			}
		case "weight_churn":
			if v, ok := firstFloatArg(cn); ok {
				cfg.TDG.WeightChurn = v
			}
		case "weight_coupling":
			if v, ok := firstFloatArg(cn); ok {
				cfg.TDG.WeightCoupling = v
			}
		case "weight_domain_risk":
			if v, ok := firstFloatArg(cn); ok {
				cfg.TDG.WeightDomainRisk = v
			}
		case "weight_duplication":
			if v, ok := firstFloatArg(cn); ok {
				cfg.TDG.WeightDuplication = v
			}
		}
	}
}

func parseCacheSection(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "enabled":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Cache.Enabled = b
			}
		case "directory":
			if s, ok := firstStringArg(cn); ok {
				cfg.Cache.Directory = s
			}
		case "max_size_mb":
			if v, ok := firstIntArg(cn); ok {
				cfg.Cache.MaxSizeMB = int64(v)
			}
		case "ttl_seconds":
			if v, ok := firstIntArg(cn); ok {
				cfg.Cache.TTLSeconds = v
			}
		}
	}
}

// parseOutputSection handles the subset of output options expressible
// inline in KDL. [output] overrides also accept TOML (LoadTOMLOverrides),
// the teacher's second config format, for tooling that prefers it.
func parseOutputSection(cfg *Config, n *document.Node) {
	for _, cn := range n.Children {
		switch nodeName(cn) {
		case "format":
			if s, ok := firstStringArg(cn); ok {
				cfg.Output.Format = s
			}
		case "deterministic":
			if b, ok := firstBoolArg(cn); ok {
				cfg.Output.Deterministic = b
			}
		case "graph_budget":
			if v, ok := firstIntArg(cn); ok {
				cfg.Output.GraphBudget = v
			}
		}
	}
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		log.Printf("WARNING: invalid float value for %q in KDL config, expected number but got %T", nodeName(n), n.Arguments[0].Value)
		return 0, false
	}
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}

// parseSize handles size strings like "10MB", "500KB", "1GB".
func parseSize(s string) (int64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))

	var multiplier int64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		multiplier = 1
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return 0, err
	}

	return num * multiplier, nil
}
