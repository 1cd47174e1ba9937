package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// outputOverrides is the shape of an [output] TOML override file, the
// teacher's second config format used here for the one section a tool
// invocation most often wants to override ad hoc without editing the
// project's .codeintel.kdl.
type outputOverrides struct {
	Output struct {
		Format        string `toml:"format"`
		Deterministic *bool  `toml:"deterministic"`
		GraphBudget   int    `toml:"graph_budget"`
	} `toml:"output"`
}

// LoadTOMLOverrides reads a TOML file at path and applies its [output]
// table onto cfg, leaving every other section untouched. Missing fields
// in the TOML leave cfg's existing value in place.
func LoadTOMLOverrides(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var overrides outputOverrides
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return err
	}

	if overrides.Output.Format != "" {
		cfg.Output.Format = overrides.Output.Format
	}
	if overrides.Output.Deterministic != nil {
		cfg.Output.Deterministic = *overrides.Output.Deterministic
	}
	if overrides.Output.GraphBudget != 0 {
		cfg.Output.GraphBudget = overrides.Output.GraphBudget
	}

	return nil
}
