package config

import (
	"errors"
	"fmt"
	"runtime"

	codeintelerrors "github.com/standardbeagle/codeintel/internal/errors"
)

// Validator validates configuration and sets smart defaults.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults validates cfg (spec.md §7: ConfigError "fail
// fast at orchestrator entry") and fills in any zero-valued field that
// has a CPU/memory-derived default.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if err := v.validateProjectConfig(&cfg.Project); err != nil {
		return codeintelerrors.NewConfigError("project", cfg.Project.Root, err)
	}
	if err := v.validateDiscoveryConfig(&cfg.Discovery); err != nil {
		return codeintelerrors.NewConfigError("discovery", fmt.Sprintf("%d", cfg.Discovery.MaxFileSize), err)
	}
	if err := v.validatePerformanceConfig(&cfg.Performance); err != nil {
		return codeintelerrors.NewConfigError("performance", fmt.Sprintf("%d", cfg.Performance.ParallelFileWorkers), err)
	}
	if err := v.validateComplexityConfig(&cfg.Complexity); err != nil {
		return codeintelerrors.NewConfigError("complexity", "", err)
	}
	if err := v.validateTDGConfig(&cfg.TDG); err != nil {
		return codeintelerrors.NewConfigError("tdg", "", err)
	}

	v.setSmartDefaults(cfg)
	return nil
}

func (v *Validator) validateProjectConfig(project *Project) error {
	if project.Root == "" {
		return errors.New("project root cannot be empty")
	}
	return nil
}

func (v *Validator) validateDiscoveryConfig(d *Discovery) error {
	if d.MaxFileSize <= 0 {
		return fmt.Errorf("MaxFileSize must be positive, got %d", d.MaxFileSize)
	}
	if d.MaxLineLength < 0 {
		return fmt.Errorf("MaxLineLength cannot be negative, got %d", d.MaxLineLength)
	}
	return nil
}

func (v *Validator) validatePerformanceConfig(perf *Performance) error {
	if perf.ParallelFileWorkers < 0 {
		return fmt.Errorf("ParallelFileWorkers cannot be negative, got %d", perf.ParallelFileWorkers)
	}
	return nil
}

func (v *Validator) validateComplexityConfig(c *Complexity) error {
	if c.CycloWarn > 0 && c.CycloError > 0 && c.CycloWarn > c.CycloError {
		return fmt.Errorf("CycloWarn (%d) must not exceed CycloError (%d)", c.CycloWarn, c.CycloError)
	}
	if c.CogWarn > 0 && c.CogError > 0 && c.CogWarn > c.CogError {
		return fmt.Errorf("CogWarn (%d) must not exceed CogError (%d)", c.CogWarn, c.CogError)
	}
	return nil
}

func (v *Validator) validateTDGConfig(t *TDGConfig) error {
	sum := t.WeightComplexity + t.WeightChurn + t.WeightCoupling + t.WeightDomainRisk + t.WeightDuplication
	if sum <= 0 {
		return fmt.Errorf("TDG weights must sum to a positive value, got %v", sum)
	}
	return nil
}

// setSmartDefaults fills zero-valued fields with CPU-count-derived
// defaults, grounded on the teacher's identical cores-1 heuristic.
func (v *Validator) setSmartDefaults(cfg *Config) {
	if cfg.Performance.ParallelFileWorkers == 0 {
		cfg.Performance.ParallelFileWorkers = max(1, runtime.NumCPU()-1)
	}
	if cfg.Complexity.TopFiles == 0 {
		cfg.Complexity.TopFiles = 25
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
}

// ValidateConfig is a convenience wrapper around Validator.
func ValidateConfig(cfg *Config) error {
	return NewValidator().ValidateAndSetDefaults(cfg)
}
