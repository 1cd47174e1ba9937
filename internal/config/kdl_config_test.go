package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDL_Defaults(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.True(t, cfg.Discovery.RespectVCSIgnore)
	assert.Equal(t, 10, cfg.Complexity.CycloWarn)
	assert.Equal(t, 20, cfg.Complexity.CycloError)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestParseKDL_DiscoverySection(t *testing.T) {
	kdlContent := `
discovery {
    respect_vcs_ignore false
    include_hidden true
    max_file_size "5MB"
    max_line_length 500
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.False(t, cfg.Discovery.RespectVCSIgnore)
	assert.True(t, cfg.Discovery.IncludeHidden)
	assert.Equal(t, int64(5*1024*1024), cfg.Discovery.MaxFileSize)
	assert.Equal(t, 500, cfg.Discovery.MaxLineLength)
}

func TestParseKDL_ComplexitySection(t *testing.T) {
	kdlContent := `
complexity {
    cyclomatic_warn 15
    cyclomatic_error 25
    cognitive_warn 20
    cognitive_error 40
    top_files 10
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 15, cfg.Complexity.CycloWarn)
	assert.Equal(t, 25, cfg.Complexity.CycloError)
	assert.Equal(t, 20, cfg.Complexity.CogWarn)
	assert.Equal(t, 40, cfg.Complexity.CogError)
	assert.Equal(t, 10, cfg.Complexity.TopFiles)
}

func TestParseKDL_TDGWeights(t *testing.T) {
	kdlContent := `
tdg {
    weight_complexity 0.5
    weight_churn 0.2
    weight_coupling 0.1
    weight_domain_risk 0.1
    weight_duplication 0.1
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 0.5, cfg.TDG.WeightComplexity)
	assert.Equal(t, 0.2, cfg.TDG.WeightChurn)
	assert.Equal(t, 0.1, cfg.TDG.WeightCoupling)
}

func TestParseKDL_PartialComplexityConfig(t *testing.T) {
	kdlContent := `
complexity {
    cyclomatic_warn 5
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 5, cfg.Complexity.CycloWarn)
	// untouched fields keep defaults
	assert.Equal(t, 20, cfg.Complexity.CycloError)
	assert.Equal(t, 15, cfg.Complexity.CogWarn)
}

func TestParseKDL_IntegerFloatArg(t *testing.T) {
	kdlContent := `
tdg {
    weight_complexity 1
}
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 1.0, cfg.TDG.WeightComplexity)
}

func TestParseKDL_FullConfig(t *testing.T) {
	kdlContent := `
project {
    root "."
}

discovery {
    max_file_size "5MB"
    respect_vcs_ignore true
}

performance {
    parallel_file_workers 8
}

cache {
    enabled true
    directory ".cache"
    max_size_mb 256
}

output {
    format "mermaid"
    deterministic true
    graph_budget 200
}

exclude "**/.git/**" "**/node_modules/**"
`
	cfg, err := parseKDL(kdlContent)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, int64(5*1024*1024), cfg.Discovery.MaxFileSize)
	assert.True(t, cfg.Discovery.RespectVCSIgnore)
	assert.Equal(t, 8, cfg.Performance.ParallelFileWorkers)
	assert.Equal(t, ".cache", cfg.Cache.Directory)
	assert.Equal(t, int64(256), cfg.Cache.MaxSizeMB)
	assert.Equal(t, "mermaid", cfg.Output.Format)
	assert.Equal(t, 200, cfg.Output.GraphBudget)
	assert.Contains(t, cfg.Exclude, "**/.git/**")
	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
}
