package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig("/some/root")
	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, "/some/root", cfg.Project.Root)
	assert.True(t, cfg.Discovery.RespectVCSIgnore)
}

func TestToDeepContextConfig_MapsFields(t *testing.T) {
	cfg := DefaultConfig("/proj")
	cfg.Discovery.MaxFileSize = 123
	cfg.Complexity.CycloWarn = 7
	cfg.Output.GraphBudget = 42
	cfg.Cache.Directory = ".cache"

	dcc := cfg.ToDeepContextConfig("v1", "hash123")

	assert.Equal(t, "/proj", dcc.ProjectRoot)
	assert.Equal(t, int64(123), dcc.MaxFileSize)
	assert.Equal(t, 7, dcc.ComplexityThresholds.CycloWarn)
	assert.Equal(t, 42, dcc.GraphPruneBudget)
	assert.Equal(t, ".cache", dcc.CacheDir)
	assert.Equal(t, "v1", dcc.AnalyzerVersion)
	assert.Equal(t, "hash123", dcc.ConfigHash)
}

func TestTDGWeights_MapsFromConfig(t *testing.T) {
	cfg := DefaultConfig("/proj")
	cfg.TDG.WeightChurn = 0.9

	w := cfg.TDGWeights()
	assert.Equal(t, 0.9, w.Churn)
}

func TestApplyVCSIgnore_FoldsGitignorePatterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\nbuild/\n"), 0644))

	cfg := DefaultConfig(root)
	require.NoError(t, cfg.ApplyVCSIgnore())

	assert.Contains(t, cfg.Exclude, "**/*.log")
}

func TestApplyVCSIgnore_NoopWhenDisabled(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\n"), 0644))

	cfg := DefaultConfig(root)
	cfg.Discovery.RespectVCSIgnore = false
	before := len(cfg.Exclude)

	require.NoError(t, cfg.ApplyVCSIgnore())
	assert.Len(t, cfg.Exclude, before)
}

func TestApplyDetectedBuildArtifacts_ReadsPackageJSON(t *testing.T) {
	root := t.TempDir()
	pkgJSON := `{"build": {"outDir": "custom-out"}}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "package.json"), []byte(pkgJSON), 0644))

	cfg := DefaultConfig(root)
	cfg.ApplyDetectedBuildArtifacts()

	assert.Contains(t, cfg.Exclude, "**/custom-out/**")
}

func TestLoadTOMLOverrides_AppliesOutputSection(t *testing.T) {
	root := t.TempDir()
	tomlPath := filepath.Join(root, "overrides.toml")
	content := `
[output]
format = "mermaid"
graph_budget = 100
`
	require.NoError(t, os.WriteFile(tomlPath, []byte(content), 0644))

	cfg := DefaultConfig(root)
	require.NoError(t, LoadTOMLOverrides(cfg, tomlPath))

	assert.Equal(t, "mermaid", cfg.Output.Format)
	assert.Equal(t, 100, cfg.Output.GraphBudget)
}
