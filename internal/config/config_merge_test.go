package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeConfigs_ExclusionsMerge(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/node_modules/**",
			"**/vendor/**",
			"**/real_projects/**",
		},
	}

	project := &Config{
		Exclude: []string{
			"**/dist/**",
			"**/build/**",
		},
	}

	merged := mergeConfigs(base, project)

	assert.Contains(t, merged.Exclude, "**/node_modules/**")
	assert.Contains(t, merged.Exclude, "**/vendor/**")
	assert.Contains(t, merged.Exclude, "**/real_projects/**")
	assert.Contains(t, merged.Exclude, "**/dist/**")
	assert.Contains(t, merged.Exclude, "**/build/**")
	assert.Len(t, merged.Exclude, 5)
}

func TestMergeConfigs_ExclusionsDeduplication(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/node_modules/**",
			"**/vendor/**",
		},
	}

	project := &Config{
		Exclude: []string{
			"**/node_modules/**",
			"**/dist/**",
		},
	}

	merged := mergeConfigs(base, project)

	assert.Len(t, merged.Exclude, 3)
	assert.Contains(t, merged.Exclude, "**/node_modules/**")
	assert.Contains(t, merged.Exclude, "**/vendor/**")
	assert.Contains(t, merged.Exclude, "**/dist/**")
}

func TestMergeConfigs_InclusionsProjectOverride(t *testing.T) {
	base := &Config{Include: []string{"*.go", "*.js"}}
	project := &Config{Include: []string{"*.py", "*.ts"}}

	merged := mergeConfigs(base, project)

	assert.Equal(t, project.Include, merged.Include)
	assert.Len(t, merged.Include, 2)
}

func TestMergeConfigs_InclusionsUseBaseIfProjectEmpty(t *testing.T) {
	base := &Config{Include: []string{"*.go", "*.js"}}
	project := &Config{Include: []string{}}

	merged := mergeConfigs(base, project)

	assert.Equal(t, base.Include, merged.Include)
}

func TestMergeConfigs_ProjectSettingsTakePrecedence(t *testing.T) {
	base := &Config{
		Discovery:   Discovery{MaxFileSize: 1024 * 1024},
		Performance: Performance{ParallelFileWorkers: 2},
	}

	project := &Config{
		Discovery:   Discovery{MaxFileSize: 10 * 1024 * 1024},
		Performance: Performance{ParallelFileWorkers: 8},
	}

	merged := mergeConfigs(base, project)

	assert.Equal(t, int64(10*1024*1024), merged.Discovery.MaxFileSize)
	assert.Equal(t, 8, merged.Performance.ParallelFileWorkers)
}

func TestMergeConfigs_EmptyBaseExclusions(t *testing.T) {
	base := &Config{Exclude: []string{}}
	project := &Config{Exclude: []string{"**/dist/**"}}

	merged := mergeConfigs(base, project)

	assert.Equal(t, project.Exclude, merged.Exclude)
}

func TestLoadWithRoot_MergesGlobalAndProjectConfigs(t *testing.T) {
	tmpHome := t.TempDir()
	tmpProject := t.TempDir()

	globalConfig := `
exclude {
    "**/node_modules/**"
    "**/vendor/**"
    "**/real_projects/**"
}

include {
    "*.go"
    "*.js"
}

discovery {
    max_file_size "5MB"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpHome, ".codeintel.kdl"), []byte(globalConfig), 0644))

	projectConfig := `
project {
    root "."
}

exclude {
    "**/dist/**"
    "**/build/**"
}

discovery {
    max_file_size "10MB"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpProject, ".codeintel.kdl"), []byte(projectConfig), 0644))

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
	assert.Contains(t, cfg.Exclude, "**/vendor/**")
	assert.Contains(t, cfg.Exclude, "**/real_projects/**")
	assert.Contains(t, cfg.Exclude, "**/dist/**")
	assert.Contains(t, cfg.Exclude, "**/build/**")

	assert.Equal(t, int64(10*1024*1024), cfg.Discovery.MaxFileSize)
}

func TestLoadWithRoot_ProjectConfigOnly(t *testing.T) {
	tmpProject := t.TempDir()

	projectConfig := `
project {
    root "."
}

exclude {
    "**/dist/**"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpProject, ".codeintel.kdl"), []byte(projectConfig), 0644))

	os.Setenv("HOME", "/nonexistent")
	defer os.Unsetenv("HOME")

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/dist/**")
}

func TestLoadWithRoot_GlobalConfigOnly(t *testing.T) {
	tmpHome := t.TempDir()
	tmpProject := t.TempDir()

	globalConfig := `
exclude {
    "**/node_modules/**"
    "**/real_projects/**"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpHome, ".codeintel.kdl"), []byte(globalConfig), 0644))

	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tmpHome)
	defer os.Setenv("HOME", originalHome)

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Exclude, "**/node_modules/**")
	assert.Contains(t, cfg.Exclude, "**/real_projects/**")
}

func TestLoadWithRoot_DefaultConfigFallback(t *testing.T) {
	tmpProject := t.TempDir()
	os.Setenv("HOME", "/nonexistent")
	defer os.Unsetenv("HOME")

	cfg, err := LoadWithRoot("", tmpProject)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Empty(t, cfg.Include)
}

func TestMergeConfigs_PreservesBaseExclusionsInTests(t *testing.T) {
	base := &Config{
		Exclude: []string{
			"**/real_projects/**",
			"**/testing/**",
			"**/testdata/**",
		},
	}

	project := &Config{
		Project: Project{Root: "/tmp/test-project"},
		Exclude: []string{},
	}

	merged := mergeConfigs(base, project)

	assert.Contains(t, merged.Exclude, "**/real_projects/**")
	assert.Contains(t, merged.Exclude, "**/testing/**")
	assert.Contains(t, merged.Exclude, "**/testdata/**")
}
