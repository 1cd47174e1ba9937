package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/codeintel/internal/config"
)

func TestConfigHash_DeterministicForSameConfig(t *testing.T) {
	cfg := config.DefaultConfig("/proj")

	a, err := configHash(cfg)
	require.NoError(t, err)
	b, err := configHash(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestConfigHash_ChangesWithConfig(t *testing.T) {
	cfg := config.DefaultConfig("/proj")
	a, err := configHash(cfg)
	require.NoError(t, err)

	cfg.Complexity.CycloWarn = 99
	b, err := configHash(cfg)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
