package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteArtifacts_WritesFilesAndManifest(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"report.json":     []byte(`{"ok":true}`),
		"complexity.json": []byte(`{"score":1}`),
	}

	manifest, err := WriteArtifacts(dir, files)
	require.NoError(t, err)
	assert.Len(t, manifest.Entries, 2)

	assert.Equal(t, "complexity.json", manifest.Entries[0].Filename)
	assert.Equal(t, "report.json", manifest.Entries[1].Filename)

	data, ok := readFile(filepath.Join(dir, "report.json"))
	require.True(t, ok)
	assert.Equal(t, files["report.json"], data)

	manifestBytes, ok := readFile(filepath.Join(dir, "manifest.json"))
	require.True(t, ok)
	assert.Contains(t, string(manifestBytes), "report.json")
}

func TestVerifyArtifacts_DetectsTamperedFile(t *testing.T) {
	dir := t.TempDir()
	manifest, err := WriteArtifacts(dir, map[string][]byte{"a.json": []byte("original")})
	require.NoError(t, err)

	require.NoError(t, writeFileAtomic(filepath.Join(dir, "a.json"), []byte("tampered")))

	problems := VerifyArtifacts(dir, manifest)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "hash mismatch")
}

func TestVerifyArtifacts_DetectsMissingFile(t *testing.T) {
	dir := t.TempDir()
	manifest, err := WriteArtifacts(dir, map[string][]byte{"a.json": []byte("original")})
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, "a.json")))

	problems := VerifyArtifacts(dir, manifest)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "missing")
}
