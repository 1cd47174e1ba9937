package cache

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to path by first writing a temp file in the
// same directory, then renaming it into place — rename is atomic on the
// same filesystem, so readers never observe a partially-written file.
// Shared by L2's disk tier and the artifact writer (spec.md §4.11:
// "Artifact writes are atomic (temp file + rename)").
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// readFile reads path, reporting whether it exists and was readable.
func readFile(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}
