package cache

import (
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"sort"
	"time"

	"github.com/zeebo/blake3"
)

// ManifestEntry is one artifact's record in manifest.json (spec.md
// §4.11/§7's artifact layout: "manifest.json lists {filename, size,
// blake3} for every artifact").
type ManifestEntry struct {
	Filename string `json:"filename"`
	Size     int    `json:"size"`
	Blake3   string `json:"blake3"`
}

// Manifest is the artifact directory's index, written last so every other
// file's hash is already known. GeneratedAt is fenced into its own field
// (spec.md invariant: two runs on unchanged input produce byte-identical
// artifacts "including manifest.json modulo timestamps, which are fenced
// into a dedicated field") so the rest of the manifest can be compared
// byte-for-byte across runs.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Entries     []ManifestEntry `json:"entries"`
}

// WriteArtifacts atomically writes every (filename, content) pair under
// dir, then writes manifest.json summarizing them — each file name sorted
// for deterministic manifest ordering (spec.md §8 invariant: determinism
// end to end).
func WriteArtifacts(dir string, files map[string][]byte) (Manifest, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	manifest := Manifest{GeneratedAt: time.Now(), Entries: make([]ManifestEntry, 0, len(names))}
	for _, name := range names {
		data := files[name]
		if err := writeFileAtomic(filepath.Join(dir, name), data); err != nil {
			return Manifest{}, err
		}
		sum := blake3.Sum256(data)
		manifest.Entries = append(manifest.Entries, ManifestEntry{
			Filename: name,
			Size:     len(data),
			Blake3:   hex.EncodeToString(sum[:]),
		})
	}

	manifestBytes, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return Manifest{}, err
	}
	if err := writeFileAtomic(filepath.Join(dir, "manifest.json"), manifestBytes); err != nil {
		return Manifest{}, err
	}
	return manifest, nil
}

// VerifyArtifacts rehashes every file manifest names and reports any
// mismatch or missing file — spec.md §4.11's "integrity verification
// reads manifest and rehashes on demand".
func VerifyArtifacts(dir string, manifest Manifest) []string {
	var problems []string
	for _, entry := range manifest.Entries {
		data, ok := readFile(filepath.Join(dir, entry.Filename))
		if !ok {
			problems = append(problems, entry.Filename+": missing")
			continue
		}
		sum := blake3.Sum256(data)
		if hex.EncodeToString(sum[:]) != entry.Blake3 {
			problems = append(problems, entry.Filename+": hash mismatch")
		}
	}
	return problems
}
