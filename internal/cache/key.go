package cache

import (
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/standardbeagle/codeintel/internal/types"
)

// Key fingerprints one cached computation by the triple spec.md §4.11
// names: the input content's hash, the analyzer version that would
// produce the value, and the active config's hash. Two runs with
// identical inputs and config always derive the same Fingerprint, which
// is what lets L2 on-disk entries survive across process restarts and
// lets L1/L3 dedupe within one.
type Key struct {
	Namespace       string // e.g. "complexity", "deadcode", "tdg"
	ContentHash     types.ContentHash
	AnalyzerVersion string
	ConfigHash      string
}

// Fingerprint is the blake3 digest of Key's fields, hex-encoded — the
// same digest family internal/discovery already hashes file content with
// and internal/tdg hashes SATD context with, reused here as the on-disk
// filename and the L1/L3 map key.
func (k Key) Fingerprint() string {
	h := blake3.New()
	_, _ = h.Write([]byte(k.Namespace))
	_, _ = h.Write(k.ContentHash[:])
	_, _ = h.Write([]byte(k.AnalyzerVersion))
	_, _ = h.Write([]byte(k.ConfigHash))
	return hex.EncodeToString(h.Sum(nil))
}
