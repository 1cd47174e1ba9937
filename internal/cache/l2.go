package cache

import (
	"os"
	"path/filepath"
)

// L2 is the content-addressed on-disk cache tier: one file per
// fingerprint, named by the fingerprint itself, written atomically
// (spec.md §4.11). It survives process restarts, unlike L1/L3.
type L2 struct {
	dir string
}

func NewL2(dir string) *L2 {
	return &L2{dir: dir}
}

func (l *L2) path(ns, fingerprint string) string {
	return filepath.Join(l.dir, ns, fingerprint[:2], fingerprint)
}

func (l *L2) Get(ns, fingerprint string) ([]byte, bool) {
	data, err := os.ReadFile(l.path(ns, fingerprint))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (l *L2) Put(ns, fingerprint string, value []byte) error {
	return writeFileAtomic(l.path(ns, fingerprint), value)
}
