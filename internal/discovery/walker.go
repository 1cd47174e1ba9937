package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zeebo/blake3"

	"github.com/standardbeagle/codeintel/internal/types"
)

// Walker discovers and classifies every file under a root directory,
// applying exclude patterns before classification and symlink-cycle
// detection during traversal.
type Walker struct {
	Excludes      []string
	MaxFileSize   int64
	MaxLineLength int
}

// NewWalker builds a Walker from a resolved DeepContextConfig, folding in
// cfg.IgnorePatterns (KDL excludes plus any gitignore/build-artifact
// patterns already merged into it by package config) and
// cfg.ExternalRepoFilter on top of the static DefaultExcludes, plus any
// caller-supplied extraExcludes (e.g. --exclude CLI flags not yet present
// in cfg). The hidden-directory default only applies when
// cfg.IncludeHidden is false. MaxFileSize/MaxLineLength fall back to
// DefaultMaxFileSize/DefaultMaxLineLength when cfg leaves them at zero.
func NewWalker(cfg types.DeepContextConfig, extraExcludes []string) *Walker {
	w := &Walker{}
	w.Excludes = append(w.Excludes, DefaultExcludes...)
	if !cfg.IncludeHidden {
		w.Excludes = append(w.Excludes, HiddenDirExclude)
	}
	w.Excludes = append(w.Excludes, cfg.IgnorePatterns...)
	w.Excludes = append(w.Excludes, cfg.ExternalRepoFilter...)
	w.Excludes = append(w.Excludes, extraExcludes...)

	w.MaxFileSize = cfg.MaxFileSize
	if w.MaxFileSize <= 0 {
		w.MaxFileSize = DefaultMaxFileSize
	}
	w.MaxLineLength = cfg.MaxLineLength
	if w.MaxLineLength <= 0 {
		w.MaxLineLength = DefaultMaxLineLength
	}
	return w
}

func (w *Walker) excluded(relPath string, isDir bool) bool {
	normalized := filepath.ToSlash(relPath)
	candidate := normalized
	if isDir {
		candidate = normalized + "/"
	}
	for _, pattern := range w.Excludes {
		if ok, _ := doublestar.Match(pattern, normalized); ok {
			return true
		}
		if isDir {
			if ok, _ := doublestar.Match(pattern, candidate); ok {
				return true
			}
		}
	}
	return false
}

// Walk returns every SourceFile under root in deterministic lexicographic
// path order (spec.md invariant: "discovery order is a pure function of
// the filesystem tree, independent of OS readdir order").
func (w *Walker) Walk(ctx context.Context, root string) ([]types.SourceFile, error) {
	var files []types.SourceFile
	visitedDirs := make(map[string]bool)
	var nextID types.FileID

	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if walkErr != nil {
			return nil
		}

		if info.IsDir() {
			real, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil
			}
			if visitedDirs[real] {
				return filepath.SkipDir
			}
			visitedDirs[real] = true

			if path == root {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			if w.excluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)
		if w.excluded(rel, false) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		nextID++
		hash := blake3.Sum256(content)

		files = append(files, types.SourceFile{
			ID:             nextID,
			Path:           rel,
			AbsPath:        path,
			ContentHash:    types.ContentHash(hash),
			Size:           info.Size(),
			Language:       LanguageOf(rel),
			ModTime:        info.ModTime(),
			Classification: Classify(rel, content, false, w.MaxFileSize, w.MaxLineLength),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	for i := range files {
		files[i].ID = types.FileID(i + 1)
	}
	return files, nil
}
