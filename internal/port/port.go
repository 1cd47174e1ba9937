// Package port hosts the external-collaborator interfaces spec.md §6
// names: the boundaries the analysis core talks to without depending on
// any concrete transport, VCS, or templating implementation. Grounded on
// the teacher's internal/git treating its provider as "a pure
// ChurnProvider port" and on its cmd-layer transport/template split
// (cmd/lci wires cobra/CLI output; the core package never parses request
// frames itself).
package port

import (
	"context"
	"io/fs"
	"time"

	"github.com/standardbeagle/codeintel/internal/types"
)

// FileSystem abstracts reading bytes, enumerating directories, and
// stat'ing mtimes, so discovery (C1) can run against an in-memory tree in
// tests without touching the real filesystem.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// ChurnProvider returns, for a given path, the commit count touching it
// within a window — a git-agnostic interface so the TDG churn component
// (C9) never imports a VCS library directly.
type ChurnProvider interface {
	CommitsSince(ctx context.Context, path string, since time.Time) (int, error)
}

// TransportAdapter accepts a finished DeepContextReport and emits it over
// whatever wire format the caller needs (JSON-RPC, HTTP, plain CLI
// stdout); the analysis core never parses request frames itself.
type TransportAdapter interface {
	Send(ctx context.Context, report types.DeepContextReport) error
}

// TemplateEngine renders project scaffolding output; it is never
// consumed by the analysis core itself (spec.md §6: "scaffolding output
// only").
type TemplateEngine interface {
	Render(templateName string, data interface{}) ([]byte, error)
}
