// Package git implements spec.md §6's ChurnProvider port: given a path,
// return how many commits touched it within a time window. Grounded on
// the teacher's internal/git/provider.go (repo-root resolution via `git
// rev-parse --show-toplevel`, exec.CommandContext-based git invocation)
// and internal/git/frequency_provider.go's `git log --format=... --since=...
// -- <path>` commit-history query, collapsed from the teacher's full
// change-frequency/hotspot/collision/ownership analysis (none of which
// spec.md's component list calls for) down to the one count the TDG
// churn component (C9) needs.
package git

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Provider resolves a repository root once and answers ChurnProvider
// queries against it via the git CLI.
type Provider struct {
	repoRoot string
}

// NewProvider resolves repoRoot's git toplevel directory. Grounded on the
// teacher's NewProvider: `git rev-parse --show-toplevel` works from any
// subdirectory inside the repository.
func NewProvider(repoRoot string) (*Provider, error) {
	absRoot, err := filepath.Abs(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("invalid repo root: %w", err)
	}

	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = absRoot
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %s", absRoot)
	}

	return &Provider{repoRoot: strings.TrimSpace(string(output))}, nil
}

// CommitsSince implements port.ChurnProvider: counts commits touching
// path since the given time, via `git log --since=<rfc3339>
// --format=%H -- <path>`.
func (p *Provider) CommitsSince(ctx context.Context, path string, since time.Time) (int, error) {
	args := []string{
		"log",
		"--since=" + since.Format(time.RFC3339),
		"--format=%H",
		"--",
		path,
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.repoRoot

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("git log failed for %s: %w", path, err)
	}

	count := 0
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) != "" {
			count++
		}
	}
	return count, scanner.Err()
}
