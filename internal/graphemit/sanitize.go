// Package graphemit serializes a types.DependencyGraph into Mermaid (the
// primary format), GraphML and DOT, deterministically: node/edge iteration
// always follows the canonical sort order a DependencyGraph exposes, so
// output is byte-identical across runs on the same input graph.
package graphemit

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/codeintel/internal/types"
)

// IDSanitizer assigns every NodeKey a collision-free identifier matching
// [A-Za-z0-9_]+, suffixing a numeric tag when two keys sanitize to the
// same string.
type IDSanitizer struct {
	assigned map[types.NodeKey]string
	used     map[string]int
}

func NewIDSanitizer() *IDSanitizer {
	return &IDSanitizer{
		assigned: make(map[types.NodeKey]string),
		used:     make(map[string]int),
	}
}

func (s *IDSanitizer) ID(key types.NodeKey) string {
	if id, ok := s.assigned[key]; ok {
		return id
	}
	base := sanitizeBase(string(key))
	id := base
	if n, taken := s.used[base]; taken {
		for {
			n++
			id = fmt.Sprintf("%s_%d", base, n)
			if _, clash := s.used[id]; !clash {
				break
			}
		}
		s.used[base] = n
	}
	s.used[id] = 0
	s.assigned[key] = id
	return id
}

func sanitizeBase(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := b.String()
	if out == "" {
		return "n"
	}
	if out[0] >= '0' && out[0] <= '9' {
		return "n" + out
	}
	return out
}

// EscapeMode selects how node/edge labels are escaped for a target
// renderer's compatibility quirks, per spec.md §4.6.
type EscapeMode int

const (
	EscapeUniversal EscapeMode = iota
	EscapeStandard
	EscapeGitHub
	EscapeIntelliJ
)

// EscapeLabel applies mode's escaping rules to label.
func EscapeLabel(label string, mode EscapeMode) string {
	switch mode {
	case EscapeStandard:
		r := strings.NewReplacer(
			"&", "&amp;",
			"<", "&lt;",
			">", "&gt;",
			`"`, "&quot;",
			"'", "&#39;",
			"|", "&#124;",
			"[", "&#91;",
			"]", "&#93;",
			"{", "&#123;",
			"}", "&#125;",
		)
		return r.Replace(label)
	case EscapeGitHub:
		r := strings.NewReplacer(`"`, "'", "|", "/")
		return r.Replace(label)
	case EscapeIntelliJ:
		var b strings.Builder
		for _, r := range label {
			if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == ' ' {
				b.WriteRune(r)
			} else {
				b.WriteByte('_')
			}
		}
		return b.String()
	default: // EscapeUniversal
		var b strings.Builder
		for _, r := range label {
			switch {
			case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
				r == ' ', r == '_', r == '-', r == '.':
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
		}
		return b.String()
	}
}
