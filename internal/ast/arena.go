package ast

import "github.com/standardbeagle/codeintel/internal/types"

// Tree is one file's unified AST, stored as a struct-of-slices arena: every
// node is a row spread across parallel slices, addressed by NodeRef. This
// replaces a pointer-linked tree with dense integer indices so the whole
// forest for a large project can be held in memory without a GC object per
// node.
type Tree struct {
	File types.FileID

	kinds    []Kind
	flags    []Flags
	spans    []Span
	names    []NameRef
	parents  []NodeRef
	children [][]NodeRef

	pool    []string
	interned map[string]NameRef
}

// NewTree allocates an empty arena for the given file. capHint sizes the
// backing slices up front (typically the file's line count) to avoid
// repeated growth during lowering.
func NewTree(file types.FileID, capHint int) *Tree {
	if capHint < 0 {
		capHint = 0
	}
	return &Tree{
		File:     file,
		kinds:    make([]Kind, 0, capHint),
		flags:    make([]Flags, 0, capHint),
		spans:    make([]Span, 0, capHint),
		names:    make([]NameRef, 0, capHint),
		parents:  make([]NodeRef, 0, capHint),
		children: make([][]NodeRef, 0, capHint),
		pool:     make([]string, 0, capHint/4+1),
		interned: make(map[string]NameRef, capHint/4+1),
	}
}

// Intern returns the NameRef for s, allocating a new pool entry on first
// sight. Empty strings always map to NameRef 0.
func (t *Tree) Intern(s string) NameRef {
	if s == "" {
		return 0
	}
	if ref, ok := t.interned[s]; ok {
		return ref
	}
	t.pool = append(t.pool, s)
	ref := NameRef(len(t.pool))
	t.interned[s] = ref
	return ref
}

// Name resolves a NameRef back to its string.
func (t *Tree) Name(ref NameRef) string {
	if ref == 0 || int(ref) > len(t.pool) {
		return ""
	}
	return t.pool[ref-1]
}

// Add appends a new node as a child of parent (NilRef for the root) and
// returns its NodeRef. Nodes are allocated in preorder during lowering, so
// NodeRef order already matches a depth-first traversal.
func (t *Tree) Add(parent NodeRef, kind Kind, flags Flags, span Span, name NameRef) NodeRef {
	t.kinds = append(t.kinds, kind)
	t.flags = append(t.flags, flags)
	t.spans = append(t.spans, span)
	t.names = append(t.names, name)
	t.parents = append(t.parents, parent)
	t.children = append(t.children, nil)

	ref := NodeRef(len(t.kinds))
	if parent != NilRef {
		pi := parent - 1
		t.children[pi] = append(t.children[pi], ref)
	}
	return ref
}

func (t *Tree) Len() int { return len(t.kinds) }

func (t *Tree) Kind(n NodeRef) Kind       { return t.kinds[n-1] }
func (t *Tree) Flags(n NodeRef) Flags     { return t.flags[n-1] }
func (t *Tree) Span(n NodeRef) Span       { return t.spans[n-1] }
func (t *Tree) NameRef(n NodeRef) NameRef { return t.names[n-1] }
func (t *Tree) NodeName(n NodeRef) string { return t.Name(t.names[n-1]) }
func (t *Tree) Parent(n NodeRef) NodeRef  { return t.parents[n-1] }
func (t *Tree) Children(n NodeRef) []NodeRef {
	if n == NilRef {
		return nil
	}
	return t.children[n-1]
}

// SetFlags ORs bit into n's flags. Used by post-lowering passes (dead-code
// marking, entry-point tagging) that mutate nodes after the arena is built.
func (t *Tree) SetFlags(n NodeRef, bit Flags) {
	t.flags[n-1] = t.flags[n-1].Set(bit)
}

// Root returns the file's top-level node, always NodeRef 1 by construction
// (the first Add call during lowering is the KindFile root).
func (t *Tree) Root() NodeRef {
	if t.Len() == 0 {
		return NilRef
	}
	return 1
}
