package ast

import "github.com/standardbeagle/codeintel/internal/types"

// NodeRef is an index into a Tree's arena. Zero is the reserved "no node"
// sentinel; real nodes are allocated starting at 1 so a NodeRef zero value
// is always distinguishable from the root.
type NodeRef uint32

const NilRef NodeRef = 0

// Span is a node's byte and line/column extent in its source file.
type Span struct {
	StartByte, EndByte     uint32
	StartLine, StartColumn uint32
	EndLine, EndColumn     uint32
}

// NameRef indexes into a Tree's interned name pool rather than carrying a
// separate string per node.
type NameRef uint32
