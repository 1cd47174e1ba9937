// Package depgraph builds a types.DependencyGraph from a resolved symbol
// table and the ast.Trees it was built from, then prunes it to a display
// budget via PageRank. Grounded in shape on the teacher's
// internal/core/universal_graph.go (map-backed node/edge indexes) and
// internal/core/graph_propagator.go (iterative, convergence-bounded graph
// algorithms), retargeted from the teacher's open-ended relationship set
// to the spec's fixed Calls/Imports/Inherits/Contains/Uses edge kinds.
package depgraph

import (
	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/types"
)

// Build constructs a DependencyGraph from the declared symbols and their
// resolved reference sites: every symbol becomes a node, every reference
// site becomes an edge from the enclosing declaration of the call/import
// site to the referenced symbol.
func Build(files []symtab.FileTree, table *types.SymbolTable) *types.DependencyGraph {
	g := types.NewDependencyGraph()
	treeByFile := make(map[types.FileID]*ast.Tree, len(files))
	for _, ft := range files {
		treeByFile[ft.File.ID] = ft.Tree
	}

	type declKey struct {
		file types.FileID
		node types.NodeID
	}
	byDecl := make(map[declKey]string, table.Len())
	for _, sym := range table.All() {
		byDecl[declKey{sym.DefiningFile, sym.DefiningNode}] = sym.QualifiedName

		g.AddNode(types.NodeInfo{
			Key:          types.NodeKey(sym.QualifiedName),
			DisplayLabel: sym.QualifiedName,
			Kind:         nodeKindOf(sym.Kind),
			FileRef:      sym.DefiningFile,
		})
	}

	for _, sym := range table.All() {
		to := types.NodeKey(sym.QualifiedName)
		for _, site := range table.References(sym.ID) {
			tree := treeByFile[site.FileID]
			if tree == nil {
				continue
			}
			enclosing := tree.EnclosingDeclaration(ast.NodeRef(site.NodeID))
			if enclosing == ast.NilRef {
				continue
			}
			name, ok := byDecl[declKey{site.FileID, types.NodeID(enclosing)}]
			if !ok {
				continue
			}
			from := types.NodeKey(name)
			kind := types.EdgeCalls
			if tree.Kind(ast.NodeRef(site.NodeID)) == ast.KindImport {
				kind = types.EdgeImports
			}
			if from == to && kind == types.EdgeCalls {
				// Recursive self-call: kept as a genuine edge rather than
				// dropped, per spec.md §3 invariant (b) — it is the
				// builder's job, not the arena's, to decide this is real
				// recursion rather than a malformed edge.
			}
			g.AddEdge(types.Edge{From: from, To: to, Kind: kind, Weight: 1})
		}
	}

	g.Canonicalize()
	return g
}

func nodeKindOf(k types.SymbolKind) types.NodeKind {
	switch k {
	case types.SymbolKindFunction:
		return types.NodeKindFunction
	case types.SymbolKindMethod:
		return types.NodeKindMethod
	case types.SymbolKindClass, types.SymbolKindStruct:
		return types.NodeKindClass
	case types.SymbolKindTrait:
		return types.NodeKindTrait
	default:
		return types.NodeKindModule
	}
}
