package deadcode

import (
	"sort"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/types"
)

// Analyze returns one DeadCodeItem per declared symbol that is not
// reachable from any entry-point seed, confidence-tiered per spec.md §4.8:
// High if the symbol has zero references anywhere, Medium if only internal
// (same-project) references exist, Low if the symbol is a Method — our
// resolver only binds calls by name, so it cannot rule out a virtual
// dispatch through a pointer of unknown concrete type reaching it.
func Analyze(files []symtab.FileTree, table *types.SymbolTable, graph *types.DependencyGraph) []types.DeadCodeItem {
	seeds := Seeds(files, table)
	reached := Reachable(table, graph, seeds)

	lineOf := symbolLines(files, table)

	var items []types.DeadCodeItem
	for _, sym := range table.All() {
		if reached.Contains(uint32(sym.ID)) {
			continue
		}
		refs := table.References(sym.ID)
		confidence, reason := tier(sym, len(refs))
		items = append(items, types.DeadCodeItem{
			Symbol:     sym.ID,
			Kind:       sym.Kind,
			Name:       sym.QualifiedName,
			FileID:     sym.DefiningFile,
			Line:       lineOf[sym.ID].start,
			Confidence: confidence,
			Reason:     reason,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].FileID != items[j].FileID {
			return items[i].FileID < items[j].FileID
		}
		return items[i].Name < items[j].Name
	})
	return items
}

func tier(sym *types.Symbol, refCount int) (types.DeadCodeConfidence, string) {
	if sym.Kind == types.SymbolKindMethod {
		return types.ConfidenceLow, "method unreachable by name-based resolution; may be reached via dynamic dispatch"
	}
	if refCount == 0 {
		return types.ConfidenceHigh, "no references anywhere in the analyzed tree"
	}
	return types.ConfidenceMedium, "only internal references, none reachable from an entry point"
}

type lineRange struct{ start, lines int }

// symbolLines maps every declared symbol to its declaration's start line
// and line span, for DeadCodeItem.Line and FileScores' dead-line count.
func symbolLines(files []symtab.FileTree, table *types.SymbolTable) map[types.SymbolID]lineRange {
	treeOf := make(map[types.FileID]*ast.Tree, len(files))
	for _, ft := range files {
		treeOf[ft.File.ID] = ft.Tree
	}
	out := make(map[types.SymbolID]lineRange, table.Len())
	for _, sym := range table.All() {
		tree, ok := treeOf[sym.DefiningFile]
		if !ok {
			continue
		}
		span := tree.Span(ast.NodeRef(sym.DefiningNode))
		n := int(span.EndLine) - int(span.StartLine) + 1
		if n < 1 {
			n = 1
		}
		out[sym.ID] = lineRange{start: int(span.StartLine), lines: n}
	}
	return out
}
