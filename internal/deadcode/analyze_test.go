package deadcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/types"
)

// buildFile constructs: fn main(){ f() } fn f(){} fn old_api(){} — main calls
// f but nothing calls old_api, and old_api is not itself an entry point.
func buildFile() symtab.FileTree {
	tree := ast.NewTree(1, 16)
	root := tree.Add(ast.NilRef, ast.KindFile, 0, ast.Span{}, tree.Intern("a.rs"))
	main := tree.Add(root, ast.KindFunction, 0, ast.Span{StartLine: 1, EndLine: 3}, tree.Intern("main"))
	tree.Add(main, ast.KindCall, 0, ast.Span{StartLine: 2, EndLine: 2}, tree.Intern("f"))
	tree.Add(root, ast.KindFunction, 0, ast.Span{StartLine: 4, EndLine: 4}, tree.Intern("f"))
	tree.Add(root, ast.KindFunction, 0, ast.Span{StartLine: 5, EndLine: 5}, tree.Intern("old_api"))

	file := types.SourceFile{ID: 1, Path: "a.rs", Language: types.LangRust}
	return symtab.FileTree{File: file, Tree: tree}
}

func buildTableAndGraph(ft symtab.FileTree) (*types.SymbolTable, *types.DependencyGraph) {
	b := symtab.NewBuilder()
	b.Declare([]symtab.FileTree{ft})
	b.Resolve([]symtab.FileTree{ft})
	table := b.Table()

	g := types.NewDependencyGraph()
	for _, sym := range table.All() {
		g.AddNode(types.NodeInfo{Key: types.NodeKey(sym.QualifiedName), DisplayLabel: sym.QualifiedName, Kind: types.NodeKindFunction})
	}
	mainSym := table.Lookup("main")[0]
	for _, site := range table.References(mainSym.ID) {
		_ = site
	}
	// main calls f: look up f's symbol and add the edge directly, mirroring
	// what internal/depgraph would have built from the same resolve pass.
	fSyms := table.Lookup("f")
	if len(fSyms) > 0 {
		g.AddEdge(types.Edge{From: types.NodeKey("main"), To: types.NodeKey("f"), Kind: types.EdgeCalls})
	}
	g.Canonicalize()
	return table, g
}

func TestAnalyze_UnreachableFunctionIsHighConfidence(t *testing.T) {
	ft := buildFile()
	table, graph := buildTableAndGraph(ft)

	items := Analyze([]symtab.FileTree{ft}, table, graph)

	var oldAPI *types.DeadCodeItem
	for i := range items {
		if items[i].Name == "old_api" {
			oldAPI = &items[i]
		}
	}
	if assert.NotNil(t, oldAPI) {
		assert.Equal(t, types.ConfidenceHigh, oldAPI.Confidence)
	}

	for _, it := range items {
		assert.NotEqual(t, "main", it.Name)
		assert.NotEqual(t, "f", it.Name)
	}
}

func TestFileScores_AggregatesDeadLinesAndFunctions(t *testing.T) {
	ft := buildFile()
	table, graph := buildTableAndGraph(ft)
	items := Analyze([]symtab.FileTree{ft}, table, graph)

	scores := FileScores(items, []symtab.FileTree{ft}, table, map[types.FileID]int{1: 5})
	if assert.Len(t, scores, 1) {
		assert.Equal(t, 1, scores[0].DeadFunctions)
		assert.Greater(t, scores[0].Score, 0.0)
	}
}

func TestSeeds_MainIsAlwaysASeed(t *testing.T) {
	ft := buildFile()
	table, _ := buildTableAndGraph(ft)
	seeds := Seeds([]symtab.FileTree{ft}, table)

	var names []string
	for _, id := range seeds {
		sym, _ := table.Get(id)
		names = append(names, sym.QualifiedName)
	}
	assert.Contains(t, names, "main")
}
