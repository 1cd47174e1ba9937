// Package deadcode computes reachability from an entry-point set over the
// symbol table and dependency graph (C8). Grounded on the teacher's
// internal/core/reference_tracker.go (incoming/outgoing reference
// bookkeeping) and internal/analysis/relationship_analyzer.go, retargeted
// from "is this symbol referenced" to "is this symbol reachable from an
// entry point", per spec.md §4.8.
package deadcode

import (
	"strings"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/symtab"
	"github.com/standardbeagle/codeintel/internal/types"
)

// mainEquivalents names the conventional process-entry function every
// language family in the frontend supports uses.
var mainEquivalents = map[string]bool{
	"main":     true,
	"__main__": true,
}

// Seeds returns every declared symbol that is a reachability root per
// spec.md §4.8: main-equivalents, exported library surface, test entry
// points, and explicitly annotated entry points (FlagEntryPoint, set by a
// future annotation pass; carried here so seeding stays correct once one
// exists).
func Seeds(files []symtab.FileTree, table *types.SymbolTable) []types.SymbolID {
	var seeds []types.SymbolID
	for _, sym := range table.All() {
		if isSeed(files, sym) {
			seeds = append(seeds, sym.ID)
		}
	}
	return seeds
}

func isSeed(files []symtab.FileTree, sym *types.Symbol) bool {
	if mainEquivalents[baseName(sym.QualifiedName)] {
		return true
	}
	if sym.IsExported && sym.Visibility == types.VisibilityPublic {
		return true
	}
	if isTestEntryPoint(sym) {
		return true
	}
	return hasEntryPointFlag(files, sym)
}

// isTestEntryPoint flags conventional test-function names (the Rust/Go
// "test_*"/"Test*" convention and the xUnit "test_" prefix shared by
// Python/JS test runners) as reachability roots, so test-only helpers
// aren't reported dead when --include-tests is set upstream.
func isTestEntryPoint(sym *types.Symbol) bool {
	name := baseName(sym.QualifiedName)
	return strings.HasPrefix(name, "test_") || strings.HasPrefix(name, "Test") ||
		strings.HasSuffix(name, "_test")
}

func hasEntryPointFlag(files []symtab.FileTree, sym *types.Symbol) bool {
	for _, ft := range files {
		if ft.File.ID != sym.DefiningFile {
			continue
		}
		return ft.Tree.Flags(ast.NodeRef(sym.DefiningNode)).Has(ast.FlagEntryPoint)
	}
	return false
}

func baseName(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
