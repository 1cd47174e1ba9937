// Package symtab builds a types.SymbolTable from a set of parsed ast.Trees
// in two passes: declare every named declaration, then resolve every call
// and import site against the accumulated table. Grounded on the teacher's
// internal/symbollinker engine (declare-then-resolve across a
// fileRegistry), collapsed from five per-language resolvers into one
// qualified-name resolution pass since the unified ast.Tree already
// normalizes per-language declaration kinds.
package symtab

import (
	"fmt"

	"github.com/standardbeagle/codeintel/internal/ast"
	"github.com/standardbeagle/codeintel/internal/types"
)

// FileTree pairs a parsed file with its source tree, the unit the builder
// consumes.
type FileTree struct {
	File types.SourceFile
	Tree *ast.Tree
}

// Unresolved records one Call/Import node the resolve pass could not bind,
// alongside why (spec.md invariant: every such node resolves to >=1 symbol
// or carries a reason).
type Unresolved struct {
	FileID types.FileID
	NodeID ast.NodeRef
	Name   string
	Reason types.UnresolvedReason
}

// Builder runs the declare and resolve passes over a batch of files.
type Builder struct {
	table *types.SymbolTable

	// declRef maps (file, node) back to the SymbolID declared there, for
	// resolving nested scope lookups.
	declRef map[declKey]types.SymbolID
}

type declKey struct {
	file types.FileID
	node ast.NodeRef
}

func NewBuilder() *Builder {
	return &Builder{
		table:   types.NewSymbolTable(),
		declRef: make(map[declKey]types.SymbolID),
	}
}

// Declare runs the first pass over every file: every KindFunction,
// KindMethod, KindClass, KindStruct, KindEnum, KindTrait, KindModule and
// top-level KindVariable becomes a Symbol, qualified by its enclosing
// declaration chain (spec.md §4.4).
func (b *Builder) Declare(files []FileTree) {
	for _, ft := range files {
		b.declareFile(ft)
	}
}

func (b *Builder) declareFile(ft FileTree) {
	tree := ft.Tree
	var walk func(n ast.NodeRef, scope []string)
	walk = func(n ast.NodeRef, scope []string) {
		kind := tree.Kind(n)
		nextScope := scope
		if kind.IsDeclaration() && n != tree.Root() {
			name := tree.NodeName(n)
			qualified := qualify(scope, name)
			sym := types.Symbol{
				QualifiedName: qualified,
				Kind:          symbolKind(kind),
				DefiningFile:  ft.File.ID,
				DefiningNode:  types.NodeID(n),
				Visibility:    visibilityOf(tree, n),
				Language:      ft.File.Language,
				IsExported:    tree.Flags(n).Has(ast.FlagExported),
			}
			id := b.table.Declare(sym)
			b.declRef[declKey{ft.File.ID, n}] = id
			nextScope = append(append([]string{}, scope...), name)
		}
		for _, c := range tree.Children(n) {
			walk(c, nextScope)
		}
	}
	walk(tree.Root(), nil)
}

// Resolve runs the second pass: every KindCall and KindImport node is
// looked up by name against the declared table, preferring a match in the
// same file, then an exact qualified-name match project-wide, then
// flagging UnresolvedExternal for anything left (stdlib, third-party).
func (b *Builder) Resolve(files []FileTree) []Unresolved {
	var unresolved []Unresolved
	for _, ft := range files {
		tree := ft.Tree
		tree.Walk(tree.Root(), func(n ast.NodeRef) bool {
			kind := tree.Kind(n)
			if kind != ast.KindCall && kind != ast.KindImport {
				return true
			}
			name := tree.NodeName(n)
			if name == "" {
				return true
			}
			matches := b.resolveName(ft.File.ID, name)
			if len(matches) == 0 {
				unresolved = append(unresolved, Unresolved{
					FileID: ft.File.ID,
					NodeID: n,
					Name:   name,
					Reason: types.UnresolvedExternal,
				})
				return true
			}
			for _, m := range matches {
				b.table.AddReference(m.ID, types.ReferenceSite{FileID: ft.File.ID, NodeID: types.NodeID(n)})
			}
			return true
		})
	}
	return unresolved
}

func (b *Builder) resolveName(fromFile types.FileID, name string) []*types.Symbol {
	var sameFile, others []*types.Symbol
	for _, sym := range b.table.All() {
		if sym.QualifiedName != name && !hasSuffix(sym.QualifiedName, "."+name) {
			continue
		}
		if sym.DefiningFile == fromFile {
			sameFile = append(sameFile, sym)
		} else {
			others = append(others, sym)
		}
	}
	if len(sameFile) > 0 {
		return sameFile
	}
	return others
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func qualify(scope []string, name string) string {
	if len(scope) == 0 {
		return name
	}
	out := scope[0]
	for _, s := range scope[1:] {
		out = out + "." + s
	}
	return out + "." + name
}

func symbolKind(k ast.Kind) types.SymbolKind {
	switch k {
	case ast.KindFunction:
		return types.SymbolKindFunction
	case ast.KindMethod:
		return types.SymbolKindMethod
	case ast.KindClass:
		return types.SymbolKindClass
	case ast.KindStruct:
		return types.SymbolKindStruct
	case ast.KindEnum:
		return types.SymbolKindEnum
	case ast.KindTrait:
		return types.SymbolKindTrait
	case ast.KindModule:
		return types.SymbolKindModule
	case ast.KindVariable:
		return types.SymbolKindVariable
	default:
		return types.SymbolKindUnknown
	}
}

// visibilityOf infers a declaration's visibility from its exported flag;
// languages with package-private visibility (no public/private keyword at
// all, e.g. top-level Python) fall back to Package.
func visibilityOf(tree *ast.Tree, n ast.NodeRef) types.Visibility {
	if tree.Flags(n).Has(ast.FlagExported) {
		return types.VisibilityPublic
	}
	return types.VisibilityPackage
}

// Table returns the accumulated symbol table after Declare/Resolve.
func (b *Builder) Table() *types.SymbolTable { return b.table }

func (b *Builder) String() string {
	return fmt.Sprintf("symtab.Builder{symbols=%d}", b.table.Len())
}
