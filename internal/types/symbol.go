package types

// SymbolKind enumerates the kinds a Symbol can take, mirroring the
// declaration-bearing subset of ast.Kind (functions, methods, classes,
// traits, variables, modules) — a Symbol always points back at the
// UnifiedNode that declared it.
type SymbolKind uint8

const (
	SymbolKindUnknown SymbolKind = iota
	SymbolKindFunction
	SymbolKindMethod
	SymbolKindClass
	SymbolKindStruct
	SymbolKindEnum
	SymbolKindTrait
	SymbolKindVariable
	SymbolKindModule
)

type Visibility uint8

const (
	VisibilityPrivate Visibility = iota
	VisibilityPackage
	VisibilityPublic
)

// Symbol is a declaration collected by the symbol-table builder (C4):
// spec.md §3 "{ qualified_name, kind, defining_node, visibility, language,
// is_exported }".
type Symbol struct {
	ID             SymbolID
	QualifiedName  string
	Kind           SymbolKind
	DefiningFile   FileID
	DefiningNode   NodeID
	Visibility     Visibility
	Language       Language
	IsExported     bool
}

// ReferenceSite is one place a Symbol is referenced from — a Call or
// Import node somewhere in the forest.
type ReferenceSite struct {
	FileID FileID
	NodeID NodeID
}

// UnresolvedReason explains why a Call/Import node failed to resolve to any
// symbol (spec.md §3 invariant: "every Call/Import node either resolves to
// ≥1 symbol or is marked unresolved with a reason").
type UnresolvedReason uint8

const (
	UnresolvedNone UnresolvedReason = iota
	UnresolvedNoDeclaration
	UnresolvedAmbiguous
	UnresolvedExternal // resolves outside the analyzed tree (stdlib, third party)
	UnresolvedDynamic   // dynamic dispatch the resolver can't follow
)

// SymbolTable maps interned qualified names to Symbols and maintains the
// reverse index symbol -> reference sites (spec.md §4.4).
type SymbolTable struct {
	byID      map[SymbolID]*Symbol
	byName    map[string][]SymbolID // qualified name can be ambiguous (overloads, re-exports)
	refSites  map[SymbolID][]ReferenceSite
	nextID    SymbolID
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		byID:     make(map[SymbolID]*Symbol),
		byName:   make(map[string][]SymbolID),
		refSites: make(map[SymbolID][]ReferenceSite),
	}
}

// Declare registers a new symbol declaration and assigns it an ID.
func (t *SymbolTable) Declare(sym Symbol) SymbolID {
	t.nextID++
	sym.ID = t.nextID
	t.byID[sym.ID] = &sym
	t.byName[sym.QualifiedName] = append(t.byName[sym.QualifiedName], sym.ID)
	return sym.ID
}

func (t *SymbolTable) Lookup(qualifiedName string) []*Symbol {
	ids := t.byName[qualifiedName]
	out := make([]*Symbol, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.byID[id])
	}
	return out
}

func (t *SymbolTable) Get(id SymbolID) (*Symbol, bool) {
	s, ok := t.byID[id]
	return s, ok
}

func (t *SymbolTable) AddReference(id SymbolID, site ReferenceSite) {
	t.refSites[id] = append(t.refSites[id], site)
}

func (t *SymbolTable) References(id SymbolID) []ReferenceSite {
	return t.refSites[id]
}

// All returns every declared symbol, in declaration order (by ID), for
// deterministic iteration downstream.
func (t *SymbolTable) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.byID))
	for id := SymbolID(1); id <= t.nextID; id++ {
		if s, ok := t.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (t *SymbolTable) Len() int { return len(t.byID) }
