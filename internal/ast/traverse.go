package ast

// Descendants returns every node below n in preorder, n itself excluded.
func (t *Tree) Descendants(n NodeRef) []NodeRef {
	var out []NodeRef
	var walk func(NodeRef)
	walk = func(cur NodeRef) {
		for _, c := range t.Children(cur) {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Ancestors returns n's ancestor chain from immediate parent up to the
// root, in that order.
func (t *Tree) Ancestors(n NodeRef) []NodeRef {
	var out []NodeRef
	for cur := t.Parent(n); cur != NilRef; cur = t.Parent(cur) {
		out = append(out, cur)
	}
	return out
}

// Siblings returns n's siblings (children of the same parent), n excluded,
// in arena order.
func (t *Tree) Siblings(n NodeRef) []NodeRef {
	parent := t.Parent(n)
	kids := t.Children(parent)
	if parent == NilRef {
		// n is the root; its siblings are the other top-level nodes, of
		// which there are none in a single-file Tree.
		return nil
	}
	out := make([]NodeRef, 0, len(kids))
	for _, k := range kids {
		if k != n {
			out = append(out, k)
		}
	}
	return out
}

// Walk visits every node in the tree in preorder starting at root, calling
// fn(node) for each. Stops early if fn returns false.
func (t *Tree) Walk(root NodeRef, fn func(NodeRef) bool) {
	var walk func(NodeRef) bool
	walk = func(cur NodeRef) bool {
		if !fn(cur) {
			return false
		}
		for _, c := range t.Children(cur) {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(root)
}

// FindByKind returns every node of the given kind reachable from root, in
// preorder.
func (t *Tree) FindByKind(root NodeRef, kind Kind) []NodeRef {
	var out []NodeRef
	t.Walk(root, func(n NodeRef) bool {
		if t.Kind(n) == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

// EnclosingDeclaration walks up from n to the nearest ancestor (or n
// itself) whose Kind.IsDeclaration() is true. Returns NilRef if none.
func (t *Tree) EnclosingDeclaration(n NodeRef) NodeRef {
	for cur := n; cur != NilRef; cur = t.Parent(cur) {
		if t.Kind(cur).IsDeclaration() {
			return cur
		}
	}
	return NilRef
}
