package typegraph

// Linearize returns the ancestor linearization of d: d itself first, then
// the expansions of its parents processed right to left, with duplicates
// removed keeping the last occurrence. A base reachable through several
// ancestor paths therefore sinks below every type that extends it, so a
// trait overriding an inherited member always ranks as more specific than
// the declaring base, and the rightmost (most recently mixed-in) parent
// takes precedence for member resolution.
//
// Parents that do not resolve are skipped here; join validation reports
// them before any composition runs.
func (g *Graph) Linearize(d *Decl) []*Decl {
	var seq []*Decl
	g.expandInto(d, make(map[string]bool), &seq)
	return dedupKeepLast(seq)
}

func (g *Graph) expandInto(d *Decl, active map[string]bool, seq *[]*Decl) {
	if active[d.Name] {
		return
	}
	active[d.Name] = true
	*seq = append(*seq, d)
	for i := len(d.Parents) - 1; i >= 0; i-- {
		g.expandRef(d.Parents[i], d.Name, active, seq)
	}
	delete(active, d.Name)
}

func (g *Graph) expandRef(ref TypeRef, scope string, active map[string]bool, seq *[]*Decl) {
	if ref.IsIntersection() {
		for i := len(ref.Parts) - 1; i >= 0; i-- {
			g.expandRef(ref.Parts[i], scope, active, seq)
		}
		return
	}
	parent, err := g.ResolveRef(ref, scope)
	if err != nil {
		return
	}
	if parent.Kind == AliasDecl && parent.Aliased != nil {
		g.expandRef(*parent.Aliased, scope, active, seq)
		return
	}
	g.expandInto(parent, active, seq)
}

// dedupKeepLast removes duplicates keeping the last occurrence of each
// declaration: a type reachable through several paths counts only at its
// least specific position.
func dedupKeepLast(seq []*Decl) []*Decl {
	last := make(map[*Decl]int, len(seq))
	for i, d := range seq {
		last[d] = i
	}
	out := make([]*Decl, 0, len(last))
	for i, d := range seq {
		if last[d] == i {
			out = append(out, d)
		}
	}
	return out
}

// LinearizeJoin linearizes a synthetic type whose declared parents are the
// given components, without registering it in the graph. Components are
// processed right to left so that later components override earlier ones,
// mirroring Linearize for a declared type.
func (g *Graph) LinearizeJoin(components []*Decl) []*Decl {
	var seq []*Decl
	active := make(map[string]bool)
	for i := len(components) - 1; i >= 0; i-- {
		g.expandInto(components[i], active, &seq)
	}
	return dedupKeepLast(seq)
}
