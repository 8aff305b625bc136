package typegraph

// IsSubtype reports whether sub conforms to super: super appears somewhere
// in sub's ancestor linearization.
func (g *Graph) IsSubtype(sub, super *Decl) bool {
	if sub == super {
		return true
	}
	for _, a := range g.Linearize(sub) {
		if a == super {
			return true
		}
	}
	return false
}

// SatisfiesSelfType reports whether source conforms to the self-type of s.
// Without an explicit self-type the requirement is s itself. An intersection
// self-type requires conformance to every part.
func (g *Graph) SatisfiesSelfType(source, s *Decl) bool {
	if s.SelfType == nil {
		return g.IsSubtype(source, s)
	}
	return g.satisfiesRef(source, *s.SelfType, s.Name)
}

func (g *Graph) satisfiesRef(source *Decl, ref TypeRef, scope string) bool {
	if ref.IsIntersection() {
		for _, p := range ref.Parts {
			if !g.satisfiesRef(source, p, scope) {
				return false
			}
		}
		return true
	}
	target, err := g.ResolveRef(ref, scope)
	if err != nil {
		return false
	}
	if target.Kind == AliasDecl && target.Aliased != nil {
		return g.satisfiesRef(source, *target.Aliased, scope)
	}
	return g.IsSubtype(source, target)
}

// ResolveMemberIn finds the most specific declaration of the signature in
// the given linearization: the first declaring type wins.
func ResolveMemberIn(lin []*Decl, key string) (*Member, bool) {
	for _, d := range lin {
		for _, m := range d.Members {
			if m.SignatureKey() == key {
				return m, true
			}
		}
	}
	return nil, false
}

// TraitAncestors returns every trait in d's linearization, d included when
// it is itself a trait, in linearization order.
func (g *Graph) TraitAncestors(d *Decl) []*Decl {
	var traits []*Decl
	for _, a := range g.Linearize(d) {
		if a.IsTrait() {
			traits = append(traits, a)
		}
	}
	return traits
}
