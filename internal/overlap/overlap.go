// Package overlap computes which members of a synthesized target type a
// given source value can legally supply, and collects them into a
// candidate set keyed by signature identity.
package overlap

import (
	"github.com/mixlang/mixgen/internal/typegraph"
)

// Filter decides whether a resolved member may be forwarded. A nil filter
// accepts everything.
type Filter func(*typegraph.Member) bool

// Candidate pairs a forwardable member with the variable that supplies it.
type Candidate struct {
	Member *typegraph.Member

	// Target is the variable name the forwarding body calls through.
	Target string
}

// Resolve walks the target linearization and collects every member that
// the source type can supply: for each ancestor S whose self-type the
// source satisfies, every member declared on S is re-resolved against the
// target (most specific override wins) and kept unless it is a
// constructor, final, invisible from the enclosing scope, or rejected by
// the filter.
//
// The same signature reachable through several ancestor paths is emitted
// once; the result is a set, not a list.
func Resolve(g *typegraph.Graph, source *typegraph.Decl, targetLin []*typegraph.Decl, scope, targetVar string, filter Filter) *Set {
	set := NewSet()
	for _, ancestor := range targetLin {
		if !g.SatisfiesSelfType(source, ancestor) {
			continue
		}
		for _, declared := range ancestor.Members {
			resolved, ok := typegraph.ResolveMemberIn(targetLin, declared.SignatureKey())
			if !ok {
				resolved = declared
			}
			if resolved.Constructor || resolved.Final {
				continue
			}
			if !resolved.Visibility.VisibleFrom(scope) {
				continue
			}
			if filter != nil && !filter(resolved) {
				continue
			}
			set.Put(Candidate{Member: resolved, Target: targetVar})
		}
	}
	return set
}

// ExcludeIdentity is the default filter: it rejects the object-identity
// methods (equals, hashCode, toString, clone, finalize, getClass).
func ExcludeIdentity(m *typegraph.Member) bool {
	return !m.IsIdentity()
}
