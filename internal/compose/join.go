package compose

import (
	"fmt"

	"github.com/mixlang/mixgen/internal/algebra"
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/overlap"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// validateJoin checks that the textual join of the components forms a
// legal supertype list. This is the explicit stand-in for handing the
// synthesized source back to a compiler: a failure here is exactly a
// re-typecheck failure of the generated parent type.
//
// Rules: at most one class, and only in head position (single
// inheritance); no final component; members sharing a signature across
// components must agree on their result type unless one owner overrides
// the other.
func validateJoin(g *typegraph.Graph, comps []algebra.Component, scope string) *diagnostics.DiagnosticError {
	join := algebra.JoinNames(g, comps, scope)

	if len(comps) == 0 {
		return diagnostics.NewError(diagnostics.ErrC003, join, "the join is empty")
	}

	for i, c := range comps {
		if c.Decl.Final {
			return diagnostics.NewError(diagnostics.ErrC003, join,
				fmt.Sprintf("component '%s' is final and cannot be extended", c.Decl.Name))
		}
		if c.Decl.Kind == typegraph.ClassDecl && i > 0 {
			return diagnostics.NewError(diagnostics.ErrC003, join,
				fmt.Sprintf("class '%s' can only appear first in the supertype list", c.Decl.Name))
		}
	}

	return checkMemberCompatibility(g, comps, join)
}

// checkMemberCompatibility rejects joins in which two unrelated components
// declare the same signature with different result types. The host type
// system could not reconcile such an override, so neither can we.
func checkMemberCompatibility(g *typegraph.Graph, comps []algebra.Component, join string) *diagnostics.DiagnosticError {
	type seenMember struct {
		result string
		owner  *typegraph.Decl
	}
	seen := make(map[string]seenMember)

	for _, d := range g.LinearizeJoin(algebra.Decls(comps)) {
		for _, m := range d.Members {
			if m.Constructor {
				continue
			}
			key := m.SignatureKey()
			result := m.Result.String()
			prev, ok := seen[key]
			if !ok {
				seen[key] = seenMember{result: result, owner: d}
				continue
			}
			if prev.result == result {
				continue
			}
			// A covariant override between related owners is the host
			// system's business; only unrelated owners are irreconcilable.
			if g.IsSubtype(prev.owner, d) || g.IsSubtype(d, prev.owner) {
				continue
			}
			return diagnostics.NewError(diagnostics.ErrC003, join,
				fmt.Sprintf("member '%s' has incompatible result types %s (from %s) and %s (from %s)",
					m.Name, prev.result, prev.owner.Name, result, d.Name))
		}
	}
	return nil
}

// checkForwardable verifies every candidate member can be given a legal
// forwarding body: all parameters must be named so the generated function
// can pass them through.
func checkForwardable(set *overlap.Set) *diagnostics.DiagnosticError {
	for _, c := range set.Candidates() {
		for _, list := range c.Member.ParamLists {
			for _, p := range list {
				if p.Name == "" {
					return diagnostics.NewError(diagnostics.ErrC006, c.Member.Name, c.Member.Owner)
				}
			}
		}
	}
	return nil
}
