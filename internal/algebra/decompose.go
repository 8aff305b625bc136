// Package algebra provides the two type-level helpers the composition
// operations share: flattening a reference into its named components, and
// computing the shortest unambiguous spelling of a component's name
// relative to an enclosing scope.
package algebra

import (
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// Component is one named nominal type contributing to an intersection.
type Component struct {
	// Decl is the resolved declaration (never an alias).
	Decl *typegraph.Decl

	// Ref is the reference as written, with alias names replaced by their
	// targets so type arguments survive flattening.
	Ref typegraph.TypeRef
}

// Decompose flattens a reference into its ordered list of components:
// aliases are unwrapped, intersections are flattened recursively left to
// right, and anything else yields a singleton. Order matters downstream:
// it determines both the textual join order and override precedence.
func Decompose(g *typegraph.Graph, ref typegraph.TypeRef, scope string) ([]Component, *diagnostics.DiagnosticError) {
	return decompose(g, ref, scope, make(map[string]bool))
}

func decompose(g *typegraph.Graph, ref typegraph.TypeRef, scope string, unwinding map[string]bool) ([]Component, *diagnostics.DiagnosticError) {
	if ref.IsIntersection() {
		var out []Component
		for _, part := range ref.Parts {
			comps, err := decompose(g, part, scope, unwinding)
			if err != nil {
				return nil, err
			}
			out = append(out, comps...)
		}
		return out, nil
	}

	d, ok := g.Resolve(ref.Name, scope)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrG001, ref.Name)
	}
	if d.Kind == typegraph.AliasDecl {
		if unwinding[d.Name] {
			return nil, diagnostics.NewError(diagnostics.ErrG003, d.Name)
		}
		if d.Aliased == nil {
			return nil, diagnostics.NewError(diagnostics.ErrG004, d.Name, "alias without a target")
		}
		unwinding[d.Name] = true
		comps, err := decompose(g, *d.Aliased, scope, unwinding)
		delete(unwinding, d.Name)
		return comps, err
	}

	return []Component{{Decl: d, Ref: typegraph.TypeRef{Name: d.Name, Args: ref.Args}}}, nil
}

// Decls projects a component list onto its declarations.
func Decls(comps []Component) []*typegraph.Decl {
	out := make([]*typegraph.Decl, len(comps))
	for i, c := range comps {
		out[i] = c.Decl
	}
	return out
}
