package algebra

import (
	"strings"

	"github.com/mixlang/mixgen/internal/config"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// MinimalName returns the shortest way to spell a component's name from
// within the enclosing scope that still denotes the right declaration.
//
// The fully-qualified name is tried first: if it resolves in scope to the
// component's own declaration it is unambiguous and wins. When a leading
// segment is shadowed inside the scope, the longest common path prefix
// between the component and the scope is stripped and the remaining
// suffix emitted, keeping the first differing segment as the anchor.
// Type arguments are rendered recursively.
//
// The function is pure: the same component/scope pair always yields the
// same string.
func MinimalName(g *typegraph.Graph, c Component, scope string) string {
	base := minimalBase(g, c.Decl, scope)
	if len(c.Ref.Args) == 0 {
		return base
	}
	args := make([]string, len(c.Ref.Args))
	for i, a := range c.Ref.Args {
		args[i] = RefName(g, a, scope)
	}
	return base + "<" + strings.Join(args, ", ") + ">"
}

func minimalBase(g *typegraph.Graph, d *typegraph.Decl, scope string) string {
	if resolved, ok := g.Resolve(d.Name, scope); ok && resolved == d {
		return d.Name
	}

	declSegs := strings.Split(d.Name, config.PathSeparator)
	scopeSegs := strings.Split(scope, config.PathSeparator)

	common := 0
	for common < len(declSegs)-1 && common < len(scopeSegs) && declSegs[common] == scopeSegs[common] {
		common++
	}

	suffix := declSegs[common:]
	return strings.Join(suffix, config.PathSeparator)
}

// RefName renders an arbitrary reference with each resolvable name
// shortened via the same rules as MinimalName. Names that do not resolve
// (type parameters, primitives outside the graph) are kept as written.
func RefName(g *typegraph.Graph, ref typegraph.TypeRef, scope string) string {
	if ref.IsIntersection() {
		parts := make([]string, len(ref.Parts))
		for i, p := range ref.Parts {
			parts[i] = RefName(g, p, scope)
		}
		return strings.Join(parts, " with ")
	}
	if d, ok := g.Resolve(ref.Name, scope); ok {
		base := minimalBase(g, d, scope)
		if len(ref.Args) == 0 {
			return base
		}
		args := make([]string, len(ref.Args))
		for i, a := range ref.Args {
			args[i] = RefName(g, a, scope)
		}
		return base + "<" + strings.Join(args, ", ") + ">"
	}
	// Unresolved names (type parameters) are kept as written.
	return ref.String()
}

// JoinNames renders the textual supertype join of the components, in
// order, using the minimal spelling of each.
func JoinNames(g *typegraph.Graph, comps []Component, scope string) string {
	names := make([]string, len(comps))
	for i, c := range comps {
		names[i] = MinimalName(g, c, scope)
	}
	return strings.Join(names, " with ")
}
