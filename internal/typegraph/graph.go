package typegraph

import (
	"strings"

	"github.com/mixlang/mixgen/internal/config"
	"github.com/mixlang/mixgen/internal/diagnostics"
)

// Graph is the declaration table. Insertion order is retained so traversals
// that fall back to "all declarations" stay deterministic.
type Graph struct {
	decls map[string]*Decl
	order []string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{decls: make(map[string]*Decl)}
}

// Add registers a declaration under its fully-qualified name.
func (g *Graph) Add(d *Decl) *diagnostics.DiagnosticError {
	if _, exists := g.decls[d.Name]; exists {
		return diagnostics.NewError(diagnostics.ErrG002, d.Name)
	}
	g.decls[d.Name] = d
	g.order = append(g.order, d.Name)
	return nil
}

// Lookup finds a declaration by its exact fully-qualified name.
func (g *Graph) Lookup(name string) (*Decl, bool) {
	d, ok := g.decls[name]
	return d, ok
}

// Decls returns all declarations in insertion order.
func (g *Graph) Decls() []*Decl {
	out := make([]*Decl, 0, len(g.order))
	for _, name := range g.order {
		out = append(out, g.decls[name])
	}
	return out
}

// Resolve resolves a possibly-unqualified name against an enclosing scope.
// Inner scopes shadow outer ones: app.inner tries app.inner.X, then app.X,
// then X. This is what makes a fully-qualified name ambiguous when one of
// its leading segments is shadowed inside the scope.
func (g *Graph) Resolve(name, scope string) (*Decl, bool) {
	for scope != "" {
		if d, ok := g.decls[scope+config.PathSeparator+name]; ok {
			return d, true
		}
		if i := strings.LastIndex(scope, config.PathSeparator); i >= 0 {
			scope = scope[:i]
		} else {
			scope = ""
		}
	}
	d, ok := g.decls[name]
	return d, ok
}

// Virtual creates an unregistered declaration whose parents are the given
// references. Composition uses it as a subtype anchor for intersection
// operands without adding anything to the graph.
func Virtual(name string, parents []TypeRef) *Decl {
	return &Decl{Name: name, Kind: ClassDecl, Parents: parents}
}

// ResolveRef resolves a non-intersection reference to its declaration,
// unwrapping alias declarations. Alias cycles are reported, not followed.
func (g *Graph) ResolveRef(ref TypeRef, scope string) (*Decl, *diagnostics.DiagnosticError) {
	if ref.IsIntersection() {
		return nil, diagnostics.NewError(diagnostics.ErrG004, ref.String(), "intersection used where a single type is required")
	}
	d, ok := g.Resolve(ref.Name, scope)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrG001, ref.Name)
	}
	seen := map[string]bool{d.Name: true}
	for d.Kind == AliasDecl {
		if d.Aliased == nil || d.Aliased.IsIntersection() {
			// Intersection aliases are flattened by the algebra layer.
			return d, nil
		}
		next, ok := g.Resolve(d.Aliased.Name, scope)
		if !ok {
			return nil, diagnostics.NewError(diagnostics.ErrG001, d.Aliased.Name)
		}
		if seen[next.Name] {
			return nil, diagnostics.NewError(diagnostics.ErrG003, next.Name)
		}
		seen[next.Name] = true
		d = next
	}
	return d, nil
}
