// Package synth renders forwarding definitions: members whose body is
// solely a call-through to another value's same-named member.
package synth

import (
	"strings"

	"github.com/mixlang/mixgen/internal/algebra"
	"github.com/mixlang/mixgen/internal/overlap"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// Definition is one generated forwarding member.
type Definition struct {
	// Name is the member name, kept for shadowing checks and reporting.
	Name string

	// Override is set when the member was already concrete in its resolved
	// context, so the generated definition replaces an inherited
	// implementation instead of filling an abstract slot.
	Override bool

	// Source is the rendered definition, a single line.
	Source string
}

// Forward renders the forwarding definition for a member, delegating to
// targetVar. A member without parameter lists becomes a value binding;
// anything else becomes a function that passes its parameters through
// positionally, list for list, preserving names, types, and type
// parameters.
func Forward(g *typegraph.Graph, m *typegraph.Member, targetVar, scope string) Definition {
	override := !m.Abstract

	var b strings.Builder
	if override {
		b.WriteString("override ")
	}

	if !m.HasParams() {
		b.WriteString("val ")
		b.WriteString(m.Name)
		writeResult(&b, g, m, scope)
		b.WriteString(" = ")
		b.WriteString(targetVar)
		b.WriteString(".")
		b.WriteString(m.Name)
		return Definition{Name: m.Name, Override: override, Source: b.String()}
	}

	b.WriteString("def ")
	b.WriteString(m.Name)
	if len(m.TypeParams) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(m.TypeParams, ", "))
		b.WriteString("]")
	}
	for _, list := range m.ParamLists {
		b.WriteString("(")
		for i, p := range list {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(algebra.RefName(g, p.Type, scope))
		}
		b.WriteString(")")
	}
	writeResult(&b, g, m, scope)
	b.WriteString(" = ")
	b.WriteString(targetVar)
	b.WriteString(".")
	b.WriteString(m.Name)
	for _, list := range m.ParamLists {
		b.WriteString("(")
		for i, p := range list {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
		}
		b.WriteString(")")
	}
	return Definition{Name: m.Name, Override: override, Source: b.String()}
}

func writeResult(b *strings.Builder, g *typegraph.Graph, m *typegraph.Member, scope string) {
	if m.Result.Name == "" && !m.Result.IsIntersection() {
		return
	}
	b.WriteString(": ")
	b.WriteString(algebra.RefName(g, m.Result, scope))
}

// ForwardAll renders every candidate in deterministic order.
func ForwardAll(g *typegraph.Graph, set *overlap.Set, scope string) []Definition {
	candidates := set.Candidates()
	defs := make([]Definition, 0, len(candidates))
	for _, c := range candidates {
		defs = append(defs, Forward(g, c.Member, c.Target, scope))
	}
	return defs
}
