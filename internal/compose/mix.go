// Package compose implements the two entry-level transformations: mixing
// two typed values into a fresh type that implements both, and delegating
// a class's unimplemented supertype members to a field.
package compose

import (
	"github.com/mixlang/mixgen/internal/algebra"
	"github.com/mixlang/mixgen/internal/config"
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/overlap"
	"github.com/mixlang/mixgen/internal/synth"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// MixInput describes one mix invocation.
type MixInput struct {
	// FirstExpr and SecondExpr are the value expressions being combined,
	// reproduced verbatim in the generated bindings.
	FirstExpr  string
	SecondExpr string

	FirstType  typegraph.TypeRef
	SecondType typegraph.TypeRef

	// Scope is the fully-qualified name of the enclosing scope; it drives
	// name minimization and visibility checks.
	Scope string
}

// Result is the outcome of a successful operation. Everything in it is
// derived; nothing persists beyond rendering.
type Result struct {
	Op string

	// TypeName is the fresh abstract intermediate type.
	TypeName string

	// Join is the textual supertype join the intermediate extends.
	Join string

	Definitions []synth.Definition

	// Source is the complete generated source.
	Source string

	// Notes carries informational diagnostics (emit_diagnostics output).
	Notes []string
}

// Mix combines two typed values into a synthesized type that is a subtype
// of both operand types. Members suppliable by both operands forward to
// the second: overlap sets merge with last-write-wins, and the second
// operand is merged after the first.
func Mix(g *typegraph.Graph, in MixInput) (*Result, *diagnostics.DiagnosticError) {
	firstComps, err := algebra.Decompose(g, in.FirstType, in.Scope)
	if err != nil {
		return nil, err
	}
	secondComps, err := algebra.Decompose(g, in.SecondType, in.Scope)
	if err != nil {
		return nil, err
	}

	// Preconditions: the synthesized result extends a fresh abstract type,
	// so nothing final may contribute, and only the first operand may
	// carry a class: single inheritance leaves room for exactly one.
	for _, c := range firstComps {
		if c.Decl.Final {
			return nil, diagnostics.NewError(diagnostics.ErrC001, c.Decl.Name)
		}
	}
	for _, c := range secondComps {
		if !c.Decl.IsTrait() {
			return nil, diagnostics.NewError(diagnostics.ErrC002, c.Decl.Name)
		}
	}

	resultComps := append(append([]algebra.Component{}, firstComps...), secondComps...)
	if err := validateJoin(g, resultComps, in.Scope); err != nil {
		return nil, err
	}

	join := algebra.JoinNames(g, resultComps, in.Scope)
	targetLin := g.LinearizeJoin(algebra.Decls(resultComps))

	leftVar := FreshName(config.LeftBindPrefix)
	rightVar := FreshName(config.RightBindPrefix)

	firstSource := operandAnchor("<first>", firstComps)
	secondSource := operandAnchor("<second>", secondComps)

	candidates := overlap.Resolve(g, firstSource, targetLin, in.Scope, leftVar, overlap.ExcludeIdentity)
	candidates.Merge(overlap.Resolve(g, secondSource, targetLin, in.Scope, rightVar, overlap.ExcludeIdentity))

	if err := checkForwardable(candidates); err != nil {
		return nil, err
	}

	typeName := FreshName(config.MixTypePrefix)
	defs := synth.ForwardAll(g, candidates, in.Scope)

	return &Result{
		Op:          "mix",
		TypeName:    typeName,
		Join:        join,
		Definitions: defs,
		Source: renderMix(mixRendering{
			TypeName:    typeName,
			Join:        join,
			LeftVar:     leftVar,
			LeftType:    algebra.JoinNames(g, firstComps, in.Scope),
			LeftExpr:    in.FirstExpr,
			RightVar:    rightVar,
			RightType:   algebra.JoinNames(g, secondComps, in.Scope),
			RightExpr:   in.SecondExpr,
			Definitions: defs,
		}),
	}, nil
}

// operandAnchor builds the subtype anchor for an operand: the declaration
// itself for a plain type, or a virtual declaration whose parents are the
// flattened components for an intersection operand.
func operandAnchor(name string, comps []algebra.Component) *typegraph.Decl {
	if len(comps) == 1 {
		return comps[0].Decl
	}
	parents := make([]typegraph.TypeRef, len(comps))
	for i, c := range comps {
		parents[i] = c.Decl.Ref()
	}
	return typegraph.Virtual(name, parents)
}
