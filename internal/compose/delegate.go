package compose

import (
	"strings"

	"github.com/mixlang/mixgen/internal/algebra"
	"github.com/mixlang/mixgen/internal/config"
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/overlap"
	"github.com/mixlang/mixgen/internal/synth"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// DelegateOptions are the three independent switches of a delegate
// operation.
type DelegateOptions struct {
	// EmitDiagnostics surfaces the full generated source as an
	// informational note.
	EmitDiagnostics bool

	// ForwardIdentityMethods includes equals/hashCode/toString and the
	// other object-identity methods in forwarding. Off by default.
	ForwardIdentityMethods bool

	// GenerateSupertypeTraits adds every trait implemented by the
	// delegate's type to the class's supertype list unless already
	// explicitly listed. On by default.
	GenerateSupertypeTraits bool
}

// DefaultDelegateOptions returns the documented defaults.
func DefaultDelegateOptions() DelegateOptions {
	return DelegateOptions{GenerateSupertypeTraits: true}
}

// DelegateInput describes one delegate invocation: a value binding paired
// with the class whose unimplemented supertype members forward to it.
type DelegateInput struct {
	// FieldName is the delegate field; generated bodies call through it.
	FieldName string

	// FieldExpr optionally reproduces the field's initializer in the
	// rewritten output.
	FieldExpr string

	// FieldType is the field's declared type, resolved in Scope.
	FieldType typegraph.TypeRef

	// ClassName names the paired class declaration in the graph.
	ClassName string

	// Body is the original class body, reproduced verbatim alongside the
	// injected forwarding definitions.
	Body string

	Scope   string
	Options DelegateOptions
}

// Delegate rewrites the class to extend a fresh abstract intermediate
// type and injects a forwarding definition for every supertype member the
// delegate field can supply. Members the class body already defines are
// never overwritten; the explicit definition silently shadows the
// generated one.
func Delegate(g *typegraph.Graph, in DelegateInput) (*Result, *diagnostics.DiagnosticError) {
	// The construct is structurally a pair: a value binding immediately
	// followed by a class declaration. Anything else is invalid use.
	if in.FieldName == "" {
		return nil, diagnostics.NewError(diagnostics.ErrC005, "missing the value binding")
	}
	if in.ClassName == "" {
		return nil, diagnostics.NewError(diagnostics.ErrC005, "missing the class declaration")
	}
	class, ok := g.Resolve(in.ClassName, in.Scope)
	if !ok {
		return nil, diagnostics.NewError(diagnostics.ErrC005, "class '"+in.ClassName+"' is not declared")
	}

	// The delegate's declared type must be nameable where the annotation
	// sits; a resolution failure carries the underlying error.
	delegComps, derr := algebra.Decompose(g, in.FieldType, in.Scope)
	if derr != nil {
		return nil, diagnostics.NewError(diagnostics.ErrC004, in.FieldType.String(), in.Scope, derr.Message).WithCause(derr)
	}
	delegSource := operandAnchor("<delegate>", delegComps)

	explicitComps, derr := explicitSupertypes(g, class, in.Scope)
	if derr != nil {
		return nil, derr
	}

	resultComps := append([]algebra.Component{}, explicitComps...)
	if in.Options.GenerateSupertypeTraits {
		resultComps = append(resultComps, additionalTraits(g, delegComps, explicitComps)...)
	}

	if err := validateJoin(g, resultComps, in.Scope); err != nil {
		return nil, err
	}

	join := algebra.JoinNames(g, resultComps, in.Scope)
	targetLin := g.LinearizeJoin(algebra.Decls(resultComps))

	var filter overlap.Filter
	if !in.Options.ForwardIdentityMethods {
		filter = overlap.ExcludeIdentity
	}
	candidates := overlap.Resolve(g, delegSource, targetLin, in.Scope, in.FieldName, filter)

	// Explicit definitions always take precedence over generated
	// forwarding. No collision error: the class body wins silently.
	for name := range class.MemberNames() {
		candidates.Remove(name)
	}

	if err := checkForwardable(candidates); err != nil {
		return nil, err
	}

	typeName := FreshName(config.DelegateTypePrefix)
	defs := synth.ForwardAll(g, candidates, in.Scope)

	result := &Result{
		Op:          "delegate",
		TypeName:    typeName,
		Join:        join,
		Definitions: defs,
		Source: renderDelegate(delegateRendering{
			TypeName:    typeName,
			TypeParams:  typeParamClause(class.TypeParams),
			Join:        join,
			FieldName:   in.FieldName,
			FieldType:   algebra.RefName(g, in.FieldType, in.Scope),
			FieldExpr:   in.FieldExpr,
			ClassName:   class.LocalName(),
			Body:        in.Body,
			Definitions: defs,
		}),
	}
	if in.Options.EmitDiagnostics {
		result.Notes = append(result.Notes, "generated code:\n"+result.Source)
	}
	return result, nil
}

// typeParamClause renders a declared type parameter list, empty for a
// monomorphic class.
func typeParamClause(params []string) string {
	if len(params) == 0 {
		return ""
	}
	return "[" + strings.Join(params, ", ") + "]"
}

// explicitSupertypes decomposes the class's declared parent list.
func explicitSupertypes(g *typegraph.Graph, class *typegraph.Decl, scope string) ([]algebra.Component, *diagnostics.DiagnosticError) {
	var comps []algebra.Component
	for _, parent := range class.Parents {
		pc, err := algebra.Decompose(g, parent, scope)
		if err != nil {
			return nil, err
		}
		comps = append(comps, pc...)
	}
	return comps, nil
}

// additionalTraits returns every trait implemented by the delegate's type
// that the class does not already list explicitly, in the delegate's
// linearization order.
func additionalTraits(g *typegraph.Graph, delegComps, explicit []algebra.Component) []algebra.Component {
	listed := make(map[*typegraph.Decl]bool, len(explicit))
	for _, c := range explicit {
		listed[c.Decl] = true
	}

	var out []algebra.Component
	seen := make(map[*typegraph.Decl]bool)
	for _, dc := range delegComps {
		for _, trait := range g.TraitAncestors(dc.Decl) {
			if listed[trait] || seen[trait] {
				continue
			}
			seen[trait] = true
			out = append(out, algebra.Component{Decl: trait, Ref: trait.Ref()})
		}
	}
	return out
}
