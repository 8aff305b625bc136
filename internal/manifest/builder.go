package manifest

import (
	"github.com/mixlang/mixgen/internal/compose"
	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// BuildGraph converts the declared types into a type graph. Reference
// parsing happens here so operations only ever see structured references.
func BuildGraph(m *Manifest) (*typegraph.Graph, []*diagnostics.DiagnosticError) {
	g := typegraph.New()
	var errs []*diagnostics.DiagnosticError

	for _, ts := range m.Graph.Types {
		d, derr := buildDecl(ts)
		if derr != nil {
			errs = append(errs, derr)
			continue
		}
		if err := g.Add(d); err != nil {
			errs = append(errs, err)
		}
	}
	return g, errs
}

func buildDecl(ts TypeSpec) (*typegraph.Decl, *diagnostics.DiagnosticError) {
	d := &typegraph.Decl{
		Name:       ts.Name,
		Kind:       declKind(ts.Kind),
		Final:      ts.Final,
		Abstract:   ts.Abstract,
		TypeParams: ts.TypeParams,
	}

	for _, src := range ts.Extends {
		ref, err := typegraph.ParseRef(src)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrG004, src, err.Error())
		}
		d.Parents = append(d.Parents, ref)
	}
	if ts.SelfType != "" {
		ref, err := typegraph.ParseRef(ts.SelfType)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrG004, ts.SelfType, err.Error())
		}
		d.SelfType = &ref
	}
	if ts.Alias != "" {
		ref, err := typegraph.ParseRef(ts.Alias)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrG004, ts.Alias, err.Error())
		}
		d.Aliased = &ref
	}

	for _, ms := range ts.Members {
		m, merr := buildMember(ts.Name, ms)
		if merr != nil {
			return nil, merr
		}
		d.Members = append(d.Members, m)
	}
	return d, nil
}

func buildMember(owner string, ms MemberSpec) (*typegraph.Member, *diagnostics.DiagnosticError) {
	m := &typegraph.Member{
		Name:        ms.Name,
		Owner:       owner,
		TypeParams:  ms.TypeParams,
		Abstract:    ms.Abstract,
		Final:       ms.Final,
		Constructor: ms.Constructor,
		Visibility:  typegraph.Visibility{PrivateWithin: ms.PrivateWithin},
	}

	for _, list := range ms.Params {
		params := make([]typegraph.Param, 0, len(list))
		for _, ps := range list {
			ref, err := typegraph.ParseRef(ps.Type)
			if err != nil {
				return nil, diagnostics.NewError(diagnostics.ErrG004, ps.Type, err.Error())
			}
			params = append(params, typegraph.Param{Name: ps.Name, Type: ref})
		}
		m.ParamLists = append(m.ParamLists, params)
	}

	if ms.Returns != "" {
		ref, err := typegraph.ParseRef(ms.Returns)
		if err != nil {
			return nil, diagnostics.NewError(diagnostics.ErrG004, ms.Returns, err.Error())
		}
		m.Result = ref
	}
	return m, nil
}

func declKind(kind string) typegraph.DeclKind {
	switch kind {
	case "trait":
		return typegraph.TraitDecl
	case "alias":
		return typegraph.AliasDecl
	default:
		return typegraph.ClassDecl
	}
}

// BuildMixInput converts a mix spec into the operation input.
func BuildMixInput(spec *MixSpec) (compose.MixInput, *diagnostics.DiagnosticError) {
	first, err := typegraph.ParseRef(spec.First.Type)
	if err != nil {
		return compose.MixInput{}, diagnostics.NewError(diagnostics.ErrG004, spec.First.Type, err.Error())
	}
	second, err := typegraph.ParseRef(spec.Second.Type)
	if err != nil {
		return compose.MixInput{}, diagnostics.NewError(diagnostics.ErrG004, spec.Second.Type, err.Error())
	}
	return compose.MixInput{
		FirstExpr:  spec.First.Expr,
		FirstType:  first,
		SecondExpr: spec.Second.Expr,
		SecondType: second,
		Scope:      spec.Scope,
	}, nil
}

// BuildDelegateInput converts a delegate spec into the operation input,
// applying option defaults.
func BuildDelegateInput(spec *DelegateSpec) (compose.DelegateInput, *diagnostics.DiagnosticError) {
	fieldType, err := typegraph.ParseRef(spec.Value.Type)
	if err != nil {
		return compose.DelegateInput{}, diagnostics.NewError(diagnostics.ErrG004, spec.Value.Type, err.Error())
	}

	opts := compose.DefaultDelegateOptions()
	if spec.Options != nil {
		opts.EmitDiagnostics = spec.Options.EmitDiagnostics
		opts.ForwardIdentityMethods = spec.Options.ForwardIdentityMethods
		if spec.Options.GenerateSupertypeTraits != nil {
			opts.GenerateSupertypeTraits = *spec.Options.GenerateSupertypeTraits
		}
	}

	return compose.DelegateInput{
		FieldName: spec.Value.Name,
		FieldExpr: spec.Value.Expr,
		FieldType: fieldType,
		ClassName: spec.Class,
		Body:      spec.Body,
		Scope:     spec.Scope,
		Options:   opts,
	}, nil
}
