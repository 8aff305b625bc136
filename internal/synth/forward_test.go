package synth

import (
	"testing"

	"github.com/mixlang/mixgen/internal/typegraph"
)

func emptyGraph() *typegraph.Graph {
	return typegraph.New()
}

func TestForwardValueMember(t *testing.T) {
	m := &typegraph.Member{
		Name:     "size",
		Result:   typegraph.TypeRef{Name: "Int"},
		Abstract: true,
	}

	def := Forward(emptyGraph(), m, "inner", "")
	if def.Source != "val size: Int = inner.size" {
		t.Errorf("Source = %q", def.Source)
	}
	if def.Override {
		t.Error("abstract member must not be marked override")
	}
}

func TestForwardConcreteValueIsOverride(t *testing.T) {
	m := &typegraph.Member{
		Name:   "size",
		Result: typegraph.TypeRef{Name: "Int"},
	}

	def := Forward(emptyGraph(), m, "inner", "")
	if def.Source != "override val size: Int = inner.size" {
		t.Errorf("Source = %q", def.Source)
	}
	if !def.Override {
		t.Error("concrete member must be marked override")
	}
}

func TestForwardNiladicMethod(t *testing.T) {
	m := &typegraph.Member{
		Name:       "read",
		ParamLists: [][]typegraph.Param{{}},
		Result:     typegraph.TypeRef{Name: "String"},
		Abstract:   true,
	}

	def := Forward(emptyGraph(), m, "inner", "")
	if def.Source != "def read(): String = inner.read()" {
		t.Errorf("Source = %q", def.Source)
	}
}

func TestForwardMultipleParameterLists(t *testing.T) {
	m := &typegraph.Member{
		Name:       "fold",
		TypeParams: []string{"B"},
		ParamLists: [][]typegraph.Param{
			{{Name: "zero", Type: typegraph.TypeRef{Name: "B"}}},
			{{Name: "op", Type: typegraph.TypeRef{Name: "B"}}, {Name: "n", Type: typegraph.TypeRef{Name: "Int"}}},
		},
		Result:   typegraph.TypeRef{Name: "B"},
		Abstract: true,
	}

	def := Forward(emptyGraph(), m, "self", "")
	want := "def fold[B](zero: B)(op: B, n: Int): B = self.fold(zero)(op, n)"
	if def.Source != want {
		t.Errorf("Source = %q; want %q", def.Source, want)
	}
}

func TestForwardUsesMinimalNames(t *testing.T) {
	g := typegraph.New()
	if err := g.Add(&typegraph.Decl{Name: "core.io.Reader", Kind: typegraph.TraitDecl}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	m := &typegraph.Member{
		Name:       "wrap",
		ParamLists: [][]typegraph.Param{{{Name: "r", Type: typegraph.TypeRef{Name: "core.io.Reader"}}}},
		Result:     typegraph.TypeRef{Name: "core.io.Reader"},
		Abstract:   true,
	}

	def := Forward(g, m, "inner", "app")
	want := "def wrap(r: core.io.Reader): core.io.Reader = inner.wrap(r)"
	if def.Source != want {
		t.Errorf("Source = %q; want %q", def.Source, want)
	}
}
