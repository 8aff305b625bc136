package manifest

import (
	"strings"
	"testing"
)

const sampleManifest = `
graph:
  types:
    - name: io.Closeable
      kind: trait
      members:
        - name: close
          params: [[]]
          returns: Unit
          abstract: true
    - name: io.Reader
      kind: trait
      extends: [io.Closeable]
      members:
        - name: read
          params: [[]]
          returns: String
          abstract: true
    - name: app.Wrapper
      members:
        - name: close
          params: [[]]
          returns: Unit
operations:
  - delegate:
      value: { name: inner, type: io.Reader, expr: openFile(path) }
      class: app.Wrapper
      scope: app
  - mix:
      first: { expr: a, type: app.Wrapper }
      second: { expr: b, type: io.Reader }
      scope: app
`

func TestParseSampleManifest(t *testing.T) {
	m, err := Parse([]byte(sampleManifest), "test.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(m.Graph.Types) != 3 {
		t.Errorf("len(Types) = %d; want 3", len(m.Graph.Types))
	}
	if len(m.Operations) != 2 {
		t.Errorf("len(Operations) = %d; want 2", len(m.Operations))
	}
	if m.Operations[0].Delegate == nil {
		t.Fatal("first operation should be a delegate")
	}
	if m.Operations[0].Delegate.Value.Name != "inner" {
		t.Errorf("delegate value name = %q", m.Operations[0].Delegate.Value.Name)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"no types",
			"graph:\n  types: []\n",
			"no types declared",
		},
		{
			"missing type name",
			"graph:\n  types:\n    - kind: trait\n",
			"name is required",
		},
		{
			"duplicate type",
			"graph:\n  types:\n    - name: A\n    - name: A\n",
			"duplicate type",
		},
		{
			"bad kind",
			"graph:\n  types:\n    - name: A\n      kind: enum\n",
			"unknown kind",
		},
		{
			"alias without target",
			"graph:\n  types:\n    - name: A\n      kind: alias\n",
			"alias target is required",
		},
		{
			"alias on class",
			"graph:\n  types:\n    - name: A\n      alias: B\n",
			"only valid with kind alias",
		},
		{
			"empty operation",
			"graph:\n  types:\n    - name: A\noperations:\n  - {}\n",
			"exactly one of mix or delegate",
		},
		{
			"mix and delegate together",
			"graph:\n  types:\n    - name: A\noperations:\n  - mix:\n      first: { expr: a, type: A }\n      second: { expr: b, type: A }\n    delegate:\n      value: { name: x, type: A }\n      class: A\n",
			"exactly one of mix or delegate",
		},
		{
			"mix without exprs",
			"graph:\n  types:\n    - name: A\noperations:\n  - mix:\n      first: { type: A }\n      second: { type: A }\n",
			"first.expr",
		},
		{
			"delegate without class",
			"graph:\n  types:\n    - name: A\noperations:\n  - delegate:\n      value: { name: x, type: A }\n",
			"requires class",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "test.yaml")
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err.Error(), tt.want)
			}
		})
	}
}

func TestBuildGraph(t *testing.T) {
	m, err := Parse([]byte(sampleManifest), "test.yaml")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	g, errs := BuildGraph(m)
	if len(errs) > 0 {
		t.Fatalf("BuildGraph errors: %v", errs)
	}

	reader, ok := g.Lookup("io.Reader")
	if !ok {
		t.Fatal("io.Reader not in graph")
	}
	if !reader.IsTrait() {
		t.Error("io.Reader should be a trait")
	}
	if len(reader.Parents) != 1 || reader.Parents[0].Name != "io.Closeable" {
		t.Errorf("io.Reader parents = %v", reader.Parents)
	}
	if len(reader.Members) != 1 || reader.Members[0].Name != "read" {
		t.Errorf("io.Reader members = %v", reader.Members)
	}
	if reader.Members[0].Owner != "io.Reader" {
		t.Errorf("member owner = %q; want io.Reader", reader.Members[0].Owner)
	}

	wrapper, _ := g.Lookup("app.Wrapper")
	if wrapper.Kind.String() != "class" {
		t.Errorf("app.Wrapper kind = %s; want class (the default)", wrapper.Kind)
	}
}

func TestBuildDelegateInputDefaults(t *testing.T) {
	spec := &DelegateSpec{
		Value: ValueSpec{Name: "inner", Type: "io.Reader"},
		Class: "app.Wrapper",
	}

	in, derr := BuildDelegateInput(spec)
	if derr != nil {
		t.Fatalf("BuildDelegateInput failed: %v", derr)
	}
	if !in.Options.GenerateSupertypeTraits {
		t.Error("generate_supertype_traits must default to true")
	}
	if in.Options.EmitDiagnostics || in.Options.ForwardIdentityMethods {
		t.Error("emit_diagnostics and forward_identity_methods must default to false")
	}
}

func TestBuildDelegateInputExplicitFalse(t *testing.T) {
	off := false
	spec := &DelegateSpec{
		Value:   ValueSpec{Name: "inner", Type: "io.Reader"},
		Class:   "app.Wrapper",
		Options: &OptionsSpec{GenerateSupertypeTraits: &off},
	}

	in, derr := BuildDelegateInput(spec)
	if derr != nil {
		t.Fatalf("BuildDelegateInput failed: %v", derr)
	}
	if in.Options.GenerateSupertypeTraits {
		t.Error("explicit false must disable supertype generation")
	}
}

func TestBuildGraphBadRef(t *testing.T) {
	m := &Manifest{Graph: GraphSpec{Types: []TypeSpec{
		{Name: "A", Extends: []string{"List<"}},
	}}}

	_, errs := BuildGraph(m)
	if len(errs) == 0 {
		t.Fatal("expected a malformed reference error")
	}
}
