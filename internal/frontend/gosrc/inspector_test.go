package gosrc

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/mixlang/mixgen/internal/typegraph"
)

func newMethod(pkg *types.Package, name string, params, results []*types.Var) *types.Func {
	sig := types.NewSignatureType(nil, nil, nil,
		types.NewTuple(params...), types.NewTuple(results...), false)
	return types.NewFunc(token.NoPos, pkg, name, sig)
}

func namedVar(pkg *types.Package, name string, t types.Type) *types.Var {
	return types.NewVar(token.NoPos, pkg, name, t)
}

func TestTypeToRefBasics(t *testing.T) {
	pkg := types.NewPackage("example.com/store", "store")

	tests := []struct {
		name string
		typ  types.Type
		want string
	}{
		{"string", types.Typ[types.String], "String"},
		{"int", types.Typ[types.Int], "Int"},
		{"bool", types.Typ[types.Bool], "Boolean"},
		{"float64", types.Typ[types.Float64], "Double"},
		{"slice", types.NewSlice(types.Typ[types.Int]), "List<Int>"},
		{"map", types.NewMap(types.Typ[types.String], types.Typ[types.Int]), "Map<String, Int>"},
		{"pointer unwraps", types.NewPointer(types.Typ[types.Int]), "Int"},
		{"error", types.Universe.Lookup("error").Type(), "Error"},
		{"empty interface", types.NewInterfaceType(nil, nil), "Any"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := TypeToRef(pkg.Path(), tt.typ).String()
			if got != tt.want {
				t.Errorf("TypeToRef = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestDeclForInterface(t *testing.T) {
	pkg := types.NewPackage("example.com/io", "io")

	read := newMethod(pkg, "Read", nil, []*types.Var{
		namedVar(pkg, "", types.Typ[types.String]),
	})
	iface := types.NewInterfaceType([]*types.Func{read}, nil)
	iface.Complete()
	obj := types.NewTypeName(token.NoPos, pkg, "Reader", nil)
	types.NewNamed(obj, iface, nil)

	decl := DeclForType(pkg.Path(), obj)
	if decl == nil {
		t.Fatal("DeclForType returned nil")
	}
	if decl.Name != "example.com.io.Reader" {
		t.Errorf("Name = %q", decl.Name)
	}
	if !decl.IsTrait() {
		t.Error("interface should map to a trait")
	}
	if len(decl.Members) != 1 {
		t.Fatalf("len(Members) = %d; want 1", len(decl.Members))
	}

	m := decl.Members[0]
	if m.Name != "read" {
		t.Errorf("member name = %q; want read (lower camel)", m.Name)
	}
	if !m.Abstract {
		t.Error("interface methods must be abstract")
	}
	if m.Result.Name != "String" {
		t.Errorf("result = %q; want String", m.Result.Name)
	}
	if len(m.ParamLists) != 1 || len(m.ParamLists[0]) != 0 {
		t.Errorf("ParamLists = %v; want one empty list", m.ParamLists)
	}
}

func TestDeclForInterfaceEmbedding(t *testing.T) {
	pkg := types.NewPackage("example.com/io", "io")

	closeFn := newMethod(pkg, "Close", nil, nil)
	closerIface := types.NewInterfaceType([]*types.Func{closeFn}, nil)
	closerIface.Complete()
	closerObj := types.NewTypeName(token.NoPos, pkg, "Closer", nil)
	closer := types.NewNamed(closerObj, closerIface, nil)

	readFn := newMethod(pkg, "Read", nil, []*types.Var{
		namedVar(pkg, "", types.Typ[types.String]),
	})
	readerIface := types.NewInterfaceType([]*types.Func{readFn}, []types.Type{closer})
	readerIface.Complete()
	readerObj := types.NewTypeName(token.NoPos, pkg, "ReadCloser", nil)
	types.NewNamed(readerObj, readerIface, nil)

	decl := DeclForType(pkg.Path(), readerObj)
	if len(decl.Parents) != 1 {
		t.Fatalf("len(Parents) = %d; want 1", len(decl.Parents))
	}
	if decl.Parents[0].Name != "example.com.io.Closer" {
		t.Errorf("parent = %q", decl.Parents[0].Name)
	}
	if len(decl.Members) != 1 || decl.Members[0].Name != "read" {
		t.Errorf("Members = %v; embedded methods must not be duplicated", decl.MemberNames())
	}
}

func TestDeclForStruct(t *testing.T) {
	pkg := types.NewPackage("example.com/store", "store")

	st := types.NewStruct([]*types.Var{
		types.NewField(token.NoPos, pkg, "Name", types.Typ[types.String], false),
		types.NewField(token.NoPos, pkg, "size", types.Typ[types.Int], false),
	}, nil)
	obj := types.NewTypeName(token.NoPos, pkg, "Record", nil)
	named := types.NewNamed(obj, st, nil)

	get := newMethod(pkg, "Get",
		[]*types.Var{namedVar(pkg, "key", types.Typ[types.String])},
		[]*types.Var{namedVar(pkg, "", types.Typ[types.Int])})
	named.AddMethod(get)

	decl := DeclForType(pkg.Path(), obj)
	if decl.Kind != typegraph.ClassDecl {
		t.Errorf("Kind = %v; want class", decl.Kind)
	}
	if len(decl.Members) != 3 {
		t.Fatalf("len(Members) = %d; want 3 (two fields, one method)", len(decl.Members))
	}

	byName := map[string]*typegraph.Member{}
	for _, m := range decl.Members {
		byName[m.Name] = m
	}

	if f := byName["name"]; f == nil || f.HasParams() {
		t.Errorf("field name should be a value member: %v", f)
	}
	if f := byName["size"]; f == nil || f.Visibility.IsPublic() {
		t.Error("unexported field must carry package-private visibility")
	}
	if g := byName["get"]; g == nil {
		t.Fatal("method get missing")
	} else {
		if g.Abstract {
			t.Error("struct methods are concrete")
		}
		if len(g.ParamLists[0]) != 1 || g.ParamLists[0][0].Name != "key" {
			t.Errorf("params = %v", g.ParamLists[0])
		}
	}
}

func TestPopulateAddsSortedDecls(t *testing.T) {
	pkg := types.NewPackage("example.com/io", "io")
	closeFn := newMethod(pkg, "Close", nil, nil)
	iface := types.NewInterfaceType([]*types.Func{closeFn}, nil)
	iface.Complete()
	obj := types.NewTypeName(token.NoPos, pkg, "Closer", nil)
	types.NewNamed(obj, iface, nil)

	g := typegraph.New()
	decl := DeclForType(pkg.Path(), obj)
	if err := g.Add(decl); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, ok := g.Lookup("example.com.io.Closer")
	if !ok {
		t.Fatal("declaration not found in graph")
	}
	if got != decl {
		t.Error("graph returned a different declaration")
	}
}
