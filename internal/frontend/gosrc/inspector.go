// Package gosrc builds type graphs from compiled Go packages. Interfaces
// become traits, named struct types become classes, and embedding becomes
// the parent relation, so Go APIs can participate in composition alongside
// manifest-declared types.
package gosrc

import (
	"fmt"
	"go/types"
	"os"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/mixlang/mixgen/internal/diagnostics"
	"github.com/mixlang/mixgen/internal/typegraph"
)

// Inspector loads Go packages and extracts their exported type structure.
type Inspector struct {
	workDir    string
	loadedPkgs map[string]*packages.Package
}

func NewInspector(workDir string) *Inspector {
	return &Inspector{
		workDir:    workDir,
		loadedPkgs: make(map[string]*packages.Package),
	}
}

// Load loads the specified Go packages using go/packages.
func (ins *Inspector) Load(pkgPaths ...string) error {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedTypesInfo |
			packages.NeedImports |
			packages.NeedDeps,
		Dir: ins.workDir,
		Env: append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, pkgPaths...)
	if err != nil {
		return fmt.Errorf("loading packages: %w", err)
	}

	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
		ins.loadedPkgs[pkg.PkgPath] = pkg
	}

	if len(errs) > 0 {
		return fmt.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}

	return nil
}

// Populate adds a declaration for every exported named type in the loaded
// packages to g. Declarations are added in sorted order per package so the
// resulting graph is deterministic.
func (ins *Inspector) Populate(g *typegraph.Graph) []*diagnostics.DiagnosticError {
	var errs []*diagnostics.DiagnosticError

	pkgPaths := make([]string, 0, len(ins.loadedPkgs))
	for path := range ins.loadedPkgs {
		pkgPaths = append(pkgPaths, path)
	}
	sort.Strings(pkgPaths)

	for _, path := range pkgPaths {
		pkg := ins.loadedPkgs[path]
		scope := pkg.Types.Scope()

		names := scope.Names()
		sort.Strings(names)

		for _, name := range names {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			decl := DeclForType(path, obj)
			if decl == nil {
				continue
			}
			if err := g.Add(decl); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errs
}

// DeclForType converts one named Go type to a declaration. Interface types
// become traits; everything else becomes a class. Returns nil for types
// with no composable surface (e.g. basic type definitions with no methods).
func DeclForType(pkgPath string, obj *types.TypeName) *typegraph.Decl {
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil
	}

	fqn := PackageFQN(pkgPath) + "." + obj.Name()

	if iface, ok := named.Underlying().(*types.Interface); ok {
		return interfaceDecl(pkgPath, fqn, named, iface)
	}
	return classDecl(pkgPath, fqn, named)
}

func interfaceDecl(pkgPath, fqn string, named *types.Named, iface *types.Interface) *typegraph.Decl {
	decl := &typegraph.Decl{
		Name:       fqn,
		Kind:       typegraph.TraitDecl,
		Abstract:   true,
		TypeParams: typeParamNames(named.TypeParams()),
	}

	for i := 0; i < iface.NumEmbeddeds(); i++ {
		if parent, ok := embeddedRef(pkgPath, iface.EmbeddedType(i)); ok {
			decl.Parents = append(decl.Parents, parent)
		}
	}

	for i := 0; i < iface.NumExplicitMethods(); i++ {
		m := methodMember(pkgPath, fqn, iface.ExplicitMethod(i), true)
		decl.Members = append(decl.Members, m)
	}

	return decl
}

func classDecl(pkgPath, fqn string, named *types.Named) *typegraph.Decl {
	decl := &typegraph.Decl{
		Name:       fqn,
		Kind:       typegraph.ClassDecl,
		TypeParams: typeParamNames(named.TypeParams()),
	}

	if st, ok := named.Underlying().(*types.Struct); ok {
		for i := 0; i < st.NumFields(); i++ {
			f := st.Field(i)
			if f.Embedded() {
				if parent, ok := embeddedRef(pkgPath, f.Type()); ok {
					decl.Parents = append(decl.Parents, parent)
				}
				continue
			}
			decl.Members = append(decl.Members, fieldMember(pkgPath, fqn, f))
		}
	}

	for i := 0; i < named.NumMethods(); i++ {
		m := methodMember(pkgPath, fqn, named.Method(i), false)
		decl.Members = append(decl.Members, m)
	}

	return decl
}

// embeddedRef converts an embedded interface or struct field type to a
// parent reference. Unnamed embedded types (e.g. embedded struct literals)
// have no graph identity and are skipped.
func embeddedRef(pkgPath string, t types.Type) (typegraph.TypeRef, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return typegraph.TypeRef{}, false
	}
	return TypeToRef(pkgPath, named), true
}

func methodMember(pkgPath, owner string, fn *types.Func, abstract bool) *typegraph.Member {
	sig := fn.Type().(*types.Signature)

	params := make([]typegraph.Param, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		name := p.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		params = append(params, typegraph.Param{
			Name: name,
			Type: TypeToRef(pkgPath, p.Type()),
		})
	}

	m := &typegraph.Member{
		Name:       lcFirst(fn.Name()),
		Owner:      owner,
		ParamLists: [][]typegraph.Param{params},
		Result:     resultRef(pkgPath, sig.Results()),
		Abstract:   abstract,
	}
	if !fn.Exported() {
		m.Visibility = typegraph.Visibility{PrivateWithin: PackageFQN(pkgPath)}
	}
	return m
}

func fieldMember(pkgPath, owner string, f *types.Var) *typegraph.Member {
	m := &typegraph.Member{
		Name:   lcFirst(f.Name()),
		Owner:  owner,
		Result: TypeToRef(pkgPath, f.Type()),
	}
	if !f.Exported() {
		m.Visibility = typegraph.Visibility{PrivateWithin: PackageFQN(pkgPath)}
	}
	return m
}

func resultRef(pkgPath string, results *types.Tuple) typegraph.TypeRef {
	switch results.Len() {
	case 0:
		return typegraph.TypeRef{Name: "Unit"}
	case 1:
		return TypeToRef(pkgPath, results.At(0).Type())
	default:
		// Multiple results become a tuple type.
		parts := make([]string, results.Len())
		for i := 0; i < results.Len(); i++ {
			parts[i] = TypeToRef(pkgPath, results.At(i).Type()).String()
		}
		return typegraph.TypeRef{Name: "(" + strings.Join(parts, ", ") + ")"}
	}
}

// basicNames maps Go basic types onto the generated language's primitives.
var basicNames = map[string]string{
	"bool":    "Boolean",
	"string":  "String",
	"int":     "Int",
	"int8":    "Byte",
	"int16":   "Short",
	"int32":   "Int",
	"int64":   "Long",
	"uint8":   "Byte",
	"float32": "Float",
	"float64": "Double",
	"rune":    "Char",
	"any":     "Any",
}

// TypeToRef converts a go/types.Type to a type reference. pkgPath is the
// package being inspected; types from that package keep its qualified name
// so references resolve within the generated graph.
func TypeToRef(pkgPath string, t types.Type) typegraph.TypeRef {
	switch t := t.(type) {
	case *types.Basic:
		if name, ok := basicNames[t.Name()]; ok {
			return typegraph.TypeRef{Name: name}
		}
		return typegraph.TypeRef{Name: ucFirst(t.Name())}

	case *types.Pointer:
		return TypeToRef(pkgPath, t.Elem())

	case *types.Slice:
		return typegraph.TypeRef{Name: "List", Args: []typegraph.TypeRef{TypeToRef(pkgPath, t.Elem())}}

	case *types.Map:
		return typegraph.TypeRef{Name: "Map", Args: []typegraph.TypeRef{
			TypeToRef(pkgPath, t.Key()),
			TypeToRef(pkgPath, t.Elem()),
		}}

	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			// Universe types, e.g. error.
			if obj.Name() == "error" {
				return typegraph.TypeRef{Name: "Error"}
			}
			return typegraph.TypeRef{Name: ucFirst(obj.Name())}
		}
		ref := typegraph.TypeRef{Name: PackageFQN(obj.Pkg().Path()) + "." + obj.Name()}
		args := t.TypeArgs()
		for i := 0; i < args.Len(); i++ {
			ref.Args = append(ref.Args, TypeToRef(pkgPath, args.At(i)))
		}
		return ref

	case *types.TypeParam:
		return typegraph.TypeRef{Name: t.Obj().Name()}

	case *types.Interface:
		if t.Empty() {
			return typegraph.TypeRef{Name: "Any"}
		}
		return typegraph.TypeRef{Name: types.TypeString(t, relativeTo(pkgPath))}

	default:
		return typegraph.TypeRef{Name: types.TypeString(t, relativeTo(pkgPath))}
	}
}

func relativeTo(pkgPath string) types.Qualifier {
	return func(p *types.Package) string {
		if p.Path() == pkgPath {
			return ""
		}
		return PackageFQN(p.Path())
	}
}

// PackageFQN maps a slash-separated Go import path to a dot-separated
// scope name ("net/http" -> "net.http").
func PackageFQN(pkgPath string) string {
	return strings.ReplaceAll(pkgPath, "/", ".")
}

func typeParamNames(tps *types.TypeParamList) []string {
	if tps == nil || tps.Len() == 0 {
		return nil
	}
	names := make([]string, tps.Len())
	for i := 0; i < tps.Len(); i++ {
		names[i] = tps.At(i).Obj().Name()
	}
	return names
}

func lcFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func ucFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
