// Package typegraph models the type hierarchy the composition operations
// work over: named declarations (classes, traits, aliases), their ancestor
// chains, and their member tables with visibility and finality flags.
//
// The graph is supplied by a front-end (YAML manifest or Go source
// inspection) and is immutable once built. Nothing here performs I/O.
package typegraph

import (
	"fmt"
	"strings"

	"github.com/mixlang/mixgen/internal/config"
)

// DeclKind distinguishes the three kinds of named declarations.
type DeclKind int

const (
	ClassDecl DeclKind = iota
	TraitDecl
	AliasDecl
)

func (k DeclKind) String() string {
	switch k {
	case ClassDecl:
		return "class"
	case TraitDecl:
		return "trait"
	case AliasDecl:
		return "alias"
	}
	return "unknown"
}

// TypeRef is a reference to a type as written: a possibly qualified name
// with optional type arguments, or an intersection of several references.
type TypeRef struct {
	// Name is the (possibly qualified) type name. Empty for intersections.
	Name string

	// Args holds type arguments (e.g. Int in List<Int>).
	Args []TypeRef

	// Parts is non-empty for an intersection reference (A with B).
	Parts []TypeRef
}

// IsIntersection reports whether the reference is an intersection.
func (r TypeRef) IsIntersection() bool {
	return len(r.Parts) > 0
}

func (r TypeRef) String() string {
	if r.IsIntersection() {
		parts := make([]string, len(r.Parts))
		for i, p := range r.Parts {
			parts[i] = p.String()
		}
		return strings.Join(parts, " with ")
	}
	if len(r.Args) == 0 {
		return r.Name
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.String()
	}
	return r.Name + "<" + strings.Join(args, ", ") + ">"
}

// Visibility models member access. A zero Visibility is public.
type Visibility struct {
	// PrivateWithin restricts access to scopes whose fully-qualified name
	// starts with this path. Empty means public.
	PrivateWithin string
}

// IsPublic reports whether the member is unrestricted.
func (v Visibility) IsPublic() bool {
	return v.PrivateWithin == ""
}

// VisibleFrom reports whether a member with this visibility can be accessed
// from the given enclosing scope. The check is a plain path-prefix match;
// protected access and module boundaries are not modelled.
func (v Visibility) VisibleFrom(scope string) bool {
	if v.IsPublic() {
		return true
	}
	return strings.HasPrefix(scope, v.PrivateWithin)
}

// Param is a single named parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Member is a named, possibly generic, possibly multi-parameter-list
// callable member of a declaration.
type Member struct {
	Name  string
	Owner string // fully-qualified name of the declaring type

	TypeParams []string

	// ParamLists holds the parameter lists. A member with no lists is a
	// value-like member; a list may be empty to model a zero-arg call.
	ParamLists [][]Param

	Result TypeRef

	Abstract    bool
	Final       bool
	Constructor bool
	Visibility  Visibility
}

// IsIdentity reports whether the member is an object-identity method
// (equals, hashCode, toString, clone, finalize, getClass).
func (m *Member) IsIdentity() bool {
	return config.IdentityMethods[m.Name]
}

// HasParams reports whether the member takes any parameter lists at all.
func (m *Member) HasParams() bool {
	return len(m.ParamLists) > 0
}

// SignatureKey returns the identity of the member signature: name, type
// parameter count, and the shape of each parameter list. Two members with
// the same key are the same signature for deduplication and override
// resolution.
func (m *Member) SignatureKey() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteString("/")
	b.WriteString(fmt.Sprintf("%d", len(m.TypeParams)))
	for _, list := range m.ParamLists {
		b.WriteString("(")
		for i, p := range list {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(p.Type.String())
		}
		b.WriteString(")")
	}
	return b.String()
}

// Decl is one named nominal type in the graph.
type Decl struct {
	// Name is the fully-qualified, dot-separated name.
	Name string

	Kind     DeclKind
	Final    bool
	Abstract bool

	TypeParams []string

	// Parents lists the declared supertypes in source order. For classes
	// the head position may be a class; every other parent must be a trait.
	Parents []TypeRef

	// SelfType is the explicit self-type, if any. Nil means the declaration
	// itself.
	SelfType *TypeRef

	// Aliased is the target of an alias declaration.
	Aliased *TypeRef

	Members []*Member
}

// IsTrait reports whether the declaration is a trait.
func (d *Decl) IsTrait() bool {
	return d.Kind == TraitDecl
}

// LocalName returns the last segment of the fully-qualified name.
func (d *Decl) LocalName() string {
	if i := strings.LastIndex(d.Name, config.PathSeparator); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// Ref returns a reference to this declaration by its fully-qualified name.
func (d *Decl) Ref() TypeRef {
	return TypeRef{Name: d.Name}
}

// MemberNames returns the set of member names declared directly on d.
func (d *Decl) MemberNames() map[string]bool {
	names := make(map[string]bool, len(d.Members))
	for _, m := range d.Members {
		names[m.Name] = true
	}
	return names
}
