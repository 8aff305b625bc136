// Package manifest parses the YAML composition manifest: the type graph
// declarations plus the list of mix/delegate operations to run over them.
//
// The manifest is the default front-end for the composition engine; the
// gosrc front-end builds the same graph from Go source instead.
package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level document.
type Manifest struct {
	// Graph declares the type hierarchy the operations run over.
	Graph GraphSpec `yaml:"graph"`

	// Operations lists the compositions to perform, in order.
	Operations []OperationSpec `yaml:"operations"`
}

// GraphSpec declares the type graph.
type GraphSpec struct {
	Types []TypeSpec `yaml:"types"`
}

// TypeSpec declares one named type.
type TypeSpec struct {
	// Name is the fully-qualified, dot-separated type name.
	Name string `yaml:"name"`

	// Kind is "class", "trait" or "alias". Defaults to "class".
	Kind string `yaml:"kind,omitempty"`

	Final    bool `yaml:"final,omitempty"`
	Abstract bool `yaml:"abstract,omitempty"`

	TypeParams []string `yaml:"type_params,omitempty"`

	// Extends lists the declared supertypes in source order. Each entry is
	// a textual reference ("io.Reader", "Cache<K, V>").
	Extends []string `yaml:"extends,omitempty"`

	// SelfType optionally restricts what the type may be mixed into
	// ("Ordered with Printable").
	SelfType string `yaml:"self_type,omitempty"`

	// Alias is the target reference for kind "alias".
	Alias string `yaml:"alias,omitempty"`

	Members []MemberSpec `yaml:"members,omitempty"`
}

// MemberSpec declares one member of a type.
type MemberSpec struct {
	Name string `yaml:"name"`

	TypeParams []string `yaml:"type_params,omitempty"`

	// Params holds the parameter lists. Omitted entirely for a value-like
	// member; an empty inner list models a zero-arg call.
	Params [][]ParamSpec `yaml:"params,omitempty"`

	// Returns is the textual result type reference.
	Returns string `yaml:"returns,omitempty"`

	Abstract    bool `yaml:"abstract,omitempty"`
	Final       bool `yaml:"final,omitempty"`
	Constructor bool `yaml:"constructor,omitempty"`

	// PrivateWithin restricts visibility to scopes under this path.
	PrivateWithin string `yaml:"private_within,omitempty"`
}

// ParamSpec is one named parameter.
type ParamSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// OperationSpec is exactly one of mix or delegate.
type OperationSpec struct {
	Mix      *MixSpec      `yaml:"mix,omitempty"`
	Delegate *DelegateSpec `yaml:"delegate,omitempty"`
}

// MixSpec describes a mix operation.
type MixSpec struct {
	First  OperandSpec `yaml:"first"`
	Second OperandSpec `yaml:"second"`

	// Scope is the fully-qualified enclosing scope; it drives name
	// minimization and visibility.
	Scope string `yaml:"scope,omitempty"`
}

// OperandSpec is one typed value expression.
type OperandSpec struct {
	Expr string `yaml:"expr"`
	Type string `yaml:"type"`
}

// DelegateSpec describes a delegate operation: a value binding paired
// with a class declaration.
type DelegateSpec struct {
	Value ValueSpec `yaml:"value"`

	// Class names the paired class declaration in the graph.
	Class string `yaml:"class"`

	// Body is the original class body, reproduced verbatim in the output.
	Body string `yaml:"body,omitempty"`

	Scope string `yaml:"scope,omitempty"`

	Options *OptionsSpec `yaml:"options,omitempty"`
}

// ValueSpec is the delegate value binding.
type ValueSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Expr string `yaml:"expr,omitempty"`
}

// OptionsSpec carries the three delegate switches.
type OptionsSpec struct {
	EmitDiagnostics        bool `yaml:"emit_diagnostics,omitempty"`
	ForwardIdentityMethods bool `yaml:"forward_identity_methods,omitempty"`

	// GenerateSupertypeTraits defaults to true when omitted, so it is a
	// pointer: only an explicit "false" disables it.
	GenerateSupertypeTraits *bool `yaml:"generate_supertype_traits,omitempty"`
}

// Load reads and parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses manifest content from bytes. The path argument is used
// only for error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := m.validate(path); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate checks the manifest for structural errors before any graph
// building happens.
func (m *Manifest) validate(path string) error {
	if len(m.Graph.Types) == 0 {
		return fmt.Errorf("%s: no types declared", path)
	}

	seen := make(map[string]bool)
	for i, ts := range m.Graph.Types {
		if ts.Name == "" {
			return fmt.Errorf("%s: types[%d]: name is required", path, i)
		}
		if seen[ts.Name] {
			return fmt.Errorf("%s: types[%d]: duplicate type %q", path, i, ts.Name)
		}
		seen[ts.Name] = true

		switch ts.Kind {
		case "", "class", "trait", "alias":
		default:
			return fmt.Errorf("%s: types[%d] (%s): unknown kind %q", path, i, ts.Name, ts.Kind)
		}
		if ts.Kind == "alias" && ts.Alias == "" {
			return fmt.Errorf("%s: types[%d] (%s): alias target is required", path, i, ts.Name)
		}
		if ts.Kind != "alias" && ts.Alias != "" {
			return fmt.Errorf("%s: types[%d] (%s): alias is only valid with kind alias", path, i, ts.Name)
		}

		for j, ms := range ts.Members {
			if ms.Name == "" {
				return fmt.Errorf("%s: types[%d].members[%d] (%s): name is required", path, i, j, ts.Name)
			}
			for k, list := range ms.Params {
				for l, p := range list {
					if p.Name == "" || p.Type == "" {
						return fmt.Errorf("%s: types[%d].members[%d].params[%d][%d] (%s.%s): name and type are required",
							path, i, j, k, l, ts.Name, ms.Name)
					}
				}
			}
		}
	}

	for i, op := range m.Operations {
		hasMix := op.Mix != nil
		hasDelegate := op.Delegate != nil
		if hasMix == hasDelegate {
			return fmt.Errorf("%s: operations[%d]: exactly one of mix or delegate is required", path, i)
		}
		if hasMix {
			if op.Mix.First.Type == "" || op.Mix.Second.Type == "" {
				return fmt.Errorf("%s: operations[%d]: mix requires first.type and second.type", path, i)
			}
			if op.Mix.First.Expr == "" || op.Mix.Second.Expr == "" {
				return fmt.Errorf("%s: operations[%d]: mix requires first.expr and second.expr", path, i)
			}
		}
		if hasDelegate {
			if op.Delegate.Value.Name == "" || op.Delegate.Value.Type == "" {
				return fmt.Errorf("%s: operations[%d]: delegate requires value.name and value.type", path, i)
			}
			if op.Delegate.Class == "" {
				return fmt.Errorf("%s: operations[%d]: delegate requires class", path, i)
			}
		}
	}

	return nil
}
