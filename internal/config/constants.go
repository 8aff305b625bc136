package config

// IsTestMode indicates if the program is running in test mode.
// When set, synthesized names use a deterministic counter instead of
// random suffixes so generated output is stable across runs.
var IsTestMode = false

// IdentityMethods are the object-identity members. They are never
// forwarded unless a delegate operation opts in with forward_identity_methods.
var IdentityMethods = map[string]bool{
	"equals":   true,
	"hashCode": true,
	"toString": true,
	"clone":    true,
	"finalize": true,
	"getClass": true,
}

// Prefixes for synthesized identifiers
const (
	MixTypePrefix      = "Mixed"
	DelegateTypePrefix = "Composed"
	LeftBindPrefix     = "left"
	RightBindPrefix    = "right"
)

// PathSeparator separates segments of a fully-qualified type name.
const PathSeparator = "."
