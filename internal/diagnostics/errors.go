// Package diagnostics defines the error codes and the error type reported
// by every stage of the composition pipeline. All failures are terminal for
// the operation that produced them; there is no retry or partial result.
package diagnostics

import "fmt"

// ErrorCode identifies a class of diagnostic.
type ErrorCode string

// Graph errors (G), composition errors (C), manifest errors (M).
const (
	ErrG001 ErrorCode = "G001" // unknown type
	ErrG002 ErrorCode = "G002" // duplicate type declaration
	ErrG003 ErrorCode = "G003" // cyclic alias chain
	ErrG004 ErrorCode = "G004" // malformed type reference
	ErrG005 ErrorCode = "G005" // Go package inspection failure

	ErrC001 ErrorCode = "C001" // first mix operand is final
	ErrC002 ErrorCode = "C002" // second mix operand component is not a trait
	ErrC003 ErrorCode = "C003" // synthesized supertype join does not typecheck
	ErrC004 ErrorCode = "C004" // delegate field type cannot be resolved
	ErrC005 ErrorCode = "C005" // invalid delegate placement
	ErrC006 ErrorCode = "C006" // no forwarding body can be constructed

	ErrM001 ErrorCode = "M001" // manifest cannot be read or parsed
	ErrM002 ErrorCode = "M002" // manifest validation failure
)

var messages = map[ErrorCode]string{
	ErrG001: "unknown type '%s'",
	ErrG002: "duplicate declaration of type '%s'",
	ErrG003: "cyclic alias chain through '%s'",
	ErrG004: "malformed type reference '%s': %s",
	ErrG005: "cannot inspect Go packages: %s",

	ErrC001: "cannot mix: first operand type '%s' is final",
	ErrC002: "cannot mix: component '%s' of the second operand is not a trait",
	ErrC003: "synthesized supertype '%s' does not typecheck: %s",
	ErrC004: "delegate field type '%s' cannot be resolved in scope '%s': %s",
	ErrC005: "delegate requires a value binding paired with a class declaration: %s",
	ErrC006: "no forwarding body can be constructed for member '%s' of '%s'",

	ErrM001: "cannot load manifest %s: %s",
	ErrM002: "invalid manifest %s: %s",
}

// DiagnosticError is a compile-time diagnostic with a stable code.
type DiagnosticError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewError creates a diagnostic for the given code. The args are substituted
// into the code's message template.
func NewError(code ErrorCode, args ...interface{}) *DiagnosticError {
	tmpl, ok := messages[code]
	if !ok {
		tmpl = "unknown diagnostic"
	}
	return &DiagnosticError{
		Code:    code,
		Message: fmt.Sprintf(tmpl, args...),
	}
}

// WithCause attaches an underlying error so it survives wrapping.
func (e *DiagnosticError) WithCause(err error) *DiagnosticError {
	e.Cause = err
	return e
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DiagnosticError) Unwrap() error {
	return e.Cause
}
