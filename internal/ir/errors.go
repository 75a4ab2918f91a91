package ir

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// ErrorKind partitions DiagnosticError into the three categories named in
// the error-handling design: construction-time validation, emission-time
// unsupported constructs (the x86backend package has its own variant of
// this case), and invariant violations found during pass bookkeeping.
type ErrorKind int

const (
	KindConstruction ErrorKind = iota
	KindEmission
	KindInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindConstruction:
		return "construction"
	case KindEmission:
		return "emission"
	case KindInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// DiagnosticError is the payload carried by every panic this package raises.
// It is a typed panic, not a returned error, because none of the three
// failure categories are recoverable by the core itself: a construction
// failure means a compiler pass above this layer built the graph wrong, and
// the only sane response is to unwind to that pass's own error handling.
// Callers that want to turn a panic back into a normal error flow should
// recover() and use errors.As to check for *DiagnosticError specifically,
// letting any other panic value propagate as a genuine bug.
type DiagnosticError struct {
	Kind     ErrorKind
	Mnemonic string
	cause    error
}

func (e *DiagnosticError) Error() string {
	if e.Mnemonic != "" {
		return fmt.Sprintf("ir: %s: %s: %v", e.Kind, e.Mnemonic, e.cause)
	}
	return fmt.Sprintf("ir: %s: %v", e.Kind, e.cause)
}

func (e *DiagnosticError) Unwrap() error { return e.cause }

// newDiag builds a DiagnosticError wrapping msg (and optional dump of v for
// a deep diagnostic view) with the mnemonic attached for context, as the
// construction-time validation failures in the error design require.
func newDiag(kind ErrorKind, mnemonic string, msg string, v ...interface{}) *DiagnosticError {
	err := errors.New(msg)
	if len(v) > 0 {
		err = errors.Wrap(err, spew.Sdump(v...))
	}
	return &DiagnosticError{Kind: kind, Mnemonic: mnemonic, cause: err}
}

// fail panics with a construction-time DiagnosticError. Used pervasively by
// the validating constructors in instruction.go/families.go.
func fail(mnemonic, format string, args ...interface{}) {
	panic(newDiag(KindConstruction, mnemonic, fmt.Sprintf(format, args...)))
}

// bug panics with an invariant-violation DiagnosticError, mirroring the
// teacher's "BUG: ..." panic convention but as a typed payload rather than a
// bare string.
func bug(format string, args ...interface{}) {
	panic(newDiag(KindInvariant, "", fmt.Sprintf(format, args...)))
}
