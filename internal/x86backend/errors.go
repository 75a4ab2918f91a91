package x86backend

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind mirrors ir.ErrorKind's partition for this package's own failure
// surface: emission-time unsupported constructs and invariant violations
// found while walking the allocation plan. Construction-time validation
// lives entirely in the ir package.
type ErrorKind int

const (
	KindEmission ErrorKind = iota
	KindInvariant
)

func (k ErrorKind) String() string {
	if k == KindEmission {
		return "emission"
	}
	return "invariant"
}

// DiagnosticError is this package's typed panic payload, following the same
// recoverable-by-design convention as ir.DiagnosticError.
type DiagnosticError struct {
	Kind ErrorKind
	Op   string
	cause error
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("x86backend: %s: %s: %v", e.Kind, e.Op, e.cause)
}

func (e *DiagnosticError) Unwrap() error { return e.cause }

func newDiag(kind ErrorKind, op string, format string, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Kind: kind, Op: op, cause: errors.New(fmt.Sprintf(format, args...))}
}

func bug(format string, args ...interface{}) {
	panic(newDiag(KindInvariant, "", format, args...))
}

func unsupported(op string, format string, args ...interface{}) {
	panic(newDiag(KindEmission, op, format, args...))
}
