// Package dberrors holds the typed fatal-error surface for the storage
// core. The original tutorial treats every one of these conditions as
// "print a line and exit(1)"; this package keeps that diagnostic text
// but lets it travel as a normal Go error until it reaches the REPL
// boundary, so the core can be exercised in-process by tests.
package dberrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Fatal wraps a condition that the reference implementation treats as
// unrecoverable: corrupt files, out-of-bounds page numbers, I/O failures,
// and the two documented "not implemented" paths (internal-node search,
// leaf split). Diag is the exact single-line message the REPL prints to
// stdout before exiting; Cause, if present, is attached with a stack
// trace for anyone inspecting the error programmatically.
type Fatal struct {
	Diag  string
	Cause error
}

func (f *Fatal) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s: %v", f.Diag, f.Cause)
	}
	return f.Diag
}

func (f *Fatal) Unwrap() error { return f.Cause }

// NewFatal builds a Fatal with no underlying cause, for conditions that
// are fatal by construction rather than because of a wrapped I/O error
// (e.g. "leaf split not implemented").
func NewFatal(diag string) *Fatal {
	return &Fatal{Diag: diag}
}

// WrapFatal attaches diag to a lower-level cause (a failed seek, read,
// write, or open) and records a stack trace at the call site.
func WrapFatal(diag string, cause error) *Fatal {
	return &Fatal{Diag: diag, Cause: errors.WithStack(cause)}
}
