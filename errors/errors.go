// Package errors provides error handling for the SER evaluation harness.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrAlignment) {
//	    // handle misaligned sequences
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is         = crdb.Is
	IsAny      = crdb.IsAny
	As         = crdb.As
	Unwrap     = crdb.Unwrap
	UnwrapOnce = crdb.UnwrapOnce
	UnwrapAll  = crdb.UnwrapAll

	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// GetStack is an alias for GetReportableStackTrace for convenience.
var GetStack = crdb.GetReportableStackTrace

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Common sentinel errors for use across the harness.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrAlignment indicates that index-aligned sequences (ground truth,
	// per-system predictions) do not have equal lengths. This is fatal:
	// a silently truncated zip would misattribute every downstream result.
	ErrAlignment = New("sequences are not aligned")

	// ErrMalformedSpan indicates an entity span whose start index is not
	// strictly less than its end index
	ErrMalformedSpan = New("malformed entity span")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")

	// ErrServiceUnavailable indicates a recognizer endpoint is not reachable
	ErrServiceUnavailable = New("service unavailable")
)

// IsAlignmentError checks if an error is or wraps ErrAlignment
func IsAlignmentError(err error) bool {
	return err != nil && Is(err, ErrAlignment)
}

// IsMalformedSpanError checks if an error is or wraps ErrMalformedSpan
func IsMalformedSpanError(err error) bool {
	return err != nil && Is(err, ErrMalformedSpan)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewAlignmentError creates an alignment error naming the two mismatched lengths
func NewAlignmentError(what string, want, got int) error {
	return Wrap(ErrAlignment, Newf("%s: expected %d queries, got %d", what, want, got).Error())
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}
