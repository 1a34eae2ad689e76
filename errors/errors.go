// Package errors provides error handling for codecomplete.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Every failure that ends an invocation is marked with one of the kind
// sentinels below so the CLI can report which kind of failure occurred:
//
//	if errors.Is(err, errors.ErrReadFailed) {
//	    // the source file could not be read
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
	Mark         = crdb.Mark
)

// User-facing messages and details
var (
	WithHint           = crdb.WithHint
	WithHintf          = crdb.WithHintf
	WithDetail         = crdb.WithDetail
	WithDetailf        = crdb.WithDetailf
	WithSecondaryError = crdb.WithSecondaryError
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Failure kinds. Each one aborts the invocation; none is recovered locally.
var (
	// ErrReadFailed indicates the source file could not be read
	ErrReadFailed = New("read failed")

	// ErrInvalidArgument indicates a caller-supplied value could not be used
	ErrInvalidArgument = New("invalid argument")

	// ErrServiceUnavailable indicates the analysis service could not be
	// started, crashed, or answered with a JSON-RPC error
	ErrServiceUnavailable = New("service unavailable")

	// ErrMalformedReply indicates the analysis service answered with a
	// result that is not a completion list
	ErrMalformedReply = New("malformed reply")

	// ErrSDKNotFound indicates platform SDK discovery produced no path
	ErrSDKNotFound = New("sdk not found")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = New("not found")
)

// kinds is ordered from most to least specific.
var kinds = []error{
	ErrReadFailed,
	ErrInvalidArgument,
	ErrServiceUnavailable,
	ErrMalformedReply,
	ErrSDKNotFound,
	ErrNotFound,
}

// ReadFailed marks a read failure for path, keeping cause in the chain.
func ReadFailed(path string, cause error) error {
	if cause == nil {
		return Mark(Newf("failed to read %s", path), ErrReadFailed)
	}
	return Mark(Wrapf(cause, "failed to read %s", path), ErrReadFailed)
}

// InvalidArgument returns an error marked ErrInvalidArgument whose message
// is exactly description.
func InvalidArgument(description string) error {
	return Mark(New(description), ErrInvalidArgument)
}

// ServiceUnavailable marks err as an analysis service failure.
func ServiceUnavailable(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrServiceUnavailable)
}

// MalformedReply marks err as an undecodable service reply.
func MalformedReply(err error, context string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrap(err, context), ErrMalformedReply)
}

// IsReadFailed checks if an error is or wraps ErrReadFailed
func IsReadFailed(err error) bool {
	return err != nil && Is(err, ErrReadFailed)
}

// IsInvalidArgument checks if an error is or wraps ErrInvalidArgument
func IsInvalidArgument(err error) bool {
	return err != nil && Is(err, ErrInvalidArgument)
}

// IsServiceUnavailable checks if an error is or wraps ErrServiceUnavailable
func IsServiceUnavailable(err error) bool {
	return err != nil && Is(err, ErrServiceUnavailable)
}

// IsMalformedReply checks if an error is or wraps ErrMalformedReply
func IsMalformedReply(err error) bool {
	return err != nil && Is(err, ErrMalformedReply)
}

// IsNotFound checks if an error is or wraps ErrNotFound
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// Kind returns the failure kind name for err ("read failed", "invalid
// argument", ...) or "error" when err carries no kind marker.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if Is(err, k) {
			return k.Error()
		}
	}
	return "error"
}
