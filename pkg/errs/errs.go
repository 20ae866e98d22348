// Package errs defines the sentinel error kinds shared across the search
// engine. Callers distinguish them with errors.Is; everything above the
// solver treats a single-candidate failure as data, not an exception.
package errs

import "errors"

var (
	// ErrInvalidArgument marks bad input: n < 2, negative port counts,
	// unrecognised flag combinations. Fatal at the CLI boundary.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParseFailure marks a malformed maze string (missing "normal:").
	ErrParseFailure = errors.New("parse failure")

	// ErrUnsolvable marks a port configuration with no start-to-goal path
	// under the depth cap. Non-fatal: the orchestrator records length -1
	// and continues.
	ErrUnsolvable = errors.New("unsolvable")

	// ErrInterrupted marks a user-requested cancellation. Non-fatal: the
	// orchestrator stops the loop and returns the current best.
	ErrInterrupted = errors.New("interrupted")

	// ErrCapacityExceeded marks IDDFS hitting MAX_DEPTH. Indistinguishable
	// from ErrUnsolvable at the solver API (both report length -1); kept
	// distinct here only for diagnostics.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
