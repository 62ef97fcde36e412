// Package cerr holds the sentinel errors shared across the codec's internal
// packages, so callers can errors.Is against a single set of values
// regardless of which stage of the pipeline produced them.
package cerr

import "errors"

var (
	// ErrInputTooSmall is returned when compressing fewer than two bytes:
	// the sequence index scan is undefined below that.
	ErrInputTooSmall = errors.New("crunch: input too small (need at least 2 bytes)")

	// ErrMalformedInput is returned when a decoder reads past the end of
	// its input, or a hybrid/Elias-gamma field decodes to a value outside
	// its legal range.
	ErrMalformedInput = errors.New("crunch: malformed compressed input")
)
