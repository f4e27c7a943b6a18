package metrics

import "errors"

var (
	// ErrLengthMismatch is returned by equal-length-only metrics (Hamming)
	// when the inputs differ in length and no padding policy is set.
	ErrLengthMismatch = errors.New("sequences have different lengths")

	// ErrInvalidConfig is returned for negative weights, out-of-range
	// cutoffs and similar bad option values, before any computation runs.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrCapacity marks inputs too long for a fixed-width bit-parallel
	// path. It never escapes the package: callers of the accelerated
	// paths fall back to the general algorithm instead.
	ErrCapacity = errors.New("input exceeds bit-parallel capacity")
)
