package constellation

import "errors"

// Sentinel errors returned (wrapped) by this package. Configuration problems
// surface at construction time only; per-sample decision paths on a validly
// constructed strategy never return errors.
var (
	// ErrInvalidConfig reports malformed constructor arguments: length
	// mismatches, a point count not divisible by the dimensionality, and
	// similar construction-time problems.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument reports an unsupported argument to an otherwise
	// valid instance, such as an unknown metric kind.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotImplemented reports a recognized but unimplemented request
	// (currently only the hard-bit metric).
	ErrNotImplemented = errors.New("not implemented")

	// ErrOutOfRange reports a LUT query that produced a negative cell
	// index. Clamping makes this unreachable for finite samples.
	ErrOutOfRange = errors.New("out of range")
)
