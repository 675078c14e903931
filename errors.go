package frameblend

import "errors"

// Sentinel errors for filter configuration and frame production.
// These errors enable reliable error classification using errors.Is().

// Construction errors.
var (
	// ErrInvalidConfiguration indicates unusable filter options: an even
	// weight count, a degenerate weight sum, or a bad plane selection.
	// Construction fails and the source clip is released.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Frame production errors.
var (
	// ErrUnsupportedFormat indicates a sample layout the blend kernels
	// cannot process. Only 1- and 2-byte integer samples are supported.
	ErrUnsupportedFormat = errors.New("unsupported sample format")

	// ErrUpstreamFailure indicates the source clip could not supply a
	// usable frame. The failure aborts the whole output frame and is
	// never retried.
	ErrUpstreamFailure = errors.New("upstream frame supply failed")
)
