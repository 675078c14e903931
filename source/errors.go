package source

import "errors"

// Sentinel errors for clip implementations.
// These errors enable reliable error classification using errors.Is().

var (
	// ErrNoFrames indicates a clip was built without any frames.
	ErrNoFrames = errors.New("clip has no frames")

	// ErrClipClosed indicates the clip has been closed.
	ErrClipClosed = errors.New("clip is closed")

	// ErrRenderFailed indicates a render callback could not produce a frame.
	ErrRenderFailed = errors.New("frame render failed")

	// ErrFrameMismatch indicates a supplied frame does not match the
	// clip's declared format or geometry.
	ErrFrameMismatch = errors.New("frame does not match clip info")
)
