package source

import (
	"context"
	"io"

	"github.com/opd-ai/frameblend/video"
)

// Info describes the constant properties of a clip.
type Info struct {
	Format    video.Format
	Width     int
	Height    int
	NumFrames int
	FPSNum    int64
	FPSDen    int64
}

// Clip supplies decoded frames by index.
//
// RequestFrame is an asynchronous hint that a frame will be needed soon; it
// never blocks and carries no result. GetFrame blocks until the frame is
// ready or the supply fails. Out-of-range indices are clamped into
// [0, NumFrames-1], so consumers may request past either edge of the clip
// and receive the nearest frame.
//
// Returned frames are shared and must be treated as read-only.
type Clip interface {
	// Info returns the clip's format, geometry, length, and frame rate.
	Info() Info
	// RequestFrame hints that frame n will be fetched soon.
	RequestFrame(n int)
	// GetFrame returns frame n, blocking until it is available.
	GetFrame(ctx context.Context, n int) (*video.Frame, error)
}

// Close releases a clip's resources when it holds any.
func Close(c Clip) error {
	if closer, ok := c.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// clampIndex maps any requested index onto the clip's addressable range.
func clampIndex(n, numFrames int) int {
	if n < 0 {
		return 0
	}
	if n >= numFrames {
		return numFrames - 1
	}
	return n
}
