package source

import (
	"context"
	"fmt"

	"github.com/opd-ai/frameblend/video"
)

// MemoryClip serves a fixed slice of pre-decoded frames.
//
// Frames are handed out as shared references, never copied; callers must
// treat them as read-only.
type MemoryClip struct {
	info   Info
	frames []*video.Frame
}

// NewMemoryClip builds a clip over frames. Every frame must match info's
// format and geometry; NumFrames is taken from the slice length.
func NewMemoryClip(info Info, frames []*video.Frame) (*MemoryClip, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	for i, frame := range frames {
		if frame == nil {
			return nil, fmt.Errorf("%w: frame %d is nil", ErrFrameMismatch, i)
		}
		if frame.Format != info.Format || frame.Width != info.Width || frame.Height != info.Height {
			return nil, fmt.Errorf("%w: frame %d is %dx%d %s, clip is %dx%d %s",
				ErrFrameMismatch, i, frame.Width, frame.Height, frame.Format.Name,
				info.Width, info.Height, info.Format.Name)
		}
	}

	info.NumFrames = len(frames)
	return &MemoryClip{info: info, frames: frames}, nil
}

// Info returns the clip properties.
func (c *MemoryClip) Info() Info {
	return c.info
}

// RequestFrame is a no-op; every frame is already resident.
func (c *MemoryClip) RequestFrame(n int) {}

// GetFrame returns the frame at the clamped index.
func (c *MemoryClip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	return c.frames[clampIndex(n, c.info.NumFrames)], nil
}
