package source

import (
	"context"
	"fmt"

	"github.com/opd-ai/frameblend/video"
)

// RenderFunc produces the frame at index n.
type RenderFunc func(n int) (*video.Frame, error)

// RenderClip generates frames on demand through a render callback.
//
// The callback is invoked synchronously from GetFrame and must be safe for
// concurrent calls when the clip is shared between goroutines.
type RenderClip struct {
	info   Info
	render RenderFunc
}

// NewRenderClip builds a procedural clip. info must carry a valid format,
// positive dimensions, and a positive frame count.
func NewRenderClip(info Info, render RenderFunc) (*RenderClip, error) {
	if render == nil {
		return nil, fmt.Errorf("render callback cannot be nil")
	}
	if info.NumFrames <= 0 {
		return nil, ErrNoFrames
	}
	if err := info.Format.Validate(); err != nil {
		return nil, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("invalid clip dimensions: %dx%d", info.Width, info.Height)
	}
	return &RenderClip{info: info, render: render}, nil
}

// Info returns the clip properties.
func (c *RenderClip) Info() Info {
	return c.info
}

// RequestFrame is a no-op; rendering happens synchronously in GetFrame.
// Wrap the clip in a Prefetcher to render hinted frames in the background.
func (c *RenderClip) RequestFrame(n int) {}

// GetFrame renders the frame at the clamped index.
func (c *RenderClip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	n = clampIndex(n, c.info.NumFrames)
	frame, err := c.render(n)
	if err != nil {
		return nil, fmt.Errorf("%w: frame %d: %v", ErrRenderFailed, n, err)
	}
	if frame == nil {
		return nil, fmt.Errorf("%w: frame %d: callback returned no frame", ErrRenderFailed, n)
	}
	return frame, nil
}

// BlankClip returns a clip whose frames all hold the given constant
// per-plane sample values. The template frame is rendered once and shared
// by every request.
func BlankClip(info Info, values ...uint16) (*RenderClip, error) {
	frame, err := video.NewFrame(info.Format, info.Width, info.Height)
	if err != nil {
		return nil, err
	}
	frame.Fill(values...)

	return NewRenderClip(info, func(int) (*video.Frame, error) {
		return frame, nil
	})
}
