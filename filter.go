package frameblend

import (
	"context"
	"fmt"

	"github.com/opd-ai/frameblend/source"
	"github.com/opd-ai/frameblend/video"
	"github.com/sirupsen/logrus"
)

// Options configures a FrameBlend filter.
type Options struct {
	// Weights holds one raw blend weight per window slot. The count must
	// be odd; the middle weight applies to the requested frame itself.
	// Weights are normalized to fractions of their sum.
	Weights []float64

	// Planes lists the plane indices to blend. An empty list blends every
	// plane; unlisted planes pass through from the center source frame.
	Planes []int

	// LogWeights emits the normalized weight set at debug level.
	LogWeights bool
}

// Filter blends each output frame from a sliding window of neighboring
// source frames. It implements source.Clip, so filters chain like any
// other clip stage.
//
// A Filter holds no per-request state and is safe for concurrent GetFrame
// calls.
type Filter struct {
	clip    source.Clip
	info    source.Info
	weights WeightSet
	process video.PlaneMask
}

// New creates a FrameBlend filter over clip.
//
// Configuration errors release the clip before returning, so a failed
// construction leaves no dangling resources.
func New(clip source.Clip, opts Options) (*Filter, error) {
	if clip == nil {
		return nil, fmt.Errorf("FrameBlend: %w: clip cannot be nil", ErrInvalidConfiguration)
	}

	logrus.WithFields(logrus.Fields{
		"function":     "New",
		"weight_count": len(opts.Weights),
		"planes":       opts.Planes,
	}).Info("Creating FrameBlend filter")

	weights, err := NormalizeWeights(opts.Weights)
	if err != nil {
		source.Close(clip)
		return nil, fmt.Errorf("FrameBlend: %w", err)
	}

	process, err := ParsePlanes(opts.Planes)
	if err != nil {
		source.Close(clip)
		return nil, fmt.Errorf("FrameBlend: %w", err)
	}

	if opts.LogWeights {
		logrus.WithFields(logrus.Fields{
			"function": "New",
			"weights":  weights.Percents(),
		}).Debug("Frame blending with weights")
	}

	filter := &Filter{
		clip:    clip,
		info:    clip.Info(),
		weights: weights,
		process: process,
	}

	logrus.WithFields(logrus.Fields{
		"function":    "New",
		"window_size": weights.Len(),
		"center":      weights.Center(),
		"format":      filter.info.Format.Name,
	}).Info("FrameBlend filter created successfully")

	return filter, nil
}

// Info mirrors the upstream clip properties; blending changes neither
// geometry nor length.
func (f *Filter) Info() source.Info {
	return f.info
}

// RequestFrame forwards the window's source requests upstream so a
// prefetching supplier can start fetching early.
func (f *Filter) RequestFrame(n int) {
	if n < 0 {
		return
	}
	f.forwardRequests(Window(n, f.weights.Len()))
}

// GetFrame renders the blended frame at index n.
//
// The source window is requested upstream, fetched in window order, and
// blended per selected plane. Unselected planes share the center source
// frame's storage. Any supplier failure aborts the whole frame.
func (f *Filter) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	if n < 0 {
		return nil, fmt.Errorf("frame index cannot be negative: %d", n)
	}

	window := Window(n, f.weights.Len())

	logrus.WithFields(logrus.Fields{
		"function":    "Filter.GetFrame",
		"frame":       n,
		"window_size": len(window),
	}).Debug("Requesting source window")

	f.forwardRequests(window)

	frames, err := f.fetchWindow(ctx, window)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "Filter.GetFrame",
		"frame":    n,
		"fetched":  len(frames),
	}).Debug("Source window ready")

	return f.blendFrames(n, frames)
}

// Close releases the upstream clip.
func (f *Filter) Close() error {
	return source.Close(f.clip)
}

// forwardRequests hints every distinct window index upstream. The window
// is non-decreasing, so skipping repeats of the previous index requests
// each boundary-clamped index exactly once, in ascending order.
func (f *Filter) forwardRequests(window []int) {
	prev := -1
	for _, idx := range window {
		if idx == prev {
			continue
		}
		f.clip.RequestFrame(idx)
		prev = idx
	}
}

// fetchWindow retrieves the window's frames in order. Position i of the
// result pairs with weight i; the order is never permuted.
func (f *Filter) fetchWindow(ctx context.Context, window []int) ([]*video.Frame, error) {
	frames := make([]*video.Frame, len(window))
	for i, idx := range window {
		frame, err := f.clip.GetFrame(ctx, idx)
		if err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", ErrUpstreamFailure, idx, err)
		}
		if err := f.checkSource(frame); err != nil {
			return nil, fmt.Errorf("%w: frame %d: %v", ErrUpstreamFailure, idx, err)
		}
		frames[i] = frame
	}
	return frames, nil
}

// checkSource validates that a supplied frame matches the clip info the
// filter was built over.
func (f *Filter) checkSource(frame *video.Frame) error {
	if frame == nil {
		return fmt.Errorf("supplier returned no frame")
	}
	if frame.Format != f.info.Format || frame.Width != f.info.Width || frame.Height != f.info.Height {
		return fmt.Errorf("source frame is %dx%d %s, clip is %dx%d %s",
			frame.Width, frame.Height, frame.Format.Name,
			f.info.Width, f.info.Height, f.info.Format.Name)
	}
	if len(frame.Planes) != f.info.Format.NumPlanes {
		return fmt.Errorf("source frame has %d planes, format %s has %d",
			len(frame.Planes), f.info.Format.Name, f.info.Format.NumPlanes)
	}
	return nil
}

// blendFrames builds the output frame: pass-through planes share the
// center frame's storage, selected planes are blended by sample depth.
func (f *Filter) blendFrames(n int, frames []*video.Frame) (*video.Frame, error) {
	center := frames[f.weights.Center()]
	format := center.Format

	if format.BytesPerSample != 1 && format.BytesPerSample != 2 {
		logrus.WithFields(logrus.Fields{
			"function":         "Filter.blendFrames",
			"frame":            n,
			"format":           format.Name,
			"bytes_per_sample": format.BytesPerSample,
		}).Error("FrameBlend: unsupported sample depth, aborting frame")
		return nil, fmt.Errorf("%w: %d bytes per sample", ErrUnsupportedFormat, format.BytesPerSample)
	}
	if format.NumPlanes < 1 || format.NumPlanes > len(f.process) {
		logrus.WithFields(logrus.Fields{
			"function": "Filter.blendFrames",
			"frame":    n,
			"format":   format.Name,
			"planes":   format.NumPlanes,
		}).Error("FrameBlend: unsupported plane count, aborting frame")
		return nil, fmt.Errorf("%w: %d planes", ErrUnsupportedFormat, format.NumPlanes)
	}

	var share video.PlaneMask
	for p := 0; p < format.NumPlanes; p++ {
		share[p] = !f.process[p]
	}
	dst := video.NewFrameWith(center, share)

	maxVal := format.MaxValue()
	blended := 0
	for p := 0; p < format.NumPlanes; p++ {
		if !f.process[p] {
			continue
		}

		srcs := make([]video.Plane, len(frames))
		for i, frame := range frames {
			if frame.Planes[p].Stride != dst.Planes[p].Stride {
				return nil, fmt.Errorf("%w: plane %d stride mismatch", ErrUpstreamFailure, p)
			}
			srcs[i] = frame.Planes[p]
		}

		switch format.BytesPerSample {
		case 1:
			blendPlane8(dst.Planes[p], srcs, f.weights.percents)
		case 2:
			blendPlane16(dst.Planes[p], srcs, f.weights.percents, maxVal)
		}
		blended++
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Filter.blendFrames",
		"frame":          n,
		"planes_blended": blended,
	}).Debug("Blended frame completed")

	return dst, nil
}
