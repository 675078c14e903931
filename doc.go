// Package frameblend implements temporal frame blending for video clips.
//
// Frame blending averages each frame with its temporal neighbors using a
// window of normalized weights, producing motion-trail and shutter-smear
// effects. The package provides the blending filter itself; frame storage
// lives in the video subpackage and clip suppliers in the source
// subpackage.
//
// # Getting Started
//
// Create a clip, wrap it in a filter, and pull blended frames:
//
//	clip, err := source.NewMemoryClip(info, frames)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	filter, err := frameblend.New(clip, frameblend.Options{
//	    Weights: []float64{1, 2, 4, 2, 1},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer filter.Close()
//
//	frame, err := filter.GetFrame(context.Background(), 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Core Types
//
// The package defines several core types:
//
//   - [Filter]: The blending filter; implements source.Clip so filters chain
//   - [Options]: Configuration for creating a new Filter
//   - [WeightSet]: A validated, normalized blend weight window
//
// # Weights and Windows
//
// The weight count must be odd. The middle weight applies to the requested
// frame; the others apply to its neighbors, half before and half after.
// Raw weights are normalized to fractions of their sum, so only ratios
// matter:
//
//	frameblend.Options{Weights: []float64{1, 2, 1}}    // 25% / 50% / 25%
//	frameblend.Options{Weights: []float64{10, 20, 10}} // same blend
//
// Near clip boundaries the window clamps: positions before frame zero
// reuse frame zero, so the first frame's window [0 0 1] weights frame
// zero twice. The clip end behaves the same way.
//
// # Plane Selection
//
// By default every plane is blended. The Planes option restricts blending
// to the listed plane indices; unlisted planes pass through unmodified,
// sharing storage with the center source frame:
//
//	// Blend luma only; chroma passes through.
//	frameblend.Options{
//	    Weights: []float64{1, 2, 1},
//	    Planes:  []int{0},
//	}
//
// # Error Classification
//
// Errors are classified by sentinel values and tested with errors.Is:
//
//   - [ErrInvalidConfiguration]: rejected Options, reported by New
//   - [ErrUnsupportedFormat]: sample depth outside 8..16 bits, reported per frame
//   - [ErrUpstreamFailure]: the source clip failed or returned a mismatched frame
//
// Construction errors carry a "FrameBlend: " prefix and release the clip
// before returning.
//
// # Thread Safety
//
// A Filter is immutable after New. Concurrent GetFrame calls for distinct
// frame indices are safe; each call owns its output frame. Pass-through
// planes share read-only storage with the source frame, which callers
// must not mutate.
//
// # Integration Architecture
//
// This package orchestrates two subpackages:
//
//   - [video]: planar frame storage, pixel formats, digests, image conversion
//   - [source]: clip suppliers including in-memory, procedural, image
//     sequence, and prefetching implementations
package frameblend
