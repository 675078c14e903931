// Package source defines the frame-supplier side of the frameblend
// pipeline.
//
// A Clip supplies decoded frames by index through a two-phase protocol:
// RequestFrame is a non-blocking hint that a frame will be needed, and
// GetFrame blocks until the frame is available or the supply fails.
// Filters consume clips and can themselves implement Clip, so stages chain
// naturally.
//
// # The Clip Contract
//
// Implementations clamp out-of-range indices into [0, NumFrames-1], which
// lets a windowed consumer request past either edge of the clip and
// receive the nearest frame. Frames handed out are shared references and
// must be treated as read-only.
//
// # Implementations
//
// MemoryClip serves a fixed slice of pre-decoded frames:
//
//	clip, err := source.NewMemoryClip(info, frames)
//
// RenderClip generates frames procedurally; BlankClip is the constant-value
// special case used widely in tests:
//
//	clip, err := source.BlankClip(info, 16, 128, 128)
//
// ImageClip reads a numbered PNG/JPEG sequence from disk, scaling files to
// the clip geometry as needed:
//
//	paths, err := source.FindSequence("frames/")
//	clip, err := source.NewImageClip(paths, source.ImageClipConfig{})
//
// # Prefetching
//
// A Prefetcher wraps any clip with a worker pool, turning RequestFrame
// hints into background fetches that GetFrame joins later:
//
//	pf := source.NewPrefetcher(clip, source.PrefetcherConfig{Workers: 4})
//	defer pf.Close()
//
//	pf.RequestFrame(10)           // fetch starts in the background
//	frame, err := pf.GetFrame(ctx, 10) // joins the finished fetch
//
// Settled frames stay in a bounded cache, so repeated window fetches near
// clip edges are served without refetching.
//
// # Lifecycle
//
// Clips that hold resources implement io.Closer; source.Close releases a
// clip when it does and is a no-op otherwise.
package source
