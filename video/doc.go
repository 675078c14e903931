// Package video provides the planar frame model for the frameblend
// pipeline.
//
// Frames are planar: each channel is its own 2D sample grid with an
// independent stride. The package covers frame allocation with per-plane
// reuse, 8- and 16-bit sample access, content digests, and conversion to
// and from standard library images.
//
// # Formats
//
// A Format describes the pixel layout: true bit depth (8-16), storage
// width (1 or 2 bytes per sample), plane count, and chroma subsampling.
// Predefined formats cover the common planar layouts:
//
//	frame, err := video.NewFrame(video.YUV420P8, 640, 480)
//	if err != nil {
//	    return err
//	}
//
// 16-bit samples are stored little-endian in plane memory. Formats with
// 9-15 true bits (e.g. YUV420P10) occupy 2 bytes per sample and clamp at
// (1 << bits) - 1.
//
// # Frames and Planes
//
// Plane data is addressed through a byte stride, which the allocator pads
// to a 32-byte multiple. Code walking a plane must use the stride, never
// the visible width:
//
//	plane := frame.Planes[0]
//	for y := 0; y < plane.Height; y++ {
//	    row := plane.Data[y*plane.Stride:]
//	    // row[:plane.Width] holds the visible samples
//	}
//
// # Plane Reuse
//
// NewFrameWith builds an output frame that shares some planes with a
// reference frame and freshly allocates the rest:
//
//	// planes 1 and 2 alias ref's storage, plane 0 is new
//	dst := video.NewFrameWith(ref, video.PlaneMask{false, true, true})
//
// Shared planes are read-only references; writing through them would
// corrupt the reference frame. This is the cheap pass-through used by
// filters that leave some planes untouched.
//
// # Content Digests
//
// FrameDigest and PlaneDigest produce BLAKE2b-256 digests of the visible
// samples, excluding stride padding. Two frames with the same content but
// different strides digest identically, which makes digests suitable for
// golden-output verification in tests and tools.
//
// # Image Conversion
//
// ToImage and FrameFromImage bridge to the standard library image types
// for still-image import and export. Conversion uses the standard
// library's Y'CbCr coefficients; chroma is box-averaged down to the target
// subsampling on import.
//
// # Thread Safety
//
// Frames are not synchronized. The ownership rule is: frames received from
// a clip are shared and read-only; frames you allocate are yours until you
// hand them off. Concurrent readers of a shared frame are safe.
//
// # Known Limitations
//
//   - Image export covers 8-bit layouts and Gray16 only; deeper Y'CbCr
//     content needs a depth conversion stage first
//   - No alpha plane support
package video
