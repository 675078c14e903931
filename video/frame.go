package video

import (
	"encoding/binary"
	"fmt"
)

// Rows are padded so every plane stride is a multiple of this.
const strideAlign = 32

// Plane is one channel of a frame: a 2D sample grid stored row-major with
// a stride that may exceed the visible row width.
type Plane struct {
	Data   []byte
	Stride int // bytes per row, including padding
	Width  int // visible samples per row
	Height int // visible rows
}

// Sample8 returns the 8-bit sample at (x, y).
func (p Plane) Sample8(x, y int) byte {
	return p.Data[y*p.Stride+x]
}

// SetSample8 stores an 8-bit sample at (x, y).
func (p Plane) SetSample8(x, y int, v byte) {
	p.Data[y*p.Stride+x] = v
}

// Sample16 returns the little-endian 16-bit sample at (x, y).
func (p Plane) Sample16(x, y int) uint16 {
	return binary.LittleEndian.Uint16(p.Data[y*p.Stride+2*x:])
}

// SetSample16 stores a little-endian 16-bit sample at (x, y).
func (p Plane) SetSample16(x, y int, v uint16) {
	binary.LittleEndian.PutUint16(p.Data[y*p.Stride+2*x:], v)
}

// PlaneMask selects a subset of a frame's planes by index.
type PlaneMask [3]bool

// AllPlanes returns a mask selecting every plane.
func AllPlanes() PlaneMask {
	return PlaneMask{true, true, true}
}

// Frame is a planar video frame.
//
// Frames handed out by a clip are shared and must be treated as read-only;
// a frame built by NewFrame or NewFrameWith is exclusively owned by its
// creator until handed off.
type Frame struct {
	Format Format
	Width  int
	Height int
	Planes []Plane
}

// NewFrame allocates a frame with zeroed, stride-aligned planes.
func NewFrame(format Format, width, height int) (*Frame, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions: %dx%d", width, height)
	}
	if width%(1<<format.SubSamplingW) != 0 || height%(1<<format.SubSamplingH) != 0 {
		return nil, fmt.Errorf("dimensions %dx%d incompatible with %s subsampling", width, height, format.Name)
	}

	frame := &Frame{
		Format: format,
		Width:  width,
		Height: height,
		Planes: make([]Plane, format.NumPlanes),
	}
	for p := 0; p < format.NumPlanes; p++ {
		pw, ph := format.PlaneDimensions(p, width, height)
		stride := alignStride(pw * format.BytesPerSample)
		frame.Planes[p] = Plane{
			Data:   make([]byte, stride*ph),
			Stride: stride,
			Width:  pw,
			Height: ph,
		}
	}
	return frame, nil
}

// NewFrameWith builds a frame with ref's format and geometry. Planes
// selected by share alias ref's plane storage as a shared read-only
// reference; the remaining planes are freshly allocated with ref's strides
// and left zeroed for the caller to fill.
func NewFrameWith(ref *Frame, share PlaneMask) *Frame {
	frame := &Frame{
		Format: ref.Format,
		Width:  ref.Width,
		Height: ref.Height,
		Planes: make([]Plane, len(ref.Planes)),
	}
	for p := range ref.Planes {
		if p < len(share) && share[p] {
			frame.Planes[p] = ref.Planes[p]
			continue
		}
		frame.Planes[p] = Plane{
			Data:   make([]byte, len(ref.Planes[p].Data)),
			Stride: ref.Planes[p].Stride,
			Width:  ref.Planes[p].Width,
			Height: ref.Planes[p].Height,
		}
	}
	return frame
}

// Copy creates a deep copy of the frame.
func (f *Frame) Copy() *Frame {
	frame := &Frame{
		Format: f.Format,
		Width:  f.Width,
		Height: f.Height,
		Planes: make([]Plane, len(f.Planes)),
	}
	for p := range f.Planes {
		frame.Planes[p] = Plane{
			Data:   append([]byte(nil), f.Planes[p].Data...),
			Stride: f.Planes[p].Stride,
			Width:  f.Planes[p].Width,
			Height: f.Planes[p].Height,
		}
	}
	return frame
}

// Fill sets every visible sample of every plane to the per-plane value.
// Planes beyond len(values) reuse the last value given.
func (f *Frame) Fill(values ...uint16) {
	if len(values) == 0 {
		return
	}
	for p := range f.Planes {
		v := values[len(values)-1]
		if p < len(values) {
			v = values[p]
		}
		plane := f.Planes[p]
		for y := 0; y < plane.Height; y++ {
			for x := 0; x < plane.Width; x++ {
				if f.Format.BytesPerSample == 1 {
					plane.SetSample8(x, y, byte(v))
				} else {
					plane.SetSample16(x, y, v)
				}
			}
		}
	}
}

func alignStride(rowBytes int) int {
	return (rowBytes + strideAlign - 1) &^ (strideAlign - 1)
}
