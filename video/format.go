package video

import "fmt"

// Format describes the pixel layout of a frame: sample depth, plane count,
// and chroma decimation. Formats are plain comparable values; two frames
// are layout-compatible exactly when their Format fields are equal.
type Format struct {
	// Name is a short lowercase identifier, e.g. "yuv420p8".
	Name string
	// BitsPerSample is the true sample depth, 8 through 16.
	BitsPerSample int
	// BytesPerSample is the storage width of one sample: 1 for 8-bit
	// content, 2 for 9- through 16-bit content.
	BytesPerSample int
	// SubSamplingW is the log2 horizontal decimation of planes 1 and 2.
	SubSamplingW int
	// SubSamplingH is the log2 vertical decimation of planes 1 and 2.
	SubSamplingH int
	// NumPlanes is 1 for grayscale or 3 for Y'CbCr layouts.
	NumPlanes int
}

// Predefined planar formats. 16-bit samples are stored little-endian.
var (
	Gray8     = Format{Name: "gray8", BitsPerSample: 8, BytesPerSample: 1, NumPlanes: 1}
	Gray16    = Format{Name: "gray16", BitsPerSample: 16, BytesPerSample: 2, NumPlanes: 1}
	YUV420P8  = Format{Name: "yuv420p8", BitsPerSample: 8, BytesPerSample: 1, SubSamplingW: 1, SubSamplingH: 1, NumPlanes: 3}
	YUV422P8  = Format{Name: "yuv422p8", BitsPerSample: 8, BytesPerSample: 1, SubSamplingW: 1, NumPlanes: 3}
	YUV444P8  = Format{Name: "yuv444p8", BitsPerSample: 8, BytesPerSample: 1, NumPlanes: 3}
	YUV420P10 = Format{Name: "yuv420p10", BitsPerSample: 10, BytesPerSample: 2, SubSamplingW: 1, SubSamplingH: 1, NumPlanes: 3}
	YUV420P16 = Format{Name: "yuv420p16", BitsPerSample: 16, BytesPerSample: 2, SubSamplingW: 1, SubSamplingH: 1, NumPlanes: 3}
	YUV444P16 = Format{Name: "yuv444p16", BitsPerSample: 16, BytesPerSample: 2, NumPlanes: 3}
)

// Validate checks that the format describes a layout this package can
// allocate and address.
func (f Format) Validate() error {
	if f.BitsPerSample < 8 || f.BitsPerSample > 16 {
		return fmt.Errorf("bits per sample out of range: %d", f.BitsPerSample)
	}
	if f.BytesPerSample != (f.BitsPerSample+7)/8 {
		return fmt.Errorf("bytes per sample %d does not match %d-bit samples", f.BytesPerSample, f.BitsPerSample)
	}
	if f.NumPlanes != 1 && f.NumPlanes != 3 {
		return fmt.Errorf("unsupported plane count: %d", f.NumPlanes)
	}
	if f.SubSamplingW < 0 || f.SubSamplingW > 2 || f.SubSamplingH < 0 || f.SubSamplingH > 2 {
		return fmt.Errorf("chroma subsampling out of range: %dx%d", f.SubSamplingW, f.SubSamplingH)
	}
	if f.NumPlanes == 1 && (f.SubSamplingW != 0 || f.SubSamplingH != 0) {
		return fmt.Errorf("grayscale format cannot be subsampled")
	}
	return nil
}

// PlaneDimensions returns the sample grid size of one plane. Planes 1 and 2
// are decimated by the format's chroma subsampling.
func (f Format) PlaneDimensions(plane, width, height int) (int, int) {
	if plane == 0 {
		return width, height
	}
	return width >> f.SubSamplingW, height >> f.SubSamplingH
}

// MaxValue returns the largest representable sample value, (1<<bits)-1.
func (f Format) MaxValue() int {
	return (1 << f.BitsPerSample) - 1
}
