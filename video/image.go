package video

import (
	"fmt"
	"image"
	"image/color"
)

// subsampleRatio maps a 3-plane format's chroma decimation onto the
// standard library's Y'CbCr layouts.
func subsampleRatio(f Format) (image.YCbCrSubsampleRatio, bool) {
	switch {
	case f.SubSamplingW == 1 && f.SubSamplingH == 1:
		return image.YCbCrSubsampleRatio420, true
	case f.SubSamplingW == 1 && f.SubSamplingH == 0:
		return image.YCbCrSubsampleRatio422, true
	case f.SubSamplingW == 0 && f.SubSamplingH == 0:
		return image.YCbCrSubsampleRatio444, true
	}
	return 0, false
}

// ToImage converts a frame to a standard library image for export.
//
// Supported layouts: Gray8, Gray16, and the 8-bit Y'CbCr formats with
// 4:2:0, 4:2:2, or 4:4:4 subsampling. Other depths need a depth conversion
// stage before export.
func ToImage(f *Frame) (image.Image, error) {
	rect := image.Rect(0, 0, f.Width, f.Height)

	switch {
	case f.Format.NumPlanes == 1 && f.Format.BytesPerSample == 1:
		img := image.NewGray(rect)
		plane := f.Planes[0]
		for y := 0; y < f.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+f.Width], plane.Data[y*plane.Stride:])
		}
		return img, nil

	case f.Format.NumPlanes == 1 && f.Format.BitsPerSample == 16:
		img := image.NewGray16(rect)
		plane := f.Planes[0]
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				// Gray16 pixels are big-endian
				v := plane.Sample16(x, y)
				img.Pix[y*img.Stride+2*x] = byte(v >> 8)
				img.Pix[y*img.Stride+2*x+1] = byte(v)
			}
		}
		return img, nil

	case f.Format.NumPlanes == 3 && f.Format.BytesPerSample == 1:
		ratio, ok := subsampleRatio(f.Format)
		if !ok {
			return nil, fmt.Errorf("no image layout for %s subsampling", f.Format.Name)
		}
		img := image.NewYCbCr(rect, ratio)
		for y := 0; y < f.Planes[0].Height; y++ {
			copy(img.Y[y*img.YStride:y*img.YStride+f.Planes[0].Width], f.Planes[0].Data[y*f.Planes[0].Stride:])
		}
		for y := 0; y < f.Planes[1].Height; y++ {
			copy(img.Cb[y*img.CStride:y*img.CStride+f.Planes[1].Width], f.Planes[1].Data[y*f.Planes[1].Stride:])
			copy(img.Cr[y*img.CStride:y*img.CStride+f.Planes[2].Width], f.Planes[2].Data[y*f.Planes[2].Stride:])
		}
		return img, nil
	}

	return nil, fmt.Errorf("cannot export %s frames as an image", f.Format.Name)
}

// FrameFromImage converts a decoded image into a planar frame.
//
// The target format must be 8-bit. Grayscale targets take the luma of each
// pixel; Y'CbCr targets convert through the standard library coefficients
// and box-average chroma down to the format's subsampling. The image
// dimensions must be compatible with the target subsampling.
func FrameFromImage(img image.Image, format Format) (*Frame, error) {
	if format.BytesPerSample != 1 {
		return nil, fmt.Errorf("cannot import images into %s frames", format.Name)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	frame, err := NewFrame(format, width, height)
	if err != nil {
		return nil, err
	}

	if format.NumPlanes == 1 {
		importGray(frame, img)
		return frame, nil
	}
	importYCbCr(frame, img)
	return frame, nil
}

func importGray(frame *Frame, img image.Image) {
	bounds := img.Bounds()
	plane := frame.Planes[0]

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < frame.Height; y++ {
			row := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(plane.Data[y*plane.Stride:y*plane.Stride+frame.Width], src.Pix[row:])
		}
		return
	}

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			plane.SetSample8(x, y, g.Y)
		}
	}
}

func importYCbCr(frame *Frame, img image.Image) {
	bounds := img.Bounds()

	if src, ok := img.(*image.YCbCr); ok {
		ratio, match := subsampleRatio(frame.Format)
		if match && src.SubsampleRatio == ratio {
			copyYCbCrPlanes(frame, src)
			return
		}
	}

	// Full-resolution conversion, then chroma decimation
	width, height := frame.Width, frame.Height
	ybuf := make([]byte, width*height)
	ubuf := make([]byte, width*height)
	vbuf := make([]byte, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			cy, cb, cr := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			ybuf[y*width+x] = cy
			ubuf[y*width+x] = cb
			vbuf[y*width+x] = cr
		}
	}

	luma := frame.Planes[0]
	for y := 0; y < height; y++ {
		copy(luma.Data[y*luma.Stride:y*luma.Stride+width], ybuf[y*width:])
	}
	decimatePlane(frame.Planes[1], ubuf, width, frame.Format)
	decimatePlane(frame.Planes[2], vbuf, width, frame.Format)
}

func copyYCbCrPlanes(frame *Frame, src *image.YCbCr) {
	bounds := src.Bounds()
	luma := frame.Planes[0]
	for y := 0; y < luma.Height; y++ {
		row := src.YOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(luma.Data[y*luma.Stride:y*luma.Stride+luma.Width], src.Y[row:])
	}
	for y := 0; y < frame.Planes[1].Height; y++ {
		row := src.COffset(bounds.Min.X, bounds.Min.Y+(y<<frame.Format.SubSamplingH))
		copy(frame.Planes[1].Data[y*frame.Planes[1].Stride:y*frame.Planes[1].Stride+frame.Planes[1].Width], src.Cb[row:])
		copy(frame.Planes[2].Data[y*frame.Planes[2].Stride:y*frame.Planes[2].Stride+frame.Planes[2].Width], src.Cr[row:])
	}
}

// decimatePlane box-averages a full-resolution chroma buffer down to the
// plane's subsampled grid.
func decimatePlane(dst Plane, full []byte, fullWidth int, format Format) {
	bw := 1 << format.SubSamplingW
	bh := 1 << format.SubSamplingH
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			sum := 0
			for dy := 0; dy < bh; dy++ {
				for dx := 0; dx < bw; dx++ {
					sum += int(full[(y*bh+dy)*fullWidth+x*bw+dx])
				}
			}
			dst.SetSample8(x, y, byte(sum/(bw*bh)))
		}
	}
}
