package frameblend

import (
	"encoding/binary"

	"github.com/opd-ai/frameblend/video"
)

// blendPlane8 blends 8-bit samples across the source window into dst.
//
// Accumulation runs in float32; the result truncates toward zero and
// clamps to [0, 255]. Every plane must share dst's stride.
func blendPlane8(dst video.Plane, srcs []video.Plane, weights []float32) {
	for y := 0; y < dst.Height; y++ {
		row := y * dst.Stride
		for x := 0; x < dst.Width; x++ {
			var acc float32
			for i := range srcs {
				acc += float32(srcs[i].Data[row+x]) * weights[i]
			}

			v := int(acc)
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			dst.Data[row+x] = byte(v)
		}
	}
}

// blendPlane16 blends 16-bit little-endian samples across the source
// window into dst. maxVal is (1<<bits)-1 for the format's true bit depth,
// so 10-bit content stored in 2-byte samples clamps at 1023.
func blendPlane16(dst video.Plane, srcs []video.Plane, weights []float32, maxVal int) {
	for y := 0; y < dst.Height; y++ {
		row := y * dst.Stride
		for x := 0; x < dst.Width; x++ {
			off := row + 2*x
			var acc float32
			for i := range srcs {
				acc += float32(binary.LittleEndian.Uint16(srcs[i].Data[off:])) * weights[i]
			}

			v := int(acc)
			if v < 0 {
				v = 0
			} else if v > maxVal {
				v = maxVal
			}
			binary.LittleEndian.PutUint16(dst.Data[off:], uint16(v))
		}
	}
}
