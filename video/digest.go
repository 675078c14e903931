package video

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// FrameDigest returns a hex BLAKE2b-256 digest of a frame's visible
// content. Row padding bytes are excluded, so frames with different strides
// but identical samples share a digest.
func FrameDigest(f *Frame) string {
	h, _ := blake2b.New256(nil)

	var header [12]byte
	binary.LittleEndian.PutUint32(header[0:], uint32(f.Width))
	binary.LittleEndian.PutUint32(header[4:], uint32(f.Height))
	binary.LittleEndian.PutUint32(header[8:], uint32(f.Format.BitsPerSample))
	h.Write(header[:])

	for p := range f.Planes {
		hashPlane(h, f.Planes[p], f.Format.BytesPerSample)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PlaneDigest returns a hex BLAKE2b-256 digest of one plane's visible
// samples, excluding stride padding.
func PlaneDigest(p Plane, bytesPerSample int) string {
	h, _ := blake2b.New256(nil)
	hashPlane(h, p, bytesPerSample)
	return hex.EncodeToString(h.Sum(nil))
}

func hashPlane(h hash.Hash, p Plane, bytesPerSample int) {
	rowBytes := p.Width * bytesPerSample
	for y := 0; y < p.Height; y++ {
		row := y * p.Stride
		h.Write(p.Data[row : row+rowBytes])
	}
}
