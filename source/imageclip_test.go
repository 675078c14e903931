package source

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/frameblend/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string, width, height int, gray byte) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = gray
	}
	file, err := os.Create(path)
	require.NoError(t, err)
	defer file.Close()
	require.NoError(t, png.Encode(file, img))
}

func TestFindSequence(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "frame_002.png"), 8, 8, 0)
	writeTestPNG(t, filepath.Join(dir, "frame_000.png"), 8, 8, 0)
	writeTestPNG(t, filepath.Join(dir, "frame_001.png"), 8, 8, 0)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	paths, err := FindSequence(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, "frame_000.png", filepath.Base(paths[0]))
	assert.Equal(t, "frame_002.png", filepath.Base(paths[2]))
}

func TestFindSequence_EmptyDirectory(t *testing.T) {
	paths, err := FindSequence(t.TempDir())
	assert.ErrorIs(t, err, ErrNoFrames)
	assert.Nil(t, paths)
}

func TestNewImageClip_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 64, 48, 128)
	paths, err := FindSequence(dir)
	require.NoError(t, err)

	clip, err := NewImageClip(paths, ImageClipConfig{})
	require.NoError(t, err)

	info := clip.Info()
	assert.Equal(t, video.YUV420P8, info.Format)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
	assert.Equal(t, 1, info.NumFrames)
	assert.Equal(t, int64(25), info.FPSNum)
	assert.Equal(t, int64(1), info.FPSDen)
}

func TestNewImageClip_RoundsOddGeometry(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 65, 49, 128)
	paths, err := FindSequence(dir)
	require.NoError(t, err)

	clip, err := NewImageClip(paths, ImageClipConfig{Format: video.YUV420P8})
	require.NoError(t, err)
	assert.Equal(t, 64, clip.Info().Width)
	assert.Equal(t, 48, clip.Info().Height)
}

func TestNewImageClip_Validation(t *testing.T) {
	t.Run("no paths", func(t *testing.T) {
		clip, err := NewImageClip(nil, ImageClipConfig{})
		assert.ErrorIs(t, err, ErrNoFrames)
		assert.Nil(t, clip)
	})

	t.Run("16-bit target format", func(t *testing.T) {
		dir := t.TempDir()
		writeTestPNG(t, filepath.Join(dir, "a.png"), 8, 8, 0)
		clip, err := NewImageClip([]string{filepath.Join(dir, "a.png")}, ImageClipConfig{Format: video.Gray16})
		assert.Error(t, err)
		assert.Nil(t, clip)
	})

	t.Run("missing file", func(t *testing.T) {
		clip, err := NewImageClip([]string{"/nonexistent/a.png"}, ImageClipConfig{})
		assert.Error(t, err)
		assert.Nil(t, clip)
	})
}

func TestImageClip_GetFrame(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 32, 16, 50)
	writeTestPNG(t, filepath.Join(dir, "b.png"), 32, 16, 200)
	paths, err := FindSequence(dir)
	require.NoError(t, err)

	clip, err := NewImageClip(paths, ImageClipConfig{Format: video.Gray8})
	require.NoError(t, err)
	ctx := context.Background()

	frame, err := clip.GetFrame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, video.Gray8, frame.Format)
	assert.Equal(t, byte(200), frame.Planes[0].Sample8(10, 10))

	// out-of-range indices clamp like every other clip
	frame, err = clip.GetFrame(ctx, -4)
	require.NoError(t, err)
	assert.Equal(t, byte(50), frame.Planes[0].Sample8(0, 0))
}

func TestImageClip_ScalesMismatchedFrames(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 64, 48, 100)
	writeTestPNG(t, filepath.Join(dir, "b.png"), 32, 24, 100)
	paths, err := FindSequence(dir)
	require.NoError(t, err)

	clip, err := NewImageClip(paths, ImageClipConfig{Format: video.Gray8})
	require.NoError(t, err)

	frame, err := clip.GetFrame(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 64, frame.Width)
	assert.Equal(t, 48, frame.Height)
	// a uniform image stays uniform through scaling
	assert.Equal(t, byte(100), frame.Planes[0].Sample8(30, 20))
}

func TestImageClip_YCbCrTarget(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for y := 0; y < 24; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 120, G: 60, B: 30, A: 255})
		}
	}
	path := filepath.Join(dir, "a.png")
	file, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(file, img))
	require.NoError(t, file.Close())

	clip, err := NewImageClip([]string{path}, ImageClipConfig{Format: video.YUV420P8})
	require.NoError(t, err)

	frame, err := clip.GetFrame(context.Background(), 0)
	require.NoError(t, err)

	wantY, wantCb, wantCr := color.RGBToYCbCr(120, 60, 30)
	assert.Equal(t, wantY, frame.Planes[0].Sample8(16, 12))
	assert.Equal(t, wantCb, frame.Planes[1].Sample8(8, 6))
	assert.Equal(t, wantCr, frame.Planes[2].Sample8(8, 6))
}
