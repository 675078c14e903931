package source

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	// still-image decoders for GetFrame
	_ "image/jpeg"
	_ "image/png"

	"github.com/opd-ai/frameblend/video"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
)

// ImageClipConfig tunes how a still-image sequence becomes a clip.
type ImageClipConfig struct {
	// Format is the target pixel layout. The zero value selects YUV420P8.
	Format video.Format
	// FPSNum/FPSDen set the nominal frame rate. Defaults to 25/1.
	FPSNum int64
	FPSDen int64
	// Scaler normalizes images to the clip geometry. Defaults to
	// draw.CatmullRom.
	Scaler draw.Scaler
}

// ImageClip reads a numbered still-image sequence from disk as a clip.
//
// The first image fixes the clip geometry (rounded down to the target
// format's subsampling grid); later images of a different size are scaled
// to match. Decoding happens synchronously in GetFrame; wrap the clip in a
// Prefetcher for background decoding.
type ImageClip struct {
	info   Info
	paths  []string
	scaler draw.Scaler
}

// NewImageClip builds a clip over the image files in paths, in order.
func NewImageClip(paths []string, config ImageClipConfig) (*ImageClip, error) {
	if len(paths) == 0 {
		return nil, ErrNoFrames
	}

	format := config.Format
	if format == (video.Format{}) {
		format = video.YUV420P8
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if format.BytesPerSample != 1 {
		return nil, fmt.Errorf("cannot import images into %s frames", format.Name)
	}

	fpsNum, fpsDen := config.FPSNum, config.FPSDen
	if fpsNum <= 0 || fpsDen <= 0 {
		fpsNum, fpsDen = 25, 1
	}
	scaler := config.Scaler
	if scaler == nil {
		scaler = draw.CatmullRom
	}

	width, height, err := probeGeometry(paths[0], format)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewImageClip",
		"frames":   len(paths),
		"width":    width,
		"height":   height,
		"format":   format.Name,
	}).Info("Opened image sequence")

	return &ImageClip{
		info: Info{
			Format:    format,
			Width:     width,
			Height:    height,
			NumFrames: len(paths),
			FPSNum:    fpsNum,
			FPSDen:    fpsDen,
		},
		paths:  paths,
		scaler: scaler,
	}, nil
}

// Info returns the clip properties.
func (c *ImageClip) Info() Info {
	return c.info
}

// RequestFrame is a no-op; decoding happens synchronously in GetFrame.
func (c *ImageClip) RequestFrame(n int) {}

// GetFrame decodes the image at the clamped index into a planar frame,
// scaling to the clip geometry when the file dimensions differ.
func (c *ImageClip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	n = clampIndex(n, c.info.NumFrames)
	path := c.paths[n]

	logrus.WithFields(logrus.Fields{
		"function": "ImageClip.GetFrame",
		"frame":    n,
		"path":     path,
	}).Debug("Decoding image frame")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %q: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != c.info.Width || bounds.Dy() != c.info.Height {
		scaled := image.NewRGBA(image.Rect(0, 0, c.info.Width, c.info.Height))
		c.scaler.Scale(scaled, scaled.Bounds(), img, bounds, draw.Src, nil)
		img = scaled
	}

	return video.FrameFromImage(img, c.info.Format)
}

// FindSequence lists the still images in dir in name order.
func FindSequence(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sequence directory %q: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no images in %q", ErrNoFrames, dir)
	}
	return paths, nil
}

// probeGeometry reads one image header and rounds the dimensions down to
// the format's subsampling grid.
func probeGeometry(path string, format video.Format) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image %q: %w", path, err)
	}
	defer file.Close()

	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("probe image %q: %w", path, err)
	}

	width := config.Width &^ ((1 << format.SubSamplingW) - 1)
	height := config.Height &^ ((1 << format.SubSamplingH) - 1)
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("image %q too small for %s: %dx%d", path, format.Name, config.Width, config.Height)
	}
	return width, height, nil
}
