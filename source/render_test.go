package source

import (
	"context"
	"fmt"
	"testing"

	"github.com/opd-ai/frameblend/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderClip_Validation(t *testing.T) {
	render := func(n int) (*video.Frame, error) {
		return video.NewFrame(video.Gray8, 32, 24)
	}

	tests := []struct {
		name   string
		info   Info
		render RenderFunc
	}{
		{name: "nil callback", info: grayInfo(32, 24, 5), render: nil},
		{name: "no frames", info: grayInfo(32, 24, 0), render: render},
		{name: "invalid format", info: Info{Width: 32, Height: 24, NumFrames: 5}, render: render},
		{name: "zero width", info: grayInfo(0, 24, 5), render: render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip, err := NewRenderClip(tt.info, tt.render)
			assert.Error(t, err)
			assert.Nil(t, clip)
		})
	}
}

func TestRenderClip_ClampsBeforeRendering(t *testing.T) {
	var rendered []int
	clip, err := NewRenderClip(grayInfo(32, 24, 5), func(n int) (*video.Frame, error) {
		rendered = append(rendered, n)
		return video.NewFrame(video.Gray8, 32, 24)
	})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = clip.GetFrame(ctx, -3)
	require.NoError(t, err)
	_, err = clip.GetFrame(ctx, 7)
	require.NoError(t, err)
	_, err = clip.GetFrame(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 4, 2}, rendered)
}

func TestRenderClip_WrapsCallbackErrors(t *testing.T) {
	clip, err := NewRenderClip(grayInfo(32, 24, 5), func(n int) (*video.Frame, error) {
		return nil, fmt.Errorf("decoder exploded")
	})
	require.NoError(t, err)

	frame, err := clip.GetFrame(context.Background(), 2)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Contains(t, err.Error(), "decoder exploded")
	assert.Nil(t, frame)
}

func TestRenderClip_RejectsNilFrame(t *testing.T) {
	clip, err := NewRenderClip(grayInfo(32, 24, 5), func(n int) (*video.Frame, error) {
		return nil, nil
	})
	require.NoError(t, err)

	frame, err := clip.GetFrame(context.Background(), 0)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Nil(t, frame)
}

func TestBlankClip(t *testing.T) {
	info := Info{
		Format:    video.YUV420P8,
		Width:     64,
		Height:    48,
		NumFrames: 10,
		FPSNum:    25,
		FPSDen:    1,
	}
	clip, err := BlankClip(info, 16, 128, 128)
	require.NoError(t, err)
	ctx := context.Background()

	frame, err := clip.GetFrame(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, byte(16), frame.Planes[0].Sample8(10, 10))
	assert.Equal(t, byte(128), frame.Planes[1].Sample8(5, 5))
	assert.Equal(t, byte(128), frame.Planes[2].Sample8(5, 5))

	// the template frame is rendered once and shared
	again, err := clip.GetFrame(ctx, 8)
	require.NoError(t, err)
	assert.Same(t, frame, again)
}

func TestBlankClip_InvalidGeometry(t *testing.T) {
	info := Info{
		Format:    video.YUV420P8,
		Width:     63, // incompatible with 4:2:0
		Height:    48,
		NumFrames: 10,
	}
	clip, err := BlankClip(info, 16)
	assert.Error(t, err)
	assert.Nil(t, clip)
}
