package source

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/opd-ai/frameblend/video"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingClip parks every GetFrame until release is closed.
type blockingClip struct {
	info    Info
	release chan struct{}
}

func newBlockingClip(info Info) *blockingClip {
	return &blockingClip{info: info, release: make(chan struct{})}
}

func (c *blockingClip) Info() Info         { return c.info }
func (c *blockingClip) RequestFrame(n int) {}

func (c *blockingClip) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	select {
	case <-c.release:
		return video.NewFrame(c.info.Format, c.info.Width, c.info.Height)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestPrefetcher_RequestThenGet(t *testing.T) {
	pf := NewPrefetcher(createMemoryClip(t, 10, 20, 30), PrefetcherConfig{Workers: 2})
	defer pf.Close()
	ctx := context.Background()

	pf.RequestFrame(1)
	frame, err := pf.GetFrame(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, byte(20), frame.Planes[0].Sample8(0, 0))

	stats := pf.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
}

func TestPrefetcher_GetWithoutRequest(t *testing.T) {
	pf := NewPrefetcher(createMemoryClip(t, 10, 20, 30), PrefetcherConfig{})
	defer pf.Close()
	ctx := context.Background()

	frame, err := pf.GetFrame(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, byte(30), frame.Planes[0].Sample8(0, 0))
	assert.Equal(t, uint64(1), pf.Stats().Misses)

	// the direct fetch is cached, so the second get joins it
	_, err = pf.GetFrame(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), pf.Stats().Hits)
}

func TestPrefetcher_ClampsLikeUpstream(t *testing.T) {
	pf := NewPrefetcher(createMemoryClip(t, 10, 20, 30), PrefetcherConfig{})
	defer pf.Close()

	frame, err := pf.GetFrame(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, byte(30), frame.Planes[0].Sample8(0, 0))
}

func TestPrefetcher_EvictsOldestSettled(t *testing.T) {
	values := make([]uint16, 8)
	for i := range values {
		values[i] = uint16(i)
	}
	pf := NewPrefetcher(createMemoryClip(t, values...), PrefetcherConfig{Capacity: 2})
	defer pf.Close()
	ctx := context.Background()

	for n := 0; n < 4; n++ {
		_, err := pf.GetFrame(ctx, n)
		require.NoError(t, err)
	}

	stats := pf.Stats()
	assert.Equal(t, uint64(4), stats.Misses)
	assert.Equal(t, uint64(2), stats.Evictions)
}

func TestPrefetcher_ContextCancellation(t *testing.T) {
	upstream := newBlockingClip(grayInfo(32, 24, 5))
	pf := NewPrefetcher(upstream, PrefetcherConfig{Workers: 1})

	pf.RequestFrame(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pf.GetFrame(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, pf.Close())
}

func TestPrefetcher_Close(t *testing.T) {
	pf := NewPrefetcher(createMemoryClip(t, 10), PrefetcherConfig{})

	require.NoError(t, pf.Close())
	require.NoError(t, pf.Close(), "close must be idempotent")

	_, err := pf.GetFrame(context.Background(), 0)
	assert.ErrorIs(t, err, ErrClipClosed)
}

func TestPrefetcher_CloseFailsUnsettledFetches(t *testing.T) {
	upstream := newBlockingClip(grayInfo(32, 24, 5))
	pf := NewPrefetcher(upstream, PrefetcherConfig{Workers: 1})

	pf.RequestFrame(0)
	pf.RequestFrame(1)

	done := make(chan error, 1)
	go func() {
		_, err := pf.GetFrame(context.Background(), 1)
		done <- err
	}()

	// give the waiter time to join the promise
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, pf.Close())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClipClosed)
	case <-time.After(time.Second):
		t.Fatal("waiter was not released by Close")
	}
}

func TestPrefetcher_ConcurrentGets(t *testing.T) {
	values := make([]uint16, 16)
	for i := range values {
		values[i] = uint16(i * 3)
	}
	pf := NewPrefetcher(createMemoryClip(t, values...), PrefetcherConfig{Workers: 4, Capacity: 32})
	defer pf.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			pf.RequestFrame(n)
			frame, err := pf.GetFrame(ctx, n)
			if assert.NoError(t, err) {
				assert.Equal(t, byte(n*3), frame.Planes[0].Sample8(0, 0))
			}
		}(n)
	}
	wg.Wait()
}
