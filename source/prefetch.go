package source

import (
	"context"
	"sync"

	"github.com/opd-ai/frameblend/video"
	"github.com/sirupsen/logrus"
)

// PrefetcherConfig tunes the background fetch pool.
type PrefetcherConfig struct {
	// Workers is the number of fetch goroutines. Defaults to 2.
	Workers int
	// Capacity bounds the settled-frame cache. Defaults to 16.
	Capacity int
}

// PrefetchStats reports cache behavior counters.
type PrefetchStats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// promise is a single frame fetch that settles exactly once.
type promise struct {
	done     chan struct{}
	frame    *video.Frame
	err      error
	resolved bool
}

type settledEntry struct {
	n  int
	pr *promise
}

// Prefetcher wraps a clip with a worker pool so RequestFrame hints turn
// into background fetches. GetFrame joins the hinted fetch when one is in
// flight or settled, and falls through to the upstream clip otherwise.
//
// Settled frames are retained in a bounded cache, oldest evicted first.
// The Prefetcher is safe for concurrent use.
type Prefetcher struct {
	upstream Clip
	info     Info
	capacity int

	mu      sync.Mutex
	pending map[int]*promise
	settled []settledEntry
	stats   PrefetchStats
	closed  bool

	jobs   chan int
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPrefetcher starts the fetch pool over upstream.
func NewPrefetcher(upstream Clip, config PrefetcherConfig) *Prefetcher {
	workers := config.Workers
	if workers <= 0 {
		workers = 2
	}
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = 16
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Prefetcher{
		upstream: upstream,
		info:     upstream.Info(),
		capacity: capacity,
		pending:  make(map[int]*promise),
		jobs:     make(chan int, capacity),
		cancel:   cancel,
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewPrefetcher",
		"workers":  workers,
		"capacity": capacity,
		"frames":   p.info.NumFrames,
	}).Info("Starting frame prefetcher")

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(ctx)
	}
	return p
}

// Info returns the upstream clip properties.
func (p *Prefetcher) Info() Info {
	return p.info
}

// RequestFrame schedules a background fetch of frame n. The hint never
// blocks; it is dropped when the queue is full or the frame is already in
// flight.
func (p *Prefetcher) RequestFrame(n int) {
	n = clampIndex(n, p.info.NumFrames)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, ok := p.pending[n]; ok {
		return
	}

	select {
	case p.jobs <- n:
		p.pending[n] = &promise{done: make(chan struct{})}
	default:
		// queue full; GetFrame will fetch directly
	}
}

// GetFrame returns frame n, joining an in-flight background fetch when one
// exists. Direct fetches are cached for later requests.
func (p *Prefetcher) GetFrame(ctx context.Context, n int) (*video.Frame, error) {
	n = clampIndex(n, p.info.NumFrames)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClipClosed
	}
	if pr, ok := p.pending[n]; ok {
		p.stats.Hits++
		p.mu.Unlock()

		logrus.WithFields(logrus.Fields{
			"function": "Prefetcher.GetFrame",
			"frame":    n,
			"hit":      true,
		}).Debug("Joining prefetched frame")

		select {
		case <-pr.done:
			return pr.frame, pr.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	p.stats.Misses++
	p.mu.Unlock()

	frame, err := p.upstream.GetFrame(ctx, n)
	if err != nil {
		return nil, err
	}
	p.cacheDirect(n, frame)
	return frame, nil
}

// Stats returns a snapshot of the cache counters.
func (p *Prefetcher) Stats() PrefetchStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Close stops the workers, fails any unsettled fetch with ErrClipClosed,
// and closes the upstream clip. Close is idempotent.
func (p *Prefetcher) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for _, pr := range p.pending {
		if !pr.resolved {
			pr.err = ErrClipClosed
			pr.resolved = true
			close(pr.done)
		}
	}
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()

	logrus.WithFields(logrus.Fields{
		"function": "Prefetcher.Close",
	}).Info("Frame prefetcher stopped")

	return Close(p.upstream)
}

func (p *Prefetcher) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-p.jobs:
			frame, err := p.upstream.GetFrame(ctx, n)
			p.settle(n, frame, err)
		}
	}
}

// settle records a finished background fetch and wakes its waiters.
func (p *Prefetcher) settle(n int, frame *video.Frame, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pr, ok := p.pending[n]
	if !ok || pr.resolved {
		return
	}
	pr.frame = frame
	pr.err = err
	pr.resolved = true
	close(pr.done)

	p.retain(n, pr)
}

// cacheDirect stores a synchronously fetched frame as a settled promise.
func (p *Prefetcher) cacheDirect(n int, frame *video.Frame) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if _, ok := p.pending[n]; ok {
		return
	}

	pr := &promise{frame: frame, resolved: true, done: make(chan struct{})}
	close(pr.done)
	p.pending[n] = pr
	p.retain(n, pr)
}

// retain appends a settled promise to the eviction queue and trims the
// cache to capacity. Callers hold p.mu.
func (p *Prefetcher) retain(n int, pr *promise) {
	p.settled = append(p.settled, settledEntry{n: n, pr: pr})
	for len(p.settled) > p.capacity {
		oldest := p.settled[0]
		p.settled = p.settled[1:]
		if p.pending[oldest.n] == oldest.pr {
			delete(p.pending, oldest.n)
			p.stats.Evictions++
		}
	}
}
