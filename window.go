package frameblend

import "math"

// MaxFrameIndex is the largest source index a window may address: a
// sentinel one below the top of the 32-bit index range. Near the end of an
// effectively unbounded stream the window repeats this index instead of
// overflowing. Keeping the ceiling at 32 bits makes the sentinel
// arithmetic identical on every platform.
const MaxFrameIndex = math.MaxInt32 - 1

// Window returns the source indices blended to produce output index n,
// one per weight, in weight order.
//
// The window starts at n-count/2 and advances by one per position.
// Indices below zero clamp to zero and the advance freezes at
// MaxFrameIndex, so the result always has length count and stays inside
// [0, MaxFrameIndex]. Clamped positions repeat their boundary index.
func Window(n, count int) []int {
	center := count / 2
	window := make([]int, count)

	idx := n - center
	for i := range window {
		fn := idx
		if fn < 0 {
			fn = 0
		} else if fn > MaxFrameIndex {
			fn = MaxFrameIndex
		}
		window[i] = fn
		if idx < MaxFrameIndex {
			idx++
		}
	}
	return window
}
