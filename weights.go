package frameblend

import (
	"fmt"
	"math"
)

// WeightSet is an immutable, normalized blend weight window.
//
// The window length is always odd and the fractional weights sum to 1.
// Position i of the set applies to position i of the source window; the
// middle weight applies to the requested frame itself.
type WeightSet struct {
	percents []float32
}

// NormalizeWeights validates raw blend weights and scales them into
// fractional contributions summing to 1.
//
// The count must be odd and the raw sum finite and nonzero. Accumulation
// runs in float32 to match the blend kernels.
func NormalizeWeights(raw []float64) (WeightSet, error) {
	if len(raw)%2 != 1 {
		return WeightSet{}, fmt.Errorf("%w: weight count must be odd, got %d", ErrInvalidConfiguration, len(raw))
	}

	var total float32
	for _, w := range raw {
		total += float32(w)
	}
	if total == 0 || math.IsNaN(float64(total)) || math.IsInf(float64(total), 0) {
		return WeightSet{}, fmt.Errorf("%w: weights must sum to a nonzero value", ErrInvalidConfiguration)
	}

	percents := make([]float32, len(raw))
	for i, w := range raw {
		percents[i] = float32(w / float64(total))
	}
	return WeightSet{percents: percents}, nil
}

// Len returns the window length.
func (ws WeightSet) Len() int {
	return len(ws.percents)
}

// Center returns the window position aligned with the requested frame,
// len/2 with integer division.
func (ws WeightSet) Center() int {
	return len(ws.percents) / 2
}

// Percents returns a copy of the normalized weights.
func (ws WeightSet) Percents() []float32 {
	return append([]float32(nil), ws.percents...)
}
