package frameblend

import (
	"fmt"

	"github.com/opd-ai/frameblend/video"
)

// ParsePlanes converts a plane index list into a processing mask.
//
// An empty list selects every plane. Each index must be in [0, 3) and may
// appear at most once. Planes outside the mask pass through from the
// center source frame unblended.
func ParsePlanes(indices []int) (video.PlaneMask, error) {
	if len(indices) == 0 {
		return video.AllPlanes(), nil
	}

	var mask video.PlaneMask
	for _, idx := range indices {
		if idx < 0 || idx >= len(mask) {
			return video.PlaneMask{}, fmt.Errorf("%w: plane index out of range: %d", ErrInvalidConfiguration, idx)
		}
		if mask[idx] {
			return video.PlaneMask{}, fmt.Errorf("%w: plane specified twice: %d", ErrInvalidConfiguration, idx)
		}
		mask[idx] = true
	}
	return mask, nil
}
