package srs

import "math"

// Allocation splits a mixed session's slot budget between review and new
// material. Review and New always sum to 1.
type Allocation struct {
	Review float64
	New    float64
}

// Allocate decides the review/new split from backlog pressure across the
// user's full review pool. The bands are coarse on purpose: review pressure
// wins slots whenever the backlog is at risk.
func Allocate(criticalCount, dueCount int) Allocation {
	switch {
	case criticalCount >= 5:
		return Allocation{Review: 0.6, New: 0.4}
	case dueCount >= 10:
		return Allocation{Review: 0.5, New: 0.5}
	case dueCount < 3:
		return Allocation{Review: 0.2, New: 0.8}
	default:
		return Allocation{Review: 0.3, New: 0.7}
	}
}

// ReviewSlots converts the review fraction into a slot count, rounding up
// so review material wins the odd slot.
func (a Allocation) ReviewSlots(totalSlots int) int {
	return int(math.Ceil(float64(totalSlots) * a.Review))
}
