package srs

import (
	"time"

	"github.com/lgomes/vocadrill/internal/models"
)

// Tier bands. Score ranges are disjoint by construction: critical starts at
// 100 and grows with staleness, due tops out at 65 (3 days overdue), weak
// tops out at 30.
const (
	criticalAfterDays = 3
	weakLevelCeiling  = 2
	weakAccuracyFloor = 0.6
)

// Classify buckets a tracked card for review and assigns its rank score
// within the tier. The boolean is false when the card is neither due nor
// weak and should be skipped this session. Cards without a progress row are
// never classified here; they enter sessions through the new-card pools.
func Classify(p models.CardProgress, now time.Time) (models.Tier, float64, int, bool) {
	overdue := DaysOverdue(p, now)
	switch {
	case overdue > criticalAfterDays:
		return models.TierCritical, 100 + float64(overdue)*10, overdue, true
	case overdue >= 0:
		return models.TierDue, 50 + float64(overdue)*5, overdue, true
	case p.SRSLevel <= weakLevelCeiling || p.Accuracy() < weakAccuracyFloor:
		return models.TierWeak, 30 - float64(p.SRSLevel)*5, overdue, true
	default:
		return "", 0, overdue, false
	}
}

// DaysOverdue is the whole number of days the card's next review date lies
// in the past. Negative means not yet due. A zero date counts as due now.
func DaysOverdue(p models.CardProgress, now time.Time) int {
	if p.NextReviewDate.IsZero() {
		return 0
	}
	return int(now.Sub(p.NextReviewDate).Hours() / 24)
}
