package models

import "time"

// CardProgress is the long-term memory state for one (user, card) pair.
// A row exists only once the card has been shown at least once; cards with
// no row are implicitly new. Rows are mutated only by session finalization
// and never deleted.
type CardProgress struct {
	UserID         string     `json:"user_id"`
	CardID         string     `json:"card_id"`
	Source         CardSource `json:"source"`
	EasinessFactor float64    `json:"easiness_factor"`
	IntervalDays   int        `json:"interval_days"`
	SRSLevel       int        `json:"srs_level"`
	SRSScore       int        `json:"srs_score"`
	TimesReviewed  int        `json:"times_reviewed"`
	TimesCorrect   int        `json:"times_correct"`
	NextReviewDate time.Time  `json:"next_review_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Accuracy returns the lifetime share of correct reviews, 0 when the card
// has never been reviewed.
func (p CardProgress) Accuracy() float64 {
	if p.TimesReviewed == 0 {
		return 0
	}
	return float64(p.TimesCorrect) / float64(p.TimesReviewed)
}

// TrackedCard joins a progress row with its card content.
type TrackedCard struct {
	Card     CardContent
	Progress CardProgress
}
