package models

import "time"

// UserStats is the denormalized per-user aggregate refreshed by the
// background stats job after each finalized session.
type UserStats struct {
	UserID       string    `json:"user_id"`
	TotalReviews int       `json:"total_reviews"`
	TotalCorrect int       `json:"total_correct"`
	CardsTracked int       `json:"cards_tracked"`
	CardsLearned int       `json:"cards_learned"`
	UpdatedAt    time.Time `json:"updated_at"`
}
