package repository

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
)

// ProgressRepository handles per-user card progress access
type ProgressRepository interface {
	// ListTracked returns every progress row for the user joined with its
	// card content, across both content pools.
	ListTracked(ctx context.Context, userID string) ([]models.TrackedCard, error)
	// Get returns the progress row for one card, or nil when the card has
	// never been shown to the user.
	Get(ctx context.Context, userID, cardID string) (*models.CardProgress, error)
	Upsert(ctx context.Context, p models.CardProgress) error
	// TrackedIDs returns the set of card ids the user already has progress
	// rows for, used to exclude them from new-card selection.
	TrackedIDs(ctx context.Context, userID string) (map[string]bool, error)
}
