package repository

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
)

// StatsRepository handles the denormalized per-user stats cache.
type StatsRepository interface {
	// UserStats returns the cached row, or nil when no stats exist yet.
	UserStats(ctx context.Context, userID string) (*models.UserStats, error)
	// RefreshUserStats recomputes the row from card progress.
	RefreshUserStats(ctx context.Context, userID string) error
}
