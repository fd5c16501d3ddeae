package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("fetching user stats: user_id=%s", userID)

	var s models.UserStats
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, total_reviews, total_correct, cards_tracked, cards_learned, updated_at
FROM user_stats
WHERE user_id = ?
`, userID).Scan(&s.UserID, &s.TotalReviews, &s.TotalCorrect, &s.CardsTracked, &s.CardsLearned, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to fetch user stats: %v", err)
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) RefreshUserStats(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("refreshing user stats: user_id=%s", userID)

	// A card counts as learned once it has climbed past the early repetition
	// levels.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_stats (user_id, total_reviews, total_correct, cards_tracked, cards_learned, updated_at)
SELECT ?,
       COALESCE(SUM(times_reviewed), 0),
       COALESCE(SUM(times_correct), 0),
       COUNT(*),
       COALESCE(SUM(CASE WHEN srs_level >= 5 THEN 1 ELSE 0 END), 0),
       CURRENT_TIMESTAMP
FROM card_progress
WHERE user_id = ?
ON CONFLICT (user_id) DO UPDATE SET
    total_reviews = excluded.total_reviews,
    total_correct = excluded.total_correct,
    cards_tracked = excluded.cards_tracked,
    cards_learned = excluded.cards_learned,
    updated_at = excluded.updated_at
`, userID, userID)
	if err != nil {
		log.Error("failed to refresh user stats: %v", err)
	}
	return err
}
