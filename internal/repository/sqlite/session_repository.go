package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
	"github.com/mattn/go-sqlite3"
)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, rec models.SessionRecord) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, user_id=%s", rec.ID, rec.UserID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO sessions (id, user_id, mode, card_count, games_played, total_correct, total_answers, finalized_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.UserID, rec.Mode, rec.CardCount, rec.GamesPlayed, rec.TotalCorrect, rec.TotalAnswers, rec.FinalizedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			log.Debug("session already finalized: id=%s", rec.ID)
			return repository.ErrDuplicateSession
		}
		log.Error("failed to insert session: %v", err)
		return err
	}
	return nil
}

func (r *sessionRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting review history: card_id=%s, session_id=%s", h.CardID, h.SessionID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (id, user_id, card_id, session_id, quality, avg_time_ms, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, h.ID, h.UserID, h.CardID, h.SessionID, h.Quality, h.AvgTimeMs, h.ReviewedAt)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}
