package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListTracked(ctx context.Context, userID string) ([]models.TrackedCard, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing tracked cards: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT c.id, c.prompt, c.answer, c.part_of_speech, c.source, c.created_at,
       p.user_id, p.card_id, p.source, p.easiness_factor, p.interval_days,
       p.srs_level, p.srs_score, p.times_reviewed, p.times_correct,
       p.next_review_date, p.created_at, p.updated_at
FROM card_progress p
JOIN (
    SELECT id, prompt, answer, part_of_speech, 'system' AS source, created_at FROM system_cards
    UNION ALL
    SELECT id, prompt, answer, part_of_speech, 'user' AS source, created_at FROM user_cards WHERE user_id = ?
) c ON c.id = p.card_id
WHERE p.user_id = ?
`, userID, userID)
	if err != nil {
		log.Error("failed to query tracked cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var tracked []models.TrackedCard
	for rows.Next() {
		var t models.TrackedCard
		var next sql.NullTime
		if err := rows.Scan(
			&t.Card.ID, &t.Card.Prompt, &t.Card.Answer, &t.Card.PartOfSpeech, &t.Card.Source, &t.Card.CreatedAt,
			&t.Progress.UserID, &t.Progress.CardID, &t.Progress.Source, &t.Progress.EasinessFactor, &t.Progress.IntervalDays,
			&t.Progress.SRSLevel, &t.Progress.SRSScore, &t.Progress.TimesReviewed, &t.Progress.TimesCorrect,
			&next, &t.Progress.CreatedAt, &t.Progress.UpdatedAt,
		); err != nil {
			log.Error("failed to scan tracked card row: %v", err)
			return nil, err
		}
		if next.Valid {
			t.Progress.NextReviewDate = next.Time
		}
		tracked = append(tracked, t)
	}
	log.Debug("found %d tracked cards", len(tracked))
	return tracked, rows.Err()
}

func (r *progressRepository) Get(ctx context.Context, userID, cardID string) (*models.CardProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching progress: user_id=%s, card_id=%s", userID, cardID)

	var p models.CardProgress
	var next sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT user_id, card_id, source, easiness_factor, interval_days, srs_level, srs_score,
       times_reviewed, times_correct, next_review_date, created_at, updated_at
FROM card_progress
WHERE user_id = ? AND card_id = ?
`, userID, cardID).Scan(
		&p.UserID, &p.CardID, &p.Source, &p.EasinessFactor, &p.IntervalDays, &p.SRSLevel, &p.SRSScore,
		&p.TimesReviewed, &p.TimesCorrect, &next, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to fetch progress: %v", err)
		return nil, err
	}
	if next.Valid {
		p.NextReviewDate = next.Time
	}
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.CardProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: user_id=%s, card_id=%s, level=%d", p.UserID, p.CardID, p.SRSLevel)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO card_progress (user_id, card_id, source, easiness_factor, interval_days, srs_level,
                           srs_score, times_reviewed, times_correct, next_review_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, card_id) DO UPDATE SET
    easiness_factor = excluded.easiness_factor,
    interval_days = excluded.interval_days,
    srs_level = excluded.srs_level,
    srs_score = excluded.srs_score,
    times_reviewed = excluded.times_reviewed,
    times_correct = excluded.times_correct,
    next_review_date = excluded.next_review_date,
    updated_at = excluded.updated_at
`, p.UserID, p.CardID, p.Source, p.EasinessFactor, p.IntervalDays, p.SRSLevel,
		p.SRSScore, p.TimesReviewed, p.TimesCorrect, nullableTime(p.NextReviewDate), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) TrackedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT card_id FROM card_progress WHERE user_id = ?
`, userID)
	if err != nil {
		log.Error("failed to query tracked ids: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan card id: %v", err)
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
