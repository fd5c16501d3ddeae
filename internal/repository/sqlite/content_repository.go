package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository creates a new ContentRepository implementation
func NewContentRepository(db *sql.DB) repository.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) NewSystemCards(ctx context.Context, excludeIDs []string, limit int) ([]models.CardContent, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("fetching new system cards: exclude=%d, limit=%d", len(excludeIDs), limit)

	query := sqlBuilder.
		Select("id", "prompt", "answer", "part_of_speech", "created_at").
		From("system_cards").
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit))
	if len(excludeIDs) > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeIDs})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build system cards query: %v", err)
		return nil, err
	}
	return r.queryCards(ctx, sqlStr, args, models.SourceSystem)
}

func (r *contentRepository) NewUserCards(ctx context.Context, userID string, excludeIDs []string, limit int) ([]models.CardContent, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("fetching new user cards: user_id=%s, exclude=%d, limit=%d", userID, len(excludeIDs), limit)

	query := sqlBuilder.
		Select("id", "prompt", "answer", "part_of_speech", "created_at").
		From("user_cards").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit))
	if len(excludeIDs) > 0 {
		query = query.Where(squirrel.NotEq{"id": excludeIDs})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build user cards query: %v", err)
		return nil, err
	}
	return r.queryCards(ctx, sqlStr, args, models.SourceUser)
}

func (r *contentRepository) queryCards(ctx context.Context, sqlStr string, args []any, source models.CardSource) ([]models.CardContent, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.CardContent
	for rows.Next() {
		var c models.CardContent
		if err := rows.Scan(&c.ID, &c.Prompt, &c.Answer, &c.PartOfSpeech, &c.CreatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		c.Source = source
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (r *contentRepository) InsertSystemCard(ctx context.Context, card models.CardContent) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("inserting system card: id=%s", card.ID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO system_cards (id, prompt, answer, part_of_speech, created_at)
VALUES (?, ?, ?, ?, ?)
`, card.ID, card.Prompt, card.Answer, card.PartOfSpeech, card.CreatedAt)
	if err != nil {
		log.Error("failed to insert system card: %v", err)
	}
	return err
}

func (r *contentRepository) InsertUserCard(ctx context.Context, userID string, card models.CardContent) error {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("inserting user card: id=%s, user_id=%s", card.ID, userID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO user_cards (id, user_id, prompt, answer, part_of_speech, created_at)
VALUES (?, ?, ?, ?, ?, ?)
`, card.ID, userID, card.Prompt, card.Answer, card.PartOfSpeech, card.CreatedAt)
	if err != nil {
		log.Error("failed to insert user card: %v", err)
	}
	return err
}

func (r *contentRepository) ListUserCards(ctx context.Context, userID string) ([]models.CardContent, error) {
	log := logger.FromContext(ctx).WithPrefix("content_repo")
	log.Debug("listing user cards: user_id=%s", userID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, prompt, answer, part_of_speech, created_at
FROM user_cards
WHERE user_id = ?
ORDER BY created_at ASC, id ASC
`, userID)
	if err != nil {
		log.Error("failed to query user cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.CardContent
	for rows.Next() {
		var c models.CardContent
		if err := rows.Scan(&c.ID, &c.Prompt, &c.Answer, &c.PartOfSpeech, &c.CreatedAt); err != nil {
			log.Error("failed to scan user card row: %v", err)
			return nil, err
		}
		c.Source = models.SourceUser
		cards = append(cards, c)
	}
	return cards, rows.Err()
}
