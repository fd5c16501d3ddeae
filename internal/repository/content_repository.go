package repository

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
)

// ContentRepository handles the two disjoint card pools: curated system
// content and user-authored content.
type ContentRepository interface {
	// NewSystemCards returns up to limit system cards whose ids are not in
	// excludeIDs, in stable creation order.
	NewSystemCards(ctx context.Context, excludeIDs []string, limit int) ([]models.CardContent, error)
	// NewUserCards is the user-pool counterpart of NewSystemCards.
	NewUserCards(ctx context.Context, userID string, excludeIDs []string, limit int) ([]models.CardContent, error)
	InsertSystemCard(ctx context.Context, card models.CardContent) error
	InsertUserCard(ctx context.Context, userID string, card models.CardContent) error
	ListUserCards(ctx context.Context, userID string) ([]models.CardContent, error)
}
