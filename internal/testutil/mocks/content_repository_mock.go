package mocks

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockContentRepository is a mock implementation of repository.ContentRepository
type MockContentRepository struct {
	mock.Mock
}

func (m *MockContentRepository) NewSystemCards(ctx context.Context, excludeIDs []string, limit int) ([]models.CardContent, error) {
	args := m.Called(ctx, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardContent), args.Error(1)
}

func (m *MockContentRepository) NewUserCards(ctx context.Context, userID string, excludeIDs []string, limit int) ([]models.CardContent, error) {
	args := m.Called(ctx, userID, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardContent), args.Error(1)
}

func (m *MockContentRepository) InsertSystemCard(ctx context.Context, card models.CardContent) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockContentRepository) InsertUserCard(ctx context.Context, userID string, card models.CardContent) error {
	args := m.Called(ctx, userID, card)
	return args.Error(0)
}

func (m *MockContentRepository) ListUserCards(ctx context.Context, userID string) ([]models.CardContent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CardContent), args.Error(1)
}
