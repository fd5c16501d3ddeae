package mocks

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListTracked(ctx context.Context, userID string) ([]models.TrackedCard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TrackedCard), args.Error(1)
}

func (m *MockProgressRepository) Get(ctx context.Context, userID, cardID string) (*models.CardProgress, error) {
	args := m.Called(ctx, userID, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CardProgress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, p models.CardProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgressRepository) TrackedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}
