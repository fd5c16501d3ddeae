package mocks

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

func (m *MockStatsRepository) RefreshUserStats(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
