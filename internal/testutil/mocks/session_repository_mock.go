package mocks

import (
	"context"

	"github.com/lgomes/vocadrill/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Insert(ctx context.Context, rec models.SessionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockSessionRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}
