package services

import (
	"context"

	"github.com/lgomes/vocadrill/internal/errors"
	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
)

// StatsService exposes the cached per-user study stats
type StatsService interface {
	UserStats(ctx context.Context, userID string) (*models.UserStats, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewUnauthenticatedError()
	}
	stats, err := s.statsRepo.UserStats(ctx, userID)
	if err != nil {
		log.Error("failed to fetch user stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if stats == nil {
		// Stats lag behind finalization. An empty row reads as zero.
		return &models.UserStats{UserID: userID}, nil
	}
	return stats, nil
}
