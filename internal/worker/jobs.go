package worker

import (
	"context"
	"fmt"

	"github.com/lgomes/vocadrill/internal/repository"
)

// StatsRefreshJob recomputes the cached stats row for one user.
type StatsRefreshJob struct {
	StatsRepo repository.StatsRepository
	UserID    string
}

func (j *StatsRefreshJob) Name() string {
	return fmt.Sprintf("stats-refresh:%s", j.UserID)
}

func (j *StatsRefreshJob) Run(ctx context.Context) error {
	return j.StatsRepo.RefreshUserStats(ctx, j.UserID)
}
