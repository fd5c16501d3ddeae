package jobs

import (
	"github.com/lgomes/vocadrill/internal/repository"
	"github.com/lgomes/vocadrill/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	statsPool *worker.Pool
	statsRepo repository.StatsRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(statsPool *worker.Pool, statsRepo repository.StatsRepository) JobQueue {
	return &WorkerQueue{
		statsPool: statsPool,
		statsRepo: statsRepo,
	}
}

func (q *WorkerQueue) EnqueueStatsRefresh(userID string) error {
	return q.statsPool.Submit(&worker.StatsRefreshJob{
		StatsRepo: q.statsRepo,
		UserID:    userID,
	})
}
