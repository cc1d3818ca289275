package jobs

import (
	"github.com/luka/vocabflash/internal/repository"
	"github.com/luka/vocabflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	statsPool    *worker.Pool
	progressRepo repository.ProgressRepository
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(statsPool *worker.Pool, progressRepo repository.ProgressRepository) JobQueue {
	return &WorkerQueue{
		statsPool:    statsPool,
		progressRepo: progressRepo,
	}
}

func (q *WorkerQueue) EnqueueMasteryRecount(language string) error {
	return q.statsPool.Submit(&worker.MasteryRecountJob{
		ProgressRepo: q.progressRepo,
		Language:     language,
	})
}
