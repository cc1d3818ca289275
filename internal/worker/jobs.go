package worker

import (
	"context"

	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/repository"
)

// MasteryRecountJob recomputes the derived mastery level for every word
// of one language. Mastery is a pure function of the correct/incorrect
// counters, so the recount can run whenever a session lands without
// holding the request open.
type MasteryRecountJob struct {
	ProgressRepo repository.ProgressRepository
	Language     string
}

func (j *MasteryRecountJob) Name() string { return "mastery_recount" }

func (j *MasteryRecountJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("language", j.Language)
	log.Debug("recounting mastery levels")
	return j.ProgressRepo.RecountMastery(ctx, j.Language)
}
