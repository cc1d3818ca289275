package scheduler

import (
	"time"

	"github.com/luka/vocabflash/internal/models"
)

// ModifiedSM2 is the default algorithm. It differs from classic SM-2 in
// two ways: the easiness factor only changes when a full mode cycle
// closes, and a wrong answer halves the interval instead of resetting it
// to one day, so a long-scheduled word is not thrown all the way back.
type ModifiedSM2 struct {
	cfg Config
}

// NewModifiedSM2 creates the modified SM-2 algorithm.
func NewModifiedSM2(cfg Config) *ModifiedSM2 {
	return &ModifiedSM2{cfg: cfg}
}

func (a *ModifiedSM2) Name() models.AlgorithmName {
	return models.AlgorithmModifiedSM2
}

func (a *ModifiedSM2) Advance(p models.WordProgress, outcome Outcome, now time.Time) (models.WordProgress, error) {
	if err := validateOutcome(p, outcome); err != nil {
		return p, err
	}
	maxBoxes := a.cfg.maxBoxes()
	clampProgress(&p, maxBoxes)

	p.TotalReviews++
	p.LastPracticed = now

	if outcome.Correct {
		if markCorrect(&p, outcome.Mode) {
			if p.LeitnerBox < maxBoxes {
				p.LeitnerBox++
			}
			p.EasinessFactor = nextEasiness(p.EasinessFactor, qualityForStreak(p.ConsecutiveCorrectCount))
			p.LastIntervalDays = p.IntervalDays
			p.IntervalDays = grownInterval(p.IntervalDays, p.EasinessFactor)
			p.NextReviewDate = now.AddDate(0, 0, p.IntervalDays)
			resetCycle(&p)
		}
		// Cycle still open: the due date stays put. The word stays
		// available to the remaining modes within the same session;
		// re-presentation is the session queue's call.
	} else {
		markIncorrect(&p)
		p.IntervalDays = p.IntervalDays / 2
		if p.IntervalDays < 1 {
			p.IntervalDays = 1
		}
		p.EasinessFactor = nextEasiness(p.EasinessFactor, failQuality)
		p.NextReviewDate = now.AddDate(0, 0, p.IntervalDays)
	}

	clampProgress(&p, maxBoxes)
	return p, nil
}
