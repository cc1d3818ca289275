package scheduler

import (
	"time"

	"github.com/luka/vocabflash/internal/models"
)

// boxIntervals maps a Leitner box to its review interval in days. Boxes
// beyond the table keep the last entry.
var boxIntervals = []int{0, 1, 2, 4, 7, 15, 30, 60}

func boxInterval(box int) int {
	if box < 1 {
		box = 1
	}
	if box >= len(boxIntervals) {
		box = len(boxIntervals) - 1
	}
	return boxIntervals[box]
}

// Simple is a flat Leitner scheduler: the interval is a fixed function of
// the box, and the easiness factor is never touched. Useful for learners
// who want predictable spacing.
type Simple struct {
	cfg Config
}

// NewSimple creates the Leitner-only algorithm.
func NewSimple(cfg Config) *Simple {
	return &Simple{cfg: cfg}
}

func (a *Simple) Name() models.AlgorithmName {
	return models.AlgorithmSimple
}

func (a *Simple) Advance(p models.WordProgress, outcome Outcome, now time.Time) (models.WordProgress, error) {
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
			p.LastIntervalDays = p.IntervalDays
			p.IntervalDays = boxInterval(p.LeitnerBox)
			p.NextReviewDate = now.AddDate(0, 0, p.IntervalDays)
			resetCycle(&p)
		}
	} else {
		markIncorrect(&p)
		p.IntervalDays = boxInterval(p.LeitnerBox)
		p.NextReviewDate = now.AddDate(0, 0, p.IntervalDays)
	}

	clampProgress(&p, maxBoxes)
	return p, nil
}
