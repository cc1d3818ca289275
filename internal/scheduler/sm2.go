package scheduler

import (
	"time"

	"github.com/luka/vocabflash/internal/models"
)

// SM2 follows the classic SuperMemo-2 ladder: the first successful cycle
// schedules one day out, the second six, and later cycles multiply the
// interval by the easiness factor. The easiness factor moves on every
// answer, and a wrong answer resets the interval to a single day. Mode
// cycle gating still applies: the ladder only steps when a cycle closes.
type SM2 struct {
	cfg Config
}

// NewSM2 creates the classic SM-2 algorithm.
func NewSM2(cfg Config) *SM2 {
	return &SM2{cfg: cfg}
}

func (a *SM2) Name() models.AlgorithmName {
	return models.AlgorithmSM2
}

func (a *SM2) Advance(p models.WordProgress, outcome Outcome, now time.Time) (models.WordProgress, error) {
	if err := validateOutcome(p, outcome); err != nil {
		return p, err
	}
	maxBoxes := a.cfg.maxBoxes()
	clampProgress(&p, maxBoxes)

	p.TotalReviews++
	p.LastPracticed = now

	if outcome.Correct {
		p.EasinessFactor = nextEasiness(p.EasinessFactor, qualityForStreak(p.ConsecutiveCorrectCount+1))
		if markCorrect(&p, outcome.Mode) {
			if p.LeitnerBox < maxBoxes {
				p.LeitnerBox++
			}
			p.LastIntervalDays = p.IntervalDays
			switch p.IntervalDays {
			case 0:
				p.IntervalDays = 1
			case 1:
				p.IntervalDays = 6
			default:
				p.IntervalDays = grownInterval(p.IntervalDays, p.EasinessFactor)
			}
			p.NextReviewDate = now.AddDate(0, 0, p.IntervalDays)
			resetCycle(&p)
		}
	} else {
		markIncorrect(&p)
		p.EasinessFactor = nextEasiness(p.EasinessFactor, failQuality)
		p.IntervalDays = 1
		p.NextReviewDate = now.AddDate(0, 0, 1)
	}

	clampProgress(&p, maxBoxes)
	return p, nil
}
