// Package scheduler decides when a vocabulary word should be reviewed
// again. It combines an SM-2 style easiness factor with Leitner box
// progression, gated on completing all three practice modes in one review
// cycle.
package scheduler

import (
	"math"
	"time"

	"github.com/luka/vocabflash/internal/errors"
	"github.com/luka/vocabflash/internal/models"
)

// Outcome is one answer for one word.
type Outcome struct {
	Correct bool
	Mode    models.PracticeMode
}

// Config bounds the Leitner progression.
type Config struct {
	// MaxBoxes is the highest Leitner box. Zero means DefaultMaxBoxes.
	MaxBoxes int
}

// DefaultMaxBoxes matches the default learning settings.
const DefaultMaxBoxes = 5

func (c Config) maxBoxes() int {
	if c.MaxBoxes <= 0 {
		return DefaultMaxBoxes
	}
	return c.MaxBoxes
}

// Algorithm computes the next review state for a word given one answer.
// Advance is pure: it never touches storage and returns a new record.
type Algorithm interface {
	Name() models.AlgorithmName
	Advance(p models.WordProgress, outcome Outcome, now time.Time) (models.WordProgress, error)
}

// ForSettings returns the algorithm selected by the learner's settings.
func ForSettings(s models.LearningSettings) Algorithm {
	cfg := Config{MaxBoxes: s.LeitnerBoxCount}
	switch s.Algorithm {
	case models.AlgorithmSM2:
		return NewSM2(cfg)
	case models.AlgorithmSimple:
		return NewSimple(cfg)
	default:
		return NewModifiedSM2(cfg)
	}
}

// validateOutcome rejects the two fatal input shapes: a missing vocabulary
// id and an unrecognized mode. Everything else is clamped, not rejected.
func validateOutcome(p models.WordProgress, outcome Outcome) error {
	if p.VocabularyID == "" {
		return errors.NewValidationError("vocabulary_id", "must not be empty")
	}
	if !outcome.Mode.Valid() {
		return errors.NewValidationError("mode", "must be flashcard, fillword or multiplechoice")
	}
	return nil
}

// failQuality is the SM-2 quality grade applied to a wrong answer.
const failQuality = 1

// qualityForStreak maps a consecutive-correct streak onto the SM-2 0-5
// quality scale: one correct answer grades 3, two grade 4, three or more
// grade 5. The practice interface records only a boolean, so the streak
// stands in for answer confidence.
func qualityForStreak(streak int) int {
	switch {
	case streak >= 3:
		return 5
	case streak == 2:
		return 4
	default:
		return 3
	}
}

// nextEasiness applies the SM-2 easiness update for quality q and clamps
// the result to [1.3, 2.5].
func nextEasiness(ef float64, q int) float64 {
	ef += 0.1 - float64(5-q)*(0.08+float64(5-q)*0.02)
	return clampEase(ef)
}

func clampEase(ef float64) float64 {
	if ef < models.MinEasinessFactor {
		return models.MinEasinessFactor
	}
	if ef > models.MaxEasinessFactor {
		return models.MaxEasinessFactor
	}
	return ef
}

// grownInterval is the standard SM-2 growth step: round(interval * ef)
// with a floor of one day, covering the first successful cycle where the
// interval is still zero.
func grownInterval(intervalDays int, ef float64) int {
	next := int(math.Round(float64(intervalDays) * ef))
	if next < 1 {
		next = 1
	}
	return next
}

// Sanitize clamps every bounded field of a progress record into its
// documented range. Used when persisting records computed elsewhere, for
// example by a client running the engine locally.
func Sanitize(p *models.WordProgress, maxBoxes int) {
	if maxBoxes <= 0 {
		maxBoxes = DefaultMaxBoxes
	}
	clampProgress(p, maxBoxes)
}

// clampProgress repairs out-of-range values instead of rejecting them.
// Progress records can originate from an older or divergent client
// schema, so a bad bound is recovered silently.
func clampProgress(p *models.WordProgress, maxBoxes int) {
	if p.LeitnerBox < 1 {
		p.LeitnerBox = 1
	}
	if p.LeitnerBox > maxBoxes {
		p.LeitnerBox = maxBoxes
	}
	p.EasinessFactor = clampEase(p.EasinessFactor)
	if p.IntervalDays < 0 {
		p.IntervalDays = 0
	}
	if p.LastIntervalDays < 0 {
		p.LastIntervalDays = 0
	}
	if p.ConsecutiveCorrectCount < 0 {
		p.ConsecutiveCorrectCount = 0
	}
	if p.CorrectCount < 0 {
		p.CorrectCount = 0
	}
	if p.IncorrectCount < 0 {
		p.IncorrectCount = 0
	}
	if p.TotalReviews < 0 {
		p.TotalReviews = 0
	}
	if p.RetryCount < 0 {
		p.RetryCount = 0
	}
}
