package models

import "time"

// Easiness factor bounds from SM-2. Values outside the range are clamped,
// never rejected, since records may arrive from older client revisions.
const (
	MinEasinessFactor     = 1.3
	MaxEasinessFactor     = 2.5
	DefaultEasinessFactor = 2.5
)

// WordProgress is the scheduling state for one (language, vocabulary id)
// pair. It is mutated only by the scheduler.
type WordProgress struct {
	VocabularyID  string `json:"vocabulary_id"`
	Word          string `json:"word"`
	Language      string `json:"language"`
	CorrectCount   int `json:"correct_count"`
	IncorrectCount int `json:"incorrect_count"`
	// MasteryLevel is a legacy 0-5 indicator derived from the lifetime
	// counters. Scheduling decisions never read it.
	MasteryLevel  int       `json:"mastery_level"`
	LastPracticed time.Time `json:"last_practiced"`

	NextReviewDate          time.Time `json:"next_review_date"`
	IntervalDays            int       `json:"interval_days"`
	EasinessFactor          float64   `json:"easiness_factor"`
	ConsecutiveCorrectCount int       `json:"consecutive_correct_count"`

	LeitnerBox       int `json:"leitner_box"`
	LastIntervalDays int `json:"last_interval_days"`

	TotalReviews int `json:"total_reviews"`

	// FailedInSession and RetryCount are session-scoped. They reset at
	// the start of every session and are stored as false/0; live values
	// belong to the in-memory session queue.
	FailedInSession bool `json:"failed_in_session"`
	RetryCount      int  `json:"retry_count"`

	// CompletedModesInCycle holds the modes answered correctly since the
	// last cycle reset. The box and interval advance only once it covers
	// all of AllModes.
	CompletedModesInCycle []PracticeMode `json:"completed_modes_in_cycle"`
}

// NewWordProgress creates the initial progress record for a word the first
// time it is practiced: box 1, interval 0, default easiness, due
// immediately.
func NewWordProgress(vocabularyID, word, language string, now time.Time) WordProgress {
	return WordProgress{
		VocabularyID:   vocabularyID,
		Word:           word,
		Language:       language,
		EasinessFactor: DefaultEasinessFactor,
		LeitnerBox:     1,
		NextReviewDate: now,
	}
}

// Due reports whether the word should be reviewed at the given time.
func (p WordProgress) Due(now time.Time) bool {
	return !now.Before(p.NextReviewDate)
}

// HasCompletedMode reports whether mode was answered correctly in the
// current cycle.
func (p WordProgress) HasCompletedMode(mode PracticeMode) bool {
	for _, m := range p.CompletedModesInCycle {
		if m == mode {
			return true
		}
	}
	return false
}

// CycleComplete reports whether every practice mode has been answered
// correctly in the current cycle.
func (p WordProgress) CycleComplete() bool {
	for _, m := range AllModes {
		if !p.HasCompletedMode(m) {
			return false
		}
	}
	return true
}

// StatusBadge is the coarse learning state shown next to a word.
type StatusBadge string

const (
	BadgeNew           StatusBadge = "NEW"
	BadgeStillLearning StatusBadge = "STILL_LEARNING"
	BadgeAlmostDone    StatusBadge = "ALMOST_DONE"
	BadgeMastered      StatusBadge = "MASTERED"
)

// Badge derives the display status from box and cycle state. maxBoxes is
// the configured Leitner box count.
func (p WordProgress) Badge(maxBoxes int) StatusBadge {
	switch {
	case p.TotalReviews == 0:
		return BadgeNew
	case p.LeitnerBox >= maxBoxes:
		return BadgeMastered
	case p.LeitnerBox >= maxBoxes-1:
		return BadgeAlmostDone
	default:
		return BadgeStillLearning
	}
}

// UserPracticeProgress is the per-language aggregate owned by the stats
// aggregator.
type UserPracticeProgress struct {
	ID                  string         `json:"id"`
	Language            string         `json:"language"`
	WordsProgress       []WordProgress `json:"words_progress"`
	TotalSessions       int            `json:"total_sessions"`
	TotalWordsPracticed int            `json:"total_words_practiced"`
	CurrentStreak       int            `json:"current_streak"`
	LongestStreak       int            `json:"longest_streak"`
	// LastPracticeDate is a calendar date, not a timestamp. Streak rules
	// compare it at day granularity in the local zone.
	LastPracticeDate time.Time `json:"last_practice_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// UpdateProgressRequest persists one word's scheduling state verbatim. It
// is exactly the scheduler's output shape, used by clients that run the
// engine locally.
type UpdateProgressRequest struct {
	Language                string   `json:"language"`
	VocabularyID            string   `json:"vocabulary_id"`
	Word                    string   `json:"word"`
	Correct                 bool     `json:"correct"`
	CompletedModesInCycle   []string `json:"completed_modes_in_cycle"`
	NextReviewDate          string   `json:"next_review_date"` // RFC 3339
	IntervalDays            int      `json:"interval_days"`
	EasinessFactor          float64  `json:"easiness_factor"`
	ConsecutiveCorrectCount int      `json:"consecutive_correct_count"`
	LeitnerBox              int      `json:"leitner_box"`
	LastIntervalDays        int      `json:"last_interval_days"`
	TotalReviews            int      `json:"total_reviews"`
	CorrectCount            int      `json:"correct_count"`
	IncorrectCount          int      `json:"incorrect_count"`
}
