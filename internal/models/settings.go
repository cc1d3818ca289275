package models

import (
	"fmt"
	"time"
)

// AlgorithmName selects the spaced-repetition strategy.
type AlgorithmName string

const (
	AlgorithmSM2         AlgorithmName = "sm2"
	AlgorithmModifiedSM2 AlgorithmName = "modifiedsm2"
	AlgorithmSimple      AlgorithmName = "simple"
)

// Valid reports whether the name is a known algorithm.
func (a AlgorithmName) Valid() bool {
	switch a {
	case AlgorithmSM2, AlgorithmModifiedSM2, AlgorithmSimple:
		return true
	}
	return false
}

// LearningSettings configures scheduling for a learner. One row per store.
type LearningSettings struct {
	ID        string        `json:"id"`
	Algorithm AlgorithmName `json:"sr_algorithm"`

	// LeitnerBoxCount is 3, 5 or 7.
	LeitnerBoxCount int `json:"leitner_box_count"`

	ConsecutiveCorrectRequired int  `json:"consecutive_correct_required"`
	ShowFailedWordsInSession   bool `json:"show_failed_words_in_session"`

	NewWordsPerDay   int `json:"new_words_per_day"`
	DailyReviewLimit int `json:"daily_review_limit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultLearningSettings returns the settings used until the learner
// changes them.
func DefaultLearningSettings() LearningSettings {
	return LearningSettings{
		Algorithm:                  AlgorithmModifiedSM2,
		LeitnerBoxCount:            5,
		ConsecutiveCorrectRequired: 1,
		ShowFailedWordsInSession:   true,
		NewWordsPerDay:             10,
		DailyReviewLimit:           100,
	}
}

// Validate checks settings ranges.
func (s LearningSettings) Validate() error {
	if !s.Algorithm.Valid() {
		return fmt.Errorf("unknown algorithm %q", s.Algorithm)
	}
	switch s.LeitnerBoxCount {
	case 3, 5, 7:
	default:
		return fmt.Errorf("leitner box count must be 3, 5 or 7, got %d", s.LeitnerBoxCount)
	}
	if s.ConsecutiveCorrectRequired < 1 {
		return fmt.Errorf("consecutive correct required must be at least 1")
	}
	if s.NewWordsPerDay < 0 {
		return fmt.Errorf("new words per day cannot be negative")
	}
	if s.DailyReviewLimit < 0 {
		return fmt.Errorf("daily review limit cannot be negative")
	}
	return nil
}

// UpdateLearningSettingsRequest carries a partial settings update. Nil
// fields keep their current value.
type UpdateLearningSettingsRequest struct {
	Algorithm                  *AlgorithmName `json:"sr_algorithm,omitempty"`
	LeitnerBoxCount            *int           `json:"leitner_box_count,omitempty"`
	ConsecutiveCorrectRequired *int           `json:"consecutive_correct_required,omitempty"`
	ShowFailedWordsInSession   *bool          `json:"show_failed_words_in_session,omitempty"`
	NewWordsPerDay             *int           `json:"new_words_per_day,omitempty"`
	DailyReviewLimit           *int           `json:"daily_review_limit,omitempty"`
}
