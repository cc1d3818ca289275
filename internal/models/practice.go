package models

import (
	"fmt"
	"time"
)

// PracticeMode identifies one of the three question presentation styles.
type PracticeMode string

const (
	ModeFlashcard      PracticeMode = "flashcard"
	ModeFillWord       PracticeMode = "fillword"
	ModeMultipleChoice PracticeMode = "multiplechoice"
)

// AllModes lists every recognized practice mode. A word's review cycle
// closes only after it has been answered correctly in all of them.
var AllModes = []PracticeMode{ModeFlashcard, ModeFillWord, ModeMultipleChoice}

// ParseMode converts a string into a PracticeMode.
func ParseMode(s string) (PracticeMode, error) {
	switch PracticeMode(s) {
	case ModeFlashcard, ModeFillWord, ModeMultipleChoice:
		return PracticeMode(s), nil
	}
	return "", fmt.Errorf("unknown practice mode %q", s)
}

// Valid reports whether m is one of the three recognized modes.
func (m PracticeMode) Valid() bool {
	switch m {
	case ModeFlashcard, ModeFillWord, ModeMultipleChoice:
		return true
	}
	return false
}

// PracticeResult is one answer given during a session. A word requeued
// after a miss produces multiple results for the same vocabulary id.
type PracticeResult struct {
	VocabularyID     string       `json:"vocabulary_id"`
	Word             string       `json:"word"`
	Correct          bool         `json:"correct"`
	Mode             PracticeMode `json:"mode"`
	TimeSpentSeconds int          `json:"time_spent_seconds"`
}

// PracticeSession is a completed practice run. Immutable once stored.
type PracticeSession struct {
	ID              string           `json:"id"`
	CollectionID    string           `json:"collection_id"`
	Mode            PracticeMode     `json:"mode"`
	Language        string           `json:"language"`
	Topic           string           `json:"topic,omitempty"`
	Level           string           `json:"level,omitempty"`
	Results         []PracticeResult `json:"results"`
	TotalQuestions  int              `json:"total_questions"`
	CorrectAnswers  int              `json:"correct_answers"`
	StartedAt       time.Time        `json:"started_at"`
	CompletedAt     time.Time        `json:"completed_at"`
	DurationSeconds int              `json:"duration_seconds"`
}

// CreatePracticeSessionRequest is submitted by the client once a session
// finishes.
type CreatePracticeSessionRequest struct {
	CollectionID    string           `json:"collection_id"`
	Mode            PracticeMode     `json:"mode"`
	Language        string           `json:"language"`
	Topic           string           `json:"topic,omitempty"`
	Level           string           `json:"level,omitempty"`
	Results         []PracticeResult `json:"results"`
	DurationSeconds int              `json:"duration_seconds"`
}

// SessionSummary reports the outcome of submitting a session. Scheduled
// counts results whose progress update succeeded; Failed counts results
// rejected individually (for example an unknown mode). A failed result
// never aborts the rest of the session.
type SessionSummary struct {
	SessionID string `json:"session_id"`
	Scheduled int    `json:"scheduled"`
	Failed    int    `json:"failed"`
}

// SessionFilter narrows session history queries.
type SessionFilter struct {
	Language     string
	CollectionID string
	Mode         string
	Limit        int
	Offset       int
}
