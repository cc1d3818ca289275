package repository

import (
	"context"

	"github.com/luka/vocabflash/internal/models"
)

// ProgressRepository handles word progress and per-language aggregate data
// access. It is the engine's only view of durable storage.
type ProgressRepository interface {
	GetWordProgress(ctx context.Context, language, vocabularyID string) (*models.WordProgress, error)
	ListWordProgress(ctx context.Context, language string) ([]models.WordProgress, error)
	UpsertWordProgress(ctx context.Context, p models.WordProgress) error
	GetAggregate(ctx context.Context, language string) (*models.UserPracticeProgress, error)
	UpsertAggregate(ctx context.Context, agg models.UserPracticeProgress) error
	// RecountMastery recomputes the derived mastery level for every word
	// of a language from its lifetime counters.
	RecountMastery(ctx context.Context, language string) error
}

// SessionRepository handles practice session history.
type SessionRepository interface {
	Insert(ctx context.Context, session models.PracticeSession) error
	Get(ctx context.Context, id string) (*models.PracticeSession, error)
	List(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error)
}

// SettingsRepository handles the learner's scheduling settings.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.LearningSettings, error)
	Upsert(ctx context.Context, s models.LearningSettings) error
}
