package services

import (
	"context"
	"time"

	"github.com/luka/vocabflash/internal/errors"
	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/repository"
)

// StatsOverview is the dashboard view of one language's progress.
type StatsOverview struct {
	Language            string                     `json:"language"`
	TotalSessions       int                        `json:"total_sessions"`
	TotalWordsPracticed int                        `json:"total_words_practiced"`
	CurrentStreak       int                        `json:"current_streak"`
	LongestStreak       int                        `json:"longest_streak"`
	LastPracticeDate    time.Time                  `json:"last_practice_date"`
	DueNow              int                        `json:"due_now"`
	Badges              map[models.StatusBadge]int `json:"badges"`
}

// StatsService handles statistics-related business logic
type StatsService interface {
	GetOverview(ctx context.Context, language string) (*StatsOverview, error)
}

type statsService struct {
	progressRepo repository.ProgressRepository
	settingsRepo repository.SettingsRepository
	now          func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(progressRepo repository.ProgressRepository, settingsRepo repository.SettingsRepository) StatsService {
	return &statsService{
		progressRepo: progressRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
}

func (s *statsService) GetOverview(ctx context.Context, language string) (*StatsOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats overview: language=%s", language)

	if language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}

	aggregate, err := s.progressRepo.GetAggregate(ctx, language)
	if err != nil {
		log.Error("failed to get aggregate: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}
	if aggregate == nil {
		return nil, errors.NewNotFoundError("practice progress", language)
	}

	maxBoxes := models.DefaultLearningSettings().LeitnerBoxCount
	if stored, err := s.settingsRepo.Get(ctx); err == nil && stored != nil {
		maxBoxes = stored.LeitnerBoxCount
	}

	now := s.now()
	overview := &StatsOverview{
		Language:            aggregate.Language,
		TotalSessions:       aggregate.TotalSessions,
		TotalWordsPracticed: aggregate.TotalWordsPracticed,
		CurrentStreak:       aggregate.CurrentStreak,
		LongestStreak:       aggregate.LongestStreak,
		LastPracticeDate:    aggregate.LastPracticeDate,
		Badges:              make(map[models.StatusBadge]int),
	}
	for _, p := range aggregate.WordsProgress {
		if p.Due(now) {
			overview.DueNow++
		}
		overview.Badges[p.Badge(maxBoxes)]++
	}
	return overview, nil
}
