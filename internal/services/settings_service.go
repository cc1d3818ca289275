package services

import (
	"context"

	"github.com/luka/vocabflash/internal/errors"
	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/repository"
)

// SettingsService handles learning settings business logic
type SettingsService interface {
	Get(ctx context.Context) (models.LearningSettings, error)
	Update(ctx context.Context, req models.UpdateLearningSettingsRequest) (models.LearningSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) Get(ctx context.Context) (models.LearningSettings, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting learning settings")

	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return models.LearningSettings{}, errors.NewStoreUnavailableError(err)
	}
	if stored == nil {
		return models.DefaultLearningSettings(), nil
	}
	return *stored, nil
}

func (s *settingsService) Update(ctx context.Context, req models.UpdateLearningSettingsRequest) (models.LearningSettings, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating learning settings")

	current, err := s.Get(ctx)
	if err != nil {
		return models.LearningSettings{}, err
	}

	if req.Algorithm != nil {
		current.Algorithm = *req.Algorithm
	}
	if req.LeitnerBoxCount != nil {
		current.LeitnerBoxCount = *req.LeitnerBoxCount
	}
	if req.ConsecutiveCorrectRequired != nil {
		current.ConsecutiveCorrectRequired = *req.ConsecutiveCorrectRequired
	}
	if req.ShowFailedWordsInSession != nil {
		current.ShowFailedWordsInSession = *req.ShowFailedWordsInSession
	}
	if req.NewWordsPerDay != nil {
		current.NewWordsPerDay = *req.NewWordsPerDay
	}
	if req.DailyReviewLimit != nil {
		current.DailyReviewLimit = *req.DailyReviewLimit
	}

	if err := current.Validate(); err != nil {
		return models.LearningSettings{}, errors.NewValidationError("settings", err.Error())
	}

	if err := s.settingsRepo.Upsert(ctx, current); err != nil {
		log.Error("failed to persist settings: %v", err)
		return models.LearningSettings{}, errors.NewStoreUnavailableError(err)
	}
	log.Info("learning settings updated: algorithm=%s, boxes=%d", current.Algorithm, current.LeitnerBoxCount)
	return current, nil
}
