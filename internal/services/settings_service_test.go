package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/luka/vocabflash/internal/errors"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/services"
	"github.com/luka/vocabflash/internal/testutil/mocks"
)

func TestSettingsGet_FallsBackToDefaults(t *testing.T) {
	repo := new(mocks.MockSettingsRepository)
	repo.On("Get", mock.Anything).Return(nil, nil)
	svc := services.NewSettingsService(repo)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLearningSettings(), got)
}

func TestSettingsUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	repo := new(mocks.MockSettingsRepository)
	stored := models.DefaultLearningSettings()
	stored.ID = "settings-1"
	repo.On("Get", mock.Anything).Return(&stored, nil)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s models.LearningSettings) bool {
		return s.ID == "settings-1" &&
			s.Algorithm == models.AlgorithmSM2 &&
			s.LeitnerBoxCount == stored.LeitnerBoxCount &&
			s.NewWordsPerDay == 20
	})).Return(nil)
	svc := services.NewSettingsService(repo)

	alg := models.AlgorithmSM2
	newWords := 20
	got, err := svc.Update(context.Background(), models.UpdateLearningSettingsRequest{
		Algorithm:      &alg,
		NewWordsPerDay: &newWords,
	})
	require.NoError(t, err)

	assert.Equal(t, models.AlgorithmSM2, got.Algorithm)
	assert.Equal(t, 20, got.NewWordsPerDay)
	assert.Equal(t, stored.LeitnerBoxCount, got.LeitnerBoxCount, "untouched fields keep their stored values")
	repo.AssertExpectations(t)
}

func TestSettingsUpdate_RejectsInvalidBoxCount(t *testing.T) {
	repo := new(mocks.MockSettingsRepository)
	repo.On("Get", mock.Anything).Return(nil, nil)
	svc := services.NewSettingsService(repo)

	boxes := 4
	_, err := svc.Update(context.Background(), models.UpdateLearningSettingsRequest{
		LeitnerBoxCount: &boxes,
	})
	assert.True(t, apperrors.IsValidation(err), "box count must be 3, 5 or 7")
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSettingsUpdate_RejectsUnknownAlgorithm(t *testing.T) {
	repo := new(mocks.MockSettingsRepository)
	repo.On("Get", mock.Anything).Return(nil, nil)
	svc := services.NewSettingsService(repo)

	alg := models.AlgorithmName("anki")
	_, err := svc.Update(context.Background(), models.UpdateLearningSettingsRequest{
		Algorithm: &alg,
	})
	assert.True(t, apperrors.IsValidation(err))
}
