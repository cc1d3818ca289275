package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/luka/vocabflash/internal/errors"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/services"
	"github.com/luka/vocabflash/internal/testutil/mocks"
)

func TestGetOverview_SummarizesAggregate(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	settingsRepo := new(mocks.MockSettingsRepository)
	svc := services.NewStatsService(progressRepo, settingsRepo)

	due := models.NewWordProgress("due", "due", "en", testNow)
	due.TotalReviews = 4
	due.LeitnerBox = 2
	due.NextReviewDate = time.Now().AddDate(0, 0, -1)

	mastered := models.NewWordProgress("done", "done", "en", testNow)
	mastered.TotalReviews = 20
	mastered.LeitnerBox = 5
	mastered.NextReviewDate = time.Now().AddDate(0, 0, 30)

	fresh := models.NewWordProgress("fresh", "fresh", "en", testNow)
	fresh.NextReviewDate = time.Now().AddDate(0, 0, -1)

	settingsRepo.On("Get", mock.Anything).Return(nil, nil)
	progressRepo.On("GetAggregate", mock.Anything, "en").Return(&models.UserPracticeProgress{
		Language:            "en",
		WordsProgress:       []models.WordProgress{due, mastered, fresh},
		TotalSessions:       12,
		TotalWordsPracticed: 3,
		CurrentStreak:       2,
		LongestStreak:       6,
	}, nil)

	overview, err := svc.GetOverview(context.Background(), "en")
	require.NoError(t, err)

	assert.Equal(t, 12, overview.TotalSessions)
	assert.Equal(t, 2, overview.CurrentStreak)
	assert.Equal(t, 6, overview.LongestStreak)
	assert.Equal(t, 2, overview.DueNow, "due review plus never-practiced word")
	assert.Equal(t, 1, overview.Badges[models.BadgeNew])
	assert.Equal(t, 1, overview.Badges[models.BadgeStillLearning])
	assert.Equal(t, 1, overview.Badges[models.BadgeMastered])
}

func TestGetOverview_NotFoundForUnknownLanguage(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	settingsRepo := new(mocks.MockSettingsRepository)
	svc := services.NewStatsService(progressRepo, settingsRepo)

	progressRepo.On("GetAggregate", mock.Anything, "fi").Return(nil, nil)

	_, err := svc.GetOverview(context.Background(), "fi")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}

func TestGetOverview_RequiresLanguage(t *testing.T) {
	svc := services.NewStatsService(new(mocks.MockProgressRepository), new(mocks.MockSettingsRepository))

	_, err := svc.GetOverview(context.Background(), "")
	assert.True(t, apperrors.IsValidation(err))
}
