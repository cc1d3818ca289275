package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luka/vocabflash/internal/models"
)

// MockSettingsRepository is a mock implementation of repository.SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*models.LearningSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearningSettings), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, s models.LearningSettings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
