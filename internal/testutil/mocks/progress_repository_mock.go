package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luka/vocabflash/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetWordProgress(ctx context.Context, language, vocabularyID string) (*models.WordProgress, error) {
	args := m.Called(ctx, language, vocabularyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) ListWordProgress(ctx context.Context, language string) ([]models.WordProgress, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) UpsertWordProgress(ctx context.Context, p models.WordProgress) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgressRepository) GetAggregate(ctx context.Context, language string) (*models.UserPracticeProgress, error) {
	args := m.Called(ctx, language)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserPracticeProgress), args.Error(1)
}

func (m *MockProgressRepository) UpsertAggregate(ctx context.Context, agg models.UserPracticeProgress) error {
	args := m.Called(ctx, agg)
	return args.Error(0)
}

func (m *MockProgressRepository) RecountMastery(ctx context.Context, language string) error {
	args := m.Called(ctx, language)
	return args.Error(0)
}
