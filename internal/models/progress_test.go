package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka/vocabflash/internal/models"
)

func TestNewWordProgress_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := models.NewWordProgress("w1", "dog", "en", now)

	assert.Equal(t, 1, p.LeitnerBox)
	assert.Equal(t, 0, p.IntervalDays)
	assert.Equal(t, models.DefaultEasinessFactor, p.EasinessFactor)
	assert.True(t, p.Due(now), "a new word is due immediately")
	assert.False(t, p.Due(now.Add(-time.Second)))
}

func TestCycleComplete(t *testing.T) {
	var p models.WordProgress
	assert.False(t, p.CycleComplete())

	p.CompletedModesInCycle = []models.PracticeMode{models.ModeFlashcard, models.ModeFillWord}
	assert.False(t, p.CycleComplete())

	p.CompletedModesInCycle = append(p.CompletedModesInCycle, models.ModeMultipleChoice)
	assert.True(t, p.CycleComplete())
}

func TestParseMode(t *testing.T) {
	for _, mode := range models.AllModes {
		got, err := models.ParseMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := models.ParseMode("speedrun")
	assert.Error(t, err)
}

func TestBadge(t *testing.T) {
	tests := []struct {
		name         string
		totalReviews int
		box          int
		expected     models.StatusBadge
	}{
		{"never practiced", 0, 1, models.BadgeNew},
		{"low box", 5, 2, models.BadgeStillLearning},
		{"one box from the top", 5, 4, models.BadgeAlmostDone},
		{"top box", 5, 5, models.BadgeMastered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.WordProgress{TotalReviews: tt.totalReviews, LeitnerBox: tt.box}
			assert.Equal(t, tt.expected, p.Badge(5))
		})
	}
}
