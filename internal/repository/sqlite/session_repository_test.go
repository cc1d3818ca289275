package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/repository/sqlite"
	"github.com/luka/vocabflash/internal/testutil"
)

func sampleSession(id, language string, completedAt time.Time) models.PracticeSession {
	return models.PracticeSession{
		ID:           id,
		CollectionID: "col-1",
		Mode:         models.ModeFlashcard,
		Language:     language,
		Topic:        "animals",
		Level:        "a2",
		Results: []models.PracticeResult{
			{VocabularyID: "w1", Word: "dog", Correct: true, Mode: models.ModeFlashcard, TimeSpentSeconds: 4},
			{VocabularyID: "w2", Word: "cat", Correct: false, Mode: models.ModeFlashcard, TimeSpentSeconds: 9},
			{VocabularyID: "w2", Word: "cat", Correct: true, Mode: models.ModeFlashcard, TimeSpentSeconds: 5},
		},
		TotalQuestions:  3,
		CorrectAnswers:  2,
		StartedAt:       completedAt.Add(-90 * time.Second),
		CompletedAt:     completedAt,
		DurationSeconds: 90,
	}
}

func TestSessionRepository_InsertAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewSessionRepository(database.DB)
	ctx := context.Background()

	s := sampleSession("s1", "en", testNow)
	require.NoError(t, repo.Insert(ctx, s))

	got, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "col-1", got.CollectionID)
	assert.Equal(t, models.ModeFlashcard, got.Mode)
	assert.Equal(t, "animals", got.Topic)
	assert.Equal(t, "a2", got.Level)
	assert.Equal(t, 3, got.TotalQuestions)
	assert.Equal(t, 2, got.CorrectAnswers)
	assert.Equal(t, 90, got.DurationSeconds)

	// Results keep their presentation order, requeue duplicates included.
	require.Len(t, got.Results, 3)
	assert.Equal(t, "w1", got.Results[0].VocabularyID)
	assert.Equal(t, "w2", got.Results[1].VocabularyID)
	assert.False(t, got.Results[1].Correct)
	assert.Equal(t, "w2", got.Results[2].VocabularyID)
	assert.True(t, got.Results[2].Correct)
}

func TestSessionRepository_GetMissingReturnsNil(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewSessionRepository(database.DB)

	got, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionRepository_ListFiltersAndOrders(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewSessionRepository(database.DB)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, sampleSession("s1", "en", testNow.Add(-2*time.Hour))))
	require.NoError(t, repo.Insert(ctx, sampleSession("s2", "en", testNow)))
	require.NoError(t, repo.Insert(ctx, sampleSession("s3", "de", testNow.Add(-time.Hour))))

	sessions, err := repo.List(ctx, models.SessionFilter{Language: "en"})
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID, "most recent first")
	assert.Equal(t, "s1", sessions[1].ID)

	all, err := repo.List(ctx, models.SessionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSessionRepository_ListByModeAndCollection(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewSessionRepository(database.DB)
	ctx := context.Background()

	fill := sampleSession("s1", "en", testNow)
	fill.Mode = models.ModeFillWord
	fill.CollectionID = "col-2"
	require.NoError(t, repo.Insert(ctx, fill))
	require.NoError(t, repo.Insert(ctx, sampleSession("s2", "en", testNow)))

	byMode, err := repo.List(ctx, models.SessionFilter{Mode: string(models.ModeFillWord)})
	require.NoError(t, err)
	require.Len(t, byMode, 1)
	assert.Equal(t, "s1", byMode[0].ID)

	byCollection, err := repo.List(ctx, models.SessionFilter{CollectionID: "col-2"})
	require.NoError(t, err)
	require.Len(t, byCollection, 1)
	assert.Equal(t, "s1", byCollection[0].ID)
}

func TestSessionRepository_ListPagination(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := sqlite.NewSessionRepository(database.DB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		s := sampleSession("", "en", testNow.Add(time.Duration(i)*time.Minute))
		s.ID = string(rune('a' + i))
		require.NoError(t, repo.Insert(ctx, s))
	}

	page, err := repo.List(ctx, models.SessionFilter{Language: "en", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].ID)
	assert.Equal(t, "c", page[1].ID)
}
