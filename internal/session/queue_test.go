package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/session"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// reviewWord returns a previously-practiced word due the given number of
// days ago (negative means not yet due).
func reviewWord(id string, overdueDays int) models.WordProgress {
	p := models.NewWordProgress(id, id, "en", testNow)
	p.TotalReviews = 5
	p.NextReviewDate = testNow.AddDate(0, 0, -overdueDays)
	return p
}

func freshWord(id string) models.WordProgress {
	return models.NewWordProgress(id, id, "en", testNow)
}

func TestBuild_OrdersMostOverdueFirst(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("b", 1),
		reviewWord("a", 5),
		reviewWord("c", 3),
	}

	q := session.Build(all, testNow, 0, session.Config{})

	assert.Equal(t, []string{"a", "c", "b"}, q.Order())
}

func TestBuild_TieBreaksOnVocabularyID(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("z", 2),
		reviewWord("a", 2),
		reviewWord("m", 2),
	}

	q := session.Build(all, testNow, 0, session.Config{})

	assert.Equal(t, []string{"a", "m", "z"}, q.Order())
}

func TestBuild_ExcludesNotDueWords(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("due", 1),
		reviewWord("future", -3),
	}

	q := session.Build(all, testNow, 0, session.Config{})

	assert.Equal(t, []string{"due"}, q.Order())
}

func TestBuild_FailedInSessionStaysEligible(t *testing.T) {
	missed := reviewWord("missed", -3)
	missed.FailedInSession = true

	q := session.Build([]models.WordProgress{missed}, testNow, 0, session.Config{})

	assert.Equal(t, []string{"missed"}, q.Order())
}

func TestBuild_DueExactlyNowIsEligible(t *testing.T) {
	q := session.Build([]models.WordProgress{reviewWord("edge", 0)}, testNow, 0, session.Config{})
	assert.Equal(t, 1, q.Len())
}

func TestBuild_InterleavesNewWords(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("r1", 6), reviewWord("r2", 5), reviewWord("r3", 4),
		reviewWord("r4", 3), reviewWord("r5", 2), reviewWord("r6", 1),
		freshWord("n1"), freshWord("n2"),
	}

	q := session.Build(all, testNow, 0, session.Config{NewWordInterleave: 3})

	assert.Equal(t, []string{"r1", "r2", "r3", "n1", "r4", "r5", "r6", "n2"}, q.Order())
}

func TestBuild_CapsNewWords(t *testing.T) {
	all := []models.WordProgress{
		freshWord("n3"), freshWord("n1"), freshWord("n2"), freshWord("n4"),
	}

	q := session.Build(all, testNow, 0, session.Config{MaxNewWords: 2})

	assert.Equal(t, []string{"n1", "n2"}, q.Order(), "lowest ids kept when over the cap")
}

func TestBuild_AppliesLimit(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("a", 3), reviewWord("b", 2), reviewWord("c", 1),
	}

	q := session.Build(all, testNow, 2, session.Config{})

	assert.Equal(t, []string{"a", "b"}, q.Order())
}

func TestBuild_IsDeterministic(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("b", 2), reviewWord("a", 2), freshWord("n1"), reviewWord("c", 4),
	}

	first := session.Build(all, testNow, 0, session.Config{}).Order()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, session.Build(all, testNow, 0, session.Config{}).Order())
	}
}

func TestAnswer_CorrectRemovesWord(t *testing.T) {
	q := session.Build([]models.WordProgress{
		reviewWord("a", 2), reviewWord("b", 1),
	}, testNow, 0, session.Config{})

	q.Answer("a", true)

	assert.Equal(t, []string{"b"}, q.Order())
	assert.False(t, q.Failed("a"))
}

func TestAnswer_WrongRequeuesSpacedForward(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("a", 7), reviewWord("b", 6), reviewWord("c", 5),
		reviewWord("d", 4), reviewWord("e", 3), reviewWord("f", 2),
	}
	q := session.Build(all, testNow, 0, session.Config{SpacingFactor: 3})

	q.Answer("a", false)

	// One failure, spacing 3: reinserted three positions into the remaining
	// queue.
	assert.Equal(t, []string{"b", "c", "d", "a", "e", "f"}, q.Order())
	assert.True(t, q.Failed("a"))
	assert.Equal(t, 1, q.RetryCount("a"))
}

func TestAnswer_RequeueClampsToQueueLength(t *testing.T) {
	q := session.Build([]models.WordProgress{
		reviewWord("a", 2), reviewWord("b", 1),
	}, testNow, 0, session.Config{SpacingFactor: 5})

	q.Answer("a", false)

	assert.Equal(t, []string{"b", "a"}, q.Order())
}

func TestAnswer_RetryCapStopsRequeueing(t *testing.T) {
	q := session.Build([]models.WordProgress{reviewWord("a", 2)}, testNow, 0, session.Config{RetryCap: 3})

	presentations := 0
	for {
		id, ok := q.Next()
		if !ok {
			break
		}
		presentations++
		q.Answer(id, false)
		require.Less(t, presentations, 10, "queue must terminate")
	}

	assert.Equal(t, 3, presentations, "a word failing every time is never shown a fourth time")
	assert.Equal(t, 3, q.RetryCount("a"))
	assert.Equal(t, 0, q.Len())
}

func TestAnswer_UnknownWordIsIgnored(t *testing.T) {
	q := session.Build([]models.WordProgress{reviewWord("a", 1)}, testNow, 0, session.Config{})

	q.Answer("ghost", false)

	assert.Equal(t, []string{"a"}, q.Order())
}

func TestQueue_SessionTerminatesWithMixedAnswers(t *testing.T) {
	all := []models.WordProgress{
		reviewWord("a", 4), reviewWord("b", 3), reviewWord("c", 2), freshWord("n1"),
	}
	q := session.Build(all, testNow, 0, session.Config{})

	// Miss each word once, then answer correctly on the second look.
	missed := map[string]bool{}
	steps := 0
	for {
		id, ok := q.Next()
		if !ok {
			break
		}
		steps++
		require.Less(t, steps, 50, "queue must terminate")
		if missed[id] {
			q.Answer(id, true)
		} else {
			missed[id] = true
			q.Answer(id, false)
		}
	}

	assert.Equal(t, 0, q.Len())
	for id := range missed {
		assert.Equal(t, 1, q.RetryCount(id))
	}
}
