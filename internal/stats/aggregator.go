// Package stats folds completed practice sessions into the per-language
// aggregate: totals and consecutive-day streaks.
package stats

import (
	"time"

	"github.com/luka/vocabflash/internal/models"
)

// ApplySession returns the aggregate updated with one completed session.
// today is the calendar date the session completed on, in the learner's
// local zone; comparisons happen at day granularity only.
func ApplySession(agg models.UserPracticeProgress, session models.PracticeSession, today time.Time) models.UserPracticeProgress {
	agg.TotalSessions++
	agg.TotalWordsPracticed += newWordCount(agg, session)

	day := dateOf(today)
	last := dateOf(agg.LastPracticeDate)

	switch {
	case agg.LastPracticeDate.IsZero():
		agg.CurrentStreak = 1
	case day.Equal(last):
		// Second session the same day leaves the streak alone.
	case day.Equal(last.AddDate(0, 0, 1)):
		agg.CurrentStreak++
	default:
		agg.CurrentStreak = 1
	}
	if agg.CurrentStreak > agg.LongestStreak {
		agg.LongestStreak = agg.CurrentStreak
	}
	agg.LastPracticeDate = day
	agg.UpdatedAt = today

	return agg
}

// newWordCount counts the distinct vocabulary ids in the session that the
// aggregate has never seen. Requeue duplicates within the session never
// double count.
func newWordCount(agg models.UserPracticeProgress, session models.PracticeSession) int {
	known := make(map[string]bool, len(agg.WordsProgress))
	for _, p := range agg.WordsProgress {
		known[p.VocabularyID] = true
	}

	count := 0
	seen := make(map[string]bool, len(session.Results))
	for _, r := range session.Results {
		if r.VocabularyID == "" || seen[r.VocabularyID] {
			continue
		}
		seen[r.VocabularyID] = true
		if !known[r.VocabularyID] {
			count++
		}
	}
	return count
}

// dateOf truncates a timestamp to its calendar date in the local zone.
func dateOf(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
