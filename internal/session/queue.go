// Package session builds and drives the ordered queue of words for one
// practice session: due selection, new-word interleaving, and requeue of
// missed words until they are answered correctly or hit the retry cap.
package session

import (
	"sort"
	"time"

	"github.com/luka/vocabflash/internal/models"
)

// Config tunes queue construction and requeue behavior.
type Config struct {
	// RetryCap is how many failures a word may accumulate before it stops
	// being requeued within the session. After the cap the word simply
	// waits for its next natural due date. Default 3: a word is never
	// presented a fourth time in one session.
	RetryCap int
	// SpacingFactor spreads a missed word's re-presentation: the word is
	// reinserted retryCount*SpacingFactor positions forward, so the
	// learner sees other words first. Default 3.
	SpacingFactor int
	// MaxNewWords caps never-practiced words per session. Default 10.
	MaxNewWords int
	// NewWordInterleave inserts one new word after this many due reviews.
	// Default 3.
	NewWordInterleave int
}

const (
	defaultRetryCap          = 3
	defaultSpacingFactor     = 3
	defaultMaxNewWords       = 10
	defaultNewWordInterleave = 3
)

func (c Config) withDefaults() Config {
	if c.RetryCap <= 0 {
		c.RetryCap = defaultRetryCap
	}
	if c.SpacingFactor <= 0 {
		c.SpacingFactor = defaultSpacingFactor
	}
	if c.MaxNewWords < 0 {
		c.MaxNewWords = defaultMaxNewWords
	}
	if c.MaxNewWords == 0 {
		c.MaxNewWords = defaultMaxNewWords
	}
	if c.NewWordInterleave <= 0 {
		c.NewWordInterleave = defaultNewWordInterleave
	}
	return c
}

// wordState is the session-scoped retry record for one word. It lives
// here, not on the persisted progress record, so stale flags can never
// leak across sessions.
type wordState struct {
	answeredCorrect bool
	retryCount      int
}

// Queue is the ordered presentation plan for one session. It is not safe
// for concurrent use; a session is processed one answer at a time.
type Queue struct {
	cfg     Config
	pending []string
	state   map[string]*wordState
}

// Build selects and orders the words for a session.
//
// A word is eligible when it is due (now >= next review date). Words that
// have never been practiced count as new and are interleaved among the due
// reviews, capped at MaxNewWords. Reviews are ordered most overdue first;
// ties break on ascending vocabulary id so the same inputs always produce
// the same queue. limit <= 0 means no limit.
func Build(all []models.WordProgress, now time.Time, limit int, cfg Config) *Queue {
	cfg = cfg.withDefaults()

	var reviews, fresh []models.WordProgress
	for _, p := range all {
		if p.VocabularyID == "" {
			continue
		}
		// Words that already missed this session stay eligible for an
		// immediate retry even if their due date moved forward.
		if !p.Due(now) && !p.FailedInSession {
			continue
		}
		if p.TotalReviews == 0 {
			fresh = append(fresh, p)
		} else {
			reviews = append(reviews, p)
		}
	}

	sort.Slice(reviews, func(i, j int) bool {
		oi := now.Sub(reviews[i].NextReviewDate)
		oj := now.Sub(reviews[j].NextReviewDate)
		if oi != oj {
			return oi > oj
		}
		return reviews[i].VocabularyID < reviews[j].VocabularyID
	})
	sort.Slice(fresh, func(i, j int) bool {
		return fresh[i].VocabularyID < fresh[j].VocabularyID
	})
	if len(fresh) > cfg.MaxNewWords {
		fresh = fresh[:cfg.MaxNewWords]
	}

	order := interleave(reviews, fresh, cfg.NewWordInterleave)
	if limit > 0 && len(order) > limit {
		order = order[:limit]
	}

	q := &Queue{
		cfg:     cfg,
		pending: order,
		state:   make(map[string]*wordState, len(order)),
	}
	for _, id := range order {
		q.state[id] = &wordState{}
	}
	return q
}

// interleave merges one new word into the review stream after every
// `every` reviews, appending leftovers at the end.
func interleave(reviews, fresh []models.WordProgress, every int) []string {
	order := make([]string, 0, len(reviews)+len(fresh))
	fi := 0
	for i, p := range reviews {
		order = append(order, p.VocabularyID)
		if (i+1)%every == 0 && fi < len(fresh) {
			order = append(order, fresh[fi].VocabularyID)
			fi++
		}
	}
	for ; fi < len(fresh); fi++ {
		order = append(order, fresh[fi].VocabularyID)
	}
	return order
}

// Next returns the next word to present, or false when the session is
// over: every word was either answered correctly once or deferred after
// hitting the retry cap. Cycle-completing correctness is not required to
// finish a session, only to advance the schedule.
func (q *Queue) Next() (string, bool) {
	if len(q.pending) == 0 {
		return "", false
	}
	return q.pending[0], true
}

// Len returns the number of pending presentations.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Order returns a copy of the pending presentation order.
func (q *Queue) Order() []string {
	out := make([]string, len(q.pending))
	copy(out, q.pending)
	return out
}

// Answer records the outcome for a word and updates the queue. A correct
// answer removes the word; a wrong answer requeues it
// min(retryCount*SpacingFactor, queue length) positions forward, until the
// retry cap defers it to its next natural due date.
func (q *Queue) Answer(vocabularyID string, correct bool) {
	st, ok := q.state[vocabularyID]
	if !ok {
		return
	}
	q.remove(vocabularyID)

	if correct {
		st.answeredCorrect = true
		return
	}

	st.retryCount++
	if st.retryCount >= q.cfg.RetryCap {
		// Surfaced for the last time; wait for the next due date.
		return
	}
	pos := st.retryCount * q.cfg.SpacingFactor
	if pos > len(q.pending) {
		pos = len(q.pending)
	}
	q.pending = append(q.pending, "")
	copy(q.pending[pos+1:], q.pending[pos:])
	q.pending[pos] = vocabularyID
}

func (q *Queue) remove(vocabularyID string) {
	for i, id := range q.pending {
		if id == vocabularyID {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// RetryCount returns the session-scoped failure count for a word.
func (q *Queue) RetryCount(vocabularyID string) int {
	if st, ok := q.state[vocabularyID]; ok {
		return st.retryCount
	}
	return 0
}

// Failed reports whether the word has missed at least once this session.
func (q *Queue) Failed(vocabularyID string) bool {
	if st, ok := q.state[vocabularyID]; ok {
		return st.retryCount > 0
	}
	return false
}
