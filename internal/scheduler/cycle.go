package scheduler

import "github.com/luka/vocabflash/internal/models"

// The mode cycle is a small state machine nested in
// CompletedModesInCycle: a correct answer adds its mode to the set, the
// cycle closes when the set covers all three modes, and any wrong answer
// forfeits the whole set. A word cannot be spaced out on the strength of
// one easy mode; it must be recalled in every presentation style within
// a single cycle.

// recordCorrectMode adds mode to the current cycle (idempotently) and
// reports whether the cycle is now complete.
func recordCorrectMode(p *models.WordProgress, mode models.PracticeMode) bool {
	if !p.HasCompletedMode(mode) {
		p.CompletedModesInCycle = append(p.CompletedModesInCycle, mode)
	}
	return p.CycleComplete()
}

// resetCycle clears cycle progress, either because the cycle closed and a
// new one begins or because a wrong answer forfeited it.
func resetCycle(p *models.WordProgress) {
	p.CompletedModesInCycle = nil
}

// markCorrect applies the bookkeeping shared by every algorithm for a
// correct answer and reports whether the cycle closed.
func markCorrect(p *models.WordProgress, mode models.PracticeMode) bool {
	p.CorrectCount++
	p.ConsecutiveCorrectCount++
	return recordCorrectMode(p, mode)
}

// markIncorrect applies the bookkeeping shared by every algorithm for a
// wrong answer: counters, cycle forfeit, demotion, and the session-scoped
// retry flags read by the session queue.
func markIncorrect(p *models.WordProgress) {
	p.IncorrectCount++
	p.ConsecutiveCorrectCount = 0
	resetCycle(p)
	if p.LeitnerBox > 1 {
		p.LeitnerBox--
	}
	p.FailedInSession = true
	p.RetryCount++
}
