package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/repository"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

const wordProgressColumns = `vocabulary_id, word, language, correct_count, incorrect_count,
       mastery_level, total_reviews, next_review_date, interval_days, easiness_factor,
       consecutive_correct_count, leitner_box, last_interval_days, completed_modes, last_practiced`

func scanWordProgress(row interface{ Scan(...any) error }) (models.WordProgress, error) {
	var p models.WordProgress
	var modes string
	var lastPracticed sql.NullTime
	err := row.Scan(&p.VocabularyID, &p.Word, &p.Language, &p.CorrectCount, &p.IncorrectCount,
		&p.MasteryLevel, &p.TotalReviews, &p.NextReviewDate, &p.IntervalDays, &p.EasinessFactor,
		&p.ConsecutiveCorrectCount, &p.LeitnerBox, &p.LastIntervalDays, &modes, &lastPracticed)
	if err != nil {
		return p, err
	}
	p.CompletedModesInCycle = splitModes(modes)
	if lastPracticed.Valid {
		p.LastPracticed = lastPracticed.Time
	}
	return p, nil
}

func (r *progressRepository) GetWordProgress(ctx context.Context, language, vocabularyID string) (*models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting word progress: language=%s, vocabulary_id=%s", language, vocabularyID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+wordProgressColumns+`
FROM word_progress
WHERE language = ? AND vocabulary_id = ?
`, language, vocabularyID)
	p, err := scanWordProgress(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("word progress not found: vocabulary_id=%s", vocabularyID)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ListWordProgress(ctx context.Context, language string) ([]models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("listing word progress: language=%s", language)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+wordProgressColumns+`
FROM word_progress
WHERE language = ?
ORDER BY vocabulary_id ASC
`, language)
	if err != nil {
		log.Error("failed to list word progress: %v", err)
		return nil, err
	}
	defer rows.Close()

	var all []models.WordProgress
	for rows.Next() {
		p, err := scanWordProgress(rows)
		if err != nil {
			log.Error("failed to scan word progress row: %v", err)
			return nil, err
		}
		all = append(all, p)
	}
	log.Debug("found %d word progress records", len(all))
	return all, rows.Err()
}

func (r *progressRepository) UpsertWordProgress(ctx context.Context, p models.WordProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting word progress: vocabulary_id=%s, box=%d, interval=%d, ease=%.2f",
		p.VocabularyID, p.LeitnerBox, p.IntervalDays, p.EasinessFactor)

	var lastPracticed any
	if !p.LastPracticed.IsZero() {
		lastPracticed = p.LastPracticed
	}

	// failed_in_session and retry_count are deliberately not stored: they
	// are session-scoped and live in the in-memory queue.
	_, err := r.db.ExecContext(ctx, `
INSERT INTO word_progress (id, language, vocabulary_id, word, correct_count, incorrect_count,
    mastery_level, total_reviews, next_review_date, interval_days, easiness_factor,
    consecutive_correct_count, leitner_box, last_interval_days, completed_modes, last_practiced, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (language, vocabulary_id) DO UPDATE SET
    word = excluded.word,
    correct_count = excluded.correct_count,
    incorrect_count = excluded.incorrect_count,
    mastery_level = excluded.mastery_level,
    total_reviews = excluded.total_reviews,
    next_review_date = excluded.next_review_date,
    interval_days = excluded.interval_days,
    easiness_factor = excluded.easiness_factor,
    consecutive_correct_count = excluded.consecutive_correct_count,
    leitner_box = excluded.leitner_box,
    last_interval_days = excluded.last_interval_days,
    completed_modes = excluded.completed_modes,
    last_practiced = excluded.last_practiced,
    updated_at = CURRENT_TIMESTAMP
`, uuid.NewString(), p.Language, p.VocabularyID, p.Word, p.CorrectCount, p.IncorrectCount,
		masteryLevel(p.CorrectCount, p.IncorrectCount), p.TotalReviews, p.NextReviewDate,
		p.IntervalDays, p.EasinessFactor, p.ConsecutiveCorrectCount, p.LeitnerBox,
		p.LastIntervalDays, joinModes(p.CompletedModesInCycle), lastPracticed)
	if err != nil {
		log.Error("failed to upsert word progress: %v", err)
	}
	return err
}

func (r *progressRepository) GetAggregate(ctx context.Context, language string) (*models.UserPracticeProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("getting aggregate: language=%s", language)

	var agg models.UserPracticeProgress
	var lastPractice sql.NullTime
	err := r.db.QueryRowContext(ctx, `
SELECT id, language, total_sessions, total_words_practiced, current_streak, longest_streak,
       last_practice_date, created_at, updated_at
FROM practice_progress
WHERE language = ?
`, language).Scan(&agg.ID, &agg.Language, &agg.TotalSessions, &agg.TotalWordsPracticed,
		&agg.CurrentStreak, &agg.LongestStreak, &lastPractice, &agg.CreatedAt, &agg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no aggregate yet for language=%s", language)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get aggregate: %v", err)
		return nil, err
	}
	if lastPractice.Valid {
		agg.LastPracticeDate = lastPractice.Time
	}

	words, err := r.ListWordProgress(ctx, language)
	if err != nil {
		return nil, err
	}
	agg.WordsProgress = words
	return &agg, nil
}

func (r *progressRepository) UpsertAggregate(ctx context.Context, agg models.UserPracticeProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting aggregate: language=%s, sessions=%d, streak=%d",
		agg.Language, agg.TotalSessions, agg.CurrentStreak)

	id := agg.ID
	if id == "" {
		id = uuid.NewString()
	}
	var lastPractice any
	if !agg.LastPracticeDate.IsZero() {
		lastPractice = agg.LastPracticeDate
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO practice_progress (id, language, total_sessions, total_words_practiced,
    current_streak, longest_streak, last_practice_date, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (language) DO UPDATE SET
    total_sessions = excluded.total_sessions,
    total_words_practiced = excluded.total_words_practiced,
    current_streak = excluded.current_streak,
    longest_streak = excluded.longest_streak,
    last_practice_date = excluded.last_practice_date,
    updated_at = CURRENT_TIMESTAMP
`, id, agg.Language, agg.TotalSessions, agg.TotalWordsPracticed,
		agg.CurrentStreak, agg.LongestStreak, lastPractice)
	if err != nil {
		log.Error("failed to upsert aggregate: %v", err)
	}
	return err
}

func (r *progressRepository) RecountMastery(ctx context.Context, language string) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("recounting mastery: language=%s", language)

	_, err := r.db.ExecContext(ctx, `
UPDATE word_progress
SET mastery_level = MIN(5, CAST(ROUND(CAST(correct_count AS REAL) /
        NULLIF(correct_count + incorrect_count, 0) * 5.0) AS INTEGER)),
    updated_at = CURRENT_TIMESTAMP
WHERE language = ? AND correct_count + incorrect_count > 0
`, language)
	if err != nil {
		log.Error("failed to recount mastery: %v", err)
	}
	return err
}
