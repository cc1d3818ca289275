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

type settingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.LearningSettings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("getting learning settings")

	var s models.LearningSettings
	var algorithm string
	var showFailed int
	err := r.db.QueryRowContext(ctx, `
SELECT id, sr_algorithm, leitner_box_count, consecutive_correct_required,
       show_failed_words_in_session, new_words_per_day, daily_review_limit,
       created_at, updated_at
FROM learning_settings
LIMIT 1
`).Scan(&s.ID, &algorithm, &s.LeitnerBoxCount, &s.ConsecutiveCorrectRequired,
		&showFailed, &s.NewWordsPerDay, &s.DailyReviewLimit, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stored settings, using defaults")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, err
	}
	s.Algorithm = models.AlgorithmName(algorithm)
	s.ShowFailedWordsInSession = showFailed != 0
	return &s, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, s models.LearningSettings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("upserting learning settings: algorithm=%s, boxes=%d", s.Algorithm, s.LeitnerBoxCount)

	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO learning_settings (id, sr_algorithm, leitner_box_count,
    consecutive_correct_required, show_failed_words_in_session,
    new_words_per_day, daily_review_limit, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT (id) DO UPDATE SET
    sr_algorithm = excluded.sr_algorithm,
    leitner_box_count = excluded.leitner_box_count,
    consecutive_correct_required = excluded.consecutive_correct_required,
    show_failed_words_in_session = excluded.show_failed_words_in_session,
    new_words_per_day = excluded.new_words_per_day,
    daily_review_limit = excluded.daily_review_limit,
    updated_at = CURRENT_TIMESTAMP
`, id, string(s.Algorithm), s.LeitnerBoxCount, s.ConsecutiveCorrectRequired,
		boolToInt(s.ShowFailedWordsInSession), s.NewWordsPerDay, s.DailyReviewLimit)
	if err != nil {
		log.Error("failed to upsert settings: %v", err)
	}
	return err
}
