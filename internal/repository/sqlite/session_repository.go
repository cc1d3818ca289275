package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository implementation
func NewSessionRepository(db *sql.DB) repository.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Insert(ctx context.Context, session models.PracticeSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("inserting session: id=%s, language=%s, results=%d",
		session.ID, session.Language, len(session.Results))

	return tx(ctx, r.db, func(t *sql.Tx) error {
		_, err := t.ExecContext(ctx, `
INSERT INTO practice_sessions (id, collection_id, mode, language, topic, level,
    total_questions, correct_answers, started_at, completed_at, duration_seconds)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, session.ID, session.CollectionID, string(session.Mode), session.Language,
			nullIfEmpty(session.Topic), nullIfEmpty(session.Level),
			session.TotalQuestions, session.CorrectAnswers,
			session.StartedAt, session.CompletedAt, session.DurationSeconds)
		if err != nil {
			return err
		}

		for i, result := range session.Results {
			_, err := t.ExecContext(ctx, `
INSERT INTO practice_results (id, session_id, vocabulary_id, word, correct,
    practice_mode, time_spent_seconds, order_index)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, uuid.NewString(), session.ID, result.VocabularyID, result.Word,
				boolToInt(result.Correct), string(result.Mode), result.TimeSpentSeconds, i)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("getting session: id=%s", id)

	session, err := r.scanSession(ctx, r.db.QueryRowContext(ctx, `
SELECT id, collection_id, mode, language, topic, level, total_questions,
       correct_answers, started_at, completed_at, duration_seconds
FROM practice_sessions
WHERE id = ?
`, id))
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("session not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}

	if err := r.loadResults(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *sessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx).WithPrefix("session_repo")
	log.Debug("listing sessions: language=%s, collection_id=%s, mode=%s",
		filter.Language, filter.CollectionID, filter.Mode)

	query := sqlBuilder.Select(
		"id", "collection_id", "mode", "language", "topic", "level",
		"total_questions", "correct_answers", "started_at", "completed_at", "duration_seconds",
	).From("practice_sessions")

	// Dynamic WHERE clauses
	if filter.Language != "" {
		query = query.Where(squirrel.Eq{"language": filter.Language})
	}
	if filter.CollectionID != "" {
		query = query.Where(squirrel.Eq{"collection_id": filter.CollectionID})
	}
	if filter.Mode != "" {
		query = query.Where(squirrel.Eq{"mode": filter.Mode})
	}

	query = query.OrderBy("completed_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.PracticeSession
	for rows.Next() {
		session, err := r.scanSession(ctx, rows)
		if err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range sessions {
		if err := r.loadResults(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, nil
}

func (r *sessionRepository) scanSession(ctx context.Context, row interface{ Scan(...any) error }) (*models.PracticeSession, error) {
	var s models.PracticeSession
	var mode string
	var topic, level sql.NullString
	err := row.Scan(&s.ID, &s.CollectionID, &mode, &s.Language, &topic, &level,
		&s.TotalQuestions, &s.CorrectAnswers, &s.StartedAt, &s.CompletedAt, &s.DurationSeconds)
	if err != nil {
		return nil, err
	}
	s.Mode = models.PracticeMode(mode)
	s.Topic = topic.String
	s.Level = level.String
	return &s, nil
}

func (r *sessionRepository) loadResults(ctx context.Context, session *models.PracticeSession) error {
	log := logger.FromContext(ctx).WithPrefix("session_repo")

	rows, err := r.db.QueryContext(ctx, `
SELECT vocabulary_id, word, correct, practice_mode, time_spent_seconds
FROM practice_results
WHERE session_id = ?
ORDER BY order_index ASC
`, session.ID)
	if err != nil {
		log.Error("failed to load session results: %v", err)
		return err
	}
	defer rows.Close()

	var results []models.PracticeResult
	for rows.Next() {
		var res models.PracticeResult
		var correct int
		var mode string
		if err := rows.Scan(&res.VocabularyID, &res.Word, &correct, &mode, &res.TimeSpentSeconds); err != nil {
			log.Error("failed to scan result row: %v", err)
			return err
		}
		res.Correct = correct != 0
		res.Mode = models.PracticeMode(mode)
		results = append(results, res)
	}
	session.Results = results
	return rows.Err()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
