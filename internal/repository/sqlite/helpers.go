package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
)

// Helper functions shared across repository implementations

func tx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	log := logger.FromContext(ctx).WithPrefix("repo")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		log.Debug("transaction rolled back due to error: %v", err)
		return err
	}
	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction: %v", err)
		return err
	}
	return nil
}

// joinModes serializes the completed-modes set for the denormalized
// completed_modes column.
func joinModes(modes []models.PracticeMode) string {
	if len(modes) == 0 {
		return ""
	}
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = string(m)
	}
	return strings.Join(parts, ",")
}

// splitModes parses the completed_modes column, dropping anything that is
// not a recognized mode. Bad values can arrive from older clients; they
// are ignored rather than failing the read.
func splitModes(s string) []models.PracticeMode {
	if s == "" {
		return nil
	}
	var modes []models.PracticeMode
	for _, part := range strings.Split(s, ",") {
		if m, err := models.ParseMode(strings.TrimSpace(part)); err == nil {
			modes = append(modes, m)
		}
	}
	return modes
}

// masteryLevel derives the legacy 0-5 indicator from lifetime counters.
func masteryLevel(correct, incorrect int) int {
	total := correct + incorrect
	if total == 0 {
		return 0
	}
	level := int(float64(correct)/float64(total)*5.0 + 0.5)
	if level > 5 {
		level = 5
	}
	return level
}
