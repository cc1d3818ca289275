package api

import (
	"github.com/luka/vocabflash/internal/db"
	"github.com/luka/vocabflash/internal/services"
)

type Server struct {
	DB              *db.DB
	PracticeService services.PracticeService
	StatsService    services.StatsService
	SettingsService services.SettingsService

	// DefaultQueueLimit applies when a queue request has no limit param.
	DefaultQueueLimit int
}
