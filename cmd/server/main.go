package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luka/vocabflash/internal/api"
	"github.com/luka/vocabflash/internal/config"
	"github.com/luka/vocabflash/internal/db"
	"github.com/luka/vocabflash/internal/jobs"
	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/repository/sqlite"
	"github.com/luka/vocabflash/internal/services"
	"github.com/luka/vocabflash/internal/session"
	"github.com/luka/vocabflash/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("VocabFlash Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_retry_cap=%d", cfg.SessionRetryCap)
	log.Debug("session_spacing_factor=%d", cfg.SessionSpacing)
	log.Debug("new_words_per_session=%d", cfg.NewWordsPerSession)
	log.Debug("new_word_interleave=%d", cfg.NewWordInterleave)
	log.Debug("default_queue_limit=%d", cfg.DefaultQueueLimit)
	log.Debug("stats_worker_count=%d", cfg.StatsWorkerCount)
	log.Debug("stats_queue_size=%d", cfg.StatsQueueSize)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	progressRepo := sqlite.NewProgressRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)
	settingsRepo := sqlite.NewSettingsRepository(database.DB)

	// Initialize worker pool for background stat recounts
	statsPool := worker.NewPool(cfg.StatsWorkerCount, cfg.StatsQueueSize)
	jobQueue := jobs.NewWorkerQueue(statsPool, progressRepo)

	queueCfg := session.Config{
		RetryCap:          cfg.SessionRetryCap,
		SpacingFactor:     cfg.SessionSpacing,
		MaxNewWords:       cfg.NewWordsPerSession,
		NewWordInterleave: cfg.NewWordInterleave,
	}

	// Initialize services
	practiceService := services.NewPracticeService(progressRepo, sessionRepo, settingsRepo, jobQueue, queueCfg)
	statsService := services.NewStatsService(progressRepo, settingsRepo)
	settingsService := services.NewSettingsService(settingsRepo)

	srv := &api.Server{
		DB:                database,
		PracticeService:   practiceService,
		StatsService:      statsService,
		SettingsService:   settingsService,
		DefaultQueueLimit: cfg.DefaultQueueLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	statsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Wait for workers to finish
	statsPool.Stop()

	log.Info("===========================================")
	log.Info("VocabFlash Server Stopped")
	log.Info("===========================================")
}
