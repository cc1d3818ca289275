package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/luka/vocabflash/internal/errors"
	"github.com/luka/vocabflash/internal/jobs"
	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
	"github.com/luka/vocabflash/internal/repository"
	"github.com/luka/vocabflash/internal/scheduler"
	"github.com/luka/vocabflash/internal/session"
	"github.com/luka/vocabflash/internal/stats"
)

// PracticeService orchestrates the scheduling engine, the session queue
// and the stats aggregator over the progress store.
type PracticeService interface {
	BuildQueue(ctx context.Context, language string, limit int) ([]models.WordProgress, error)
	SubmitSession(ctx context.Context, req models.CreatePracticeSessionRequest) (*models.SessionSummary, error)
	UpdateProgress(ctx context.Context, req models.UpdateProgressRequest) error
	GetProgress(ctx context.Context, language string) (*models.UserPracticeProgress, error)
	ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error)
}

type practiceService struct {
	progressRepo repository.ProgressRepository
	sessionRepo  repository.SessionRepository
	settingsRepo repository.SettingsRepository
	jobQueue     jobs.JobQueue
	queueCfg     session.Config
	now          func() time.Time
}

// NewPracticeService creates a new PracticeService
func NewPracticeService(
	progressRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
	settingsRepo repository.SettingsRepository,
	jobQueue jobs.JobQueue,
	queueCfg session.Config,
) PracticeService {
	return &practiceService{
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		jobQueue:     jobQueue,
		queueCfg:     queueCfg,
		now:          time.Now,
	}
}

// settings returns the stored learning settings, falling back to defaults.
func (s *practiceService) settings(ctx context.Context) models.LearningSettings {
	log := logger.FromContext(ctx)
	stored, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Warn("failed to load learning settings, using defaults: %v", err)
		return models.DefaultLearningSettings()
	}
	if stored == nil {
		return models.DefaultLearningSettings()
	}
	return *stored
}

func (s *practiceService) BuildQueue(ctx context.Context, language string, limit int) ([]models.WordProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("building practice queue: language=%s, limit=%d", language, limit)

	if language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}

	all, err := s.progressRepo.ListWordProgress(ctx, language)
	if err != nil {
		log.Error("failed to list word progress: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}

	cfg := s.queueCfg
	st := s.settings(ctx)
	if st.NewWordsPerDay > 0 {
		cfg.MaxNewWords = st.NewWordsPerDay
	}
	if !st.ShowFailedWordsInSession {
		// With retries disabled a missed word is surfaced once and then
		// waits for its next due date.
		cfg.RetryCap = 1
	}
	if limit <= 0 && st.DailyReviewLimit > 0 {
		limit = st.DailyReviewLimit
	}

	queue := session.Build(all, s.now(), limit, cfg)

	byID := make(map[string]models.WordProgress, len(all))
	for _, p := range all {
		byID[p.VocabularyID] = p
	}
	ordered := make([]models.WordProgress, 0, queue.Len())
	for _, id := range queue.Order() {
		ordered = append(ordered, byID[id])
	}

	log.Debug("queue built: %d words", len(ordered))
	return ordered, nil
}

func (s *practiceService) SubmitSession(ctx context.Context, req models.CreatePracticeSessionRequest) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting session: language=%s, collection=%s, results=%d",
		req.Language, req.CollectionID, len(req.Results))

	if req.Language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}
	if !req.Mode.Valid() {
		return nil, errors.NewValidationError("mode", "must be flashcard, fillword or multiplechoice")
	}

	now := s.now()
	settings := s.settings(ctx)
	alg := scheduler.ForSettings(settings)

	aggregate, err := s.progressRepo.GetAggregate(ctx, req.Language)
	if err != nil {
		log.Error("failed to load aggregate: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}
	if aggregate == nil {
		aggregate = &models.UserPracticeProgress{Language: req.Language, CreatedAt: now}
	}

	// The word cache starts from the aggregate loaded above, so the
	// first-time-practiced count in ApplySession sees the pre-session
	// state even though word rows are written as we go.
	cache := make(map[string]models.WordProgress, len(aggregate.WordsProgress))
	for _, p := range aggregate.WordsProgress {
		cache[p.VocabularyID] = p
	}

	scheduled, failed := 0, 0
	for _, result := range req.Results {
		updated, err := s.applyResult(ctx, cache, result, req.Language, alg, now)
		if err != nil {
			// One bad result never aborts the session; it is reported
			// in the summary instead.
			log.Warn("skipping result for vocabulary_id=%q: %v", result.VocabularyID, err)
			failed++
			continue
		}
		cache[updated.VocabularyID] = updated
		scheduled++
	}

	practiceSession := models.PracticeSession{
		ID:              uuid.NewString(),
		CollectionID:    req.CollectionID,
		Mode:            req.Mode,
		Language:        req.Language,
		Topic:           req.Topic,
		Level:           req.Level,
		Results:         req.Results,
		TotalQuestions:  len(req.Results),
		CorrectAnswers:  countCorrect(req.Results),
		StartedAt:       now.Add(-time.Duration(req.DurationSeconds) * time.Second),
		CompletedAt:     now,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.sessionRepo.Insert(ctx, practiceSession); err != nil {
		log.Error("failed to persist session: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}

	updatedAgg := stats.ApplySession(*aggregate, practiceSession, now)
	if err := s.progressRepo.UpsertAggregate(ctx, updatedAgg); err != nil {
		log.Error("failed to persist aggregate: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}

	if s.jobQueue != nil {
		if err := s.jobQueue.EnqueueMasteryRecount(req.Language); err != nil {
			log.Warn("failed to enqueue mastery recount: %v", err)
			// Derived data only; the session itself is already durable.
		}
	}

	log.Info("session submitted: id=%s, scheduled=%d, failed=%d",
		practiceSession.ID, scheduled, failed)
	return &models.SessionSummary{
		SessionID: practiceSession.ID,
		Scheduled: scheduled,
		Failed:    failed,
	}, nil
}

// applyResult advances one word through the configured algorithm and
// persists the outcome.
func (s *practiceService) applyResult(
	ctx context.Context,
	cache map[string]models.WordProgress,
	result models.PracticeResult,
	language string,
	alg scheduler.Algorithm,
	now time.Time,
) (models.WordProgress, error) {
	if result.VocabularyID == "" {
		return models.WordProgress{}, errors.NewValidationError("vocabulary_id", "must not be empty")
	}

	progress, ok := cache[result.VocabularyID]
	if !ok {
		// First practice of this word: created lazily, due immediately.
		progress = models.NewWordProgress(result.VocabularyID, result.Word, language, now)
	}

	updated, err := alg.Advance(progress, scheduler.Outcome{Correct: result.Correct, Mode: result.Mode}, now)
	if err != nil {
		return models.WordProgress{}, err
	}

	if err := s.progressRepo.UpsertWordProgress(ctx, updated); err != nil {
		return models.WordProgress{}, errors.NewStoreUnavailableError(err)
	}
	return updated, nil
}

func (s *practiceService) UpdateProgress(ctx context.Context, req models.UpdateProgressRequest) error {
	log := logger.FromContext(ctx)
	log.Debug("updating progress: language=%s, vocabulary_id=%s", req.Language, req.VocabularyID)

	if req.Language == "" {
		return errors.NewValidationError("language", "must not be empty")
	}
	if req.VocabularyID == "" {
		return errors.NewValidationError("vocabulary_id", "must not be empty")
	}

	now := s.now()
	nextReview, err := time.Parse(time.RFC3339, req.NextReviewDate)
	if err != nil {
		// Unparseable dates from older clients schedule the word as due
		// now rather than rejecting the whole update.
		log.Warn("unparseable next_review_date %q, scheduling immediately", req.NextReviewDate)
		nextReview = now
	}

	var modes []models.PracticeMode
	for _, raw := range req.CompletedModesInCycle {
		mode, err := models.ParseMode(raw)
		if err != nil {
			return errors.NewValidationError("completed_modes_in_cycle", err.Error())
		}
		modes = append(modes, mode)
	}

	progress := models.WordProgress{
		VocabularyID:            req.VocabularyID,
		Word:                    req.Word,
		Language:                req.Language,
		CorrectCount:            req.CorrectCount,
		IncorrectCount:          req.IncorrectCount,
		LastPracticed:           now,
		NextReviewDate:          nextReview,
		IntervalDays:            req.IntervalDays,
		EasinessFactor:          req.EasinessFactor,
		ConsecutiveCorrectCount: req.ConsecutiveCorrectCount,
		LeitnerBox:              req.LeitnerBox,
		LastIntervalDays:        req.LastIntervalDays,
		TotalReviews:            req.TotalReviews,
		CompletedModesInCycle:   modes,
	}
	scheduler.Sanitize(&progress, s.settings(ctx).LeitnerBoxCount)

	if err := s.progressRepo.UpsertWordProgress(ctx, progress); err != nil {
		log.Error("failed to upsert word progress: %v", err)
		return errors.NewStoreUnavailableError(err)
	}

	// Keep the distinct-words counter in step with the progress table,
	// the way the original aggregate row tracked it.
	aggregate, err := s.progressRepo.GetAggregate(ctx, req.Language)
	if err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	if aggregate == nil {
		aggregate = &models.UserPracticeProgress{Language: req.Language, CreatedAt: now}
		words, err := s.progressRepo.ListWordProgress(ctx, req.Language)
		if err != nil {
			return errors.NewStoreUnavailableError(err)
		}
		aggregate.WordsProgress = words
	}
	aggregate.TotalWordsPracticed = len(aggregate.WordsProgress)
	if err := s.progressRepo.UpsertAggregate(ctx, *aggregate); err != nil {
		return errors.NewStoreUnavailableError(err)
	}
	return nil
}

func (s *practiceService) GetProgress(ctx context.Context, language string) (*models.UserPracticeProgress, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting progress: language=%s", language)

	if language == "" {
		return nil, errors.NewValidationError("language", "must not be empty")
	}
	aggregate, err := s.progressRepo.GetAggregate(ctx, language)
	if err != nil {
		log.Error("failed to get aggregate: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}
	if aggregate == nil {
		return nil, errors.NewNotFoundError("practice progress", language)
	}
	return aggregate, nil
}

func (s *practiceService) ListSessions(ctx context.Context, filter models.SessionFilter) ([]models.PracticeSession, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing sessions: language=%s", filter.Language)

	sessions, err := s.sessionRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, errors.NewStoreUnavailableError(err)
	}
	return sessions, nil
}

func countCorrect(results []models.PracticeResult) int {
	n := 0
	for _, r := range results {
		if r.Correct {
			n++
		}
	}
	return n
}
