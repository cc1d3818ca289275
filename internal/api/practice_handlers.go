package api

import (
	"net/http"

	"github.com/luka/vocabflash/internal/logger"
	"github.com/luka/vocabflash/internal/models"
)

func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	language := r.URL.Query().Get("language")
	limit := queryInt(r, "limit", s.DefaultQueueLimit)
	log.Debug("queue requested: language=%s, limit=%d", language, limit)

	words, err := s.PracticeService.BuildQueue(r.Context(), language, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"language": language,
		"count":    len(words),
		"words":    words,
	})
}

func (s *Server) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePracticeSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	summary, err := s.PracticeService.SubmitSession(r.Context(), req)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, summary)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.SessionFilter{
		Language:     q.Get("language"),
		CollectionID: q.Get("collection_id"),
		Mode:         q.Get("mode"),
		Limit:        queryInt(r, "limit", 0),
		Offset:       queryInt(r, "offset", 0),
	}

	sessions, err := s.PracticeService.ListSessions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.PracticeService.UpdateProgress(r.Context(), req); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	language := r.URL.Query().Get("language")

	progress, err := s.PracticeService.GetProgress(r.Context(), language)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, progress)
}
