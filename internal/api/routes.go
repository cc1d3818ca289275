package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/ready", s.handleReady)

		r.Route("/practice", func(r chi.Router) {
			r.Get("/queue", s.handleQueue)
			r.Post("/sessions", s.handleSubmitSession)
			r.Get("/sessions", s.handleListSessions)
			r.Post("/progress", s.handleUpdateProgress)
			r.Get("/progress", s.handleGetProgress)
			r.Get("/stats", s.handleStats)
		})

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)
	})

	return r
}
