package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/api/health", s.handleHealth)
	r.Get("/api/ready", s.handleReady)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/api/session/cards", s.handleSessionCards)
		r.Post("/api/session/finalize", s.handleFinalizeSession)
		r.Get("/api/cards", s.handleListCards)
		r.Post("/api/cards", s.handleCreateCard)
		r.Get("/api/stats", s.handleStats)
	})

	return r
}
