package api

import (
	"net/http"
	"strconv"

	"github.com/lgomes/vocadrill/internal/errors"
	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
)

func (s *Server) handleSessionCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	userID := userIDFromContext(r.Context())

	size := s.Config.DefaultSessionSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("size", "must be an integer"))
			return
		}
		size = parsed
	}
	if size > s.Config.MaxSessionSize {
		handleError(w, r, errors.NewValidationError("size", "exceeds the maximum session size"))
		return
	}

	mode := models.ModeMixed
	if raw := r.URL.Query().Get("mode"); raw != "" {
		mode = models.SessionMode(raw)
	}

	log.Debug("building session plan: size=%d, mode=%s", size, mode)
	plan, err := s.SessionService.GetOptimalCards(r.Context(), userID, size, mode)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, plan)
}

type finalizeRequest struct {
	SessionID string               `json:"id"`
	Mode      models.SessionMode   `json:"mode"`
	Cards     []models.CardContent `json:"cards"`
	GameIDs   []string             `json:"game_ids"`
	Games     []models.GameResult  `json:"games"`
}

func (s *Server) handleFinalizeSession(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req finalizeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session := models.MultiGameSession{
		ID:      req.SessionID,
		Mode:    req.Mode,
		Cards:   req.Cards,
		GameIDs: req.GameIDs,
	}
	for _, g := range req.Games {
		session = session.WithResult(g)
	}

	summary, err := s.SessionService.FinalizeSession(r.Context(), userID, session)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
