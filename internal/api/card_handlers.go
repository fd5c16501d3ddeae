package api

import (
	"net/http"

	"github.com/lgomes/vocadrill/internal/models"
)

type createCardRequest struct {
	Prompt       string `json:"prompt"`
	Answer       string `json:"answer"`
	PartOfSpeech string `json:"part_of_speech"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	var req createCardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.CardService.CreateUserCard(r.Context(), userID, req.Prompt, req.Answer, req.PartOfSpeech)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	cards, err := s.CardService.ListUserCards(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.CardContent{}
	}
	writeJSON(w, r, http.StatusOK, cards)
}
