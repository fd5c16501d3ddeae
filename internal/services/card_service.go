package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lgomes/vocadrill/internal/errors"
	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
)

// CardService handles card authoring
type CardService interface {
	CreateUserCard(ctx context.Context, userID, prompt, answer, partOfSpeech string) (*models.CardContent, error)
	ListUserCards(ctx context.Context, userID string) ([]models.CardContent, error)
}

type cardService struct {
	contentRepo repository.ContentRepository
}

// NewCardService creates a new CardService
func NewCardService(contentRepo repository.ContentRepository) CardService {
	return &cardService{contentRepo: contentRepo}
}

func (s *cardService) CreateUserCard(ctx context.Context, userID, prompt, answer, partOfSpeech string) (*models.CardContent, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewUnauthenticatedError()
	}
	prompt = strings.TrimSpace(prompt)
	answer = strings.TrimSpace(answer)
	if prompt == "" {
		return nil, errors.NewValidationError("prompt", "must not be empty")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "must not be empty")
	}

	card := models.CardContent{
		ID:           uuid.NewString(),
		Prompt:       prompt,
		Answer:       answer,
		PartOfSpeech: strings.TrimSpace(partOfSpeech),
		Source:       models.SourceUser,
		CreatedAt:    time.Now(),
	}
	if err := s.contentRepo.InsertUserCard(ctx, userID, card); err != nil {
		log.Error("failed to insert user card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("user card created: id=%s, user_id=%s", card.ID, userID)
	return &card, nil
}

func (s *cardService) ListUserCards(ctx context.Context, userID string) ([]models.CardContent, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		return nil, errors.NewUnauthenticatedError()
	}
	cards, err := s.contentRepo.ListUserCards(ctx, userID)
	if err != nil {
		log.Error("failed to list user cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}
