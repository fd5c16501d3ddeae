package models_test

import (
	"testing"

	"github.com/lgomes/vocadrill/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestMultiGameSession_WithResultLeavesReceiverUntouched(t *testing.T) {
	base := models.MultiGameSession{
		ID:   "session-1",
		Mode: models.ModeMixed,
		Games: []models.GameResult{
			{GameID: "quiz", Correct: 3, Total: 4},
		},
	}

	grown := base.WithResult(models.GameResult{GameID: "matching", Correct: 2, Total: 2})

	assert.Len(t, base.Games, 1)
	assert.Len(t, grown.Games, 2)
	assert.Equal(t, "matching", grown.Games[1].GameID)

	// Appending to one copy must not leak into the other's backing array.
	again := base.WithResult(models.GameResult{GameID: "spelling", Correct: 1, Total: 1})
	assert.Equal(t, "matching", grown.Games[1].GameID)
	assert.Equal(t, "spelling", again.Games[1].GameID)
}
