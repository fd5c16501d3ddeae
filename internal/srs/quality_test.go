package srs_test

import (
	"testing"

	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/srs"
	"github.com/stretchr/testify/assert"
)

func TestMapQuality_AnyMissFailsTheCard(t *testing.T) {
	o := models.CardOutcome{
		CardID: "c1",
		Answers: []models.CardAnswer{
			{CardID: "c1", Correct: true, TimeSpentMs: 1000},
			{CardID: "c1", Correct: false, TimeSpentMs: 1000},
		},
		GameIDs: []string{"quiz", "matching"},
	}
	assert.Equal(t, srs.QualityAgain, srs.MapQuality(o))
}

func TestMapQuality_FastAndCorrectIsPerfect(t *testing.T) {
	o := models.CardOutcome{
		CardID: "c1",
		Answers: []models.CardAnswer{
			{CardID: "c1", Correct: true, TimeSpentMs: 1500},
			{CardID: "c1", Correct: true, TimeSpentMs: 2000},
		},
		GameIDs: []string{"quiz"},
	}
	assert.Equal(t, srs.QualityPerfect, srs.MapQuality(o))
}

func TestMapQuality_CrossGameOverridesSpeed(t *testing.T) {
	// Correct in two different games, slow on average: still perfect.
	o := models.CardOutcome{
		CardID: "c1",
		Answers: []models.CardAnswer{
			{CardID: "c1", Correct: true, TimeSpentMs: 4000},
			{CardID: "c1", Correct: true, TimeSpentMs: 4000},
		},
		GameIDs: []string{"quiz", "word-search"},
	}
	assert.Equal(t, srs.QualityPerfect, srs.MapQuality(o))
}

func TestMapQuality_SlowSingleGameIsGood(t *testing.T) {
	o := models.CardOutcome{
		CardID: "c1",
		Answers: []models.CardAnswer{
			{CardID: "c1", Correct: true, TimeSpentMs: 5000},
		},
		GameIDs: []string{"quiz"},
	}
	assert.Equal(t, srs.QualityGood, srs.MapQuality(o))
}

func TestMapQuality_NoTimingDataIsGood(t *testing.T) {
	o := models.CardOutcome{
		CardID: "c1",
		Answers: []models.CardAnswer{
			{CardID: "c1", Correct: true},
		},
		GameIDs: []string{"matching"},
	}
	assert.Equal(t, srs.QualityGood, srs.MapQuality(o))
}

func TestSessionCap_RecallRaisesCeiling(t *testing.T) {
	tierOf := func(id string) int {
		if id == "matching" {
			return 1
		}
		return 2
	}

	assert.Equal(t, srs.CapRecognition, srs.SessionCap([]string{"matching"}, tierOf))
	assert.Equal(t, srs.CapRecall, srs.SessionCap([]string{"matching", "quiz"}, tierOf))
}

func TestSessionCap_UnknownGameDefaultsToRecall(t *testing.T) {
	tierOf := func(string) int { return 2 }
	assert.Equal(t, srs.CapRecall, srs.SessionCap([]string{"brand-new-game"}, tierOf))
}
