package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/lgomes/vocadrill/internal/errors"
	"github.com/lgomes/vocadrill/internal/games"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
	"github.com/lgomes/vocadrill/internal/services"
	"github.com/lgomes/vocadrill/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	progress *mocks.MockProgressRepository
	content  *mocks.MockContentRepository
	sessions *mocks.MockSessionRepository
	queue    *mocks.MockJobQueue
	service  services.SessionService
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		progress: new(mocks.MockProgressRepository),
		content:  new(mocks.MockContentRepository),
		sessions: new(mocks.MockSessionRepository),
		queue:    new(mocks.MockJobQueue),
	}
	f.service = services.NewSessionService(f.progress, f.content, f.sessions, f.queue, games.NewRegistry())
	return f
}

func trackedCard(id string, progress models.CardProgress) models.TrackedCard {
	progress.CardID = id
	return models.TrackedCard{
		Card:     models.CardContent{ID: id, Prompt: "p-" + id, Answer: "a-" + id, Source: models.SourceSystem},
		Progress: progress,
	}
}

func TestGetOptimalCards_Unauthenticated(t *testing.T) {
	f := newSessionFixture()

	_, err := f.service.GetOptimalCards(context.Background(), "", 10, models.ModeMixed)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeUnauthenticated, appErr.Code)
}

func TestGetOptimalCards_InvalidSize(t *testing.T) {
	f := newSessionFixture()

	_, err := f.service.GetOptimalCards(context.Background(), "user-1", 0, models.ModeMixed)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestGetOptimalCards_ReviewOnlyOrdersUrgentFirst(t *testing.T) {
	f := newSessionFixture()
	now := time.Now()

	tracked := []models.TrackedCard{
		trackedCard("due-1", models.CardProgress{
			SRSLevel: 4, TimesReviewed: 10, TimesCorrect: 9,
			NextReviewDate: now.Add(-time.Hour),
		}),
		trackedCard("crit-1", models.CardProgress{
			SRSLevel: 4, TimesReviewed: 10, TimesCorrect: 9,
			NextReviewDate: now.AddDate(0, 0, -5),
		}),
		trackedCard("weak-1", models.CardProgress{
			SRSLevel: 1, TimesReviewed: 4, TimesCorrect: 3,
			NextReviewDate: now.AddDate(0, 0, 3),
		}),
	}
	f.progress.On("ListTracked", mock.Anything, "user-1").Return(tracked, nil)

	plan, err := f.service.GetOptimalCards(context.Background(), "user-1", 3, models.ModeReviewOnly)
	require.NoError(t, err)

	require.Len(t, plan.Cards, 3)
	assert.Equal(t, "crit-1", plan.Cards[0].ID)
	assert.Equal(t, "due-1", plan.Cards[1].ID)
	assert.Equal(t, "weak-1", plan.Cards[2].ID)
	assert.Equal(t, models.TierCounts{Critical: 1, Due: 1, Weak: 1}, plan.Breakdown)

	// Review-only sessions never touch the content pools.
	f.content.AssertNotCalled(t, "NewSystemCards", mock.Anything, mock.Anything, mock.Anything)
	f.content.AssertNotCalled(t, "NewUserCards", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOptimalCards_MixedFillsNewFromBothPools(t *testing.T) {
	f := newSessionFixture()
	now := time.Now()

	// One due card: the light review load leaves most slots for new cards.
	tracked := []models.TrackedCard{
		trackedCard("due-1", models.CardProgress{
			SRSLevel: 4, TimesReviewed: 10, TimesCorrect: 9,
			NextReviewDate: now.Add(-time.Hour),
		}),
	}
	f.progress.On("ListTracked", mock.Anything, "user-1").Return(tracked, nil)
	f.progress.On("TrackedIDs", mock.Anything, "user-1").Return(map[string]bool{"due-1": true}, nil)

	system := []models.CardContent{
		{ID: "sys-1", Source: models.SourceSystem},
		{ID: "sys-2", Source: models.SourceSystem},
	}
	own := []models.CardContent{
		{ID: "own-1", Source: models.SourceUser},
	}
	f.content.On("NewSystemCards", mock.Anything, []string{"due-1"}, 8).Return(system, nil)
	f.content.On("NewUserCards", mock.Anything, "user-1", []string{"due-1"}, 6).Return(own, nil)

	plan, err := f.service.GetOptimalCards(context.Background(), "user-1", 10, models.ModeMixed)
	require.NoError(t, err)

	assert.Equal(t, models.TierCounts{Due: 1, New: 3}, plan.Breakdown)
	require.Len(t, plan.Cards, 4)
	// The due review leads, new cards trail in some shuffled order.
	assert.Equal(t, "due-1", plan.Cards[0].ID)
	rest := []string{plan.Cards[1].ID, plan.Cards[2].ID, plan.Cards[3].ID}
	assert.ElementsMatch(t, []string{"sys-1", "sys-2", "own-1"}, rest)

	f.content.AssertExpectations(t)
}

func TestFinalizeSession_RequiresGames(t *testing.T) {
	f := newSessionFixture()

	_, err := f.service.FinalizeSession(context.Background(), "user-1", models.MultiGameSession{
		ID:   "session-1",
		Mode: models.ModeMixed,
	})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}

func TestFinalizeSession_DuplicateReturnsConflict(t *testing.T) {
	f := newSessionFixture()
	f.sessions.On("Insert", mock.Anything, mock.Anything).Return(repository.ErrDuplicateSession)

	_, err := f.service.FinalizeSession(context.Background(), "user-1", models.MultiGameSession{
		ID:    "session-1",
		Mode:  models.ModeMixed,
		Games: []models.GameResult{{GameID: "quiz", Correct: 1, Total: 1}},
	})

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrCodeConflict, appErr.Code)
	f.progress.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestFinalizeSession_CrossGameSuccessEarnsPerfect(t *testing.T) {
	f := newSessionFixture()

	session := models.MultiGameSession{
		ID:   "session-1",
		Mode: models.ModeMixed,
		Cards: []models.CardContent{
			{ID: "card-1", Source: models.SourceSystem},
		},
		Games: []models.GameResult{
			{
				GameID:  "quiz",
				Answers: []models.CardAnswer{{CardID: "card-1", Correct: true, TimeSpentMs: 4500}},
				Correct: 1, Total: 1,
			},
			{
				GameID:  "spelling",
				Answers: []models.CardAnswer{{CardID: "card-1", Correct: true, TimeSpentMs: 5100}},
				Correct: 1, Total: 1,
			},
		},
	}

	existing := &models.CardProgress{
		UserID: "user-1", CardID: "card-1", Source: models.SourceSystem,
		EasinessFactor: 2.5, IntervalDays: 1, SRSLevel: 2, SRSScore: 40,
		TimesReviewed: 5, TimesCorrect: 4,
	}

	f.sessions.On("Insert", mock.Anything, mock.MatchedBy(func(rec models.SessionRecord) bool {
		return rec.ID == "session-1" && rec.GamesPlayed == 2 && rec.TotalCorrect == 2 && rec.TotalAnswers == 2
	})).Return(nil)
	f.progress.On("Get", mock.Anything, "user-1", "card-1").Return(existing, nil)
	f.progress.On("Upsert", mock.Anything, mock.MatchedBy(func(p models.CardProgress) bool {
		return p.CardID == "card-1" && p.SRSLevel == 3 && p.SRSScore == 52 && p.IntervalDays == 6
	})).Return(nil)
	f.sessions.On("InsertReviewHistory", mock.Anything, mock.MatchedBy(func(h models.ReviewHistory) bool {
		return h.CardID == "card-1" && h.Quality == 5 && h.AvgTimeMs == 4800
	})).Return(nil)
	f.queue.On("EnqueueStatsRefresh", "user-1").Return(nil)

	summary, err := f.service.FinalizeSession(context.Background(), "user-1", session)
	require.NoError(t, err)

	require.Len(t, summary.Updated, 1)
	assert.Equal(t, 5, summary.Updated[0].Quality)
	assert.False(t, summary.Updated[0].NewlyLearned)
	assert.Empty(t, summary.Failed)
	assert.Empty(t, summary.Ignored)
	assert.Equal(t, 2, summary.TotalCorrect)
	assert.Equal(t, 2, summary.TotalAnswers)

	f.progress.AssertExpectations(t)
	f.sessions.AssertExpectations(t)
	f.queue.AssertExpectations(t)
}

func TestFinalizeSession_UnregisteredGameGradesAtRecallCap(t *testing.T) {
	f := newSessionFixture()

	session := models.MultiGameSession{
		ID:   "session-1",
		Mode: models.ModeMixed,
		Cards: []models.CardContent{
			{ID: "card-1", Source: models.SourceSystem},
		},
		Games: []models.GameResult{
			{
				GameID:  "crossword",
				Answers: []models.CardAnswer{{CardID: "card-1", Correct: true, TimeSpentMs: 2000}},
				Correct: 1, Total: 1,
			},
		},
	}

	existing := &models.CardProgress{
		UserID: "user-1", CardID: "card-1", Source: models.SourceSystem,
		EasinessFactor: 2.5, IntervalDays: 1, SRSLevel: 2, SRSScore: 40,
		TimesReviewed: 5, TimesCorrect: 4,
	}

	f.sessions.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Get", mock.Anything, "user-1", "card-1").Return(existing, nil)
	// The full +12 perfect gain lands: a recognition-capped grade would have
	// stopped at +10.
	f.progress.On("Upsert", mock.Anything, mock.MatchedBy(func(p models.CardProgress) bool {
		return p.CardID == "card-1" && p.SRSScore == 52 && p.SRSLevel == 3
	})).Return(nil)
	f.sessions.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("EnqueueStatsRefresh", "user-1").Return(nil)

	summary, err := f.service.FinalizeSession(context.Background(), "user-1", session)
	require.NoError(t, err)

	require.Len(t, summary.Updated, 1)
	assert.Equal(t, 5, summary.Updated[0].Quality)

	f.progress.AssertExpectations(t)
}

func TestFinalizeSession_IgnoresAnswersOutsideThePlan(t *testing.T) {
	f := newSessionFixture()

	session := models.MultiGameSession{
		ID:   "session-1",
		Mode: models.ModeReviewOnly,
		Cards: []models.CardContent{
			{ID: "card-1", Source: models.SourceSystem},
		},
		Games: []models.GameResult{
			{
				GameID: "matching",
				Answers: []models.CardAnswer{
					{CardID: "card-1", Correct: false},
					{CardID: "stray", Correct: true},
				},
				Correct: 1, Total: 2,
			},
		},
	}

	f.sessions.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Get", mock.Anything, "user-1", "card-1").Return(nil, nil)
	f.progress.On("Upsert", mock.Anything, mock.MatchedBy(func(p models.CardProgress) bool {
		// A miss resets the level even on a card's first session.
		return p.CardID == "card-1" && p.SRSLevel == 0 && p.IntervalDays == 1
	})).Return(nil)
	f.sessions.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("EnqueueStatsRefresh", "user-1").Return(nil)

	summary, err := f.service.FinalizeSession(context.Background(), "user-1", session)
	require.NoError(t, err)

	assert.Equal(t, []string{"stray"}, summary.Ignored)
	require.Len(t, summary.Updated, 1)
	assert.Equal(t, 0, summary.Updated[0].Quality)
	assert.True(t, summary.Updated[0].NewlyLearned)

	f.progress.AssertNotCalled(t, "Get", mock.Anything, "user-1", "stray")
}

func TestFinalizeSession_PartialWriteFailure(t *testing.T) {
	f := newSessionFixture()

	session := models.MultiGameSession{
		ID:   "session-1",
		Mode: models.ModeMixed,
		Cards: []models.CardContent{
			{ID: "card-1", Source: models.SourceSystem},
			{ID: "card-2", Source: models.SourceSystem},
		},
		Games: []models.GameResult{
			{
				GameID: "quiz",
				Answers: []models.CardAnswer{
					{CardID: "card-1", Correct: true, TimeSpentMs: 2000},
					{CardID: "card-2", Correct: true, TimeSpentMs: 2500},
				},
				Correct: 2, Total: 2,
			},
		},
	}

	f.sessions.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Get", mock.Anything, "user-1", "card-1").Return(nil, nil)
	f.progress.On("Get", mock.Anything, "user-1", "card-2").Return(nil, assert.AnError)
	f.progress.On("Upsert", mock.Anything, mock.MatchedBy(func(p models.CardProgress) bool {
		return p.CardID == "card-1"
	})).Return(nil)
	f.sessions.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("EnqueueStatsRefresh", "user-1").Return(nil)

	summary, err := f.service.FinalizeSession(context.Background(), "user-1", session)
	require.NoError(t, err)

	require.Len(t, summary.Updated, 1)
	assert.Equal(t, "card-1", summary.Updated[0].CardID)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "card-2", summary.Failed[0].CardID)
}

func TestFinalizeSession_QueueFullIsNotFatal(t *testing.T) {
	f := newSessionFixture()

	session := models.MultiGameSession{
		ID:    "session-1",
		Mode:  models.ModeMixed,
		Cards: []models.CardContent{{ID: "card-1", Source: models.SourceSystem}},
		Games: []models.GameResult{
			{
				GameID:  "quiz",
				Answers: []models.CardAnswer{{CardID: "card-1", Correct: true, TimeSpentMs: 2000}},
				Correct: 1, Total: 1,
			},
		},
	}

	f.sessions.On("Insert", mock.Anything, mock.Anything).Return(nil)
	f.progress.On("Get", mock.Anything, "user-1", "card-1").Return(nil, nil)
	f.progress.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.sessions.On("InsertReviewHistory", mock.Anything, mock.Anything).Return(nil)
	f.queue.On("EnqueueStatsRefresh", "user-1").Return(assert.AnError)

	summary, err := f.service.FinalizeSession(context.Background(), "user-1", session)
	require.NoError(t, err)
	require.Len(t, summary.Updated, 1)
}
