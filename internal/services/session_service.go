package services

import (
	"context"
	stderrors "errors"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lgomes/vocadrill/internal/errors"
	"github.com/lgomes/vocadrill/internal/games"
	"github.com/lgomes/vocadrill/internal/jobs"
	"github.com/lgomes/vocadrill/internal/logger"
	"github.com/lgomes/vocadrill/internal/models"
	"github.com/lgomes/vocadrill/internal/repository"
	"github.com/lgomes/vocadrill/internal/srs"
)

const (
	// Selection score assigned to cards the user has never seen. Keeps them
	// below every review tier so reviews always win the slot contest.
	newCardScore = 10

	// Upper bound on concurrent progress writes during finalization.
	maxConcurrentUpdates = 4
)

// SessionService builds study sessions and applies their results
type SessionService interface {
	// GetOptimalCards selects and orders up to totalSlots cards for the
	// user's next session.
	GetOptimalCards(ctx context.Context, userID string, totalSlots int, mode models.SessionMode) (*models.SessionPlan, error)
	// FinalizeSession aggregates the answers of a finished multi-game
	// session and writes the resulting progress updates.
	FinalizeSession(ctx context.Context, userID string, session models.MultiGameSession) (*models.SessionSummary, error)
}

type sessionService struct {
	progressRepo repository.ProgressRepository
	contentRepo  repository.ContentRepository
	sessionRepo  repository.SessionRepository
	queue        jobs.JobQueue
	registry     *games.Registry

	rngMu sync.Mutex
	rng   *rand.Rand

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewSessionService creates a new SessionService
func NewSessionService(
	progressRepo repository.ProgressRepository,
	contentRepo repository.ContentRepository,
	sessionRepo repository.SessionRepository,
	queue jobs.JobQueue,
	registry *games.Registry,
) SessionService {
	return &sessionService{
		progressRepo: progressRepo,
		contentRepo:  contentRepo,
		sessionRepo:  sessionRepo,
		queue:        queue,
		registry:     registry,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:        map[string]*sync.Mutex{},
	}
}

func (s *sessionService) GetOptimalCards(ctx context.Context, userID string, totalSlots int, mode models.SessionMode) (*models.SessionPlan, error) {
	log := logger.FromContext(ctx)
	log.Debug("selecting session cards: user_id=%s, slots=%d, mode=%s", userID, totalSlots, mode)

	if userID == "" {
		return nil, errors.NewUnauthenticatedError()
	}
	if totalSlots <= 0 {
		return nil, errors.NewValidationError("size", "must be a positive number of cards")
	}
	if mode != models.ModeReviewOnly && mode != models.ModeMixed {
		return nil, errors.NewValidationError("mode", "must be review or mixed")
	}

	tracked, err := s.progressRepo.ListTracked(ctx, userID)
	if err != nil {
		log.Error("failed to list tracked cards: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()
	var critical, due, weak []models.ScoredCard
	var criticalCount, dueCount int
	for _, t := range tracked {
		tier, score, overdue, ok := srs.Classify(t.Progress, now)
		if !ok {
			continue
		}
		progress := t.Progress
		sc := models.ScoredCard{
			Card:        t.Card,
			Progress:    &progress,
			Tier:        tier,
			Score:       score,
			DaysOverdue: overdue,
		}
		switch tier {
		case models.TierCritical:
			critical = append(critical, sc)
			criticalCount++
		case models.TierDue:
			due = append(due, sc)
			dueCount++
		default:
			weak = append(weak, sc)
		}
	}

	allocation := srs.Allocate(criticalCount, dueCount)
	reviewSlots := allocation.ReviewSlots(totalSlots)
	if mode == models.ModeReviewOnly {
		reviewSlots = totalSlots
	}

	selected := pickReviewCards(critical, due, weak, reviewSlots)
	breakdown := models.TierCounts{}
	for _, sc := range selected {
		switch sc.Tier {
		case models.TierCritical:
			breakdown.Critical++
		case models.TierDue:
			breakdown.Due++
		case models.TierWeak:
			breakdown.Weak++
		}
	}

	if mode == models.ModeMixed {
		newSlots := totalSlots - reviewSlots
		if newSlots > 0 {
			fresh, err := s.fillNewCards(ctx, userID, newSlots)
			if err != nil {
				return nil, err
			}
			for _, card := range fresh {
				selected = append(selected, models.ScoredCard{
					Card:  card,
					Tier:  models.TierNew,
					Score: newCardScore,
				})
				breakdown.New++
			}
		}
	}

	s.rngMu.Lock()
	ordered := srs.Sequence(selected, s.rng)
	s.rngMu.Unlock()

	cards := make([]models.CardContent, 0, len(ordered))
	for _, sc := range ordered {
		cards = append(cards, sc.Card)
	}

	log.Info("session plan ready: user_id=%s, cards=%d (critical=%d, due=%d, weak=%d, new=%d)",
		userID, len(cards), breakdown.Critical, breakdown.Due, breakdown.Weak, breakdown.New)
	return &models.SessionPlan{Cards: cards, Breakdown: breakdown}, nil
}

// pickReviewCards fills up to slots review cards, urgent tiers first and
// higher scores first within a tier. A short pool never borrows from a
// lower tier's slot budget.
func pickReviewCards(critical, due, weak []models.ScoredCard, slots int) []models.ScoredCard {
	byScore := func(cards []models.ScoredCard) {
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Score > cards[j].Score
		})
	}
	byScore(critical)
	byScore(due)
	byScore(weak)

	selected := make([]models.ScoredCard, 0, slots)
	for _, pool := range [][]models.ScoredCard{critical, due, weak} {
		for _, sc := range pool {
			if len(selected) >= slots {
				return selected
			}
			selected = append(selected, sc)
		}
	}
	return selected
}

func (s *sessionService) fillNewCards(ctx context.Context, userID string, slots int) ([]models.CardContent, error) {
	log := logger.FromContext(ctx)

	trackedIDs, err := s.progressRepo.TrackedIDs(ctx, userID)
	if err != nil {
		log.Error("failed to list tracked card ids: %v", err)
		return nil, errors.NewInternalError(err)
	}
	excludeIDs := make([]string, 0, len(trackedIDs))
	for id := range trackedIDs {
		excludeIDs = append(excludeIDs, id)
	}
	sort.Strings(excludeIDs)

	fresh, err := s.contentRepo.NewSystemCards(ctx, excludeIDs, slots)
	if err != nil {
		log.Error("failed to fetch new system cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(fresh) < slots {
		own, err := s.contentRepo.NewUserCards(ctx, userID, excludeIDs, slots-len(fresh))
		if err != nil {
			log.Error("failed to fetch new user cards: %v", err)
			return nil, errors.NewInternalError(err)
		}
		fresh = append(fresh, own...)
	}
	return fresh, nil
}

func (s *sessionService) FinalizeSession(ctx context.Context, userID string, session models.MultiGameSession) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("finalizing session: user_id=%s, session_id=%s, games=%d", userID, session.ID, len(session.Games))

	if userID == "" {
		return nil, errors.NewUnauthenticatedError()
	}
	if session.ID == "" {
		return nil, errors.NewValidationError("sessionId", "must not be empty")
	}
	if len(session.Games) == 0 {
		return nil, errors.NewValidationError("games", "at least one game result is required")
	}
	for _, g := range session.Games {
		if !s.registry.Known(g.GameID) {
			log.Warn("unregistered game id %q in session %s, grading at the recall tier", g.GameID, session.ID)
		}
	}

	// One finalization per user at a time keeps progress reads and writes
	// from interleaving across duplicate submissions.
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now()
	totalCorrect, totalAnswers := 0, 0
	for _, g := range session.Games {
		totalCorrect += g.Correct
		totalAnswers += g.Total
	}

	err := s.sessionRepo.Insert(ctx, models.SessionRecord{
		ID:           session.ID,
		UserID:       userID,
		Mode:         session.Mode,
		CardCount:    len(session.Cards),
		GamesPlayed:  len(session.Games),
		TotalCorrect: totalCorrect,
		TotalAnswers: totalAnswers,
		FinalizedAt:  now,
	})
	if stderrors.Is(err, repository.ErrDuplicateSession) {
		return nil, errors.NewConflictError("session has already been finalized")
	}
	if err != nil {
		log.Error("failed to record session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	outcomes, ignored := aggregateOutcomes(session)
	updates, failures := s.applyOutcomes(ctx, userID, session, outcomes, now)

	for _, u := range updates {
		h := models.ReviewHistory{
			ID:         uuid.NewString(),
			UserID:     userID,
			CardID:     u.CardID,
			SessionID:  session.ID,
			Quality:    u.Quality,
			AvgTimeMs:  avgTimeMs(outcomes[u.CardID].Answers),
			ReviewedAt: now,
		}
		if err := s.sessionRepo.InsertReviewHistory(ctx, h); err != nil {
			log.Warn("failed to record review history for card %s: %v", u.CardID, err)
		}
	}

	if err := s.queue.EnqueueStatsRefresh(userID); err != nil {
		log.Warn("failed to enqueue stats refresh: %v", err)
	}

	learned := 0
	for _, u := range updates {
		if u.NewlyLearned {
			learned++
		}
	}
	summary := &models.SessionSummary{
		SessionID:    session.ID,
		Updated:      updates,
		Failed:       failures,
		Ignored:      ignored,
		CardsLearned: learned,
		TotalCorrect: totalCorrect,
		TotalAnswers: totalAnswers,
	}
	log.Info("session finalized: session_id=%s, updated=%d, failed=%d, ignored=%d",
		session.ID, len(updates), len(failures), len(ignored))
	return summary, nil
}

// aggregateOutcomes folds per-game answers into one outcome per planned
// card. Answers for cards outside the plan are reported back, not updated.
func aggregateOutcomes(session models.MultiGameSession) (map[string]*models.CardOutcome, []string) {
	planned := make(map[string]bool, len(session.Cards))
	for _, c := range session.Cards {
		planned[c.ID] = true
	}

	outcomes := map[string]*models.CardOutcome{}
	ignoredSet := map[string]bool{}
	for _, g := range session.Games {
		seenInGame := map[string]bool{}
		for _, a := range g.Answers {
			if !planned[a.CardID] {
				ignoredSet[a.CardID] = true
				continue
			}
			o, ok := outcomes[a.CardID]
			if !ok {
				o = &models.CardOutcome{CardID: a.CardID}
				outcomes[a.CardID] = o
			}
			o.Answers = append(o.Answers, a)
			if !seenInGame[a.CardID] {
				o.GameIDs = append(o.GameIDs, g.GameID)
				seenInGame[a.CardID] = true
			}
		}
	}

	ignored := make([]string, 0, len(ignoredSet))
	for id := range ignoredSet {
		ignored = append(ignored, id)
	}
	sort.Strings(ignored)
	return outcomes, ignored
}

func (s *sessionService) applyOutcomes(
	ctx context.Context,
	userID string,
	session models.MultiGameSession,
	outcomes map[string]*models.CardOutcome,
	now time.Time,
) ([]models.CardUpdate, []models.CardUpdateFailure) {
	sourceOf := make(map[string]models.CardSource, len(session.Cards))
	for _, c := range session.Cards {
		sourceOf[c.ID] = c.Source
	}

	var (
		mu       sync.Mutex
		updates  []models.CardUpdate
		failures []models.CardUpdateFailure
		wg       sync.WaitGroup
		sem      = make(chan struct{}, maxConcurrentUpdates)
	)
	for _, o := range outcomes {
		wg.Add(1)
		sem <- struct{}{}
		go func(o *models.CardOutcome) {
			defer wg.Done()
			defer func() { <-sem }()

			update, err := s.updateCard(ctx, userID, sourceOf[o.CardID], *o, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, models.CardUpdateFailure{CardID: o.CardID, Reason: err.Error()})
				return
			}
			updates = append(updates, update)
		}(o)
	}
	wg.Wait()

	sort.Slice(updates, func(i, j int) bool { return updates[i].CardID < updates[j].CardID })
	sort.Slice(failures, func(i, j int) bool { return failures[i].CardID < failures[j].CardID })
	return updates, failures
}

func (s *sessionService) updateCard(ctx context.Context, userID string, source models.CardSource, o models.CardOutcome, now time.Time) (models.CardUpdate, error) {
	quality := srs.MapQuality(o)
	sessionCap := srs.SessionCap(o.GameIDs, s.registry.TierOf)

	existing, err := s.progressRepo.Get(ctx, userID, o.CardID)
	if err != nil {
		return models.CardUpdate{}, err
	}
	newlyLearned := existing == nil
	if existing == nil {
		existing = &models.CardProgress{
			UserID:         userID,
			CardID:         o.CardID,
			Source:         source,
			EasinessFactor: srs.DefaultEase,
			CreatedAt:      now,
		}
	}

	updated := srs.ApplyReview(*existing, quality, sessionCap, now)
	if err := s.progressRepo.Upsert(ctx, updated); err != nil {
		return models.CardUpdate{}, err
	}

	return models.CardUpdate{
		CardID:         o.CardID,
		Quality:        quality,
		NewlyLearned:   newlyLearned,
		SRSLevel:       updated.SRSLevel,
		SRSScore:       updated.SRSScore,
		NextReviewDate: updated.NextReviewDate,
	}, nil
}

func (s *sessionService) userLock(userID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

func avgTimeMs(answers []models.CardAnswer) int {
	total, counted := 0, 0
	for _, a := range answers {
		if a.TimeSpentMs > 0 {
			total += a.TimeSpentMs
			counted++
		}
	}
	if counted == 0 {
		return 0
	}
	return total / counted
}
