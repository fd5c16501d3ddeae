package models

import "time"

// Tier is the coarse priority bucket a card lands in for one session's
// selection pass.
type Tier string

const (
	TierCritical Tier = "critical"
	TierDue      Tier = "due"
	TierWeak     Tier = "weak"
	TierNew      Tier = "new"
)

// SessionMode controls whether a session mixes new material into the plan.
type SessionMode string

const (
	ModeReviewOnly SessionMode = "review"
	ModeMixed      SessionMode = "mixed"
)

// ScoredCard wraps a card with its selection tier and rank score. It is
// computed per selection pass and discarded with the session. Progress is
// nil for new cards.
type ScoredCard struct {
	Card        CardContent
	Progress    *CardProgress
	Tier        Tier
	Score       float64
	DaysOverdue int
}

// TierCounts is the per-tier breakdown of a session plan.
type TierCounts struct {
	Critical int `json:"critical"`
	Due      int `json:"due"`
	Weak     int `json:"weak"`
	New      int `json:"new"`
}

// Total sums all four buckets.
func (t TierCounts) Total() int {
	return t.Critical + t.Due + t.Weak + t.New
}

// SessionPlan is the ordered card list to present, plus the tier breakdown
// for user-facing transparency.
type SessionPlan struct {
	Cards     []CardContent `json:"cards"`
	Breakdown TierCounts    `json:"breakdown"`
}

// CardAnswer is one answer given for a card inside a mini-game.
// TimeSpentMs is 0 when the game did not record timing.
type CardAnswer struct {
	CardID      string `json:"card_id"`
	Correct     bool   `json:"correct"`
	TimeSpentMs int    `json:"time_spent_ms,omitempty"`
}

// GameResult holds one mini-game's answers and aggregate score.
type GameResult struct {
	GameID  string       `json:"game_id"`
	Answers []CardAnswer `json:"answers"`
	Score   int          `json:"score"`
	Correct int          `json:"correct"`
	Total   int          `json:"total"`
}

// MultiGameSession accumulates results as the user completes each mini-game
// in turn. It is request-scoped and discarded after finalization.
type MultiGameSession struct {
	ID      string        `json:"id"`
	Mode    SessionMode   `json:"mode"`
	Cards   []CardContent `json:"cards"`
	GameIDs []string      `json:"game_ids"`
	Games   []GameResult  `json:"games"`
}

// WithResult returns a copy of the session with one more game recorded.
// The receiver is not modified, so accumulating across games is safe even
// when steps run on different goroutines.
func (s MultiGameSession) WithResult(r GameResult) MultiGameSession {
	games := make([]GameResult, 0, len(s.Games)+1)
	games = append(games, s.Games...)
	games = append(games, r)
	s.Games = games
	return s
}

// CardOutcome gathers one card's answers across every game in a session.
// GameIDs lists each mini-game that presented the card, one entry per game
// played.
type CardOutcome struct {
	CardID  string
	Answers []CardAnswer
	GameIDs []string
}

// CardUpdate reports the persisted result of one card's SRS update.
type CardUpdate struct {
	CardID         string    `json:"card_id"`
	Quality        int       `json:"quality"`
	NewlyLearned   bool      `json:"newly_learned"`
	SRSLevel       int       `json:"srs_level"`
	SRSScore       int       `json:"srs_score"`
	NextReviewDate time.Time `json:"next_review_date"`
}

// CardUpdateFailure reports a per-card upsert that failed. One failed write
// never aborts the rest of the session.
type CardUpdateFailure struct {
	CardID string `json:"card_id"`
	Reason string `json:"reason"`
}

// SessionSummary is the finalization report. Ignored lists answer card ids
// that were never part of the session plan.
type SessionSummary struct {
	SessionID    string              `json:"session_id"`
	Updated      []CardUpdate        `json:"updated"`
	Failed       []CardUpdateFailure `json:"failed,omitempty"`
	Ignored      []string            `json:"ignored,omitempty"`
	CardsLearned int                 `json:"cards_learned"`
	TotalCorrect int                 `json:"total_correct"`
	TotalAnswers int                 `json:"total_answers"`
}

// SessionRecord is the persisted session row. Its primary key doubles as the
// double-finalization guard.
type SessionRecord struct {
	ID           string
	UserID       string
	Mode         SessionMode
	CardCount    int
	GamesPlayed  int
	TotalCorrect int
	TotalAnswers int
	FinalizedAt  time.Time
}

// ReviewHistory is one card's graded outcome for one finalized session.
type ReviewHistory struct {
	ID         string
	UserID     string
	CardID     string
	SessionID  string
	Quality    int
	AvgTimeMs  int
	ReviewedAt time.Time
}
