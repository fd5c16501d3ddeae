package srs

import "github.com/lgomes/vocadrill/internal/models"

// Discrete quality grades fed into ApplyReview. The mapper is deliberately
// coarse: a single miss within the session fails the card.
const (
	QualityAgain   = 0
	QualityGood    = 3
	QualityPerfect = 5
)

const fastAnswerMs = 3000

// Session caps bound how far SRSScore may rise in one session, so a short
// run of easy recognition games cannot mature a card too quickly.
const (
	CapRecognition = 10
	CapRecall      = 15
)

// MapQuality grades one card's aggregated results for a session. Any
// incorrect answer yields QualityAgain. All-correct cards earn
// QualityPerfect when answered fast on average, or when the card held up
// across two or more mini-games; otherwise QualityGood.
func MapQuality(o models.CardOutcome) int {
	var totalMs, timed int
	for _, a := range o.Answers {
		if !a.Correct {
			return QualityAgain
		}
		if a.TimeSpentMs > 0 {
			totalMs += a.TimeSpentMs
			timed++
		}
	}
	if len(o.GameIDs) >= 2 {
		return QualityPerfect
	}
	if timed > 0 && totalMs/timed < fastAnswerMs {
		return QualityPerfect
	}
	return QualityGood
}

// SessionCap resolves the score ceiling from the hardest game tier that
// presented the card. tierOf reports 1 for recognition games; anything else
// counts as recall, which matches the tier-2 default for unknown games.
func SessionCap(gameIDs []string, tierOf func(gameID string) int) int {
	for _, id := range gameIDs {
		if tierOf(id) != 1 {
			return CapRecall
		}
	}
	return CapRecognition
}
