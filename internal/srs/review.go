package srs

import (
	"time"

	"github.com/lgomes/vocadrill/internal/models"
)

// SM-2 scheduling bounds.
const (
	MinEase     = 1.3
	DefaultEase = 2.5
)

// SRSScore movement per session, before the session cap clamps the gain.
const (
	scoreGainPerfect = 12
	scoreGainGood    = 7
	scoreLossAgain   = 15
	maxScore         = 100
)

// ApplyReview applies one session's aggregated grade to a card's scheduling
// state using an SM-2 variant. sessionCap bounds how far SRSScore may rise.
// The returned progress always carries a next review date strictly after
// now; same-day repeats are not scheduled.
//
// The function is pure: callers aggregate a session's answers once per card
// and apply the result exactly once.
func ApplyReview(p models.CardProgress, quality, sessionCap int, now time.Time) models.CardProgress {
	ef := p.EasinessFactor
	if ef == 0 {
		ef = DefaultEase
	}
	ef = ef + 0.1 - float64(5-quality)*(0.08+float64(5-quality)*0.02)
	if ef < MinEase {
		ef = MinEase
	}

	interval := 1
	switch {
	case quality < QualityGood:
		interval = 1
	case p.IntervalDays == 0:
		interval = 1
	case p.IntervalDays == 1:
		interval = 6
	default:
		interval = int(float64(p.IntervalDays) * ef)
	}

	score := p.SRSScore
	switch {
	case quality >= QualityPerfect:
		score += min(scoreGainPerfect, sessionCap)
	case quality >= QualityGood:
		score += min(scoreGainGood, sessionCap)
	default:
		score -= scoreLossAgain
	}
	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}

	p.TimesReviewed++
	if quality >= QualityGood {
		p.TimesCorrect++
		p.SRSLevel++
	} else {
		p.SRSLevel = 0
	}
	p.EasinessFactor = ef
	p.IntervalDays = interval
	p.SRSScore = score
	p.NextReviewDate = now.AddDate(0, 0, interval)
	p.UpdatedAt = now
	return p
}
