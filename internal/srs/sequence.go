package srs

import (
	"math/rand"
	"sort"

	"github.com/lgomes/vocadrill/internal/models"
)

// Sequence orders selected cards so cognitive load falls across the
// session: critical first by score, then due by score, then weak and new
// with their tier-internal order shuffled so repeated sessions don't become
// predictable.
func Sequence(cards []models.ScoredCard, rng *rand.Rand) []models.ScoredCard {
	var critical, due, weak, fresh []models.ScoredCard
	for _, c := range cards {
		switch c.Tier {
		case models.TierCritical:
			critical = append(critical, c)
		case models.TierDue:
			due = append(due, c)
		case models.TierWeak:
			weak = append(weak, c)
		default:
			fresh = append(fresh, c)
		}
	}

	byScore := func(s []models.ScoredCard) {
		sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
	}
	byScore(critical)
	byScore(due)

	shuffle := func(s []models.ScoredCard) {
		rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
	}
	shuffle(weak)
	shuffle(fresh)

	out := make([]models.ScoredCard, 0, len(cards))
	out = append(out, critical...)
	out = append(out, due...)
	out = append(out, weak...)
	out = append(out, fresh...)
	return out
}
