package games

// Game tiers. Recognition games only ask the user to spot the right answer;
// recall games require producing it and earn a higher session cap.
const (
	TierRecognition = 1
	TierRecall      = 2
)

// Registry maps known mini-game ids to their difficulty tier.
type Registry struct {
	tiers map[string]int
}

// NewRegistry returns the built-in registry of mini-games.
func NewRegistry() *Registry {
	return &Registry{tiers: map[string]int{
		"multiple-choice": TierRecognition,
		"matching":        TierRecognition,
		"word-search":     TierRecognition,
		"quiz":            TierRecall,
		"spelling":        TierRecall,
		"fill-blank":      TierRecall,
	}}
}

// TierOf reports a game's tier. Unknown ids default to recall: recall games
// are harder, so the higher ceiling is the safe assumption.
func (r *Registry) TierOf(gameID string) int {
	if t, ok := r.tiers[gameID]; ok {
		return t
	}
	return TierRecall
}

// Known reports whether the game id is registered.
func (r *Registry) Known(gameID string) bool {
	_, ok := r.tiers[gameID]
	return ok
}
