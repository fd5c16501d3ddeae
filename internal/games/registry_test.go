package games_test

import (
	"testing"

	"github.com/lgomes/vocadrill/internal/games"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_TierOf(t *testing.T) {
	r := games.NewRegistry()

	assert.Equal(t, games.TierRecognition, r.TierOf("matching"))
	assert.Equal(t, games.TierRecall, r.TierOf("spelling"))
}

func TestRegistry_UnknownGameDefaultsToRecall(t *testing.T) {
	r := games.NewRegistry()

	assert.Equal(t, games.TierRecall, r.TierOf("does-not-exist"))
	assert.False(t, r.Known("does-not-exist"))
	assert.True(t, r.Known("quiz"))
}
