package repository

import (
	"context"
	"errors"

	"github.com/lgomes/vocadrill/internal/models"
)

// ErrDuplicateSession is returned by Insert when the session id has already
// been finalized.
var ErrDuplicateSession = errors.New("session already finalized")

// SessionRepository records finalized sessions and their per-card review
// history.
type SessionRepository interface {
	Insert(ctx context.Context, rec models.SessionRecord) error
	InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error
}
