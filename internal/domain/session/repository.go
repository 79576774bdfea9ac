package session

import (
	"context"
	"time"
)

// Repository is the persistence port for sessions
type Repository interface {
	Save(ctx context.Context, s *Session) error
	// FindByID returns ErrSessionNotFound for unknown ids and
	// ErrSessionExpired for sessions past their expiry.
	FindByID(ctx context.Context, id SessionID) (*Session, error)
	Delete(ctx context.Context, id SessionID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
