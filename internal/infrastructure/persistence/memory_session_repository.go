package persistence

import (
	"context"
	"sync"
	"time"

	"gitglimpse-core/internal/domain/session"
)

// MemorySessionRepository keeps sessions in process memory. Used when no
// database is configured; sessions do not survive a restart.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[session.SessionID]*session.Session
	now      func() time.Time
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[session.SessionID]*session.Session),
		now:      time.Now,
	}
}

func (r *MemorySessionRepository) Save(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
	return nil
}

func (r *MemorySessionRepository) FindByID(_ context.Context, id session.SessionID) (*session.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, session.ErrSessionNotFound(id.String())
	}
	if s.IsExpired(r.now()) {
		return nil, session.ErrSessionExpired(id.String())
	}
	return s, nil
}

func (r *MemorySessionRepository) Delete(_ context.Context, id session.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *MemorySessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
