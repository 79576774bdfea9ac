package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gitglimpse-core/internal/database"
	"gitglimpse-core/internal/domain/session"
	"gitglimpse-core/internal/infrastructure/encryption"
)

// SessionRepositoryImpl implements session.Repository on PostgreSQL.
// Access tokens are stored encrypted.
type SessionRepositoryImpl struct {
	db         *database.DB
	encryption *encryption.EncryptionService
	now        func() time.Time
}

// NewSessionRepository creates a new session repository implementation
func NewSessionRepository(db *database.DB, enc *encryption.EncryptionService) session.Repository {
	return &SessionRepositoryImpl{db: db, encryption: enc, now: time.Now}
}

// Save persists a session (create or update)
func (r *SessionRepositoryImpl) Save(ctx context.Context, s *session.Session) error {
	sealed, err := r.encryption.Encrypt(s.AccessToken())
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}

	queries := database.New(r.db.GetConnection())
	err = queries.UpsertSession(ctx, &database.UpsertSessionParams{
		ID:          s.ID().UUID(),
		AccessToken: sealed,
		Login:       s.Login(),
		CreatedAt:   s.CreatedAt(),
		ExpiresAt:   s.ExpiresAt(),
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByID retrieves a live session
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, id session.SessionID) (*session.Session, error) {
	queries := database.New(r.db.GetConnection())

	row, err := queries.GetSessionByID(ctx, id.UUID())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrSessionNotFound(id.String())
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	token, err := r.encryption.Decrypt(row.AccessToken)
	if err != nil {
		return nil, session.ErrInvalidSessionData("access token", err)
	}

	s, err := session.Reconstitute(row.ID.String(), token, row.Login, row.CreatedAt, row.ExpiresAt)
	if err != nil {
		return nil, err
	}
	if s.IsExpired(r.now()) {
		return nil, session.ErrSessionExpired(id.String())
	}
	return s, nil
}

// Delete removes a session; deleting an unknown id is not an error
func (r *SessionRepositoryImpl) Delete(ctx context.Context, id session.SessionID) error {
	queries := database.New(r.db.GetConnection())
	if err := queries.DeleteSession(ctx, id.UUID()); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired purges sessions that expired at or before now
func (r *SessionRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	queries := database.New(r.db.GetConnection())
	n, err := queries.DeleteExpiredSessions(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return n, nil
}
