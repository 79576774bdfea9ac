package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// DBTX is satisfied by *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the typed statements used by the persistence layer
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Session struct {
	ID          uuid.UUID
	AccessToken string
	Login       string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

const upsertSession = `-- name: UpsertSession :exec
INSERT INTO sessions (id, access_token, login, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET access_token = EXCLUDED.access_token,
    login = EXCLUDED.login,
    expires_at = EXCLUDED.expires_at
`

type UpsertSessionParams struct {
	ID          uuid.UUID
	AccessToken string
	Login       string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (q *Queries) UpsertSession(ctx context.Context, arg *UpsertSessionParams) error {
	_, err := q.db.ExecContext(ctx, upsertSession,
		arg.ID,
		arg.AccessToken,
		arg.Login,
		arg.CreatedAt,
		arg.ExpiresAt,
	)
	return err
}

const getSessionByID = `-- name: GetSessionByID :one
SELECT id, access_token, login, created_at, expires_at
FROM sessions
WHERE id = $1
`

func (q *Queries) GetSessionByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := q.db.QueryRowContext(ctx, getSessionByID, id)
	var i Session
	err := row.Scan(
		&i.ID,
		&i.AccessToken,
		&i.Login,
		&i.CreatedAt,
		&i.ExpiresAt,
	)
	return &i, err
}

const deleteSession = `-- name: DeleteSession :exec
DELETE FROM sessions WHERE id = $1
`

func (q *Queries) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}

const deleteExpiredSessions = `-- name: DeleteExpiredSessions :execrows
DELETE FROM sessions WHERE expires_at <= $1
`

func (q *Queries) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
