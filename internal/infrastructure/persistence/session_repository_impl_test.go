package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitglimpse-core/internal/database"
	"gitglimpse-core/internal/domain/session"
	"gitglimpse-core/internal/infrastructure/encryption"
)

func newMockRepository(t *testing.T) (*SessionRepositoryImpl, sqlmock.Sqlmock, *encryption.EncryptionService) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("Failed to close mock db: %v", closeErr)
		}
	})

	key, err := encryption.GenerateKey()
	require.NoError(t, err)
	enc, err := encryption.NewEncryptionService(key)
	require.NoError(t, err)

	repo := NewSessionRepository(database.Wrap(db), enc).(*SessionRepositoryImpl)
	return repo, mock, enc
}

func TestSessionRepository_SaveEncryptsToken(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	s, err := session.NewSession("gho_plain", "octocat", time.Hour)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(s.ID().UUID(), sqlmock.AnyArg(), "octocat", s.CreatedAt(), s.ExpiresAt()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Save(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindByID(t *testing.T) {
	repo, mock, enc := newMockRepository(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	id := session.NewSessionID()
	sealed, err := enc.Encrypt("gho_plain")
	require.NoError(t, err)

	columns := []string{"id", "access_token", "login", "created_at", "expires_at"}
	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs(id.UUID()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), sealed, "octocat", now.Add(-time.Hour), now.Add(time.Hour)))

	s, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID())
	assert.Equal(t, "gho_plain", s.AccessToken())
	assert.Equal(t, "octocat", s.Login())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_FindByID_Expired(t *testing.T) {
	repo, mock, enc := newMockRepository(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	id := session.NewSessionID()
	sealed, err := enc.Encrypt("gho_plain")
	require.NoError(t, err)

	columns := []string{"id", "access_token", "login", "created_at", "expires_at"}
	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs(id.UUID()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.String(), sealed, "octocat", now.Add(-2*time.Hour), now))

	_, err = repo.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, session.IsNotFound(err))
}

func TestSessionRepository_FindByID_NotFound(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	id := session.NewSessionID()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs(id.UUID()).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, session.IsNotFound(err))
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("DELETE FROM sessions WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Delete(t *testing.T) {
	repo, mock, _ := newMockRepository(t)
	id := session.NewSessionID()

	mock.ExpectExec("DELETE FROM sessions WHERE id").
		WithArgs(id.UUID()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
