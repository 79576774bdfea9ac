package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitglimpse-core/internal/domain/session"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	s, err := session.NewSession("gho_token", "octocat", time.Hour)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	found, err := repo.FindByID(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "gho_token", found.AccessToken())

	require.NoError(t, repo.Delete(ctx, s.ID()))
	_, err = repo.FindByID(ctx, s.ID())
	assert.True(t, session.IsNotFound(err))
}

func TestMemorySessionRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	s, err := session.NewSession("gho_token", "octocat", time.Minute)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, s))

	repo.now = func() time.Time { return s.ExpiresAt() }
	_, err = repo.FindByID(ctx, s.ID())
	require.Error(t, err)
	assert.True(t, session.IsNotFound(err))

	n, err := repo.DeleteExpired(ctx, s.ExpiresAt().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
