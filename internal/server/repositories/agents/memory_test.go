package agents

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/meggy/internal/common"
	"github.com/dmitrijs2005/meggy/internal/server/models"
)

func countDefaults(t *testing.T, repo *MemoryRepository, userID string) int {
	t.Helper()
	list, err := repo.List(context.Background(), userID)
	require.NoError(t, err)
	n := 0
	for _, a := range list {
		if a.IsDefault {
			n++
		}
	}
	return n
}

func TestMemoryRepository_OneDefaultPerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now()

	first, err := repo.Create(ctx, &models.Agent{UserID: "u1", Name: "A", IsDefault: true, CreatedAt: now})
	require.NoError(t, err)
	other, err := repo.Create(ctx, &models.Agent{UserID: "u2", Name: "Other", IsDefault: true, CreatedAt: now})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Agent{UserID: "u1", Name: "B", IsDefault: true, CreatedAt: now.Add(time.Second)})
	require.NoError(t, err)

	assert.Equal(t, 1, countDefaults(t, repo, "u1"))
	got, err := repo.Get(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)

	got, err = repo.Get(ctx, "u2", other.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDefault, "other users are untouched")

	first.IsDefault = true
	_, err = repo.Update(ctx, first)
	require.NoError(t, err)
	got, err = repo.Get(ctx, "u1", second.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)
	assert.Equal(t, 1, countDefaults(t, repo, "u1"))
}

func TestMemoryRepository_ScopedPerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.Create(ctx, &models.Agent{UserID: "u1", Name: "A"})
	require.NoError(t, err)

	_, err = repo.Get(ctx, "u2", a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Update(ctx, &models.Agent{ID: a.ID, UserID: "u2"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "u2", a.ID), common.ErrorNotFound)

	list, err := repo.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Delete(ctx, "u1", a.ID))
	_, err = repo.Get(ctx, "u1", a.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_EnsureDefaultIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	ids := make([]string, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := repo.EnsureDefault(ctx, "u1", &models.Agent{Name: models.DefaultAgentName})
			if err == nil {
				ids[i] = a.ID
			}
		}(i)
	}
	wg.Wait()

	list, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	for _, id := range ids {
		assert.Equal(t, list[0].ID, id)
	}
	assert.True(t, list[0].IsDefault)
}
