package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/mnemo/internal/core"
)

func newTestRepo(t *testing.T) *MemoryRepo {
	t.Helper()
	db, err := NewDB(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMemoryRepo(db)
}

func record(id, userID, text string) core.MemoryRecord {
	return core.MemoryRecord{
		ID:        id,
		UserID:    userID,
		Text:      text,
		Metadata:  map[string]string{"source": "test"},
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryRepo_InsertAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Insert(ctx, record("r1", "alice", "likes pizza"), []float32{1, 0, 0}))
	require.NoError(t, repo.Insert(ctx, record("r2", "alice", "works in Berlin"), []float32{0, 1, 0}))
	require.NoError(t, repo.Insert(ctx, record("r3", "bob", "plays chess"), []float32{0, 0, 1}))

	all, err := repo.ListAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "likes pizza", all[0].Text)
	assert.Equal(t, map[string]string{"source": "test"}, all[0].Metadata)
}

func TestMemoryRepo_SearchRanksAndScopes(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Insert(ctx, record("r1", "alice", "likes pizza"), []float32{1, 0, 0}))
	require.NoError(t, repo.Insert(ctx, record("r2", "alice", "works in Berlin"), []float32{0, 1, 0}))
	require.NoError(t, repo.Insert(ctx, record("r3", "bob", "bob's secret"), []float32{1, 0, 0}))

	got, err := repo.SearchByVector(ctx, "alice", []float32{0.9, 0.1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "likes pizza", got[0].Text)
	assert.Greater(t, got[0].Score, got[1].Score)

	for _, r := range got {
		assert.Equal(t, "alice", r.UserID)
	}
}

func TestMemoryRepo_SearchEmptyUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.SearchByVector(ctx, "nobody", []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryRepo_DeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	require.NoError(t, repo.Insert(ctx, record("r1", "alice", "a"), []float32{1}))
	require.NoError(t, repo.Insert(ctx, record("r2", "bob", "b"), []float32{1}))

	n, err := repo.DeleteUser(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	bobAll, err := repo.ListAll(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobAll)

	aliceAll, err := repo.ListAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceAll, 1)
}

func TestVectorRoundTrip(t *testing.T) {
	vec := []float32{0.25, -1.5, 3.75}
	blob, err := serializeVector(vec)
	require.NoError(t, err)

	got, err := deserializeVector(blob)
	require.NoError(t, err)
	assert.Equal(t, vec, got)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-6)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-6)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-6)
	assert.Zero(t, CosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Zero(t, CosineSimilarity(nil, nil))
}
