package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEmbedder returns fixed vectors per text so ranking is
// deterministic without a model server.
type stubEmbedder struct {
	vectors map[string][]float32
	calls   int
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func TestInMem_SearchRanksBysimilarity(t *testing.T) {
	ctx := context.Background()
	emb := &stubEmbedder{vectors: map[string][]float32{
		"likes pizza":     {1, 0, 0},
		"works in Berlin": {0, 1, 0},
		"food?":           {0.9, 0.1, 0},
	}}
	p := NewInMemProvider(emb)

	_, err := p.Add(ctx, "alice", "likes pizza", nil)
	require.NoError(t, err)
	_, err = p.Add(ctx, "alice", "works in Berlin", nil)
	require.NoError(t, err)

	got, err := p.Search(ctx, "alice", "food?", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "likes pizza", got[0].Text)
	assert.Greater(t, got[0].Score, float32(0.5))
}

func TestInMem_SearchMissReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	p := NewInMemProvider(&stubEmbedder{})

	got, err := p.Search(ctx, "alice", "unrelated query", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMem_UserScoping(t *testing.T) {
	ctx := context.Background()
	p := NewInMemProvider(&stubEmbedder{})

	_, err := p.Add(ctx, "alice", "alice fact", nil)
	require.NoError(t, err)
	_, err = p.Add(ctx, "bob", "bob fact", nil)
	require.NoError(t, err)

	aliceAll, err := p.GetAll(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, aliceAll, 1)
	assert.Equal(t, "alice fact", aliceAll[0].Text)

	results, err := p.Search(ctx, "alice", "anything", 10)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, "alice", r.UserID)
	}
}

func TestInMem_ResetOnlyAffectsOneUser(t *testing.T) {
	ctx := context.Background()
	p := NewInMemProvider(&stubEmbedder{})

	_, err := p.Add(ctx, "alice", "alice fact", nil)
	require.NoError(t, err)
	_, err = p.Add(ctx, "bob", "bob fact", nil)
	require.NoError(t, err)

	require.NoError(t, p.Reset(ctx, "bob"))

	bobAll, err := p.GetAll(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, bobAll)

	aliceAll, err := p.GetAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceAll, 1)
}

func TestInMem_AddRejectsEmptyText(t *testing.T) {
	ctx := context.Background()
	p := NewInMemProvider(&stubEmbedder{})

	_, err := p.Add(ctx, "alice", "   ", nil)
	require.Error(t, err)
}

func TestInMem_DuplicateAddsKeepBothRecords(t *testing.T) {
	ctx := context.Background()
	p := NewInMemProvider(&stubEmbedder{})

	first, err := p.Add(ctx, "alice", "same fact", nil)
	require.NoError(t, err)
	second, err := p.Add(ctx, "alice", "same fact", nil)
	require.NoError(t, err)

	// Dedup is deliberately not this layer's job.
	assert.NotEqual(t, first.ID, second.ID)
	all, err := p.GetAll(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
