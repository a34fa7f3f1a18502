package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/storage/sqlite"
)

// InMemProvider keeps records in a per-user map with the same ranking
// behavior as the SQLite backend. Used for ephemeral runs and tests.
type InMemProvider struct {
	embedder core.Embedder

	mu      sync.RWMutex
	records map[string][]inMemRecord
}

type inMemRecord struct {
	record    core.MemoryRecord
	embedding []float32
}

func NewInMemProvider(embedder core.Embedder) *InMemProvider {
	return &InMemProvider{
		embedder: embedder,
		records:  make(map[string][]inMemRecord),
	}
}

func (p *InMemProvider) Add(ctx context.Context, userID, text string, metadata map[string]string) (core.MemoryRecord, error) {
	if strings.TrimSpace(text) == "" {
		return core.MemoryRecord{}, core.NewFatalError("add", fmt.Errorf("empty fact text"))
	}

	embedding, err := p.embedder.Embed(ctx, text)
	if err != nil {
		return core.MemoryRecord{}, err
	}

	rec := core.MemoryRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	p.mu.Lock()
	p.records[userID] = append(p.records[userID], inMemRecord{record: rec, embedding: embedding})
	p.mu.Unlock()

	return rec, nil
}

func (p *InMemProvider) Search(ctx context.Context, userID, query string, topK int) ([]core.MemoryRecord, error) {
	embedding, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	p.mu.RLock()
	stored := make([]inMemRecord, len(p.records[userID]))
	copy(stored, p.records[userID])
	p.mu.RUnlock()

	for i := range stored {
		stored[i].record.Score = sqlite.CosineSimilarity(embedding, stored[i].embedding)
	}
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].record.Score > stored[j].record.Score
	})

	if topK > 0 && len(stored) > topK {
		stored = stored[:topK]
	}

	out := make([]core.MemoryRecord, 0, len(stored))
	for _, s := range stored {
		out = append(out, s.record)
	}
	return out, nil
}

func (p *InMemProvider) GetAll(ctx context.Context, userID string) ([]core.MemoryRecord, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]core.MemoryRecord, 0, len(p.records[userID]))
	for _, s := range p.records[userID] {
		out = append(out, s.record)
	}
	return out, nil
}

func (p *InMemProvider) Reset(ctx context.Context, userID string) error {
	p.mu.Lock()
	delete(p.records, userID)
	p.mu.Unlock()
	return nil
}
