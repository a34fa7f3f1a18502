package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/storage/sqlite"
)

// SQLiteProvider pairs the SQLite repository with an embedder. It is
// the default durable backend.
type SQLiteProvider struct {
	repo     *sqlite.MemoryRepo
	embedder core.Embedder
}

func NewSQLiteProvider(repo *sqlite.MemoryRepo, embedder core.Embedder) *SQLiteProvider {
	return &SQLiteProvider{repo: repo, embedder: embedder}
}

func (p *SQLiteProvider) Add(ctx context.Context, userID, text string, metadata map[string]string) (core.MemoryRecord, error) {
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
	if err := p.repo.Insert(ctx, rec, embedding); err != nil {
		return core.MemoryRecord{}, wrapStoreErr("add", err)
	}
	return rec, nil
}

func (p *SQLiteProvider) Search(ctx context.Context, userID, query string, topK int) ([]core.MemoryRecord, error) {
	embedding, err := p.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	records, err := p.repo.SearchByVector(ctx, userID, embedding, topK)
	if err != nil {
		return nil, wrapStoreErr("search", err)
	}
	return records, nil
}

func (p *SQLiteProvider) GetAll(ctx context.Context, userID string) ([]core.MemoryRecord, error) {
	records, err := p.repo.ListAll(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr("get_all", err)
	}
	return records, nil
}

// Reset deletes every record for userID. It returns only after the
// backend has confirmed the delete.
func (p *SQLiteProvider) Reset(ctx context.Context, userID string) error {
	if _, err := p.repo.DeleteUser(ctx, userID); err != nil {
		return wrapStoreErr("reset", err)
	}
	return nil
}

// wrapStoreErr classifies repository failures. SQLite faults on a
// local file are not retry-worthy, so they surface as fatal unless
// already classified.
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var be *core.BackendError
	if errors.As(err, &be) {
		return err
	}
	return core.NewFatalError(op, err)
}
