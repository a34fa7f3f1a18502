package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sandevgo/mnemo/internal/core"
)

// MemoryRepo owns the memories table. Ranking happens in Go over the
// stored embedding blobs, which keeps the backend a plain SQLite file.
type MemoryRepo struct {
	db *sql.DB
}

func NewMemoryRepo(db *sql.DB) *MemoryRepo {
	return &MemoryRepo{db: db}
}

type storedMemory struct {
	record    core.MemoryRecord
	embedding []float32
}

func (r *MemoryRepo) Insert(ctx context.Context, rec core.MemoryRecord, embedding []float32) error {
	blob, err := serializeVector(embedding)
	if err != nil {
		return err
	}

	meta, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO memories (id, user_id, text, metadata, embedding, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.Text, string(meta), blob, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// SearchByVector returns the user's memories ranked by cosine
// similarity to the query embedding, best first.
func (r *MemoryRepo) SearchByVector(ctx context.Context, userID string, query []float32, topK int) ([]core.MemoryRecord, error) {
	stored, err := r.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range stored {
		stored[i].record.Score = CosineSimilarity(query, stored[i].embedding)
	}
	sort.SliceStable(stored, func(i, j int) bool {
		return stored[i].record.Score > stored[j].record.Score
	})

	if topK > 0 && len(stored) > topK {
		stored = stored[:topK]
	}

	records := make([]core.MemoryRecord, 0, len(stored))
	for _, s := range stored {
		records = append(records, s.record)
	}
	return records, nil
}

// ListAll returns the user's memories unranked, oldest first.
func (r *MemoryRepo) ListAll(ctx context.Context, userID string) ([]core.MemoryRecord, error) {
	stored, err := r.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	records := make([]core.MemoryRecord, 0, len(stored))
	for _, s := range stored {
		records = append(records, s.record)
	}
	return records, nil
}

// DeleteUser removes every record for userID and reports how many
// rows went away. Other users' rows are untouched.
func (r *MemoryRepo) DeleteUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete memories: %w", err)
	}
	return res.RowsAffected()
}

func (r *MemoryRepo) loadUser(ctx context.Context, userID string) ([]storedMemory, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, text, metadata, embedding, created_at FROM memories WHERE user_id = ? ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var out []storedMemory
	for rows.Next() {
		var (
			s         storedMemory
			meta      string
			blob      []byte
			createdAt time.Time
		)
		if err := rows.Scan(&s.record.ID, &s.record.UserID, &s.record.Text, &meta, &blob, &createdAt); err != nil {
			return nil, err
		}
		s.record.CreatedAt = createdAt

		if err := json.Unmarshal([]byte(meta), &s.record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", s.record.ID, err)
		}
		if s.embedding, err = deserializeVector(blob); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
