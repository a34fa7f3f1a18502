package core

import "context"

// LLM generates a completion for a rendered prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Embedder turns text into a vector in the backend's embedding space.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Provider is the pluggable memory backend. Every operation is scoped
// to a single user id; implementations must never let records from one
// user surface in another user's results.
type Provider interface {
	Add(ctx context.Context, userID, text string, metadata map[string]string) (MemoryRecord, error)
	Search(ctx context.Context, userID, query string, topK int) ([]MemoryRecord, error)
	GetAll(ctx context.Context, userID string) ([]MemoryRecord, error)
	Reset(ctx context.Context, userID string) error
}
