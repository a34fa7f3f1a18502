package embed

import (
	"context"

	"github.com/sandevgo/mnemo/internal/config"
	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/pkg/log"
)

// NewEmbedder builds the embedding client the memory backends share.
// Only the Ollama endpoint is wired for now; the interface keeps the
// door open for others.
func NewEmbedder(ctx context.Context, cfg *config.ProviderConfig) (core.Embedder, error) {
	log.FromCtx(ctx).Info().
		Str("model", cfg.EmbedModel).
		Msg("starting embedder")

	return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.EmbedModel), nil
}
