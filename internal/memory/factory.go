// Package memory provides the pluggable memory provider: add, search,
// list and reset over a vector-indexed store, always scoped to one
// user id.
package memory

import (
	"context"
	"fmt"

	"github.com/sandevgo/mnemo/internal/config"
	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/providers/embed"
	"github.com/sandevgo/mnemo/internal/storage/sqlite"
	"github.com/sandevgo/mnemo/pkg/log"
)

// NewProvider builds the configured memory backend. Call sites only
// ever see core.Provider, so backends swap without touching them.
func NewProvider(ctx context.Context, appCfg *config.AppConfig, cfg *config.ProviderConfig) (core.Provider, error) {
	embedder, err := embed.NewEmbedder(ctx, cfg)
	if err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Info().
		Str("backend", cfg.MemoryBackend).
		Msg("starting memory provider")

	switch cfg.MemoryBackend {
	case "sqlite":
		db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
		if err != nil {
			return nil, core.NewFatalError("provider init", err)
		}
		return NewSQLiteProvider(sqlite.NewMemoryRepo(db), embedder), nil
	case "inmem":
		return NewInMemProvider(embedder), nil
	default:
		return nil, core.NewFatalError("provider init", fmt.Errorf("unknown memory backend: %s", cfg.MemoryBackend))
	}
}
