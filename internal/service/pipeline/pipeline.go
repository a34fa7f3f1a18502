// Package pipeline drives the end-to-end ingestion run: discover
// markdown files, parse them into entries, extract facts and store
// them as memories. Processing is deliberately sequential; the
// inter-batch delay in the extractor is the rate limiter for local
// model servers.
package pipeline

import (
	"context"
	"os"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/extract"
	"github.com/sandevgo/mnemo/internal/ingest"
	"github.com/sandevgo/mnemo/pkg/log"
	"github.com/sandevgo/mnemo/pkg/retry"
)

type Stats struct {
	FilesProcessed int
	FilesFailed    int
	FactsExtracted int
	FactsAdded     int
}

type Runner struct {
	extractor *extract.Extractor
	provider  core.Provider
	retrier   *retry.Retrier
	opts      extract.Options
}

func NewRunner(extractor *extract.Extractor, provider core.Provider, retrier *retry.Retrier, opts extract.Options) *Runner {
	return &Runner{extractor: extractor, provider: provider, retrier: retrier, opts: opts}
}

// Run processes every markdown file under dirs for userID. Failures
// are isolated per document and per fact; the run always continues to
// the next file.
func (r *Runner) Run(ctx context.Context, userID string, dirs []string, recursive bool) (Stats, error) {
	logger := log.FromCtx(ctx).With().Str("component", "pipeline").Logger()

	files, skipped, err := ingest.DiscoverFiles(dirs, recursive)
	if err != nil {
		return Stats{}, err
	}
	for _, dir := range skipped {
		logger.Warn().Str("dir", dir).Msg("directory does not exist, skipping")
	}
	logger.Info().Int("files", len(files)).Msg("starting markdown processing")

	var stats Stats
	for _, file := range files {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		if err := r.processFile(ctx, userID, file, &stats); err != nil {
			logger.Error().Err(err).Str("file", file).Msg("file processing failed")
			stats.FilesFailed++
			continue
		}
		stats.FilesProcessed++
	}

	logger.Info().
		Int("files", stats.FilesProcessed).
		Int("failed", stats.FilesFailed).
		Int("extracted", stats.FactsExtracted).
		Int("added", stats.FactsAdded).
		Msg("processing complete")
	return stats, nil
}

func (r *Runner) processFile(ctx context.Context, userID, file string, stats *Stats) error {
	logger := log.FromCtx(ctx)

	text, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	doc := ingest.Parse(file, string(text))
	logger.Debug().Str("file", file).Int("entries", len(doc.Entries)).Msg("parsed document")

	facts, err := r.extractor.Extract(ctx, doc, r.opts)
	if err != nil {
		return err
	}
	stats.FactsExtracted += len(facts)

	for _, fact := range facts {
		metadata := map[string]string{
			"source": doc.Path,
			"title":  doc.Title,
		}
		if fact.TimeContext != "" {
			metadata["time_context"] = fact.TimeContext
		}
		if fact.SourceContext != "" {
			metadata["section"] = fact.SourceContext
		}

		// Transient backend blips must not drop a fact; adds go
		// through the same retry policy as extraction.
		var attempts int
		err := r.retrier.DoRetryable(ctx, func() error {
			attempts++
			_, addErr := r.provider.Add(ctx, userID, fact.Text, metadata)
			return addErr
		}, core.IsTransient)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Add failures are isolated per fact once retries are spent.
			logger.Warn().Err(err).
				Str("fact", fact.Text).
				Int("attempts", attempts).
				Msg("failed to store fact")
			continue
		}
		stats.FactsAdded++
	}
	return nil
}
