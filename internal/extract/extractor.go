// Package extract batches conversation entries and asks the language
// model to distill them into atomic facts.
package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/prompt"
	"github.com/sandevgo/mnemo/pkg/log"
	"github.com/sandevgo/mnemo/pkg/retry"
)

type Options struct {
	// BatchSize caps how many entries go into one extraction call.
	BatchSize int
	// BatchDelay is the pause between successive batches so a local
	// model server is not overwhelmed.
	BatchDelay time.Duration
}

type Extractor struct {
	llm     core.LLM
	prompts *prompt.Store
	retrier *retry.Retrier
}

func New(llm core.LLM, prompts *prompt.Store, retrier *retry.Retrier) *Extractor {
	return &Extractor{llm: llm, prompts: prompts, retrier: retrier}
}

// Extract runs batched fact extraction over the document's entries in
// order. A batch that keeps failing after retries is logged and
// skipped; it never aborts the rest of the document.
func (e *Extractor) Extract(ctx context.Context, doc *core.Document, opts Options) ([]core.ExtractedFact, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = 10
	}

	batches := batchEntries(doc.Entries, opts.BatchSize)
	logger := log.FromCtx(ctx).With().Str("document", doc.Path).Logger()

	var facts []core.ExtractedFact
	for i, batch := range batches {
		if i > 0 && opts.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return facts, ctx.Err()
			case <-time.After(opts.BatchDelay):
			}
		}

		batchFacts, attempts, err := e.extractBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return facts, ctx.Err()
			}
			logger.Error().Err(err).
				Int("batch", i).
				Int("attempts", attempts).
				Msg("batch extraction failed, skipping")
			continue
		}

		logger.Debug().Int("batch", i).Int("facts", len(batchFacts)).Msg("batch extracted")
		facts = append(facts, batchFacts...)
	}
	return facts, nil
}

// extractBatch reports how many LLM attempts were made alongside the
// result so a skipped batch can be logged with the real count.
func (e *Extractor) extractBatch(ctx context.Context, batch []core.ConversationEntry) ([]core.ExtractedFact, int, error) {
	sectionCtx := sectionContexts(batch)
	timeCtx := timeContext(batch)

	rendered, err := e.prompts.Get(ctx, "extraction", "markdown_facts", map[string]string{
		"context":      sectionCtx,
		"content":      entryContent(batch),
		"time_context": timeCtx,
	})
	if err != nil {
		// Prompt layer errors are never retried.
		return nil, 0, err
	}

	var response string
	var attempts int
	err = e.retrier.DoRetryable(ctx, func() error {
		attempts++
		var genErr error
		response, genErr = e.llm.Generate(ctx, rendered)
		return genErr
	}, core.IsTransient)
	if err != nil {
		return nil, attempts, err
	}

	var facts []core.ExtractedFact
	for _, text := range parseFactLines(response) {
		facts = append(facts, core.ExtractedFact{
			Text:          text,
			SourceContext: sectionCtx,
			TimeContext:   timeCtx,
		})
	}
	return facts, attempts, nil
}

// batchEntries groups entries into contiguous batches of at most size,
// preserving document order.
func batchEntries(entries []core.ConversationEntry, size int) [][]core.ConversationEntry {
	var batches [][]core.ConversationEntry
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, entries[start:end])
	}
	return batches
}

// sectionContexts joins the distinct section contexts of a batch in
// first-seen order.
func sectionContexts(batch []core.ConversationEntry) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, e := range batch {
		if e.SectionContext == "" {
			continue
		}
		if _, ok := seen[e.SectionContext]; ok {
			continue
		}
		seen[e.SectionContext] = struct{}{}
		parts = append(parts, e.SectionContext)
	}
	return strings.Join(parts, "; ")
}

func entryContent(batch []core.ConversationEntry) string {
	var b strings.Builder
	for _, e := range batch {
		b.WriteString("- ")
		b.WriteString(e.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

const timeContextFormat = "January 2, 2006 at 3:04 PM"

// timeContext phrases the earliest/latest timestamps of a batch, or
// returns "" when no entry carries one.
func timeContext(batch []core.ConversationEntry) string {
	var earliest, latest *time.Time
	for _, e := range batch {
		if e.Timestamp == nil {
			continue
		}
		if earliest == nil || e.Timestamp.Before(*earliest) {
			earliest = e.Timestamp
		}
		if latest == nil || e.Timestamp.After(*latest) {
			latest = e.Timestamp
		}
	}

	switch {
	case earliest == nil:
		return ""
	case earliest.Equal(*latest):
		return fmt.Sprintf("This information was recorded on %s.", earliest.Format(timeContextFormat))
	default:
		return fmt.Sprintf("This information was recorded between %s and %s.",
			earliest.Format(timeContextFormat), latest.Format(timeContextFormat))
	}
}
