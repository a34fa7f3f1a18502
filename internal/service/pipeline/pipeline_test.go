package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/extract"
	"github.com/sandevgo/mnemo/internal/prompt"
	"github.com/sandevgo/mnemo/pkg/retry"
)

type stubLLM struct {
	calls int
}

func (s *stubLLM) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return "a distilled fact", nil
}

type recordingProvider struct {
	added       []core.MemoryRecord
	addAttempts int
	addFailures int
	addErr      error
}

func (p *recordingProvider) Add(_ context.Context, userID, text string, metadata map[string]string) (core.MemoryRecord, error) {
	p.addAttempts++
	if p.addFailures > 0 {
		p.addFailures--
		return core.MemoryRecord{}, p.addErr
	}
	rec := core.MemoryRecord{ID: text, UserID: userID, Text: text, Metadata: metadata}
	p.added = append(p.added, rec)
	return rec, nil
}

func (p *recordingProvider) Search(context.Context, string, string, int) ([]core.MemoryRecord, error) {
	return nil, nil
}

func (p *recordingProvider) GetAll(context.Context, string) ([]core.MemoryRecord, error) {
	return p.added, nil
}

func (p *recordingProvider) Reset(context.Context, string) error { return nil }

func newTestRunner(t *testing.T, llm core.LLM, provider core.Provider, maxRetries int) *Runner {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, prompt.EnsureLayout(root))
	prompts, err := prompt.Load(context.Background(), root)
	require.NoError(t, err)

	cfg := retry.NewDefaultConfig()
	cfg.MaxRetries = maxRetries
	cfg.InitialDelay = time.Millisecond
	cfg.Jitter = 0
	retrier := retry.NewRetrier(cfg)

	extractor := extract.New(llm, prompts, retrier)
	return NewRunner(extractor, provider, retrier, extract.Options{BatchSize: 10})
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	journal := "# Notes\n\n- 3/29/25 9:10 AM: Landed in Lisbon\n- Met Ana for lunch\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trip.md"), []byte(journal), 0o644))

	llm := &stubLLM{}
	provider := &recordingProvider{}
	runner := newTestRunner(t, llm, provider, 0)

	stats, err := runner.Run(context.Background(), "alice", []string{dir}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Zero(t, stats.FilesFailed)
	assert.Equal(t, 1, stats.FactsExtracted)
	assert.Equal(t, 1, stats.FactsAdded)

	require.Len(t, provider.added, 1)
	rec := provider.added[0]
	assert.Equal(t, "alice", rec.UserID)
	assert.Equal(t, "a distilled fact", rec.Text)
	assert.Equal(t, filepath.Join(dir, "trip.md"), rec.Metadata["source"])
	assert.Equal(t, "Notes", rec.Metadata["title"])
	assert.Contains(t, rec.Metadata["time_context"], "March 29, 2025")
}

func TestRun_EmptyFileMakesNoProviderCalls(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.md"), []byte(""), 0o644))

	llm := &stubLLM{}
	provider := &recordingProvider{}
	runner := newTestRunner(t, llm, provider, 0)

	stats, err := runner.Run(context.Background(), "alice", []string{dir}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Zero(t, stats.FactsExtracted)
	assert.Zero(t, llm.calls)
	assert.Empty(t, provider.added)
}

func TestRun_TransientAddFailureIsRetried(t *testing.T) {
	dir := t.TempDir()
	journal := "# Notes\n\n- 3/29/25 9:10 AM: Landed in Lisbon\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trip.md"), []byte(journal), 0o644))

	llm := &stubLLM{}
	provider := &recordingProvider{
		addFailures: 1,
		addErr:      core.NewTransientError("add", errors.New("embedder timeout")),
	}
	runner := newTestRunner(t, llm, provider, 2)

	stats, err := runner.Run(context.Background(), "alice", []string{dir}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FactsExtracted)
	assert.Equal(t, 1, stats.FactsAdded, "a single transient blip must not drop the fact")
	assert.Equal(t, 2, provider.addAttempts)
	require.Len(t, provider.added, 1)
}

func TestRun_FatalAddFailureIsNotRetried(t *testing.T) {
	dir := t.TempDir()
	journal := "# Notes\n\n- 3/29/25 9:10 AM: Landed in Lisbon\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trip.md"), []byte(journal), 0o644))

	llm := &stubLLM{}
	provider := &recordingProvider{
		addFailures: 10,
		addErr:      core.NewFatalError("add", errors.New("empty text")),
	}
	runner := newTestRunner(t, llm, provider, 3)

	stats, err := runner.Run(context.Background(), "alice", []string{dir}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.FilesProcessed, "add failures stay isolated per fact")
	assert.Equal(t, 1, stats.FactsExtracted)
	assert.Zero(t, stats.FactsAdded)
	assert.Equal(t, 1, provider.addAttempts)
}

func TestRun_MissingDirectoryIsSkipped(t *testing.T) {
	llm := &stubLLM{}
	provider := &recordingProvider{}
	runner := newTestRunner(t, llm, provider, 0)

	stats, err := runner.Run(context.Background(), "alice", []string{filepath.Join(t.TempDir(), "absent")}, true)
	require.NoError(t, err)
	assert.Zero(t, stats.FilesProcessed)
	assert.Zero(t, stats.FilesFailed)
}
