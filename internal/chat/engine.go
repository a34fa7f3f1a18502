// Package chat answers natural-language questions by retrieving
// relevant memories and composing them into a grounded LLM prompt.
package chat

import (
	"context"

	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/prompt"
	"github.com/sandevgo/mnemo/pkg/log"
	"github.com/sandevgo/mnemo/pkg/retry"
)

type Options struct {
	TopK             int
	MaxContextTokens int
}

type Engine struct {
	provider core.Provider
	llm      core.LLM
	prompts  *prompt.Store
	retrier  *retry.Retrier
	opts     Options

	history []core.ChatTurn
}

func NewEngine(provider core.Provider, llm core.LLM, prompts *prompt.Store, retrier *retry.Retrier, opts Options) *Engine {
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	return &Engine{
		provider: provider,
		llm:      llm,
		prompts:  prompts,
		retrier:  retrier,
		opts:     opts,
	}
}

// Answer retrieves the user's most relevant memories and asks the
// language model for a grounded response. With no relevant memories
// the no_memories template is returned directly, without an LLM call.
// An LLM failure after retries degrades to the error_response template
// instead of surfacing a raw error to the end user.
func (e *Engine) Answer(ctx context.Context, userID, query string) (string, error) {
	logger := log.FromCtx(ctx).With().Str("component", "chat").Str("user", userID).Logger()

	memories, err := e.provider.Search(ctx, userID, query, e.opts.TopK)
	if err != nil {
		// No safe partial result for a failed search.
		return "", err
	}

	if len(memories) == 0 {
		logger.Debug().Msg("no relevant memories, short-circuiting")
		answer, err := e.prompts.Get(ctx, "chat", "no_memories", map[string]string{
			"user_id": userID,
		})
		if err != nil {
			return "", err
		}
		e.record(userID, query, nil, answer)
		return answer, nil
	}

	rendered, err := e.prompts.Get(ctx, "chat", "user_interaction", map[string]string{
		"user_id": userID,
		"context": assembleContext(memories, e.opts.MaxContextTokens),
		"query":   query,
	})
	if err != nil {
		return "", err
	}

	var answer string
	err = e.retrier.DoRetryable(ctx, func() error {
		var genErr error
		answer, genErr = e.llm.Generate(ctx, rendered)
		return genErr
	}, core.IsTransient)
	if err != nil {
		logger.Error().Err(err).Msg("llm call failed, degrading to error response")
		answer, err = e.prompts.Get(ctx, "chat", "error_response", map[string]string{
			"user_id": userID,
		})
		if err != nil {
			return "", err
		}
	}

	e.record(userID, query, memories, answer)
	return answer, nil
}

// History returns the turns of the current session, oldest first.
func (e *Engine) History() []core.ChatTurn {
	out := make([]core.ChatTurn, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Engine) record(userID, query string, memories []core.MemoryRecord, answer string) {
	e.history = append(e.history, core.ChatTurn{
		UserID:    userID,
		Query:     query,
		Retrieved: memories,
		Answer:    answer,
	})
}
