package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/mnemo/internal/config"
	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/pkg/log"
)

var errEmptyChoices = errors.New("empty choices in completion response")

// NewProvider selects the language model backend from configuration.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig) (core.LLM, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.LLMProvider).
		Str("model", cfg.LLMModel).
		Msg("starting llm provider")

	switch cfg.LLMProvider {
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.LLMModel), nil
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.LLMModel), nil
	case "custom":
		return NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, cfg.LLMModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.LLMProvider)
	}
}
