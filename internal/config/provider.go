package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mnemo/pkg/log"
)

// ProviderConfig selects the memory backend and the model endpoints it
// talks to. The core treats the resulting provider as an opaque handle.
type ProviderConfig struct {
	MemoryBackend string `env:"MNEMO_MEMORY_BACKEND" envDefault:"sqlite"`

	LLMProvider string `env:"MNEMO_LLM_PROVIDER" envDefault:"ollama"`
	LLMModel    string `env:"MNEMO_LLM_MODEL" envDefault:"llama3.1:latest"`

	EmbedModel string `env:"MNEMO_EMBED_MODEL" envDefault:"nomic-embed-text:latest"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"OLLAMA_API_KEY"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	CustomBaseURL string `env:"MNEMO_CUSTOM_BASE_URL"`
	CustomAPIKey  string `env:"MNEMO_CUSTOM_API_KEY"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse provider config")
	}
	return c
}
