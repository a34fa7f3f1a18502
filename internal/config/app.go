package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/mnemo/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"MNEMO_RUNTIME_PATH" envDefault:".mnemo"`
	UserID      string `env:"MNEMO_USER_ID" envDefault:"default"`
	PromptsDir  string `env:"MNEMO_PROMPTS_DIR" envDefault:"prompts"`

	// Ingestion
	MarkdownDirs []string `env:"MNEMO_MARKDOWN_DIRS" envSeparator:":" envDefault:"./markdown"`
	Recursive    bool     `env:"MNEMO_RECURSIVE" envDefault:"true"`

	// Extraction batching
	BatchSize  int           `env:"MNEMO_BATCH_SIZE" envDefault:"10"`
	BatchDelay time.Duration `env:"MNEMO_BATCH_DELAY" envDefault:"500ms"`

	// Chat
	TopK             int `env:"MNEMO_TOP_K" envDefault:"5"`
	MaxContextTokens int `env:"MNEMO_MAX_CONTEXT_TOKENS" envDefault:"2000"`

	// Retry policy shared by extraction, chat and provider calls
	MaxRetries int `env:"MNEMO_MAX_RETRIES" envDefault:"3"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "mnemo.db")
}
