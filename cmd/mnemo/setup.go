package main

import (
	"context"

	"github.com/sandevgo/mnemo/internal/config"
	"github.com/sandevgo/mnemo/internal/core"
	"github.com/sandevgo/mnemo/internal/memory"
	"github.com/sandevgo/mnemo/internal/prompt"
	"github.com/sandevgo/mnemo/internal/providers/llm"
	"github.com/sandevgo/mnemo/pkg/retry"
)

// stack bundles the wired components every subcommand needs.
type stack struct {
	appCfg   *config.AppConfig
	prompts  *prompt.Store
	provider core.Provider
	llm      core.LLM
	retrier  *retry.Retrier
}

func buildStack(ctx context.Context, requiredCategories ...string) (*stack, error) {
	appCfg := config.NewAppConfig(ctx)
	provCfg := config.NewProviderConfig(ctx)

	if err := prompt.EnsureLayout(appCfg.PromptsDir); err != nil {
		return nil, err
	}
	prompts, err := prompt.Load(ctx, appCfg.PromptsDir)
	if err != nil {
		return nil, err
	}
	if len(requiredCategories) > 0 {
		if err := prompts.Require(requiredCategories...); err != nil {
			return nil, err
		}
	}

	provider, err := memory.NewProvider(ctx, appCfg, provCfg)
	if err != nil {
		return nil, err
	}

	model, err := llm.NewProvider(ctx, provCfg)
	if err != nil {
		return nil, err
	}

	retryCfg := retry.NewDefaultConfig()
	retryCfg.MaxRetries = appCfg.MaxRetries

	return &stack{
		appCfg:   appCfg,
		prompts:  prompts,
		provider: provider,
		llm:      model,
		retrier:  retry.NewRetrier(retryCfg),
	}, nil
}
