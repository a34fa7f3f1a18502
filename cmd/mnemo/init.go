package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandevgo/mnemo/internal/config"
	"github.com/sandevgo/mnemo/internal/prompt"
	"github.com/sandevgo/mnemo/pkg/env"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the prompt skeleton and a starter .env",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		if err := prompt.EnsureLayout(appCfg.PromptsDir); err != nil {
			return err
		}
		fmt.Printf("prompt templates ready under %s\n", appCfg.PromptsDir)

		if _, err := os.Stat(".env"); err == nil {
			fmt.Println(".env already exists, leaving it alone")
			return nil
		}

		provCfg := config.NewProviderConfig(ctx)
		appEnv, err := env.MarshalEnv(appCfg)
		if err != nil {
			return err
		}
		provEnv, err := env.MarshalEnv(provCfg)
		if err != nil {
			return err
		}

		if err := os.WriteFile(".env", []byte(appEnv+provEnv), 0o644); err != nil {
			return err
		}
		fmt.Println("wrote .env with the current configuration")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
