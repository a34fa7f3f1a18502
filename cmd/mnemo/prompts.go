package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/mnemo/internal/config"
	"github.com/sandevgo/mnemo/internal/prompt"
	"github.com/sandevgo/mnemo/internal/ui"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts [category] [name]",
	Short: "List prompt templates or show one template's details",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		if err := prompt.EnsureLayout(appCfg.PromptsDir); err != nil {
			return err
		}
		store, err := prompt.Load(ctx, appCfg.PromptsDir)
		if err != nil {
			return err
		}

		switch len(args) {
		case 0:
			for _, category := range store.Categories() {
				names, err := store.Prompts(category)
				if err != nil {
					return err
				}
				fmt.Println(ui.SummaryStyle.Render(category))
				for _, name := range names {
					fmt.Printf("  %s\n", name)
				}
			}
		case 1:
			names, err := store.Prompts(args[0])
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
		case 2:
			info, err := store.Info(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("path:      %s\n", info.Path)
			fmt.Printf("variables: %s\n", strings.Join(info.Variables, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptsCmd)
}
