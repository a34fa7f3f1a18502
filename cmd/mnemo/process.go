package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/mnemo/internal/extract"
	"github.com/sandevgo/mnemo/internal/service/pipeline"
	"github.com/sandevgo/mnemo/internal/ui"
)

var processUser string

var processCmd = &cobra.Command{
	Use:   "process [directories...]",
	Short: "Extract facts from markdown files and store them as memories",
	Long:  `Walks the given directories (or the configured ones), parses every markdown file into timestamped entries, extracts facts with the language model and stores them for the user.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctx, flushLog := setupLogger(ctx)
		defer flushLog()

		s, err := buildStack(ctx, "extraction")
		if err != nil {
			return err
		}

		userID := processUser
		if userID == "" {
			userID = s.appCfg.UserID
		}

		dirs := args
		if len(dirs) == 0 {
			dirs = s.appCfg.MarkdownDirs
		}

		extractor := extract.New(s.llm, s.prompts, s.retrier)
		runner := pipeline.NewRunner(extractor, s.provider, s.retrier, extract.Options{
			BatchSize:  s.appCfg.BatchSize,
			BatchDelay: s.appCfg.BatchDelay,
		})

		stats, err := runner.Run(ctx, userID, dirs, s.appCfg.Recursive)
		if err != nil {
			return err
		}

		fmt.Println(ui.SummaryStyle.Render("PROCESSING SUMMARY"))
		fmt.Printf("  Files processed:  %d\n", stats.FilesProcessed)
		fmt.Printf("  Files failed:     %d\n", stats.FilesFailed)
		fmt.Printf("  Facts extracted:  %d\n", stats.FactsExtracted)
		fmt.Printf("  Facts added:      %d\n", stats.FactsAdded)
		return nil
	},
}

func init() {
	processCmd.Flags().StringVarP(&processUser, "user", "u", "", "user id to store memories under (defaults to MNEMO_USER_ID)")
	rootCmd.AddCommand(processCmd)
}
