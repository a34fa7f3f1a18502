package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandevgo/mnemo/internal/ui"
)

var (
	memoriesUser string
	resetYes     bool
)

var memoriesCmd = &cobra.Command{
	Use:   "memories",
	Short: "Inspect or wipe stored memories",
}

var memoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every stored memory for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}

		userID := memoriesUser
		if userID == "" {
			userID = s.appCfg.UserID
		}

		records, err := s.provider.GetAll(ctx, userID)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Printf("no memories stored for %s\n", userID)
			return nil
		}

		fmt.Println(ui.SummaryStyle.Render(fmt.Sprintf("%d memories for %s", len(records), userID)))
		for _, r := range records {
			fmt.Printf("  [%s] %s\n", r.CreatedAt.Format("2006-01-02"), r.Text)
		}
		return nil
	},
}

var memoriesResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every stored memory for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		s, err := buildStack(ctx)
		if err != nil {
			return err
		}

		userID := memoriesUser
		if userID == "" {
			userID = s.appCfg.UserID
		}

		// Reset is irreversible; the provider call only happens after
		// an explicit confirmation at this layer.
		if !resetYes {
			fmt.Println(ui.WarnStyle.Render(fmt.Sprintf("this deletes ALL memories for %q, re-run with --yes to confirm", userID)))
			return nil
		}

		if err := s.provider.Reset(ctx, userID); err != nil {
			return err
		}
		fmt.Printf("memories for %s deleted\n", userID)
		return nil
	},
}

func init() {
	memoriesCmd.PersistentFlags().StringVarP(&memoriesUser, "user", "u", "", "user id (defaults to MNEMO_USER_ID)")
	memoriesResetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the irreversible wipe")
	memoriesCmd.AddCommand(memoriesListCmd)
	memoriesCmd.AddCommand(memoriesResetCmd)
	rootCmd.AddCommand(memoriesCmd)
}
