package main

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sandevgo/mnemo/internal/chat"
	"github.com/sandevgo/mnemo/internal/ui"
)

var chatUser string

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question against stored memories",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		s, err := buildStack(ctx, "chat")
		if err != nil {
			return err
		}

		engine := newChatEngine(s)
		answer, err := engine.Answer(ctx, userOrDefault(s), strings.Join(args, " "))
		if err != nil {
			return err
		}

		fmt.Println(answer)
		return nil
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive chat session against stored memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		ctx, flushLog := setupLogger(ctx)
		defer flushLog()

		s, err := buildStack(ctx, "chat")
		if err != nil {
			return err
		}

		engine := newChatEngine(s)
		userID := userOrDefault(s)

		fmt.Println(ui.SummaryStyle.Render("Chatting as " + userID + ". Type 'exit' to quit."))
		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() || ctx.Err() != nil {
				break
			}
			query := strings.TrimSpace(scanner.Text())
			if query == "" {
				continue
			}
			if query == "exit" || query == "quit" {
				break
			}

			answer, err := engine.Answer(ctx, userID, query)
			if err != nil {
				fmt.Println(ui.WarnStyle.Render("error: " + err.Error()))
				continue
			}
			fmt.Println(answer)
		}
		return scanner.Err()
	},
}

func newChatEngine(s *stack) *chat.Engine {
	return chat.NewEngine(s.provider, s.llm, s.prompts, s.retrier, chat.Options{
		TopK:             s.appCfg.TopK,
		MaxContextTokens: s.appCfg.MaxContextTokens,
	})
}

func userOrDefault(s *stack) string {
	if chatUser != "" {
		return chatUser
	}
	return s.appCfg.UserID
}

func init() {
	askCmd.Flags().StringVarP(&chatUser, "user", "u", "", "user id to query memories for")
	chatCmd.Flags().StringVarP(&chatUser, "user", "u", "", "user id to query memories for")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(chatCmd)
}
