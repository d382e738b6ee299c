package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat -m <message>",
		Short: "Ask the SpendGenie assistant a question",
		Long: `Send one question to the SpendGenie assistant and print the reply.

The assistant answers from your uploaded spending data; try questions
like "What is my biggest expense category?" or "Predict my next month's
spending".`,
		RunE: runChat,
	}

	cmd.Flags().StringP("message", "m", "", "the question to ask")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func runChat(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	raw, _ := cmd.Flags().GetString("message")
	message := strings.TrimSpace(raw)
	if message == "" {
		return fmt.Errorf("message is empty")
	}

	client, err := newBackend()
	if err != nil {
		return err
	}

	username, err := ensureLogin(ctx, client)
	if err != nil {
		return err
	}
	slog.Info("Logged in", "username", username)

	reply, err := client.Chat(ctx, message)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}

	fmt.Println(reply)
	return nil
}
