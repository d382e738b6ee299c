package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Verify your SpendGenie credentials",
		Long: `Verify that the configured credentials can log in to the backend.

Sessions are cookie-based and per-process, so there is nothing to
persist; the one-shot subcommands authenticate on their own.`,
		RunE: runLogin,
	}
}

func runLogin(cmd *cobra.Command, _ []string) error {
	client, err := newBackend()
	if err != nil {
		return err
	}

	username, err := ensureLogin(cmd.Context(), client)
	if err != nil {
		return err
	}

	slog.Info("Credentials verified", "username", username)
	return nil
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log in and immediately end the session",
		Long: `Verify the logout round trip against the backend.

Sessions are cookie-based and per-process, so this logs in with the
configured credentials and then ends that session server-side.`,
		RunE: runLogout,
	}
}

func runLogout(cmd *cobra.Command, _ []string) error {
	client, err := newBackend()
	if err != nil {
		return err
	}

	username, err := ensureLogin(cmd.Context(), client)
	if err != nil {
		return err
	}

	if err := client.Logout(cmd.Context()); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	slog.Info("Session ended", "username", username)
	return nil
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a SpendGenie account",
		RunE:  runRegister,
	}

	cmd.Flags().String("username", "", "display name for the new account")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runRegister(cmd *cobra.Command, _ []string) error {
	client, err := newBackend()
	if err != nil {
		return err
	}

	username, _ := cmd.Flags().GetString("username")
	email := viper.GetString("backend.email")
	password := viper.GetString("backend.password")
	if email == "" || password == "" {
		return fmt.Errorf("credentials missing. Use --email and --password or set SPENDGENIE_EMAIL and SPENDGENIE_PASSWORD")
	}

	created, err := client.Register(cmd.Context(), username, email, password)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	slog.Info("Account created", "username", created)
	return nil
}
