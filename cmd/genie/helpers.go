package main

import (
	"context"
	"fmt"

	"github.com/spendgenie/genie/internal/api"
	"github.com/spf13/viper"
)

// newBackend builds an API client from the resolved configuration.
func newBackend() (*api.Client, error) {
	client, err := api.NewClient(api.Config{
		BaseURL: viper.GetString("backend.url"),
		Timeout: viper.GetDuration("backend.timeout"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// ensureLogin authenticates the client with the configured credentials.
// The session cookie lives in the client's jar, so every one-shot
// subcommand logs in within its own process.
func ensureLogin(ctx context.Context, client *api.Client) (string, error) {
	email := viper.GetString("backend.email")
	password := viper.GetString("backend.password")

	if email == "" || password == "" {
		return "", fmt.Errorf("credentials missing. Set backend.email and backend.password in the config file, use --email and --password, or set SPENDGENIE_EMAIL and SPENDGENIE_PASSWORD")
	}

	username, err := client.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}

	return username, nil
}
