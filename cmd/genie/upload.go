package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spendgenie/genie/internal/config"
	"github.com/spf13/cobra"
)

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.csv>",
		Short: "Upload a bank statement CSV",
		Long: `Upload a bank statement CSV to the backend for parsing.

The file needs Date, Description and Amount columns; the backend
reports what it found after import.`,
		Args: cobra.ExactArgs(1),
		RunE: runUpload,
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := config.ExpandPath(args[0])

	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return fmt.Errorf("only CSV files are accepted: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("Failed to close file", "error", closeErr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat file: %w", err)
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

	bar := progressbar.DefaultBytes(info.Size(), "Uploading "+filepath.Base(path))
	reader := progressbar.NewReader(file, bar)

	result, err := client.Upload(ctx, filepath.Base(path), &reader)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	slog.Info("Upload complete", "message", result.Message, "rows", result.Rows, "columns", result.Columns)
	return nil
}
