package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits or the context is
// canceled.
func Run(ctx context.Context, cfg Config) error {
	program := tea.NewProgram(
		NewModel(cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
