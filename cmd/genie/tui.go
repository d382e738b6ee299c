package main

import (
	"github.com/spendgenie/genie/internal/session"
	"github.com/spendgenie/genie/internal/tui"
	"github.com/spendgenie/genie/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	backend, err := newBackend()
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), tui.Config{
		Backend: backend,
		Store:   session.NewStore(backend),
		Theme:   themes.ByName(viper.GetString("ui.theme")),
	})
}
