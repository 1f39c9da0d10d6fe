package main

import (
	"github.com/Veraticus/travel-mate/internal/tui"
	"github.com/Veraticus/travel-mate/internal/tui/themes"
	"github.com/spf13/cobra"
)

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit trips interactively",
		Long: `Open the interactive trip browser. Press ? inside for the key bindings.

Edits are kept in memory until you press w or quit with q.`,
		Args: cobra.NoArgs,
		RunE: a.runTUI,
	}
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	store, err := a.initStorage()
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(),
		tui.WithStorage(store),
		tui.WithDefaultCurrency(a.cfg.Currency),
		tui.WithSort(a.cfg.Sort),
		tui.WithTheme(themes.GetTheme(a.cfg.Theme)),
	)
}
