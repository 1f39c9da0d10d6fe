package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/workspace"
	"github.com/spf13/cobra"
)

func initCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the workspace file",
		Long: `Create an empty workspace file at the configured path.

With --demo the workspace starts with a sample trip from Berlin to München
so that every command has something to show.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}

	cmd.Flags().Bool("demo", false, "seed the workspace with a sample trip")
	cmd.Flags().BoolP("force", "f", false, "overwrite an existing workspace file")

	return cmd
}

func (a *app) runInit(cmd *cobra.Command, _ []string) error {
	demo, _ := cmd.Flags().GetBool("demo")
	force, _ := cmd.Flags().GetBool("force")

	store, err := a.initStorage()
	if err != nil {
		return err
	}

	_, err = os.Stat(store.Path())
	switch {
	case err == nil && !force:
		return common.NewUserError(
			fmt.Sprintf("A workspace already exists at %s. Use --force to replace it.", store.Path()), nil)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to check workspace file: %w", err)
	}

	ws := workspace.New(&model.AppState{}, workspace.WithDefaultCurrency(a.cfg.Currency))
	if demo {
		ws.Seed()
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Travel Mate"))
	printSuccess(cmd, "Created workspace %s", store.Path())
	if demo {
		state := ws.State()
		fmt.Fprintln(out, cli.RenderTripDetails(state.Trips[0], state.Expenses, a.cfg.Currency))
	}
	return nil
}
