package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/storage"
	"github.com/Veraticus/travel-mate/internal/workspace"
	"github.com/spf13/cobra"
)

// initStorage opens the configured workspace file.
func (a *app) initStorage() (*storage.FileStore, error) {
	store, err := storage.NewFileStore(a.cfg.WorkspacePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return store, nil
}

// loadWorkspace reads the workspace file into an editable workspace.
func (a *app) loadWorkspace(ctx context.Context) (*storage.FileStore, *workspace.Workspace, error) {
	store, err := a.initStorage()
	if err != nil {
		return nil, nil, err
	}

	state, err := store.Load(ctx)
	if err != nil {
		return nil, nil, snapshotError(fmt.Errorf("failed to load workspace %s: %w", store.Path(), err))
	}
	return store, workspace.New(state, workspace.WithDefaultCurrency(a.cfg.Currency)), nil
}

// snapshotError turns snapshot decode failures into messages for the user.
func snapshotError(err error) error {
	switch {
	case errors.Is(err, storage.ErrInvalidShape):
		return common.NewUserError("Invalid JSON shape.", err)
	case errors.Is(err, storage.ErrMalformedSnapshot):
		return common.NewUserError("Could not parse JSON.", err)
	default:
		return err
	}
}

func saveWorkspace(ctx context.Context, store *storage.FileStore, ws *workspace.Workspace) error {
	if err := store.Save(ctx, ws.State()); err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	return nil
}

// confirm asks on the command's output unless --yes was given.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	reader := cli.NewNonBlockingReader(cmd.InOrStdin())
	ok, err := cli.Confirm(cmd.Context(), reader, cmd.OutOrStdout(), question)
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	return ok, nil
}

// sortFlag reads --sort, falling back to the configured default.
func (a *app) sortFlag(cmd *cobra.Command) (engine.SortKey, error) {
	if !cmd.Flags().Changed("sort") {
		return a.cfg.Sort, nil
	}
	value, _ := cmd.Flags().GetString("sort")
	key, ok := engine.ParseSortKey(value)
	if !ok {
		return "", common.NewUserError(
			fmt.Sprintf("Unknown sort key %q. Use start, dest or expense.", value), nil)
	}
	return key, nil
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("filter", "", "only trips whose destination, purpose, customer or project contains this text")
	cmd.Flags().String("sort", "", "sort by start, dest or expense (default from config)")
}

// stringFlag returns the flag's value if it was set on the command line.
func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetString(name)
	return &value
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	value, _ := cmd.Flags().GetBool(name)
	return &value
}

// dateFlag is stringFlag for YYYY-MM-DD values.
func dateFlag(cmd *cobra.Command, name string) (*string, error) {
	value := stringFlag(cmd, name)
	if value == nil {
		return nil, nil
	}
	if _, err := time.Parse(model.DateLayout, *value); err != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("--%s must be a date like 2025-06-02.", name), err)
	}
	return value, nil
}

func printSuccess(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(format, args...)))
}

func printInfo(cmd *cobra.Command, message string) {
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(message))
}
