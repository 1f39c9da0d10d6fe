package main

import (
	"fmt"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/spf13/cobra"
)

func exportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Write a timestamped copy of the workspace",
		Long: `Write the workspace to travel-mate-<unix millis>.json in dir, or in the
current directory when no dir is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runExport,
	}
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	store, err := a.initStorage()
	if err != nil {
		return err
	}
	path, err := store.Export(cmd.Context(), dir)
	if err != nil {
		return snapshotError(fmt.Errorf("failed to export workspace: %w", err))
	}

	printSuccess(cmd, "%s Exported workspace to %s", cli.FolderIcon, path)
	return nil
}

func importCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the workspace with an exported file",
		Long: `Replace the whole workspace with the contents of a file written by
"travelmate export". The file is checked completely first; if it is not a
valid workspace nothing is changed.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runImport,
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, args []string) error {
	store, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	current := ws.State()
	if len(current.Trips) > 0 || len(current.Expenses) > 0 {
		ok, err := confirm(cmd, fmt.Sprintf("Replace %d trip(s) and %d expense(s) with %s?",
			len(current.Trips), len(current.Expenses), args[0]))
		if err != nil {
			return err
		}
		if !ok {
			printInfo(cmd, "Operation canceled.")
			return nil
		}
	}

	state, err := store.Import(cmd.Context(), args[0])
	if err != nil {
		return snapshotError(fmt.Errorf("failed to import %s: %w", args[0], err))
	}

	printSuccess(cmd, "Imported %d trip(s) and %d expense(s)", len(state.Trips), len(state.Expenses))
	if orphans := state.Orphans(); len(orphans) > 0 {
		printInfo(cmd, fmt.Sprintf("%d expense(s) belong to no trip and are left out of all totals.", len(orphans)))
	}
	return nil
}
