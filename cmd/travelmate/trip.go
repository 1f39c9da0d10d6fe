package main

import (
	"fmt"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/spf13/cobra"
)

func tripCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
		Long: `Add, edit, remove and list trips.

Trips are referred to by ID. Any unique prefix of an ID works, so the short
IDs shown by "trip list" can be used directly.`,
	}

	cmd.AddCommand(tripAddCmd(a))
	cmd.AddCommand(tripEditCmd(a))
	cmd.AddCommand(tripRemoveCmd(a))
	cmd.AddCommand(tripListCmd(a))
	cmd.AddCommand(tripShowCmd(a))

	return cmd
}

func addTripFlags(cmd *cobra.Command) {
	cmd.Flags().String("origin", "", "where the trip starts")
	cmd.Flags().String("dest", "", "destination")
	cmd.Flags().String("start", "", "first day (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "last day (YYYY-MM-DD)")
	cmd.Flags().String("purpose", "", "purpose of the trip")
	cmd.Flags().String("customer", "", "customer visited")
	cmd.Flags().String("project", "", "project to bill")
	cmd.Flags().String("km", "", "kilometers driven with a private car")
	cmd.Flags().Bool("breakfast", false, "breakfast was provided")
	cmd.Flags().Bool("lunch", false, "lunch was provided")
	cmd.Flags().Bool("dinner", false, "dinner was provided")
}

// tripPatch collects the trip flags given on the command line.
func tripPatch(cmd *cobra.Command) (model.TripPatch, error) {
	start, err := dateFlag(cmd, "start")
	if err != nil {
		return model.TripPatch{}, err
	}
	end, err := dateFlag(cmd, "end")
	if err != nil {
		return model.TripPatch{}, err
	}

	patch := model.TripPatch{
		Origin:           stringFlag(cmd, "origin"),
		Destination:      stringFlag(cmd, "dest"),
		StartDate:        start,
		EndDate:          end,
		Purpose:          stringFlag(cmd, "purpose"),
		Customer:         stringFlag(cmd, "customer"),
		Project:          stringFlag(cmd, "project"),
		IncludeBreakfast: boolFlag(cmd, "breakfast"),
		IncludeLunch:     boolFlag(cmd, "lunch"),
		IncludeDinner:    boolFlag(cmd, "dinner"),
	}
	if km := stringFlag(cmd, "km"); km != nil {
		v := model.ParseKilometers(*km)
		patch.MileageKm = &v
	}
	return patch, nil
}

func tripAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trip",
		Long: `Add a trip. Dates default to today; every other field starts empty.

Examples:
  # A day trip with lunch provided
  travelmate trip add --origin Berlin --dest München --km 580 --lunch

  # Three days at a trade fair
  travelmate trip add --dest Köln --start 2025-05-01 --end 2025-05-03 --purpose Messe`,
		Args: cobra.NoArgs,
		RunE: a.runTripAdd,
	}
	addTripFlags(cmd)
	return cmd
}

func (a *app) runTripAdd(cmd *cobra.Command, _ []string) error {
	patch, err := tripPatch(cmd)
	if err != nil {
		return err
	}

	store, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	trip := ws.AddTrip()
	if trip, err = ws.UpdateTrip(trip.ID, patch); err != nil {
		return err
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	printSuccess(cmd, "Added trip %s %s", cli.ShortID(trip.ID), trip.Route())
	return nil
}

func tripEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <trip-id>",
		Short: "Change fields of a trip",
		Long: `Change fields of a trip. Only the flags you pass are changed; use
--lunch=false to clear a meal flag.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runTripEdit,
	}
	addTripFlags(cmd)
	return cmd
}

func (a *app) runTripEdit(cmd *cobra.Command, args []string) error {
	patch, err := tripPatch(cmd)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return common.NewUserError("Nothing to change. Pass at least one field flag.", nil)
	}

	store, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	trip, err := ws.ResolveTrip(args[0])
	if err != nil {
		return err
	}

	if trip, err = ws.UpdateTrip(trip.ID, patch); err != nil {
		return err
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	printSuccess(cmd, "Updated trip %s %s", cli.ShortID(trip.ID), trip.Route())
	return nil
}

func tripRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <trip-id>",
		Aliases: []string{"delete"},
		Short:   "Remove a trip and its expenses",
		Args:    cobra.ExactArgs(1),
		RunE:    a.runTripRemove,
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) runTripRemove(cmd *cobra.Command, args []string) error {
	store, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	trip, err := ws.ResolveTrip(args[0])
	if err != nil {
		return err
	}

	count := len(ws.State().ExpensesFor(trip.ID))
	ok, err := confirm(cmd, fmt.Sprintf("Delete trip %s and its %d expense(s)?", trip.Route(), count))
	if err != nil {
		return err
	}
	if !ok {
		printInfo(cmd, "Operation canceled.")
		return nil
	}

	removed, err := ws.RemoveTrip(trip.ID)
	if err != nil {
		return err
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	printSuccess(cmd, "Deleted trip %s and %d expense(s)", trip.Route(), removed)
	return nil
}

func tripListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List trips with their reimbursement",
		Args:    cobra.NoArgs,
		RunE:    a.runTripList,
	}
	addListFlags(cmd)
	return cmd
}

func (a *app) runTripList(cmd *cobra.Command, _ []string) error {
	key, err := a.sortFlag(cmd)
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("filter")

	_, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	state := ws.State()

	out := cmd.OutOrStdout()
	trips := engine.VisibleTrips(state, filter, key)
	if len(trips) == 0 {
		if filter != "" {
			printInfo(cmd, "No trips match the filter.")
		} else {
			printInfo(cmd, `No trips yet. Add one with "travelmate trip add".`)
		}
		return nil
	}

	if err := cli.WriteTripTable(out, trips, state.Expenses, a.cfg.Currency); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s · sorted by %s\n",
		cli.RenderSummary(engine.Summarize(trips, state.Expenses), a.cfg.Currency), key.Label())
	return nil
}

func tripShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Show a trip with its breakdown and expenses",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTripShow,
	}
}

func (a *app) runTripShow(cmd *cobra.Command, args []string) error {
	_, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	trip, err := ws.ResolveTrip(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTripDetails(trip, ws.State().Expenses, a.cfg.Currency))
	return nil
}
