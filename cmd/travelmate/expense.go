package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/ofx"
	"github.com/spf13/cobra"
)

func expenseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Manage the expenses of a trip",
	}

	cmd.AddCommand(expenseAddCmd(a))
	cmd.AddCommand(expenseEditCmd(a))
	cmd.AddCommand(expenseRemoveCmd(a))
	cmd.AddCommand(expenseListCmd(a))
	cmd.AddCommand(expenseImportOFXCmd(a))

	return cmd
}

func addExpenseFlags(cmd *cobra.Command) {
	cmd.Flags().String("date", "", "day of the expense (YYYY-MM-DD)")
	cmd.Flags().String("category", "", "Hotel, Transport, Meal or Other")
	cmd.Flags().String("amount", "", "amount, e.g. 49.90 or 49,90")
	cmd.Flags().String("currency", "", "EUR, USD, GBP or CHF (default from config)")
	cmd.Flags().String("note", "", "free text")
}

// expensePatch collects the expense flags given on the command line.
func expensePatch(cmd *cobra.Command) (model.ExpensePatch, error) {
	date, err := dateFlag(cmd, "date")
	if err != nil {
		return model.ExpensePatch{}, err
	}
	patch := model.ExpensePatch{
		Date: date,
		Note: stringFlag(cmd, "note"),
	}

	if v := stringFlag(cmd, "category"); v != nil {
		category, err := model.ParseCategory(*v)
		if err != nil {
			return model.ExpensePatch{}, common.NewUserError(
				fmt.Sprintf("Unknown category %q. Use Hotel, Transport, Meal or Other.", *v), err)
		}
		patch.Category = &category
	}
	if v := stringFlag(cmd, "currency"); v != nil {
		currency, err := model.ParseCurrency(*v)
		if err != nil {
			return model.ExpensePatch{}, common.NewUserError(
				fmt.Sprintf("Unknown currency %q. Use EUR, USD, GBP or CHF.", *v), err)
		}
		patch.Currency = &currency
	}
	if v := stringFlag(cmd, "amount"); v != nil {
		amount := model.ParseAmount(*v)
		patch.Amount = &amount
	}
	return patch, nil
}

func expenseAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <trip-id>",
		Short: "Add an expense to a trip",
		Long: `Add an expense to a trip. The date defaults to today, the category to
Other and the currency to the configured default.

Examples:
  travelmate expense add 3f2a --category Transport --amount 49.90 --note "ICE Ticket"`,
		Args: cobra.ExactArgs(1),
		RunE: a.runExpenseAdd,
	}
	addExpenseFlags(cmd)
	return cmd
}

func (a *app) runExpenseAdd(cmd *cobra.Command, args []string) error {
	patch, err := expensePatch(cmd)
	if err != nil {
		return err
	}

	store, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	trip, err := ws.ResolveTrip(args[0])
	if err != nil {
		return err
	}

	e, err := ws.AddExpense(trip.ID)
	if err != nil {
		return err
	}
	if e, err = ws.UpdateExpense(e.ID, patch); err != nil {
		return err
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	printSuccess(cmd, "Added %s expense %s to %s", e.Category, cli.ShortID(e.ID), trip.Route())
	return nil
}

func expenseEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <expense-id>",
		Short: "Change fields of an expense",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runExpenseEdit,
	}
	addExpenseFlags(cmd)
	return cmd
}

func (a *app) runExpenseEdit(cmd *cobra.Command, args []string) error {
	patch, err := expensePatch(cmd)
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
	e, err := ws.ResolveExpense(args[0])
	if err != nil {
		return err
	}

	if e, err = ws.UpdateExpense(e.ID, patch); err != nil {
		return err
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	printSuccess(cmd, "Updated expense %s", cli.ShortID(e.ID))
	return nil
}

func expenseRemoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <expense-id>",
		Aliases: []string{"delete"},
		Short:   "Remove an expense",
		Args:    cobra.ExactArgs(1),
		RunE:    a.runExpenseRemove,
	}
	cmd.Flags().BoolP("yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) runExpenseRemove(cmd *cobra.Command, args []string) error {
	store, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}
	e, err := ws.ResolveExpense(args[0])
	if err != nil {
		return err
	}

	ok, err := confirm(cmd, fmt.Sprintf("Delete %s expense from %s?", e.Category, e.Date))
	if err != nil {
		return err
	}
	if !ok {
		printInfo(cmd, "Operation canceled.")
		return nil
	}

	if err := ws.RemoveExpense(e.ID); err != nil {
		return err
	}
	if err := saveWorkspace(cmd.Context(), store, ws); err != nil {
		return err
	}

	printSuccess(cmd, "Deleted expense %s", cli.ShortID(e.ID))
	return nil
}

func expenseListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list [trip-id]",
		Aliases: []string{"ls"},
		Short:   "List expenses, of one trip or of all trips",
		Args:    cobra.MaximumNArgs(1),
		RunE:    a.runExpenseList,
	}
}

func (a *app) runExpenseList(cmd *cobra.Command, args []string) error {
	_, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	expenses := ws.State().Expenses
	if len(args) == 1 {
		trip, err := ws.ResolveTrip(args[0])
		if err != nil {
			return err
		}
		expenses = ws.State().ExpensesFor(trip.ID)
	}

	if len(expenses) == 0 {
		printInfo(cmd, "No expenses.")
		return nil
	}
	if err := cli.WriteExpenseTable(cmd.OutOrStdout(), expenses); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func expenseImportOFXCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx <trip-id> <file>",
		Short: "Add card and bank debits from an OFX/QFX file to a trip",
		Long: `Read an OFX or QFX statement exported from your bank and add every debit
posted during the trip as an expense. Categories are guessed from the payee.

Examples:
  # Preview what would be added
  travelmate expense import-ofx 3f2a ~/Downloads/giro_juni.qfx --dry-run`,
		Args: cobra.ExactArgs(2),
		RunE: a.runExpenseImportOFX,
	}
	cmd.Flags().BoolP("dry-run", "d", false, "show the expenses without saving them")
	return cmd
}

func (a *app) runExpenseImportOFX(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	ctx := cmd.Context()

	store, ws, err := a.loadWorkspace(ctx)
	if err != nil {
		return err
	}
	trip, err := ws.ResolveTrip(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[1], err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("Failed to close OFX file", "file", args[1], "error", closeErr)
		}
	}()

	expenses, err := ofx.NewImporter(a.cfg.Currency).Expenses(ctx, f, trip)
	if err != nil {
		return common.NewUserError("Could not read the OFX file.", err)
	}
	if len(expenses) == 0 {
		printInfo(cmd, fmt.Sprintf("No debits between %s and %s.", trip.StartDate, trip.EndDate))
		return nil
	}

	if dryRun {
		if err := cli.WriteExpenseTable(cmd.OutOrStdout(), expenses); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
		printInfo(cmd, fmt.Sprintf("Dry run: %d expense(s) not saved.", len(expenses)))
		return nil
	}

	added, err := ws.AttachExpenses(trip.ID, expenses)
	if err != nil {
		return err
	}
	if err := saveWorkspace(ctx, store, ws); err != nil {
		return err
	}

	if err := cli.WriteExpenseTable(cmd.OutOrStdout(), added); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	printSuccess(cmd, "Added %d expense(s) to %s", len(added), trip.Route())
	return nil
}
