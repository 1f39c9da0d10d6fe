package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/travel-mate/internal/cli"
	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/report"
	"github.com/spf13/cobra"
)

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Produce reports for accounting",
	}

	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Write visible trips with their totals as CSV",
		Long: `Write one CSV row per visible trip with its expenses, per-diem, mileage
and total, followed by a TOTAL row. Output goes to stdout unless -o is given.`,
		Args: cobra.NoArgs,
		RunE: a.runReportCSV,
	}
	csvCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	addListFlags(csvCmd)

	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Render trip totals as a PNG pie chart",
		Args:  cobra.NoArgs,
		RunE:  a.runReportChart,
	}
	chartCmd.Flags().StringP("output", "o", "", "PNG file to write")
	_ = chartCmd.MarkFlagRequired("output")
	addListFlags(chartCmd)

	cmd.AddCommand(csvCmd)
	cmd.AddCommand(chartCmd)
	return cmd
}

func (a *app) runReportCSV(cmd *cobra.Command, _ []string) error {
	key, err := a.sortFlag(cmd)
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("filter")
	output, _ := cmd.Flags().GetString("output")

	_, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	if output == "" {
		if err := report.WriteCSV(cmd.OutOrStdout(), ws.State(), filter, key); err != nil {
			return fmt.Errorf("failed to write CSV: %w", err)
		}
		return nil
	}

	f, err := os.Create(output) //nolint:gosec // path comes from the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := writeCSVAndClose(f, ws.State(), filter, key); err != nil {
		return err
	}
	printSuccess(cmd, "%s Wrote %s", cli.ChartIcon, output)
	return nil
}

// writeCSVAndClose writes the CSV report to w and closes it. A failed close
// is an error because the file may be incomplete.
func writeCSVAndClose(w io.WriteCloser, state *model.AppState, filter string, key engine.SortKey) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close report: %w", closeErr)
		}
	}()

	if err := report.WriteCSV(w, state, filter, key); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

func (a *app) runReportChart(cmd *cobra.Command, _ []string) error {
	key, err := a.sortFlag(cmd)
	if err != nil {
		return err
	}
	filter, _ := cmd.Flags().GetString("filter")
	output, _ := cmd.Flags().GetString("output")

	_, ws, err := a.loadWorkspace(cmd.Context())
	if err != nil {
		return err
	}

	png, err := report.Chart(ws.State(), filter, key)
	if errors.Is(err, report.ErrNothingToChart) {
		return common.NewUserError("No trip has a total above zero, so there is nothing to chart.", err)
	}
	if err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if err := os.WriteFile(output, png, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	printSuccess(cmd, "%s Wrote %s", cli.ChartIcon, output)
	return nil
}
