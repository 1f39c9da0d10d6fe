// Package report renders trip lists as CSV and as PNG charts.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
)

// TotalLabel marks the summary row of a CSV report.
const TotalLabel = "TOTAL"

// Header is the first row of a CSV report.
var Header = []string{
	"id", "origin", "destination", "startDate", "endDate",
	"purpose", "customer", "project", "mileageKm",
	"expenses", "perDiem", "mileage", "total",
}

// WriteCSV writes one row per trip matching filter, ordered by key, and a
// final TOTAL row.
func WriteCSV(w io.Writer, state *model.AppState, filter string, key engine.SortKey) error {
	if state == nil {
		state = &model.AppState{}
	}
	trips := engine.VisibleTrips(state, filter, key)

	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, trip := range trips {
		b := engine.TotalForTrip(trip, state.Expenses)
		row := []string{
			trip.ID,
			trip.Origin,
			trip.Destination,
			trip.StartDate,
			trip.EndDate,
			trip.Purpose,
			trip.Customer,
			trip.Project,
			formatKm(trip.MileageKm),
			b.ExpenseSum.StringFixed(2),
			b.PerDiem.StringFixed(2),
			b.Mileage.StringFixed(2),
			b.Total.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	sum := engine.Summarize(trips, state.Expenses)
	totalRow := make([]string, len(Header))
	totalRow[0] = TotalLabel
	totalRow[9] = sum.ExpenseSum.StringFixed(2)
	totalRow[10] = sum.PerDiem.StringFixed(2)
	totalRow[11] = sum.Mileage.StringFixed(2)
	totalRow[12] = sum.Total.StringFixed(2)
	if err := writer.Write(totalRow); err != nil {
		return fmt.Errorf("failed to write CSV total: %w", err)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}
	return nil
}

func formatKm(km float64) string {
	if math.IsNaN(km) || math.IsInf(km, 0) {
		return "0"
	}
	return strconv.FormatFloat(km, 'f', -1, 64)
}
