package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
)

// ShortIDLength is how many ID characters tables show. Commands accept any
// unique prefix.
const ShortIDLength = 8

// ShortID truncates id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// FormatMoney renders an amount with two decimals and its currency code.
func FormatMoney(d decimal.Decimal, c model.Currency) string {
	return d.StringFixed(2) + " " + string(c)
}

func placeholder(value, name string) string {
	if strings.TrimSpace(value) == "" {
		return "(" + name + ")"
	}
	return value
}

// TripSubtitle is the one-line description under a trip's route.
func TripSubtitle(trip model.Trip) string {
	return fmt.Sprintf("%s → %s · %s · %s · %s",
		trip.StartDate, trip.EndDate,
		placeholder(trip.Purpose, "purpose"),
		placeholder(trip.Customer, "customer"),
		placeholder(trip.Project, "project"))
}

// MealsLabel lists the provided meals, or "none".
func MealsLabel(m model.Meals) string {
	var names []string
	if m.Breakfast {
		names = append(names, "breakfast")
	}
	if m.Lunch {
		names = append(names, "lunch")
	}
	if m.Dinner {
		names = append(names, "dinner")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// WriteTripTable writes one aligned row per trip with its reimbursement.
func WriteTripTable(w io.Writer, trips []model.Trip, expenses []model.Expense, currency model.Currency) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROUTE\tSTART\tEND\tCUSTOMER\tEXPENSES\tPER-DIEM\tMILEAGE\tTOTAL")
	for _, trip := range trips {
		b := engine.TotalForTrip(trip, expenses)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			ShortID(trip.ID),
			trip.Route(),
			trip.StartDate,
			trip.EndDate,
			trip.Customer,
			b.ExpenseSum.StringFixed(2),
			b.PerDiem.StringFixed(2),
			b.Mileage.StringFixed(2),
			FormatMoney(b.Total, currency))
	}
	return tw.Flush()
}

// WriteExpenseTable writes one aligned row per expense.
func WriteExpenseTable(w io.Writer, expenses []model.Expense) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTRIP\tDATE\tCATEGORY\tAMOUNT\tNOTE")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ShortID(e.ID),
			ShortID(e.TripID),
			e.Date,
			e.Category,
			FormatMoney(decimal.NewFromFloat(e.Amount.Finite()), e.Currency),
			e.Note)
	}
	return tw.Flush()
}

// RenderSummary is the dashboard line above a trip list.
func RenderSummary(s engine.Summary, currency model.Currency) string {
	return fmt.Sprintf("%d trip(s) · total %s · average %s",
		s.TripCount,
		MoneyStyle.Render(FormatMoney(s.Total, currency)),
		FormatMoney(s.Average, currency))
}

// RenderTripDetails renders a trip, its breakdown and its expenses in a box.
func RenderTripDetails(trip model.Trip, expenses []model.Expense, currency model.Currency) string {
	b := engine.TotalForTrip(trip, expenses)
	own := (&model.AppState{Expenses: expenses}).ExpensesFor(trip.ID)

	var sb strings.Builder
	sb.WriteString(SubtitleStyle.Render(TripSubtitle(trip)))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "ID:        %s\n", trip.ID)
	fmt.Fprintf(&sb, "Mileage:   %s km\n", decimal.NewFromFloat(model.Amount(trip.MileageKm).Finite()).String())
	fmt.Fprintf(&sb, "Meals:     %s\n", MealsLabel(trip.Meals()))
	fmt.Fprintf(&sb, "Duration:  %s h\n", decimal.NewFromFloat(engine.TripHours(trip)).Round(1).String())
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Expenses %s · Per-diem %s · Mileage %s\n",
		FormatMoney(b.ExpenseSum, currency),
		FormatMoney(b.PerDiem, currency),
		FormatMoney(b.Mileage, currency))
	fmt.Fprintf(&sb, "Total    %s\n", MoneyStyle.Render(FormatMoney(b.Total, currency)))

	sb.WriteString("\n")
	sb.WriteString(BoldStyle.Render("Expenses"))
	sb.WriteString("\n")
	if len(own) == 0 {
		sb.WriteString(SubtleStyle.Render("No expenses yet."))
	} else {
		for _, e := range own {
			line := fmt.Sprintf("%s  %-9s  %s", e.Date, e.Category, FormatMoney(decimal.NewFromFloat(e.Amount.Finite()), e.Currency))
			if e.Note != "" {
				line += "  " + e.Note
			}
			sb.WriteString(line + "\n")
		}
	}

	return RenderBox(trip.Route(), strings.TrimRight(sb.String(), "\n"))
}
