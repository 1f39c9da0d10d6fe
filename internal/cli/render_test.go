package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoTrip() model.Trip {
	return model.Trip{
		ID:           "0f8c2a4e-1111-2222-3333-444455556666",
		Origin:       "Berlin",
		Destination:  "München",
		StartDate:    "2025-06-02",
		EndDate:      "2025-06-02",
		Purpose:      "Kundentermin",
		Customer:     "ACME GmbH",
		Project:      "Rollout",
		MileageKm:    580,
		IncludeLunch: true,
	}
}

func demoExpenses() []model.Expense {
	return []model.Expense{{
		ID:       "9a9a9a9a-0000",
		TripID:   "0f8c2a4e-1111-2222-3333-444455556666",
		Date:     "2025-06-02",
		Category: model.CategoryTransport,
		Amount:   49.9,
		Currency: model.EUR,
		Note:     "ICE Ticket",
	}}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0f8c2a4e", ShortID(demoTrip().ID))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "232.30 EUR", FormatMoney(decimal.RequireFromString("232.3"), model.EUR))
	assert.Equal(t, "0.00 CHF", FormatMoney(decimal.Zero, model.CHF))
}

func TestTripSubtitle(t *testing.T) {
	assert.Equal(t, "2025-06-02 → 2025-06-02 · Kundentermin · ACME GmbH · Rollout", TripSubtitle(demoTrip()))
	assert.Equal(t, " →  · (purpose) · (customer) · (project)", TripSubtitle(model.Trip{}))
}

func TestMealsLabel(t *testing.T) {
	assert.Equal(t, "none", MealsLabel(model.Meals{}))
	assert.Equal(t, "breakfast, dinner", MealsLabel(model.Meals{Breakfast: true, Dinner: true}))
}

func TestWriteTripTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTripTable(&buf, []model.Trip{demoTrip()}, demoExpenses(), model.EUR))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	for _, want := range []string{"0f8c2a4e", "Berlin → München", "ACME GmbH", "49.90", "8.40", "174.00", "232.30 EUR"} {
		assert.Contains(t, lines[1], want)
	}
}

func TestWriteExpenseTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExpenseTable(&buf, demoExpenses()))

	out := buf.String()
	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "Transport")
	assert.Contains(t, out, "49.90 EUR")
	assert.Contains(t, out, "ICE Ticket")
}

func TestRenderSummary(t *testing.T) {
	s := engine.Summarize([]model.Trip{demoTrip()}, demoExpenses())
	out := RenderSummary(s, model.EUR)
	assert.Contains(t, out, "1 trip(s)")
	assert.Contains(t, out, "232.30 EUR")
}

func TestRenderTripDetails(t *testing.T) {
	out := RenderTripDetails(demoTrip(), demoExpenses(), model.EUR)
	for _, want := range []string{"Berlin → München", "Meals:     lunch", "580 km", "10 h", "232.30 EUR", "ICE Ticket"} {
		assert.Contains(t, out, want)
	}
	assert.True(t, hasHeading(out, "Expenses"), "expense list has a heading:\n%s", out)

	empty := RenderTripDetails(model.Trip{ID: "x", StartDate: "2025-01-01", EndDate: "2025-01-01"}, nil, model.EUR)
	assert.Contains(t, empty, "No expenses yet.")
	assert.Contains(t, empty, "(origin) → (destination)")
}

// hasHeading reports whether some line of a boxed render holds only heading.
func hasHeading(out, heading string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.Trim(line, "│┃║|  ") == heading {
			return true
		}
	}
	return false
}
