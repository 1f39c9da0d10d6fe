package report

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportState() *model.AppState {
	return &model.AppState{
		Trips: []model.Trip{
			{
				ID:           "t1",
				Origin:       "Berlin",
				Destination:  "München",
				StartDate:    "2025-06-02",
				EndDate:      "2025-06-02",
				Purpose:      "Kundentermin",
				Customer:     "ACME GmbH",
				Project:      "Rollout",
				MileageKm:    580,
				IncludeLunch: true,
			},
			{
				ID:          "t2",
				Origin:      "Köln",
				Destination: "Hamburg",
				StartDate:   "2025-05-01",
				EndDate:     "2025-05-01",
				MileageKm:   math.NaN(),
			},
		},
		Expenses: []model.Expense{
			{ID: "e1", TripID: "t1", Category: model.CategoryTransport, Amount: 49.9, Currency: model.EUR},
			{ID: "e2", TripID: "t2", Category: model.CategoryMeal, Amount: 10, Currency: model.EUR},
		},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, reportState(), "", engine.SortByStart))

	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 4)
	assert.Equal(t, Header, records[0])

	// Sorted by start date: Köln trip first.
	assert.Equal(t, []string{
		"t2", "Köln", "Hamburg", "2025-05-01", "2025-05-01", "", "", "", "0",
		"10.00", "14.00", "0.00", "24.00",
	}, records[1])
	assert.Equal(t, []string{
		"t1", "Berlin", "München", "2025-06-02", "2025-06-02", "Kundentermin", "ACME GmbH", "Rollout", "580",
		"49.90", "8.40", "174.00", "232.30",
	}, records[2])
	assert.Equal(t, []string{
		"TOTAL", "", "", "", "", "", "", "", "",
		"59.90", "22.40", "174.00", "256.30",
	}, records[3])
}

func TestWriteCSV_FilterAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, reportState(), "acme", engine.SortByExpense))
	records := readCSV(t, buf.Bytes())
	require.Len(t, records, 3)
	assert.Equal(t, "t1", records[1][0])
	assert.Equal(t, "232.30", records[2][12])

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, nil, "", engine.SortByStart))
	records = readCSV(t, buf.Bytes())
	require.Len(t, records, 2)
	assert.Equal(t, "TOTAL", records[1][0])
	assert.Equal(t, "0.00", records[1][12])
}

func TestChart(t *testing.T) {
	png, err := Chart(reportState(), "", engine.SortByExpense)
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func TestChart_Nothing(t *testing.T) {
	_, err := Chart(&model.AppState{}, "", engine.SortByStart)
	assert.ErrorIs(t, err, ErrNothingToChart)

	_, err = Chart(reportState(), "no such trip", engine.SortByStart)
	assert.ErrorIs(t, err, ErrNothingToChart)

	_, err = Chart(nil, "", engine.SortByStart)
	assert.ErrorIs(t, err, ErrNothingToChart)
}
