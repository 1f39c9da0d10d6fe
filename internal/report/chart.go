package report

import (
	"errors"
	"fmt"

	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/go-analyze/charts"
)

// ErrNothingToChart is returned when no trip has a positive total.
var ErrNothingToChart = errors.New("no trip totals to chart")

// Chart renders the totals of the trips matching filter as a PNG pie chart.
func Chart(state *model.AppState, filter string, key engine.SortKey) ([]byte, error) {
	if state == nil {
		return nil, ErrNothingToChart
	}

	var (
		values []float64
		labels []string
	)
	for _, trip := range engine.VisibleTrips(state, filter, key) {
		total := engine.TotalForTrip(trip, state.Expenses).Total
		if !total.IsPositive() {
			continue
		}
		values = append(values, total.InexactFloat64())
		labels = append(labels, fmt.Sprintf("%s (%s)", trip.Route(), trip.StartDate))
	}
	if len(values) == 0 {
		return nil, ErrNothingToChart
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: "Trip totals",
		}),
		charts.LegendLabelsOptionFunc(labels),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return buf, nil
}
