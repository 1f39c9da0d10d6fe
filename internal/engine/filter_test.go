package engine

import (
	"strings"
	"testing"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestMatchesFilter(t *testing.T) {
	trip := model.Trip{
		Origin:      "Berlin",
		Destination: "München",
		Purpose:     "Kundentermin",
		Customer:    "ACME GmbH",
		Project:     "Rollout",
	}

	tests := []struct {
		filter string
		want   bool
	}{
		{filter: "", want: true},
		{filter: "münchen", want: true},
		{filter: "MÜN", want: true},
		{filter: "termin", want: true},
		{filter: "acme", want: true},
		{filter: "roll", want: true},
		{filter: "berlin", want: false},
		{filter: "hamburg", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFilter(trip, tt.filter))
		})
	}
}

func TestMatchesFilter_EmptyCustomerAndProject(t *testing.T) {
	trip := model.Trip{Destination: "Wien"}
	assert.True(t, MatchesFilter(trip, ""))
	assert.False(t, MatchesFilter(trip, "acme"))
}

func TestMatchesFilter_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		trip := model.Trip{
			Destination: rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "dest"),
			Purpose:     rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "purpose"),
			Customer:    rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "customer"),
			Project:     rapid.StringMatching(`[A-Za-z ]{0,12}`).Draw(t, "project"),
		}
		filter := rapid.StringMatching(`[A-Za-z]{0,3}`).Draw(t, "filter")

		assert.True(t, MatchesFilter(trip, ""))
		assert.Equal(t, MatchesFilter(trip, filter), MatchesFilter(trip, strings.ToUpper(filter)))
		assert.Equal(t, MatchesFilter(trip, filter), MatchesFilter(trip, strings.ToLower(filter)))
	})
}

func TestVisibleTrips(t *testing.T) {
	state := &model.AppState{
		Trips: []model.Trip{
			{ID: "t1", StartDate: "2025-05-01", Destination: "Hamburg", Customer: "ACME"},
			{ID: "t2", StartDate: "2025-04-01", Destination: "München", Customer: "ACME"},
			{ID: "t3", StartDate: "2025-03-01", Destination: "Wien", Customer: "Globex"},
		},
	}

	assert.Equal(t, []string{"t2", "t1"}, ids(VisibleTrips(state, "acme", SortByStart)))
	assert.Equal(t, []string{"t1", "t2"}, ids(VisibleTrips(state, "acme", SortByDest)))
	assert.Empty(t, VisibleTrips(state, "initech", SortByStart))
}
