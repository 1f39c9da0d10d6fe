package engine

import (
	"strings"

	"github.com/Veraticus/travel-mate/internal/model"
)

// MatchesFilter reports whether filter occurs, case-insensitively, in the
// trip's destination, purpose, customer or project. An empty filter matches
// every trip.
func MatchesFilter(trip model.Trip, filter string) bool {
	q := strings.ToLower(filter)
	for _, field := range []string{trip.Destination, trip.Purpose, trip.Customer, trip.Project} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// FilterTrips returns the trips matching filter, in their original order.
func FilterTrips(trips []model.Trip, filter string) []model.Trip {
	out := make([]model.Trip, 0, len(trips))
	for _, t := range trips {
		if MatchesFilter(t, filter) {
			out = append(out, t)
		}
	}
	return out
}

// VisibleTrips is the list a trip view shows: matching trips, ordered by key.
func VisibleTrips(state *model.AppState, filter string, key SortKey) []model.Trip {
	return SortTrips(FilterTrips(state.Trips, filter), state.Expenses, key)
}
