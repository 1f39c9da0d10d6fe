package engine

import (
	"slices"
	"strings"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
)

// SortKey selects the order of a trip list.
type SortKey string

// Supported sort keys.
const (
	SortByStart   SortKey = "start"
	SortByDest    SortKey = "dest"
	SortByExpense SortKey = "expense"
)

// SortKeys returns the supported keys in the order a UI cycles through them.
func SortKeys() []SortKey {
	return []SortKey{SortByStart, SortByDest, SortByExpense}
}

// ParseSortKey resolves user input to a sort key. Unknown input is reported
// with ok=false and SortByStart.
func ParseSortKey(s string) (SortKey, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "start", "date":
		return SortByStart, true
	case "dest", "destination":
		return SortByDest, true
	case "expense", "total":
		return SortByExpense, true
	}
	return SortByStart, false
}

// Next returns the key after k in cycle order.
func (k SortKey) Next() SortKey {
	keys := SortKeys()
	i := slices.Index(keys, k)
	return keys[(i+1)%len(keys)]
}

// Label is a short human-readable description of the key.
func (k SortKey) Label() string {
	switch k {
	case SortByDest:
		return "destination"
	case SortByExpense:
		return "total"
	default:
		return "start date"
	}
}

type rankedTrip struct {
	trip  model.Trip
	total decimal.Decimal
}

// SortTrips returns a stably sorted copy of trips. Start dates and
// destinations compare lexicographically, which for ISO 8601 dates is
// chronological. The expense key orders by ascending trip total. Unknown
// keys sort by start date.
func SortTrips(trips []model.Trip, expenses []model.Expense, key SortKey) []model.Trip {
	out := slices.Clone(trips)

	switch key {
	case SortByDest:
		slices.SortStableFunc(out, func(a, b model.Trip) int {
			return strings.Compare(a.Destination, b.Destination)
		})
	case SortByExpense:
		ranked := make([]rankedTrip, len(out))
		for i, t := range out {
			ranked[i] = rankedTrip{trip: t, total: TotalForTrip(t, expenses).Total}
		}
		slices.SortStableFunc(ranked, func(a, b rankedTrip) int {
			return a.total.Cmp(b.total)
		})
		for i, r := range ranked {
			out[i] = r.trip
		}
	default:
		slices.SortStableFunc(out, func(a, b model.Trip) int {
			return strings.Compare(a.StartDate, b.StartDate)
		})
	}

	return out
}
