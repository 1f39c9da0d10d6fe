// Package model defines the records a travel workspace is made of.
package model

// DateLayout is the ISO 8601 calendar date format used for all record dates.
const DateLayout = "2006-01-02"

// Trip is a single travel engagement. Dates are ISO 8601 strings and are not
// validated; an end before the start yields a zero duration.
type Trip struct {
	ID               string  `json:"id"`
	Origin           string  `json:"origin"`
	Destination      string  `json:"destination"`
	StartDate        string  `json:"startDate"`
	EndDate          string  `json:"endDate"`
	Purpose          string  `json:"purpose"`
	Customer         string  `json:"customer"`
	Project          string  `json:"project"`
	MileageKm        float64 `json:"mileageKm"`
	IncludeBreakfast bool    `json:"includeBreakfast"`
	IncludeLunch     bool    `json:"includeLunch"`
	IncludeDinner    bool    `json:"includeDinner"`
}

// Meals records which meals the employer provided during a trip.
type Meals struct {
	Breakfast bool
	Lunch     bool
	Dinner    bool
}

// Count returns how many meals were provided.
func (m Meals) Count() int {
	n := 0
	for _, b := range []bool{m.Breakfast, m.Lunch, m.Dinner} {
		if b {
			n++
		}
	}
	return n
}

// Meals returns the trip's provided-meal flags.
func (t Trip) Meals() Meals {
	return Meals{
		Breakfast: t.IncludeBreakfast,
		Lunch:     t.IncludeLunch,
		Dinner:    t.IncludeDinner,
	}
}

// Route renders "origin → destination" with placeholders for empty fields.
func (t Trip) Route() string {
	origin, dest := t.Origin, t.Destination
	if origin == "" {
		origin = "(origin)"
	}
	if dest == "" {
		dest = "(destination)"
	}
	return origin + " → " + dest
}
