package workspace

import (
	"github.com/Veraticus/travel-mate/internal/model"
)

// Seed fills an empty workspace with the demo trip: a same-day drive from
// Berlin to München with lunch provided and one train ticket.
func (w *Workspace) Seed() model.Trip {
	today := w.today()
	trip := model.Trip{
		ID:           w.ids.NewID(),
		Origin:       "Berlin",
		Destination:  "München",
		StartDate:    today,
		EndDate:      today,
		Purpose:      "Kundentermin",
		Customer:     "ACME GmbH",
		Project:      "Rollout",
		MileageKm:    580,
		IncludeLunch: true,
	}
	ticket := model.Expense{
		ID:       w.ids.NewID(),
		TripID:   trip.ID,
		Date:     today,
		Category: model.CategoryTransport,
		Amount:   49.9,
		Currency: model.EUR,
		Note:     "ICE Ticket",
	}

	w.state.Trips = append([]model.Trip{trip}, w.state.Trips...)
	w.state.Expenses = append([]model.Expense{ticket}, w.state.Expenses...)
	return trip
}
