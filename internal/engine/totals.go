// Package engine computes trip reimbursements: durations, per-diem
// allowances, mileage and totals, plus filtering and ordering of trips.
// Every function is pure and never mutates its inputs.
package engine

import (
	"math"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
)

// Reference times of day used to turn calendar dates into a stay duration.
// A same-day trip spans one workday rather than zero hours.
const (
	WorkdayStart = "T08:00"
	WorkdayEnd   = "T18:00"
)

// MileageRate is the reimbursement per kilometer driven.
var MileageRate = decimal.RequireFromString("0.30")

// Breakdown is the computed reimbursement for one trip.
type Breakdown struct {
	ExpenseSum decimal.Decimal
	PerDiem    decimal.Decimal
	Mileage    decimal.Decimal
	Total      decimal.Decimal
}

// TripHours returns the trip's duration between the workday anchors.
func TripHours(trip model.Trip) float64 {
	return Hours(trip.StartDate+WorkdayStart, trip.EndDate+WorkdayEnd)
}

// ExpenseSum sums the finite amounts of the expenses that belong to tripID.
// Currencies are added nominally.
func ExpenseSum(tripID string, expenses []model.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		if e.TripID != tripID {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(e.Amount.Finite()))
	}
	return sum
}

// Mileage returns the reimbursement for the trip's kilometers. Negative and
// non-finite distances pay nothing.
func Mileage(km float64) decimal.Decimal {
	if km <= 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(km).Mul(MileageRate)
}

// TotalForTrip combines logged expenses, per-diem and mileage for a trip.
// Expenses of other trips, including orphans, are ignored.
func TotalForTrip(trip model.Trip, expenses []model.Expense) Breakdown {
	b := Breakdown{
		ExpenseSum: ExpenseSum(trip.ID, expenses),
		PerDiem:    PerDiem(TripHours(trip), trip.Meals()),
		Mileage:    Mileage(trip.MileageKm),
	}
	b.Total = b.ExpenseSum.Add(b.PerDiem).Add(b.Mileage)
	return b
}
