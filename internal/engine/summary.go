package engine

import (
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
)

// Summary aggregates the breakdowns of a list of trips.
type Summary struct {
	ExpenseSum decimal.Decimal
	PerDiem    decimal.Decimal
	Mileage    decimal.Decimal
	Total      decimal.Decimal
	Average    decimal.Decimal
	TripCount  int
}

// Summarize totals the given trips. Average is Total per trip rounded to
// cents, or zero when there are no trips.
func Summarize(trips []model.Trip, expenses []model.Expense) Summary {
	s := Summary{
		ExpenseSum: decimal.Zero,
		PerDiem:    decimal.Zero,
		Mileage:    decimal.Zero,
		Total:      decimal.Zero,
		Average:    decimal.Zero,
		TripCount:  len(trips),
	}
	for _, t := range trips {
		b := TotalForTrip(t, expenses)
		s.ExpenseSum = s.ExpenseSum.Add(b.ExpenseSum)
		s.PerDiem = s.PerDiem.Add(b.PerDiem)
		s.Mileage = s.Mileage.Add(b.Mileage)
		s.Total = s.Total.Add(b.Total)
	}
	if s.TripCount > 0 {
		s.Average = s.Total.Div(decimal.NewFromInt(int64(s.TripCount))).Round(2)
	}
	return s
}
