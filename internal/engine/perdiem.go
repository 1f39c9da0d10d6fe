package engine

import (
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
)

// Per-diem tiers. This is a simplified demo rule table, not an
// authoritative tax table.
const (
	// FullDayHours is the minimum stay for the full-day rate.
	FullDayHours = 24
	// PartialDayHours is the minimum stay for the partial-day rate.
	PartialDayHours = 8
)

var (
	fullDayRate    = decimal.NewFromInt(28)
	partialDayRate = decimal.NewFromInt(14)

	// Share of the base rate withheld for each meal the employer provided.
	breakfastShare = decimal.RequireFromString("0.2")
	lunchShare     = decimal.RequireFromString("0.4")
	dinnerShare    = decimal.RequireFromString("0.4")
)

// BaseRate returns the per-diem before meal reductions. Tier bounds are
// inclusive: exactly 8h earns the partial rate, exactly 24h the full rate.
func BaseRate(hours float64) decimal.Decimal {
	switch {
	case hours >= FullDayHours:
		return fullDayRate
	case hours >= PartialDayHours:
		return partialDayRate
	default:
		return decimal.Zero
	}
}

// PerDiem returns the meal allowance for a stay of the given length, reduced
// for each provided meal. The result is never negative.
func PerDiem(hours float64, meals model.Meals) decimal.Decimal {
	base := BaseRate(hours)

	reduction := decimal.Zero
	if meals.Breakfast {
		reduction = reduction.Add(base.Mul(breakfastShare))
	}
	if meals.Lunch {
		reduction = reduction.Add(base.Mul(lunchShare))
	}
	if meals.Dinner {
		reduction = reduction.Add(base.Mul(dinnerShare))
	}

	return decimal.Max(decimal.Zero, base.Sub(reduction))
}
