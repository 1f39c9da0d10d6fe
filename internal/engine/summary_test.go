package engine

import (
	"testing"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	trips := []model.Trip{
		{ID: "t1", StartDate: "2025-06-02", EndDate: "2025-06-02", MileageKm: 580, IncludeLunch: true},
		{ID: "t2", StartDate: "2025-06-05", EndDate: "2025-06-05"},
	}
	expenses := []model.Expense{
		{ID: "e1", TripID: "t1", Amount: 49.90},
		{ID: "e2", TripID: "t2", Amount: 0.3},
	}

	s := Summarize(trips, expenses)

	assert.Equal(t, 2, s.TripCount)
	assert.True(t, dec("50.2").Equal(s.ExpenseSum), "expense sum %s", s.ExpenseSum)
	assert.True(t, dec("22.4").Equal(s.PerDiem), "per-diem %s", s.PerDiem)
	assert.True(t, dec("174").Equal(s.Mileage), "mileage %s", s.Mileage)
	assert.True(t, dec("246.6").Equal(s.Total), "total %s", s.Total)
	assert.True(t, dec("123.3").Equal(s.Average), "average %s", s.Average)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Zero(t, s.TripCount)
	assert.True(t, s.Total.IsZero())
	assert.True(t, s.Average.IsZero())
}
