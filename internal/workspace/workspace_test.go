package workspace

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/engine"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequentialIDs struct {
	prefix string
	n      int
}

func (s *sequentialIDs) NewID() string {
	s.n++
	return fmt.Sprintf("%s%d", s.prefix, s.n)
}

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

func newTestWorkspace(state *model.AppState) *Workspace {
	return New(state,
		WithIDGenerator(&sequentialIDs{prefix: "id"}),
		WithClock(fixedClock{t: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)}),
	)
}

func TestAddTrip_Defaults(t *testing.T) {
	ws := newTestWorkspace(&model.AppState{Trips: []model.Trip{{ID: "existing"}}})

	trip := ws.AddTrip()

	assert.Equal(t, model.Trip{ID: "id1", StartDate: "2025-06-02", EndDate: "2025-06-02"}, trip)
	require.Len(t, ws.State().Trips, 2)
	assert.Equal(t, "id1", ws.State().Trips[0].ID, "new trips go first")
}

func TestUpdateTrip(t *testing.T) {
	ws := newTestWorkspace(nil)
	trip := ws.AddTrip()
	dest := "Hamburg"

	updated, err := ws.UpdateTrip(trip.ID, model.TripPatch{Destination: &dest})
	require.NoError(t, err)
	assert.Equal(t, "Hamburg", updated.Destination)
	assert.Equal(t, "Hamburg", ws.State().Trips[0].Destination)

	_, err = ws.UpdateTrip("missing", model.TripPatch{Destination: &dest})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRemoveTrip_Cascades(t *testing.T) {
	state := &model.AppState{
		Trips: []model.Trip{{ID: "t1"}, {ID: "t2"}},
		Expenses: []model.Expense{
			{ID: "e1", TripID: "t1"},
			{ID: "e2", TripID: "t2"},
			{ID: "e3", TripID: "t1"},
			{ID: "e4", TripID: "orphan"},
		},
	}
	ws := newTestWorkspace(state)

	removed, err := ws.RemoveTrip("t1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	require.Len(t, ws.State().Trips, 1)
	assert.Equal(t, "t2", ws.State().Trips[0].ID)
	require.Len(t, ws.State().Expenses, 2)
	assert.Equal(t, "e2", ws.State().Expenses[0].ID)
	assert.Equal(t, "e4", ws.State().Expenses[1].ID)

	_, err = ws.RemoveTrip("t1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAddExpense(t *testing.T) {
	ws := New(&model.AppState{Trips: []model.Trip{{ID: "t1"}}},
		WithIDGenerator(&sequentialIDs{prefix: "e"}),
		WithClock(fixedClock{t: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)}),
		WithDefaultCurrency(model.CHF),
	)

	e, err := ws.AddExpense("t1")
	require.NoError(t, err)
	assert.Equal(t, model.Expense{
		ID:       "e1",
		TripID:   "t1",
		Date:     "2025-06-02",
		Category: model.CategoryOther,
		Currency: model.CHF,
	}, e)

	_, err = ws.AddExpense("nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Len(t, ws.State().Expenses, 1)
}

func TestUpdateAndRemoveExpense(t *testing.T) {
	ws := newTestWorkspace(&model.AppState{
		Trips:    []model.Trip{{ID: "t1"}},
		Expenses: []model.Expense{{ID: "e1", TripID: "t1"}, {ID: "e2", TripID: "t1"}},
	})
	amount := model.Amount(80)
	cat := model.CategoryHotel

	e, err := ws.UpdateExpense("e2", model.ExpensePatch{Amount: &amount, Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryHotel, e.Category)

	require.NoError(t, ws.RemoveExpense("e1"))
	require.Len(t, ws.State().Expenses, 1)
	assert.Equal(t, "e2", ws.State().Expenses[0].ID)
	assert.InDelta(t, 80.0, float64(ws.State().Expenses[0].Amount), 1e-9)

	assert.ErrorIs(t, ws.RemoveExpense("e1"), common.ErrNotFound)
	_, err = ws.UpdateExpense("e1", model.ExpensePatch{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAttachExpenses(t *testing.T) {
	ws := newTestWorkspace(&model.AppState{
		Trips:    []model.Trip{{ID: "t1"}},
		Expenses: []model.Expense{{ID: "old", TripID: "t1"}},
	})

	added, err := ws.AttachExpenses("t1", []model.Expense{
		{Date: "2025-06-02", Category: model.CategoryMeal, Amount: 12},
		{Date: "2025-06-02", Amount: 3},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Equal(t, "id1", added[0].ID)
	assert.Equal(t, model.CategoryOther, added[1].Category)
	assert.Equal(t, model.EUR, added[1].Currency)

	got := ws.State().Expenses
	require.Len(t, got, 3)
	assert.Equal(t, []string{"id1", "id2", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})

	_, err = ws.AttachExpenses("nope", nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestResolveTrip(t *testing.T) {
	ws := newTestWorkspace(&model.AppState{
		Trips: []model.Trip{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}},
	})

	tests := []struct {
		wantErr error
		ref     string
		want    string
	}{
		{ref: "abc123", want: "abc123"},
		{ref: "abc", want: "abc123"},
		{ref: "ab", want: "ab"},
		{ref: "abd", want: "abd456"},
		{ref: "a", wantErr: common.ErrAmbiguousID},
		{ref: "zz", wantErr: common.ErrNotFound},
		{ref: "", wantErr: common.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			trip, err := ws.ResolveTrip(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, trip.ID)
		})
	}
}

func TestResolveExpense(t *testing.T) {
	ws := newTestWorkspace(&model.AppState{Expenses: []model.Expense{{ID: "e-1"}, {ID: "f-2"}}})
	e, err := ws.ResolveExpense("f")
	require.NoError(t, err)
	assert.Equal(t, "f-2", e.ID)
}

func TestSeed(t *testing.T) {
	ws := newTestWorkspace(nil)
	trip := ws.Seed()

	assert.Equal(t, "Berlin → München", trip.Route())
	assert.Equal(t, "2025-06-02", trip.StartDate)
	require.Len(t, ws.State().Expenses, 1)
	assert.Equal(t, trip.ID, ws.State().Expenses[0].TripID)

	b := engine.TotalForTrip(trip, ws.State().Expenses)
	assert.True(t, decimal.RequireFromString("232.3").Equal(b.Total), "demo total %s", b.Total)
}

func TestUUIDGenerator(t *testing.T) {
	gen := UUIDGenerator{}
	a, b := gen.NewID(), gen.NewID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
