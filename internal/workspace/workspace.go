// Package workspace implements the record lifecycle of a travel workspace:
// creating trips and expenses with defaults, patching them, and deleting
// them (trips cascade to their expenses).
package workspace

import (
	"fmt"
	"strings"

	"github.com/Veraticus/travel-mate/internal/common"
	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/Veraticus/travel-mate/internal/service"
	"github.com/google/uuid"
)

// UUIDGenerator generates random UUIDs.
type UUIDGenerator struct{}

// NewID implements service.IDGenerator.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Workspace mutates an AppState in place. It is not safe for concurrent use;
// the presentation layer owns it.
type Workspace struct {
	state    *model.AppState
	ids      service.IDGenerator
	clock    service.Clock
	currency model.Currency
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithIDGenerator overrides the UUID generator.
func WithIDGenerator(ids service.IDGenerator) Option {
	return func(w *Workspace) {
		w.ids = ids
	}
}

// WithClock overrides the wall clock used for "today" defaults.
func WithClock(clock service.Clock) Option {
	return func(w *Workspace) {
		w.clock = clock
	}
}

// WithDefaultCurrency sets the currency of new expenses.
func WithDefaultCurrency(c model.Currency) Option {
	return func(w *Workspace) {
		w.currency = c
	}
}

// New wraps state. A nil state starts an empty workspace.
func New(state *model.AppState, opts ...Option) *Workspace {
	if state == nil {
		state = &model.AppState{}
	}
	w := &Workspace{
		state:    state,
		ids:      UUIDGenerator{},
		clock:    service.SystemClock{},
		currency: model.DefaultCurrency,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the underlying state.
func (w *Workspace) State() *model.AppState {
	return w.state
}

func (w *Workspace) today() string {
	return w.clock.Now().Format(model.DateLayout)
}

// AddTrip creates a trip dated today with empty fields and puts it first.
func (w *Workspace) AddTrip() model.Trip {
	today := w.today()
	trip := model.Trip{
		ID:        w.ids.NewID(),
		StartDate: today,
		EndDate:   today,
	}
	w.state.Trips = append([]model.Trip{trip}, w.state.Trips...)
	return trip
}

// UpdateTrip applies patch to the trip with the given ID.
func (w *Workspace) UpdateTrip(id string, patch model.TripPatch) (model.Trip, error) {
	for i, t := range w.state.Trips {
		if t.ID == id {
			w.state.Trips[i] = patch.Apply(t)
			return w.state.Trips[i], nil
		}
	}
	return model.Trip{}, fmt.Errorf("trip %s: %w", id, common.ErrNotFound)
}

// RemoveTrip deletes a trip and every expense attributed to it. It returns
// the number of expenses removed with the trip.
func (w *Workspace) RemoveTrip(id string) (int, error) {
	trips := w.state.Trips[:0:0]
	found := false
	for _, t := range w.state.Trips {
		if t.ID == id {
			found = true
			continue
		}
		trips = append(trips, t)
	}
	if !found {
		return 0, fmt.Errorf("trip %s: %w", id, common.ErrNotFound)
	}

	expenses := w.state.Expenses[:0:0]
	removed := 0
	for _, e := range w.state.Expenses {
		if e.TripID == id {
			removed++
			continue
		}
		expenses = append(expenses, e)
	}

	w.state.Trips = trips
	w.state.Expenses = expenses
	return removed, nil
}

// AddExpense creates an expense for an existing trip, dated today, category
// Other, amount 0 in the default currency, and puts it first.
func (w *Workspace) AddExpense(tripID string) (model.Expense, error) {
	if _, ok := w.state.Trip(tripID); !ok {
		return model.Expense{}, fmt.Errorf("trip %s: %w", tripID, common.ErrNotFound)
	}
	e := model.Expense{
		ID:       w.ids.NewID(),
		TripID:   tripID,
		Date:     w.today(),
		Category: model.CategoryOther,
		Currency: w.currency,
	}
	w.state.Expenses = append([]model.Expense{e}, w.state.Expenses...)
	return e, nil
}

// AttachExpenses adds prepared expenses to a trip, assigning fresh IDs.
// They keep their relative order and go before existing expenses.
func (w *Workspace) AttachExpenses(tripID string, expenses []model.Expense) ([]model.Expense, error) {
	if _, ok := w.state.Trip(tripID); !ok {
		return nil, fmt.Errorf("trip %s: %w", tripID, common.ErrNotFound)
	}
	added := make([]model.Expense, len(expenses))
	for i, e := range expenses {
		e.ID = w.ids.NewID()
		e.TripID = tripID
		if e.Currency == "" {
			e.Currency = w.currency
		}
		if e.Category == "" {
			e.Category = model.CategoryOther
		}
		added[i] = e
	}
	w.state.Expenses = append(added, w.state.Expenses...)
	return added, nil
}

// UpdateExpense applies patch to the expense with the given ID.
func (w *Workspace) UpdateExpense(id string, patch model.ExpensePatch) (model.Expense, error) {
	for i, e := range w.state.Expenses {
		if e.ID == id {
			w.state.Expenses[i] = patch.Apply(e)
			return w.state.Expenses[i], nil
		}
	}
	return model.Expense{}, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
}

// RemoveExpense deletes one expense.
func (w *Workspace) RemoveExpense(id string) error {
	for i, e := range w.state.Expenses {
		if e.ID == id {
			w.state.Expenses = append(w.state.Expenses[:i:i], w.state.Expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
}

// ResolveTrip finds a trip by full ID or unique ID prefix.
func (w *Workspace) ResolveTrip(ref string) (model.Trip, error) {
	ids := make([]string, len(w.state.Trips))
	for i, t := range w.state.Trips {
		ids[i] = t.ID
	}
	i, err := resolve("trip", ref, ids)
	if err != nil {
		return model.Trip{}, err
	}
	return w.state.Trips[i], nil
}

// ResolveExpense finds an expense by full ID or unique ID prefix.
func (w *Workspace) ResolveExpense(ref string) (model.Expense, error) {
	ids := make([]string, len(w.state.Expenses))
	for i, e := range w.state.Expenses {
		ids[i] = e.ID
	}
	i, err := resolve("expense", ref, ids)
	if err != nil {
		return model.Expense{}, err
	}
	return w.state.Expenses[i], nil
}

// resolve returns the index of the ID equal to ref, or else of the single ID
// starting with ref.
func resolve(kind, ref string, ids []string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%s id is required: %w", kind, common.ErrNotFound)
	}

	for i, id := range ids {
		if id == ref {
			return i, nil
		}
	}

	match := -1
	for i, id := range ids {
		if strings.HasPrefix(id, ref) {
			if match >= 0 {
				return -1, fmt.Errorf("%s %q matches more than one record: %w", kind, ref, common.ErrAmbiguousID)
			}
			match = i
		}
	}
	if match < 0 {
		return -1, fmt.Errorf("%s %s: %w", kind, ref, common.ErrNotFound)
	}
	return match, nil
}
