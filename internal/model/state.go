package model

// AppState is the complete workspace: every trip and every expense, each in
// display order. Referential integrity between them is not enforced.
type AppState struct {
	Trips    []Trip    `json:"trips"`
	Expenses []Expense `json:"expenses"`
}

// Trip looks up a trip by exact ID.
func (s *AppState) Trip(id string) (Trip, bool) {
	for _, t := range s.Trips {
		if t.ID == id {
			return t, true
		}
	}
	return Trip{}, false
}

// ExpensesFor returns the expenses attributed to tripID in stored order.
func (s *AppState) ExpensesFor(tripID string) []Expense {
	var out []Expense
	for _, e := range s.Expenses {
		if e.TripID == tripID {
			out = append(out, e)
		}
	}
	return out
}

// Orphans returns expenses whose trip no longer exists.
func (s *AppState) Orphans() []Expense {
	live := make(map[string]struct{}, len(s.Trips))
	for _, t := range s.Trips {
		live[t.ID] = struct{}{}
	}
	var out []Expense
	for _, e := range s.Expenses {
		if _, ok := live[e.TripID]; !ok {
			out = append(out, e)
		}
	}
	return out
}

// Clone returns a copy that shares no slices with s.
func (s *AppState) Clone() *AppState {
	c := &AppState{
		Trips:    make([]Trip, len(s.Trips)),
		Expenses: make([]Expense, len(s.Expenses)),
	}
	copy(c.Trips, s.Trips)
	copy(c.Expenses, s.Expenses)
	return c
}
