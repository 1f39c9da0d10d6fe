package model

// Expense is a cost item attributed to a trip. TripID is a lookup key, not
// ownership: an expense whose trip is gone is an orphan and is ignored by
// aggregation.
type Expense struct {
	ID       string   `json:"id"`
	TripID   string   `json:"tripId"`
	Date     string   `json:"date"`
	Category Category `json:"category"`
	Amount   Amount   `json:"amount"`
	Currency Currency `json:"currency"`
	Note     string   `json:"note,omitempty"`
}
