package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Veraticus/travel-mate/internal/model"
)

// Encode writes state as an indented JSON snapshot. Absent slices are
// written as empty arrays so the output always passes Decode's shape check.
func Encode(w io.Writer, state *model.AppState) error {
	if state == nil {
		return fmt.Errorf("%w: state", ErrNilParameter)
	}

	out := model.AppState{
		Trips:    state.Trips,
		Expenses: state.Expenses,
	}
	if out.Trips == nil {
		out.Trips = []model.Trip{}
	}
	if out.Expenses == nil {
		out.Expenses = []model.Expense{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Decode parses a snapshot. The document must be an object whose "trips"
// and "expenses" fields are arrays; otherwise ErrInvalidShape is returned.
// Input that is not JSON, or whose records cannot be decoded, yields
// ErrMalformedSnapshot. Nothing is returned on error.
func Decode(r io.Reader) (*model.AppState, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrMalformedSnapshot)
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrInvalidShape)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	for _, name := range []string{"trips", "expenses"} {
		raw, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidShape, name)
		}
		if !isJSONArray(raw) {
			return nil, fmt.Errorf("%w: %q must be an array", ErrInvalidShape, name)
		}
	}

	state := &model.AppState{}
	if err := json.Unmarshal(fields["trips"], &state.Trips); err != nil {
		return nil, fmt.Errorf("%w: trips: %w", ErrMalformedSnapshot, err)
	}
	if err := json.Unmarshal(fields["expenses"], &state.Expenses); err != nil {
		return nil, fmt.Errorf("%w: expenses: %w", ErrMalformedSnapshot, err)
	}
	for i := range state.Trips {
		state.Trips[i].MileageKm = max(0, state.Trips[i].MileageKm)
	}

	return state, nil
}
