package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a monetary value as entered by the user. It may hold NaN or
// ±Inf after bad input; every consumer goes through Finite.
type Amount float64

// Finite returns the amount, or 0 if it is NaN or infinite.
func (a Amount) Finite() float64 {
	f := float64(a)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ParseAmount coerces user input to an amount. Both "12.5" and "12,5" are
// accepted; anything unparsable becomes 0.
func ParseAmount(s string) Amount {
	f, ok := parseNumber(s)
	if !ok {
		return 0
	}
	return Amount(f)
}

// ParseKilometers coerces user input to a mileage. Negative and unparsable
// input becomes 0.
func ParseKilometers(s string) float64 {
	f, ok := parseNumber(s)
	if !ok || f < 0 {
		return 0
	}
	return f
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalJSON writes non-finite amounts as 0; JSON has no NaN.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Finite())
}

// UnmarshalJSON accepts numbers, numeric strings and null. Numbers outside
// the float64 range become 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ParseAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = ParseAmount(n.String())
	return nil
}
