package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Enumeration errors.
var (
	// ErrUnknownCategory is returned when a category name is not one of the fixed categories.
	ErrUnknownCategory = errors.New("unknown expense category")
	// ErrUnknownCurrency is returned when a currency code is not supported.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Category classifies an expense line item.
type Category string

const (
	// CategoryHotel covers accommodation.
	CategoryHotel Category = "Hotel"
	// CategoryTransport covers tickets, taxis, fuel and parking.
	CategoryTransport Category = "Transport"
	// CategoryMeal covers food that is not part of the per-diem.
	CategoryMeal Category = "Meal"
	// CategoryOther is everything else and the default for new expenses.
	CategoryOther Category = "Other"
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{CategoryHotel, CategoryTransport, CategoryMeal, CategoryOther}
}

// ParseCategory resolves a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// UnmarshalJSON rejects categories outside the fixed set.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Currency is the ISO 4217 code an expense was paid in.
// Amounts in different currencies are summed nominally.
type Currency string

// Supported currencies.
const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
	CHF Currency = "CHF"
)

// DefaultCurrency is used for new expenses unless configured otherwise.
const DefaultCurrency = EUR

// Currencies returns the supported currencies in display order.
func Currencies() []Currency {
	return []Currency{EUR, USD, GBP, CHF}
}

// ParseCurrency resolves a currency code case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	s = strings.TrimSpace(s)
	for _, c := range Currencies() {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// UnmarshalJSON rejects currencies outside the supported set.
func (c *Currency) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("currency must be a string: %w", err)
	}
	parsed, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
