package engine

import (
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone parse as UTC so
// the same input always yields the same duration.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Hours returns the hours elapsed between two timestamps, floored at zero.
// If either timestamp cannot be parsed the result is 0.
func Hours(start, end string) float64 {
	s, ok := parseTimestamp(start)
	if !ok {
		return 0
	}
	e, ok := parseTimestamp(end)
	if !ok {
		return 0
	}
	return max(0, e.Sub(s).Hours())
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
