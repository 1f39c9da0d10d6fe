package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "same day workday", start: "2025-03-10T08:00", end: "2025-03-10T18:00", want: 10},
		{name: "overnight", start: "2025-03-10T08:00", end: "2025-03-11T18:00", want: 34},
		{name: "seconds layout", start: "2025-03-10T08:00:00", end: "2025-03-10T08:30:00", want: 0.5},
		{name: "rfc3339 with zones", start: "2025-03-10T08:00:00+01:00", end: "2025-03-10T08:00:00Z", want: 1},
		{name: "bare dates", start: "2025-03-10", end: "2025-03-12", want: 48},
		{name: "end before start clamps", start: "2025-03-12T08:00", end: "2025-03-10T18:00", want: 0},
		{name: "unparsable start", start: "soon", end: "2025-03-10T18:00", want: 0},
		{name: "unparsable end", start: "2025-03-10T08:00", end: "", want: 0},
		{name: "empty dates with anchors", start: "T08:00", end: "T18:00", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Hours(tt.start, tt.end), 1e-9)
		})
	}
}
