package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		places int
		want   float64
	}{
		{name: "one decimal up", value: 20.06, places: 1, want: 20.1},
		{name: "one decimal down", value: 20.04, places: 1, want: 20.0},
		{name: "half away from zero", value: 2.5, places: 0, want: 3},
		{name: "negative half away from zero", value: -2.5, places: 0, want: -3},
		{name: "negative value", value: -28.571, places: 1, want: -28.6},
		{name: "already exact", value: 150, places: 1, want: 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, RoundTo(tt.value, tt.places), 0.0001)
		})
	}
}
