package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2025, time.March))
	assert.Equal(t, 30, LastDayOfMonth(2025, time.June))
	assert.Equal(t, 28, LastDayOfMonth(2025, time.February))
	assert.Equal(t, 29, LastDayOfMonth(2024, time.February))
}

func TestEndOfMonth(t *testing.T) {
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), EndOfMonth(2025, time.March))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), EndOfMonth(2024, time.February))
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		delta int
		want  time.Time
	}{
		{
			name:  "back three months stays in year",
			year:  2025,
			month: time.March,
			delta: -3,
			want:  time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "back nine months crosses the year boundary",
			year:  2025,
			month: time.March,
			delta: -9,
			want:  time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "clamps to the shorter month",
			year:  2025,
			month: time.May,
			delta: -3,
			want:  time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "clamps to leap february",
			year:  2024,
			month: time.May,
			delta: -3,
			want:  time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "forward across december",
			year:  2024,
			month: time.November,
			delta: 3,
			want:  time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "zero delta is end of same month",
			year:  2025,
			month: time.March,
			delta: 0,
			want:  time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonthsClamped(tt.year, tt.month, tt.delta))
		})
	}
}

func TestDateOnly(t *testing.T) {
	jst := GetJSTLocation()
	in := time.Date(2025, 5, 9, 15, 30, 45, 123, jst)
	assert.Equal(t, time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC), DateOnly(in))
}
