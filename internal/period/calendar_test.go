package period

import (
	"testing"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFiscalEndDate(t *testing.T) {
	marchEnd := utils.EndOfMonth(2025, time.March)

	tests := []struct {
		name    string
		fyEnd   time.Time
		quarter dto.Quarter
		want    *time.Time
	}{
		{
			name:    "q1 is nine months before march year end",
			fyEnd:   marchEnd,
			quarter: dto.QuarterQ1,
			want:    datePtr(2024, 6, 30),
		},
		{
			name:    "q2 is six months before",
			fyEnd:   marchEnd,
			quarter: dto.QuarterQ2,
			want:    datePtr(2024, 9, 30),
		},
		{
			name:    "q3 is three months before",
			fyEnd:   marchEnd,
			quarter: dto.QuarterQ3,
			want:    datePtr(2024, 12, 31),
		},
		{
			name:    "q4 closes on the year end",
			fyEnd:   marchEnd,
			quarter: dto.QuarterQ4,
			want:    datePtr(2025, 3, 31),
		},
		{
			name:    "fy closes on the year end",
			fyEnd:   marchEnd,
			quarter: dto.QuarterFY,
			want:    datePtr(2025, 3, 31),
		},
		{
			name:    "may year end q3 clamps to february",
			fyEnd:   utils.EndOfMonth(2025, time.May),
			quarter: dto.QuarterQ3,
			want:    datePtr(2025, 2, 28),
		},
		{
			name:    "leap year clamp",
			fyEnd:   utils.EndOfMonth(2024, time.May),
			quarter: dto.QuarterQ3,
			want:    datePtr(2024, 2, 29),
		},
		{
			name:    "unknown quarter",
			fyEnd:   marchEnd,
			quarter: dto.Quarter("H1"),
			want:    nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFiscalEndDate(tt.fyEnd, tt.quarter)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}
