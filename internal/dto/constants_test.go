package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourcePriority(t *testing.T) {
	assert.Equal(t, 3, SourceEDINET.Priority())
	assert.Equal(t, 2, SourceTDnet.Priority())
	assert.Equal(t, 2, SourceJQuants.Priority())
	assert.Equal(t, 1, SourcePriceFeed.Priority())
	assert.Equal(t, 0, Source("unknown").Priority())

	// The feed-derived tier must sit strictly below every disclosure source.
	assert.Less(t, SourcePriceFeed.Priority(), SourceJQuants.Priority())
	assert.Less(t, SourceTDnet.Priority(), SourceEDINET.Priority())
}

func TestQuarter(t *testing.T) {
	assert.True(t, QuarterQ1.IsValid())
	assert.True(t, QuarterFY.IsValid())
	assert.False(t, Quarter("H1").IsValid())
	assert.False(t, Quarter("").IsValid())

	assert.Equal(t, 1, QuarterQ1.Number())
	assert.Equal(t, 4, QuarterQ4.Number())
	// FY occupies the fourth cumulative slot.
	assert.Equal(t, 4, QuarterFY.Number())
	assert.Equal(t, 0, Quarter("H1").Number())

	assert.Equal(t, QuarterQ3, QuarterFromNumber(3))
	assert.Equal(t, Quarter(""), QuarterFromNumber(5))
}
