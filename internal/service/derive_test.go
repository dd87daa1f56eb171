package service

import (
	"testing"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 {
	return &v
}

func record(year int, quarter dto.Quarter, revenue, opIncome *float64) model.FinancialRecord {
	return model.FinancialRecord{
		FiscalYear:      year,
		Quarter:         string(quarter),
		Revenue:         revenue,
		OperatingIncome: opIncome,
	}
}

func TestPctChange(t *testing.T) {
	tests := []struct {
		name string
		cur  *float64
		prev *float64
		want *float64
	}{
		{name: "growth", cur: fptr(120), prev: fptr(100), want: fptr(20.0)},
		{name: "decline", cur: fptr(80), prev: fptr(100), want: fptr(-20.0)},
		{name: "rounded to one decimal", cur: fptr(101), prev: fptr(300), want: fptr(-66.3)},
		{name: "negative base uses absolute value", cur: fptr(50), prev: fptr(-100), want: fptr(150.0)},
		{name: "zero base", cur: fptr(50), prev: fptr(0), want: nil},
		{name: "missing current", cur: nil, prev: fptr(100), want: nil},
		{name: "missing previous", cur: fptr(100), prev: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PctChange(tt.cur, tt.prev)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestComputeStandalone(t *testing.T) {
	records := []model.FinancialRecord{
		record(2025, dto.QuarterQ1, fptr(100), fptr(10)),
		record(2025, dto.QuarterQ2, fptr(230), fptr(25)),
		record(2025, dto.QuarterQ3, fptr(360), fptr(38)),
		record(2025, dto.QuarterFY, fptr(500), fptr(55)),
	}

	got := ComputeStandalone(records)
	require.Len(t, got, 4)

	assert.Equal(t, dto.QuarterQ1, got[0].Quarter)
	assert.True(t, got[0].HasPriorQuarter)
	assert.InDelta(t, 100, *got[0].Revenue, 0.001)

	assert.Equal(t, dto.QuarterQ2, got[1].Quarter)
	assert.InDelta(t, 130, *got[1].Revenue, 0.001)
	assert.InDelta(t, 15, *got[1].OperatingIncome, 0.001)

	assert.Equal(t, dto.QuarterQ3, got[2].Quarter)
	assert.InDelta(t, 130, *got[2].Revenue, 0.001)

	assert.Equal(t, dto.QuarterQ4, got[3].Quarter)
	assert.InDelta(t, 140, *got[3].Revenue, 0.001)

	// De-cumulated quarters must sum back to the full-year figure.
	total := 0.0
	for _, sq := range got {
		total += *sq.Revenue
	}
	assert.InDelta(t, 500, total, 0.001)
}

func TestComputeStandalone_FYBeatsQ4(t *testing.T) {
	records := []model.FinancialRecord{
		record(2025, dto.QuarterQ3, fptr(360), nil),
		record(2025, dto.QuarterQ4, fptr(490), nil),
		record(2025, dto.QuarterFY, fptr(500), nil),
	}

	got := ComputeStandalone(records)
	require.Len(t, got, 2)
	assert.Equal(t, dto.QuarterQ4, got[1].Quarter)
	assert.InDelta(t, 140, *got[1].Revenue, 0.001)
}

func TestComputeStandalone_MissingPredecessor(t *testing.T) {
	records := []model.FinancialRecord{
		record(2025, dto.QuarterQ1, fptr(100), nil),
		record(2025, dto.QuarterQ3, fptr(360), nil),
	}

	got := ComputeStandalone(records)
	require.Len(t, got, 2)

	// Q3 has no Q2 to subtract, the standalone value stays unknown rather
	// than leaking the cumulative figure.
	assert.Equal(t, dto.QuarterQ3, got[1].Quarter)
	assert.Nil(t, got[1].Revenue)
	assert.False(t, got[1].HasPriorQuarter)
}

func TestComputeStandalone_NilMetricPropagates(t *testing.T) {
	records := []model.FinancialRecord{
		record(2025, dto.QuarterQ1, fptr(100), nil),
		record(2025, dto.QuarterQ2, fptr(230), fptr(25)),
	}

	got := ComputeStandalone(records)
	require.Len(t, got, 2)
	assert.True(t, got[1].HasPriorQuarter)
	assert.InDelta(t, 130, *got[1].Revenue, 0.001)
	assert.Nil(t, got[1].OperatingIncome)
}

func TestComputeYoY(t *testing.T) {
	records := []model.FinancialRecord{
		record(2024, dto.QuarterQ1, fptr(100), fptr(10)),
		record(2025, dto.QuarterQ1, fptr(120), fptr(8)),
		record(2025, dto.QuarterQ2, fptr(250), nil),
	}

	got := ComputeYoY(records)
	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, 2024, first.FiscalYear)
	assert.Nil(t, first.RevenuePrevYear)
	assert.Nil(t, first.RevenueYoYChange)
	assert.Nil(t, first.RevenueYoYPct)

	second := got[1]
	assert.Equal(t, 2025, second.FiscalYear)
	assert.Equal(t, dto.QuarterQ1, second.Quarter)
	require.NotNil(t, second.RevenueYoYChange)
	assert.InDelta(t, 20.0, *second.RevenueYoYChange, 0.001)
	require.NotNil(t, second.RevenueYoYPct)
	assert.InDelta(t, 20.0, *second.RevenueYoYPct, 0.001)
	require.NotNil(t, second.OperatingYoYChange)
	assert.InDelta(t, -2.0, *second.OperatingYoYChange, 0.001)
	require.NotNil(t, second.OperatingYoYPct)
	assert.InDelta(t, -20.0, *second.OperatingYoYPct, 0.001)

	// Q2 of 2025 has no 2024 counterpart.
	third := got[2]
	assert.Equal(t, dto.QuarterQ2, third.Quarter)
	assert.Nil(t, third.RevenuePrevYear)
	assert.Nil(t, third.RevenueYoYPct)
}

func TestComputeQoQ(t *testing.T) {
	standalone := []StandaloneQuarter{
		{FiscalYear: 2024, Quarter: dto.QuarterQ4, Revenue: fptr(140)},
		{FiscalYear: 2025, Quarter: dto.QuarterQ1, Revenue: fptr(100)},
		{FiscalYear: 2025, Quarter: dto.QuarterQ2, Revenue: fptr(130)},
	}

	got := ComputeQoQ(standalone)
	require.Len(t, got, 3)

	// 2024 Q4 has no predecessor in the input.
	assert.Nil(t, got[0].RevenuePrev)
	assert.Nil(t, got[0].RevenueQoQPct)

	// Q1 compares against the prior year's Q4.
	q1 := got[1]
	require.NotNil(t, q1.RevenuePrev)
	assert.InDelta(t, 140, *q1.RevenuePrev, 0.001)
	require.NotNil(t, q1.RevenueQoQChange)
	assert.InDelta(t, -40, *q1.RevenueQoQChange, 0.001)
	require.NotNil(t, q1.RevenueQoQPct)
	assert.InDelta(t, -28.6, *q1.RevenueQoQPct, 0.001)

	q2 := got[2]
	require.NotNil(t, q2.RevenueQoQChange)
	assert.InDelta(t, 30, *q2.RevenueQoQChange, 0.001)
	require.NotNil(t, q2.RevenueQoQPct)
	assert.InDelta(t, 30.0, *q2.RevenueQoQPct, 0.001)
}

func TestComputeStandalone_GrossProfit(t *testing.T) {
	records := []model.FinancialRecord{
		{FiscalYear: 2025, Quarter: string(dto.QuarterQ1), Revenue: fptr(100), GrossProfit: fptr(30)},
		{FiscalYear: 2025, Quarter: string(dto.QuarterQ2), Revenue: fptr(210), GrossProfit: fptr(63)},
	}

	got := ComputeStandalone(records)
	require.Len(t, got, 2)

	require.NotNil(t, got[0].GrossProfit)
	assert.InDelta(t, 30, *got[0].GrossProfit, 0.001)
	require.NotNil(t, got[1].GrossProfit)
	assert.InDelta(t, 33, *got[1].GrossProfit, 0.001)
}

func TestComputeQoQ_GrossProfit(t *testing.T) {
	standalone := []StandaloneQuarter{
		{FiscalYear: 2025, Quarter: dto.QuarterQ1, GrossProfit: fptr(30)},
		{FiscalYear: 2025, Quarter: dto.QuarterQ2, GrossProfit: fptr(33)},
	}

	got := ComputeQoQ(standalone)
	require.Len(t, got, 2)

	q2 := got[1]
	require.NotNil(t, q2.GrossProfitPrev)
	assert.InDelta(t, 30, *q2.GrossProfitPrev, 0.001)
	require.NotNil(t, q2.GrossProfitQoQChange)
	assert.InDelta(t, 3, *q2.GrossProfitQoQChange, 0.001)
	require.NotNil(t, q2.GrossProfitQoQPct)
	assert.InDelta(t, 10.0, *q2.GrossProfitQoQPct, 0.001)
}
