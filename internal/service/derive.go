package service

import (
	"sort"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/pkg/utils"
)

// This file is the Go mirror of the v_financials_* views. The SQL serves
// reads; these functions define the arithmetic in one testable place and
// back the derived API responses when a caller asks for fresh computation.

// PctChange returns the percentage change from prev to cur, rounded to one
// decimal. Nil when either side is missing or the base is zero.
func PctChange(cur, prev *float64) *float64 {
	if cur == nil || prev == nil || *prev == 0 {
		return nil
	}
	base := *prev
	if base < 0 {
		base = -base
	}
	pct := utils.RoundTo((*cur-*prev)*100/base, 1)
	return &pct
}

// StandaloneQuarter is one de-cumulated quarter. Values are nil when the
// quarter itself or its predecessor was never disclosed.
type StandaloneQuarter struct {
	FiscalYear      int
	Quarter         dto.Quarter
	FiscalEndDate   *time.Time
	Revenue         *float64
	GrossProfit     *float64
	OperatingIncome *float64
	OrdinaryIncome  *float64
	NetIncome       *float64
	HasPriorQuarter bool
}

// ComputeStandalone de-cumulates year-to-date records into per-quarter
// figures. Q1 passes through; later quarters subtract the preceding
// cumulative row. The FY row stands in for Q4 cumulative when a company
// only files a full-year figure, and wins over a Q4 row when both exist.
func ComputeStandalone(records []model.FinancialRecord) []StandaloneQuarter {
	type yearRows struct {
		year int
		rows map[int]*model.FinancialRecord
	}

	byYear := map[int]*yearRows{}
	var years []int
	for i := range records {
		rec := &records[i]
		q := dto.Quarter(rec.Quarter)
		if !q.IsValid() {
			continue
		}
		yr, ok := byYear[rec.FiscalYear]
		if !ok {
			yr = &yearRows{year: rec.FiscalYear, rows: map[int]*model.FinancialRecord{}}
			byYear[rec.FiscalYear] = yr
			years = append(years, rec.FiscalYear)
		}
		n := q.Number()
		if existing, ok := yr.rows[n]; ok {
			// FY beats Q4 for the fourth cumulative slot.
			if q == dto.QuarterFY && existing.Quarter != string(dto.QuarterFY) {
				yr.rows[n] = rec
			}
			continue
		}
		yr.rows[n] = rec
	}
	sort.Ints(years)

	var out []StandaloneQuarter
	for _, year := range years {
		yr := byYear[year]
		for n := 1; n <= 4; n++ {
			rec, ok := yr.rows[n]
			if !ok {
				continue
			}
			sq := StandaloneQuarter{
				FiscalYear:    year,
				Quarter:       dto.QuarterFromNumber(n),
				FiscalEndDate: rec.FiscalEndDate,
			}
			if n == 1 {
				sq.HasPriorQuarter = true
				sq.Revenue = rec.Revenue
				sq.GrossProfit = rec.GrossProfit
				sq.OperatingIncome = rec.OperatingIncome
				sq.OrdinaryIncome = rec.OrdinaryIncome
				sq.NetIncome = rec.NetIncome
			} else if prev, ok := yr.rows[n-1]; ok {
				sq.HasPriorQuarter = true
				sq.Revenue = subtract(rec.Revenue, prev.Revenue)
				sq.GrossProfit = subtract(rec.GrossProfit, prev.GrossProfit)
				sq.OperatingIncome = subtract(rec.OperatingIncome, prev.OperatingIncome)
				sq.OrdinaryIncome = subtract(rec.OrdinaryIncome, prev.OrdinaryIncome)
				sq.NetIncome = subtract(rec.NetIncome, prev.NetIncome)
			}
			out = append(out, sq)
		}
	}
	return out
}

func subtract(cur, prev *float64) *float64 {
	if cur == nil || prev == nil {
		return nil
	}
	v := *cur - *prev
	return &v
}

// YoYComparison pairs a cumulative record with the same quarter one fiscal
// year earlier.
type YoYComparison struct {
	FiscalYear         int
	Quarter            dto.Quarter
	Revenue            *float64
	RevenuePrevYear    *float64
	RevenueYoYChange   *float64
	RevenueYoYPct      *float64
	OperatingIncome    *float64
	OperatingPrevYear  *float64
	OperatingYoYChange *float64
	OperatingYoYPct    *float64
	OrdinaryIncome     *float64
	OrdinaryPrevYear   *float64
	OrdinaryYoYChange  *float64
	OrdinaryYoYPct     *float64
	NetIncome          *float64
	NetIncomePrevYear  *float64
	NetIncomeYoYChange *float64
	NetIncomeYoYPct    *float64
	EPS                *float64
	EPSPrevYear        *float64
	EPSYoYChange       *float64
	EPSYoYPct          *float64
}

// ComputeYoY matches each record against the same quarter of the previous
// fiscal year. Records without a counterpart still appear, with nil
// comparison columns.
func ComputeYoY(records []model.FinancialRecord) []YoYComparison {
	index := map[[2]interface{}]*model.FinancialRecord{}
	for i := range records {
		rec := &records[i]
		index[[2]interface{}{rec.FiscalYear, rec.Quarter}] = rec
	}

	sorted := make([]*model.FinancialRecord, 0, len(records))
	for i := range records {
		sorted = append(sorted, &records[i])
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FiscalYear != sorted[j].FiscalYear {
			return sorted[i].FiscalYear < sorted[j].FiscalYear
		}
		return dto.Quarter(sorted[i].Quarter).Number() < dto.Quarter(sorted[j].Quarter).Number()
	})

	out := make([]YoYComparison, 0, len(sorted))
	for _, rec := range sorted {
		cmp := YoYComparison{
			FiscalYear:      rec.FiscalYear,
			Quarter:         dto.Quarter(rec.Quarter),
			Revenue:         rec.Revenue,
			OperatingIncome: rec.OperatingIncome,
			OrdinaryIncome:  rec.OrdinaryIncome,
			NetIncome:       rec.NetIncome,
			EPS:             rec.EPS,
		}
		if prev, ok := index[[2]interface{}{rec.FiscalYear - 1, rec.Quarter}]; ok {
			cmp.RevenuePrevYear = prev.Revenue
			cmp.RevenueYoYChange = subtract(rec.Revenue, prev.Revenue)
			cmp.RevenueYoYPct = PctChange(rec.Revenue, prev.Revenue)
			cmp.OperatingPrevYear = prev.OperatingIncome
			cmp.OperatingYoYChange = subtract(rec.OperatingIncome, prev.OperatingIncome)
			cmp.OperatingYoYPct = PctChange(rec.OperatingIncome, prev.OperatingIncome)
			cmp.OrdinaryPrevYear = prev.OrdinaryIncome
			cmp.OrdinaryYoYChange = subtract(rec.OrdinaryIncome, prev.OrdinaryIncome)
			cmp.OrdinaryYoYPct = PctChange(rec.OrdinaryIncome, prev.OrdinaryIncome)
			cmp.NetIncomePrevYear = prev.NetIncome
			cmp.NetIncomeYoYChange = subtract(rec.NetIncome, prev.NetIncome)
			cmp.NetIncomeYoYPct = PctChange(rec.NetIncome, prev.NetIncome)
			cmp.EPSPrevYear = prev.EPS
			cmp.EPSYoYChange = subtract(rec.EPS, prev.EPS)
			cmp.EPSYoYPct = PctChange(rec.EPS, prev.EPS)
		}
		out = append(out, cmp)
	}
	return out
}

// QoQComparison compares consecutive standalone quarters.
type QoQComparison struct {
	FiscalYear           int
	Quarter              dto.Quarter
	Revenue              *float64
	RevenuePrev          *float64
	RevenueQoQChange     *float64
	RevenueQoQPct        *float64
	GrossProfit          *float64
	GrossProfitPrev      *float64
	GrossProfitQoQChange *float64
	GrossProfitQoQPct    *float64
	OperatingIncome      *float64
	OperatingPrev        *float64
	OperatingQoQChange   *float64
	OperatingQoQPct      *float64
	OrdinaryIncome       *float64
	OrdinaryPrev         *float64
	OrdinaryQoQChange    *float64
	OrdinaryQoQPct       *float64
	NetIncome            *float64
	NetIncomePrev        *float64
	NetIncomeQoQChange   *float64
	NetIncomeQoQPct      *float64
}

// ComputeQoQ runs on standalone figures. Q1's predecessor is the prior
// year's Q4; the FY label never appears since standalone rows are Q1..Q4.
func ComputeQoQ(standalone []StandaloneQuarter) []QoQComparison {
	index := map[[2]interface{}]*StandaloneQuarter{}
	for i := range standalone {
		sq := &standalone[i]
		index[[2]interface{}{sq.FiscalYear, sq.Quarter}] = sq
	}

	out := make([]QoQComparison, 0, len(standalone))
	for i := range standalone {
		sq := &standalone[i]
		cmp := QoQComparison{
			FiscalYear:      sq.FiscalYear,
			Quarter:         sq.Quarter,
			Revenue:         sq.Revenue,
			GrossProfit:     sq.GrossProfit,
			OperatingIncome: sq.OperatingIncome,
			OrdinaryIncome:  sq.OrdinaryIncome,
			NetIncome:       sq.NetIncome,
		}

		prevYear, prevQuarter := sq.FiscalYear, dto.QuarterFromNumber(sq.Quarter.Number()-1)
		if sq.Quarter == dto.QuarterQ1 {
			prevYear, prevQuarter = sq.FiscalYear-1, dto.QuarterQ4
		}
		if prev, ok := index[[2]interface{}{prevYear, prevQuarter}]; ok {
			cmp.RevenuePrev = prev.Revenue
			cmp.RevenueQoQChange = subtract(sq.Revenue, prev.Revenue)
			cmp.RevenueQoQPct = PctChange(sq.Revenue, prev.Revenue)
			cmp.GrossProfitPrev = prev.GrossProfit
			cmp.GrossProfitQoQChange = subtract(sq.GrossProfit, prev.GrossProfit)
			cmp.GrossProfitQoQPct = PctChange(sq.GrossProfit, prev.GrossProfit)
			cmp.OperatingPrev = prev.OperatingIncome
			cmp.OperatingQoQChange = subtract(sq.OperatingIncome, prev.OperatingIncome)
			cmp.OperatingQoQPct = PctChange(sq.OperatingIncome, prev.OperatingIncome)
			cmp.OrdinaryPrev = prev.OrdinaryIncome
			cmp.OrdinaryQoQChange = subtract(sq.OrdinaryIncome, prev.OrdinaryIncome)
			cmp.OrdinaryQoQPct = PctChange(sq.OrdinaryIncome, prev.OrdinaryIncome)
			cmp.NetIncomePrev = prev.NetIncome
			cmp.NetIncomeQoQChange = subtract(sq.NetIncome, prev.NetIncome)
			cmp.NetIncomeQoQPct = PctChange(sq.NetIncome, prev.NetIncome)
		}
		out = append(out, cmp)
	}
	return out
}
