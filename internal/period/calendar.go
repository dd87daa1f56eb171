package period

import (
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/pkg/utils"
)

// monthsBeforeFYEnd is how far each quarter end sits before the fiscal year
// end. Q4 closes on the fiscal year end itself.
var monthsBeforeFYEnd = map[dto.Quarter]int{
	dto.QuarterFY: 0,
	dto.QuarterQ4: 0,
	dto.QuarterQ3: 3,
	dto.QuarterQ2: 6,
	dto.QuarterQ1: 9,
}

// ComputeFiscalEndDate counts back from the fiscal year end to the given
// quarter's end, clamped to the last day of the month. A March 31 year end
// puts Q1 at June 30 of the prior calendar year.
func ComputeFiscalEndDate(fiscalYearEnd time.Time, quarter dto.Quarter) *time.Time {
	monthsBefore, ok := monthsBeforeFYEnd[quarter]
	if !ok {
		return nil
	}
	end := utils.AddMonthsClamped(fiscalYearEnd.Year(), fiscalYearEnd.Month(), -monthsBefore)
	return &end
}
