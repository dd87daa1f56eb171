package period

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/pkg/utils"

	"golang.org/x/text/width"
)

var (
	fiscalYearPattern    = regexp.MustCompile(`(\d{4})年.*?期`)
	quarterPattern       = regexp.MustCompile(`第([1-4])四半期`)
	fiscalYearEndPattern = regexp.MustCompile(`(\d{4})年(\d{1,2})月期`)
)

// fullYearKeywords mark a disclosure as the annual (cumulative FY) report.
var fullYearKeywords = []string{"通期", "本決算", "期末"}

// NormalizeTitle folds full-width digits to ASCII and rewrites era years.
// TDnet titles mix full-width and half-width freely.
func NormalizeTitle(title string) string {
	return WarekiToSeireki(width.Fold.String(title))
}

// DetectFiscalPeriod reads fiscal year and quarter from a disclosure title,
// falling back to the announcement year when the title has no year.
//
//	"2024年3月期 第1四半期決算短信" → (2024, Q1)
//	"2024年3月期 通期決算短信"      → (2024, FY)
func DetectFiscalPeriod(title string, announcedAt time.Time) (int, dto.Quarter) {
	normalized := NormalizeTitle(title)

	fiscalYear := announcedAt.Year()
	if m := fiscalYearPattern.FindStringSubmatch(normalized); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			fiscalYear = y
		}
	}

	quarter := dto.QuarterFY
	isFullYear := false
	for _, kw := range fullYearKeywords {
		if strings.Contains(normalized, kw) {
			isFullYear = true
			break
		}
	}
	if !isFullYear {
		if m := quarterPattern.FindStringSubmatch(normalized); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				quarter = dto.QuarterFromNumber(n)
			}
		}
	}

	return fiscalYear, quarter
}

// FiscalEndFromTitle derives the quarter end date from the 「YYYY年M月期」
// expression, used when the attachment's own contexts are unusable.
func FiscalEndFromTitle(title string, quarter dto.Quarter) *time.Time {
	normalized := NormalizeTitle(title)

	m := fiscalYearEndPattern.FindStringSubmatch(normalized)
	if m == nil {
		return nil
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	month, err := strconv.Atoi(m[2])
	if err != nil || month < 1 || month > 12 {
		return nil
	}

	fyEnd := utils.EndOfMonth(year, time.Month(month))
	return ComputeFiscalEndDate(fyEnd, quarter)
}
