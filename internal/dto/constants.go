package dto

// Source identifies where a financial record came from. Higher priority
// sources overwrite lower ones during the merge, never the other way.
type Source string

const (
	SourceEDINET    Source = "edinet"
	SourceTDnet     Source = "tdnet"
	SourceJQuants   Source = "jquants"
	SourcePriceFeed Source = "price_feed"
)

func (s Source) Priority() int {
	switch s {
	case SourceEDINET:
		return 3
	case SourceTDnet, SourceJQuants:
		return 2
	case SourcePriceFeed:
		return 1
	default:
		return 0
	}
}

// Quarter labels a reporting period. FY is the cumulative full-year row,
// Q1..Q4 are cumulative year-to-date rows.
type Quarter string

const (
	QuarterQ1 Quarter = "Q1"
	QuarterQ2 Quarter = "Q2"
	QuarterQ3 Quarter = "Q3"
	QuarterQ4 Quarter = "Q4"
	QuarterFY Quarter = "FY"
)

func (q Quarter) IsValid() bool {
	switch q {
	case QuarterQ1, QuarterQ2, QuarterQ3, QuarterQ4, QuarterFY:
		return true
	}
	return false
}

// Number returns 1..4 for quarterly periods and 4 for FY, since the
// full-year row closes on the fourth quarter end.
func (q Quarter) Number() int {
	switch q {
	case QuarterQ1:
		return 1
	case QuarterQ2:
		return 2
	case QuarterQ3:
		return 3
	case QuarterQ4, QuarterFY:
		return 4
	default:
		return 0
	}
}

func QuarterFromNumber(n int) Quarter {
	switch n {
	case 1:
		return QuarterQ1
	case 2:
		return QuarterQ2
	case 3:
		return QuarterQ3
	case 4:
		return QuarterQ4
	default:
		return ""
	}
}

type ForecastType string

const (
	ForecastInitial ForecastType = "initial"
	ForecastRevised ForecastType = "revised"
)

type AnnouncementType string

const (
	AnnouncementEarnings AnnouncementType = "earnings"
	AnnouncementRevision AnnouncementType = "revision"
	AnnouncementDividend AnnouncementType = "dividend"
	AnnouncementOther    AnnouncementType = "other"
)

// EDINET document type codes for the filings this pipeline consumes.
const (
	EDINETDocTypeAnnual     = "120"
	EDINETDocTypeQuarterly  = "140"
	EDINETDocTypeSemiAnnual = "160"
)

// UpsertReason explains the outcome of a priority merge.
type UpsertReason string

const (
	UpsertCreated              UpsertReason = "created"
	UpsertUpdated              UpsertReason = "updated"
	UpsertSkippedLowPriority   UpsertReason = "skipped_lower_priority"
	UpsertRefusedUnknownTicker UpsertReason = "refused_unknown_ticker"
)

type UpsertResult struct {
	Applied bool         `json:"applied"`
	Reason  UpsertReason `json:"reason"`
}
