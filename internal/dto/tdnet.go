package dto

import "time"

// TDnetDisclosure is one row scraped from the TDnet daily disclosure list.
type TDnetDisclosure struct {
	Time        time.Time
	Code        string // securities code as published, usually 5 digits
	CompanyName string
	Title       string
	PDFURL      string
	XBRLURL     string // zip attachment, empty when the filing has no XBRL
}

type GetTDnetDisclosuresParam struct {
	Date time.Time
}

// TDnetSummary carries the metadata lifted from an earnings summary
// attachment (tse-ed-t namespace plus DEI elements).
type TDnetSummary struct {
	SecuritiesCode  string
	DocumentName    string
	FilingDate      string
	FiscalYearEnd   string // YYYY-MM-DD
	QuarterlyPeriod string // 1..3, empty for FY
	PeriodType      string // DEI TypeOfCurrentPeriodDEI: Q1, Q2, Q3, HY, FY
}
