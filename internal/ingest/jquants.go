package ingest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"
)

// jquantsQuarterMap translates TypeOfCurrentPeriod into the canonical
// quarter label.
var jquantsQuarterMap = map[string]dto.Quarter{
	"1Q": dto.QuarterQ1,
	"2Q": dto.QuarterQ2,
	"3Q": dto.QuarterQ3,
	"4Q": dto.QuarterQ4,
	"FY": dto.QuarterFY,
}

// IngestJQuants processes statements disclosed on one date (YYYY-MM-DD).
func (s *service) IngestJQuants(ctx context.Context, date string) (Stats, error) {
	var stats Stats

	statements, err := s.repo.JQuantsRepo.GetStatements(ctx, dto.GetJQuantsStatementsParam{Date: date})
	if err != nil {
		return stats, fmt.Errorf("failed to fetch J-Quants statements: %w", err)
	}

	for _, stmt := range selectStatements(statements) {
		if !utils.ShouldContinue(ctx, s.log) {
			return stats, ctx.Err()
		}

		stats.Processed++
		applied, err := s.processJQuantsStatement(ctx, stmt)
		if err != nil {
			stats.Failed++
			s.log.WarnContext(ctx, "Failed to process J-Quants statement",
				logger.ErrorField(err),
				logger.StringField("local_code", stmt.LocalCode),
				logger.StringField("type_of_document", stmt.TypeOfDocument),
			)
			continue
		}
		if applied {
			stats.Applied++
		} else {
			stats.Skipped++
		}
	}

	s.log.InfoContext(ctx, "J-Quants ingestion completed",
		logger.StringField("date", date),
		logger.StringField("stats", stats.String()),
	)
	return stats, nil
}

// selectStatements keeps one statement per (code, period). Companies often
// disclose consolidated and non-consolidated rows for the same period;
// consolidated wins, and among equals the later disclosure number wins.
// Forecast revision documents pass through on their own key, so a revision
// never displaces the statement row it accompanies.
func selectStatements(statements []dto.JQuantsStatement) []dto.JQuantsStatement {
	type key struct {
		code     string
		period   string
		fyEnd    string
		revision bool
	}
	best := make(map[key]dto.JQuantsStatement)
	var order []key

	for _, stmt := range statements {
		revision := isForecastRevision(stmt.TypeOfDocument)
		if !revision && !strings.Contains(stmt.TypeOfDocument, "FinancialStatements") {
			continue
		}
		k := key{code: stmt.LocalCode, period: stmt.TypeOfCurrentPeriod, fyEnd: stmt.CurrentFiscalYearEndDate, revision: revision}
		current, ok := best[k]
		if !ok {
			best[k] = stmt
			order = append(order, k)
			continue
		}
		if statementRank(stmt, current) {
			best[k] = stmt
		}
	}

	selected := make([]dto.JQuantsStatement, 0, len(order))
	for _, k := range order {
		selected = append(selected, best[k])
	}
	return selected
}

// statementRank reports whether candidate should replace current.
func statementRank(candidate, current dto.JQuantsStatement) bool {
	candCons := isConsolidated(candidate.TypeOfDocument)
	currCons := isConsolidated(current.TypeOfDocument)
	if candCons != currCons {
		return candCons
	}
	return compareDisclosureNumbers(candidate.DisclosureNumber, current.DisclosureNumber) > 0
}

// isForecastRevision matches EarnForecastRevision and its REIT variant.
// Dividend-only revisions carry no earnings guidance and stay excluded.
func isForecastRevision(typeOfDocument string) bool {
	return strings.Contains(typeOfDocument, "EarnForecastRevision")
}

func isConsolidated(typeOfDocument string) bool {
	return strings.Contains(typeOfDocument, "Consolidated") && !strings.Contains(typeOfDocument, "NonConsolidated")
}

// compareDisclosureNumbers compares the zero-padded numeric strings the API
// issues. Longer means larger; equal lengths compare lexicographically.
func compareDisclosureNumbers(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func (s *service) processJQuantsStatement(ctx context.Context, stmt dto.JQuantsStatement) (bool, error) {
	ticker := tickerFromSecCode(stmt.LocalCode)
	if ticker == "" {
		return false, fmt.Errorf("unusable local code %q", stmt.LocalCode)
	}

	// Revision documents carry guidance only, never period financials.
	if isForecastRevision(stmt.TypeOfDocument) {
		return s.storeJQuantsForecast(ctx, stmt, ticker, "")
	}

	quarter, ok := jquantsQuarterMap[strings.TrimSpace(stmt.TypeOfCurrentPeriod)]
	if !ok {
		return false, fmt.Errorf("unknown period type %q", stmt.TypeOfCurrentPeriod)
	}

	fiscalYear := yearOf(stmt.CurrentFiscalYearEndDate)
	if fiscalYear == 0 {
		return false, fmt.Errorf("no fiscal year end in statement")
	}

	record := model.FinancialRecord{
		Ticker:           ticker,
		FiscalYear:       fiscalYear,
		Quarter:          string(quarter),
		Revenue:          parseYenToMillions(stmt.NetSales),
		OperatingIncome:  parseYenToMillions(stmt.OperatingProfit),
		OrdinaryIncome:   parseYenToMillions(stmt.OrdinaryProfit),
		NetIncome:        parseYenToMillions(stmt.Profit),
		EPS:              parseNumeric(stmt.EarningsPerShare),
		FiscalEndDate:    parseDatePtr(stmt.CurrentPeriodEndDate),
		AnnouncementDate: parseDatePtr(stmt.DisclosedDate),
		AnnouncementTime: nonEmpty(stmt.DisclosedTime),
		Source:           string(dto.SourceJQuants),
		SourceDocumentID: nonEmpty(stmt.DisclosureNumber),
	}

	result, err := s.repo.FinancialRepo.Upsert(ctx, &record)
	if err != nil {
		return false, err
	}
	if result.Reason == dto.UpsertRefusedUnknownTicker {
		return false, nil
	}

	if _, err := s.storeJQuantsForecast(ctx, stmt, ticker, quarter); err != nil {
		s.log.WarnContext(ctx, "Failed to store J-Quants forecast",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
	}

	return result.Applied, nil
}

// storeJQuantsForecast records guidance carried on the statement. Full-year
// rows guide the next fiscal year; interim rows and revision documents
// guide the current one. The 2ndQuarter variants are half-year guidance
// and land on the Q2 row. Returns whether any guidance was applied.
func (s *service) storeJQuantsForecast(ctx context.Context, stmt dto.JQuantsStatement, ticker string, quarter dto.Quarter) (bool, error) {
	announced := parseDatePtr(stmt.DisclosedDate)
	if announced == nil {
		return false, fmt.Errorf("statement has no disclosed date")
	}

	forecastType := dto.ForecastInitial
	if isForecastRevision(stmt.TypeOfDocument) {
		forecastType = dto.ForecastRevised
	}

	targetYear := yearOf(stmt.CurrentFiscalYearEndDate)
	if forecastType != dto.ForecastRevised && (quarter == dto.QuarterFY || quarter == dto.QuarterQ4) {
		if next := yearOf(stmt.NextFiscalYearEndDate); next != 0 {
			targetYear = next
		} else {
			targetYear++
		}
	}
	if targetYear == 0 {
		return false, fmt.Errorf("no fiscal year end in statement")
	}

	applied := false

	annual := model.ManagementForecast{
		Ticker:           ticker,
		FiscalYear:       targetYear,
		Quarter:          string(dto.QuarterFY),
		AnnouncedDate:    *announced,
		ForecastType:     string(forecastType),
		Revenue:          parseYenToMillions(stmt.ForecastNetSales),
		OperatingIncome:  parseYenToMillions(stmt.ForecastOperatingProfit),
		OrdinaryIncome:   parseYenToMillions(stmt.ForecastOrdinaryProfit),
		NetIncome:        parseYenToMillions(stmt.ForecastProfit),
		EPS:              parseNumeric(stmt.ForecastEarningsPerShare),
		DividendPerShare: parseNumeric(stmt.ForecastDividendPerShareAnnual),
		Source:           string(dto.SourceJQuants),
	}
	if !forecastIsEmpty(annual) {
		result, err := s.repo.ForecastRepo.Upsert(ctx, &annual)
		if err != nil {
			return applied, err
		}
		applied = applied || result.Applied
	}

	half := model.ManagementForecast{
		Ticker:          ticker,
		FiscalYear:      targetYear,
		Quarter:         string(dto.QuarterQ2),
		AnnouncedDate:   *announced,
		ForecastType:    string(forecastType),
		Revenue:         parseYenToMillions(stmt.ForecastNetSales2ndQuarter),
		OperatingIncome: parseYenToMillions(stmt.ForecastOperatingProfit2ndQuarter),
		OrdinaryIncome:  parseYenToMillions(stmt.ForecastOrdinaryProfit2ndQuarter),
		NetIncome:       parseYenToMillions(stmt.ForecastProfit2ndQuarter),
		EPS:             parseNumeric(stmt.ForecastEarningsPerShare2ndQuarter),
		Source:          string(dto.SourceJQuants),
	}
	if !forecastIsEmpty(half) {
		result, err := s.repo.ForecastRepo.Upsert(ctx, &half)
		if err != nil {
			return applied, err
		}
		applied = applied || result.Applied
	}
	return applied, nil
}

func forecastIsEmpty(f model.ManagementForecast) bool {
	return f.Revenue == nil && f.OperatingIncome == nil && f.OrdinaryIncome == nil &&
		f.NetIncome == nil && f.EPS == nil && f.DividendPerShare == nil
}

func nonEmpty(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

// parseNumeric parses a statement value. Empty strings mean not disclosed.
func parseNumeric(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseYenToMillions converts a yen amount string to millions of yen.
func parseYenToMillions(value string) *float64 {
	f := parseNumeric(value)
	if f == nil {
		return nil
	}
	millions := *f / 1_000_000
	return &millions
}

func parseDatePtr(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

func yearOf(date string) int {
	t := parseDatePtr(date)
	if t == nil {
		return 0
	}
	return t.Year()
}
