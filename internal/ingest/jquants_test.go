package ingest

import (
	"context"
	"testing"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statement(code, period, fyEnd, docType, disclosureNumber string) dto.JQuantsStatement {
	return dto.JQuantsStatement{
		LocalCode:                code,
		TypeOfCurrentPeriod:      period,
		CurrentFiscalYearEndDate: fyEnd,
		TypeOfDocument:           docType,
		DisclosureNumber:         disclosureNumber,
	}
}

func TestSelectStatements(t *testing.T) {
	statements := []dto.JQuantsStatement{
		statement("72030", "FY", "2025-03-31", "FYFinancialStatements_NonConsolidated_JP", "20250509400001"),
		statement("72030", "FY", "2025-03-31", "FYFinancialStatements_Consolidated_IFRS", "20250509400002"),
		statement("67580", "1Q", "2026-03-31", "1QFinancialStatements_Consolidated_IFRS", "20250509400003"),
		statement("67580", "1Q", "2026-03-31", "1QFinancialStatements_Consolidated_IFRS", "20250509400010"),
		statement("99840", "FY", "2025-03-31", "DividendForecastRevision", "20250509400004"),
	}

	got := selectStatements(statements)
	require.Len(t, got, 2)

	// Consolidated beats non-consolidated regardless of disclosure order.
	assert.Equal(t, "72030", got[0].LocalCode)
	assert.Equal(t, "FYFinancialStatements_Consolidated_IFRS", got[0].TypeOfDocument)

	// Among equals the later disclosure number wins.
	assert.Equal(t, "67580", got[1].LocalCode)
	assert.Equal(t, "20250509400010", got[1].DisclosureNumber)
}

// Revision documents must survive selection on their own key; they carry
// the guidance updates between earnings releases.
func TestSelectStatements_KeepsForecastRevisions(t *testing.T) {
	statements := []dto.JQuantsStatement{
		statement("72030", "3Q", "2026-03-31", "EarnForecastRevision", "20251105400001"),
		statement("72030", "3Q", "2026-03-31", "3QFinancialStatements_Consolidated_IFRS", "20251105400002"),
		statement("89720", "", "2026-03-31", "REITEarnForecastRevision", "20251105400003"),
	}

	got := selectStatements(statements)
	require.Len(t, got, 3)
	assert.Equal(t, "EarnForecastRevision", got[0].TypeOfDocument)
	assert.Equal(t, "3QFinancialStatements_Consolidated_IFRS", got[1].TypeOfDocument)
	assert.Equal(t, "REITEarnForecastRevision", got[2].TypeOfDocument)

	// A statement and a revision for the same period never dedupe into one.
	assert.Equal(t, "72030", got[0].LocalCode)
	assert.Equal(t, "72030", got[1].LocalCode)
}

func TestIsForecastRevision(t *testing.T) {
	assert.True(t, isForecastRevision("EarnForecastRevision"))
	assert.True(t, isForecastRevision("REITEarnForecastRevision"))
	assert.False(t, isForecastRevision("DividendForecastRevision"))
	assert.False(t, isForecastRevision("FYFinancialStatements_Consolidated_IFRS"))
}

func TestStatementRank(t *testing.T) {
	consolidated := statement("72030", "FY", "2025-03-31", "FYFinancialStatements_Consolidated_JP", "100")
	nonConsolidated := statement("72030", "FY", "2025-03-31", "FYFinancialStatements_NonConsolidated_JP", "200")

	assert.True(t, statementRank(consolidated, nonConsolidated))
	assert.False(t, statementRank(nonConsolidated, consolidated))

	earlier := statement("72030", "FY", "2025-03-31", "FYFinancialStatements_Consolidated_JP", "100")
	later := statement("72030", "FY", "2025-03-31", "FYFinancialStatements_Consolidated_JP", "101")
	assert.True(t, statementRank(later, earlier))
	assert.False(t, statementRank(earlier, later))
}

func TestIsConsolidated(t *testing.T) {
	assert.True(t, isConsolidated("FYFinancialStatements_Consolidated_IFRS"))
	assert.False(t, isConsolidated("FYFinancialStatements_NonConsolidated_JP"))
	assert.False(t, isConsolidated("OtherPeriodFinancialStatements"))
}

func TestCompareDisclosureNumbers(t *testing.T) {
	assert.Equal(t, 0, compareDisclosureNumbers("100", "100"))
	assert.Equal(t, 1, compareDisclosureNumbers("101", "100"))
	assert.Equal(t, -1, compareDisclosureNumbers("100", "101"))
	// Longer always means larger for zero-padded sequence numbers.
	assert.Equal(t, 1, compareDisclosureNumbers("1000", "999"))
	assert.Equal(t, -1, compareDisclosureNumbers("999", "1000"))
}

func TestParseNumeric(t *testing.T) {
	assert.Nil(t, parseNumeric(""))
	assert.Nil(t, parseNumeric("-"))
	assert.Nil(t, parseNumeric(" "))
	assert.Nil(t, parseNumeric("n/a"))

	got := parseNumeric("365.94")
	require.NotNil(t, got)
	assert.InDelta(t, 365.94, *got, 0.001)

	negative := parseNumeric("-1200")
	require.NotNil(t, negative)
	assert.InDelta(t, -1200, *negative, 0.001)
}

func TestParseYenToMillions(t *testing.T) {
	got := parseYenToMillions("45095325000000")
	require.NotNil(t, got)
	assert.InDelta(t, 45095325, *got, 0.001)

	assert.Nil(t, parseYenToMillions(""))
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, 2025, yearOf("2025-03-31"))
	assert.Equal(t, 0, yearOf(""))
	assert.Equal(t, 0, yearOf("2025/03/31"))
}

type recordingForecastRepo struct {
	forecasts []model.ManagementForecast
}

func (r *recordingForecastRepo) Upsert(ctx context.Context, forecast *model.ManagementForecast) (dto.UpsertResult, error) {
	r.forecasts = append(r.forecasts, *forecast)
	return dto.UpsertResult{Applied: true, Reason: dto.UpsertCreated}, nil
}

func (r *recordingForecastRepo) Get(ctx context.Context, ticker string) ([]model.ManagementForecast, error) {
	return nil, nil
}

// A revision document guides the fiscal year in progress; only full-year
// earnings releases roll guidance forward to the next year.
func TestStoreJQuantsForecast_RevisionBindsCurrentYear(t *testing.T) {
	recorder := &recordingForecastRepo{}
	s := &service{repo: &repository.Repository{ForecastRepo: recorder}}

	stmt := statement("72030", "", "2026-03-31", "EarnForecastRevision", "20251105400001")
	stmt.DisclosedDate = "2025-11-05"
	stmt.NextFiscalYearEndDate = "2027-03-31"
	stmt.ForecastNetSales = "50000000000000"

	applied, err := s.storeJQuantsForecast(context.Background(), stmt, "7203", "")
	require.NoError(t, err)
	assert.True(t, applied)

	require.Len(t, recorder.forecasts, 1)
	got := recorder.forecasts[0]
	assert.Equal(t, 2026, got.FiscalYear)
	assert.Equal(t, string(dto.QuarterFY), got.Quarter)
	assert.Equal(t, string(dto.ForecastRevised), got.ForecastType)
	assert.Equal(t, "2025-11-05", got.AnnouncedDate.Format("2006-01-02"))
	require.NotNil(t, got.Revenue)
	assert.InDelta(t, 50000000, *got.Revenue, 0.001)
}

func TestStoreJQuantsForecast_FullYearBindsNextYear(t *testing.T) {
	recorder := &recordingForecastRepo{}
	s := &service{repo: &repository.Repository{ForecastRepo: recorder}}

	stmt := statement("72030", "FY", "2025-03-31", "FYFinancialStatements_Consolidated_IFRS", "20250509400001")
	stmt.DisclosedDate = "2025-05-09"
	stmt.NextFiscalYearEndDate = "2026-03-31"
	stmt.ForecastNetSales = "48000000000000"

	applied, err := s.storeJQuantsForecast(context.Background(), stmt, "7203", dto.QuarterFY)
	require.NoError(t, err)
	assert.True(t, applied)

	require.Len(t, recorder.forecasts, 1)
	got := recorder.forecasts[0]
	assert.Equal(t, 2026, got.FiscalYear)
	assert.Equal(t, string(dto.ForecastInitial), got.ForecastType)
}

func TestStoreJQuantsForecast_RequiresDisclosedDate(t *testing.T) {
	s := &service{repo: &repository.Repository{ForecastRepo: &recordingForecastRepo{}}}

	stmt := statement("72030", "FY", "2025-03-31", "FYFinancialStatements_Consolidated_IFRS", "1")
	stmt.ForecastNetSales = "48000000000000"

	_, err := s.storeJQuantsForecast(context.Background(), stmt, "7203", dto.QuarterFY)
	assert.Error(t, err)
}

// Revision documents never touch the financial records table; they route
// straight to the forecast store.
func TestProcessJQuantsStatement_RevisionSkipsFinancials(t *testing.T) {
	recorder := &recordingForecastRepo{}
	s := &service{repo: &repository.Repository{ForecastRepo: recorder}}

	stmt := statement("72030", "", "2026-03-31", "EarnForecastRevision", "20251105400001")
	stmt.DisclosedDate = "2025-11-05"
	stmt.ForecastNetSales = "50000000000000"

	applied, err := s.processJQuantsStatement(context.Background(), stmt)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Len(t, recorder.forecasts, 1)
}
