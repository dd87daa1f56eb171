package repository

import (
	"context"
	"testing"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 {
	return &v
}

func sptr(v string) *string {
	return &v
}

func dptr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestMergeRecords(t *testing.T) {
	tests := []struct {
		name     string
		stored   model.FinancialRecord
		incoming model.FinancialRecord
		want     model.FinancialRecord
	}{
		{
			name: "incoming non-nil wins",
			stored: model.FinancialRecord{
				Revenue:         fptr(100),
				OperatingIncome: fptr(10),
				Source:          string(dto.SourceTDnet),
			},
			incoming: model.FinancialRecord{
				Revenue:         fptr(120),
				OperatingIncome: fptr(12),
				Source:          string(dto.SourceEDINET),
			},
			want: model.FinancialRecord{
				Revenue:         fptr(120),
				OperatingIncome: fptr(12),
				Source:          string(dto.SourceEDINET),
			},
		},
		{
			name: "incoming nil never erases",
			stored: model.FinancialRecord{
				Revenue: fptr(100),
				EPS:     fptr(365.94),
				Source:  string(dto.SourceTDnet),
			},
			incoming: model.FinancialRecord{
				Revenue: fptr(120),
				Source:  string(dto.SourceEDINET),
			},
			want: model.FinancialRecord{
				Revenue: fptr(120),
				EPS:     fptr(365.94),
				Source:  string(dto.SourceEDINET),
			},
		},
		{
			name: "announcement date takes the earliest",
			stored: model.FinancialRecord{
				AnnouncementDate: dptr(2025, 5, 9),
				Source:           string(dto.SourceTDnet),
			},
			incoming: model.FinancialRecord{
				AnnouncementDate: dptr(2025, 6, 20),
				Source:           string(dto.SourceEDINET),
			},
			want: model.FinancialRecord{
				AnnouncementDate: dptr(2025, 5, 9),
				Source:           string(dto.SourceEDINET),
			},
		},
		{
			name: "stored announcement date survives nil incoming",
			stored: model.FinancialRecord{
				AnnouncementDate: dptr(2025, 5, 9),
				Source:           string(dto.SourceTDnet),
			},
			incoming: model.FinancialRecord{
				Source: string(dto.SourceJQuants),
			},
			want: model.FinancialRecord{
				AnnouncementDate: dptr(2025, 5, 9),
				Source:           string(dto.SourceJQuants),
			},
		},
		{
			name: "document id and time follow the applied writer",
			stored: model.FinancialRecord{
				Revenue:          fptr(100),
				AnnouncementDate: dptr(2025, 5, 9),
				AnnouncementTime: sptr("15:30"),
				SourceDocumentID: sptr("081220250509487544"),
				Source:           string(dto.SourceTDnet),
			},
			incoming: model.FinancialRecord{
				Revenue:          fptr(110),
				AnnouncementDate: dptr(2025, 6, 20),
				AnnouncementTime: sptr("09:00"),
				SourceDocumentID: sptr("S100TXYZ"),
				Source:           string(dto.SourceEDINET),
			},
			want: model.FinancialRecord{
				Revenue:          fptr(110),
				AnnouncementDate: dptr(2025, 5, 9),
				AnnouncementTime: sptr("15:30"),
				SourceDocumentID: sptr("S100TXYZ"),
				Source:           string(dto.SourceEDINET),
			},
		},
		{
			name: "stored document id survives a writer without one",
			stored: model.FinancialRecord{
				SourceDocumentID: sptr("S100TXYZ"),
				Source:           string(dto.SourceEDINET),
			},
			incoming: model.FinancialRecord{
				Source: string(dto.SourceJQuants),
			},
			want: model.FinancialRecord{
				SourceDocumentID: sptr("S100TXYZ"),
				Source:           string(dto.SourceJQuants),
			},
		},
		{
			name: "fiscal end date kept when incoming omits it",
			stored: model.FinancialRecord{
				FiscalEndDate: dptr(2025, 3, 31),
				Source:        string(dto.SourceTDnet),
			},
			incoming: model.FinancialRecord{
				Source: string(dto.SourceEDINET),
			},
			want: model.FinancialRecord{
				FiscalEndDate: dptr(2025, 3, 31),
				Source:        string(dto.SourceEDINET),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeRecords(tt.stored, tt.incoming)
			assertMergedEqual(t, tt.want, got)
		})
	}
}

// Two sources disclosing complementary fields must converge to the same
// merged row no matter which one arrives first.
func TestMergeRecords_ArrivalOrderConvergence(t *testing.T) {
	tdnet := model.FinancialRecord{
		Revenue:          fptr(45095325),
		OperatingIncome:  fptr(5352934),
		AnnouncementDate: dptr(2025, 5, 9),
		Source:           string(dto.SourceTDnet),
	}
	edinet := model.FinancialRecord{
		Revenue:          fptr(45095325),
		NetIncome:        fptr(4944933),
		EPS:              fptr(365.94),
		AnnouncementDate: dptr(2025, 6, 20),
		Source:           string(dto.SourceEDINET),
	}

	a := MergeRecords(tdnet, edinet)
	b := MergeRecords(edinet, tdnet)
	b.Source = a.Source // the writer column differs by arrival, the data must not

	assertMergedEqual(t, a, b)
	require.NotNil(t, a.AnnouncementDate)
	assert.Equal(t, *dptr(2025, 5, 9), *a.AnnouncementDate)
}

func assertMergedEqual(t *testing.T, want, got model.FinancialRecord) {
	t.Helper()
	assertFloatPtrEqual(t, want.Revenue, got.Revenue, "revenue")
	assertFloatPtrEqual(t, want.GrossProfit, got.GrossProfit, "gross_profit")
	assertFloatPtrEqual(t, want.OperatingIncome, got.OperatingIncome, "operating_income")
	assertFloatPtrEqual(t, want.OrdinaryIncome, got.OrdinaryIncome, "ordinary_income")
	assertFloatPtrEqual(t, want.NetIncome, got.NetIncome, "net_income")
	assertFloatPtrEqual(t, want.EPS, got.EPS, "eps")
	assertTimePtrEqual(t, want.FiscalEndDate, got.FiscalEndDate, "fiscal_end_date")
	assertTimePtrEqual(t, want.AnnouncementDate, got.AnnouncementDate, "announcement_date")
	assertStringPtrEqual(t, want.AnnouncementTime, got.AnnouncementTime, "announcement_time")
	assertStringPtrEqual(t, want.SourceDocumentID, got.SourceDocumentID, "source_document_id")
	assert.Equal(t, want.Source, got.Source, "source")
}

func assertStringPtrEqual(t *testing.T, want, got *string, field string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, field)
		return
	}
	require.NotNil(t, got, field)
	assert.Equal(t, *want, *got, field)
}

func assertFloatPtrEqual(t *testing.T, want, got *float64, field string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, field)
		return
	}
	require.NotNil(t, got, field)
	assert.InDelta(t, *want, *got, 0.001, field)
}

func assertTimePtrEqual(t *testing.T, want, got *time.Time, field string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, field)
		return
	}
	require.NotNil(t, got, field)
	assert.True(t, want.Equal(*got), field)
}

func TestReconcileRecords(t *testing.T) {
	stored := model.FinancialRecord{
		Ticker:     "7203",
		FiscalYear: 2024,
		Quarter:    "Q1",
		Revenue:    fptr(110),
		EPS:        fptr(50),
		Source:     string(dto.SourceEDINET),
	}

	tests := []struct {
		name        string
		stored      *model.FinancialRecord
		incoming    model.FinancialRecord
		wantApplied bool
		wantReason  dto.UpsertReason
		wantRevenue *float64
	}{
		{
			name:        "new key creates",
			stored:      nil,
			incoming:    model.FinancialRecord{Revenue: fptr(100), Source: string(dto.SourceTDnet)},
			wantApplied: true,
			wantReason:  dto.UpsertCreated,
			wantRevenue: fptr(100),
		},
		{
			name:        "lower priority is skipped and the row untouched",
			stored:      &stored,
			incoming:    model.FinancialRecord{Revenue: fptr(999), Source: string(dto.SourcePriceFeed)},
			wantApplied: false,
			wantReason:  dto.UpsertSkippedLowPriority,
			wantRevenue: fptr(110),
		},
		{
			name:        "equal priority applies",
			stored:      &stored,
			incoming:    model.FinancialRecord{Revenue: fptr(115), Source: string(dto.SourceEDINET)},
			wantApplied: true,
			wantReason:  dto.UpsertUpdated,
			wantRevenue: fptr(115),
		},
		{
			name:        "higher priority applies over tdnet",
			stored:      &model.FinancialRecord{Revenue: fptr(100), Source: string(dto.SourceTDnet)},
			incoming:    model.FinancialRecord{Revenue: fptr(110), Source: string(dto.SourceEDINET)},
			wantApplied: true,
			wantReason:  dto.UpsertUpdated,
			wantRevenue: fptr(110),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, result := ReconcileRecords(tt.stored, tt.incoming)
			assert.Equal(t, tt.wantApplied, result.Applied)
			assert.Equal(t, tt.wantReason, result.Reason)
			assertFloatPtrEqual(t, tt.wantRevenue, merged.Revenue, "revenue")
		})
	}
}

// A disclosure sequence for one period: TDnet first, then the EDINET filing
// with a missing EPS, then a price-feed write that must bounce off.
func TestReconcileRecords_DisclosureSequence(t *testing.T) {
	tdnet := model.FinancialRecord{
		Ticker:     "7203",
		FiscalYear: 2024,
		Quarter:    "Q1",
		Revenue:    fptr(100),
		EPS:        fptr(50),
		Source:     string(dto.SourceTDnet),
	}
	row, result := ReconcileRecords(nil, tdnet)
	require.True(t, result.Applied)
	assert.Equal(t, dto.UpsertCreated, result.Reason)

	edinet := model.FinancialRecord{
		Ticker:     "7203",
		FiscalYear: 2024,
		Quarter:    "Q1",
		Revenue:    fptr(110),
		Source:     string(dto.SourceEDINET),
	}
	row, result = ReconcileRecords(&row, edinet)
	require.True(t, result.Applied)
	assert.Equal(t, string(dto.SourceEDINET), row.Source)
	assertFloatPtrEqual(t, fptr(110), row.Revenue, "revenue")
	assertFloatPtrEqual(t, fptr(50), row.EPS, "eps survives the nil")

	feed := model.FinancialRecord{
		Ticker:     "7203",
		FiscalYear: 2024,
		Quarter:    "Q1",
		Revenue:    fptr(999),
		Source:     string(dto.SourcePriceFeed),
	}
	row, result = ReconcileRecords(&row, feed)
	assert.False(t, result.Applied)
	assert.Equal(t, dto.UpsertSkippedLowPriority, result.Reason)
	assert.Equal(t, string(dto.SourceEDINET), row.Source)
	assertFloatPtrEqual(t, fptr(110), row.Revenue, "revenue")

	// Replaying the applied filing changes nothing.
	again, result := ReconcileRecords(&row, edinet)
	require.True(t, result.Applied)
	assertMergedEqual(t, row, again)
}

type stubCompanyRepo struct {
	known map[string]bool
}

func (s stubCompanyRepo) Exists(ctx context.Context, ticker string) (bool, error) {
	return s.known[ticker], nil
}

func (s stubCompanyRepo) Get(ctx context.Context, ticker string) (*model.Company, error) {
	return nil, nil
}

func (s stubCompanyRepo) List(ctx context.Context) ([]model.Company, error) {
	return nil, nil
}

func (s stubCompanyRepo) Upsert(ctx context.Context, companies []model.Company) error {
	return nil
}

// Unknown tickers are refused before the merge transaction ever starts.
func TestUpsert_RefusesUnknownTicker(t *testing.T) {
	log, err := logger.New("error", "json")
	require.NoError(t, err)

	repo := &financialRepository{companyRepo: stubCompanyRepo{}, log: log}
	result, err := repo.Upsert(context.Background(), &model.FinancialRecord{
		Ticker:     "9999",
		FiscalYear: 2024,
		Quarter:    "Q1",
		Revenue:    fptr(100),
		Source:     string(dto.SourceJQuants),
	})
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, dto.UpsertRefusedUnknownTicker, result.Reason)
}
