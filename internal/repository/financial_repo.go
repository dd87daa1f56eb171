package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinancialRepository interface {
	Upsert(ctx context.Context, record *model.FinancialRecord) (dto.UpsertResult, error)
	Get(ctx context.Context, param model.GetFinancialRecordsParam) ([]model.FinancialRecord, error)
	GetYoY(ctx context.Context, ticker string) ([]model.YoYComparisonRow, error)
	GetQoQ(ctx context.Context, ticker string) ([]model.QoQComparisonRow, error)
	GetStandalone(ctx context.Context, ticker string) ([]model.StandaloneQuarterRow, error)
}

type financialRepository struct {
	db          *gorm.DB
	companyRepo CompanyRepository
	log         *logger.Logger
}

func NewFinancialRepository(db *gorm.DB, companyRepo CompanyRepository, log *logger.Logger) FinancialRepository {
	return &financialRepository{db: db, companyRepo: companyRepo, log: log}
}

// Upsert reconciles an incoming record into the canonical row for its
// (ticker, fiscal_year, quarter) key. The read-modify-write runs inside a
// transaction with the stored row locked, so concurrent writers for the
// same key serialize.
//
// A write from a source with lower priority than the stored row is skipped.
// An applied write overwrites field by field: incoming non-nil values win,
// stored values survive incoming nils, the announcement date keeps the
// earliest of the two, and the source column always records the applied
// writer. Applying the same record twice changes nothing.
func (r *financialRepository) Upsert(ctx context.Context, record *model.FinancialRecord) (dto.UpsertResult, error) {
	if !dto.Quarter(record.Quarter).IsValid() {
		return dto.UpsertResult{}, fmt.Errorf("invalid quarter %q", record.Quarter)
	}

	known, err := r.companyRepo.Exists(ctx, record.Ticker)
	if err != nil {
		return dto.UpsertResult{}, fmt.Errorf("failed to check company: %w", err)
	}
	if !known {
		r.log.WarnContext(ctx, "Refusing record for unknown ticker",
			logger.StringField("ticker", record.Ticker),
			logger.StringField("source", record.Source),
		)
		return dto.UpsertResult{Applied: false, Reason: dto.UpsertRefusedUnknownTicker}, nil
	}

	var result dto.UpsertResult
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.FinancialRecord
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ticker = ? AND fiscal_year = ? AND quarter = ?",
				record.Ticker, record.FiscalYear, record.Quarter).
			First(&stored).Error

		var storedPtr *model.FinancialRecord
		if err == nil {
			storedPtr = &stored
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load financial record: %w", err)
		}

		merged, res := ReconcileRecords(storedPtr, *record)
		result = res
		if !res.Applied {
			return nil
		}
		if storedPtr == nil {
			if err := tx.Create(&merged).Error; err != nil {
				return fmt.Errorf("failed to create financial record: %w", err)
			}
			return nil
		}
		if err := tx.Save(&merged).Error; err != nil {
			return fmt.Errorf("failed to update financial record: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.UpsertResult{}, err
	}
	return result, nil
}

// ReconcileRecords decides one write against the stored row for its key
// and returns the row that should be stored afterwards. A nil stored row
// means the key is new. Pure, so the priority and merge rules can be
// tested without a database; Upsert runs it inside the row-locked
// transaction.
func ReconcileRecords(stored *model.FinancialRecord, incoming model.FinancialRecord) (model.FinancialRecord, dto.UpsertResult) {
	if stored == nil {
		return incoming, dto.UpsertResult{Applied: true, Reason: dto.UpsertCreated}
	}
	if dto.Source(incoming.Source).Priority() < dto.Source(stored.Source).Priority() {
		return *stored, dto.UpsertResult{Applied: false, Reason: dto.UpsertSkippedLowPriority}
	}
	return MergeRecords(*stored, incoming), dto.UpsertResult{Applied: true, Reason: dto.UpsertUpdated}
}

// MergeRecords folds an applied incoming record into the stored one. Field
// rules: incoming non-nil wins, incoming nil never erases, announcement
// date takes the earliest, the source column records the incoming writer.
func MergeRecords(stored, incoming model.FinancialRecord) model.FinancialRecord {
	merged := stored

	merged.Revenue = coalesce(incoming.Revenue, stored.Revenue)
	merged.GrossProfit = coalesce(incoming.GrossProfit, stored.GrossProfit)
	merged.OperatingIncome = coalesce(incoming.OperatingIncome, stored.OperatingIncome)
	merged.OrdinaryIncome = coalesce(incoming.OrdinaryIncome, stored.OrdinaryIncome)
	merged.NetIncome = coalesce(incoming.NetIncome, stored.NetIncome)
	merged.EPS = coalesce(incoming.EPS, stored.EPS)
	merged.FiscalEndDate = coalesceTime(incoming.FiscalEndDate, stored.FiscalEndDate)
	merged.AnnouncementDate = earliestDate(incoming.AnnouncementDate, stored.AnnouncementDate)
	// The time column follows whichever announcement date was kept.
	if merged.AnnouncementDate == incoming.AnnouncementDate {
		merged.AnnouncementTime = coalesceString(incoming.AnnouncementTime, stored.AnnouncementTime)
	} else {
		merged.AnnouncementTime = coalesceString(stored.AnnouncementTime, incoming.AnnouncementTime)
	}
	merged.SourceDocumentID = coalesceString(incoming.SourceDocumentID, stored.SourceDocumentID)
	merged.Source = incoming.Source

	return merged
}

func coalesce(incoming, stored *float64) *float64 {
	if incoming != nil {
		return incoming
	}
	return stored
}

func coalesceString(incoming, stored *string) *string {
	if incoming != nil {
		return incoming
	}
	return stored
}

func coalesceTime(incoming, stored *time.Time) *time.Time {
	if incoming != nil {
		return incoming
	}
	return stored
}

func earliestDate(a, b *time.Time) *time.Time {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Before(*b) {
		return a
	}
	return b
}

// quarterOrder sorts period labels chronologically. A plain string sort
// puts 'FY' before 'Q1'; FY closes the year, so it sorts last.
const quarterOrder = "CASE quarter WHEN 'Q1' THEN 1 WHEN 'Q2' THEN 2 WHEN 'Q3' THEN 3 WHEN 'Q4' THEN 4 ELSE 5 END"

func (r *financialRepository) Get(ctx context.Context, param model.GetFinancialRecordsParam) ([]model.FinancialRecord, error) {
	db := r.db.WithContext(ctx).Where("ticker = ?", param.Ticker)
	if param.FiscalYear != nil {
		db = db.Where("fiscal_year = ?", *param.FiscalYear)
	}
	if param.Quarter != nil {
		db = db.Where("quarter = ?", *param.Quarter)
	}

	var records []model.FinancialRecord
	err := db.Order("fiscal_year ASC, " + quarterOrder + " ASC").Find(&records).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return records, nil
}

func (r *financialRepository) GetYoY(ctx context.Context, ticker string) ([]model.YoYComparisonRow, error) {
	var rows []model.YoYComparisonRow
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("fiscal_year ASC, " + quarterOrder + " ASC").
		Find(&rows).Error
	return rows, err
}

func (r *financialRepository) GetQoQ(ctx context.Context, ticker string) ([]model.QoQComparisonRow, error) {
	var rows []model.QoQComparisonRow
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("fiscal_year ASC, " + quarterOrder + " ASC").
		Find(&rows).Error
	return rows, err
}

func (r *financialRepository) GetStandalone(ctx context.Context, ticker string) ([]model.StandaloneQuarterRow, error) {
	var rows []model.StandaloneQuarterRow
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("fiscal_year ASC, " + quarterOrder + " ASC").
		Find(&rows).Error
	return rows, err
}
