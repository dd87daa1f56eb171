package repository

import (
	"context"
	"errors"
	"fmt"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ForecastRepository interface {
	Upsert(ctx context.Context, forecast *model.ManagementForecast) (dto.UpsertResult, error)
	Get(ctx context.Context, ticker string) ([]model.ManagementForecast, error)
}

type forecastRepository struct {
	db *gorm.DB
}

func NewForecastRepository(db *gorm.DB) ForecastRepository {
	return &forecastRepository{db: db}
}

// Upsert reconciles guidance under the same priority rules as financial
// records, keyed by (ticker, fiscal_year, quarter, announced_date). Each
// announcement date is its own row, so a revision never overwrites the
// forecast it revises; merging only happens when two sources report the
// same announcement.
func (r *forecastRepository) Upsert(ctx context.Context, forecast *model.ManagementForecast) (dto.UpsertResult, error) {
	if forecast.AnnouncedDate.IsZero() {
		return dto.UpsertResult{}, fmt.Errorf("forecast has no announced date")
	}

	var result dto.UpsertResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored model.ManagementForecast
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ticker = ? AND fiscal_year = ? AND quarter = ? AND announced_date = ?",
				forecast.Ticker, forecast.FiscalYear, forecast.Quarter, forecast.AnnouncedDate).
			First(&stored).Error

		var storedPtr *model.ManagementForecast
		if err == nil {
			storedPtr = &stored
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load forecast: %w", err)
		}

		merged, res := ReconcileForecasts(storedPtr, *forecast)
		result = res
		if !res.Applied {
			return nil
		}
		if storedPtr == nil {
			if err := tx.Create(&merged).Error; err != nil {
				return fmt.Errorf("failed to create forecast: %w", err)
			}
			return nil
		}
		if err := tx.Save(&merged).Error; err != nil {
			return fmt.Errorf("failed to update forecast: %w", err)
		}
		return nil
	})
	if err != nil {
		return dto.UpsertResult{}, err
	}
	return result, nil
}

// ReconcileForecasts decides one guidance write against the stored row for
// its key. A nil stored row means the key is new. Pure, so the priority
// gate can be tested without a database.
func ReconcileForecasts(stored *model.ManagementForecast, incoming model.ManagementForecast) (model.ManagementForecast, dto.UpsertResult) {
	if stored == nil {
		return incoming, dto.UpsertResult{Applied: true, Reason: dto.UpsertCreated}
	}
	if dto.Source(incoming.Source).Priority() < dto.Source(stored.Source).Priority() {
		return *stored, dto.UpsertResult{Applied: false, Reason: dto.UpsertSkippedLowPriority}
	}
	return MergeForecasts(*stored, incoming), dto.UpsertResult{Applied: true, Reason: dto.UpsertUpdated}
}

// MergeForecasts folds an applied incoming forecast into the stored one,
// under the financial-record field rules: incoming non-nil wins, nil never
// erases, the source column records the incoming writer.
func MergeForecasts(stored, incoming model.ManagementForecast) model.ManagementForecast {
	merged := stored

	merged.Revenue = coalesce(incoming.Revenue, stored.Revenue)
	merged.OperatingIncome = coalesce(incoming.OperatingIncome, stored.OperatingIncome)
	merged.OrdinaryIncome = coalesce(incoming.OrdinaryIncome, stored.OrdinaryIncome)
	merged.NetIncome = coalesce(incoming.NetIncome, stored.NetIncome)
	merged.EPS = coalesce(incoming.EPS, stored.EPS)
	merged.DividendPerShare = coalesce(incoming.DividendPerShare, stored.DividendPerShare)
	merged.RevisionDirection = coalesceString(incoming.RevisionDirection, stored.RevisionDirection)
	merged.RevisionReason = coalesceString(incoming.RevisionReason, stored.RevisionReason)
	if incoming.ForecastType != "" {
		merged.ForecastType = incoming.ForecastType
	}
	merged.Source = incoming.Source

	return merged
}

// Get lists guidance chronologically; the latest row per period is the
// forecast currently in force.
func (r *forecastRepository) Get(ctx context.Context, ticker string) ([]model.ManagementForecast, error) {
	var forecasts []model.ManagementForecast
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("fiscal_year ASC, " + quarterOrder + " ASC, announced_date ASC").
		Find(&forecasts).Error
	return forecasts, err
}
