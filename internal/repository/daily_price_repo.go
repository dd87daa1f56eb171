package repository

import (
	"context"
	"time"

	"golang-kessan/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyPriceRepository interface {
	UpsertBulk(ctx context.Context, prices []model.DailyPrice) error
	GetRange(ctx context.Context, ticker string, from, to time.Time) ([]model.DailyPrice, error)
	GetLatest(ctx context.Context, ticker string) (*model.DailyPrice, error)
}

type dailyPriceRepository struct {
	db *gorm.DB
}

func NewDailyPriceRepository(db *gorm.DB) DailyPriceRepository {
	return &dailyPriceRepository{db: db}
}

func (r *dailyPriceRepository) UpsertBulk(ctx context.Context, prices []model.DailyPrice) error {
	if len(prices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).CreateInBatches(prices, 200).Error
}

func (r *dailyPriceRepository) GetRange(ctx context.Context, ticker string, from, to time.Time) ([]model.DailyPrice, error) {
	var prices []model.DailyPrice
	err := r.db.WithContext(ctx).
		Where("ticker = ? AND date >= ? AND date <= ?", ticker, from, to).
		Order("date ASC").
		Find(&prices).Error
	return prices, err
}

func (r *dailyPriceRepository) GetLatest(ctx context.Context, ticker string) (*model.DailyPrice, error) {
	var price model.DailyPrice
	err := r.db.WithContext(ctx).
		Where("ticker = ?", ticker).
		Order("date DESC").
		First(&price).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &price, nil
}
