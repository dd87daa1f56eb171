package repository

import (
	"context"
	"errors"
	"fmt"

	"golang-kessan/internal/model"
	"golang-kessan/pkg/cache"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompanyRepository interface {
	Exists(ctx context.Context, ticker string) (bool, error)
	Get(ctx context.Context, ticker string) (*model.Company, error)
	List(ctx context.Context) ([]model.Company, error)
	Upsert(ctx context.Context, companies []model.Company) error
}

type companyRepository struct {
	db            *gorm.DB
	inmemoryCache cache.Cache
}

func NewCompanyRepository(db *gorm.DB, inmemoryCache cache.Cache) CompanyRepository {
	return &companyRepository{db: db, inmemoryCache: inmemoryCache}
}

// Exists is the ingestion gate, called once per parsed disclosure. Hits are
// cached; misses are not, so registering a company takes effect immediately.
func (r *companyRepository) Exists(ctx context.Context, ticker string) (bool, error) {
	key := companyCacheKey(ticker)
	if _, found := r.inmemoryCache.Get(key); found {
		return true, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.Company{}).
		Where("ticker = ?", ticker).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	if count > 0 {
		r.inmemoryCache.Set(key, struct{}{}, 0)
		return true, nil
	}
	return false, nil
}

func (r *companyRepository) Get(ctx context.Context, ticker string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).Where("ticker = ?", ticker).First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	err := r.db.WithContext(ctx).Order("ticker ASC").Find(&companies).Error
	return companies, err
}

func (r *companyRepository) Upsert(ctx context.Context, companies []model.Company) error {
	if len(companies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sector", "updated_at"}),
	}).CreateInBatches(companies, 100).Error
}

func companyCacheKey(ticker string) string {
	return fmt.Sprintf("company:exists:%s", ticker)
}
