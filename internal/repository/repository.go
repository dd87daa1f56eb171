package repository

import (
	"golang-kessan/config"
	"golang-kessan/pkg/cache"
	"golang-kessan/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	FinancialRepo    FinancialRepository
	ForecastRepo     ForecastRepository
	CompanyRepo      CompanyRepository
	AnnouncementRepo AnnouncementRepository
	DailyPriceRepo   DailyPriceRepository
	SystemParamRepo  SystemParamRepository
	JobRepo          JobRepository
	EDINETRepo       EDINETRepository
	TDnetRepo        TDnetRepository
	JQuantsRepo      JQuantsRepository
	PriceFeedRepo    PriceFeedRepository
	UnitOfWork       UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger, memCache cache.Cache) (*Repository, error) {
	companyRepo := NewCompanyRepository(db, memCache)

	return &Repository{
		FinancialRepo:    NewFinancialRepository(db, companyRepo, log),
		ForecastRepo:     NewForecastRepository(db),
		CompanyRepo:      companyRepo,
		AnnouncementRepo: NewAnnouncementRepository(db),
		DailyPriceRepo:   NewDailyPriceRepository(db),
		SystemParamRepo:  NewSystemParamRepository(db),
		JobRepo:          NewJobRepository(db),
		EDINETRepo:       NewEDINETRepository(cfg, log),
		TDnetRepo:        NewTDnetRepository(cfg, log),
		JQuantsRepo:      NewJQuantsRepository(cfg, log),
		PriceFeedRepo:    NewPriceFeedRepository(cfg, log),
		UnitOfWork:       NewUnitOfWork(db),
	}, nil
}
