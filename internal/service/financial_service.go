package service

import (
	"context"
	"fmt"

	"golang-kessan/internal/model"
	"golang-kessan/internal/repository"
	"golang-kessan/pkg/logger"
)

// ErrCompanyNotFound marks lookups against unregistered tickers.
var ErrCompanyNotFound = fmt.Errorf("company not found")

// FinancialService serves the read side: canonical records, comparison
// views, forecasts, announcements, and prices for one ticker.
type FinancialService interface {
	GetFinancials(ctx context.Context, param model.GetFinancialRecordsParam) ([]model.FinancialRecord, error)
	GetYoY(ctx context.Context, ticker string) ([]model.YoYComparisonRow, error)
	GetQoQ(ctx context.Context, ticker string) ([]model.QoQComparisonRow, error)
	GetStandalone(ctx context.Context, ticker string) ([]model.StandaloneQuarterRow, error)
	GetForecasts(ctx context.Context, ticker string) ([]model.ManagementForecast, error)
	GetAnnouncements(ctx context.Context, ticker string, limit int) ([]model.Announcement, error)
	GetCompany(ctx context.Context, ticker string) (*model.Company, error)
}

type financialService struct {
	log  *logger.Logger
	repo *repository.Repository
}

func NewFinancialService(log *logger.Logger, repo *repository.Repository) FinancialService {
	return &financialService{log: log, repo: repo}
}

func (s *financialService) requireCompany(ctx context.Context, ticker string) error {
	exists, err := s.repo.CompanyRepo.Exists(ctx, ticker)
	if err != nil {
		return fmt.Errorf("failed to check company: %w", err)
	}
	if !exists {
		return ErrCompanyNotFound
	}
	return nil
}

func (s *financialService) GetFinancials(ctx context.Context, param model.GetFinancialRecordsParam) ([]model.FinancialRecord, error) {
	if err := s.requireCompany(ctx, param.Ticker); err != nil {
		return nil, err
	}
	return s.repo.FinancialRepo.Get(ctx, param)
}

func (s *financialService) GetYoY(ctx context.Context, ticker string) ([]model.YoYComparisonRow, error) {
	if err := s.requireCompany(ctx, ticker); err != nil {
		return nil, err
	}
	return s.repo.FinancialRepo.GetYoY(ctx, ticker)
}

func (s *financialService) GetQoQ(ctx context.Context, ticker string) ([]model.QoQComparisonRow, error) {
	if err := s.requireCompany(ctx, ticker); err != nil {
		return nil, err
	}
	return s.repo.FinancialRepo.GetQoQ(ctx, ticker)
}

func (s *financialService) GetStandalone(ctx context.Context, ticker string) ([]model.StandaloneQuarterRow, error) {
	if err := s.requireCompany(ctx, ticker); err != nil {
		return nil, err
	}
	return s.repo.FinancialRepo.GetStandalone(ctx, ticker)
}

func (s *financialService) GetForecasts(ctx context.Context, ticker string) ([]model.ManagementForecast, error) {
	if err := s.requireCompany(ctx, ticker); err != nil {
		return nil, err
	}
	return s.repo.ForecastRepo.Get(ctx, ticker)
}

func (s *financialService) GetAnnouncements(ctx context.Context, ticker string, limit int) ([]model.Announcement, error) {
	if err := s.requireCompany(ctx, ticker); err != nil {
		return nil, err
	}
	return s.repo.AnnouncementRepo.Get(ctx, ticker, limit)
}

func (s *financialService) GetCompany(ctx context.Context, ticker string) (*model.Company, error) {
	company, err := s.repo.CompanyRepo.Get(ctx, ticker)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}
