package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang-kessan/internal/dto"
	"golang-kessan/internal/model"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// IngestPrices refreshes daily OHLCV bars for every registered company.
// Companies are fetched concurrently; the feed repository's own rate
// limiter keeps the request rate in bounds.
func (s *service) IngestPrices(ctx context.Context) (Stats, error) {
	var stats Stats

	companies, err := s.repo.CompanyRepo.List(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list companies: %w", err)
	}

	var mu sync.Mutex
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.PriceFeed.MaxConcurrency)

	for _, company := range companies {
		if !utils.ShouldContinue(ctx, s.log) {
			break
		}

		company := company
		g.Go(func() error {
			applied, err := s.fetchCompanyPrices(gCtx, company.Ticker)

			mu.Lock()
			defer mu.Unlock()
			stats.Processed++
			if err != nil {
				stats.Failed++
				return nil
			}
			if applied {
				stats.Applied++
			} else {
				stats.Skipped++
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	s.log.InfoContext(ctx, "Price ingestion completed", logger.StringField("stats", stats.String()))
	return stats, nil
}

func (s *service) fetchCompanyPrices(ctx context.Context, ticker string) (bool, error) {
	bars, err := s.repo.PriceFeedRepo.GetDailyPrices(ctx, dto.GetDailyPricesParam{Ticker: ticker, Range: "5d"})
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch prices",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
		return false, err
	}
	if len(bars) == 0 {
		return false, nil
	}

	prices := make([]model.DailyPrice, 0, len(bars))
	for _, bar := range bars {
		prices = append(prices, model.DailyPrice{
			Ticker: ticker,
			Date:   utils.DateOnly(time.Unix(bar.Timestamp, 0).In(utils.GetJSTLocation())),
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		})
	}
	if err := s.repo.DailyPriceRepo.UpsertBulk(ctx, prices); err != nil {
		s.log.ErrorContext(ctx, "Failed to store prices",
			logger.ErrorField(err),
			logger.StringField("ticker", ticker),
		)
		return false, err
	}
	return true, nil
}
