package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang-kessan/config"
	"golang-kessan/internal/dto"
	"golang-kessan/pkg/httpclient"
	"golang-kessan/pkg/logger"

	"golang.org/x/time/rate"
)

type PriceFeedRepository interface {
	GetDailyPrices(ctx context.Context, param dto.GetDailyPricesParam) ([]dto.DailyPriceBar, error)
}

type priceFeedRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

func NewPriceFeedRepository(cfg *config.Config, log *logger.Logger) PriceFeedRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.PriceFeed.MaxRequestPerMinute)
	return &priceFeedRepository{
		httpClient:     httpclient.New(log, cfg.PriceFeed.BaseURL, cfg.PriceFeed.Timeout, ""),
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// GetDailyPrices fetches daily OHLCV bars for a Tokyo-listed ticker. The
// feed keys on the ".T" suffixed symbol.
func (r *priceFeedRepository) GetDailyPrices(ctx context.Context, param dto.GetDailyPricesParam) ([]dto.DailyPriceBar, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	symbol := param.Ticker + ".T"
	priceRange := param.Range
	if priceRange == "" {
		priceRange = "5d"
	}

	queryParams := map[string]string{
		"range":    priceRange,
		"interval": "1d",
	}
	headers := map[string]string{
		"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":     "application/json, text/plain, */*",
	}

	var chartResp dto.PriceChartResponse
	resp, err := r.httpClient.Get(ctx, "/"+symbol, queryParams, headers, &chartResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price data: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Price feed returned non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("symbol", symbol),
		)
		return nil, fmt.Errorf("price feed returned status: %d", resp.StatusCode)
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("price feed error: %v", chartResp.Chart.Error)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no price data returned for symbol: %s", symbol)
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data available for symbol: %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	var bars []dto.DailyPriceBar
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}
		// Zero values mark holes in the feed.
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 || quote.Close[i] == 0 {
			continue
		}
		bars = append(bars, dto.DailyPriceBar{
			Timestamp: ts,
			Open:      quote.Open[i],
			High:      quote.High[i],
			Low:       quote.Low[i],
			Close:     quote.Close[i],
			Volume:    quote.Volume[i],
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no valid bars found for symbol: %s", symbol)
	}
	return bars, nil
}
