package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-kessan/config"
	"golang-kessan/internal/ingest"
	"golang-kessan/internal/model"
	"golang-kessan/internal/repository"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"
)

// TDnetFetchStrategy scrapes the daily disclosure lists and parses the
// earnings summaries it finds.
type TDnetFetchStrategy struct {
	cfg          *config.Config
	log          *logger.Logger
	ingestSvc    ingest.Service
	sysParamRepo repository.SystemParamRepository
}

func NewTDnetFetchStrategy(cfg *config.Config, log *logger.Logger, ingestSvc ingest.Service, sysParamRepo repository.SystemParamRepository) *TDnetFetchStrategy {
	return &TDnetFetchStrategy{
		cfg:          cfg,
		log:          log,
		ingestSvc:    ingestSvc,
		sysParamRepo: sysParamRepo,
	}
}

func (s *TDnetFetchStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	var payload FetchPayload
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}

	dates, err := datesToFetch(ctx, s.sysParamRepo, model.SysParamTDnetLastFetchedDate, payload)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}

	var (
		total       ingest.Stats
		results     []dateStats
		failedDates int
	)
	for _, date := range dates {
		// TDnet only keeps about a month of lists, older dates just 404.
		day, err := time.ParseInLocation("2006-01-02", date, utils.GetJSTLocation())
		if err != nil {
			continue
		}

		stats, err := s.ingestSvc.IngestTDnet(ctx, day)
		accumulate(&total, stats)
		if err != nil {
			failedDates++
			results = append(results, dateStats{Date: date, Stats: stats.String(), Error: err.Error()})
			s.log.ErrorContext(ctx, "TDnet fetch failed for date",
				logger.ErrorField(err),
				logger.StringField("date", date),
			)
			continue
		}
		results = append(results, dateStats{Date: date, Stats: stats.String()})
		if payload.Date == "" {
			if err := s.sysParamRepo.SetLastFetchedDate(ctx, model.SysParamTDnetLastFetchedDate, date); err != nil {
				s.log.ErrorContext(ctx, "Failed to advance TDnet watermark", logger.ErrorField(err))
			}
		}
	}

	return fetchResult(results, total, failedDates)
}

func (s *TDnetFetchStrategy) GetType() JobType {
	return JobTypeTDnetFetcher
}
