package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-kessan/config"
	"golang-kessan/internal/ingest"
	"golang-kessan/internal/model"
	"golang-kessan/internal/repository"
	"golang-kessan/pkg/logger"
)

// JQuantsFetchStrategy pulls disclosed statements from the aggregator API,
// one disclosure date per call.
type JQuantsFetchStrategy struct {
	cfg          *config.Config
	log          *logger.Logger
	ingestSvc    ingest.Service
	sysParamRepo repository.SystemParamRepository
}

func NewJQuantsFetchStrategy(cfg *config.Config, log *logger.Logger, ingestSvc ingest.Service, sysParamRepo repository.SystemParamRepository) *JQuantsFetchStrategy {
	return &JQuantsFetchStrategy{
		cfg:          cfg,
		log:          log,
		ingestSvc:    ingestSvc,
		sysParamRepo: sysParamRepo,
	}
}

func (s *JQuantsFetchStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	var payload FetchPayload
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}

	dates, err := datesToFetch(ctx, s.sysParamRepo, model.SysParamJQuantsLastFetchedDate, payload)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}

	var (
		total       ingest.Stats
		results     []dateStats
		failedDates int
	)
	for _, date := range dates {
		stats, err := s.ingestSvc.IngestJQuants(ctx, date)
		accumulate(&total, stats)
		if err != nil {
			failedDates++
			results = append(results, dateStats{Date: date, Stats: stats.String(), Error: err.Error()})
			s.log.ErrorContext(ctx, "J-Quants fetch failed for date",
				logger.ErrorField(err),
				logger.StringField("date", date),
			)
			continue
		}
		results = append(results, dateStats{Date: date, Stats: stats.String()})
		if payload.Date == "" {
			if err := s.sysParamRepo.SetLastFetchedDate(ctx, model.SysParamJQuantsLastFetchedDate, date); err != nil {
				s.log.ErrorContext(ctx, "Failed to advance J-Quants watermark", logger.ErrorField(err))
			}
		}
	}

	return fetchResult(results, total, failedDates)
}

func (s *JQuantsFetchStrategy) GetType() JobType {
	return JobTypeJQuantsFetcher
}
