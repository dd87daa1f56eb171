package strategy

import (
	"context"
	"encoding/json"

	"golang-kessan/config"
	"golang-kessan/internal/ingest"
	"golang-kessan/internal/model"
	"golang-kessan/pkg/logger"
)

// PriceFeedFetchStrategy refreshes daily bars for the whole company master.
// No watermark; the feed is queried by range, not by date.
type PriceFeedFetchStrategy struct {
	cfg       *config.Config
	log       *logger.Logger
	ingestSvc ingest.Service
}

func NewPriceFeedFetchStrategy(cfg *config.Config, log *logger.Logger, ingestSvc ingest.Service) *PriceFeedFetchStrategy {
	return &PriceFeedFetchStrategy{
		cfg:       cfg,
		log:       log,
		ingestSvc: ingestSvc,
	}
}

func (s *PriceFeedFetchStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	stats, err := s.ingestSvc.IngestPrices(ctx)
	output, _ := json.Marshal(map[string]string{"stats": stats.String()})

	switch {
	case err != nil:
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	case stats.Processed == 0:
		return JobResult{ExitCode: JOB_EXIT_CODE_SKIPPED, Output: string(output)}, nil
	case stats.Failed > 0 && stats.Applied == 0:
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: string(output)}, nil
	case stats.Failed > 0:
		return JobResult{ExitCode: JOB_EXIT_CODE_PARTIAL_SUCCESS, Output: string(output)}, nil
	default:
		return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: string(output)}, nil
	}
}

func (s *PriceFeedFetchStrategy) GetType() JobType {
	return JobTypePriceFeedFetcher
}
