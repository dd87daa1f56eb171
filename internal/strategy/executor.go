package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang-kessan/internal/ingest"
	"golang-kessan/internal/model"
	"golang-kessan/internal/repository"
	"golang-kessan/pkg/utils"
)

const (
	JOB_EXIT_CODE_SUCCESS         = 200
	JOB_EXIT_CODE_FAILED          = 500
	JOB_EXIT_CODE_SKIPPED         = 204
	JOB_EXIT_CODE_PARTIAL_SUCCESS = 206
)

type JobType string

const (
	JobTypeEDINETFetcher    JobType = "edinet_fetcher"
	JobTypeTDnetFetcher     JobType = "tdnet_fetcher"
	JobTypeJQuantsFetcher   JobType = "jquants_fetcher"
	JobTypePriceFeedFetcher JobType = "price_feed_fetcher"
	JobTypeDataCleanUp      JobType = "data_clean_up"
)

type JobResult struct {
	ExitCode int32  `json:"exit_code"`
	Output   string `json:"output"`
}

// JobExecutionStrategy defines the interface for different job execution strategies.
type JobExecutionStrategy interface {
	Execute(ctx context.Context, job *model.Job) (JobResult, error)
	GetType() JobType
}

// FetchPayload is the job payload shared by the source fetchers. Date pins
// a single day and bypasses the watermark; LookbackDays bounds the first
// run when no watermark exists yet.
type FetchPayload struct {
	Date         string `json:"date,omitempty"`
	LookbackDays int    `json:"lookback_days,omitempty"`
}

const (
	defaultLookbackDays = 3
	maxCatchUpDays      = 30
)

// datesToFetch returns the YYYY-MM-DD dates a fetcher should process, from
// the day after the stored watermark up to today in JST. Catch-up is capped
// so a long-dead schedule does not replay months in one run.
func datesToFetch(ctx context.Context, sysParamRepo repository.SystemParamRepository, paramName string, payload FetchPayload) ([]string, error) {
	if payload.Date != "" {
		if _, err := time.Parse("2006-01-02", payload.Date); err != nil {
			return nil, fmt.Errorf("invalid date in payload: %w", err)
		}
		return []string{payload.Date}, nil
	}

	today := utils.DateOnly(utils.TimeNowJST())
	start := today
	lookback := payload.LookbackDays
	if lookback <= 0 {
		lookback = defaultLookbackDays
	}

	last, err := sysParamRepo.GetLastFetchedDate(ctx, paramName)
	if err != nil {
		return nil, fmt.Errorf("failed to read watermark %s: %w", paramName, err)
	}
	if last != "" {
		if t, err := time.Parse("2006-01-02", last); err == nil {
			start = utils.DateOnly(t).AddDate(0, 0, 1)
		}
	} else {
		start = today.AddDate(0, 0, -lookback+1)
	}

	if today.Sub(start) > maxCatchUpDays*24*time.Hour {
		start = today.AddDate(0, 0, -maxCatchUpDays)
	}

	var dates []string
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates, nil
}

// dateStats is one line of fetcher output.
type dateStats struct {
	Date  string `json:"date"`
	Stats string `json:"stats"`
	Error string `json:"error,omitempty"`
}

func fetchResult(results []dateStats, total ingest.Stats, failedDates int) (JobResult, error) {
	output, err := json.Marshal(results)
	if err != nil {
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: err.Error()}, err
	}

	switch {
	case failedDates > 0 && failedDates == len(results):
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: string(output)}, fmt.Errorf("all %d dates failed", failedDates)
	case failedDates > 0 || total.Failed > 0:
		return JobResult{ExitCode: JOB_EXIT_CODE_PARTIAL_SUCCESS, Output: string(output)}, nil
	case total.Processed == 0:
		return JobResult{ExitCode: JOB_EXIT_CODE_SKIPPED, Output: string(output)}, nil
	default:
		return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: string(output)}, nil
	}
}

func accumulate(total *ingest.Stats, stats ingest.Stats) {
	total.Processed += stats.Processed
	total.Applied += stats.Applied
	total.Skipped += stats.Skipped
	total.Failed += stats.Failed
}
