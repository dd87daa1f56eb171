package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"golang-kessan/config"
	"golang-kessan/internal/model"
	"golang-kessan/internal/repository"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/utils"
)

type DataCleaner interface {
	JobExecutionStrategy
}

type DataCleanUpPayload struct {
	RetentionDays int `json:"retention_days"`
}

type DataCleanUpResult struct {
	Table string `json:"table"`
	Total int64  `json:"total"`
	Error string `json:"error,omitempty"`
}

// DataCleanUpStrategy trims the high-churn tables: announcement metadata
// and task execution history. Financial records are never cleaned up.
type DataCleanUpStrategy struct {
	cfg              *config.Config
	log              *logger.Logger
	AnnouncementRepo repository.AnnouncementRepository
	JobRepo          repository.JobRepository
}

func NewDataCleanUpStrategy(cfg *config.Config, log *logger.Logger, announcementRepo repository.AnnouncementRepository, jobRepo repository.JobRepository) DataCleaner {
	return &DataCleanUpStrategy{
		cfg:              cfg,
		log:              log,
		AnnouncementRepo: announcementRepo,
		JobRepo:          jobRepo,
	}
}

func (s *DataCleanUpStrategy) Execute(ctx context.Context, job *model.Job) (JobResult, error) {
	s.log.InfoContext(ctx, "Starting data clean up")

	var payload DataCleanUpPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		s.log.ErrorContext(ctx, "Failed to unmarshal job payload", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to unmarshal job payload: %v", err)}, fmt.Errorf("failed to unmarshal job payload: %w", err)
	}

	date := utils.TimeNowJST().AddDate(0, 0, -payload.RetentionDays)
	outputMsg := []DataCleanUpResult{}

	totalAnnouncements, err := s.AnnouncementRepo.DeleteOlderThan(ctx, date)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to delete old announcements", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		outputMsg = append(outputMsg, DataCleanUpResult{
			Table: "announcements",
			Total: totalAnnouncements,
			Error: fmt.Sprintf("failed to delete announcements older than %v: %v", date, err),
		})
	} else {
		outputMsg = append(outputMsg, DataCleanUpResult{
			Table: "announcements",
			Total: totalAnnouncements,
		})
	}

	totalHistory, err := s.JobRepo.DeleteTaskHistoryOlderThan(ctx, date)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to delete old task history", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		outputMsg = append(outputMsg, DataCleanUpResult{
			Table: "job_history",
			Total: totalHistory,
			Error: fmt.Sprintf("failed to delete task history older than %v: %v", date, err),
		})
	} else {
		outputMsg = append(outputMsg, DataCleanUpResult{
			Table: "job_history",
			Total: totalHistory,
		})
	}

	res, err := json.Marshal(outputMsg)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to marshal output message", logger.ErrorField(err), logger.IntField("job_id", int(job.ID)))
		return JobResult{ExitCode: JOB_EXIT_CODE_FAILED, Output: fmt.Sprintf("failed to marshal output message: %v", err)}, fmt.Errorf("failed to marshal output message: %w", err)
	}
	return JobResult{ExitCode: JOB_EXIT_CODE_SUCCESS, Output: string(res)}, nil
}

func (s *DataCleanUpStrategy) GetType() JobType {
	return JobTypeDataCleanUp
}
