package service

import (
	"golang-kessan/config"
	"golang-kessan/internal/ingest"
	"golang-kessan/internal/repository"
	"golang-kessan/internal/strategy"
	"golang-kessan/pkg/logger"
)

type Service struct {
	SchedulerService SchedulerService
	TaskExecutor     TaskExecutor
	FinancialService FinancialService
	IngestService    ingest.Service
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
) *Service {
	ingestSvc := ingest.New(cfg, log, repo)

	executorStrategies := make(map[strategy.JobType]strategy.JobExecutionStrategy)
	executorStrategies[strategy.JobTypeEDINETFetcher] = strategy.NewEDINETFetchStrategy(cfg, log, ingestSvc, repo.SystemParamRepo)
	executorStrategies[strategy.JobTypeTDnetFetcher] = strategy.NewTDnetFetchStrategy(cfg, log, ingestSvc, repo.SystemParamRepo)
	executorStrategies[strategy.JobTypeJQuantsFetcher] = strategy.NewJQuantsFetchStrategy(cfg, log, ingestSvc, repo.SystemParamRepo)
	executorStrategies[strategy.JobTypePriceFeedFetcher] = strategy.NewPriceFeedFetchStrategy(cfg, log, ingestSvc)
	executorStrategies[strategy.JobTypeDataCleanUp] = strategy.NewDataCleanUpStrategy(cfg, log, repo.AnnouncementRepo, repo.JobRepo)

	taskExecutor := NewTaskExecutor(cfg, log, repo.JobRepo, executorStrategies)
	schedulerService := NewSchedulerService(cfg, log, repo.JobRepo, taskExecutor)

	return &Service{
		SchedulerService: schedulerService,
		TaskExecutor:     taskExecutor,
		FinancialService: NewFinancialService(log, repo),
		IngestService:    ingestSvc,
	}
}
