package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-kessan/internal/delivery/http"
	"golang-kessan/internal/repository"
	"golang-kessan/internal/service"
	"golang-kessan/pkg/logger"
	"golang-kessan/pkg/middleware"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the reconciliation engine: scheduler plus HTTP API",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log, appDep.cache)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo)

	appDep.echo.Use(middleware.NewRateLimiterMiddleware())
	httpHandler := http.NewHttpAPIHandler(ctx, appDep.echo, appDep.validator, services)

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	go runScheduler(ctx, appDep, services)

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}

// runScheduler polls for due task schedules until the context ends.
func runScheduler(ctx context.Context, appDep *AppDependency, services *service.Service) {
	interval := appDep.cfg.Scheduler.PollInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	appDep.log.Info("Scheduler started", logger.StringField("poll_interval", interval.String()))

	for {
		select {
		case <-ctx.Done():
			appDep.log.Info("Scheduler stopped")
			return
		case <-ticker.C:
			if err := services.SchedulerService.Execute(ctx); err != nil {
				appDep.log.ErrorContext(ctx, "Scheduler run failed", logger.ErrorField(err))
			}
		}
	}
}
