package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"newsroom/internal/config"
	pgRepo "newsroom/internal/infra/adapter/persistence/postgres"
	"newsroom/internal/infra/assistant"
	"newsroom/internal/infra/db"
	"newsroom/internal/infra/notifier"
	workerPkg "newsroom/internal/infra/worker"
	"newsroom/internal/observability/logging"
	"newsroom/internal/observability/tracing"
	aiUC "newsroom/internal/usecase/ai"
	paperUC "newsroom/internal/usecase/newspaper"
	"newsroom/internal/usecase/notify"
	envconfig "newsroom/pkg/config"
)

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	version := envconfig.GetEnvString("VERSION", "dev")

	shutdownTracing := tracing.Init("newsroom-worker", version)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("worker failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func run(ctx context.Context, logger *slog.Logger) error {
	metrics := workerPkg.NewWorkerMetrics(prometheus.DefaultRegisterer)
	cfg := workerPkg.LoadConfigFromEnv(logger, metrics)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("worker configuration: %w", err)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Int("notify_max_concurrent", cfg.NotifyMaxConcurrent),
		slog.Duration("generate_timeout", cfg.GenerateTimeout),
		slog.Int("health_port", cfg.HealthPort))
	if !cfg.ScheduleMatchesDay() {
		logger.Warn("schedule time zone differs from the newspaper day zone; runs near midnight may find no newsletters",
			slog.String("worker_timezone", cfg.Timezone),
			slog.String("newspaper_timezone", workerPkg.NewspaperTimezone()))
	}

	database, err := initDatabase(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	paperSvc, err := setupNewspaperService(logger, database)
	if err != nil {
		return err
	}
	notifyService := setupNotifyService(logger, cfg)

	healthServer := workerPkg.NewHealthServer(
		fmt.Sprintf(":%d", cfg.HealthPort), logger, notifyService.GetChannelHealth, prometheus.DefaultGatherer)

	job := &newspaperJob{
		logger:    logger,
		generator: paperSvc,
		notifier:  notifyService,
		metrics:   metrics,
		timeout:   cfg.GenerateTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return healthServer.Start(gctx) })
	g.Go(func() error { return runScheduler(gctx, logger, cfg, job, healthServer) })
	return g.Wait()
}

// initDatabase opens the database and applies the idempotent schema so the
// worker can start before or after the API.
func initDatabase(ctx context.Context) (*sql.DB, error) {
	database, err := db.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.MigrateUp(ctx, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return database, nil
}

func setupNewspaperService(logger *slog.Logger, database *sql.DB) (*paperUC.Service, error) {
	aiCfg, err := config.LoadAIConfig()
	if err != nil {
		return nil, fmt.Errorf("load AI configuration: %w", err)
	}
	completer, err := assistant.New(aiCfg)
	if err != nil {
		return nil, fmt.Errorf("create AI provider: %w", err)
	}
	logger.Info("AI provider configured", slog.String("provider", aiCfg.Provider))

	return &paperUC.Service{
		Newsletters: pgRepo.NewNewsletterRepo(database),
		Papers:      pgRepo.NewNewspaperRepo(database),
		Summarizer:  aiUC.NewService(completer, assistant.PrometheusMetrics{}),
		Location:    envconfig.GetEnvLocation("NEWSPAPER_TIMEZONE"),
	}, nil
}

func setupNotifyService(logger *slog.Logger, cfg *workerPkg.WorkerConfig) notify.Service {
	var channels []notify.Channel
	if discordCfg := notifier.LoadDiscordConfig(logger); discordCfg.Enabled {
		channels = append(channels, notifier.NewDiscordNotifier(discordCfg))
		logger.Info("Discord channel enabled")
	}
	if slackCfg := notifier.LoadSlackConfig(logger); slackCfg.Enabled {
		channels = append(channels, notifier.NewSlackNotifier(slackCfg))
		logger.Info("Slack channel enabled")
	}
	logger.Info("notification service initialized",
		slog.Int("channels", len(channels)),
		slog.Int("max_concurrent", cfg.NotifyMaxConcurrent))

	return notify.NewService(channels, notify.Options{MaxConcurrent: cfg.NotifyMaxConcurrent})
}

// runScheduler runs job on cfg's schedule until ctx is canceled, then waits
// for a running job to finish.
func runScheduler(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, job *newspaperJob, healthServer *workerPkg.HealthServer) error {
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { job.Run(ctx) }); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}
	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	healthServer.SetReady(false)

	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(30 * time.Second):
		logger.Warn("running newspaper job did not finish before shutdown")
	}
	if errors.Is(context.Cause(ctx), context.Canceled) {
		return nil
	}
	return context.Cause(ctx)
}
