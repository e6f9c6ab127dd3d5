package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"newsroom/internal/domain/entity"
	"newsroom/internal/handler/http/respond"
	workerPkg "newsroom/internal/infra/worker"
	"newsroom/internal/usecase/notify"
)

type newspaperGenerator interface {
	Generate(ctx context.Context) (*entity.DailyNewspaper, error)
}

// newspaperJob generates today's newspaper and announces it.
type newspaperJob struct {
	logger    *slog.Logger
	generator newspaperGenerator
	notifier  notify.Service
	metrics   *workerPkg.WorkerMetrics
	timeout   time.Duration
}

// Run is the cron entry point. It returns the recorded status.
func (j *newspaperJob) Run(ctx context.Context) string {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	j.logger.Info("newspaper generation started")
	status := j.run(ctx)
	j.metrics.RecordJobRun(status, time.Since(start).Seconds())
	return status
}

func (j *newspaperJob) run(ctx context.Context) string {
	paper, err := j.generator.Generate(ctx)

	// 既に生成済み・対象なしはスキップ扱い
	var conflict *entity.ConflictError
	var invalid *entity.ValidationError
	switch {
	case errors.As(err, &conflict):
		j.logger.Info("newspaper generation skipped", slog.String("reason", conflict.Message))
		return workerPkg.StatusSkipped
	case errors.As(err, &invalid):
		j.logger.Info("newspaper generation skipped", slog.String("reason", invalid.Message))
		return workerPkg.StatusSkipped
	case err != nil:
		j.logger.Error("newspaper generation failed", slog.String("error", respond.SanitizeError(err)))
		return workerPkg.StatusFailure
	}

	j.metrics.RecordNewslettersIncluded(len(paper.Items))
	j.logger.Info("newspaper generated",
		slog.String("newspaper_id", paper.ID),
		slog.String("title", paper.Title),
		slog.Int("items", len(paper.Items)))

	// A failed announcement does not undo a stored newspaper.
	if j.notifier != nil {
		if err := j.notifier.AnnounceNewspaper(ctx, paper); err != nil {
			j.logger.Warn("newspaper announcement incomplete", slog.String("error", respond.SanitizeError(err)))
		}
	}
	return workerPkg.StatusSuccess
}
