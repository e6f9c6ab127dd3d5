package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"newsroom/pkg/config"
)

// WorkerConfig controls when the daily newspaper job runs and how the worker
// serves health checks.
//
// Environment variables:
//   - NEWSPAPER_CRON: five-field cron expression (default "5 23 * * *")
//   - WORKER_TIMEZONE: IANA zone the schedule is evaluated in (default: the
//     newspaper day zone, NEWSPAPER_TIMEZONE or the process local zone)
//   - NOTIFY_MAX_CONCURRENT: parallel announcement sends, 1-50 (default 10)
//   - GENERATE_TIMEOUT: upper bound for one job run, 1m-1h (default 5m)
//   - HEALTH_PORT: health and metrics port, 1024-65535 (default 9091)
type WorkerConfig struct {
	CronSchedule        string
	Timezone            string
	NotifyMaxConcurrent int
	GenerateTimeout     time.Duration
	HealthPort          int
}

// DefaultConfig returns the built-in configuration: 23:05 daily, shortly
// before the day the newspaper covers ends. LoadConfigFromEnv replaces the
// UTC zone with NewspaperTimezone unless WORKER_TIMEZONE is set.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:        "5 23 * * *",
		Timezone:            "UTC",
		NotifyMaxConcurrent: 10,
		GenerateTimeout:     5 * time.Minute,
		HealthPort:          9091,
	}
}

// Validate checks every field and joins all failures.
func (c *WorkerConfig) Validate() error {
	return errors.Join(
		wrapField("cron schedule", config.ValidateCronSchedule(c.CronSchedule)),
		wrapField("timezone", config.ValidateTimezone(c.Timezone)),
		wrapField("notify max concurrent", config.ValidateIntRange(c.NotifyMaxConcurrent, 1, 50)),
		wrapField("generate timeout", validateTimeout(c.GenerateTimeout)),
		wrapField("health port", config.ValidateIntRange(c.HealthPort, 1024, 65535)),
	)
}

// Location returns the schedule's time zone. Validate guarantees it loads.
func (c *WorkerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv reads WorkerConfig from the environment. It never fails:
// an invalid value is replaced by its default, logged and counted in
// metrics (fail-open).
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	l := &fallbackLoader{logger: logger, metrics: metrics}

	cfg.CronSchedule = loadField(l, "cron_schedule", "NEWSPAPER_CRON", cfg.CronSchedule, parseString, config.ValidateCronSchedule)
	cfg.Timezone = loadField(l, "timezone", "WORKER_TIMEZONE", NewspaperTimezone(), parseString, config.ValidateTimezone)
	cfg.NotifyMaxConcurrent = loadField(l, "notify_max_concurrent", "NOTIFY_MAX_CONCURRENT", cfg.NotifyMaxConcurrent, strconv.Atoi,
		func(v int) error { return config.ValidateIntRange(v, 1, 50) })
	cfg.GenerateTimeout = loadField(l, "generate_timeout", "GENERATE_TIMEOUT", cfg.GenerateTimeout, time.ParseDuration, validateTimeout)
	cfg.HealthPort = loadField(l, "health_port", "HEALTH_PORT", cfg.HealthPort, strconv.Atoi,
		func(v int) error { return config.ValidateIntRange(v, 1024, 65535) })

	metrics.SetFallbackActive(l.applied)
	return &cfg
}

// NewspaperTimezone names the zone whose midnight starts a newspaper day:
// NEWSPAPER_TIMEZONE when it is valid, otherwise the process local zone.
func NewspaperTimezone() string {
	if tz := os.Getenv("NEWSPAPER_TIMEZONE"); tz != "" && config.ValidateTimezone(tz) == nil {
		return tz
	}
	return time.Local.String()
}

// ScheduleMatchesDay reports whether the schedule runs in the same zone as
// the newspaper day. When it does not, a run near midnight may generate the
// wrong day's newspaper.
func (c *WorkerConfig) ScheduleMatchesDay() bool {
	return c.Timezone == NewspaperTimezone()
}

type fallbackLoader struct {
	logger  *slog.Logger
	metrics *WorkerMetrics
	applied bool
}

// loadField returns the parsed env value, or def when the variable is unset,
// unparsable or fails validate.
func loadField[T any](l *fallbackLoader, field, key string, def T, parse func(string) (T, error), validate func(T) error) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}
	v, err := parse(raw)
	if err == nil {
		err = validate(v)
	}
	if err == nil {
		return v
	}

	l.applied = true
	l.metrics.RecordFallback(field)
	l.logger.Warn("configuration fallback applied",
		slog.String("field", field),
		slog.String("env_key", key),
		slog.String("invalid_value", raw),
		slog.Any("default_value", def),
		slog.Any("error", err))
	return def
}

func parseString(s string) (string, error) { return s, nil }

func validateTimeout(d time.Duration) error {
	if err := config.ValidatePositiveDuration(d); err != nil {
		return err
	}
	if d < time.Minute || d > time.Hour {
		return fmt.Errorf("duration %v out of range [1m, 1h]", d)
	}
	return nil
}

func wrapField(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
