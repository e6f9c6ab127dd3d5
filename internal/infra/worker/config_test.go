package worker

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func clearWorkerEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"NEWSPAPER_CRON", "WORKER_TIMEZONE", "NOTIFY_MAX_CONCURRENT", "GENERATE_TIMEOUT", "HEALTH_PORT"} {
		t.Setenv(key, "")
	}
	t.Setenv("NEWSPAPER_TIMEZONE", "UTC")
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CronSchedule != "5 23 * * *" {
		t.Errorf("CronSchedule = %q", cfg.CronSchedule)
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.NotifyMaxConcurrent != 10 {
		t.Errorf("NotifyMaxConcurrent = %d", cfg.NotifyMaxConcurrent)
	}
	if cfg.GenerateTimeout != 5*time.Minute {
		t.Errorf("GenerateTimeout = %v", cfg.GenerateTimeout)
	}
	if cfg.HealthPort != 9091 {
		t.Errorf("HealthPort = %d", cfg.HealthPort)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestWorkerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*WorkerConfig)
		wantErr string
	}{
		{"bad cron", func(c *WorkerConfig) { c.CronSchedule = "every day" }, "cron schedule"},
		{"six field cron", func(c *WorkerConfig) { c.CronSchedule = "0 5 23 * * *" }, "cron schedule"},
		{"bad timezone", func(c *WorkerConfig) { c.Timezone = "Mars/Olympus" }, "timezone"},
		{"concurrency zero", func(c *WorkerConfig) { c.NotifyMaxConcurrent = 0 }, "notify max concurrent"},
		{"concurrency too high", func(c *WorkerConfig) { c.NotifyMaxConcurrent = 51 }, "notify max concurrent"},
		{"timeout too short", func(c *WorkerConfig) { c.GenerateTimeout = time.Second }, "generate timeout"},
		{"privileged port", func(c *WorkerConfig) { c.HealthPort = 80 }, "health port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	t.Run("joins multiple errors", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Timezone = ""
		cfg.HealthPort = 0

		err := cfg.Validate()

		if err == nil || !strings.Contains(err.Error(), "timezone") || !strings.Contains(err.Error(), "health port") {
			t.Errorf("expected both fields in error, got %v", err)
		}
	})
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("valid values are used", func(t *testing.T) {
		clearWorkerEnv(t)
		t.Setenv("NEWSPAPER_CRON", "0 7 * * *")
		t.Setenv("WORKER_TIMEZONE", "Asia/Tokyo")
		t.Setenv("NOTIFY_MAX_CONCURRENT", "4")
		t.Setenv("GENERATE_TIMEOUT", "10m")
		t.Setenv("HEALTH_PORT", "9191")
		metrics := NewWorkerMetrics(prometheus.NewRegistry())

		cfg := LoadConfigFromEnv(slog.New(slog.DiscardHandler), metrics)

		want := WorkerConfig{
			CronSchedule:        "0 7 * * *",
			Timezone:            "Asia/Tokyo",
			NotifyMaxConcurrent: 4,
			GenerateTimeout:     10 * time.Minute,
			HealthPort:          9191,
		}
		if *cfg != want {
			t.Errorf("config = %+v, want %+v", *cfg, want)
		}
		if got := testutil.ToFloat64(metrics.ConfigFallbackActive); got != 0 {
			t.Errorf("fallback active = %v, want 0", got)
		}
		if cfg.Location().String() != "Asia/Tokyo" {
			t.Errorf("Location() = %v", cfg.Location())
		}
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		clearWorkerEnv(t)
		t.Setenv("NEWSPAPER_CRON", "not a cron")
		t.Setenv("NOTIFY_MAX_CONCURRENT", "many")
		t.Setenv("HEALTH_PORT", "22")
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))
		metrics := NewWorkerMetrics(prometheus.NewRegistry())

		cfg := LoadConfigFromEnv(logger, metrics)

		def := DefaultConfig()
		if *cfg != def {
			t.Errorf("config = %+v, want defaults %+v", *cfg, def)
		}
		if got := testutil.ToFloat64(metrics.ConfigFallbackActive); got != 1 {
			t.Errorf("fallback active = %v, want 1", got)
		}
		for _, field := range []string{"cron_schedule", "notify_max_concurrent", "health_port"} {
			if got := testutil.ToFloat64(metrics.ConfigFallbacksTotal.WithLabelValues(field)); got != 1 {
				t.Errorf("fallbacks[%s] = %v, want 1", field, got)
			}
		}
		if !strings.Contains(logs.String(), "NEWSPAPER_CRON") {
			t.Errorf("expected warning for NEWSPAPER_CRON, logs: %s", logs.String())
		}
	})
}

func TestLoadConfigFromEnv_TimezoneFollowsNewspaperDay(t *testing.T) {
	quiet := slog.New(slog.DiscardHandler)

	t.Run("defaults to NEWSPAPER_TIMEZONE", func(t *testing.T) {
		clearWorkerEnv(t)
		t.Setenv("NEWSPAPER_TIMEZONE", "Asia/Tokyo")

		cfg := LoadConfigFromEnv(quiet, NewWorkerMetrics(prometheus.NewRegistry()))

		if cfg.Timezone != "Asia/Tokyo" {
			t.Errorf("Timezone = %q, want Asia/Tokyo", cfg.Timezone)
		}
		if !cfg.ScheduleMatchesDay() {
			t.Error("schedule should match the newspaper day")
		}
	})

	t.Run("defaults to local zone without NEWSPAPER_TIMEZONE", func(t *testing.T) {
		clearWorkerEnv(t)
		t.Setenv("NEWSPAPER_TIMEZONE", "")

		cfg := LoadConfigFromEnv(quiet, NewWorkerMetrics(prometheus.NewRegistry()))

		if cfg.Timezone != time.Local.String() {
			t.Errorf("Timezone = %q, want %q", cfg.Timezone, time.Local.String())
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})

	t.Run("invalid NEWSPAPER_TIMEZONE is ignored", func(t *testing.T) {
		clearWorkerEnv(t)
		t.Setenv("NEWSPAPER_TIMEZONE", "Mars/Olympus")

		cfg := LoadConfigFromEnv(quiet, NewWorkerMetrics(prometheus.NewRegistry()))

		if cfg.Timezone != time.Local.String() {
			t.Errorf("Timezone = %q, want %q", cfg.Timezone, time.Local.String())
		}
	})

	t.Run("explicit override is kept but flagged", func(t *testing.T) {
		clearWorkerEnv(t)
		t.Setenv("NEWSPAPER_TIMEZONE", "Europe/Paris")
		t.Setenv("WORKER_TIMEZONE", "UTC")

		cfg := LoadConfigFromEnv(quiet, NewWorkerMetrics(prometheus.NewRegistry()))

		if cfg.Timezone != "UTC" {
			t.Errorf("Timezone = %q, want UTC", cfg.Timezone)
		}
		if cfg.ScheduleMatchesDay() {
			t.Error("UTC schedule should not match a Europe/Paris day")
		}
	})
}
