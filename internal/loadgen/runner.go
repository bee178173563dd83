package loadgen

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/phonebook/pkg/logger"
)

// Run executes a complete load run and returns its statistics. A returned
// error with non-nil stats means the run finished but verification failed.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Get()
	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "starting phonebook load run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("contacts", cfg.NumContacts),
		logger.Int("overwrites", cfg.Overwrites),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	client := newHTTPClient(cfg)
	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	log.Info(ctx, "service is healthy")

	contacts, err := generateContacts(ctx, cfg.NumContacts)
	if err != nil {
		return nil, err
	}
	overwrites, err := generateOverwrites(contacts, cfg.Overwrites)
	if err != nil {
		return nil, err
	}
	stats.Generated = len(contacts) + len(overwrites)

	// Overwrites go out only after every original has been answered, so the
	// final number of each name is known.
	accepted := submitContacts(ctx, client, cfg.Workers, contacts, stats)
	replaced := submitContacts(ctx, client, cfg.Workers, overwrites, stats)
	stats.Overwritten = len(replaced)

	book, err := client.List(ctx)
	if err != nil {
		return nil, err
	}
	verifyErr := verifyBook(ctx, expectedBook(accepted, replaced), book, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	report := newReport(cfg, stats)

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.Int("overwritten", stats.Overwritten),
		logger.Int("listed", stats.Listed),
		logger.Int("verified", stats.Verified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", report.SuccessRate),
		logger.Float64("requestsPerSecond", report.RequestsPerSecond))

	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, report); err != nil {
			log.Warn(ctx, "failed to write report", logger.Error(err))
		} else {
			log.Info(ctx, "report written", logger.String("file", cfg.ReportFile))
		}
	}
	return stats, verifyErr
}
