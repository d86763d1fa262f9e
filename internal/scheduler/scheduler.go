// Package scheduler runs the recurring maintenance jobs: daily prediction
// generation across configured categories and the daily archival sweep.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/demandcast/demandcast/internal/config"
	"github.com/demandcast/demandcast/internal/logging"
	"github.com/demandcast/demandcast/internal/models"
	"github.com/demandcast/demandcast/internal/services"
)

// jobTimeout bounds one full job run, independent of the per-category bound
// the prediction service applies inside a batch.
const jobTimeout = 30 * time.Minute

// Scheduler owns the cron runner and the job wiring. One instance per
// process; Start and Stop bracket its lifetime.
type Scheduler struct {
	logger      *logging.Logger
	cfg         config.SchedulerConfig
	predictions *services.PredictionService
	cron        *cron.Cron
}

// New creates a Scheduler with both jobs registered. Jobs do not overlap
// with themselves: a run still in flight skips the next trigger.
func New(logger *logging.Logger, cfg config.SchedulerConfig, predictions *services.PredictionService) (*Scheduler, error) {
	s := &Scheduler{
		logger:      logger,
		cfg:         cfg,
		predictions: predictions,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cron.DiscardLogger),
			cron.Recover(cron.DiscardLogger),
		)),
	}

	if _, err := s.cron.AddFunc(cfg.ForecastCron, s.runForecastJob); err != nil {
		return nil, fmt.Errorf("invalid forecast cron expression %q: %w", cfg.ForecastCron, err)
	}

	if _, err := s.cron.AddFunc(cfg.ArchiveCron, s.runArchiveJob); err != nil {
		return nil, fmt.Errorf("invalid archive cron expression %q: %w", cfg.ArchiveCron, err)
	}

	return s, nil
}

// Start launches the cron runner. Returns immediately; jobs run on the
// runner's goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started",
		"forecast_cron", s.cfg.ForecastCron,
		"archive_cron", s.cfg.ArchiveCron,
		"categories", len(s.cfg.Categories))
	s.cron.Start()
}

// Stop halts the runner and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// runForecastJob refreshes the TRENDING prediction for every configured
// category. One failing category never blocks the rest.
func (s *Scheduler) runForecastJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("Daily forecast job started", "categories", len(s.cfg.Categories))

	results := s.predictions.GenerateBatch(ctx, s.cfg.Categories, models.PredictionTypeTrending)

	var generated, skipped, failed int
	for _, r := range results {
		switch {
		case r.Generated:
			generated++
		case r.Skipped:
			skipped++
		default:
			failed++
		}
	}

	s.logger.Info("Daily forecast job completed",
		"generated", generated,
		"skipped", skipped,
		"failed", failed,
		"duration_ms", time.Since(start).Milliseconds())
}

// runArchiveJob retires predictions whose validity window has passed.
func (s *Scheduler) runArchiveJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	count, err := s.predictions.ArchiveExpired(ctx)
	if err != nil {
		s.logger.Error("Archival sweep failed", "error", err)
		return
	}

	s.logger.Info("Archival sweep job completed", "archived", count)
}
