package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/partyops/jumpkitchen/internal/config"
	"github.com/partyops/jumpkitchen/internal/service/schedule"
)

// Scheduler manages the nightly archive and the morning catering export.
type Scheduler struct {
	cron   *cron.Cron
	svc    *schedule.Service
	cfg    config.JobsConfig
	export bool
	logger *zap.Logger
}

// NewScheduler creates a scheduler running in the configured timezone.
// Export is skipped entirely when the sheets integration is not configured.
func NewScheduler(cfg config.JobsConfig, svc *schedule.Service, exportEnabled bool, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, falling back to local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(location)),
		svc:    svc,
		cfg:    cfg,
		export: exportEnabled,
		logger: logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.ArchiveCron, s.archiveAll); err != nil {
		s.logger.Error("failed to schedule nightly archive", zap.Error(err))
	}

	if s.export {
		if _, err := s.cron.AddFunc(s.cfg.ExportCron, s.exportAll); err != nil {
			s.logger.Error("failed to schedule catering export", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// archiveAll snapshots and clears yesterday's schedule for every venue.
func (s *Scheduler) archiveAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	venues, err := s.svc.Venues(ctx)
	if err != nil {
		s.logger.Error("failed listing venues for archive", zap.Error(err))
		return
	}

	for _, venue := range venues {
		if err := s.svc.ArchiveAndReset(ctx, venue); err != nil {
			s.logger.Error("nightly archive failed", zap.String("venue", venue), zap.Error(err))
			continue
		}
		s.logger.Info("schedule archived", zap.String("venue", venue))
	}
}

// exportAll pushes every venue's schedule to the catering spreadsheet.
func (s *Scheduler) exportAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	venues, err := s.svc.Venues(ctx)
	if err != nil {
		s.logger.Error("failed listing venues for export", zap.Error(err))
		return
	}

	for _, venue := range venues {
		if err := s.svc.Export(ctx, venue); err != nil {
			s.logger.Error("catering export failed", zap.String("venue", venue), zap.Error(err))
		}
	}
}
