package scheduler

import (
	"context"
	"fmt"

	"github.com/amaumene/gomediadex/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the periodic library scan
type Scheduler struct {
	cron     *cron.Cron
	scanCtrl *controllers.ScanController
	schedule string
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(scanCtrl *controllers.ScanController, schedule string, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		scanCtrl: scanCtrl,
		schedule: schedule,
		logger:   logger,
	}
}

// Start starts the scheduler and triggers an initial scan right away
func (s *Scheduler) Start() error {
	s.logger.WithField("schedule", s.schedule).Info("Starting scheduler")

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runScan()
	})
	if err != nil {
		return fmt.Errorf("failed to add scan job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	go s.runScan()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runScan executes the scan job
func (s *Scheduler) runScan() {
	s.logger.Info("Running scheduled library scan")
	ctx := context.Background()

	added, err := s.scanCtrl.Scan(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scan job failed")
		return
	}
	s.logger.WithField("added", added).Info("Scan job completed successfully")
}
