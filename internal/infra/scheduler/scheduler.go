package scheduler

import (
	"context"
	"fmt"
	"time"

	"homework_review_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler drives the review cycle on a fixed interval. Runs never
// overlap: if a cycle is still in flight when the next tick fires, the tick
// is skipped.
type PollScheduler struct {
	cronEngine *cron.Cron
	service    app.CycleRunner
	logger     *logrus.Logger
	interval   time.Duration
	runTimeout time.Duration
}

func NewPollScheduler(service app.CycleRunner, logger *logrus.Logger, interval time.Duration) *PollScheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &PollScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		),
		service:    service,
		logger:     logger,
		interval:   interval,
		// A cycle is one GET plus a handful of sends; if it takes longer
		// than the poll interval something is wedged and the run is cut off.
		runTimeout: interval,
	}
}

// Start runs one cycle immediately, then schedules a cycle every interval.
func (s *PollScheduler) Start() error {
	s.logger.Info("Starting poll scheduler...")

	s.runCycle()

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cronEngine.AddFunc(spec, s.runCycle); err != nil {
		return fmt.Errorf("could not add poll cron job: %w", err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Poll scheduler started, polling every %s.", s.interval)
	return nil
}

func (s *PollScheduler) runCycle() {
	s.logger.Debug("Poll cycle triggered.")
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()
	if err := s.service.RunCycle(ctx); err != nil {
		// RunCycle has already logged and notified; the schedule keeps going.
		s.logger.Debugf("Poll cycle finished with error: %v", err)
		return
	}
	s.logger.Debug("Poll cycle finished.")
}

func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	ctx := s.cronEngine.Stop() // Stops new runs, waits for the running one.
	<-ctx.Done()
	s.logger.Info("Poll scheduler gracefully stopped.")
}
