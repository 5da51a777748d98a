package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type countingRunner struct {
	runs atomic.Int64
	err  error
}

func (r *countingRunner) RunCycle(ctx context.Context) error {
	r.runs.Add(1)
	return r.err
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStartRunsOneCycleImmediately(t *testing.T) {
	runner := &countingRunner{}
	s := NewPollScheduler(runner, discardLogger(), time.Hour)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	// The interval is an hour, so the only run is the immediate one.
	if got := runner.runs.Load(); got != 1 {
		t.Fatalf("expected 1 immediate run, got %d", got)
	}
}

func TestSchedulerKeepsGoingAfterCycleError(t *testing.T) {
	runner := &countingRunner{err: errors.New("cycle failed")}
	s := NewPollScheduler(runner, discardLogger(), 20*time.Millisecond)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for runner.runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 runs despite errors, got %d", runner.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
	s.Stop()
}

func TestStopHaltsScheduledRuns(t *testing.T) {
	runner := &countingRunner{}
	s := NewPollScheduler(runner, discardLogger(), 20*time.Millisecond)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for runner.runs.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected a scheduled run, got %d", runner.runs.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	s.Stop()
	after := runner.runs.Load()
	time.Sleep(100 * time.Millisecond)
	if got := runner.runs.Load(); got != after {
		t.Fatalf("runs continued after Stop: %d -> %d", after, got)
	}
}
