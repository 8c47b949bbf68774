package scheduler

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func testScheduler() *Scheduler {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewScheduler(nil, logger)
}

func TestScheduleIncrementalSyncRejectsBadExpression(t *testing.T) {
	s := testScheduler()
	if err := s.ScheduleIncrementalSync("not a cron", []string{"SPY"}, 30); err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestSchedulerLifecycle(t *testing.T) {
	s := testScheduler()

	if err := s.Start(); err == nil {
		t.Fatal("expected error starting with no jobs")
	}

	if err := s.ScheduleIncrementalSync("0 30 22 * * 1-5", []string{"SPY"}, 30); err != nil {
		t.Fatalf("ScheduleIncrementalSync: %v", err)
	}
	if s.IsRunning() {
		t.Fatal("expected scheduler to be stopped before Start")
	}
	if !s.GetNextRun().IsZero() {
		t.Fatal("expected zero next run before Start")
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("expected scheduler to be running")
	}
	if err := s.Start(); err == nil {
		t.Fatal("expected error on double start")
	}
	if err := s.ScheduleIncrementalSync("0 0 0 * * *", []string{"SPY"}, 30); err == nil {
		t.Fatal("expected error scheduling while running")
	}

	next := s.GetNextRun()
	if next.IsZero() || !next.After(time.Now().UTC().Add(-time.Minute)) {
		t.Fatalf("expected a future next run, got %v", next)
	}
	if len(s.Entries()) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(s.Entries()))
	}

	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if s.IsRunning() {
		t.Fatal("expected scheduler to be stopped")
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop should be a no-op, got %v", err)
	}
}
