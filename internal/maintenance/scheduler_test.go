package maintenance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type fakeAnalyzer struct {
	calls   atomic.Int32
	err     error
	started chan struct{}
	block   chan struct{}
}

func (f *fakeAnalyzer) Analyze(ctx context.Context) error {
	f.calls.Add(1)
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	return f.err
}

func TestScheduler_StartRejectsInvalidSchedule(t *testing.T) {
	s := New(&fakeAnalyzer{}, "not a cron line")
	if err := s.Start(); err == nil {
		t.Fatal("expected invalid schedule error")
	}
	if s.Status().Running {
		t.Fatal("scheduler should not be running after a failed start")
	}
}

func TestScheduler_StatusReportsNextRun(t *testing.T) {
	s := New(&fakeAnalyzer{}, "0 3 * * *")
	if err := s.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer s.Stop()

	status := s.Status()
	if !status.Running {
		t.Fatal("expected scheduler to be running")
	}
	if status.NextRun == nil {
		t.Fatal("expected next run to be scheduled")
	}
	if status.NextRun.Hour() != 3 || status.NextRun.Minute() != 0 {
		t.Fatalf("unexpected next run %s", status.NextRun)
	}
}

func TestScheduler_EmptyScheduleHasNoNextRun(t *testing.T) {
	s := New(&fakeAnalyzer{}, "")
	if err := s.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer s.Stop()

	if s.Status().NextRun != nil {
		t.Fatal("expected no next run without a schedule")
	}
}

func TestScheduler_RunNowRecordsOutcome(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	s := New(analyzer, "")

	if err := s.RunNow(context.Background()); err != nil {
		t.Fatalf("RunNow returned error: %v", err)
	}
	status := s.Status()
	if status.LastRun == nil || status.LastError != "" {
		t.Fatalf("unexpected status after success: %+v", status)
	}

	analyzer.err = errors.New("lock wait timeout")
	if err := s.RunNow(context.Background()); err == nil {
		t.Fatal("expected RunNow to fail")
	}
	if got := s.Status().LastError; got != "lock wait timeout" {
		t.Fatalf("expected last error to be recorded, got %q", got)
	}
	if analyzer.calls.Load() != 2 {
		t.Fatalf("expected 2 analyze calls, got %d", analyzer.calls.Load())
	}
}

func TestScheduler_RunNowRefusesOverlap(t *testing.T) {
	analyzer := &fakeAnalyzer{started: make(chan struct{}), block: make(chan struct{})}
	s := New(analyzer, "")

	done := make(chan error, 1)
	go func() { done <- s.RunNow(context.Background()) }()

	<-analyzer.started

	if err := s.RunNow(context.Background()); err == nil {
		t.Fatal("expected overlapping run to be refused")
	}

	close(analyzer.block)
	if err := <-done; err != nil {
		t.Fatalf("first run returned error: %v", err)
	}
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := New(&fakeAnalyzer{}, "@daily")
	if err := s.Start(); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	s.Stop()
	s.Stop()
	if s.Status().Running {
		t.Fatal("expected scheduler to be stopped")
	}
}

func TestScheduler_RestartKeepsSingleJob(t *testing.T) {
	s := New(&fakeAnalyzer{}, "@daily")
	for i := 0; i < 3; i++ {
		if err := s.Start(); err != nil {
			t.Fatalf("Start %d returned error: %v", i, err)
		}
		if got := len(s.cron.Entries()); got != 1 {
			t.Fatalf("expected 1 cron entry after start %d, got %d", i, got)
		}
		s.Stop()
	}
	if got := len(s.cron.Entries()); got != 0 {
		t.Fatalf("expected no cron entries after stop, got %d", got)
	}
	if s.Status().NextRun != nil {
		t.Fatal("expected no next run while stopped")
	}
}
