// Package maintenance runs periodic upkeep against the invoicing database.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/saltyorg/inman/internal/logging"
)

// runTimeout bounds a single scheduled statistics refresh.
const runTimeout = 10 * time.Minute

// Analyzer refreshes table statistics. *database.Store satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context) error
}

// Status is a snapshot of the scheduler state.
type Status struct {
	Running   bool       `json:"running"`
	Schedule  string     `json:"schedule"`
	LastRun   *time.Time `json:"last_run,omitempty"`
	NextRun   *time.Time `json:"next_run,omitempty"`
	LastError string     `json:"last_error,omitempty"`
}

// Scheduler runs Analyze on a cron schedule.
type Scheduler struct {
	analyzer    Analyzer
	schedule    string
	cron        *cron.Cron
	cronEntryID cron.EntryID
	log         zerolog.Logger

	mu        sync.RWMutex
	running   bool
	analyzing bool
	lastRun   time.Time
	lastError error
}

// New creates a scheduler. An empty schedule disables periodic runs,
// RunNow still works.
func New(analyzer Analyzer, schedule string) *Scheduler {
	return &Scheduler{
		analyzer: analyzer,
		schedule: schedule,
		cron:     cron.New(),
		log:      logging.For("maintenance"),
	}
}

// Start validates the schedule and starts the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if s.schedule != "" {
		id, err := s.cron.AddFunc(s.schedule, s.scheduledRun)
		if err != nil {
			return fmt.Errorf("invalid maintenance schedule %q: %w", s.schedule, err)
		}
		s.cronEntryID = id
	}

	s.cron.Start()
	s.running = true

	s.log.Info().Str("schedule", s.schedule).Msg("Maintenance scheduler started")
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	// Start registers the job again.
	entryID := s.cronEntryID
	s.cronEntryID = 0
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	if entryID != 0 {
		s.cron.Remove(entryID)
	}

	s.log.Info().Msg("Maintenance scheduler stopped")
}

// Status returns the current scheduler state.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Running:  s.running,
		Schedule: s.schedule,
	}
	if !s.lastRun.IsZero() {
		lastRun := s.lastRun
		status.LastRun = &lastRun
	}
	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}
	if s.cronEntryID != 0 {
		entry := s.cron.Entry(s.cronEntryID)
		if !entry.Next.IsZero() {
			status.NextRun = &entry.Next
		}
	}
	return status
}

// RunNow refreshes statistics immediately. Overlapping runs are refused.
func (s *Scheduler) RunNow(ctx context.Context) error {
	s.mu.Lock()
	if s.analyzing {
		s.mu.Unlock()
		return fmt.Errorf("maintenance already running")
	}
	s.analyzing = true
	s.mu.Unlock()

	start := time.Now()
	err := s.analyzer.Analyze(ctx)

	s.mu.Lock()
	s.analyzing = false
	s.lastRun = start
	s.lastError = err
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to refresh statistics: %w", err)
	}
	s.log.Debug().Dur("duration", time.Since(start)).Msg("Maintenance run complete")
	return nil
}

func (s *Scheduler) scheduledRun() {
	s.log.Info().Msg("Running scheduled maintenance")

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := s.RunNow(ctx); err != nil {
		s.log.Error().Err(err).Msg("Scheduled maintenance failed")
	}
}
