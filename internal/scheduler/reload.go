package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/catalogdb/internal/entities"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// LoadEnqueuer queues a catalog load.
type LoadEnqueuer interface {
	Enqueue(trigger entities.LoadTrigger) (string, error)
}

// ReloadScheduler periodically queues a catalog reload. It never runs a load
// itself, so scheduled loads go through the same single-worker queue as
// API-triggered ones.
type ReloadScheduler struct {
	queue    LoadEnqueuer
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewReloadScheduler creates a new scheduler instance
func NewReloadScheduler(queue LoadEnqueuer, schedule string) *ReloadScheduler {
	return &ReloadScheduler{
		queue:    queue,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler. It stops when ctx is cancelled.
func (s *ReloadScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.RunNow)
	if err != nil {
		return fmt.Errorf("failed to schedule reload job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	nextRun, _ := NextRunTime(s.schedule)
	log.Printf("[SCHEDULER] Catalog reload started with schedule '%s'. Next run: %v", s.schedule, nextRun)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler
func (s *ReloadScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("[SCHEDULER] Catalog reload stopped")
}

// RunNow queues a reload immediately.
func (s *ReloadScheduler) RunNow() {
	id, err := s.queue.Enqueue(entities.LoadTriggerSchedule)
	if err != nil {
		log.Printf("[SCHEDULER] Failed to queue catalog reload: %v", err)
		return
	}
	log.Printf("[SCHEDULER] Queued catalog reload %s", id)
}

// IsRunning returns whether the scheduler is active
func (s *ReloadScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next reload will be queued
func (s *ReloadScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// NextRunTime calculates when schedule fires next
func NextRunTime(schedule string) (*time.Time, error) {
	sched, err := cronParser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	next := sched.Next(time.Now())
	return &next, nil
}
