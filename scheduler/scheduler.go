package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"newsbrief-backend/config"
	"newsbrief-backend/services"
)

// Scheduler runs the news refresh pipeline once a day at the configured time
type Scheduler struct {
	cfg      *config.Config
	pipeline *services.PipelineService

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	nextRun time.Time
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg *config.Config, pipeline *services.PipelineService) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		pipeline: pipeline,
	}
}

// Start launches the daily refresh loop. Starting a running scheduler
// is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		log.Println("Scheduler is already running")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.running = true

	go s.run(ctx)

	log.Printf("Scheduler started, daily refresh scheduled for %02d:%02d",
		s.cfg.DailyRefreshHour, s.cfg.DailyRefreshMinute)
}

// Stop cancels the refresh loop. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		log.Println("Scheduler is not running")
		return
	}

	s.cancel()
	s.running = false
	log.Println("Scheduler stopped")
}

// Status reports whether the scheduler is running and when the next
// refresh fires
func (s *Scheduler) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return map[string]interface{}{"status": "stopped"}
	}
	return map[string]interface{}{
		"status":   "running",
		"next_run": s.nextRun.Format(time.RFC3339),
	}
}

func (s *Scheduler) run(ctx context.Context) {
	for {
		next := nextRunTime(time.Now(), s.cfg.DailyRefreshHour, s.cfg.DailyRefreshMinute)

		s.mu.Lock()
		s.nextRun = next
		s.mu.Unlock()

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs the pipeline for every available category. Failures are
// logged and the loop keeps going.
func (s *Scheduler) refresh(ctx context.Context) {
	log.Println("Starting daily news refresh")

	opts := services.DefaultPipelineOptions(s.cfg)
	result, err := s.pipeline.ProcessCategories(ctx, s.cfg.AvailableCategories, opts)
	if err != nil {
		log.Printf("Daily news refresh failed: %v", err)
		return
	}

	log.Printf("Daily news refresh completed: %d articles processed in %.2fs",
		result.TotalCount, result.ProcessingTime)
}

// nextRunTime returns the next occurrence of hour:minute after now
func nextRunTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(now.Year(), now.Month(), now.Day()+1, hour, minute, 0, 0, now.Location())
	}
	return next
}
