package scheduler

import (
	"testing"
	"time"

	"newsbrief-backend/config"
)

func TestNextRunTime(t *testing.T) {
	location := time.UTC

	tests := []struct {
		name     string
		now      time.Time
		hour     int
		minute   int
		expected time.Time
	}{
		{
			name:     "before today's run",
			now:      time.Date(2025, 3, 10, 4, 0, 0, 0, location),
			hour:     6,
			minute:   0,
			expected: time.Date(2025, 3, 10, 6, 0, 0, 0, location),
		},
		{
			name:     "after today's run",
			now:      time.Date(2025, 3, 10, 7, 30, 0, 0, location),
			hour:     6,
			minute:   0,
			expected: time.Date(2025, 3, 11, 6, 0, 0, 0, location),
		},
		{
			name:     "exactly at run time",
			now:      time.Date(2025, 3, 10, 6, 0, 0, 0, location),
			hour:     6,
			minute:   0,
			expected: time.Date(2025, 3, 11, 6, 0, 0, 0, location),
		},
		{
			name:     "minute granularity",
			now:      time.Date(2025, 3, 10, 6, 15, 0, 0, location),
			hour:     6,
			minute:   30,
			expected: time.Date(2025, 3, 10, 6, 30, 0, 0, location),
		},
		{
			name:     "rolls over month end",
			now:      time.Date(2025, 1, 31, 23, 0, 0, 0, location),
			hour:     6,
			minute:   0,
			expected: time.Date(2025, 2, 1, 6, 0, 0, 0, location),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRunTime(tt.now, tt.hour, tt.minute)
			if !got.Equal(tt.expected) {
				t.Errorf("nextRunTime(%v) = %v, expected %v", tt.now, got, tt.expected)
			}
		})
	}
}

func TestSchedulerStartStop(t *testing.T) {
	cfg := &config.Config{
		DailyRefreshHour:   6,
		DailyRefreshMinute: 0,
	}
	s := NewScheduler(cfg, nil)

	if status := s.Status(); status["status"] != "stopped" {
		t.Errorf("status = %v, expected stopped before start", status["status"])
	}

	s.Start()
	s.Start() // second start is a no-op

	if status := s.Status(); status["status"] != "running" {
		t.Errorf("status = %v, expected running after start", status["status"])
	}

	s.Stop()
	s.Stop() // second stop is a no-op

	if status := s.Status(); status["status"] != "stopped" {
		t.Errorf("status = %v, expected stopped after stop", status["status"])
	}
}
