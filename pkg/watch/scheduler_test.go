package watch

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewScheduler(t *testing.T) {
	tests := []struct {
		name      string
		schedule  string
		wantError bool
	}{
		{name: "every five minutes", schedule: "*/5 * * * *"},
		{name: "daily", schedule: "0 3 * * *"},
		{name: "descriptor", schedule: "@hourly"},
		{name: "empty", schedule: "", wantError: true},
		{name: "invalid", schedule: "invalid cron", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewScheduler(tt.schedule, nil)
			if (err != nil) != tt.wantError {
				t.Errorf("NewScheduler(%q) error = %v, wantError %v", tt.schedule, err, tt.wantError)
			}
		})
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s, err := NewScheduler("0 3 * * *", nil)
	if err != nil {
		t.Fatal(err)
	}

	if s.NextRun() != nil {
		t.Error("NextRun() should be nil before Start")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx, func(context.Context) {}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("IsRunning() = false after Start")
	}
	if err := s.Start(ctx, func(context.Context) {}); err == nil {
		t.Error("second Start() should fail")
	}

	next := s.NextRun()
	if next == nil {
		t.Fatal("NextRun() returned nil for running scheduler")
	}
	if next.Hour() != 3 || next.Minute() != 0 {
		t.Errorf("NextRun() = %v, want 03:00", next)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
}

func TestScheduler_RunsJob(t *testing.T) {
	s, err := NewScheduler("@every 1s", nil)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	if err := s.Start(ctx, func(context.Context) { runs.Add(1) }); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.After(3 * time.Second)
	for runs.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduled job never ran")
		case <-time.After(50 * time.Millisecond):
		}
	}

	cancel()
	time.Sleep(100 * time.Millisecond)
	if s.IsRunning() {
		t.Error("scheduler should stop when its context is cancelled")
	}
}
