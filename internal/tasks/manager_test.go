package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/darmiel/advisor/internal/logging"
)

func TestManager_RunNow(t *testing.T) {
	m := NewManager(context.Background())
	m.Register("ok", 0, func(ctx context.Context, log logging.InternalLogger) error {
		log.Info("hello %s", "world")
		return nil
	})
	m.Register("fail", 0, func(ctx context.Context, log logging.InternalLogger) error {
		return errors.New("boom")
	})

	if err := m.RunNow(context.Background(), "ok"); err != nil {
		t.Fatalf("RunNow() unexpected error: %v", err)
	}
	if err := m.RunNow(context.Background(), "fail"); err == nil {
		t.Fatalf("RunNow() expected error")
	}

	statuses := m.ListStatus()
	if len(statuses) != 2 || statuses[0].Name != "fail" || statuses[1].Name != "ok" {
		t.Fatalf("ListStatus() = %+v", statuses)
	}
	if statuses[1].LastResult != "success" || statuses[1].Runs != 1 {
		t.Errorf("unexpected status %+v", statuses[1])
	}
	if statuses[0].LastResult != "failed: boom" {
		t.Errorf("unexpected status %+v", statuses[0])
	}

	logs, err := m.GetLogs("ok")
	if err != nil {
		t.Fatalf("GetLogs() unexpected error: %v", err)
	}
	found := false
	for _, l := range logs {
		if l.Message == "hello world" && l.Level == "info" {
			found = true
		}
	}
	if !found {
		t.Errorf("task log missing handler output: %+v", logs)
	}
}

func TestManager_UnknownTask(t *testing.T) {
	m := NewManager(context.Background())
	var nf TaskNotFoundError
	if err := m.Trigger("nope"); !errors.As(err, &nf) || nf.Name != "nope" {
		t.Errorf("Trigger() error = %v, want TaskNotFoundError", err)
	}
	if _, err := m.GetLogs("nope"); err == nil {
		t.Errorf("GetLogs() expected error")
	}
}

func TestManager_SkipsConcurrentRun(t *testing.T) {
	m := NewManager(context.Background())
	release := make(chan struct{})
	started := make(chan struct{})
	m.Register("slow", 0, func(ctx context.Context, log logging.InternalLogger) error {
		close(started)
		<-release
		return nil
	})

	if err := m.Trigger("slow"); err != nil {
		t.Fatalf("Trigger() unexpected error: %v", err)
	}
	<-started
	if err := m.RunNow(context.Background(), "slow"); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("RunNow() error = %v, want ErrAlreadyRunning", err)
	}
	close(release)
}

func TestManager_SchedulerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager(ctx)

	ran := make(chan struct{}, 1)
	task := m.Register("tick", 10*time.Millisecond, func(ctx context.Context, log logging.InternalLogger) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task never ran")
	}
	if task.Status().NextRun.IsZero() {
		t.Errorf("interval task must report a next run")
	}
	cancel()
}
