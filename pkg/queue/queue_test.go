package queue_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/showroom/pkg/queue"
)

var processed atomic.Int32

type countJob struct {
	Delta int32 `json:"delta"`
}

func (j *countJob) Handle() error {
	processed.Add(j.Delta)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error { return errors.New("always fails") }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatchAndProcess(t *testing.T) {
	processed.Store(0)

	m := queue.NewManager(queue.NewMemoryDriver(), testLogger())
	m.Register("jobs.Count", func() queue.Job { return &countJob{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartWorkers(ctx, 2)

	for i := 0; i < 5; i++ {
		if err := m.Dispatch("jobs.Count", &countJob{Delta: 1}); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}

	waitFor(t, func() bool { return processed.Load() == 5 })
}

func TestPayloadSurvivesSerialization(t *testing.T) {
	processed.Store(0)

	m := queue.NewManager(queue.NewMemoryDriver(), testLogger())
	m.Register("jobs.Count", func() queue.Job { return &countJob{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartWorkers(ctx, 1)

	if err := m.Dispatch("jobs.Count", &countJob{Delta: 7}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	waitFor(t, func() bool { return processed.Load() == 7 })
}

func TestFailedJobRecorded(t *testing.T) {
	m := queue.NewManager(queue.NewMemoryDriver(), testLogger())
	m.SetMaxRetry(1)
	m.Register("jobs.Fail", func() queue.Job { return &failJob{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartWorkers(ctx, 1)

	if err := m.Dispatch("jobs.Fail", &failJob{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	waitFor(t, func() bool { return len(m.FailedJobs()) == 1 })

	failed := m.FailedJobs()[0]
	if failed.Type != "jobs.Fail" {
		t.Errorf("Type = %q, want jobs.Fail", failed.Type)
	}
	if failed.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", failed.Attempts)
	}
	if failed.Err == nil {
		t.Error("expected the job error to be recorded")
	}
}

func TestUnregisteredJobIsDropped(t *testing.T) {
	processed.Store(0)

	m := queue.NewManager(queue.NewMemoryDriver(), testLogger())
	m.Register("jobs.Count", func() queue.Job { return &countJob{} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartWorkers(ctx, 1)

	if err := m.Dispatch("jobs.Unknown", &countJob{Delta: 1}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if err := m.Dispatch("jobs.Count", &countJob{Delta: 1}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	// The known job still processes; the unknown one is skipped, not fatal.
	waitFor(t, func() bool { return processed.Load() == 1 })
	if got := len(m.FailedJobs()); got != 0 {
		t.Errorf("unregistered jobs are dropped, not failed; got %d failed", got)
	}
}

func TestWorkersStopOnCancel(t *testing.T) {
	m := queue.NewManager(queue.NewMemoryDriver(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	m.StartWorkers(ctx, 3)
	cancel()

	done := make(chan struct{})
	go func() {
		m.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers did not stop after cancel")
	}
}
