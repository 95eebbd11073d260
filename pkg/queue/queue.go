// Package queue runs background jobs through a pluggable driver.
//
//	type ConfirmationJob struct { OrderID uint }
//	func (j *ConfirmationJob) Handle() error { ... }
//
//	q.Register("jobs.ConfirmationJob", func() queue.Job { return &ConfirmationJob{} })
//	q.Dispatch("jobs.ConfirmationJob", &ConfirmationJob{OrderID: 1})
//
// Jobs travel as JSON, so any worker process with the same registrations can
// take them off the queue.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shashiranjanraj/showroom/pkg/metrics"
)

// Job is one unit of background work.
type Job interface {
	Handle() error
}

// FailedJob records a job that used up every retry.
type FailedJob struct {
	Type     string
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver is the storage behind the queue.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// packet is the wire form: the registered type name plus the job's own JSON.
type packet struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Manager pairs a driver with the registry of job constructors and the
// worker pool that drains it.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	builders map[string]func() Job
	failed   []FailedJob
	maxRetry int
	log      *slog.Logger
	wg       sync.WaitGroup
}

func NewManager(d Driver, log *slog.Logger) *Manager {
	return &Manager{
		driver:   d,
		builders: map[string]func() Job{},
		maxRetry: 3,
		log:      log,
	}
}

// SetMaxRetry changes how many attempts a job gets before it is parked as
// failed.
func (m *Manager) SetMaxRetry(n int) { m.maxRetry = n }

// Register binds a type name to a constructor so workers can rebuild the job
// from its payload. Call once per job type at boot.
func (m *Manager) Register(name string, factory func() Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.builders[name] = factory
}

// Dispatch serializes job and pushes it under the registered name.
func (m *Manager) Dispatch(jobName string, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", jobName, err)
	}
	wire, err := json.Marshal(packet{Type: jobName, Payload: body})
	if err != nil {
		return fmt.Errorf("queue: marshal packet: %w", err)
	}
	return m.driver.Push(wire)
}

// StartWorkers runs n workers until ctx is cancelled.
func (m *Manager) StartWorkers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			m.drain(ctx)
		}()
	}
	m.log.Info("queue: workers started", "count", n)
}

// Wait blocks until every worker has returned.
func (m *Manager) Wait() { m.wg.Wait() }

func (m *Manager) drain(ctx context.Context) {
	for ctx.Err() == nil {
		wire, err := m.driver.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if wire != nil {
			m.handle(wire)
		}
	}
}

func (m *Manager) handle(wire []byte) {
	var p packet
	if err := json.Unmarshal(wire, &p); err != nil {
		m.log.Error("queue: bad packet", "error", err)
		return
	}

	m.mu.RLock()
	build, ok := m.builders[p.Type]
	m.mu.RUnlock()
	if !ok {
		m.log.Warn("queue: unregistered job type", "type", p.Type)
		return
	}

	job := build()
	if err := json.Unmarshal(p.Payload, job); err != nil {
		m.log.Error("queue: unmarshal payload", "type", p.Type, "error", err)
		return
	}

	m.attempt(job, p.Type)
}

func (m *Manager) attempt(job Job, typeName string) {
	start := time.Now()

	var lastErr error
	for try := 1; try <= m.maxRetry; try++ {
		if lastErr != nil {
			// Linear backoff between attempts.
			time.Sleep(time.Duration(try-1) * time.Second)
		}
		if lastErr = job.Handle(); lastErr == nil {
			m.log.Info("queue: job processed", "type", typeName)
			metrics.RecordQueueJob(typeName, "success", start)
			return
		}
		m.log.Warn("queue: job failed", "type", typeName, "attempt", try, "error", lastErr)
	}

	m.mu.Lock()
	m.failed = append(m.failed, FailedJob{
		Type:     typeName,
		Err:      lastErr,
		FailedAt: time.Now(),
		Attempts: m.maxRetry,
	})
	m.mu.Unlock()

	metrics.RecordQueueJob(typeName, "failed", start)
	m.log.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

// FailedJobs returns a copy of the failure list.
func (m *Manager) FailedJobs() []FailedJob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]FailedJob{}, m.failed...)
}
