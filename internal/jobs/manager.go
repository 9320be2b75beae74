package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// queueSize bounds how many jobs can wait; submissions past it are rejected
// rather than blocking the upload handler.
const queueSize = 64

// Manager queues parse jobs and runs them on a fixed pool of workers.
type Manager struct {
	pipeline *Pipeline
	workers  int

	mu      sync.RWMutex
	records map[string]*Record
	queue   chan string

	wg sync.WaitGroup
}

// NewManager creates a manager running jobs on the given pipeline.
// workers defaults to 1 when non-positive.
func NewManager(pipeline *Pipeline, workers int) *Manager {
	if workers < 1 {
		workers = 1
	}
	return &Manager{
		pipeline: pipeline,
		workers:  workers,
		records:  make(map[string]*Record),
		queue:    make(chan string, queueSize),
	}
}

// Start launches the worker pool. Workers exit when ctx is cancelled;
// queued jobs left behind are marked cancelled.
func (m *Manager) Start(ctx context.Context) {
	for i := 0; i < m.workers; i++ {
		m.wg.Add(1)
		go m.worker(ctx)
	}
}

// Wait blocks until all workers have exited.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Submit queues a parse job for an uploaded scan and returns its record.
func (m *Manager) Submit(source, path string, year int, month time.Month) (*Record, error) {
	rec := &Record{
		ID:        uuid.New().String(),
		Source:    source,
		Path:      path,
		Year:      year,
		Month:     int(month),
		Status:    StatusQueued,
		CreatedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.records[rec.ID] = rec
	m.mu.Unlock()

	select {
	case m.queue <- rec.ID:
	default:
		m.setStatus(rec.ID, StatusFailed, "job queue full")
		return nil, fmt.Errorf("job queue full")
	}
	return copyRecord(rec), nil
}

// Get returns the job with the given ID.
func (m *Manager) Get(id string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, false
	}
	return copyRecord(rec), true
}

// List returns all jobs, newest first.
func (m *Manager) List() []*Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	all := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		all = append(all, copyRecord(rec))
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	return all
}

func (m *Manager) worker(ctx context.Context) {
	defer m.wg.Done()
	for {
		select {
		case <-ctx.Done():
			m.drainCancelled()
			return
		case id := <-m.queue:
			m.run(ctx, id)
		}
	}
}

func (m *Manager) run(ctx context.Context, id string) {
	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok || rec.Status != StatusQueued {
		m.mu.Unlock()
		return
	}
	now := time.Now().UTC()
	rec.Status = StatusRunning
	rec.StartedAt = &now
	source, path := rec.Source, rec.Path
	year, month := rec.Year, time.Month(rec.Month)
	m.mu.Unlock()

	outcome, err := m.pipeline.Run(ctx, source, path, year, month)

	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok = m.records[id]
	if !ok {
		return
	}
	done := time.Now().UTC()
	rec.CompletedAt = &done
	if err != nil {
		if ctx.Err() != nil {
			rec.Status = StatusCancelled
		} else {
			rec.Status = StatusFailed
		}
		rec.Error = err.Error()
		return
	}
	rec.Status = StatusCompleted
	rec.ResultID = outcome.Saved.ID
	rec.Records = len(outcome.Saved.Result.Records)
}

// drainCancelled marks everything still queued as cancelled on shutdown.
func (m *Manager) drainCancelled() {
	for {
		select {
		case id := <-m.queue:
			m.setStatus(id, StatusCancelled, "server shutting down")
		default:
			return
		}
	}
}

func (m *Manager) setStatus(id string, status Status, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return
	}
	rec.Status = status
	rec.Error = errMsg
	if status.Terminal() {
		now := time.Now().UTC()
		rec.CompletedAt = &now
	}
}

func copyRecord(rec *Record) *Record {
	c := *rec
	return &c
}
