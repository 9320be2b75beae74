// Package jobs runs parse jobs asynchronously: a small in-memory queue with a
// fixed worker pool, one job per uploaded scan. Job records live in memory
// only; the parse results they produce are persisted by the store.
package jobs

import "time"

// Status represents the current state of a job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status is final.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Record tracks one parse job from submission to completion.
type Record struct {
	ID          string     `json:"id"`
	Source      string     `json:"source"` // original upload file name
	Path        string     `json:"-"`      // stored path of the uploaded scan
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	Status      Status     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
	// ResultID is the persisted parse result's ID once the job completes.
	ResultID string `json:"result_id,omitempty"`
	// Records is the number of shifts recovered, valid once completed.
	Records int `json:"records"`
}
