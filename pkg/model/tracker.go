package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoadStatus is the lifecycle of a chromosome load.
type LoadStatus string

const (
	LoadProcessing LoadStatus = "processing"
	LoadFinished   LoadStatus = "finished"
	LoadFailed     LoadStatus = "error"
)

// LoadJob records the state of one load.
type LoadJob struct {
	ID        string
	Request   Request
	Status    LoadStatus
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LoadTracker stores load states indexed by load ID.
type LoadTracker struct {
	mu     sync.RWMutex
	jobs   map[string]*LoadJob
	latest string
}

func NewLoadTracker() *LoadTracker {
	return &LoadTracker{
		jobs: make(map[string]*LoadJob),
	}
}

// NewJob registers a load in the processing state and makes it the latest.
func (t *LoadTracker) NewJob(req Request) *LoadJob {
	now := time.Now()
	job := &LoadJob{
		ID:        uuid.NewString(),
		Request:   req,
		Status:    LoadProcessing,
		CreatedAt: now,
		UpdatedAt: now,
	}

	t.mu.Lock()
	t.jobs[job.ID] = job
	t.latest = job.ID
	t.mu.Unlock()
	return job
}

func (t *LoadTracker) Finish(id string) {
	t.update(id, func(job *LoadJob) {
		job.Status = LoadFinished
	})
}

func (t *LoadTracker) Fail(id string, err error) {
	t.update(id, func(job *LoadJob) {
		job.Status = LoadFailed
		job.Error = err.Error()
	})
}

// Get returns a copy of the job.
func (t *LoadTracker) Get(id string) (LoadJob, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	job, ok := t.jobs[id]
	if !ok {
		return LoadJob{}, false
	}
	return *job, true
}

// Latest returns the most recently started load.
func (t *LoadTracker) Latest() (LoadJob, bool) {
	t.mu.RLock()
	id := t.latest
	t.mu.RUnlock()
	return t.Get(id)
}

func (t *LoadTracker) update(id string, update func(job *LoadJob)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	job, ok := t.jobs[id]
	if !ok {
		return
	}

	update(job)
	job.UpdatedAt = time.Now()
}
