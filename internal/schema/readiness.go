package schema

import "sync"

type Status string

const (
	StatusReady    Status = "ready"
	StatusDegraded Status = "degraded"
)

// Readiness is the outcome of schema initialization. It starts out degraded
// with no error until the first attempt is recorded.
type Readiness struct {
	mu    sync.RWMutex
	ready bool
	err   error
}

func NewReadiness() *Readiness {
	return &Readiness{}
}

func (r *Readiness) MarkReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = true
	r.err = nil
}

func (r *Readiness) MarkDegraded(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ready = false
	r.err = err
}

func (r *Readiness) Ready() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ready
}

// Snapshot returns the current status and, when degraded, the last error.
func (r *Readiness) Snapshot() (Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.ready {
		return StatusReady, nil
	}
	return StatusDegraded, r.err
}
