// Package mailbox provides a single-slot, latest-wins handoff between the
// scheduler and the backup worker.
package mailbox

import (
	"context"
	"sync"
)

// Mailbox is a single-slot buffer where the latest job always wins.
// It is NOT a queue. It holds at most one pending job.
type Mailbox[T any] struct {
	mu    sync.Mutex
	job   *T
	ready chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{ready: make(chan struct{}, 1)}
}

// Put stores a job, replacing any pending one, and reports whether a
// pending job was replaced. It never blocks.
func (m *Mailbox[T]) Put(j T) (replaced bool) {
	m.mu.Lock()
	replaced = m.job != nil
	m.job = &j
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return replaced
}

// Take blocks until a job is available or ctx is done.
func (m *Mailbox[T]) Take(ctx context.Context) (T, bool) {
	for {
		if j := m.TryTake(); j != nil {
			return *j, true
		}
		select {
		case <-m.ready:
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// TryTake returns the job if present, or nil if empty.
// It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	j := m.job
	m.job = nil
	return j
}

// HasJob reports whether a job is currently waiting.
func (m *Mailbox[T]) HasJob() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.job != nil
}
