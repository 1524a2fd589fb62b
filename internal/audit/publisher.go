package audit

import (
	"context"
	"sync"
	"time"
)

// Publisher captures structured audit events. Implementations must never
// fail the calling mutation: delivery problems are their own concern.
type Publisher interface {
	Emit(ctx context.Context, event Event)
}

// MemoryPublisher keeps events in memory for tests and single-node
// deployments without a broker.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Emit(_ context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a snapshot of everything emitted so far.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event{}, p.events...)
}
