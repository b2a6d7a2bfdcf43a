package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/felixgeelhaar/studio/pkg/domain/events"
)

// Subscriber receives published events. Errors are the subscriber's
// problem; publishing never fails.
type Subscriber func(e *events.Event) error

// InMemoryEventPublisher fans domain events out to subscribers and
// appends them to .studio/events.jsonl. Implements events.Publisher.
type InMemoryEventPublisher struct {
	mu   sync.RWMutex
	subs []Subscriber

	logMu sync.Mutex
	path  string
	dir   string
	noLog bool
}

// NewInMemoryEventPublisher creates a publisher logging to the given
// workspace root.
func NewInMemoryEventPublisher(root string) *InMemoryEventPublisher {
	dir := filepath.Join(root, StudioDir)
	return &InMemoryEventPublisher{path: filepath.Join(dir, EventsFile), dir: dir}
}

// NewTransientEventPublisher creates a publisher with no event log.
func NewTransientEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{noLog: true}
}

// Subscribe registers a subscriber for every future event.
func (p *InMemoryEventPublisher) Subscribe(sub Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, sub)
}

// Publish appends the event to the log (best effort) and notifies every
// subscriber. Subscriber errors are ignored: event delivery is
// observability, not correctness.
func (p *InMemoryEventPublisher) Publish(e *events.Event) {
	if e == nil {
		return
	}
	_ = p.appendLog(e)

	p.mu.RLock()
	subs := make([]Subscriber, len(p.subs))
	copy(subs, p.subs)
	p.mu.RUnlock()

	for _, sub := range subs {
		_ = sub(e)
	}
}

func (p *InMemoryEventPublisher) appendLog(e *events.Event) error {
	if p.noLog {
		return nil
	}
	p.logMu.Lock()
	defer p.logMu.Unlock()

	if err := os.MkdirAll(p.dir, 0700); err != nil {
		return fmt.Errorf("create events directory: %w", err)
	}
	line, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	f, err := os.OpenFile(p.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open event log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
