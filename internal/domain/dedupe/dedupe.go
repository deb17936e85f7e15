// Package dedupe defines the interface for submission idempotency tracking.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen submission ids so a re-posted result is acknowledged
// without being processed twice.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets an id, allowing a retry. Used when a submission was
	// marked seen but failed downstream (queue backpressure, parse failure).
	Unrecord(ctx context.Context, id string)

	// Size returns the number of ids currently tracked.
	Size() int
}

// defaultMaxSize bounds the memory spent remembering ids; old ids age out
// first.
const defaultMaxSize = 50000

// ringDeduper implements Deduper with a map plus a fixed-size ring that
// evicts the oldest id once the bound is reached. Unbounded mode (maxSize
// <= 0) keeps every id.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// New creates a deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.maxSize > 0 {
		if old := d.ring[d.next]; old != "" {
			delete(d.seen, old)
		}
		d.ring[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	return false
}

func (d *ringDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	delete(d.seen, id)
	// The ring slot, if any, keeps the stale id; it is a no-op on eviction
	// since the map entry is already gone.
}

func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.seen)
}
