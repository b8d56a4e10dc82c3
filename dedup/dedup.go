// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dedup

import (
	"sync"
	"time"
)

// MinWindow is the shortest window a deployment may configure.
const MinWindow = 60 * time.Second

// Record is one observed scan id.
type Record struct {
	ID         string
	ObservedAt time.Time
}

// Window suppresses repeat ids seen within a sliding interval.
// Stale records are evicted lazily on each Observe.
type Window struct {
	mu      sync.Mutex
	window  time.Duration
	floor   time.Duration
	records []Record
}

// New returns a Window of the given length, clamped up to floor.
func New(window, floor time.Duration) *Window {
	return &Window{
		window: clamp(window, floor),
		floor:  floor,
	}
}

func clamp(d, floor time.Duration) time.Duration {
	if d < floor {
		return floor
	}
	return d
}

// Observe records id at now and reports whether it is a duplicate of a
// live record. Duplicates are not re-recorded, so the first sighting
// keeps its timestamp.
func (w *Window) Observe(id string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.evict(now)

	for _, r := range w.records {
		if r.ID == id {
			return true
		}
	}

	w.records = append(w.records, Record{ID: id, ObservedAt: now})
	return false
}

// evict drops records strictly older than the window. Caller holds mu.
func (w *Window) evict(now time.Time) {
	kept := w.records[:0]
	for _, r := range w.records {
		if now.Sub(r.ObservedAt) <= w.window {
			kept = append(kept, r)
		}
	}
	// Clear the tail so evicted records can be collected.
	for i := len(kept); i < len(w.records); i++ {
		w.records[i] = Record{}
	}
	w.records = kept
}

// SetWindow changes the window length. Existing records are kept and
// judged against the new length on the next Observe.
func (w *Window) SetWindow(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.window = clamp(d, w.floor)
}

// Window returns the effective window length.
func (w *Window) Window() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.window
}

// Len returns the number of records currently held, including any that
// have expired but not yet been evicted.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.records)
}

// Records returns a copy of the held records in observation order.
func (w *Window) Records() []Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Record, len(w.records))
	copy(out, w.records)
	return out
}
