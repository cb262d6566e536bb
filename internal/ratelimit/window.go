// Package ratelimit throttles outbound alert dispatches per user. This is a
// windowed counter, not a token bucket: exactly `ceiling` attempts are admitted
// per window, rejected attempts consume nothing, and state resets when the
// window elapses. In-memory only; state does not survive a restart.
package ratelimit

import (
	"sync"
	"time"
)

type record struct {
	windowStart time.Time
	count       int
}

type Window struct {
	mu      sync.Mutex
	ceiling int
	window  time.Duration
	now     func() time.Time
	records map[string]*record
}

func NewWindow(ceiling int, window time.Duration) *Window {
	return &Window{
		ceiling: ceiling,
		window:  window,
		now:     time.Now,
		records: make(map[string]*record),
	}
}

// WithClock substitutes the time source, for deterministic tests.
func (w *Window) WithClock(now func() time.Time) *Window {
	w.now = now
	return w
}

// Allow reports whether a dispatch attempt for userID may proceed, recording
// it when admitted. Check-and-increment is atomic under the lock, so two
// concurrent attempts can never both take the last slot.
func (w *Window) Allow(userID string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()

	r, ok := w.records[userID]
	if !ok || now.Sub(r.windowStart) >= w.window {
		r = &record{windowStart: now}
		w.records[userID] = r
	}

	if r.count >= w.ceiling {
		return false
	}
	r.count++
	return true
}

// Remaining reports how many attempts userID has left in the current window,
// without consuming one.
func (w *Window) Remaining(userID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	r, ok := w.records[userID]
	if !ok || w.now().Sub(r.windowStart) >= w.window {
		return w.ceiling
	}
	if r.count >= w.ceiling {
		return 0
	}
	return w.ceiling - r.count
}
