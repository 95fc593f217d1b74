package cache

import (
	"sync"
	"time"
)

// DefaultDebounce is the inactivity window for search-as-you-type.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer holds at most one armed timer per key. Arming a key replaces any
// timer previously armed for it, so in a burst of calls only the final one
// fires. Callers racing the deadline itself should still version their
// results (see services.CustomerSearch).
type Debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDebouncer() *Debouncer {
	return &Debouncer{timers: make(map[string]*time.Timer)}
}

// Arm schedules fn after delay, replacing any timer armed for key.
func (d *Debouncer) Arm(key string, delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		d.mu.Lock()
		if d.timers[key] == t {
			delete(d.timers, key)
		}
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = t
}

// Cancel stops any timer armed for key.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[key]; ok {
		t.Stop()
		delete(d.timers, key)
	}
}
