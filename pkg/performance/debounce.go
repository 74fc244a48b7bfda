package performance

import (
	"sync"
	"time"
)

// Debouncer coalesces frequent operations keyed by name.
type Debouncer struct {
	mutex    sync.Mutex
	timers   map[string]*time.Timer
	duration time.Duration
}

// NewDebouncer creates a new debouncer with the specified duration
func NewDebouncer(duration time.Duration) *Debouncer {
	return &Debouncer{
		timers:   make(map[string]*time.Timer),
		duration: duration,
	}
}

// Debounce executes the function after the debounce duration has passed
// If called again with the same key before the duration expires, the previous call is cancelled
func (d *Debouncer) Debounce(key string, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	// Cancel existing timer if it exists
	if timer, exists := d.timers[key]; exists {
		timer.Stop()
	}

	d.timers[key] = time.AfterFunc(d.duration, func() {
		d.mutex.Lock()
		delete(d.timers, key)
		d.mutex.Unlock()
		fn()
	})
}

// Flush cancels the pending timer for key and, if one was pending, runs fn now.
func (d *Debouncer) Flush(key string, fn func()) {
	d.mutex.Lock()
	timer, exists := d.timers[key]
	if exists {
		timer.Stop()
		delete(d.timers, key)
	}
	d.mutex.Unlock()

	if exists {
		fn()
	}
}

// Cancel cancels a pending debounced function call
func (d *Debouncer) Cancel(key string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if timer, exists := d.timers[key]; exists {
		timer.Stop()
		delete(d.timers, key)
	}
}

// Clear cancels all pending debounced function calls
func (d *Debouncer) Clear() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}
