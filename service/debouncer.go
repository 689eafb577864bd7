package services

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// DispatchFunc receives the latest query once input has been quiet for the
// debounce interval, tagged with a monotonically increasing generation.
type DispatchFunc func(generation uint64, query string)

// Debouncer coalesces rapid query updates into a single dispatch.
type Debouncer struct {
	mu         sync.Mutex
	interval   time.Duration
	minLength  int
	timer      *time.Timer
	pending    uint64
	generation uint64
	dispatch   DispatchFunc
	clear      func()
}

// NewDebouncer creates a debouncer. Queries shorter than minLength runes
// never dispatch; they call clear instead.
func NewDebouncer(interval time.Duration, minLength int, dispatch DispatchFunc, clear func()) *Debouncer {
	return &Debouncer{
		interval:  interval,
		minLength: minLength,
		dispatch:  dispatch,
		clear:     clear,
	}
}

// Update records a new input value and restarts the quiet period.
func (d *Debouncer) Update(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	d.stopLocked()
	d.pending++
	// Anything still in flight answers an older input.
	d.generation++

	if utf8.RuneCountInString(query) < d.minLength {
		d.mu.Unlock()
		if d.clear != nil {
			d.clear()
		}
		return
	}

	seq := d.pending
	d.timer = time.AfterFunc(d.interval, func() {
		d.fire(seq, query)
	})
	d.mu.Unlock()
}

func (d *Debouncer) fire(seq uint64, query string) {
	d.mu.Lock()
	// A timer that was stopped too late may still run.
	if seq != d.pending {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.generation++
	generation := d.generation
	d.mu.Unlock()

	d.dispatch(generation, query)
}

// IsCurrent reports whether generation was dispatched for the latest input.
func (d *Debouncer) IsCurrent(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return generation == d.generation
}

// Stop cancels any pending dispatch and invalidates in-flight ones.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.pending++
	d.generation++
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
