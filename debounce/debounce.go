// Package debounce delays a rapidly changing value until it has been stable
// for a fixed interval.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the settle interval used by the search screen
const DefaultDelay = 600 * time.Millisecond

// Debouncer is a restartable single-shot timer. Each Trigger cancels the
// pending countdown and starts a new one; only a countdown that completes
// uncancelled delivers its value.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New creates a Debouncer that calls fn with the settled value
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
	}
}

// Delay returns the settle interval
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// Trigger restarts the countdown with a new value
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(gen, value)
	})
}

// fire delivers value if its countdown is still the current one
func (d *Debouncer[T]) fire(gen uint64, value T) {
	d.mu.Lock()
	// A Stop or Trigger may have raced the timer after it started running.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn(value)
	}
}

// Pending reports whether a countdown is running
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending countdown. Later Triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.stopped = true
}
