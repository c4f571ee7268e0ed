// Package debounce holds back a changing value until it has been stable for a
// fixed interval. Only the trailing edge is emitted.
package debounce

import (
	"sync"
	"time"
)

// Debouncer tracks the latest input and the last settled value.
type Debouncer[T comparable] struct {
	mu      sync.Mutex
	delay   time.Duration
	input   T
	value   T
	timer   *time.Timer
	gen     uint64
	stopped bool
	emit    func(T)

	// emitMu serializes emissions and lets Stop wait for one in progress.
	emitMu sync.Mutex
}

// New returns a Debouncer settled on initial. emit, when set, is called with
// each newly settled value; it must not call Stop.
func New[T comparable](initial T, delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		input: initial,
		value: initial,
		emit:  emit,
	}
}

// Set records a new input and restarts the quiet period. Setting the current
// input again does nothing.
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped || v == d.input {
		return
	}
	d.input = v
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.emitMu.Lock()
	defer d.emitMu.Unlock()

	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	changed := d.value != d.input
	d.value = d.input
	v := d.value
	d.mu.Unlock()

	if changed && d.emit != nil {
		d.emit(v)
	}
}

// Value returns the last settled value.
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Pending reports whether an input is waiting for its quiet period to end.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop cancels any pending timer. Once Stop returns nothing is emitted.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	// Wait out an emission that passed its check before stopped was set.
	d.emitMu.Lock()
	d.emitMu.Unlock()
}
