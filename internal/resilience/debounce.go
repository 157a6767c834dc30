package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Pending is the shared outcome of a debounced call. Every caller of Execute inside one window
// receives the same Pending.
type Pending[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Done is closed once the debounced call has run. It stays open forever after Clear.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call settles or ctx is done
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.val, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

type entry[T any] struct {
	timer   *time.Timer
	fn      func() (T, error)
	pending *Pending[T]
}

// Debouncer coalesces calls per key so that only the last one inside the delay window runs
type Debouncer[T any] struct {
	mu       sync.Mutex
	triggers map[string]*time.Timer
	entries  map[string]*entry[T]
}

// NewDebouncer creates an empty debouncer
func NewDebouncer[T any]() *Debouncer[T] {
	return &Debouncer[T]{
		triggers: make(map[string]*time.Timer),
		entries:  make(map[string]*entry[T]),
	}
}

// Debounce returns a trigger that restarts key's timer on every call; fn runs once the trigger
// has been quiet for delay.
func (d *Debouncer[T]) Debounce(key string, fn func(), delay time.Duration) func() {
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()

		if t, ok := d.triggers[key]; ok {
			t.Stop()
		}
		var t *time.Timer
		t = time.AfterFunc(delay, func() {
			d.mu.Lock()
			if d.triggers[key] != t {
				d.mu.Unlock()
				return
			}
			delete(d.triggers, key)
			d.mu.Unlock()
			fn()
		})
		d.triggers[key] = t
	}
}

// Execute schedules fn under key after delay. Calls made before the timer fires restart it,
// replace fn and return the same Pending, so the latest fn runs once for all callers.
func (d *Debouncer[T]) Execute(key string, fn func() (T, error), delay time.Duration) *Pending[T] {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[key]
	if ok {
		e.timer.Stop()
		e.fn = fn
	} else {
		e = &entry[T]{fn: fn, pending: &Pending[T]{done: make(chan struct{})}}
		d.entries[key] = e
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		d.mu.Lock()
		if cur, ok := d.entries[key]; !ok || cur != e || e.timer != t {
			d.mu.Unlock()
			return
		}
		delete(d.entries, key)
		run := e.fn
		d.mu.Unlock()

		e.pending.val, e.pending.err = call(run)
		close(e.pending.done)
	})
	e.timer = t

	return e.pending
}

// Clear cancels key's timers. A Pending handed out for key is dropped without ever settling.
func (d *Debouncer[T]) Clear(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.triggers[key]; ok {
		t.Stop()
		delete(d.triggers, key)
	}
	if e, ok := d.entries[key]; ok {
		e.timer.Stop()
		delete(d.entries, key)
	}
}

func call[T any](fn func() (T, error)) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("debounced call panicked: %v", r)
		}
	}()
	return fn()
}
