// Package mainloop runs every mutation of the entity graph on one goroutine.
//
// Background work (timers, network receivers, imports) never touches the graph
// directly: it posts a function and the loop runs it in arrival order.
package mainloop

import (
	"context"
	"errors"
	"sync"
)

var ErrStopped = errors.New("main loop stopped")

type Loop struct {
	queue chan func()

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

func New(buffer int) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	return &Loop{queue: make(chan func(), buffer), done: make(chan struct{})}
}

// Post schedules fn. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	stopped := l.stopped
	l.mu.Unlock()
	if stopped {
		return false
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	res := make(chan error, 1)
	if !l.Post(func() { res <- fn() }) {
		return ErrStopped
	}
	select {
	case err := <-res:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		// The loop drains what was queued before exiting.
		select {
		case err := <-res:
			return err
		default:
			return ErrStopped
		}
	}
}

// Run executes posted functions until ctx is cancelled or Stop is called.
// Functions already queued when the loop stops still run.
func (l *Loop) Run(ctx context.Context) error {
	defer l.drain()
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}
	l.stopped = true
	close(l.done)
}

func (l *Loop) drain() {
	l.Stop()
	for {
		select {
		case fn := <-l.queue:
			fn()
		default:
			return
		}
	}
}
