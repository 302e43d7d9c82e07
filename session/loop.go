package session

import (
	"context"
	"sync"
)

// Loop runs posted tasks one at a time on a single goroutine
// Every handler runs to completion before the next starts, nothing interleaves
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop with the given queue capacity
func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn, returns false once the loop has stopped
// Must not be called from a loop task when the queue may be full
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Call runs fn on the loop and waits for it, returns false if it never ran
// Must not be called from a loop task
func (l *Loop) Call(fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}

	select {
	case <-finished:
		return true
	case <-l.done:
		// The task may have been the last one executed before shutdown
		select {
		case <-finished:
			return true
		default:
			return false
		}
	}
}

// Run executes tasks until ctx is cancelled, queued tasks are dropped
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Done is closed when the loop stops
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) stop() {
	l.doneOnce.Do(func() {
		close(l.done)
	})
}
