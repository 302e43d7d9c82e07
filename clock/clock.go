package clock

import "time"

// Timer is a scheduled callback that can be cancelled before it fires
type Timer interface {
	// Stop cancels the timer, returns false if it already fired or was stopped
	Stop() bool
}

// Clock provides time readings and one-shot scheduled callbacks
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

// Real provides the system time with monotonic clock readings
// Callbacks run on their own goroutine, callers needing serialization wrap it
type Real struct{}

// NewReal creates a system clock
func NewReal() *Real {
	return &Real{}
}

// Now returns the current time with monotonic clock reading
func (Real) Now() time.Time {
	return time.Now()
}

// AfterFunc schedules fn after d using the runtime timer
func (Real) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Dispatching routes timer callbacks through post, usually a single-threaded loop
type Dispatching struct {
	Base Clock
	Post func(func()) bool
}

// Now returns the base clock time
func (d Dispatching) Now() time.Time {
	return d.Base.Now()
}

// AfterFunc schedules fn on the base clock and hands it to Post when due
func (d Dispatching) AfterFunc(delay time.Duration, fn func()) Timer {
	return d.Base.AfterFunc(delay, func() {
		d.Post(fn)
	})
}
