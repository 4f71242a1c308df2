package clock

import "time"

// Clock allows injecting time into services.
type Clock interface {
	Now() time.Time
}

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	// Stop cancels the timer. It reports false when the callback already
	// fired or was stopped; callers must not rely on Stop to undo a
	// callback that is concurrently running.
	Stop() bool
}

// Scheduler runs a function once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

type systemScheduler struct{}

// NewSystemScheduler returns a scheduler backed by time.AfterFunc.
func NewSystemScheduler() Scheduler {
	return systemScheduler{}
}

func (systemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
