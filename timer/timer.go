// Package timer provides the monotonic stopwatch every checker uses to
// measure how long a condition has held.
package timer

import "time"

// Timer is a start/stop/elapsed-seconds stopwatch backed by the
// monotonic clock (time.Now already returns a monotonic reading on every
// platform Go supports; no wall-clock adjustment ever leaks in).
type Timer struct {
	start   time.Time
	stop    time.Time
	stopped bool
}

// New returns a Timer already running, since every checker starts its
// clock the moment it is configured.
func New() *Timer {
	t := &Timer{}
	t.Start()
	return t
}

// Start records now as t0 and clears any previous stop mark.
func (t *Timer) Start() {
	t.start = time.Now()
	t.stopped = false
}

// Stop records now as t1. It can be called repeatedly; each call moves
// t1 forward to the current now without touching t0, so a checker that
// calls Stop on every tick while a condition holds effectively samples
// elapsed time tick by tick. Elapsed stops advancing only in the gap
// between the last Stop call and a later read — the stuck-ball checker
// leans on this to sample rather than continuously track elapsed time.
func (t *Timer) Stop() {
	t.stop = time.Now()
	t.stopped = true
}

// Elapsed returns the duration between t0 and either t1 (if stopped) or
// now.
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.stop.Sub(t.start)
	}
	return time.Since(t.start)
}

// ElapsedSeconds is Elapsed as a float64 second count, the unit every
// checker threshold is expressed in.
func (t *Timer) ElapsedSeconds() float64 {
	return t.Elapsed().Seconds()
}
