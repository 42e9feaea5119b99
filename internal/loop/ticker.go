// Package loop provides a fixed-timestep ticker driven by a monotonic clock.
//
// The host calls Due as often as it likes; the ticker accumulates elapsed
// time and reports how many whole ticks are owed, so simulation results do
// not depend on host scheduling jitter.
package loop

import "time"

// Clock supplies the current time. Readings must be monotonic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, which carries a monotonic reading.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ManualClock is a clock advanced by hand, for tests and headless runs.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the clock's current reading.
func (c *ManualClock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// Ticker converts elapsed time into a count of fixed-length ticks.
type Ticker struct {
	interval   time.Duration
	maxCatchUp int
	running    bool
	last       time.Time
	acc        time.Duration
}

// NewTicker creates a stopped ticker. maxCatchUp bounds how many ticks a
// single Due call may report; anything beyond is dropped.
func NewTicker(interval time.Duration, maxCatchUp int) *Ticker {
	if maxCatchUp < 1 {
		maxCatchUp = 1
	}
	return &Ticker{
		interval:   interval,
		maxCatchUp: maxCatchUp,
	}
}

// Start begins accumulating time from now. Starting a running ticker is a
// no-op and returns false.
func (t *Ticker) Start(now time.Time) bool {
	if t.running {
		return false
	}
	t.running = true
	t.last = now
	t.acc = 0
	return true
}

// Stop halts the ticker and discards any partial tick. Stopping a stopped
// ticker is a no-op and returns false.
func (t *Ticker) Stop() bool {
	if !t.running {
		return false
	}
	t.running = false
	t.acc = 0
	return true
}

// Running reports whether the ticker is started.
func (t *Ticker) Running() bool {
	return t.running
}

// Interval returns the tick length.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Due returns the number of ticks owed since the previous call.
func (t *Ticker) Due(now time.Time) int {
	if !t.running {
		return 0
	}
	if elapsed := now.Sub(t.last); elapsed > 0 {
		t.acc += elapsed
	}
	t.last = now

	n := int(t.acc / t.interval)
	if n > t.maxCatchUp {
		// Too far behind: run the cap and forget the rest instead of spiraling.
		t.acc = 0
		return t.maxCatchUp
	}
	t.acc -= time.Duration(n) * t.interval
	return n
}
