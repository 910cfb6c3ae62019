package core

import (
	"math"
	"sort"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

type timer struct {
	id       TimerID
	due      uint64 // Tick at which the callback fires next
	interval uint64 // Ticks between firings
	fn       func() error
}

// Clock is a monotonic game clock counted in whole ticks. Deferred callbacks
// are scheduled in ticks, so intervals never drift against the frame rate:
// 1.25s at 60 ticks/s fires exactly every 75 ticks. Callbacks run synchronously
// inside Advance; there is no goroutine.
type Clock struct {
	tickRate int
	now      uint64
	nextID   TimerID
	timers   []*timer
}

// NewClock creates a clock running at tickRate ticks per second.
// Non-positive rates fall back to 60.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{tickRate: tickRate}
}

// TickRate returns ticks per second.
func (c *Clock) TickRate() int {
	return c.tickRate
}

// Dt returns the duration of one tick in seconds.
func (c *Clock) Dt() float64 {
	return 1.0 / float64(c.tickRate)
}

// Now returns the number of ticks advanced so far.
func (c *Clock) Now() uint64 {
	return c.now
}

// Seconds returns elapsed game time.
func (c *Clock) Seconds() float64 {
	return float64(c.now) / float64(c.tickRate)
}

// Ticks converts seconds to a whole number of ticks (at least 1).
func (c *Clock) Ticks(seconds float64) uint64 {
	n := math.Round(seconds * float64(c.tickRate))
	if n < 1 {
		return 1
	}
	return uint64(n)
}

// Every schedules fn to run every interval seconds, first firing one interval from now.
// Cancel the returned timer from inside fn for a one-shot.
func (c *Clock) Every(seconds float64, fn func() error) TimerID {
	n := c.Ticks(seconds)
	c.nextID++
	c.timers = append(c.timers, &timer{
		id:       c.nextID,
		due:      c.now + n,
		interval: n,
		fn:       fn,
	})
	return c.nextID
}

// Cancel stops a timer. Returns false if it was unknown or already cancelled.
func (c *Clock) Cancel(id TimerID) bool {
	for i, t := range c.timers {
		if t.id == id {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports whether a timer is still scheduled.
func (c *Clock) Pending(id TimerID) bool {
	for _, t := range c.timers {
		if t.id == id {
			return true
		}
	}
	return false
}

// Advance moves the clock one tick forward and runs every callback due at the
// new tick, ordered by due tick then scheduling order. A callback may cancel
// timers, including ones due in the same tick; cancelled timers do not fire.
// The first callback error stops processing and is returned.
func (c *Clock) Advance() error {
	c.now++

	due := make([]*timer, 0, 1)
	for _, t := range c.timers {
		if t.due <= c.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })

	for _, t := range due {
		if !c.Pending(t.id) {
			continue
		}
		t.due += t.interval
		if err := t.fn(); err != nil {
			return err
		}
	}
	return nil
}
