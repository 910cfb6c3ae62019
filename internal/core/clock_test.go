package core

import (
	"errors"
	"testing"
)

func TestClockTicks(t *testing.T) {
	c := NewClock(60)

	tests := []struct {
		seconds  float64
		expected uint64
	}{
		{1.25, 75},
		{1.0, 60},
		{0.1, 6},
		{0.001, 1}, // never zero
		{0, 1},
	}

	for _, tc := range tests {
		if got := c.Ticks(tc.seconds); got != tc.expected {
			t.Errorf("Ticks(%f) = %d, expected %d", tc.seconds, got, tc.expected)
		}
	}
}

func TestClockEveryNoDrift(t *testing.T) {
	c := NewClock(60)

	var fired []uint64
	c.Every(1.25, func() error {
		fired = append(fired, c.Now())
		return nil
	})

	for i := 0; i < 75*10; i++ {
		if err := c.Advance(); err != nil {
			t.Fatalf("Advance() failed: %v", err)
		}
	}

	if len(fired) != 10 {
		t.Fatalf("Expected 10 firings in 750 ticks, got %d", len(fired))
	}
	for i, tick := range fired {
		if expected := uint64(75 * (i + 1)); tick != expected {
			t.Errorf("Firing %d at tick %d, expected %d", i, tick, expected)
		}
	}
}

func TestClockSelfCancelFiresOnce(t *testing.T) {
	c := NewClock(60)
	count := 0
	var id TimerID
	id = c.Every(0.5, func() error {
		count++
		c.Cancel(id)
		return nil
	})

	for i := 0; i < 120; i++ {
		c.Advance()
	}

	if count != 1 {
		t.Errorf("One-shot timer fired %d times, expected 1", count)
	}
	if c.Pending(id) {
		t.Error("One-shot timer should not be pending after firing")
	}
}

func TestClockCancel(t *testing.T) {
	c := NewClock(60)
	count := 0
	id := c.Every(0.1, func() error {
		count++
		return nil
	})

	for i := 0; i < 6; i++ {
		c.Advance()
	}
	if count != 1 {
		t.Fatalf("Expected 1 firing before cancel, got %d", count)
	}

	if !c.Cancel(id) {
		t.Error("Cancel() of a live timer should return true")
	}
	if c.Cancel(id) {
		t.Error("Second Cancel() should return false")
	}

	for i := 0; i < 60; i++ {
		c.Advance()
	}
	if count != 1 {
		t.Errorf("Cancelled timer fired, count = %d", count)
	}
}

func TestClockCancelWithinSameTick(t *testing.T) {
	c := NewClock(60)
	var second TimerID
	secondFired := false

	c.Every(0.5, func() error {
		c.Cancel(second)
		return nil
	})
	second = c.Every(0.5, func() error {
		secondFired = true
		return nil
	})

	for i := 0; i < 30; i++ {
		c.Advance()
	}
	if secondFired {
		t.Error("Timer cancelled by an earlier callback in the same tick should not fire")
	}
}

func TestClockCallbackError(t *testing.T) {
	c := NewClock(60)
	boom := errors.New("boom")
	c.Every(1.0/60, func() error { return boom })

	if err := c.Advance(); !errors.Is(err, boom) {
		t.Errorf("Advance() error = %v, expected boom", err)
	}
}

func TestClockDefaults(t *testing.T) {
	c := NewClock(0)
	if c.TickRate() != 60 {
		t.Errorf("TickRate() = %d, expected fallback 60", c.TickRate())
	}
	if c.Dt() != 1.0/60 {
		t.Errorf("Dt() = %f, expected 1/60", c.Dt())
	}
	for i := 0; i < 30; i++ {
		c.Advance()
	}
	if c.Seconds() != 0.5 {
		t.Errorf("Seconds() = %f, expected 0.5", c.Seconds())
	}
}
