package app

import (
	"time"
)

// TickLimiter paces the loop at a fixed number of ticks per second
type TickLimiter struct {
	target time.Duration
	next   time.Time
}

// NewTickLimiter creates a limiter for rate ticks per second; rate <= 0 disables pacing
func NewTickLimiter(rate int) *TickLimiter {
	l := &TickLimiter{}
	if rate > 0 {
		l.target = time.Second / time.Duration(rate)
	}
	return l
}

// Interval returns the target time between ticks
func (l *TickLimiter) Interval() time.Duration {
	return l.target
}

// Wait blocks until the next tick is due.
// Uses a hybrid sleep/spin approach for better precision.
func (l *TickLimiter) Wait() {
	if l.target <= 0 {
		l.next = time.Time{}
		return
	}

	if l.next.IsZero() {
		l.next = time.Now().Add(l.target)
	} else {
		l.next = l.next.Add(l.target)
	}

	for {
		remaining := time.Until(l.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// busy-wait for the final few microseconds
		if time.Until(l.next) <= 0 {
			break
		}
	}

	// If we're significantly late (e.g., hitch), resync to avoid drift
	if late := -time.Until(l.next); late > l.target {
		l.next = time.Now().Add(l.target)
	}
}
