package clock

import (
	"fmt"
	"time"
)

// DefaultTickRate is the simulation rate in ticks per second.
const DefaultTickRate = 120

// DefaultMaxTicksPerFrame bounds catch-up after a stalled frame.
const DefaultMaxTicksPerFrame = 10

// Clock converts irregular frame deltas into whole fixed ticks.
// Leftover time below one tick stays in the accumulator and is exposed as the
// interpolation fraction for rendering.
type Clock struct {
	tick     time.Duration
	maxTicks int // 0 = unbounded catch-up
	accum    time.Duration
	dropped  uint64
}

// New creates a clock with the given tick length. maxTicksPerFrame <= 0
// disables the catch-up cap.
func New(tick time.Duration, maxTicksPerFrame int) *Clock {
	if tick <= 0 {
		panic(fmt.Sprintf("clock: tick duration must be positive, got %s", tick))
	}
	if maxTicksPerFrame < 0 {
		maxTicksPerFrame = 0
	}
	return &Clock{tick: tick, maxTicks: maxTicksPerFrame}
}

// FromRate creates a clock ticking rate times per second.
// The tick length is truncated to whole nanoseconds.
func FromRate(rate int, maxTicksPerFrame int) *Clock {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return New(time.Second/time.Duration(rate), maxTicksPerFrame)
}

func (c *Clock) Tick() time.Duration { return c.tick }

// TickSeconds is the tick length as a float for integration.
func (c *Clock) TickSeconds() float32 { return float32(c.tick.Seconds()) }

// Pending is the time accumulated but not yet consumed by a tick.
func (c *Clock) Pending() time.Duration { return c.accum }

// Dropped counts whole ticks discarded by the catch-up cap.
func (c *Clock) Dropped() uint64 { return c.dropped }

// Accumulate adds a frame delta. Negative deltas (clock going backwards) are ignored.
func (c *Clock) Accumulate(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}
	c.accum += elapsed
}

// CatchUp runs step once per whole tick in the accumulator and returns the
// number of ticks run. When the cap is hit, remaining whole ticks are dropped
// and only the sub-tick remainder is kept, so a long stall cannot snowball
// into ever longer frames.
func (c *Clock) CatchUp(step func()) int {
	n := 0
	for c.accum >= c.tick {
		if c.maxTicks > 0 && n >= c.maxTicks {
			skipped := c.accum / c.tick
			c.dropped += uint64(skipped)
			c.accum -= skipped * c.tick
			break
		}
		step()
		c.accum -= c.tick
		n++
	}
	return n
}

// Fraction is how far the simulation is into the next tick, in [0, 1).
func (c *Clock) Fraction() float32 {
	return float32(float64(c.accum) / float64(c.tick))
}
