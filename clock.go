package mist

import "time"

// DefaultMaxFrameDelta bounds one decay step so a long stall (a backgrounded
// window) cannot wipe the trail in a single frame.
const DefaultMaxFrameDelta = 100 * time.Millisecond

// FrameTime is one tick of a FrameClock.
type FrameTime struct {
	// Elapsed is the time since the first tick.
	Elapsed time.Duration
	// Delta is the time since the previous tick, clamped to MaxDelta.
	// Zero on the first tick.
	Delta time.Duration
	// Frame counts ticks, starting at 0.
	Frame uint64
}

// Seconds returns Elapsed in seconds.
func (t FrameTime) Seconds() float64 { return t.Elapsed.Seconds() }

// DeltaSeconds returns Delta in seconds.
func (t FrameTime) DeltaSeconds() float64 { return t.Delta.Seconds() }

// FrameClock is the explicit scheduler for the render loop: it owns the
// start time and turns wall-clock readings into elapsed and clamped delta
// time. Now is injectable for tests.
type FrameClock struct {
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
	// MaxDelta clamps Delta. Zero means DefaultMaxFrameDelta.
	MaxDelta time.Duration

	start   time.Time
	last    time.Time
	frame   uint64
	started bool
}

func (c *FrameClock) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Tick reads the clock once and returns the frame's timing.
func (c *FrameClock) Tick() FrameTime {
	now := c.now()
	if !c.started {
		c.start, c.last, c.started = now, now, true
		return FrameTime{}
	}
	maxDelta := c.MaxDelta
	if maxDelta <= 0 {
		maxDelta = DefaultMaxFrameDelta
	}
	delta := Clamp(now.Sub(c.last), 0, maxDelta)
	c.last = now
	c.frame++
	return FrameTime{
		Elapsed: now.Sub(c.start),
		Delta:   delta,
		Frame:   c.frame,
	}
}

// Reset forgets the start time; the next Tick starts a new timeline.
func (c *FrameClock) Reset() {
	c.started = false
	c.frame = 0
}
