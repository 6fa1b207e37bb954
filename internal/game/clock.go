package game

import (
	"context"
	"time"
)

// Clock reports the time that passed during a frame. The episode loop adds it
// to the level timer.
type Clock interface {
	// Reset restarts measurement at the start of a level.
	Reset()
	// Elapsed returns the time since the previous call or Reset.
	Elapsed() time.Duration
}

// FixedClock advances by a constant step per frame. It drives simulated
// episodes, which run as fast as the caller steps them.
type FixedClock struct {
	Step time.Duration
}

// NewFixedClock returns a clock that advances 1/fps seconds per frame.
func NewFixedClock(fps float64) *FixedClock {
	return &FixedClock{Step: time.Duration(float64(time.Second) / fps)}
}

// Reset is a no-op.
func (c *FixedClock) Reset() {}

// Elapsed returns the fixed step.
func (c *FixedClock) Elapsed() time.Duration { return c.Step }

// WallClock measures real elapsed time and paces interactive play.
type WallClock struct {
	interval time.Duration
	now      func() time.Time
	last     time.Time
	ticker   *time.Ticker
}

// NewWallClock returns a clock paced at fps frames per second.
func NewWallClock(fps float64) *WallClock {
	c := &WallClock{
		interval: time.Duration(float64(time.Second) / fps),
		now:      time.Now,
	}
	c.last = c.now()
	return c
}

// Interval returns the frame interval.
func (c *WallClock) Interval() time.Duration { return c.interval }

// Reset restarts measurement from now.
func (c *WallClock) Reset() {
	c.last = c.now()
}

// Elapsed returns the real time since the previous call or Reset.
func (c *WallClock) Elapsed() time.Duration {
	now := c.now()
	d := now.Sub(c.last)
	c.last = now
	return d
}

// Wait blocks until the next frame boundary or until ctx is done.
func (c *WallClock) Wait(ctx context.Context) error {
	if c.ticker == nil {
		c.ticker = time.NewTicker(c.interval)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ticker.C:
		return nil
	}
}

// Stop releases the pacing ticker.
func (c *WallClock) Stop() {
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}
