package anim

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidConfiguration is returned when a channel or ring is built with a bad bound.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Channel is a single animated scalar bounded by [0, max].
type Channel struct {
	current float64
	start   float64
	target  float64
	max     float64

	startTime time.Time
}

// NewChannel creates a channel resting at zero.
func NewChannel(max float64) (*Channel, error) {
	if !(max > 0) || math.IsInf(max, 1) {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "channel max must be a positive finite number, got %v", max)
	}
	return &Channel{max: max}, nil
}

// SetTarget starts a new interpolation from the current value toward value.
// Out-of-range values are clamped, never rejected.
func (c *Channel) SetTarget(value float64, now time.Time) {
	c.start = c.current
	c.target = c.clamp(value)
	c.startTime = now
}

// Advance recomputes the current value for now. A non-positive duration jumps
// straight to the target.
func (c *Channel) Advance(now time.Time, duration time.Duration) {
	if c.Settled() {
		return
	}

	t := 1.0
	if duration > 0 {
		t = clamp01(float64(now.Sub(c.startTime)) / float64(duration))
	}

	// t == 1 assigns the target directly so Settled is exact
	if t >= 1 {
		c.current = c.target
		return
	}
	c.current = c.start + (c.target-c.start)*t
}

// Settled reports whether the channel has reached its target.
func (c *Channel) Settled() bool { return c.current == c.target }

func (c *Channel) Value() float64  { return c.current }
func (c *Channel) Target() float64 { return c.target }
func (c *Channel) Start() float64  { return c.start }
func (c *Channel) Max() float64    { return c.max }

// Percent returns the current value as a fraction of max.
func (c *Channel) Percent() float64 { return c.current / c.max }

func (c *Channel) clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > c.max:
		return c.max
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
