package chart

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/anim"
)

var (
	// ErrInvalidConfiguration aliases the channel error so callers need one import.
	ErrInvalidConfiguration = anim.ErrInvalidConfiguration

	ErrNoSurface   = errors.New("chart needs a drawing surface")
	ErrNoScheduler = errors.New("chart needs a frame scheduler")
	ErrRingIndex   = errors.New("ring index out of range")
)

// Chart is a set of concentric progress rings animated toward target values.
// The chart owns its surface; nothing else should draw inside its extent.
type Chart struct {
	surface Surface
	opts    Options
	rings   []RingConfig
	driver  *anim.Driver
	logger  *slog.Logger

	// half-size of the square cleared and painted by the last frame
	painted float64
}

// New creates an empty chart. A missing surface or scheduler is fatal here
// rather than on the first frame.
func New(surface Surface, clock anim.Clock, sched anim.Scheduler, opts Options) (*Chart, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if sched == nil {
		return nil, ErrNoScheduler
	}
	if opts.BaseRadius < 0 || opts.Gap < 0 || opts.BackgroundPadding < 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration,
			"negative geometry: base radius %v, gap %v, padding %v", opts.BaseRadius, opts.Gap, opts.BackgroundPadding)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Chart{
		surface: surface,
		opts:    opts,
		logger:  logger,
	}
	c.driver = anim.NewDriver(clock, sched, opts.Duration, c.draw, logger)
	return c, nil
}

// AddRing appends a ring outside the existing ones. Call order fixes the
// stacking order.
func (c *Chart) AddRing(cfg RingConfig) (RingHandle, error) {
	if !(cfg.Thickness > 0) {
		return RingHandle{}, errors.Wrapf(ErrInvalidConfiguration, "ring thickness must be positive, got %v", cfg.Thickness)
	}
	ch, err := anim.NewChannel(cfg.Max)
	if err != nil {
		return RingHandle{}, errors.Wrapf(err, "ring %d", len(c.rings))
	}

	c.rings = append(c.rings, cfg)
	c.driver.Add(ch)
	c.logger.Debug("ring added", "index", len(c.rings)-1, "max", cfg.Max, "thickness", cfg.Thickness)
	return RingHandle{chart: c, ch: ch, cfg: cfg}, nil
}

// RemoveRing drops ring i and repaints; outer rings move inward and the
// area the removed ring covered is cleared.
func (c *Chart) RemoveRing(i int) error {
	if i < 0 || i >= len(c.rings) {
		return errors.Wrapf(ErrRingIndex, "remove %d of %d", i, len(c.rings))
	}
	if err := c.driver.Remove(i); err != nil {
		return err
	}
	c.rings = append(c.rings[:i], c.rings[i+1:]...)
	c.driver.SetValues(nil)
	return nil
}

// SetValues animates ring i toward values[i]. Extra values are ignored and
// rings without a value keep their target.
func (c *Chart) SetValues(values []float64) {
	c.driver.SetValues(values)
}

// Stop cancels the pending frame; rings stay as last painted.
func (c *Chart) Stop() {
	c.driver.Stop()
}

// Ring returns a view of ring i.
func (c *Chart) Ring(i int) (RingHandle, error) {
	if i < 0 || i >= len(c.rings) {
		return RingHandle{}, errors.Wrapf(ErrRingIndex, "ring %d of %d", i, len(c.rings))
	}
	return RingHandle{chart: c, ch: c.driver.Channel(i), cfg: c.rings[i]}, nil
}

func (c *Chart) Len() int { return len(c.rings) }

// Animating reports whether another frame is scheduled.
func (c *Chart) Animating() bool { return c.driver.Running() }

// Frames returns how many frames the chart has painted.
func (c *Chart) Frames() uint64 { return c.driver.Frames() }

// Extent returns the half-size of the square the chart paints in.
func (c *Chart) Extent() float64 { return extent(&c.opts, c.rings) }

// Options returns the chart-wide settings.
func (c *Chart) Options() Options { return c.opts }

func (c *Chart) draw() {
	e := extent(&c.opts, c.rings)
	clearSquare(c.surface, &c.opts, max(e, c.painted))
	c.painted = e
	drawBackground(c.surface, &c.opts, c.rings)
	for i, ring := range c.rings {
		drawRing(c.surface, &c.opts, ring, c.driver.Channel(i).Percent(), ringRadius(&c.opts, c.rings, i))
	}
	if c.opts.ShowPercent && len(c.rings) > 0 {
		drawPercent(c.surface, &c.opts, c.driver.Channel(0).Percent())
	}
}
