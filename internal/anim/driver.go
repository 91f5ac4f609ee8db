package anim

import (
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// Driver owns a set of channels and advances them one frame at a time until
// all of them settle. Not safe for concurrent use: SetValues and frame
// callbacks must run on the host's loop goroutine.
type Driver struct {
	channels []*Channel
	duration time.Duration

	clock  Clock
	sched  Scheduler
	render func()
	logger *slog.Logger

	// in-flight frame token; gen invalidates a request dropped by Stop
	scheduled bool
	gen       uint64
	frames    uint64
}

// NewDriver builds a driver. render is called once per frame after every
// channel has been advanced to the frame timestamp.
func NewDriver(clock Clock, sched Scheduler, duration time.Duration, render func(), logger *slog.Logger) *Driver {
	if clock == nil {
		clock = SystemClock{}
	}
	if render == nil {
		render = func() {}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Driver{
		duration: duration,
		clock:    clock,
		sched:    sched,
		render:   render,
		logger:   logger,
	}
}

// Add appends a channel and returns its index.
func (d *Driver) Add(ch *Channel) int {
	d.channels = append(d.channels, ch)
	return len(d.channels) - 1
}

// Remove drops the channel at index i; later channels shift down.
func (d *Driver) Remove(i int) error {
	if i < 0 || i >= len(d.channels) {
		return errors.Errorf("channel index %d out of range [0,%d)", i, len(d.channels))
	}
	d.channels = append(d.channels[:i], d.channels[i+1:]...)
	return nil
}

func (d *Driver) Len() int               { return len(d.channels) }
func (d *Driver) Channel(i int) *Channel { return d.channels[i] }

// Duration is the time a full interpolation takes.
func (d *Driver) Duration() time.Duration { return d.duration }

// Running reports whether a frame is currently scheduled.
func (d *Driver) Running() bool { return d.scheduled }

// Frames returns how many frames have been rendered.
func (d *Driver) Frames() uint64 { return d.frames }

// SetValues retargets channel i to values[i] for every index both sides have.
// Extra values are ignored and channels without a value keep their target.
func (d *Driver) SetValues(values []float64) {
	now := d.clock.Now()
	for i, v := range values {
		if i >= len(d.channels) {
			break
		}
		d.channels[i].SetTarget(v, now)
	}
	d.kick()
}

// Stop drops the pending frame request. Channels keep the values they were
// last rendered with.
func (d *Driver) Stop() {
	if !d.scheduled {
		return
	}
	d.gen++
	d.scheduled = false
	d.logger.Debug("animation stopped", "frames", d.frames)
}

func (d *Driver) kick() {
	if d.scheduled {
		return
	}
	d.request()
}

func (d *Driver) request() {
	d.scheduled = true
	gen := d.gen
	d.sched.RequestFrame(func(now time.Time) {
		if gen != d.gen {
			return
		}
		d.frame(now)
	})
}

func (d *Driver) frame(now time.Time) {
	d.scheduled = false

	for _, ch := range d.channels {
		ch.Advance(now, d.duration)
	}
	d.render()
	d.frames++

	for _, ch := range d.channels {
		if !ch.Settled() {
			d.request()
			return
		}
	}
	d.logger.Debug("animation settled", "channels", len(d.channels), "frames", d.frames)
}
