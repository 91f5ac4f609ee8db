package chart

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/iburimskiy/radial-progress/internal/anim"
)

// DefaultGap is the spacing between neighbouring rings.
const DefaultGap = 6

// RingConfig describes how one ring looks. It is copied by AddRing.
type RingConfig struct {
	Color     color.RGBA
	Thickness float64
	Max       float64
	Label     string
}

// Options are chart-wide settings.
type Options struct {
	CX, CY     float64
	BaseRadius float64
	Gap        float64
	Duration   time.Duration

	Background        color.RGBA
	Track             color.RGBA
	Text              color.RGBA
	BackgroundPadding float64

	// ShowPercent prints ring 0's percentage in the centre.
	ShowPercent bool

	Logger *slog.Logger
}

// DefaultOptions returns the look of the reference concentric chart centred at (cx, cy).
func DefaultOptions(cx, cy float64) Options {
	return Options{
		CX:         cx,
		CY:         cy,
		BaseRadius: 70,
		Gap:        DefaultGap,
		Duration:   900 * time.Millisecond,
		Background: color.RGBA{R: 0x02, G: 0x06, B: 0x17, A: 0xff},
		Track:      color.RGBA{R: 20, G: 20, B: 20, A: 20},
		Text:       color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// RingHandle is a read-only view of one ring.
type RingHandle struct {
	chart *Chart
	ch    *anim.Channel
	cfg   RingConfig
}

// Index returns the ring's current stacking position, or -1 once removed.
func (h RingHandle) Index() int {
	for i := 0; i < h.chart.driver.Len(); i++ {
		if h.chart.driver.Channel(i) == h.ch {
			return i
		}
	}
	return -1
}

func (h RingHandle) Value() float64     { return h.ch.Value() }
func (h RingHandle) Target() float64    { return h.ch.Target() }
func (h RingHandle) Percent() float64   { return h.ch.Percent() }
func (h RingHandle) Settled() bool      { return h.ch.Settled() }
func (h RingHandle) Config() RingConfig { return h.cfg }
