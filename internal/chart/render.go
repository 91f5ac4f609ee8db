package chart

import (
	"fmt"
	"math"
)

// startAngle is 12 o'clock.
const startAngle = -math.Pi / 2

// ringRadius returns the drawing radius of ring i, recomputed from the
// ordered config list.
func ringRadius(opts *Options, rings []RingConfig, i int) float64 {
	r := opts.BaseRadius
	for j := 0; j < i && j < len(rings); j++ {
		r += rings[j].Thickness + opts.Gap
	}
	return r
}

// outerRadius is the radius just past the outermost ring.
func outerRadius(opts *Options, rings []RingConfig) float64 {
	return ringRadius(opts, rings, len(rings))
}

// extent is the half-size of the square the chart paints in.
func extent(opts *Options, rings []RingConfig) float64 {
	r := outerRadius(opts, rings) + opts.BackgroundPadding
	for i, ring := range rings {
		if edge := ringRadius(opts, rings, i) + ring.Thickness/2; edge > r {
			r = edge
		}
	}
	// antialiased edges spill one unit
	return r + 1
}

// clearSquare clears the square of half-size e around the centre.
func clearSquare(s Surface, opts *Options, e float64) {
	s.ClearRect(opts.CX-e, opts.CY-e, 2*e, 2*e)
}

func drawBackground(s Surface, opts *Options, rings []RingConfig) {
	s.FillCircle(opts.CX, opts.CY, outerRadius(opts, rings)+opts.BackgroundPadding, opts.Background)
}

func drawRing(s Surface, opts *Options, ring RingConfig, percent, radius float64) {
	s.StrokeArc(opts.CX, opts.CY, radius, 0, 2*math.Pi, ring.Thickness, opts.Track, false)

	if percent <= 0 {
		return
	}
	end := startAngle + percent*2*math.Pi
	s.StrokeArc(opts.CX, opts.CY, radius, startAngle, end, ring.Thickness, ring.Color, true)
}

func drawPercent(s Surface, opts *Options, percent float64) {
	ts, ok := s.(TextSurface)
	if !ok {
		return
	}
	ts.DrawText(fmt.Sprintf("%d%%", int(math.Round(percent*100))), opts.CX, opts.CY, opts.Text)
}
