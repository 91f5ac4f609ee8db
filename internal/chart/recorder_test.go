package chart

import (
	"fmt"
	"image/color"
)

type op struct {
	kind              string
	x, y, w, h, r     float64
	start, end, width float64
	clr               color.RGBA
	roundCap          bool
	text              string
}

// recorder is a TextSurface that keeps every call, split into frames at each ClearRect.
type recorder struct {
	frames [][]op
}

func (r *recorder) push(o op) {
	if len(r.frames) == 0 {
		r.frames = append(r.frames, nil)
	}
	last := len(r.frames) - 1
	r.frames[last] = append(r.frames[last], o)
}

func (r *recorder) ClearRect(x, y, w, h float64) {
	r.frames = append(r.frames, nil)
	r.push(op{kind: "clear", x: x, y: y, w: w, h: h})
}

func (r *recorder) FillRect(x, y, w, h float64, clr color.RGBA) {
	r.push(op{kind: "rect", x: x, y: y, w: w, h: h, clr: clr})
}

func (r *recorder) FillCircle(cx, cy, radius float64, clr color.RGBA) {
	r.push(op{kind: "disc", x: cx, y: cy, r: radius, clr: clr})
}

func (r *recorder) StrokeArc(cx, cy, radius, start, end, width float64, clr color.RGBA, roundCap bool) {
	r.push(op{kind: "arc", x: cx, y: cy, r: radius, start: start, end: end, width: width, clr: clr, roundCap: roundCap})
}

func (r *recorder) DrawText(s string, cx, cy float64, clr color.RGBA) {
	r.push(op{kind: "text", x: cx, y: cy, text: s, clr: clr})
}

func (r *recorder) lastFrame() []op {
	if len(r.frames) == 0 {
		return nil
	}
	return r.frames[len(r.frames)-1]
}

func (o op) String() string {
	return fmt.Sprintf("%s r=%.1f %.3f..%.3f w=%.1f", o.kind, o.r, o.start, o.end, o.width)
}
