package chart

import "image/color"

// Surface is the minimal 2D drawing context a chart paints on. Angles are in
// radians, measured clockwise from the positive x axis (y grows downward).
type Surface interface {
	ClearRect(x, y, w, h float64)
	FillRect(x, y, w, h float64, clr color.RGBA)
	FillCircle(cx, cy, r float64, clr color.RGBA)
	StrokeArc(cx, cy, r, start, end, width float64, clr color.RGBA, roundCap bool)
}

// TextSurface is implemented by surfaces that can also print a short label.
type TextSurface interface {
	Surface
	DrawText(s string, cx, cy float64, clr color.RGBA)
}
