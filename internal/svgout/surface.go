package svgout

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

type element struct {
	// bounding box
	x0, y0, x1, y1 float64
	emit           func(*svg.SVG)
}

// Surface collects chart drawing calls and writes them as one SVG document.
// ClearRect discards every element lying wholly inside the cleared box and
// paints the box with the page colour, so only the latest frame survives.
type Surface struct {
	width, height int
	page          color.RGBA
	elems         []element
}

// NewSurface creates a width x height surface whose cleared areas show page.
func NewSurface(width, height int, page color.RGBA) *Surface {
	return &Surface{width: width, height: height, page: page}
}

// Len returns how many elements would be written.
func (s *Surface) Len() int { return len(s.elems) }

func (s *Surface) ClearRect(x, y, w, h float64) {
	kept := s.elems[:0]
	for _, e := range s.elems {
		if e.x0 >= x && e.y0 >= y && e.x1 <= x+w && e.y1 <= y+h {
			continue
		}
		kept = append(kept, e)
	}
	s.elems = kept
	s.FillRect(x, y, w, h, s.page)
}

func (s *Surface) FillRect(x, y, w, h float64, clr color.RGBA) {
	s.add(x, y, x+w, y+h, func(c *svg.SVG) {
		c.Rect(round(x), round(y), round(w), round(h), fill(clr))
	})
}

func (s *Surface) FillCircle(cx, cy, r float64, clr color.RGBA) {
	s.add(cx-r, cy-r, cx+r, cy+r, func(c *svg.SVG) {
		c.Circle(round(cx), round(cy), round(r), fill(clr))
	})
}

func (s *Surface) StrokeArc(cx, cy, r, start, end, width float64, clr color.RGBA, roundCap bool) {
	half := r + width/2
	style := stroke(clr, width, roundCap)

	if end-start >= 2*math.Pi {
		s.add(cx-half, cy-half, cx+half, cy+half, func(c *svg.SVG) {
			c.Circle(round(cx), round(cy), round(r), style)
		})
		return
	}

	sx, sy := cx+r*math.Cos(start), cy+r*math.Sin(start)
	ex, ey := cx+r*math.Cos(end), cy+r*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	d := fmt.Sprintf("M %.2f %.2f A %.2f %.2f 0 %d 1 %.2f %.2f", sx, sy, r, r, large, ex, ey)
	s.add(cx-half, cy-half, cx+half, cy+half, func(c *svg.SVG) {
		c.Path(d, style)
	})
}

func (s *Surface) DrawText(text string, cx, cy float64, clr color.RGBA) {
	s.add(cx, cy, cx, cy, func(c *svg.SVG) {
		c.Text(round(cx), round(cy), text,
			"text-anchor:middle;dominant-baseline:middle;font:bold 24px monospace;"+fill(clr))
	})
}

// WriteTo writes the collected elements as an SVG document.
func (s *Surface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	c := svg.New(cw)
	c.Start(s.width, s.height)
	c.Rect(0, 0, s.width, s.height, fill(s.page))
	for _, e := range s.elems {
		e.emit(c)
	}
	c.End()
	return cw.n, cw.err
}

func (s *Surface) add(x0, y0, x1, y1 float64, emit func(*svg.SVG)) {
	s.elems = append(s.elems, element{x0: x0, y0: y0, x1: x1, y1: y1, emit: emit})
}

func round(v float64) int { return int(math.Round(v)) }

// straight (non-premultiplied) channels for SVG
func straight(clr color.RGBA) (r, g, b uint8, a float64) {
	if clr.A == 0 {
		return 0, 0, 0, 0
	}
	un := func(v uint8) uint8 { return uint8(math.Min(255, math.Round(float64(v)*255/float64(clr.A)))) }
	return un(clr.R), un(clr.G), un(clr.B), float64(clr.A) / 255
}

func fill(clr color.RGBA) string {
	r, g, b, a := straight(clr)
	return fmt.Sprintf("fill:rgb(%d,%d,%d);fill-opacity:%.3g", r, g, b, a)
}

func stroke(clr color.RGBA, width float64, roundCap bool) string {
	r, g, b, a := straight(clr)
	cp := "butt"
	if roundCap {
		cp = "round"
	}
	return fmt.Sprintf("fill:none;stroke:rgb(%d,%d,%d);stroke-opacity:%.3g;stroke-width:%.2f;stroke-linecap:%s", r, g, b, a, width, cp)
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
