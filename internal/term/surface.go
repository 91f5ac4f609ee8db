package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	bg   color.RGBA
	ch   rune
	fg   color.RGBA
	text bool
}

// Surface rasterises chart drawing calls into terminal cells. Chart space is
// centred on the middle cell; one cell is cellW x cellH chart units, with
// cells twice as tall as they are wide.
type Surface struct {
	cols, rows   int
	cellW, cellH float64
	cells        []cell
}

// NewSurface creates a cols x rows surface with unit-width cells.
func NewSurface(cols, rows int) *Surface {
	s := &Surface{}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid size and clears it.
func (s *Surface) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s.cols, s.rows = cols, rows
	s.cells = make([]cell, cols*rows)
	if s.cellW == 0 {
		s.cellW, s.cellH = 1, 2
	}
}

// Fit scales cells so a square of half-size extent around the origin fills
// the grid.
func (s *Surface) Fit(extent float64) {
	if extent <= 0 {
		return
	}
	w := 2 * extent / float64(s.cols)
	h := 2 * extent / float64(s.rows)
	// keep the 1:2 cell aspect and let the tighter axis win
	w = math.Max(w, h/2)
	s.cellW, s.cellH = w, 2*w
}

func (s *Surface) Size() (int, int) { return s.cols, s.rows }

// center returns the chart-space centre of a cell.
func (s *Surface) center(col, row int) (float64, float64) {
	x := (float64(col) + 0.5 - float64(s.cols)/2) * s.cellW
	y := (float64(row) + 0.5 - float64(s.rows)/2) * s.cellH
	return x, y
}

// span returns the cell range covering a chart-space box.
func (s *Surface) span(x0, y0, x1, y1 float64) (c0, r0, c1, r1 int) {
	c0 = int(math.Floor(x0/s.cellW + float64(s.cols)/2))
	c1 = int(math.Ceil(x1/s.cellW + float64(s.cols)/2))
	r0 = int(math.Floor(y0/s.cellH + float64(s.rows)/2))
	r1 = int(math.Ceil(y1/s.cellH + float64(s.rows)/2))
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, s.cols-1), min(r1, s.rows-1)
	return
}

func (s *Surface) each(x0, y0, x1, y1 float64, fn func(c *cell, x, y float64)) {
	c0, r0, c1, r1 := s.span(x0, y0, x1, y1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			x, y := s.center(col, row)
			fn(&s.cells[row*s.cols+col], x, y)
		}
	}
}

func (s *Surface) ClearRect(x, y, w, h float64) {
	s.each(x, y, x+w, y+h, func(c *cell, cx, cy float64) {
		if cx >= x && cx <= x+w && cy >= y && cy <= y+h {
			*c = cell{}
		}
	})
}

func (s *Surface) FillRect(x, y, w, h float64, clr color.RGBA) {
	s.each(x, y, x+w, y+h, func(c *cell, cx, cy float64) {
		if cx >= x && cx <= x+w && cy >= y && cy <= y+h {
			c.bg = over(clr, c.bg)
		}
	})
}

func (s *Surface) FillCircle(cx, cy, r float64, clr color.RGBA) {
	s.each(cx-r, cy-r, cx+r, cy+r, func(c *cell, x, y float64) {
		if math.Hypot(x-cx, y-cy) <= r {
			c.bg = over(clr, c.bg)
		}
	})
}

func (s *Surface) StrokeArc(cx, cy, r, start, end, width float64, clr color.RGBA, roundCap bool) {
	half := width / 2
	full := end-start >= 2*math.Pi
	sx, sy := cx+r*math.Cos(start), cy+r*math.Sin(start)
	ex, ey := cx+r*math.Cos(end), cy+r*math.Sin(end)

	s.each(cx-r-half, cy-r-half, cx+r+half, cy+r+half, func(c *cell, x, y float64) {
		d := math.Hypot(x-cx, y-cy)
		hit := false
		if math.Abs(d-r) <= half {
			hit = full || angleWithin(math.Atan2(y-cy, x-cx), start, end)
		}
		if !hit && roundCap && !full {
			hit = math.Hypot(x-sx, y-sy) <= half || math.Hypot(x-ex, y-ey) <= half
		}
		if hit {
			c.bg = over(clr, c.bg)
		}
	})
}

// DrawText writes s centred on (cx, cy), keeping the background underneath.
func (s *Surface) DrawText(text string, cx, cy float64, clr color.RGBA) {
	runes := []rune(text)
	col := int(math.Floor(cx/s.cellW+float64(s.cols)/2)) - len(runes)/2
	row := int(math.Floor(cy/s.cellH + float64(s.rows)/2))
	if row < 0 || row >= s.rows {
		return
	}
	for i, r := range runes {
		if c := col + i; c >= 0 && c < s.cols {
			cl := &s.cells[row*s.cols+c]
			cl.ch, cl.fg, cl.text = r, clr, true
		}
	}
}

// At returns the background colour and rune of a cell.
func (s *Surface) At(col, row int) (color.RGBA, rune) {
	c := s.cells[row*s.cols+col]
	return c.bg, c.ch
}

// Show copies the grid onto screen. It does not call screen.Show.
func (s *Surface) Show(screen tcell.Screen) {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			c := s.cells[row*s.cols+col]
			style := tcell.StyleDefault
			if c.bg.A > 0 {
				style = style.Background(toTcell(c.bg))
			}
			ch := ' '
			if c.text {
				ch = c.ch
				style = style.Foreground(toTcell(c.fg)).Bold(true)
			}
			screen.SetContent(col, row, ch, nil, style)
		}
	}
}

// angleWithin reports whether a lies on the clockwise sweep start..end.
func angleWithin(a, start, end float64) bool {
	sweep := end - start
	if sweep <= 0 {
		return false
	}
	rel := math.Mod(a-start, 2*math.Pi)
	if rel < 0 {
		rel += 2 * math.Pi
	}
	return rel <= sweep
}

// over composites premultiplied src over dst.
func over(src, dst color.RGBA) color.RGBA {
	k := 1 - float64(src.A)/255
	mix := func(s, d uint8) uint8 { return uint8(math.Min(255, float64(s)+float64(d)*k+0.5)) }
	return color.RGBA{R: mix(src.R, dst.R), G: mix(src.G, dst.G), B: mix(src.B, dst.B), A: mix(src.A, dst.A)}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
