package game

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ebitenSurface paints chart calls onto a persistent offscreen image.
type ebitenSurface struct {
	dst   *ebiten.Image
	white *ebiten.Image

	vs []ebiten.Vertex
	is []uint16
}

func newEbitenSurface(dst *ebiten.Image) *ebitenSurface {
	w := ebiten.NewImage(3, 3)
	w.Fill(color.White)
	return &ebitenSurface{
		dst:   dst,
		white: w.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

func (s *ebitenSurface) ClearRect(x, y, w, h float64) {
	r := image.Rect(int(math.Floor(x)), int(math.Floor(y)), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	r = r.Intersect(s.dst.Bounds())
	if r.Empty() {
		return
	}
	s.dst.SubImage(r).(*ebiten.Image).Clear()
}

func (s *ebitenSurface) FillRect(x, y, w, h float64, clr color.RGBA) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), clr, true)
}

func (s *ebitenSurface) FillCircle(cx, cy, r float64, clr color.RGBA) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), clr, true)
}

func (s *ebitenSurface) StrokeArc(cx, cy, r, start, end, width float64, clr color.RGBA, roundCap bool) {
	if end-start >= 2*math.Pi {
		vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), float32(width), clr, true)
		return
	}

	var p vector.Path
	p.Arc(float32(cx), float32(cy), float32(r), float32(start), float32(end), vector.Clockwise)

	op := &vector.StrokeOptions{Width: float32(width)}
	if roundCap {
		op.LineCap = vector.LineCapRound
	}
	s.vs, s.is = p.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], op)
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = float32(clr.R) / 0xff
		s.vs[i].ColorG = float32(clr.G) / 0xff
		s.vs[i].ColorB = float32(clr.B) / 0xff
		s.vs[i].ColorA = float32(clr.A) / 0xff
	}

	s.dst.DrawTriangles(s.vs, s.is, s.white, &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
	})
}

// DrawText uses the debug font: 6x16 pixel glyphs.
func (s *ebitenSurface) DrawText(text string, cx, cy float64, clr color.RGBA) {
	ebitenutil.DebugPrintAt(s.dst, text, int(cx)-len(text)*3, int(cy)-8)
}
