package svgout

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/iburimskiy/radial-progress/internal/config"
)

var page = color.RGBA{R: 2, G: 6, B: 23, A: 255}

func TestSurfaceClearDropsCoveredElements(t *testing.T) {
	s := NewSurface(200, 200, page)
	s.FillCircle(100, 100, 50, color.RGBA{255, 0, 0, 255})
	s.FillCircle(10, 10, 5, color.RGBA{0, 255, 0, 255})

	s.ClearRect(40, 40, 120, 120)
	// the small circle survives, the big one is replaced by the clear rect
	if s.Len() != 2 {
		t.Fatalf("Expected 2 elements after clear, got %d", s.Len())
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "rgb(255,0,0)") {
		t.Error("Expected the cleared circle to be gone")
	}
	if !strings.Contains(out, "rgb(0,255,0)") {
		t.Error("Expected the uncovered circle to remain")
	}
}

func TestSurfaceArcs(t *testing.T) {
	s := NewSurface(100, 100, page)
	s.StrokeArc(50, 50, 20, 0, 2*math.Pi, 4, color.RGBA{20, 20, 20, 20}, false)
	s.StrokeArc(50, 50, 20, -math.Pi/2, math.Pi/2, 4, color.RGBA{0, 0, 255, 255}, true)
	s.StrokeArc(50, 50, 20, -math.Pi/2, math.Pi, 4, color.RGBA{0, 0, 255, 255}, true)

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "rgb(255,255,255);stroke-opacity:0.0784") {
		t.Errorf("Expected un-premultiplied white track, got %s", out)
	}
	if !strings.Contains(out, "M 50.00 30.00 A 20.00 20.00 0 0 1 50.00 70.00") {
		t.Errorf("Expected half arc path, got %s", out)
	}
	if !strings.Contains(out, "0 1 1 30.00 50.00") {
		t.Errorf("Expected large-arc flag for a 270 degree sweep, got %s", out)
	}
	if !strings.Contains(out, "stroke-linecap:round") {
		t.Error("Expected round caps on foreground arcs")
	}
}

func TestRender(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer

	frames, err := Render(&buf, cfg, []float64{45, 55, 65, 75}, 400, 400, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	// 900ms at 60fps
	if frames < 50 || frames > 60 {
		t.Errorf("Expected about 54 frames, got %d", frames)
	}

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") || !strings.Contains(out, "</svg>") {
		t.Fatalf("Expected a complete SVG document, got %q", out)
	}
	if n := strings.Count(out, "stroke-linecap:round"); n != 4 {
		t.Errorf("Expected 4 foreground arcs in the settled frame, got %d", n)
	}
	if !strings.Contains(out, ">45%<") {
		t.Errorf("Expected a 45%% centre label, got %s", out)
	}
}

func TestRenderRejectsBadRing(t *testing.T) {
	cfg := config.Default()
	cfg.Rings[0].Max = -1
	if _, err := Render(&bytes.Buffer{}, cfg, nil, 100, 100, nil); err == nil {
		t.Error("Expected an error for a ring with negative max")
	}
}
