package term

import (
	"context"
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/radial-progress/internal/config"
)

var red = color.RGBA{R: 255, A: 255}

func TestSurfaceFillCircle(t *testing.T) {
	s := NewSurface(40, 20)
	s.Fit(10)
	s.FillCircle(0, 0, 5, red)

	if bg, _ := s.At(20, 10); bg != red {
		t.Errorf("Expected centre cell red, got %v", bg)
	}
	if bg, _ := s.At(0, 0); bg.A != 0 {
		t.Errorf("Expected corner cell untouched, got %v", bg)
	}
}

func TestSurfaceFitKeepsAspect(t *testing.T) {
	s := NewSurface(80, 24)
	s.Fit(120)
	if s.cellH != 2*s.cellW {
		t.Errorf("Expected 1:2 cells, got %vx%v", s.cellW, s.cellH)
	}
	if float64(s.rows)*s.cellH < 240 || float64(s.cols)*s.cellW < 240 {
		t.Errorf("Expected the grid to cover a 240 unit square, got %vx%v", float64(s.cols)*s.cellW, float64(s.rows)*s.cellH)
	}
}

func TestSurfaceArcSweep(t *testing.T) {
	s := NewSurface(41, 21)
	s.Fit(20)
	// quarter arc from 12 o'clock to 3 o'clock
	s.StrokeArc(0, 0, 15, -math.Pi/2, 0, 4, red, false)

	top := s.rows/2 - int(15/s.cellH)
	if bg, _ := s.At(s.cols/2+1, top); bg != red {
		t.Errorf("Expected cell just right of 12 o'clock painted, got %v", bg)
	}
	right := s.cols/2 + int(15/s.cellW)
	if bg, _ := s.At(right, s.rows/2-1); bg != red {
		t.Errorf("Expected cell just above 3 o'clock painted, got %v", bg)
	}
	left := s.cols/2 - int(15/s.cellW)
	if bg, _ := s.At(left, s.rows/2); bg.A != 0 {
		t.Errorf("Expected 9 o'clock untouched, got %v", bg)
	}
}

func TestAngleWithin(t *testing.T) {
	tests := []struct {
		a, start, end float64
		want          bool
	}{
		{0, -math.Pi / 2, 0.1, true},
		{math.Pi, -math.Pi / 2, 0, false},
		{-math.Pi / 2, -math.Pi / 2, math.Pi, true},
		{math.Pi * 0.9, -math.Pi / 2, 3 * math.Pi / 2, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		if got := angleWithin(tt.a, tt.start, tt.end); got != tt.want {
			t.Errorf("Expected angleWithin(%v, %v, %v) = %v, got %v", tt.a, tt.start, tt.end, tt.want, got)
		}
	}
}

func TestOverBlendsPremultiplied(t *testing.T) {
	track := color.RGBA{R: 20, G: 20, B: 20, A: 20}
	bg := color.RGBA{R: 2, G: 6, B: 23, A: 255}
	got := over(track, bg)
	if got.A != 255 {
		t.Errorf("Expected opaque result, got %v", got)
	}
	if got.R <= bg.R || got.R > 25 {
		t.Errorf("Expected a faint lightening of red, got %v", got)
	}
}

func TestSurfaceClearAndText(t *testing.T) {
	s := NewSurface(20, 10)
	s.FillRect(-100, -100, 200, 200, red)
	s.DrawText("42%", 0, 0, color.RGBA{255, 255, 255, 255})

	if _, ch := s.At(10, 5); ch != '2' {
		t.Errorf("Expected '2' at the centre, got %q", ch)
	}
	s.ClearRect(-100, -100, 200, 200)
	if bg, ch := s.At(10, 5); bg.A != 0 || ch != 0 {
		t.Errorf("Expected cleared cell, got %v %q", bg, ch)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	cfg := config.Default()
	cfg.Duration = 50 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, screen, cfg, [][]float64{{100, 100, 100, 100}}, nil) }()

	time.Sleep(300 * time.Millisecond)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Expected clean exit on q, got %v", err)
		}
	case <-time.After(4 * time.Second):
		t.Fatal("Expected Run to return after q")
	}

	// the settled legend is on the last row
	var legend []rune
	for col := 0; col < 80; col++ {
		r, _, _, _ := screen.GetContent(col, 23)
		legend = append(legend, r)
	}
	if want := "green 100%"; !containsRunes(legend, want) {
		t.Errorf("Expected legend to contain %q, got %q", want, string(legend))
	}
}

func TestRunStopsOnContext(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 12)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := Run(ctx, screen, config.Default(), config.DemoScript, nil); err != context.DeadlineExceeded {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}

func containsRunes(line []rune, want string) bool {
	s := string(line)
	for i := 0; i+len(want) <= len(s); i++ {
		if s[i:i+len(want)] == want {
			return true
		}
	}
	return false
}
