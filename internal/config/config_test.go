package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/anim"
	"github.com/iburimskiy/radial-progress/internal/chart"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Duration != 900*time.Millisecond {
		t.Errorf("Expected default duration 900ms, got %v", cfg.Duration)
	}
	if cfg.Gap != 6 {
		t.Errorf("Expected default gap 6, got %v", cfg.Gap)
	}
	if len(cfg.Rings) != 4 {
		t.Fatalf("Expected 4 default rings, got %d", len(cfg.Rings))
	}
	rings, err := cfg.RingConfigs()
	if err != nil {
		t.Fatalf("RingConfigs: %v", err)
	}
	want := color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	if rings[0].Color != want {
		t.Errorf("Expected first ring %v, got %v", want, rings[0].Color)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RADIAL_DURATION_MS", "250")
	t.Setenv("RADIAL_GAP", "3.5")
	t.Setenv("RADIAL_BASE_RADIUS", "-10")
	t.Setenv("RADIAL_BACKGROUND", "not-a-colour")
	t.Setenv("RADIAL_LOG_LEVEL", "debug")

	cfg := FromEnv()
	if cfg.Duration != 250*time.Millisecond {
		t.Errorf("Expected duration 250ms, got %v", cfg.Duration)
	}
	if cfg.Gap != 3.5 {
		t.Errorf("Expected gap 3.5, got %v", cfg.Gap)
	}
	if cfg.BaseRadius != BaseRadius {
		t.Errorf("Expected negative base radius to be ignored, got %v", cfg.BaseRadius)
	}
	if cfg.Background != "#020617" {
		t.Errorf("Expected invalid background to be ignored, got %q", cfg.Background)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex   string
		alpha float64
		want  color.RGBA
	}{
		{"#ffffff", 0, color.RGBA{255, 255, 255, 255}},
		{"#fff", 1, color.RGBA{255, 255, 255, 255}},
		{"#ffffff", 0.08, color.RGBA{20, 20, 20, 20}},
		{"#3b82f6", 0.5, color.RGBA{30, 65, 123, 128}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.hex, tt.alpha)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.hex, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Expected %v for %q@%v, got %v", tt.want, tt.hex, tt.alpha, got)
		}
	}

	if _, err := ParseColor("green", 1); err == nil {
		t.Error("Expected error for a named colour")
	}
}

func TestLoadRings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rings.json")
	data := `[
		{"color": "#22c55e", "thickness": 10, "max": 100, "label": "cpu"},
		{"color": "#3b82f6", "alpha": 0.5, "thickness": 20, "max": 8}
	]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	rings, err := LoadRings(path)
	if err != nil {
		t.Fatalf("LoadRings: %v", err)
	}
	if len(rings) != 2 || rings[0].Label != "cpu" || rings[1].Max != 8 {
		t.Errorf("Expected two parsed rings, got %+v", rings)
	}
}

func TestLoadRingsErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRings(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}

	cases := map[string]string{
		"bad.json":    `{"color":`,
		"empty.json":  `[]`,
		"colour.json": `[{"color": "blue", "thickness": 1, "max": 1}]`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRings(path); err == nil {
			t.Errorf("Expected error loading %s", name)
		}
	}
}

type nopSurface struct{}

func (nopSurface) ClearRect(x, y, w, h float64)                                      {}
func (nopSurface) FillRect(x, y, w, h float64, clr color.RGBA)                       {}
func (nopSurface) FillCircle(cx, cy, r float64, clr color.RGBA)                      {}
func (nopSurface) StrokeArc(cx, cy, r, s, e, w float64, clr color.RGBA, round bool) {}

func TestNewChart(t *testing.T) {
	cfg := Default()
	c, err := cfg.NewChart(nopSurface{}, anim.NewMockClock(time.Time{}), anim.NewFrameQueue(), 0, 0, nil)
	if err != nil {
		t.Fatalf("NewChart: %v", err)
	}
	if c.Len() != len(cfg.Rings) {
		t.Errorf("Expected %d rings, got %d", len(cfg.Rings), c.Len())
	}

	cfg.Rings[1].Max = 0
	if _, err := cfg.NewChart(nopSurface{}, nil, anim.NewFrameQueue(), 0, 0, nil); !errors.Is(err, chart.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}
}
