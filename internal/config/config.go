package config

import (
	"encoding/json"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/anim"
	"github.com/iburimskiy/radial-progress/internal/chart"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512

	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 50

	// Chart geometry
	BaseRadius        = 70
	RingGap           = 6
	RingThickness     = 14
	RingMax           = 100
	BackgroundPadding = 40
	AnimationDuration = 900 * time.Millisecond

	// Demo retarget interval when no audio is playing
	DemoInterval = 2 * time.Second
)

// DemoScript is the sequence of targets the demos step through.
var DemoScript = [][]float64{
	{45, 55, 65, 75},
	{75, 40, 90, 20},
	{40, 90, 30, 60},
	{90, 20, 75, 100},
}

// Ring is one entry of a rings file.
type Ring struct {
	Color     string  `json:"color"`
	Alpha     float64 `json:"alpha,omitempty"`
	Thickness float64 `json:"thickness"`
	Max       float64 `json:"max"`
	Label     string  `json:"label,omitempty"`
}

// Config holds everything a host needs to build a chart.
type Config struct {
	Duration          time.Duration
	BaseRadius        float64
	Gap               float64
	BackgroundPadding float64
	Background        string
	ShowPercent       bool
	Rings             []Ring

	LogFile  string
	LogLevel string
}

// Default returns the four-ring layout of the reference demo.
func Default() *Config {
	return &Config{
		Duration:          AnimationDuration,
		BaseRadius:        BaseRadius,
		Gap:               RingGap,
		BackgroundPadding: BackgroundPadding,
		Background:        "#020617",
		ShowPercent:       true,
		Rings: []Ring{
			{Color: "#22c55e", Thickness: RingThickness, Max: RingMax, Label: "green"},
			{Color: "#3b82f6", Thickness: RingThickness, Max: RingMax, Label: "blue"},
			{Color: "#f59e0b", Thickness: RingThickness, Max: RingMax, Label: "amber"},
			{Color: "#f65e0b", Thickness: RingThickness, Max: RingMax, Label: "orange"},
		},
		LogLevel: "info",
	}
}

// FromEnv returns Default overridden by RADIAL_* environment variables.
// Unparseable values are ignored.
func FromEnv() *Config {
	cfg := Default()

	if v := os.Getenv("RADIAL_DURATION_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.Duration = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("RADIAL_GAP"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Gap = f
		}
	}
	if v := os.Getenv("RADIAL_BASE_RADIUS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.BaseRadius = f
		}
	}
	if v := os.Getenv("RADIAL_BACKGROUND"); v != "" {
		if _, err := ParseColor(v, 1); err == nil {
			cfg.Background = v
		}
	}
	if v := os.Getenv("RADIAL_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("RADIAL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}

// LoadRings reads a JSON array of rings.
func LoadRings(path string) ([]Ring, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read rings file")
	}

	var rings []Ring
	if err := json.Unmarshal(data, &rings); err != nil {
		return nil, errors.Wrapf(err, "parse rings file %s", path)
	}
	if len(rings) == 0 {
		return nil, errors.Errorf("rings file %s has no rings", path)
	}
	for i, r := range rings {
		if _, err := ParseColor(r.Color, r.Alpha); err != nil {
			return nil, errors.Wrapf(err, "ring %d", i)
		}
	}
	return rings, nil
}

// ParseColor turns "#rrggbb" or "#rgb" into a premultiplied RGBA. alpha is in
// [0,1]; zero means opaque.
func ParseColor(hex string, alpha float64) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "color %q", hex)
	}
	if alpha <= 0 || alpha > 1 {
		alpha = 1
	}
	r, g, b := c.RGB255()
	return color.RGBA{
		R: uint8(float64(r)*alpha + 0.5),
		G: uint8(float64(g)*alpha + 0.5),
		B: uint8(float64(b)*alpha + 0.5),
		A: uint8(255*alpha + 0.5),
	}, nil
}

// RingColor parses a ring's colour.
func (r Ring) RingColor() (color.RGBA, error) {
	return ParseColor(r.Color, r.Alpha)
}

// ChartOptions builds chart options centred at (cx, cy).
func (c *Config) ChartOptions(cx, cy float64, logger *slog.Logger) (chart.Options, error) {
	bg, err := ParseColor(c.Background, 1)
	if err != nil {
		return chart.Options{}, errors.Wrap(err, "background")
	}
	opts := chart.DefaultOptions(cx, cy)
	opts.BaseRadius = c.BaseRadius
	opts.Gap = c.Gap
	opts.Duration = c.Duration
	opts.BackgroundPadding = c.BackgroundPadding
	opts.Background = bg
	opts.ShowPercent = c.ShowPercent
	opts.Logger = logger
	return opts, nil
}

// RingConfigs converts the configured rings, innermost first.
func (c *Config) RingConfigs() ([]chart.RingConfig, error) {
	out := make([]chart.RingConfig, 0, len(c.Rings))
	for i, r := range c.Rings {
		clr, err := r.RingColor()
		if err != nil {
			return nil, errors.Wrapf(err, "ring %d", i)
		}
		out = append(out, chart.RingConfig{
			Color:     clr,
			Thickness: r.Thickness,
			Max:       r.Max,
			Label:     r.Label,
		})
	}
	return out, nil
}

// NewChart builds a chart on surface with every configured ring added.
func (c *Config) NewChart(surface chart.Surface, clock anim.Clock, sched anim.Scheduler, cx, cy float64, logger *slog.Logger) (*chart.Chart, error) {
	opts, err := c.ChartOptions(cx, cy, logger)
	if err != nil {
		return nil, err
	}
	rings, err := c.RingConfigs()
	if err != nil {
		return nil, err
	}

	ch, err := chart.New(surface, clock, sched, opts)
	if err != nil {
		return nil, err
	}
	for _, r := range rings {
		if _, err := ch.AddRing(r); err != nil {
			return nil, err
		}
	}
	return ch, nil
}
