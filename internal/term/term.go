package term

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/anim"
	"github.com/iburimskiy/radial-progress/internal/chart"
	"github.com/iburimskiy/radial-progress/internal/config"
	"github.com/iburimskiy/radial-progress/internal/logging"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// Run draws an animated chart on an initialised screen until ctx ends or the
// user presses q, Esc or Ctrl-C. Space steps through the demo script, and the
// script also advances on its own every cfg demo interval.
func Run(ctx context.Context, screen tcell.Screen, cfg *config.Config, script [][]float64, logger *slog.Logger) error {
	if screen == nil {
		return errors.New("term: nil screen")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	cols, rows := screen.Size()
	surface := NewSurface(cols, rows-1)
	queue := anim.NewFrameQueue()

	c, err := cfg.NewChart(surface, anim.SystemClock{}, queue, 0, 0, logger)
	if err != nil {
		return errors.Wrap(err, "build chart")
	}
	surface.Fit(c.Extent())

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	step := 0
	next := func() {
		if len(script) == 0 {
			c.SetValues(nil)
			return
		}
		c.SetValues(script[step%len(script)])
		step++
	}
	next()
	lastStep := time.Now()
	logger.Info("terminal chart started", "cols", cols, "rows", rows, "rings", c.Len())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					logger.Info("terminal chart closed", "frames", c.Frames())
					return nil
				}
				if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
					next()
					lastStep = time.Now()
				}
			case *tcell.EventResize:
				screen.Sync()
				cols, rows = screen.Size()
				surface.Resize(cols, rows-1)
				surface.Fit(c.Extent())
				// one frame repaints everything
				c.SetValues(nil)
			}

		case now := <-ticker.C:
			if len(script) > 1 && now.Sub(lastStep) >= config.DemoInterval {
				next()
				lastStep = now
			}
			if queue.Flush(now) > 0 {
				surface.Show(screen)
				drawLegend(screen, c, rows-1, cols)
				screen.Show()
			}
		}
	}
}

// drawLegend prints "label NN%" for every ring on the given row.
func drawLegend(screen tcell.Screen, c *chart.Chart, row, cols int) {
	var parts []string
	for i := 0; i < c.Len(); i++ {
		h, err := c.Ring(i)
		if err != nil {
			continue
		}
		label := h.Config().Label
		if label == "" {
			label = fmt.Sprintf("ring %d", i)
		}
		parts = append(parts, fmt.Sprintf("%s %3.0f%%", label, h.Percent()*100))
	}
	line := []rune(strings.Join(parts, "  "))
	for col := 0; col < cols; col++ {
		ch := ' '
		if col < len(line) {
			ch = line[col]
		}
		screen.SetContent(col, row, ch, nil, tcell.StyleDefault)
	}
}
