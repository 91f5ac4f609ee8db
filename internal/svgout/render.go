package svgout

import (
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/anim"
	"github.com/iburimskiy/radial-progress/internal/config"
	"github.com/iburimskiy/radial-progress/internal/logging"
)

// FrameStep is the simulated frame interval used when rendering offline.
const FrameStep = time.Second / 60

// maxFrames bounds an offline run; a settling chart needs Duration/FrameStep frames.
const maxFrames = 100000

// Render animates a chart built from cfg toward values on a simulated clock
// and writes the settled frame to w as SVG. It returns the number of frames run.
func Render(w io.Writer, cfg *config.Config, values []float64, width, height int, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	bg, err := config.ParseColor(cfg.Background, 1)
	if err != nil {
		return 0, errors.Wrap(err, "background")
	}

	surface := NewSurface(width, height, bg)
	clock := anim.NewMockClock(time.Unix(0, 0))
	queue := anim.NewFrameQueue()

	c, err := cfg.NewChart(surface, clock, queue, float64(width)/2, float64(height)/2, logger)
	if err != nil {
		return 0, errors.Wrap(err, "build chart")
	}

	c.SetValues(values)
	frames := queue.RunUntilIdle(clock, FrameStep, maxFrames)
	if queue.Pending() > 0 {
		return frames, errors.Errorf("chart did not settle within %d frames", maxFrames)
	}
	logger.Info("chart settled", "frames", frames, "rings", c.Len(), "elements", surface.Len())

	if _, err := surface.WriteTo(w); err != nil {
		return frames, errors.Wrap(err, "write svg")
	}
	return frames, nil
}
