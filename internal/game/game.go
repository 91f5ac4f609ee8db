package game

import (
	"log/slog"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pkg/errors"

	"github.com/iburimskiy/radial-progress/internal/anim"
	"github.com/iburimskiy/radial-progress/internal/chart"
	"github.com/iburimskiy/radial-progress/internal/config"
	"github.com/iburimskiy/radial-progress/internal/logging"
)

// audioRetarget is how often live audio levels retarget the rings.
const audioRetarget = 120 * time.Millisecond

// Game hosts a chart in an ebiten window. The chart paints into a persistent
// canvas from frame callbacks flushed in Update; Draw only blits it.
type Game struct {
	logger *slog.Logger

	canvas *ebiten.Image
	queue  *anim.FrameQueue
	chart  *chart.Chart
	player *player

	script   [][]float64
	step     int
	lastStep time.Time

	levels       []float64
	lastRetarget time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	// progress bar seeking
	barHovered  bool
	barDragging bool

	lastErr error
}

// NewGame builds the chart described by cfg, centred in the window.
func NewGame(cfg *config.Config, script [][]float64, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	canvas := ebiten.NewImage(config.WindowWidth, config.WindowHeight)
	queue := anim.NewFrameQueue()

	c, err := cfg.NewChart(newEbitenSurface(canvas), anim.SystemClock{}, queue,
		config.WindowWidth/2, config.WindowHeight/2, logger)
	if err != nil {
		return nil, errors.Wrap(err, "build chart")
	}

	g := &Game{
		logger:  logger,
		canvas:  canvas,
		queue:   queue,
		chart:   c,
		player:  newPlayer(logger),
		script:  script,
		prevKey: map[ebiten.Key]bool{},
	}
	g.nextStep(time.Now())
	return g, nil
}

// Run opens the window and blocks until it closes.
func Run(cfg *config.Config, script [][]float64, logger *slog.Logger) error {
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Radial Progress - Space: next/pause, Esc/Q: quit")

	g, err := NewGame(cfg, script, logger)
	if err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (g *Game) nextStep(now time.Time) {
	g.lastStep = now
	if len(g.script) == 0 {
		g.chart.SetValues(nil)
		return
	}
	g.chart.SetValues(g.script[g.step%len(g.script)])
	g.step++
}

func (g *Game) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	g.buttonHovered = mouseX >= config.ButtonX && mouseX <= config.ButtonX+config.ButtonWidth &&
		mouseY >= config.ButtonY && mouseY <= config.ButtonY+config.ButtonHeight

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			if err := g.player.openDialog(); err != nil {
				g.lastErr = err
				g.logger.Error("open audio failed", "err", err)
			}
		}
		g.buttonPressed = false
	}

	now := time.Now()
	g.updateSeek(mouseX, mouseY, now)

	if justPressed(ebiten.KeySpace) {
		g.space(now)
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.retarget(now)
	g.queue.Flush(now)
	return nil
}

// space pauses or resumes a loaded track, otherwise steps the demo script.
func (g *Game) space(now time.Time) {
	if g.player.loaded() {
		g.player.togglePause()
		return
	}
	g.nextStep(now)
}

// updateSeek seeks on a click on the progress bar and while it is dragged.
func (g *Game) updateSeek(mouseX, mouseY int, now time.Time) {
	x, y, w, h := progressBar()
	g.barHovered = mouseX >= x && mouseX <= x+w && mouseY >= y && mouseY <= y+h

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.barDragging = false
	}
	if _, total := g.player.progress(); total == 0 {
		g.barDragging = false
		return
	}
	if g.barHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.barDragging = true
	}
	if !g.barDragging {
		return
	}

	frac := clamp01(float64(mouseX-x) / float64(w))
	pos, total := g.player.progress()
	if math.Abs(frac-float64(pos)/float64(total)) < 0.01 {
		return
	}
	if err := g.player.seek(frac, now); err != nil {
		g.lastErr = err
		g.logger.Error("seek failed", "err", err)
	}
}

// retarget feeds the rings from audio levels while a file plays, otherwise
// steps through the demo script.
func (g *Game) retarget(now time.Time) {
	if g.player.active() {
		if now.Sub(g.lastRetarget) < audioRetarget {
			return
		}
		g.lastRetarget = now
		g.levels = g.player.levels(g.chart.Len(), g.levels)
		g.chart.SetValues(g.scaleLevels(g.levels))
		return
	}
	if len(g.script) > 1 && now.Sub(g.lastStep) >= config.DemoInterval {
		g.nextStep(now)
	}
}

// scaleLevels maps [0,1] levels onto each ring's range.
func (g *Game) scaleLevels(levels []float64) []float64 {
	out := make([]float64, len(levels))
	for i, l := range levels {
		h, err := g.chart.Ring(i)
		if err != nil {
			break
		}
		out[i] = l * h.Config().Max
	}
	return out
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.canvas, nil)

	g.drawButton(screen)
	g.drawProgressBar(screen)
	g.drawLegend(screen)

	status := "Space: next values | click the button to drive the rings from audio"
	if g.player.loaded() {
		if g.player.isPaused() {
			status = "Paused - Space to play, click button to open another"
		} else {
			status = "Playing - Space to pause, click button to open another"
		}
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}
