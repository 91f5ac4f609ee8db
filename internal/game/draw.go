package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/radial-progress/internal/config"
)

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}

	vector.DrawFilledRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, bgColor, false)
	vector.StrokeRect(screen, config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight, 2, color.RGBA{R: 150, G: 170, B: 200, A: 255}, false)

	text := "Open File"
	textWidth := len(text) * 8 // Approximate character width
	textX := config.ButtonX + (config.ButtonWidth-textWidth)/2
	textY := config.ButtonY + (config.ButtonHeight+8)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

// progressBar returns the bar's rectangle; Update hit-tests the same one.
func progressBar() (x, y, w, h int) {
	return 20, config.WindowHeight - 40, config.WindowWidth - 40, 12
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	pos, total := g.player.progress()
	if total == 0 {
		return
	}

	barX, barY, barWidth, barHeight := progressBar()
	progress := clamp01(float64(pos) / float64(total))

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), float32(barHeight), color.RGBA{R: 25, G: 30, B: 40, A: 200}, false)
	if progress > 0 {
		r, gv, b := hsvToRgb(progress*180, 0.8, 0.9)
		vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progress*float64(barWidth)), float32(barHeight), color.RGBA{R: r, G: gv, B: b, A: 180}, false)
	}

	ebitenutil.DebugPrintAt(screen, formatDuration(pos), barX, barY+barHeight+2)
	totalTime := formatDuration(total)
	ebitenutil.DebugPrintAt(screen, totalTime, barX+barWidth-len(totalTime)*6, barY+barHeight+2)
}

// drawLegend lists every ring's label and percentage down the right edge.
func (g *Game) drawLegend(screen *ebiten.Image) {
	x := config.WindowWidth - 160
	for i := 0; i < g.chart.Len(); i++ {
		h, err := g.chart.Ring(i)
		if err != nil {
			continue
		}
		cfg := h.Config()
		y := 50 + i*20
		vector.DrawFilledRect(screen, float32(x), float32(y+3), 10, 10, cfg.Color, false)
		label := cfg.Label
		if label == "" {
			label = fmt.Sprintf("ring %d", i)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%-8s %3.0f%%", label, h.Percent()*100), x+16, y)
	}
}
