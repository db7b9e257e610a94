package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Particles      int
	Frame          int64
	ZOffset        float64
	FPS            int32
	StepsPerUpdate int
	Paused         bool
	ShowField      bool
	ColorMode      string
	Color          rl.Color
	MeanSpeed      float64
	MaxSpeed       float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    240,
	}
}

// Draw renders the HUD panel in the top-left corner.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	pad := r.Theme.Padding
	height := r.Theme.LineHeight*9 + pad*2 + 6

	r.DrawPanel(pad, pad, h.width, height)

	x := pad * 2
	y := pad * 2
	rl.DrawText(data.Title, x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frame))
	y = r.DrawLabelValue(x, y, "Z offset", fmt.Sprintf("%.2f", data.ZOffset))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d | %dx", data.FPS, data.StepsPerUpdate))
	y = r.DrawRatioBar(x, y, "Speed", float32(data.MeanSpeed), float32(data.MaxSpeed), h.width-pad*2)
	y = r.DrawColorSwatch(x, y, "Colour", data.Color)
	y = r.DrawLabelValue(x, y, "Mode", data.ColorMode)

	status := "Running"
	statusColor := rl.Green
	if data.Paused {
		status = "PAUSED"
		statusColor = rl.Yellow
	}
	if data.ShowField {
		status += " | field"
	}
	rl.DrawText(status, x, y, r.Theme.FontSize, statusColor)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase step timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgStepDuration.Round(time.Microsecond),
		stats.MaxStepDuration.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases() {
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
