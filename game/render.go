package game

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/palette"
	"github.com/pthm-cable/flowfield/telemetry"
	"github.com/pthm-cable/flowfield/ui"
)

const controlsLegend = "[Space] pause  [F] field  [C] colour  [R] clear  [,/.] steps  [P] perf  [Tab] panel  [F11] fullscreen"

// paint draws the current particle positions onto the trail canvas. The
// canvas is cleared first only on the first frame or on request.
func (g *Game) paint() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	g.canvas.Begin(g.sim.ShouldClear(g.clearPending))
	g.particles.Draw(g.sim.Particles, g.particleColor())
	g.canvas.End()
	g.clearPending = false
}

// Draw presents the trail canvas, or the field overlay, with the UI on top.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseRender)

	rl.BeginDrawing()
	if g.showField {
		g.overlay.Draw(g.sim.Field)
	} else {
		g.canvas.Present()
	}
	g.drawUI()
	rl.EndDrawing()

	g.perfCollector.EndStep()
	g.perfCollector.RecordFrame()
}

// particleColor returns this frame's particle colour. In hue mode the hue
// advances once per painted frame.
func (g *Game) particleColor() color.RGBA {
	c := g.cfg.Particles.Color
	if g.hueMode {
		return palette.FromHSV(g.hue.Next(), 1, 1, c.A)
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// layoutUI anchors the panels to the screen edges.
func (g *Game) layoutUI(screenW, screenH int32) {
	g.controls.SetPosition(screenW-controlPanelWidth-10, 10)
	g.perfPanel.SetPosition(10, screenH-140)
}

// drawUI renders the HUD, control panel and perf panel.
func (g *Game) drawUI() {
	cfg := g.cfg
	screenH := int32(rl.GetScreenHeight())

	g.speeds = g.sim.Particles.Speeds(g.speeds[:0])
	speed := telemetry.ComputeSpeedStats(g.speeds)

	mode := config.ColorModeFixed
	swatch := g.particleSwatch()
	if g.hueMode {
		mode = fmt.Sprintf("%s %.1f", config.ColorModeHue, g.hue.Hue())
	}

	g.hud.Draw(ui.HUDData{
		Title:          cfg.Screen.Title,
		Particles:      g.sim.Particles.Len(),
		Frame:          g.sim.Frame(),
		ZOffset:        g.sim.ZOffset(),
		FPS:            rl.GetFPS(),
		StepsPerUpdate: g.stepsPerUpdate,
		Paused:         g.paused,
		ShowField:      g.showField,
		ColorMode:      mode,
		Color:          swatch,
		MeanSpeed:      speed.Mean,
		MaxSpeed:       g.sim.Particles.MaxSpeed(),
	})
	g.hud.DrawControls(screenH, controlsLegend)

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}

	params := g.sim.Field.Params()
	actions := g.controls.Draw(ui.ControlState{
		Paused:         g.paused,
		ShowField:      g.showField,
		HueMode:        g.hueMode,
		StepsPerUpdate: g.stepsPerUpdate,
		Magnitude:      params.Magnitude,
		MaxMagnitude:   cfg.Field.Magnitude * 4,
	})
	g.applyControls(actions)
}

// particleSwatch is the colour shown in the HUD, at full opacity.
func (g *Game) particleSwatch() rl.Color {
	c := g.cfg.Particles.Color
	if g.hueMode {
		h := palette.FromHSV(g.hue.Hue(), 1, 1, 255)
		return rl.NewColor(h.R, h.G, h.B, h.A)
	}
	return rl.NewColor(c.R, c.G, c.B, 255)
}

// applyControls applies the control panel actions.
func (g *Game) applyControls(a ui.ControlActions) {
	if a.TogglePause {
		g.paused = !g.paused
	}
	if a.ToggleField {
		g.showField = !g.showField
	}
	if a.ToggleColor {
		g.hueMode = !g.hueMode
	}
	if a.ClearTrails {
		g.clearPending = true
	}
	if a.StepsDelta != 0 {
		g.adjustSteps(a.StepsDelta)
	}
	if a.MagnitudeMoved {
		g.setMagnitude(a.Magnitude)
	}
}

// setMagnitude changes the field vector length from the next generation on.
func (g *Game) setMagnitude(m float64) {
	params := g.sim.Field.Params()
	params.Magnitude = m
	g.sim.Field.SetParams(params)
}
