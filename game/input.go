package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		g.layoutUI(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	} else if rl.IsWindowResized() {
		g.layoutUI(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.adjustSteps(-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.adjustSteps(1)
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.showField = !g.showField
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.hueMode = !g.hueMode
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.clearPending = true
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.controls.Toggle()
	}
}

func (g *Game) adjustSteps(delta int) {
	g.stepsPerUpdate += delta
	if g.stepsPerUpdate < 1 {
		g.stepsPerUpdate = 1
	}
	if g.stepsPerUpdate > maxStepsPerUpdate {
		g.stepsPerUpdate = maxStepsPerUpdate
	}
}
