package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlState is what the control panel displays.
type ControlState struct {
	Paused         bool
	ShowField      bool
	HueMode        bool
	StepsPerUpdate int
	Magnitude      float64
	MaxMagnitude   float64
}

// ControlActions reports what the user clicked during one frame.
type ControlActions struct {
	TogglePause    bool
	ToggleField    bool
	ToggleColor    bool
	ClearTrails    bool
	StepsDelta     int
	Magnitude      float64
	MagnitudeMoved bool
}

// ControlPanel renders the right-side raygui panel.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel and returns the actions taken this frame.
func (c *ControlPanel) Draw(state ControlState) ControlActions {
	actions := ControlActions{Magnitude: state.Magnitude}
	if !c.visible {
		return actions
	}

	r := c.renderer
	pad := r.Theme.Padding
	const rowH = 30

	r.DrawPanel(c.x, c.y, c.width, rowH*6+pad*3+r.Theme.LineHeight)

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	w := float32(c.width - pad*2)
	half := (w - 10) / 2

	y = float32(r.DrawSectionHeader(int32(x), int32(y), "Controls")) + 6

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, toggleText(state.ShowField, "Particles", "Field")) {
		actions.ToggleField = true
	}
	y += rowH

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(state.HueMode, "Fixed colour", "Hue cycle")) {
		actions.ToggleColor = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Clear trails") {
		actions.ClearTrails = true
	}
	y += rowH

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 30, Height: 24}, "-") {
		actions.StepsDelta = -1
	}
	rl.DrawText(fmt.Sprintf("%dx steps", state.StepsPerUpdate), int32(x)+40, int32(y)+6, r.Theme.FontSize, r.Theme.ValueColor)
	if gui.Button(rl.Rectangle{X: x + w - 30, Y: y, Width: 30, Height: 24}, "+") {
		actions.StepsDelta = 1
	}
	y += rowH

	rl.DrawText(fmt.Sprintf("Magnitude: %.2f", state.Magnitude), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += float32(r.Theme.LineHeight)
	mag := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: y, Width: w - 60, Height: 20},
		"0", fmt.Sprintf("%.0f", state.MaxMagnitude),
		float32(state.Magnitude), 0, float32(state.MaxMagnitude),
	)
	if mag != float32(state.Magnitude) {
		actions.Magnitude = float64(mag)
		actions.MagnitudeMoved = true
	}

	return actions
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
