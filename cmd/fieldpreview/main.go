// Flow field preview tool - interactive field tuning with sliders.
//
// Usage: go run ./cmd/fieldpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/palette"
	"github.com/pthm-cable/flowfield/renderer"
	"github.com/pthm-cable/flowfield/systems"
)

const (
	previewSize  = 600
	windowWidth  = previewSize + 380
	windowHeight = previewSize + 80
	panelWidth   = windowWidth - previewSize - 30
)

var noiseKinds = []string{config.NoisePerlin, config.NoiseSimplex, config.NoiseFBM}

// previewParams holds everything the sliders edit.
type previewParams struct {
	Field config.FieldConfig `yaml:"field"`
	Noise config.NoiseConfig `yaml:"noise"`
	Seed  int64              `yaml:"-"`
}

func defaultParams(cfg *config.Config) previewParams {
	return previewParams{Field: cfg.Field, Noise: cfg.Noise, Seed: 1}
}

// preview holds the field being tuned and how it is drawn.
type preview struct {
	params  previewParams
	noise   systems.NoiseSource
	field   *systems.FlowField
	overlay *renderer.FieldOverlay
	z       float64
}

func newPreview(p previewParams, scale float32) (*preview, error) {
	pv := &preview{params: p, overlay: renderer.NewFieldOverlay(scale)}
	if err := pv.rebuild(); err != nil {
		return nil, err
	}
	return pv, nil
}

// rebuild recreates the noise source and field from the current params.
func (pv *preview) rebuild() error {
	noise, err := systems.NewNoiseSource(pv.params.Noise, pv.params.Seed)
	if err != nil {
		return err
	}
	grid := systems.Grid{
		Width:   pv.params.Field.Width,
		Height:  pv.params.Field.Height,
		CanvasW: previewSize,
		CanvasH: previewSize,
	}
	pv.noise = noise
	pv.field = systems.NewFlowField(grid, systems.FieldParams{
		DX:        pv.params.Field.DX,
		DY:        pv.params.Field.DY,
		Magnitude: pv.params.Field.Magnitude,
	})
	pv.regenerate()
	return nil
}

func (pv *preview) regenerate() {
	pv.field.SetParams(systems.FieldParams{
		DX:        pv.params.Field.DX,
		DY:        pv.params.Field.DY,
		Magnitude: pv.params.Field.Magnitude,
	})
	pv.field.Generate(pv.noise, pv.z)
}

// drawTiles fills each cell with a colour whose hue is the vector's angle.
func (pv *preview) drawTiles() {
	grid := pv.field.Grid()
	tileW, tileH := grid.TileSize()
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			v := pv.field.At(grid.Index(x, y))
			deg := math.Atan2(v.Y, v.X) * 180 / math.Pi
			c := palette.FromHSV(deg, 0.5, 1, 255)
			rl.DrawRectangle(
				int32(float64(x)*tileW), int32(float64(y)*tileH),
				int32(math.Ceil(tileW)), int32(math.Ceil(tileH)),
				rl.NewColor(c.R, c.G, c.B, c.A),
			)
		}
	}
}

func (p previewParams) yaml() string {
	out, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Sprintf("# %v", err)
	}
	return strings.TrimSpace(string(out))
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	config.MustInit(*configPath)
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Flow Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	pv, err := newPreview(defaultParams(cfg), float32(cfg.Render.FieldScale))
	if err != nil {
		slog.Error("failed to build preview", "error", err)
		os.Exit(1)
	}

	animating := false
	showTiles := true

	for !rl.WindowShouldClose() {
		needsRegen := false
		needsRebuild := false

		if animating {
			pv.z += pv.params.Field.DZ
			needsRegen = true
		}

		rl.BeginDrawing()

		// Field arrows (clears the background)
		pv.overlay.Draw(pv.field)
		if showTiles {
			pv.drawTiles()
			pv.overlay.DrawArrows(pv.field)
		}
		rl.DrawRectangleLines(0, 0, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 15)
		rl.DrawText(fmt.Sprintf("Noise: %s  Seed: %d  Z: %.3f", pv.params.Noise.Kind, pv.params.Seed, pv.z), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Grid: %dx%d  Cells: %d", pv.params.Field.Width, pv.params.Field.Height, pv.field.Len()), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Flow Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label, minText, maxText, format string, value, min, max float64) float64 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			out := gui.SliderBar(
				rl.Rectangle{X: panelX + 30, Y: panelY, Width: float32(panelWidth - 120), Height: 20},
				minText, maxText,
				float32(value), float32(min), float32(max),
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+float32(panelWidth-60)), int32(panelY+2), 16, rl.DarkGray)
			panelY += 35
			if out == float32(value) {
				return value
			}
			return float64(out)
		}

		if v := slider("DX (noise step per column)", "0", "0.1", "%.3f", pv.params.Field.DX, 0, 0.1); v != pv.params.Field.DX {
			pv.params.Field.DX = v
			needsRegen = true
		}
		if v := slider("DY (noise step per row)", "0", "0.1", "%.3f", pv.params.Field.DY, 0, 0.1); v != pv.params.Field.DY {
			pv.params.Field.DY = v
			needsRegen = true
		}
		if v := slider("DZ (time step per frame)", "0", "0.05", "%.3f", pv.params.Field.DZ, 0, 0.05); v != pv.params.Field.DZ {
			pv.params.Field.DZ = v
		}
		if v := slider("Magnitude", "0", "20", "%.2f", pv.params.Field.Magnitude, 0, 20); v != pv.params.Field.Magnitude {
			pv.params.Field.Magnitude = v
			needsRegen = true
		}
		if v := slider("Seed", "0", "99999", "%.0f", float64(pv.params.Seed), 0, 99999); int64(v) != pv.params.Seed {
			pv.params.Seed = int64(v)
			needsRebuild = true
		}
		panelY += 10

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, "Noise: "+pv.params.Noise.Kind) {
			pv.params.Noise.Kind = nextKind(pv.params.Noise.Kind)
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 170, Y: panelY, Width: 160, Height: 30}, toggleText(showTiles, "Hide Tiles", "Show Tiles")) {
			showTiles = !showTiles
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 170, Y: panelY, Width: 160, Height: 30}, "Reset Time") {
			pv.z = 0
			needsRegen = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 30}, "Random Seed") {
			pv.params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 170, Y: panelY, Width: 160, Height: 30}, "Reset All") {
			pv.params = defaultParams(cfg)
			pv.z = 0
			needsRebuild = true
		}
		panelY += 50

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		snippet := pv.params.yaml()
		for _, line := range strings.Split(snippet, "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.Gray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(snippet)
		}

		rl.EndDrawing()

		if needsRebuild {
			if err := pv.rebuild(); err != nil {
				slog.Error("failed to rebuild field", "error", err)
			}
		} else if needsRegen {
			pv.regenerate()
		}
	}
}

func nextKind(kind string) string {
	for i, k := range noiseKinds {
		if k == kind {
			return noiseKinds[(i+1)%len(noiseKinds)]
		}
	}
	return noiseKinds[0]
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
