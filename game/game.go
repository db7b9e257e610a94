// Package game runs the flow field visualizer: it owns the simulation, the
// renderers and the telemetry, and drives them once per frame.
package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flowfield/config"
	"github.com/pthm-cable/flowfield/palette"
	"github.com/pthm-cable/flowfield/renderer"
	"github.com/pthm-cable/flowfield/systems"
	"github.com/pthm-cable/flowfield/telemetry"
	"github.com/pthm-cable/flowfield/ui"
)

// maxStepsPerUpdate bounds the steps-per-update control.
const maxStepsPerUpdate = 10

const controlPanelWidth = 220

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool   // Log window stats via slog
	OutputDir      string // Directory for CSV output (empty = disabled)
	Headless       bool   // Skip all raylib resources
	StepsPerUpdate int    // Simulation steps per Update call
}

// Game holds the complete visualizer state.
type Game struct {
	cfg *config.Config
	sim *systems.Simulation

	// Rendering (nil in headless mode)
	canvas    *renderer.TrailCanvas
	particles *renderer.ParticleRenderer
	overlay   *renderer.FieldOverlay
	hud       *ui.HUD
	controls  *ui.ControlPanel
	perfPanel *ui.PerfPanel

	hue     *palette.HueCycler
	hueMode bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool

	// State
	paused         bool
	showField      bool
	showPerf       bool
	stepsPerUpdate int
	clearPending   bool // Clear the trail canvas before the next paint
	speeds         []float64 // scratch for speed sampling
}

// NewGameWithOptions creates a game from the global config.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	sim, err := systems.NewSimulation(cfg, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("building simulation: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}
	if steps > maxStepsPerUpdate && !opts.Headless {
		steps = maxStepsPerUpdate
	}

	g := &Game{
		cfg:            cfg,
		sim:            sim,
		hue:            palette.NewHueCycler(cfg.Particles.HueStep),
		hueMode:        cfg.Particles.ColorMode == config.ColorModeHue,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager:  om,
		logStats:       opts.LogStats,
		showField:      cfg.Render.ShowField,
		stepsPerUpdate: steps,
	}

	if !opts.Headless {
		w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
		bg := cfg.Render.Background
		g.canvas = renderer.NewTrailCanvas(w, h, rl.NewColor(bg.R, bg.G, bg.B, bg.A))
		g.particles = renderer.NewParticleRenderer(float32(cfg.Particles.Radius))
		g.overlay = renderer.NewFieldOverlay(float32(cfg.Render.FieldScale))
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlPanel(0, 0, controlPanelWidth)
		g.perfPanel = ui.NewPerfPanel(0, 0)
		g.layoutUI(w, h)
	}

	if om != nil {
		slog.Info("writing output", "dir", om.Dir())
	}

	return g, nil
}

// Update handles input and advances the simulation (graphics mode).
func (g *Game) Update() {
	g.handleInput()

	g.perfCollector.StartStep()
	if g.paused {
		if g.clearPending {
			g.paint()
		}
	} else {
		// Every simulated frame is painted before it advances, so the
		// first paint shows the initial placement
		for i := 0; i < g.stepsPerUpdate; i++ {
			g.paint()
			g.step()
		}
	}
	// The step is closed in Draw so present time is attributed to it
}

// UpdateHeadless advances the simulation without any raylib calls.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartStep()
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
	g.perfCollector.EndStep()
}

// step runs one simulation frame with phase timing and telemetry.
func (g *Game) step() {
	g.perfCollector.StartPhase(telemetry.PhaseField)
	g.sim.GenerateField()

	g.perfCollector.StartPhase(telemetry.PhaseIntegrate)
	g.sim.IntegrateParticles()
	g.sim.Advance()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.collector.RecordFrame(g.sim.Particles.Clamped())
	g.flushTelemetry()
}

// Frame returns the number of simulated frames.
func (g *Game) Frame() int64 {
	return g.sim.Frame()
}

// Simulation exposes the underlying simulation.
func (g *Game) Simulation() *systems.Simulation {
	return g.sim
}

// Unload releases raylib resources and closes output files.
func (g *Game) Unload() {
	if g.canvas != nil {
		g.canvas.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
