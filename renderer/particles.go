// Package renderer draws the simulation with raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/systems"
)

// ParticleRenderer draws particles as small translucent circles.
// The canvas is never cleared after the first frame, so circles accumulate
// into trails.
type ParticleRenderer struct {
	radius    float32
	positions []r2.Vec // reused between frames
}

// NewParticleRenderer creates a renderer drawing circles of the given radius.
func NewParticleRenderer(radius float32) *ParticleRenderer {
	return &ParticleRenderer{radius: radius}
}

// Draw issues one circle per particle in c.
func (r *ParticleRenderer) Draw(pool *systems.ParticlePool, c color.RGBA) {
	r.positions = pool.Positions(r.positions[:0])

	col := rl.NewColor(c.R, c.G, c.B, c.A)
	for _, p := range r.positions {
		rl.DrawCircleV(rl.Vector2{X: float32(p.X), Y: float32(p.Y)}, r.radius, col)
	}
}
