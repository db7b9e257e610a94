package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/flowfield/components"
)

// ParticlePool owns a fixed population of flow particles.
// Particles are created once and never removed; index i always refers to the
// i-th particle created.
type ParticlePool struct {
	world *ecs.World

	mapper *ecs.Map3[components.Position, components.Velocity, components.Acceleration]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Acceleration]
	ids    []ecs.Entity

	maxSpeed float64
	clamped  int // Particles whose speed was clamped during the last Integrate
}

// NewParticlePool creates count particles at uniformly random canvas positions
// with zero velocity and acceleration.
func NewParticlePool(count int, grid Grid, maxSpeed float64, rng *rand.Rand) *ParticlePool {
	positions := make([]r2.Vec, count)
	for i := range positions {
		positions[i] = r2.Vec{
			X: rng.Float64() * grid.CanvasW,
			Y: rng.Float64() * grid.CanvasH,
		}
	}
	return NewParticlePoolAt(positions, maxSpeed)
}

// NewParticlePoolAt creates one particle per position, at rest.
func NewParticlePoolAt(positions []r2.Vec, maxSpeed float64) *ParticlePool {
	world := ecs.NewWorld()

	p := &ParticlePool{
		world:    world,
		mapper:   ecs.NewMap3[components.Position, components.Velocity, components.Acceleration](world),
		filter:   ecs.NewFilter3[components.Position, components.Velocity, components.Acceleration](world),
		ids:      make([]ecs.Entity, 0, len(positions)),
		maxSpeed: maxSpeed,
	}

	for _, pos := range positions {
		e := p.mapper.NewEntity(
			&components.Position{Vec: pos},
			&components.Velocity{},
			&components.Acceleration{},
		)
		p.ids = append(p.ids, e)
	}

	return p
}

// Integrate advances every particle by one step of dt through field.
//
// Per particle: the field vector of its cell is accumulated into the
// acceleration, the acceleration into the velocity (clamped to the maximum
// speed), the velocity into the position, the position wraps around the
// canvas and the acceleration is cleared.
func (p *ParticlePool) Integrate(field *FlowField, dt float64) {
	grid := field.Grid()
	p.clamped = 0

	query := p.filter.Query()
	for query.Next() {
		pos, vel, acc := query.Get()

		force := field.Sample(pos.Vec)
		acc.Vec = r2.Add(acc.Vec, r2.Scale(dt, force))

		vel.Vec = r2.Add(vel.Vec, r2.Scale(dt, acc.Vec))
		if r2.Norm(vel.Vec) >= p.maxSpeed {
			vel.Vec = r2.Scale(p.maxSpeed, r2.Unit(vel.Vec))
			p.clamped++
		}

		pos.Vec = r2.Add(pos.Vec, r2.Scale(dt, vel.Vec))
		pos.X = wrapAxis(pos.X, grid.CanvasW)
		pos.Y = wrapAxis(pos.Y, grid.CanvasH)

		acc.Vec = r2.Vec{}
	}
}

// wrapAxis moves a coordinate that left [0, extent) to the opposite edge.
// Negative values land exactly on extent, values at or past extent land on 0.
func wrapAxis(v, extent float64) float64 {
	if v < 0 {
		return extent
	}
	if v >= extent {
		return 0
	}
	return v
}

// Len returns the population size.
func (p *ParticlePool) Len() int {
	return len(p.ids)
}

// MaxSpeed returns the speed cap applied by Integrate.
func (p *ParticlePool) MaxSpeed() float64 {
	return p.maxSpeed
}

// Clamped returns how many particles hit the speed cap in the last Integrate.
func (p *ParticlePool) Clamped() int {
	return p.clamped
}

// Position returns the position of particle i.
func (p *ParticlePool) Position(i int) r2.Vec {
	pos, _, _ := p.mapper.Get(p.ids[i])
	return pos.Vec
}

// Velocity returns the velocity of particle i.
func (p *ParticlePool) Velocity(i int) r2.Vec {
	_, vel, _ := p.mapper.Get(p.ids[i])
	return vel.Vec
}

// Acceleration returns the pending acceleration of particle i.
func (p *ParticlePool) Acceleration(i int) r2.Vec {
	_, _, acc := p.mapper.Get(p.ids[i])
	return acc.Vec
}

// SetPosition places particle i at pos.
func (p *ParticlePool) SetPosition(i int, pos r2.Vec) {
	c, _, _ := p.mapper.Get(p.ids[i])
	c.Vec = pos
}

// SetVelocity overwrites the velocity of particle i.
func (p *ParticlePool) SetVelocity(i int, vel r2.Vec) {
	_, c, _ := p.mapper.Get(p.ids[i])
	c.Vec = vel
}

// AddForce accumulates an extra acceleration on particle i for the next step.
func (p *ParticlePool) AddForce(i int, f r2.Vec) {
	_, _, c := p.mapper.Get(p.ids[i])
	c.Vec = r2.Add(c.Vec, f)
}

// Positions appends all particle positions to dst and returns it.
func (p *ParticlePool) Positions(dst []r2.Vec) []r2.Vec {
	query := p.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		dst = append(dst, pos.Vec)
	}
	return dst
}

// Speeds appends all particle speeds to dst and returns it.
func (p *ParticlePool) Speeds(dst []float64) []float64 {
	query := p.filter.Query()
	for query.Next() {
		_, vel, _ := query.Get()
		dst = append(dst, vel.Speed())
	}
	return dst
}
