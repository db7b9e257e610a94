package systems

import (
	"math/rand"

	"github.com/pthm-cable/flowfield/config"
)

// Simulation ties the noise source, flow field and particle pool together
// and advances them one frame at a time.
type Simulation struct {
	Noise     NoiseSource
	Field     *FlowField
	Particles *ParticlePool

	dt    float64
	dz    float64
	zOff  float64
	frame int64
}

// NewSimulation builds a simulation from cfg. The seed drives both the noise
// source and the initial particle placement. The field is generated once for
// z = 0 before returning.
func NewSimulation(cfg *config.Config, seed int64) (*Simulation, error) {
	noise, err := NewNoiseSource(cfg.Noise, seed)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	field := NewFlowFieldFromConfig(cfg)
	pool := NewParticlePool(cfg.Particles.Count, field.Grid(), cfg.Particles.MaxSpeed, rng)

	return NewSimulationWith(noise, field, pool, cfg.Physics.DT, cfg.Field.DZ), nil
}

// NewSimulationWith assembles a simulation from prebuilt parts.
func NewSimulationWith(noise NoiseSource, field *FlowField, pool *ParticlePool, dt, dz float64) *Simulation {
	s := &Simulation{
		Noise:     noise,
		Field:     field,
		Particles: pool,
		dt:        dt,
		dz:        dz,
	}
	s.Field.Generate(s.Noise, s.zOff)
	return s
}

// Step runs one frame: regenerate the field at the current time offset,
// integrate all particles against it, then advance the time offset.
func (s *Simulation) Step() {
	s.GenerateField()
	s.IntegrateParticles()
	s.Advance()
}

// GenerateField regenerates the field at the current time offset.
func (s *Simulation) GenerateField() {
	s.Field.Generate(s.Noise, s.zOff)
}

// IntegrateParticles moves every particle through the current field.
func (s *Simulation) IntegrateParticles() {
	s.Particles.Integrate(s.Field, s.dt)
}

// Advance moves the time offset forward by one frame.
func (s *Simulation) Advance() {
	s.zOff += s.dz
	s.frame++
}

// FirstFrame reports whether the time offset is still zero.
func (s *Simulation) FirstFrame() bool {
	return s.zOff == 0
}

// ShouldClear reports whether the trail canvas must be cleared before the
// current positions are painted: on the first frame, or when requested.
func (s *Simulation) ShouldClear(requested bool) bool {
	return requested || s.FirstFrame()
}

// ZOffset returns the current noise time offset.
func (s *Simulation) ZOffset() float64 {
	return s.zOff
}

// Frame returns the number of completed frames.
func (s *Simulation) Frame() int64 {
	return s.frame
}

// DT returns the integration step.
func (s *Simulation) DT() float64 {
	return s.dt
}
