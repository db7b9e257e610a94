// Package components defines the ECS components of a flow particle.
//
// Every particle lives in a single archetype, so the ECS keeps each component
// in its own contiguous column: positions, velocities and accelerations are
// stored structure-of-arrays.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is a particle's location in canvas pixel space.
type Position struct {
	r2.Vec
}

// Velocity is a particle's rate of motion in pixels per step.
type Velocity struct {
	r2.Vec
}

// Acceleration accumulates the field force applied during one step.
// It is cleared after every integration step.
type Acceleration struct {
	r2.Vec
}

// Speed returns the velocity magnitude.
func (v Velocity) Speed() float64 {
	return r2.Norm(v.Vec)
}
