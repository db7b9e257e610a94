package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestWrapAxis(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"just below zero", -0.001, 900},
		{"far below zero", -50, 900},
		{"exactly extent", 900, 0},
		{"past extent", 912.5, 0},
		{"zero", 0, 0},
		{"interior", 123.456, 123.456},
		{"just inside", 899.999, 899.999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapAxis(tt.in, 900))
		})
	}
}

func TestNewParticlePoolPlacement(t *testing.T) {
	grid := testGrid()
	pool := NewParticlePool(100, grid, 10, rand.New(rand.NewSource(42)))

	require.Equal(t, 100, pool.Len())
	for i := 0; i < pool.Len(); i++ {
		pos := pool.Position(i)
		assert.GreaterOrEqual(t, pos.X, 0.0)
		assert.Less(t, pos.X, grid.CanvasW)
		assert.GreaterOrEqual(t, pos.Y, 0.0)
		assert.Less(t, pos.Y, grid.CanvasH)
		assert.Equal(t, r2.Vec{}, pool.Velocity(i))
		assert.Equal(t, r2.Vec{}, pool.Acceleration(i))
	}
}

func TestNewParticlePoolSeeded(t *testing.T) {
	a := NewParticlePool(10, testGrid(), 10, rand.New(rand.NewSource(3)))
	b := NewParticlePool(10, testGrid(), 10, rand.New(rand.NewSource(3)))

	assert.Equal(t, a.Positions(nil), b.Positions(nil))
}

func TestIntegrateSingleStep(t *testing.T) {
	field := NewFlowField(testGrid(), testParams())
	pool := NewParticlePoolAt([]r2.Vec{{X: 450, Y: 450}}, 10)

	idx := field.Grid().CellIndex(pool.Position(0))
	field.Set(idx, r2.Vec{X: 3, Y: 4})

	pool.Integrate(field, 0.1)

	vel := pool.Velocity(0)
	assert.InDelta(t, 0.03, vel.X, 1e-12)
	assert.InDelta(t, 0.04, vel.Y, 1e-12)

	pos := pool.Position(0)
	assert.InDelta(t, 450.003, pos.X, 1e-9)
	assert.InDelta(t, 450.004, pos.Y, 1e-9)

	assert.Equal(t, r2.Vec{}, pool.Acceleration(0))
	assert.Equal(t, 0, pool.Clamped())
}

func TestIntegrateUsesPendingForce(t *testing.T) {
	field := NewFlowField(testGrid(), testParams())
	pool := NewParticlePoolAt([]r2.Vec{{X: 100, Y: 100}}, 10)

	pool.AddForce(0, r2.Vec{X: 1, Y: 0})
	pool.Integrate(field, 0.5)

	assert.InDelta(t, 0.5, pool.Velocity(0).X, 1e-12)
	assert.Equal(t, r2.Vec{}, pool.Acceleration(0))
}

func TestIntegrateClampsSpeed(t *testing.T) {
	field := NewFlowField(testGrid(), testParams())
	pool := NewParticlePoolAt([]r2.Vec{{X: 100, Y: 100}, {X: 200, Y: 200}}, 10)

	pool.SetVelocity(0, r2.Vec{X: 30, Y: 40})
	pool.SetVelocity(1, r2.Vec{X: 1, Y: 1})
	pool.Integrate(field, 0.1)

	vel := pool.Velocity(0)
	assert.InDelta(t, 10, r2.Norm(vel), 1e-9)
	assert.InDelta(t, 6, vel.X, 1e-9, "direction preserved")
	assert.InDelta(t, 8, vel.Y, 1e-9, "direction preserved")
	assert.Equal(t, r2.Vec{X: 1, Y: 1}, pool.Velocity(1))
	assert.Equal(t, 1, pool.Clamped())
}

func TestIntegrateClampAtExactLimit(t *testing.T) {
	field := NewFlowField(testGrid(), testParams())
	pool := NewParticlePoolAt([]r2.Vec{{X: 100, Y: 100}}, 10)

	pool.SetVelocity(0, r2.Vec{X: 0, Y: 10})
	pool.Integrate(field, 0.1)

	assert.InDelta(t, 10, r2.Norm(pool.Velocity(0)), 1e-12)
	assert.Equal(t, 1, pool.Clamped(), "a speed equal to the cap counts as clamped")
}

func TestIntegrateWrapsEachAxis(t *testing.T) {
	field := NewFlowField(testGrid(), testParams())
	pool := NewParticlePoolAt([]r2.Vec{
		{X: 0.0005, Y: 450},
		{X: 450, Y: 899.9995},
		{X: 0.0005, Y: 899.9995},
	}, 10)

	pool.SetVelocity(0, r2.Vec{X: -0.01, Y: 0})
	pool.SetVelocity(1, r2.Vec{X: 0, Y: 0.01})
	pool.SetVelocity(2, r2.Vec{X: -0.01, Y: 0.01})
	pool.Integrate(field, 0.1)

	assert.Equal(t, 900.0, pool.Position(0).X)
	assert.Equal(t, 450.0, pool.Position(0).Y)

	assert.Equal(t, 450.0, pool.Position(1).X)
	assert.Equal(t, 0.0, pool.Position(1).Y)

	assert.Equal(t, 900.0, pool.Position(2).X)
	assert.Equal(t, 0.0, pool.Position(2).Y)
}

func TestIntegrateFromFarEdge(t *testing.T) {
	// A particle left exactly on the far edge by a previous wrap must still
	// read a valid cell and keep moving.
	field := NewFlowField(testGrid(), testParams())
	field.Generate(NewPerlinNoise(1), 0)
	pool := NewParticlePoolAt([]r2.Vec{{X: 900, Y: 900}}, 10)

	assert.NotPanics(t, func() { pool.Integrate(field, 0.1) })
	pos := pool.Position(0)
	assert.GreaterOrEqual(t, pos.X, 0.0)
	assert.LessOrEqual(t, pos.X, 900.0)
	assert.GreaterOrEqual(t, pos.Y, 0.0)
	assert.LessOrEqual(t, pos.Y, 900.0)
}

func TestIntegrateManyFramesInvariants(t *testing.T) {
	grid := testGrid()
	noise := NewPerlinNoise(42)
	field := NewFlowField(grid, FieldParams{DX: 0.01, DY: 0.01, Magnitude: 500})
	pool := NewParticlePool(100, grid, 10, rand.New(rand.NewSource(42)))

	z := 0.0
	for frame := 0; frame < 300; frame++ {
		field.Generate(noise, z)
		pool.Integrate(field, 0.1)
		z += 0.01

		for i := 0; i < pool.Len(); i++ {
			require.LessOrEqual(t, r2.Norm(pool.Velocity(i)), 10+1e-9, "frame %d particle %d", frame, i)
			require.Equal(t, r2.Vec{}, pool.Acceleration(i))

			pos := pool.Position(i)
			require.True(t, pos.X >= 0 && pos.X <= grid.CanvasW, "x=%v", pos.X)
			require.True(t, pos.Y >= 0 && pos.Y <= grid.CanvasH, "y=%v", pos.Y)
		}
	}
}

func TestParticlesAreIndependent(t *testing.T) {
	field := NewFlowField(testGrid(), testParams())
	field.Generate(NewPerlinNoise(9), 0.3)

	start := r2.Vec{X: 321, Y: 654}
	alone := NewParticlePoolAt([]r2.Vec{start}, 10)
	crowd := NewParticlePoolAt([]r2.Vec{start, {X: 10, Y: 10}, {X: 320, Y: 650}}, 10)

	for i := 0; i < 20; i++ {
		alone.Integrate(field, 0.1)
		crowd.Integrate(field, 0.1)
	}

	assert.Equal(t, alone.Position(0), crowd.Position(0))
	assert.Equal(t, alone.Velocity(0), crowd.Velocity(0))
}

func TestSpeeds(t *testing.T) {
	pool := NewParticlePoolAt([]r2.Vec{{X: 1, Y: 1}, {X: 2, Y: 2}}, 10)
	pool.SetVelocity(0, r2.Vec{X: 3, Y: 4})

	speeds := pool.Speeds(nil)
	assert.ElementsMatch(t, []float64{5, 0}, speeds)
}
