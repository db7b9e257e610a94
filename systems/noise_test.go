package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/flowfield/config"
)

func TestNewNoiseSourceKinds(t *testing.T) {
	cfg := config.Defaults().Noise

	tests := []struct {
		kind string
		want NoiseSource
	}{
		{config.NoisePerlin, &PerlinNoise{}},
		{config.NoiseSimplex, &SimplexNoise{}},
		{config.NoiseFBM, &FBMNoise{}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cfg.Kind = tt.kind
			src, err := NewNoiseSource(cfg, 42)
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
		})
	}
}

func TestNewNoiseSourceUnknown(t *testing.T) {
	_, err := NewNoiseSource(config.NoiseConfig{Kind: "value"}, 1)
	assert.ErrorContains(t, err, "unknown noise kind")
}

func TestNoiseSourcesBoundedAndDeterministic(t *testing.T) {
	cfg := config.Defaults().Noise

	for _, kind := range []string{config.NoisePerlin, config.NoiseSimplex, config.NoiseFBM} {
		t.Run(kind, func(t *testing.T) {
			cfg.Kind = kind
			a, err := NewNoiseSource(cfg, 42)
			require.NoError(t, err)
			b, err := NewNoiseSource(cfg, 42)
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(1))
			for i := 0; i < 500; i++ {
				x := rng.Float64() * 10
				y := rng.Float64() * 10
				z := rng.Float64() * 10

				v := a.Noise3D(x, y, z)
				assert.Equal(t, v, b.Noise3D(x, y, z))
				assert.LessOrEqual(t, v, 2.0)
				assert.GreaterOrEqual(t, v, -2.0)
			}
		})
	}
}

func TestPerlinZeroOnLattice(t *testing.T) {
	p := NewPerlinNoise(5)

	for _, pt := range [][3]float64{{0, 0, 0}, {1, 2, 3}, {7, 0, 4}} {
		assert.Equal(t, 0.0, p.Noise3D(pt[0], pt[1], pt[2]))
	}
}

func TestPerlinSeedsDiffer(t *testing.T) {
	a := NewPerlinNoise(1)
	b := NewPerlinNoise(2)

	differ := false
	for i := 0; i < 50 && !differ; i++ {
		x := float64(i)*0.37 + 0.1
		differ = a.Noise3D(x, 0.5, 0.5) != b.Noise3D(x, 0.5, 0.5)
	}
	assert.True(t, differ)
}

func TestPerlinSmooth(t *testing.T) {
	p := NewPerlinNoise(42)

	// Neighbouring samples at field spacing change by a small amount
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.01
		d := p.Noise3D(x+0.01, 0.3, 0.2) - p.Noise3D(x, 0.3, 0.2)
		assert.Less(t, d*d, 0.01)
	}
}
