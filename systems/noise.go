package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/flowfield/config"
)

// NoiseSource samples a 3D coherent noise volume.
// Values lie approximately in [-1, 1]. Implementations are read-only after
// construction and may be shared between frames.
type NoiseSource interface {
	Noise3D(x, y, z float64) float64
}

// NewNoiseSource builds the noise source selected by cfg, seeded with seed.
func NewNoiseSource(cfg config.NoiseConfig, seed int64) (NoiseSource, error) {
	switch cfg.Kind {
	case config.NoisePerlin:
		return NewPerlinNoise(seed), nil
	case config.NoiseSimplex:
		return NewSimplexNoise(seed), nil
	case config.NoiseFBM:
		return NewFBMNoise(cfg.FBMAlpha, cfg.FBMBeta, cfg.FBMOctaves, seed), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", cfg.Kind)
	}
}

// PerlinNoise generates classic gradient noise from a shuffled permutation table.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Fisher-Yates
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate so corner hashes never index past the table
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Noise3D returns a noise value for 3D coordinates.
func (p *PerlinNoise) Noise3D(x, y, z float64) float64 {
	// Unit cube containing the point
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255
	Z := int(math.Floor(z)) & 255

	// Position inside the cube
	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	// Hash coordinates of cube corners
	A := p.perm[X] + Y
	AA := p.perm[A] + Z
	AB := p.perm[A+1] + Z
	B := p.perm[X+1] + Y
	BA := p.perm[B] + Z
	BB := p.perm[B+1] + Z

	return lerp(w, lerp(v, lerp(u, grad3D(p.perm[AA], x, y, z),
		grad3D(p.perm[BA], x-1, y, z)),
		lerp(u, grad3D(p.perm[AB], x, y-1, z),
			grad3D(p.perm[BB], x-1, y-1, z))),
		lerp(v, lerp(u, grad3D(p.perm[AA+1], x, y, z-1),
			grad3D(p.perm[BA+1], x-1, y, z-1)),
			lerp(u, grad3D(p.perm[AB+1], x, y-1, z-1),
				grad3D(p.perm[BB+1], x-1, y-1, z-1))))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad3D(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// SimplexNoise adapts OpenSimplex noise to NoiseSource.
type SimplexNoise struct {
	noise opensimplex.Noise
}

// NewSimplexNoise creates an OpenSimplex generator with output in [-1, 1].
func NewSimplexNoise(seed int64) *SimplexNoise {
	return &SimplexNoise{noise: opensimplex.New(seed)}
}

// Noise3D returns a noise value for 3D coordinates.
func (s *SimplexNoise) Noise3D(x, y, z float64) float64 {
	return s.noise.Eval3(x, y, z)
}

// FBMNoise sums several octaves of Perlin noise.
type FBMNoise struct {
	perlin *perlin.Perlin
}

// NewFBMNoise creates a fractal noise generator.
// alpha divides the amplitude and beta multiplies the frequency at each of
// the octaves.
func NewFBMNoise(alpha, beta float64, octaves int32, seed int64) *FBMNoise {
	if octaves < 1 {
		octaves = 1
	}
	return &FBMNoise{perlin: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Noise3D returns a noise value for 3D coordinates.
func (f *FBMNoise) Noise3D(x, y, z float64) float64 {
	return f.perlin.Noise3D(x, y, z)
}
