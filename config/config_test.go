package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 900, cfg.Screen.Width)
	assert.Equal(t, 900, cfg.Screen.Height)
	assert.Equal(t, 50, cfg.Field.Width)
	assert.Equal(t, 50, cfg.Field.Height)
	assert.Equal(t, 100, cfg.Particles.Count)
	assert.Equal(t, 0.01, cfg.Field.DX)
	assert.Equal(t, 0.01, cfg.Field.DY)
	assert.Equal(t, 0.01, cfg.Field.DZ)
	assert.Equal(t, 5.0, cfg.Field.Magnitude)
	assert.Equal(t, 10.0, cfg.Particles.MaxSpeed)
	assert.Equal(t, 0.5, cfg.Particles.Radius)
	assert.Equal(t, 0.1, cfg.Physics.DT)
	assert.Equal(t, NoisePerlin, cfg.Noise.Kind)
	assert.Equal(t, ColorModeFixed, cfg.Particles.ColorMode)
	assert.Equal(t, ColorConfig{R: 0, G: 0, B: 0, A: 255}, cfg.Render.Background, "trails build up on black")
}

func TestLoadDerived(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2500, cfg.Derived.FieldLen)
	assert.Equal(t, 18.0, cfg.Derived.TileWidth)
	assert.Equal(t, 18.0, cfg.Derived.TileHeight)
	assert.Equal(t, 900.0, cfg.Derived.CanvasW)
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	override := "field:\n  width: 40\nnoise:\n  kind: simplex\n"
	require.NoError(t, os.WriteFile(path, []byte(override), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.Field.Width)
	assert.Equal(t, 50, cfg.Field.Height, "untouched keys keep defaults")
	assert.Equal(t, NoiseSimplex, cfg.Noise.Kind)
	assert.Equal(t, 2000, cfg.Derived.FieldLen)
	assert.Equal(t, 22.5, cfg.Derived.TileWidth)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown noise", "noise:\n  kind: worley\n"},
		{"zero field", "field:\n  width: 0\n"},
		{"no particles", "particles:\n  count: 0\n"},
		{"bad color mode", "particles:\n  color_mode: rainbow\n"},
		{"malformed", "screen: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Particles.Count = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Particles.Count)
	assert.Equal(t, cfg.Field, loaded.Field)
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	assert.Panics(t, func() { Cfg() })

	require.NoError(t, Init(""))
	assert.NotNil(t, Cfg())
}
