// Package config provides configuration loading and access for the visualizer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Noise kinds accepted by NoiseConfig.Kind.
const (
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
	NoiseFBM     = "fbm"
)

// Particle colour modes accepted by ParticlesConfig.ColorMode.
const (
	ColorModeFixed = "fixed"
	ColorModeHue   = "hue"
)

// Config holds all visualizer configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Field     FieldConfig     `yaml:"field"`
	Particles ParticlesConfig `yaml:"particles"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Noise     NoiseConfig     `yaml:"noise"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Render    RenderConfig    `yaml:"render"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The canvas is the whole window.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	MSAA      bool   `yaml:"msaa"`
	Title     string `yaml:"title"`
}

// FieldConfig holds flow field grid and sampling parameters.
type FieldConfig struct {
	Width     int     `yaml:"width"`     // Cells along x; also the flat index stride
	Height    int     `yaml:"height"`    // Cells along y
	DX        float64 `yaml:"dx"`        // Noise-space spacing between columns
	DY        float64 `yaml:"dy"`        // Noise-space spacing between rows
	DZ        float64 `yaml:"dz"`        // Time offset advance per frame
	Magnitude float64 `yaml:"magnitude"` // Length of every field vector
}

// ColorConfig is an 8-bit RGBA colour.
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// ParticlesConfig holds particle population and drawing parameters.
type ParticlesConfig struct {
	Count     int         `yaml:"count"`
	MaxSpeed  float64     `yaml:"max_speed"`
	Radius    float64     `yaml:"radius"`
	Color     ColorConfig `yaml:"color"`
	ColorMode string      `yaml:"color_mode"`
	HueStep   float64     `yaml:"hue_step"` // Degrees per frame in hue mode
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// NoiseConfig selects and parameterizes the noise source.
type NoiseConfig struct {
	Kind       string  `yaml:"kind"`
	FBMAlpha   float64 `yaml:"fbm_alpha"`   // Per-octave amplitude divisor
	FBMBeta    float64 `yaml:"fbm_beta"`    // Per-octave frequency multiplier
	FBMOctaves int32   `yaml:"fbm_octaves"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Frames per stats window
	PerfWindow  int `yaml:"perf_window"`  // Frames averaged by the perf collector
}

// RenderConfig holds canvas and debug rendering options.
type RenderConfig struct {
	Background ColorConfig `yaml:"background"` // Trail canvas clear colour
	ShowField  bool        `yaml:"show_field"`
	FieldScale float64     `yaml:"field_scale"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FieldLen   int     // Field.Width * Field.Height
	TileWidth  float64 // Screen.Width / Field.Width
	TileHeight float64 // Screen.Height / Field.Height
	CanvasW    float64 // Screen.Width as float64
	CanvasH    float64 // Screen.Height as float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("invalid screen size %dx%d", c.Screen.Width, c.Screen.Height)
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("invalid field size %dx%d", c.Field.Width, c.Field.Height)
	case c.Particles.Count <= 0:
		return fmt.Errorf("invalid particle count %d", c.Particles.Count)
	case c.Particles.MaxSpeed <= 0:
		return fmt.Errorf("invalid max speed %g", c.Particles.MaxSpeed)
	}

	switch c.Noise.Kind {
	case NoisePerlin, NoiseSimplex, NoiseFBM:
	default:
		return fmt.Errorf("unknown noise kind %q", c.Noise.Kind)
	}

	switch c.Particles.ColorMode {
	case ColorModeFixed, ColorModeHue:
	default:
		return fmt.Errorf("unknown color mode %q", c.Particles.ColorMode)
	}

	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FieldLen = c.Field.Width * c.Field.Height
	c.Derived.CanvasW = float64(c.Screen.Width)
	c.Derived.CanvasH = float64(c.Screen.Height)
	c.Derived.TileWidth = c.Derived.CanvasW / float64(c.Field.Width)
	c.Derived.TileHeight = c.Derived.CanvasH / float64(c.Field.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
