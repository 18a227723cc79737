// Package config provides configuration loading and access for the particle grid.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Grid        GridConfig        `yaml:"grid"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Camera      CameraConfig      `yaml:"camera"`
	Render      RenderConfig      `yaml:"render"`
	Interaction InteractionConfig `yaml:"interaction"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	UI          UIConfig          `yaml:"ui"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// GridConfig holds particle grid parameters.
type GridConfig struct {
	Size int `yaml:"size"` // Particles per side; the grid holds Size*Size particles
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	Damping float64 `yaml:"damping"` // Attraction velocity = (target - position) / damping
}

// CameraConfig holds the initial camera placement and projection.
type CameraConfig struct {
	Position   [3]float64 `yaml:"position"`
	Target     [3]float64 `yaml:"target"`
	Fovy       float64    `yaml:"fovy"` // Degrees
	Near       float64    `yaml:"near"`
	Far        float64    `yaml:"far"`
	OrbitSpeed float64    `yaml:"orbit_speed"` // Radians per frame while an arrow key is held
	DollySpeed float64    `yaml:"dolly_speed"` // Distance factor per wheel notch
}

// RenderConfig holds rendering parameters.
type RenderConfig struct {
	ClearColor    [4]float64 `yaml:"clear_color"`
	AdditiveBlend bool       `yaml:"additive_blend"`
	PointSize     float64    `yaml:"point_size"` // World-space edge length of each particle quad
}

// InteractionConfig holds pointer interaction parameters.
type InteractionConfig struct {
	ClickTarget      bool    `yaml:"click_target"`       // Initial state of the targeting toggle
	UnprojectUpScale float64 `yaml:"unproject_up_scale"` // Camera up offset applied during unprojection
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// UIConfig holds overlay visibility defaults.
type UIConfig struct {
	ShowPanel bool `yaml:"show_panel"`
	ShowStats bool `yaml:"show_stats"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Damping32     float32    // Physics.Damping as float32
	ScreenW32     float32    // Screen.Width as float32
	ScreenH32     float32    // Screen.Height as float32
	ClearColor32  [4]float32 // Render.ClearColor as float32
	StatsWindowFr int        // Telemetry.StatsWindow in frames at Screen.TargetFPS
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Grid.Size <= 0 {
		return fmt.Errorf("grid.size must be positive, got %d", c.Grid.Size)
	}
	if c.Physics.Damping == 0 {
		return fmt.Errorf("physics.damping must be non-zero")
	}
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip planes invalid: near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Damping32 = float32(c.Physics.Damping)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	for i, v := range c.Render.ClearColor {
		c.Derived.ClearColor32[i] = float32(v)
	}

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.StatsWindowFr = int(c.Telemetry.StatsWindow * float64(fps))
	if c.Derived.StatsWindowFr < 1 {
		c.Derived.StatsWindowFr = 1
	}
}

// WriteYAML saves the configuration to a file.
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
