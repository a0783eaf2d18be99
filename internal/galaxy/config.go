package galaxy

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Range is an inclusive numeric interval
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// DebrisLayer describes one band of the decorative spiral
type DebrisLayer struct {
	Count        int     `yaml:"count"`
	MinRadius    float64 `yaml:"min_radius"`
	MaxRadius    float64 `yaml:"max_radius"`
	HeightSpread float64 `yaml:"height_spread"`
}

// TextRing describes one orbiting ring of text
type TextRing struct {
	Text   string  `yaml:"text" json:"text"`
	Color  string  `yaml:"color" json:"color"`
	Size   float64 `yaml:"size" json:"size"`
	Radius float64 `yaml:"radius" json:"radius"`
	Speed  float64 `yaml:"speed" json:"speed"`
	Height float64 `yaml:"height" json:"height"`
}

// Config holds the tunable constants of the visualization
type Config struct {
	AutoZoomTimeout time.Duration `yaml:"auto_zoom_timeout"`
	OrbitRadius     Range         `yaml:"orbit_radius"`
	SpiralArms      int           `yaml:"spiral_arms"`
	RotationSpeed   float64       `yaml:"rotation_speed"`
	ZoomLevel       float64       `yaml:"zoom_level"`
	ParticleCount   int           `yaml:"particle_count"`
	GalaxyRadius    float64       `yaml:"galaxy_radius"`
	HoverScale      float64       `yaml:"hover_scale"`

	OverviewSpeed float64 `yaml:"overview_speed_multiplier"`
	FocusSpeed    float64 `yaml:"focus_speed_multiplier"`

	ZoomInDuration  time.Duration `yaml:"zoom_in_duration"`
	ZoomOutDuration time.Duration `yaml:"zoom_out_duration"`
	DebrisFade      time.Duration `yaml:"debris_fade"`

	CompactRadius float64 `yaml:"compact_radius"`
	DetailSize    float64 `yaml:"detail_size"`

	DebrisLayers []DebrisLayer `yaml:"debris_layers"`
	DebrisArms   int           `yaml:"debris_arms"`
	Tightness    float64       `yaml:"debris_tightness"`
	Rotations    float64       `yaml:"debris_rotations"`

	TextRings []TextRing `yaml:"text_rings"`

	StarfieldExtent float64 `yaml:"starfield_extent"`

	Startup Startup `yaml:"startup"`
}

// Startup holds the timed intro steps, each relative to the previous one
// except OverviewInit, which is relative to start.
type Startup struct {
	HideLoading   time.Duration `yaml:"hide_loading"`
	RemoveLoading time.Duration `yaml:"remove_loading"`
	ShowWelcome   time.Duration `yaml:"show_welcome"`
	HideWelcome   time.Duration `yaml:"hide_welcome"`
	OverviewInit  time.Duration `yaml:"overview_init"`
}

// DefaultConfig returns the stock galaxy
func DefaultConfig() *Config {
	return &Config{
		AutoZoomTimeout: 1500 * time.Millisecond,
		OrbitRadius:     Range{Min: 25, Max: 45},
		SpiralArms:      4,
		RotationSpeed:   0.3,
		ZoomLevel:       65,
		ParticleCount:   300,
		GalaxyRadius:    100,
		HoverScale:      1.2,
		OverviewSpeed:   4.0,
		FocusSpeed:      1.0,
		ZoomInDuration:  600 * time.Millisecond,
		ZoomOutDuration: 800 * time.Millisecond,
		DebrisFade:      400 * time.Millisecond,
		CompactRadius:   0.8,
		DetailSize:      4,
		DebrisLayers: []DebrisLayer{
			{Count: 1500, MinRadius: 18, MaxRadius: 35, HeightSpread: 3},
			{Count: 1200, MinRadius: 32, MaxRadius: 55, HeightSpread: 4},
			{Count: 1000, MinRadius: 52, MaxRadius: 75, HeightSpread: 6},
			{Count: 700, MinRadius: 72, MaxRadius: 95, HeightSpread: 8},
		},
		DebrisArms: 2,
		Tightness:  1.2,
		Rotations:  3,
		TextRings: []TextRing{
			{Text: "I LOVE YOU", Color: "#fb00ff", Size: 0.8, Radius: 50, Speed: 0.005, Height: 0},
			{Text: "I LOVE YOU", Color: "#da00ff", Size: 0.6, Radius: 65, Speed: -0.003, Height: 8},
			{Text: "I LOVE YOU", Color: "#9400d3", Size: 0.5, Radius: 80, Speed: 0.002, Height: -6},
		},
		StarfieldExtent: 120,
		Startup: Startup{
			HideLoading:   2000 * time.Millisecond,
			RemoveLoading: 1000 * time.Millisecond,
			ShowWelcome:   1000 * time.Millisecond,
			HideWelcome:   3000 * time.Millisecond,
			OverviewInit:  1000 * time.Millisecond,
		},
	}
}

// LoadConfig reads a YAML file over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read galaxy config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse galaxy config: %w", err)
	}
	defaults := DefaultConfig()
	if cfg.HoverScale <= 0 {
		cfg.HoverScale = defaults.HoverScale
	}
	if cfg.DebrisArms <= 0 {
		cfg.DebrisArms = defaults.DebrisArms
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the motion formulas cannot handle
func (c *Config) Validate() error {
	if c.SpiralArms <= 0 {
		return fmt.Errorf("spiral_arms must be positive, got %d", c.SpiralArms)
	}
	if c.OrbitRadius.Min < 0 || c.OrbitRadius.Max < c.OrbitRadius.Min {
		return fmt.Errorf("invalid orbit_radius %v..%v", c.OrbitRadius.Min, c.OrbitRadius.Max)
	}
	if c.AutoZoomTimeout <= 0 {
		return fmt.Errorf("auto_zoom_timeout must be positive")
	}
	if c.ZoomInDuration < 0 || c.ZoomOutDuration < 0 || c.DebrisFade < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if c.HoverScale <= 0 {
		return fmt.Errorf("hover_scale must be positive, got %v", c.HoverScale)
	}
	if c.DebrisArms <= 0 {
		return fmt.Errorf("debris_arms must be positive, got %d", c.DebrisArms)
	}
	return nil
}
