package galaxy

import (
	"math"
	"math/rand"
)

// Overlay is the page chrome driven by the startup sequence
type Overlay struct {
	LoadingVisible bool `json:"loadingVisible"`
	LoadingRemoved bool `json:"loadingRemoved"`
	WelcomeVisible bool `json:"welcomeVisible"`
}

// Core is the pulsing sphere at the center
type Core struct {
	Radius float64 `json:"radius"`
	Scale  float64 `json:"scale"`
}

// Scene holds every descriptor the renderer draws. It carries no drawing
// code; see the render package for the adapter.
type Scene struct {
	Objects   []*Object  `json:"objects"`
	Debris    []*Debris  `json:"debris"`
	Rings     []*Ring    `json:"rings"`
	Starfield *Starfield `json:"starfield"`
	Core      Core       `json:"core"`
	Camera    Camera     `json:"camera"`
	Overlay   Overlay    `json:"overlay"`
}

// Build lays out sources around the center. Objects are spread evenly by
// index; radius, height and speed are drawn from rng, so a fixed seed
// reproduces the same layout. Every object starts in Overview.
func Build(sources []Source, cfg *Config, rng *rand.Rand, aspect float64) *Scene {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	sc := &Scene{
		Camera:  newCamera(aspect),
		Core:    Core{Radius: 8, Scale: 1},
		Overlay: Overlay{LoadingVisible: true},
	}

	n := len(sources)
	sc.Objects = make([]*Object, 0, n)
	for i, src := range sources {
		angle := float64(i) / float64(n) * 2 * math.Pi
		o := &Object{
			Index:     i,
			Source:    src,
			BaseAngle: angle,
			Angle:     angle,
			Radius:    cfg.OrbitRadius.Min + rng.Float64()*(cfg.OrbitRadius.Max-cfg.OrbitRadius.Min),
			Height:    (rng.Float64() - 0.5) * 15,
			Speed:     0.02 + rng.Float64()*0.01,
		}
		o.Position = Vec3{X: math.Cos(angle) * o.Radius, Y: o.Height, Z: math.Sin(angle) * o.Radius}
		o.Facing = sc.Camera.Position
		o.Asset = newAsset(src, placeholderColor(rng))
		o.showFor(ModeOverview)
		sc.Objects = append(sc.Objects, o)
	}

	sc.Debris = buildDebris(cfg, rng)
	sc.Rings = buildRings(cfg)
	sc.Starfield = buildStarfield(cfg, rng)
	return sc
}

// VisibleCounts returns how many compact and detail representations are shown
func (s *Scene) VisibleCounts() (compact, detail int) {
	for _, o := range s.Objects {
		if o.Compact.Visible {
			compact++
		}
		if o.Detail.Visible {
			detail++
		}
	}
	return compact, detail
}
