package galaxy

import (
	"fmt"
	"math"
	"math/rand"
)

// Debris is one decorative particle of the spiral dust field
type Debris struct {
	Layer  int     `json:"layer"`
	Arm    int     `json:"arm"`
	Angle  float64 `json:"angle"`
	Radius float64 `json:"radius"`
	Height float64 `json:"height"`
	Speed  float64 `json:"speed"`
	Size   float64 `json:"size"`

	TwinklePhase float64 `json:"-"`
	BaseOpacity  float64 `json:"-"`

	Position Vec3    `json:"position"`
	Visible  bool    `json:"visible"`
	Opacity  float64 `json:"opacity"`
	Scale    float64 `json:"scale"`
}

func buildDebris(cfg *Config, rng *rand.Rand) []*Debris {
	var out []*Debris
	for li, layer := range cfg.DebrisLayers {
		perArm := layer.Count / cfg.DebrisArms
		for arm := 0; arm < cfg.DebrisArms; arm++ {
			for i := 0; i < perArm; i++ {
				t := float64(i) / float64(perArm)
				radius := layer.MinRadius + t*(layer.MaxRadius-layer.MinRadius)
				armOffset := float64(arm) * math.Pi
				spiral := armOffset + t*cfg.Rotations*2*math.Pi*cfg.Tightness

				angle := spiral + (rng.Float64()-0.5)*0.1
				radius += (rng.Float64() - 0.5) * 1.5
				height := (rng.Float64() - 0.5) * (layer.HeightSpread * 0.7)

				d := &Debris{
					Layer:        li,
					Arm:          arm,
					Angle:        angle,
					Radius:       radius,
					Height:       height,
					Speed:        0.001 + rng.Float64()*0.0005,
					Size:         0.1 + rng.Float64()*0.15,
					TwinklePhase: rng.Float64() * 2 * math.Pi,
					BaseOpacity:  1,
					Scale:        1,
				}
				d.Position = d.orbitPosition()
				out = append(out, d)
			}
		}
	}
	return out
}

func (d *Debris) orbitPosition() Vec3 {
	return Vec3{X: math.Cos(d.Angle) * d.Radius, Y: d.Height, Z: math.Sin(d.Angle) * d.Radius}
}

// brighten puts the particle in its Overview look
func (d *Debris) brighten() {
	d.Visible = true
	d.Opacity = math.Min(1, d.BaseOpacity*1.8)
	d.Scale = 2
}

// overviewStep orbits and twinkles the particle for one frame
func (d *Debris) overviewStep(multiplier float64) {
	d.Angle += d.Speed * multiplier
	d.Position = d.orbitPosition()
	d.brighten()
	d.TwinklePhase += 0.02
	d.Opacity *= 0.8 + math.Sin(d.TwinklePhase)*0.2
}

// Ring is an orbiting ring of text
type Ring struct {
	TextRing
	Rotation float64 `json:"rotation"`
	Visible  bool    `json:"visible"`
}

func buildRings(cfg *Config) []*Ring {
	rings := make([]*Ring, 0, len(cfg.TextRings))
	for _, r := range cfg.TextRings {
		rings = append(rings, &Ring{TextRing: r})
	}
	return rings
}

// Star is a point of the background starfield
type Star struct {
	Position Vec3   `json:"position"`
	Color    string `json:"color"`
}

// Starfield is the slowly rotating background
type Starfield struct {
	Stars    []Star  `json:"stars"`
	Rotation float64 `json:"rotation"`
}

func buildStarfield(cfg *Config, rng *rand.Rand) *Starfield {
	sf := &Starfield{Stars: make([]Star, 0, cfg.ParticleCount)}
	e := cfg.StarfieldExtent
	for i := 0; i < cfg.ParticleCount; i++ {
		pos := Vec3{
			X: (rng.Float64() - 0.5) * e,
			Y: (rng.Float64() - 0.5) * e,
			Z: (rng.Float64() - 0.5) * e,
		}
		var h, s, l float64
		switch c := rng.Float64(); {
		case c < 0.4:
			h, s, l = 0.75+rng.Float64()*0.1, 0.8, 0.7
		case c < 0.7:
			h, s, l = 0.65+rng.Float64()*0.1, 0.9, 0.6
		default:
			h, s, l = 0.6+rng.Float64()*0.05, 0.7, 0.8
		}
		sf.Stars = append(sf.Stars, Star{Position: pos, Color: hslHex(h, s, l)})
	}
	return sf
}

// placeholderColor picks a saturated fill for a missing image
func placeholderColor(rng *rand.Rand) string {
	return hslHex(rng.Float64(), 0.7, 0.6)
}

// hslHex converts HSL in [0,1] to #rrggbb
func hslHex(h, s, l float64) string {
	h = h - math.Floor(h)
	var r, g, b float64
	if s == 0 {
		r, g, b = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}
	return fmt.Sprintf("#%02x%02x%02x", int(math.Round(r*255)), int(math.Round(g*255)), int(math.Round(b*255)))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}
