// Package render turns galaxy descriptors into a flat scene graph of
// drawing primitives that a browser client can hand to its 3D library.
package render

import (
	"fmt"

	"github.com/orbitshare/orbit-api/internal/galaxy"
)

// Primitive kinds
const (
	KindSphere = "sphere"
	KindPlane  = "plane"
	KindPoints = "points"
	KindRing   = "text_ring"
)

// Node is one drawable
type Node struct {
	ID       string       `json:"id"`
	Kind     string       `json:"kind"`
	Position galaxy.Vec3  `json:"position"`
	Scale    float64      `json:"scale"`
	Opacity  float64      `json:"opacity"`
	Visible  bool         `json:"visible"`
	Size     float64      `json:"size,omitempty"`
	Color    string       `json:"color,omitempty"`
	Texture  string       `json:"texture,omitempty"`
	LookAt   *galaxy.Vec3 `json:"lookAt,omitempty"`
	Rotation float64      `json:"rotation,omitempty"`
	Text     string       `json:"text,omitempty"`
	Points   []Point      `json:"points,omitempty"`
	FileID   string       `json:"fileId,omitempty"`
}

// Point is one vertex of a points node
type Point struct {
	Position galaxy.Vec3 `json:"p"`
	Size     float64     `json:"s,omitempty"`
	Opacity  float64     `json:"o,omitempty"`
	Color    string      `json:"c,omitempty"`
}

// Frame is everything needed to draw one frame
type Frame struct {
	Mode          galaxy.Mode    `json:"mode"`
	Transitioning bool           `json:"transitioning"`
	Hovered       int            `json:"hovered"`
	Camera        galaxy.Camera  `json:"camera"`
	Overlay       galaxy.Overlay `json:"overlay"`
	Nodes         []Node         `json:"nodes"`
}

// View is the read side of a running engine
type View interface {
	Scene() *galaxy.Scene
	Mode() galaxy.Mode
	Transitioning() bool
	Hovered() int
}

// Options trims the frame
type Options struct {
	// MaxDebris caps the debris points emitted; 0 means all
	MaxDebris int
	// SkipStarfield leaves out the background points
	SkipStarfield bool
}

// Render converts the current state of v into a frame. Each object yields
// a sphere and a plane node; only the one matching the mode is visible.
func Render(v View, cfg *galaxy.Config, opts Options) Frame {
	sc := v.Scene()
	f := Frame{
		Mode:          v.Mode(),
		Transitioning: v.Transitioning(),
		Hovered:       v.Hovered(),
		Camera:        sc.Camera,
		Overlay:       sc.Overlay,
	}

	f.Nodes = append(f.Nodes, Node{
		ID: "core", Kind: KindSphere, Size: sc.Core.Radius, Scale: sc.Core.Scale,
		Opacity: 1, Visible: true, Color: "#ff66cc",
	})

	for _, o := range sc.Objects {
		f.Nodes = append(f.Nodes, compactNode(o), detailNode(o, cfg))
	}

	if dn, ok := debrisNode(sc.Debris, opts.MaxDebris); ok {
		f.Nodes = append(f.Nodes, dn)
	}

	for i, r := range sc.Rings {
		f.Nodes = append(f.Nodes, Node{
			ID: fmt.Sprintf("ring-%d", i), Kind: KindRing,
			Position: galaxy.Vec3{Y: r.Height}, Size: r.Radius, Scale: r.Size,
			Opacity: 0.8, Visible: r.Visible, Color: r.Color, Text: r.Text, Rotation: r.Rotation,
		})
	}

	if !opts.SkipStarfield && sc.Starfield != nil {
		pts := make([]Point, len(sc.Starfield.Stars))
		for i, s := range sc.Starfield.Stars {
			pts[i] = Point{Position: s.Position, Color: s.Color}
		}
		f.Nodes = append(f.Nodes, Node{
			ID: "starfield", Kind: KindPoints, Size: 0.5, Scale: 1, Opacity: 0.7,
			Visible: true, Rotation: sc.Starfield.Rotation, Points: pts,
		})
	}
	return f
}

func compactNode(o *galaxy.Object) Node {
	return Node{
		ID:       fmt.Sprintf("object-%d-compact", o.Index),
		Kind:     KindSphere,
		Position: o.Position,
		Scale:    o.Compact.Scale,
		Opacity:  1,
		Visible:  o.Compact.Visible,
		Size:     0.8,
		Color:    "#ffffff",
		FileID:   o.Source.ID,
	}
}

// detailNode draws the loaded image, or the placeholder fill of identical size
func detailNode(o *galaxy.Object, cfg *galaxy.Config) Node {
	size := 4.0
	if cfg != nil && cfg.DetailSize > 0 {
		size = cfg.DetailSize
	}
	facing := o.Facing
	n := Node{
		ID:       fmt.Sprintf("object-%d-detail", o.Index),
		Kind:     KindPlane,
		Position: o.Position,
		Scale:    o.Detail.Scale,
		Opacity:  1,
		Visible:  o.Detail.Visible,
		Size:     size,
		LookAt:   &facing,
		FileID:   o.Source.ID,
	}
	if o.Asset.Status == galaxy.AssetPlaceholder {
		n.Color = o.Asset.Color
	} else {
		n.Texture = o.Asset.URL()
	}
	return n
}

func debrisNode(debris []*galaxy.Debris, max int) (Node, bool) {
	var pts []Point
	for _, d := range debris {
		if !d.Visible {
			continue
		}
		if max > 0 && len(pts) >= max {
			break
		}
		pts = append(pts, Point{Position: d.Position, Size: d.Size * d.Scale, Opacity: d.Opacity})
	}
	if len(pts) == 0 {
		return Node{}, false
	}
	return Node{ID: "debris", Kind: KindPoints, Scale: 1, Opacity: 1, Visible: true, Color: "#ffffff", Points: pts}, true
}
