package galaxy

import "math"

// Camera is a perspective viewpoint pitched about the X axis
type Camera struct {
	Position  Vec3    `json:"position"`
	RotationX float64 `json:"rotationX"`
	FOV       float64 `json:"fov"` // vertical, degrees
	Aspect    float64 `json:"aspect"`
}

// Viewpoint is a camera target for a mode
type Viewpoint struct {
	Position  Vec3
	RotationX float64
}

func overviewViewpoint() Viewpoint {
	return Viewpoint{Position: Vec3{0, 50, 100}, RotationX: -0.5}
}

func focusViewpoint(zoom float64) Viewpoint {
	return Viewpoint{Position: Vec3{0, 0, zoom}, RotationX: 0}
}

func newCamera(aspect float64) Camera {
	vp := overviewViewpoint()
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	return Camera{Position: vp.Position, RotationX: vp.RotationX, FOV: 75, Aspect: aspect}
}

// RayFrom builds a picking ray through normalized device coordinates,
// x and y in [-1, 1] with y pointing up.
func (c Camera) RayFrom(x, y float64) Ray {
	half := math.Tan(c.FOV * math.Pi / 360)
	d := Vec3{X: x * half * c.Aspect, Y: y * half, Z: -1}
	cos, sin := math.Cos(c.RotationX), math.Sin(c.RotationX)
	d = Vec3{X: d.X, Y: d.Y*cos - d.Z*sin, Z: d.Y*sin + d.Z*cos}
	return Ray{Origin: c.Position, Dir: d.Norm()}
}
