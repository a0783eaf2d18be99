package galaxy

import "math"

// intersectSphere returns the distance along r to a sphere, or -1
func intersectSphere(r Ray, center Vec3, radius float64) float64 {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return -1
	}
	sq := math.Sqrt(disc)
	if t := -b - sq; t > 0 {
		return t
	}
	if t := -b + sq; t > 0 {
		return t
	}
	return -1
}

// intersectBillboard returns the distance along r to a square of edge size
// centered at center and facing towards eye, or -1
func intersectBillboard(r Ray, center, eye Vec3, size float64) float64 {
	normal := eye.Sub(center).Norm()
	if normal == (Vec3{}) {
		return -1
	}
	denom := normal.Dot(r.Dir)
	if math.Abs(denom) < 1e-9 {
		return -1
	}
	t := center.Sub(r.Origin).Dot(normal) / denom
	if t <= 0 {
		return -1
	}

	right := Vec3{0, 1, 0}.Cross(normal).Norm()
	if right == (Vec3{}) {
		right = Vec3{1, 0, 0}
	}
	up := normal.Cross(right)

	hit := r.Origin.Add(r.Dir.Scale(t)).Sub(center)
	half := size / 2
	if math.Abs(hit.Dot(right)) > half || math.Abs(hit.Dot(up)) > half {
		return -1
	}
	return t
}

// pick returns the index of the nearest object whose visible representation
// r hits, or -1. Hidden representations are never tested.
func pick(r Ray, objects []*Object, cfg *Config, eye Vec3) int {
	best, bestT := -1, math.Inf(1)
	for i, o := range objects {
		t := -1.0
		switch {
		case o.Compact.Visible:
			t = intersectSphere(r, o.Position, cfg.CompactRadius*o.Compact.Scale)
		case o.Detail.Visible:
			t = intersectBillboard(r, o.Position, eye, cfg.DetailSize*o.Detail.Scale)
		}
		if t > 0 && t < bestT {
			best, bestT = i, t
		}
	}
	return best
}
