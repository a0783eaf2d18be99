package galaxy

import "math"

// Source is the data an orbiting object is built from
type Source struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// Thumbnail may be empty or equal to Original
	Thumbnail string `json:"thumbnail,omitempty"`
	Original  string `json:"original"`
}

// Representation is one of the two visual forms of an object
type Representation struct {
	Visible bool    `json:"visible"`
	Scale   float64 `json:"scale"`
}

// Object is one uploaded photo orbiting the center
type Object struct {
	Index  int    `json:"index"`
	Source Source `json:"source"`

	// Orbit parameters. Angle advances in Focus; BaseAngle picks the spiral arm.
	BaseAngle float64 `json:"baseAngle"`
	Angle     float64 `json:"angle"`
	Radius    float64 `json:"radius"`
	Height    float64 `json:"height"`
	Speed     float64 `json:"speed"`

	Position Vec3 `json:"position"`
	// Facing is the point the detail plane is oriented towards
	Facing Vec3 `json:"facing"`

	Compact Representation `json:"compact"`
	Detail  Representation `json:"detail"`

	Asset Asset `json:"asset"`
}

// armIndex buckets the base angle into one of arms equal sectors
func (o *Object) armIndex(arms int) int {
	sector := 2 * math.Pi / float64(arms)
	i := int(math.Floor(o.BaseAngle / sector))
	if i >= arms {
		i = arms - 1
	}
	return i
}

// spiralPosition is the Overview position at elapsed seconds t
func (o *Object) spiralPosition(t, multiplier float64, arms int) Vec3 {
	sector := 2 * math.Pi / float64(arms)
	spiralAngle := o.BaseAngle + t*o.Speed*multiplier
	spiralRadius := o.Radius + math.Sin(t*0.5)*5
	armAngle := spiralAngle + float64(o.armIndex(arms))*sector
	return Vec3{
		X: math.Cos(armAngle) * spiralRadius,
		Y: o.Height + math.Sin(t+o.BaseAngle)*2,
		Z: math.Sin(armAngle) * spiralRadius,
	}
}

// orbitStep advances the plain circular orbit by one frame
func (o *Object) orbitStep(rotationSpeed, multiplier float64) {
	o.Angle += o.Speed * rotationSpeed * multiplier
	o.Position = Vec3{
		X: math.Cos(o.Angle) * o.Radius,
		Y: o.Height,
		Z: math.Sin(o.Angle) * o.Radius,
	}
}

// showFor makes exactly one representation visible for mode
func (o *Object) showFor(mode Mode) {
	o.Compact.Visible = mode == ModeOverview
	o.Detail.Visible = mode == ModeFocus
	o.Compact.Scale = 1
	o.Detail.Scale = 1
}

// visibleRep returns the representation currently shown
func (o *Object) visibleRep() *Representation {
	switch {
	case o.Compact.Visible:
		return &o.Compact
	case o.Detail.Visible:
		return &o.Detail
	}
	return nil
}
