package galaxy

import (
	"math"
	"testing"
)

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 10}, Dir: Vec3{0, 0, -1}}
	if d := intersectSphere(r, Vec3{}, 0.8); math.Abs(d-9.2) > 1e-9 {
		t.Errorf("expected hit at 9.2, got %v", d)
	}
	if d := intersectSphere(r, Vec3{2, 0, 0}, 0.8); d != -1 {
		t.Errorf("expected miss, got %v", d)
	}
	behind := Ray{Origin: Vec3{0, 0, 10}, Dir: Vec3{0, 0, 1}}
	if d := intersectSphere(behind, Vec3{}, 0.8); d != -1 {
		t.Errorf("spheres behind the ray must not hit, got %v", d)
	}
}

func TestIntersectBillboard(t *testing.T) {
	eye := Vec3{0, 0, 20}
	r := Ray{Origin: eye, Dir: Vec3{0, 0, -1}}
	if d := intersectBillboard(r, Vec3{1.5, 1.5, 0}, eye, 4); d <= 0 {
		t.Error("expected hit inside the 4x4 plane")
	}
	if d := intersectBillboard(r, Vec3{2.5, 0, 0}, eye, 4); d != -1 {
		t.Errorf("expected miss outside the plane, got %v", d)
	}
}

func TestPickIgnoresHiddenRepresentations(t *testing.T) {
	cfg := DefaultConfig()
	eye := Vec3{0, 0, 20}
	r := Ray{Origin: eye, Dir: Vec3{0, 0, -1}}

	near := &Object{Position: Vec3{0, 0, 5}, Compact: Representation{Scale: 1}, Detail: Representation{Scale: 1}}
	far := &Object{Position: Vec3{0, 0, -5}, Compact: Representation{Visible: true, Scale: 1}, Detail: Representation{Scale: 1}}

	if got := pick(r, []*Object{near, far}, cfg, eye); got != 1 {
		t.Errorf("hidden object must not be picked, got %d", got)
	}
	near.Detail.Visible = true
	if got := pick(r, []*Object{near, far}, cfg, eye); got != 0 {
		t.Errorf("nearest visible object should win, got %d", got)
	}
}

func TestCameraRayThroughCenter(t *testing.T) {
	c := Camera{Position: Vec3{0, 0, 65}, FOV: 75, Aspect: 1}
	r := c.RayFrom(0, 0)
	if math.Abs(r.Dir.Z+1) > 1e-12 {
		t.Errorf("center ray should look down -Z, got %+v", r.Dir)
	}
	c.RotationX = -0.5
	r = c.RayFrom(0, 0)
	if r.Dir.Y >= 0 {
		t.Errorf("pitched camera should look downward, got %+v", r.Dir)
	}
}
