package galaxy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"
	"time"
)

var t0 = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func sources(n int) []Source {
	out := make([]Source, n)
	for i := range out {
		out[i] = Source{
			ID:        fmt.Sprintf("f%d", i),
			Thumbnail: fmt.Sprintf("uploads/thumbnails/thumb_f%d.jpg", i),
			Original:  fmt.Sprintf("uploads/f%d.jpg", i),
		}
	}
	return out
}

func newEngine(t *testing.T, n int) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	sc := Build(sources(n), cfg, rand.New(rand.NewSource(7)), 16.0/9.0)
	e := NewEngine(sc, cfg)
	e.Start(t0)
	return e
}

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

func assertExclusive(t *testing.T, sc *Scene, mode Mode) {
	t.Helper()
	for _, o := range sc.Objects {
		if o.Compact.Visible == o.Detail.Visible {
			t.Fatalf("object %d shows compact=%v detail=%v", o.Index, o.Compact.Visible, o.Detail.Visible)
		}
		if (mode == ModeOverview) != o.Compact.Visible {
			t.Fatalf("object %d does not match mode %s", o.Index, mode)
		}
	}
}

func TestBuildStartsInOverview(t *testing.T) {
	e := newEngine(t, 10)
	compact, detail := e.Scene().VisibleCounts()
	if compact != 10 || detail != 0 {
		t.Fatalf("expected 10 compact and 0 detail, got %d/%d", compact, detail)
	}
	assertExclusive(t, e.Scene(), ModeOverview)
	if e.Mode() != ModeOverview || e.Transitioning() {
		t.Errorf("expected idle Overview, got %s transitioning=%v", e.Mode(), e.Transitioning())
	}
}

func TestBuildLayout(t *testing.T) {
	cfg := DefaultConfig()
	sc := Build(sources(4), cfg, rand.New(rand.NewSource(1)), 1)
	for i, o := range sc.Objects {
		wantAngle := float64(i) / 4 * 2 * math.Pi
		if math.Abs(o.BaseAngle-wantAngle) > 1e-9 {
			t.Errorf("object %d angle %v, want %v", i, o.BaseAngle, wantAngle)
		}
		if o.Radius < cfg.OrbitRadius.Min || o.Radius > cfg.OrbitRadius.Max {
			t.Errorf("object %d radius %v out of range", i, o.Radius)
		}
		if math.Abs(o.Height) > 7.5 || o.Speed < 0.02 || o.Speed > 0.03 {
			t.Errorf("object %d height %v speed %v out of range", i, o.Height, o.Speed)
		}
	}

	again := Build(sources(4), cfg, rand.New(rand.NewSource(1)), 1)
	if again.Objects[2].Radius != sc.Objects[2].Radius {
		t.Error("same seed must reproduce the layout")
	}
	if len(sc.Debris) != 4400 || len(sc.Rings) != 3 || len(sc.Starfield.Stars) != 300 {
		t.Errorf("unexpected decor sizes %d %d %d", len(sc.Debris), len(sc.Rings), len(sc.Starfield.Stars))
	}
}

func TestPointerMoveZoomsInOnce(t *testing.T) {
	e := newEngine(t, 10)
	e.Tick(at(1000))

	e.PointerMove(at(1100), 0.2, 0.1)
	if e.Mode() != ModeFocus || !e.Transitioning() {
		t.Fatalf("expected Focus in flight, got %s %v", e.Mode(), e.Transitioning())
	}
	assertExclusive(t, e.Scene(), ModeFocus)
	for _, r := range e.Scene().Rings {
		if r.Visible {
			t.Fatal("text rings must hide immediately on zoom in")
		}
	}

	// Re-entrant triggers are ignored while in flight
	e.PointerLeave(at(1200))
	e.Tick(at(1300))
	if e.Mode() != ModeFocus || len(e.History()) != 1 {
		t.Fatalf("leave during transition must be ignored, history %v", e.History())
	}

	e.PointerMove(at(1650), 0.2, 0.1)
	e.Tick(at(1700))
	if e.Transitioning() {
		t.Fatal("transition should complete when the camera lands")
	}
	cam := e.Scene().Camera
	if cam.Position != (Vec3{0, 0, 65}) || cam.RotationX != 0 {
		t.Errorf("unexpected focus camera %+v", cam)
	}
	assertExclusive(t, e.Scene(), ModeFocus)
}

func TestPointerLeaveZoomsOut(t *testing.T) {
	e := newEngine(t, 3)
	e.PointerMove(at(100), 0, 0)
	e.Tick(at(700))

	e.PointerLeave(at(800))
	if e.Mode() != ModeOverview || !e.Transitioning() {
		t.Fatalf("expected Overview in flight, got %s", e.Mode())
	}
	assertExclusive(t, e.Scene(), ModeOverview)
	for _, r := range e.Scene().Rings {
		if !r.Visible {
			t.Fatal("text rings must show on zoom out")
		}
	}
	for _, d := range e.Scene().Debris[:10] {
		if !d.Visible || d.Scale != 2 {
			t.Fatalf("debris should be visible at scale 2, got %+v", d)
		}
	}

	e.Tick(at(1600))
	if e.Transitioning() {
		t.Fatal("zoom out should have landed")
	}
	cam := e.Scene().Camera
	if cam.Position != (Vec3{0, 50, 100}) || cam.RotationX != -0.5 {
		t.Errorf("unexpected overview camera %+v", cam)
	}
}

func TestIdleTimeoutZoomsOut(t *testing.T) {
	e := newEngine(t, 5)
	e.PointerMove(at(100), 0, 0)
	e.Tick(at(700))

	e.Tick(at(1600))
	if e.Mode() != ModeFocus {
		t.Fatal("must stay in Focus before the idle timeout")
	}
	e.Tick(at(1601))
	if e.Mode() != ModeOverview {
		t.Fatal("expected auto zoom out after 1500ms idle")
	}
	h := e.History()
	if h[len(h)-1].Trigger != TriggerIdle {
		t.Errorf("expected idle trigger, got %s", h[len(h)-1].Trigger)
	}
}

func TestDebrisFadesOutOnFocus(t *testing.T) {
	e := newEngine(t, 2)
	e.Tick(at(1000))
	d := e.Scene().Debris[0]
	if !d.Visible {
		t.Fatal("debris should be visible after overview init")
	}
	before := d.Opacity

	e.PointerMove(at(1100), 0, 0)
	e.Tick(at(1300))
	if !d.Visible || d.Opacity >= before {
		t.Errorf("debris should be fading, visible=%v opacity=%v (from %v)", d.Visible, d.Opacity, before)
	}

	e.Tick(at(1500))
	for _, d := range e.Scene().Debris {
		if d.Visible || d.Scale != 1 {
			t.Fatalf("debris should be hidden at scale 1 after the fade, got %+v", d)
		}
	}
}

func TestFocusMotionIsCircularAndBillboarded(t *testing.T) {
	e := newEngine(t, 3)
	e.PointerMove(at(100), 0, 0)
	e.Tick(at(700))

	for _, o := range e.Scene().Objects {
		r := math.Hypot(o.Position.X, o.Position.Z)
		if math.Abs(r-o.Radius) > 1e-9 || o.Position.Y != o.Height {
			t.Errorf("object %d off its circular orbit: %+v", o.Index, o.Position)
		}
		if o.Facing != e.Scene().Camera.Position {
			t.Errorf("object %d not facing the camera", o.Index)
		}
	}

	o := e.Scene().Objects[0]
	angle := o.Angle
	e.PointerMove(at(750), 0, 0)
	e.Tick(at(760))
	want := angle + o.Speed*0.3*1.0
	if math.Abs(o.Angle-want) > 1e-12 {
		t.Errorf("focus angle step %v, want %v", o.Angle, want)
	}
}

func TestSpiralPosition(t *testing.T) {
	o := &Object{BaseAngle: 0, Radius: 30, Height: 2, Speed: 0.02}
	p := o.spiralPosition(0, 4, 4)
	if math.Abs(p.X-30) > 1e-9 || math.Abs(p.Z) > 1e-9 || math.Abs(p.Y-2) > 1e-9 {
		t.Errorf("unexpected spiral position at t=0: %+v", p)
	}

	// Second arm is rotated by a quarter turn
	o2 := &Object{BaseAngle: math.Pi / 2, Radius: 30}
	if o2.armIndex(4) != 1 {
		t.Errorf("expected arm 1, got %d", o2.armIndex(4))
	}
	p2 := o2.spiralPosition(0, 4, 4)
	if math.Abs(p2.X+30) > 1e-9 {
		t.Errorf("expected arm rotation to land on -X, got %+v", p2)
	}
}

func TestHoverScalesOnlyOneVisibleObject(t *testing.T) {
	e := newEngine(t, 2)
	e.PointerMove(at(100), 0.9, 0.9)
	e.Tick(at(700))

	o := e.Scene().Objects[0]
	o.Angle, o.Radius, o.Height = math.Pi/2, 30, 0
	other := e.Scene().Objects[1]
	other.Angle, other.Radius, other.Height = -math.Pi/2, 30, 0

	e.PointerMove(at(710), 0, 0)
	e.Tick(at(720))
	if e.Hovered() != 0 || o.Detail.Scale != 1.2 {
		t.Fatalf("expected object 0 hovered at 1.2, got %d scale %v", e.Hovered(), o.Detail.Scale)
	}
	if other.Detail.Scale != 1 {
		t.Error("only one object may be hovered")
	}

	e.PointerMove(at(730), 0.95, 0.95)
	e.Tick(at(740))
	if e.Hovered() != -1 || o.Detail.Scale != 1 {
		t.Errorf("hover should clear, got %d scale %v", e.Hovered(), o.Detail.Scale)
	}
}

func TestAssetFallbackChain(t *testing.T) {
	e := newEngine(t, 3)
	a := &e.Scene().Objects[1].Asset
	thumb, original := "uploads/thumbnails/thumb_f1.jpg", "uploads/f1.jpg"

	if a.URL() != thumb {
		t.Fatalf("expected thumbnail first, got %s", a.URL())
	}
	e.AssetResult(1, thumb, false)
	e.Tick(at(16))
	if a.URL() != original || a.Status != AssetPending {
		t.Fatalf("expected fallback to original, got %s %s", a.URL(), a.Status)
	}

	e.AssetResult(1, thumb, false) // stale
	e.AssetResult(1, original, false)
	e.AssetResult(0, "uploads/thumbnails/thumb_f0.jpg", true)
	e.Tick(at(32))
	if a.Status != AssetPlaceholder || a.Color == "" {
		t.Fatalf("expected colored placeholder, got %+v", a)
	}
	if e.Stats().Placeholders != 1 {
		t.Errorf("expected one placeholder, got %d", e.Stats().Placeholders)
	}
	if e.Scene().Objects[0].Asset.Status != AssetLoaded || e.Scene().Objects[2].Asset.Status != AssetPending {
		t.Error("one failed asset must not affect the others")
	}
}

func TestAssetWithoutThumbnail(t *testing.T) {
	a := newAsset(Source{Original: "uploads/a.jpg", Thumbnail: "uploads/a.jpg"}, "#ffffff")
	if len(a.Candidates) != 1 || a.URL() != "uploads/a.jpg" {
		t.Errorf("duplicate thumbnail should collapse, got %v", a.Candidates)
	}
	empty := newAsset(Source{}, "#ffffff")
	if empty.Status != AssetPlaceholder || empty.URL() != "" {
		t.Errorf("no candidates should start as placeholder, got %+v", empty)
	}
}

func TestStartupSequence(t *testing.T) {
	e := newEngine(t, 1)
	ov := &e.Scene().Overlay

	e.Tick(at(1999))
	if !ov.LoadingVisible {
		t.Fatal("loading screen hides at 2000ms")
	}
	e.Tick(at(2000))
	if ov.LoadingVisible || ov.LoadingRemoved {
		t.Fatalf("unexpected overlay at 2000ms %+v", ov)
	}
	e.Tick(at(3000))
	if !ov.LoadingRemoved || ov.WelcomeVisible {
		t.Fatalf("unexpected overlay at 3000ms %+v", ov)
	}
	e.Tick(at(4000))
	if !ov.WelcomeVisible {
		t.Fatal("welcome shows at 4000ms")
	}
	e.Tick(at(7000))
	if ov.WelcomeVisible {
		t.Fatal("welcome hides at 7000ms")
	}

	want := []string{"overview.init", "loading.hide", "loading.remove", "welcome.show", "welcome.hide"}
	got := e.Scheduler().Executed()
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("executed %v, want %v", got, want)
	}
}

func TestTeardownCancelsPendingSteps(t *testing.T) {
	e := newEngine(t, 1)
	e.Tick(at(2500))
	e.Teardown()
	e.Tick(at(10000))

	if e.Scene().Overlay.WelcomeVisible || e.Scene().Overlay.LoadingRemoved {
		t.Error("steps must not run after teardown")
	}
	if len(e.Scheduler().Pending()) != 0 {
		t.Errorf("expected no pending steps, got %v", e.Scheduler().Pending())
	}
	e.PointerMove(at(10001), 0, 0)
	if e.Mode() != ModeOverview {
		t.Error("input after teardown must be ignored")
	}
}

func TestMachineRefusesReentry(t *testing.T) {
	m := NewMachine()
	if err := m.Begin(ModeFocus, TriggerPointerMove, t0); err != nil {
		t.Fatal(err)
	}
	err := m.Begin(ModeOverview, TriggerPointerLeave, t0)
	var te *TransitionError
	if !errors.As(err, &te) || te.Reason != "transition in flight" {
		t.Fatalf("expected in-flight refusal, got %v", err)
	}
	m.Complete()
	if err := m.Begin(ModeFocus, TriggerPointerMove, t0); err == nil {
		t.Error("Focus to Focus is not a valid transition")
	}
	if !m.CanBegin(ModeOverview) {
		t.Error("expected Focus to Overview to be allowed")
	}
}

func TestTweens(t *testing.T) {
	if QuadOut(0.5) != 0.75 || QuadIn(0.5) != 0.25 {
		t.Error("unexpected easing values")
	}
	var ts Tweens
	var last float64
	done := 0
	ts.Add(&Tween{Name: "x", Start: t0, Duration: 100 * time.Millisecond, Update: func(p float64) { last = p }, Done: func() { done++ }})

	ts.Advance(at(50))
	if last != 0.5 || done != 0 || !ts.Active("x") {
		t.Fatalf("unexpected mid-tween state %v %d", last, done)
	}
	ts.Advance(at(150))
	ts.Advance(at(200))
	if last != 1 || done != 1 || ts.Len() != 0 {
		t.Errorf("tween should finish once, last=%v done=%d", last, done)
	}
}
