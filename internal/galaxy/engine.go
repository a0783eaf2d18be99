package galaxy

import (
	"math"
	"time"
)

const (
	tweenCamera = "camera"
	tweenDebris = "debris-fade"
	tweenPulse  = "pulse"
)

type assetEvent struct {
	index int
	url   string
	ok    bool
}

// Stats counts what happened since Start
type Stats struct {
	Frames       int `json:"frames"`
	Transitions  int `json:"transitions"`
	Ignored      int `json:"ignored"`
	Placeholders int `json:"placeholders"`
}

// Engine runs the scene: input, timers, tweens, motion and hover picking.
// Input methods only record intent or start transitions; everything else
// happens in Tick, called once per frame. An Engine must be driven from a
// single goroutine.
type Engine struct {
	cfg     *Config
	scene   *Scene
	machine *Machine
	tweens  Tweens
	sched   Scheduler

	start    time.Time
	lastMove time.Time
	started  bool
	stopped  bool

	// decorReady is set once the Overview decor has been shown
	decorReady bool

	pointerX, pointerY float64
	pointerIn          bool
	hovered            int

	assets []assetEvent
	stats  Stats
}

// NewEngine wraps a built scene
func NewEngine(scene *Scene, cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg, scene: scene, machine: NewMachine(), hovered: -1}
}

// Scene returns the live descriptors. Callers must not mutate them.
func (e *Engine) Scene() *Scene { return e.scene }

// Mode returns the current visual mode
func (e *Engine) Mode() Mode { return e.machine.Mode() }

// Transitioning reports whether a camera transition is in flight
func (e *Engine) Transitioning() bool { return e.machine.Transitioning() }

// Hovered returns the hovered object index, or -1
func (e *Engine) Hovered() int { return e.hovered }

// Stats returns counters since Start
func (e *Engine) Stats() Stats { return e.stats }

// History returns the mode transitions taken so far
func (e *Engine) History() []TransitionRecord { return e.machine.History() }

// Scheduler exposes the timed steps for inspection
func (e *Engine) Scheduler() *Scheduler { return &e.sched }

// Start anchors the clock and schedules the intro sequence
func (e *Engine) Start(now time.Time) {
	if e.started {
		return
	}
	e.started = true
	e.start = now
	e.lastMove = now

	st := e.cfg.Startup
	e.sched.After(now, st.OverviewInit, "overview.init", func(time.Time) {
		if e.machine.Mode() == ModeOverview {
			e.enterOverviewDecor()
		}
	})
	e.sched.After(now, st.HideLoading, "loading.hide", func(at time.Time) {
		e.scene.Overlay.LoadingVisible = false
		e.sched.After(at, st.RemoveLoading, "loading.remove", func(at time.Time) {
			e.scene.Overlay.LoadingRemoved = true
			e.sched.After(at, st.ShowWelcome, "welcome.show", func(at time.Time) {
				e.scene.Overlay.WelcomeVisible = true
				e.sched.After(at, st.HideWelcome, "welcome.hide", func(time.Time) {
					e.scene.Overlay.WelcomeVisible = false
				})
			})
		})
	})
}

// Teardown cancels pending steps and tweens. Later calls are no-ops.
func (e *Engine) Teardown() {
	e.stopped = true
	e.sched.Stop()
	e.tweens = Tweens{}
}

// PointerMove records pointer or touch movement at normalized device
// coordinates and zooms into Focus from Overview.
func (e *Engine) PointerMove(now time.Time, x, y float64) {
	if e.stopped {
		return
	}
	e.lastMove = now
	e.pointerX, e.pointerY, e.pointerIn = x, y, true
	if e.machine.Mode() == ModeOverview {
		e.zoomIn(now, TriggerPointerMove)
	}
}

// PointerLeave zooms back out when the pointer leaves the viewport
func (e *Engine) PointerLeave(now time.Time) {
	if e.stopped {
		return
	}
	e.pointerIn = false
	if e.machine.Mode() == ModeFocus {
		e.zoomOut(now, TriggerPointerLeave)
	}
}

// AssetResult reports an image load outcome. It is applied on the next Tick.
func (e *Engine) AssetResult(index int, url string, ok bool) {
	e.assets = append(e.assets, assetEvent{index: index, url: url, ok: ok})
}

// Tick advances one frame
func (e *Engine) Tick(now time.Time) {
	if e.stopped {
		return
	}
	if !e.started {
		e.Start(now)
	}

	e.sched.Advance(now)
	e.tweens.Advance(now)
	e.applyAssets()
	e.animate(now)

	if e.machine.Mode() == ModeFocus && !e.machine.Transitioning() && now.Sub(e.lastMove) > e.cfg.AutoZoomTimeout {
		e.zoomOut(now, TriggerIdle)
	}

	e.updateHover()
	e.stats.Frames++
}

func (e *Engine) zoomIn(now time.Time, trigger Trigger) bool {
	if err := e.machine.Begin(ModeFocus, trigger, now); err != nil {
		e.stats.Ignored++
		return false
	}
	e.stats.Transitions++
	e.clearHover()
	e.moveCamera(now, focusViewpoint(e.cfg.ZoomLevel), e.cfg.ZoomInDuration)

	for _, o := range e.scene.Objects {
		o.showFor(ModeFocus)
		o.Facing = e.scene.Camera.Position
	}

	e.fadeDebris(now)
	for _, r := range e.scene.Rings {
		r.Visible = false
	}
	return true
}

func (e *Engine) zoomOut(now time.Time, trigger Trigger) bool {
	if err := e.machine.Begin(ModeOverview, trigger, now); err != nil {
		e.stats.Ignored++
		return false
	}
	e.stats.Transitions++
	e.clearHover()
	e.moveCamera(now, overviewViewpoint(), e.cfg.ZoomOutDuration)

	for _, o := range e.scene.Objects {
		o.showFor(ModeOverview)
	}
	e.pulseCompact(now)
	e.enterOverviewDecor()
	return true
}

// enterOverviewDecor shows the debris field and the text rings
func (e *Engine) enterOverviewDecor() {
	e.decorReady = true
	for _, d := range e.scene.Debris {
		d.brighten()
	}
	for _, r := range e.scene.Rings {
		r.Visible = true
	}
}

// moveCamera tweens the camera to vp. The in-flight flag clears when it lands.
func (e *Engine) moveCamera(now time.Time, vp Viewpoint, d time.Duration) {
	cam := &e.scene.Camera
	fromPos, fromRot := cam.Position, cam.RotationX
	e.tweens.Add(&Tween{
		Name:     tweenCamera,
		Start:    now,
		Duration: d,
		Ease:     QuadOut,
		Update: func(p float64) {
			cam.Position = Lerp(fromPos, vp.Position, p)
			cam.RotationX = fromRot + (vp.RotationX-fromRot)*p
		},
		Done: e.machine.Complete,
	})
}

func (e *Engine) fadeDebris(now time.Time) {
	type start struct{ opacity, scale float64 }
	from := make([]start, len(e.scene.Debris))
	for i, d := range e.scene.Debris {
		from[i] = start{d.Opacity, d.Scale}
	}
	e.tweens.Add(&Tween{
		Name:     tweenDebris,
		Start:    now,
		Duration: e.cfg.DebrisFade,
		Ease:     QuadIn,
		Update: func(p float64) {
			for i, d := range e.scene.Debris {
				d.Opacity = from[i].opacity * (1 - p)
				d.Scale = from[i].scale + (1-from[i].scale)*p
			}
		},
		Done: func() {
			if e.machine.Mode() != ModeFocus {
				return
			}
			for _, d := range e.scene.Debris {
				d.Visible = false
				d.Scale = 1
			}
		},
	})
}

// pulseCompact briefly swells every compact representation
func (e *Engine) pulseCompact(now time.Time) {
	e.tweens.Add(&Tween{
		Name:     tweenPulse,
		Start:    now,
		Duration: 400 * time.Millisecond,
		Update: func(p float64) {
			s := 1 + 0.2*(1-math.Abs(2*p-1))
			for i, o := range e.scene.Objects {
				if o.Compact.Visible && i != e.hovered {
					o.Compact.Scale = s
				}
			}
		},
	})
}

func (e *Engine) animate(now time.Time) {
	mode := e.machine.Mode()
	mult := e.cfg.FocusSpeed
	if mode == ModeOverview {
		mult = e.cfg.OverviewSpeed
	}
	t := now.Sub(e.start).Seconds()

	for _, o := range e.scene.Objects {
		if mode == ModeOverview {
			o.Position = o.spiralPosition(t, mult, e.cfg.SpiralArms)
			continue
		}
		o.orbitStep(e.cfg.RotationSpeed, mult)
		if o.Detail.Visible {
			o.Facing = e.scene.Camera.Position
		}
	}

	fading := e.tweens.Active(tweenDebris)
	for _, d := range e.scene.Debris {
		switch {
		case mode == ModeOverview:
			if e.decorReady {
				d.overviewStep(mult)
			}
		case !fading:
			d.Visible = false
			d.Scale = 1
		}
	}

	for _, r := range e.scene.Rings {
		if r.Visible {
			r.Rotation += r.Speed
		}
	}
	e.scene.Starfield.Rotation += 0.001 * e.cfg.RotationSpeed
	e.scene.Core.Scale = 1 + math.Sin(t*2.5)*0.15
}

func (e *Engine) applyAssets() {
	events := e.assets
	e.assets = nil
	for _, ev := range events {
		if ev.index < 0 || ev.index >= len(e.scene.Objects) {
			continue
		}
		a := &e.scene.Objects[ev.index].Asset
		if ev.ok {
			a.Loaded(ev.url)
			continue
		}
		if a.Failed(ev.url) {
			e.stats.Placeholders++
		}
	}
}

func (e *Engine) updateHover() {
	if !e.pointerIn {
		e.clearHover()
		return
	}
	ray := e.scene.Camera.RayFrom(e.pointerX, e.pointerY)
	idx := pick(ray, e.scene.Objects, e.cfg, e.scene.Camera.Position)
	if idx == e.hovered {
		return
	}
	e.clearHover()
	if idx >= 0 {
		if rep := e.scene.Objects[idx].visibleRep(); rep != nil {
			rep.Scale = e.cfg.HoverScale
			e.hovered = idx
		}
	}
}

func (e *Engine) clearHover() {
	if e.hovered >= 0 && e.hovered < len(e.scene.Objects) {
		if rep := e.scene.Objects[e.hovered].visibleRep(); rep != nil {
			rep.Scale = 1
		}
	}
	e.hovered = -1
}
