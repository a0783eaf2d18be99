package galaxy

import "time"

// Easing maps linear progress in [0,1] to eased progress
type Easing func(t float64) float64

// Linear easing
func Linear(t float64) float64 { return t }

// QuadIn accelerates from zero
func QuadIn(t float64) float64 { return t * t }

// QuadOut decelerates towards the end
func QuadOut(t float64) float64 { return t * (2 - t) }

// Tween interpolates one value over a fixed duration. Update receives eased
// progress every frame it is active; Done runs once, after the final Update.
type Tween struct {
	Name     string
	Start    time.Time
	Duration time.Duration
	Ease     Easing
	Update   func(p float64)
	Done     func()
}

func (t *Tween) progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Tweens advances a set of tweens once per frame
type Tweens struct {
	active []*Tween
}

// Add starts tracking a tween
func (ts *Tweens) Add(t *Tween) {
	if t.Ease == nil {
		t.Ease = Linear
	}
	ts.active = append(ts.active, t)
}

// Len is the number of unfinished tweens
func (ts *Tweens) Len() int { return len(ts.active) }

// Active reports whether a tween with name is in flight
func (ts *Tweens) Active(name string) bool {
	for _, t := range ts.active {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Advance applies every tween at now and completes the finished ones.
// Done callbacks may add new tweens; those start on the next Advance.
func (ts *Tweens) Advance(now time.Time) {
	current := ts.active
	ts.active = nil

	var finished []*Tween
	for _, t := range current {
		p := t.progress(now)
		if t.Update != nil {
			t.Update(t.Ease(p))
		}
		if p >= 1 {
			finished = append(finished, t)
		} else {
			ts.active = append(ts.active, t)
		}
	}
	for _, t := range finished {
		if t.Done != nil {
			t.Done()
		}
	}
}
