package galaxy

import (
	"sort"
	"time"
)

// Step is a named action due at a point in time
type Step struct {
	Name string
	At   time.Time
	Run  func(now time.Time)
	seq  int
}

// Scheduler runs timed steps from the frame loop. All timed behaviour of
// the scene goes through one scheduler so teardown can cancel it at once.
type Scheduler struct {
	steps    []*Step
	seq      int
	stopped  bool
	executed []string
}

// After schedules fn to run d after base. Scheduling on a stopped
// scheduler is a no-op.
func (s *Scheduler) After(base time.Time, d time.Duration, name string, fn func(now time.Time)) {
	if s.stopped {
		return
	}
	s.seq++
	s.steps = append(s.steps, &Step{Name: name, At: base.Add(d), Run: fn, seq: s.seq})
}

// Advance runs every step due at or before now, earliest first.
// Steps scheduled by a running step are picked up in the same call if due.
func (s *Scheduler) Advance(now time.Time) {
	for !s.stopped {
		s.sort()
		if len(s.steps) == 0 || s.steps[0].At.After(now) {
			return
		}
		next := s.steps[0]
		s.steps = s.steps[1:]
		s.executed = append(s.executed, next.Name)
		if next.Run != nil {
			next.Run(next.At)
		}
	}
}

func (s *Scheduler) sort() {
	sort.SliceStable(s.steps, func(i, j int) bool {
		if s.steps[i].At.Equal(s.steps[j].At) {
			return s.steps[i].seq < s.steps[j].seq
		}
		return s.steps[i].At.Before(s.steps[j].At)
	})
}

// Pending returns the names of steps not yet run, in due order
func (s *Scheduler) Pending() []string {
	s.sort()
	names := make([]string, 0, len(s.steps))
	for _, st := range s.steps {
		names = append(names, st.Name)
	}
	return names
}

// Executed returns the names of steps already run, in run order
func (s *Scheduler) Executed() []string {
	out := make([]string, len(s.executed))
	copy(out, s.executed)
	return out
}

// Stop cancels every pending step and refuses new ones
func (s *Scheduler) Stop() {
	s.stopped = true
	s.steps = nil
}
