package galaxy

import (
	"fmt"
	"time"
)

// Mode is the visual mode of the scene
type Mode string

const (
	// ModeOverview shows compact representations in a spiral
	ModeOverview Mode = "overview"
	// ModeFocus shows detail representations facing the viewer
	ModeFocus Mode = "focus"
)

// Trigger is the input that caused a transition
type Trigger string

const (
	TriggerPointerMove  Trigger = "pointer_move"
	TriggerPointerLeave Trigger = "pointer_leave"
	TriggerIdle         Trigger = "idle"
)

// validTransitions is the transition matrix. Any other target is refused.
var validTransitions = map[Mode]map[Mode]bool{
	ModeOverview: {ModeFocus: true},
	ModeFocus:    {ModeOverview: true},
}

// TransitionRecord is one completed mode change
type TransitionRecord struct {
	From    Mode      `json:"from"`
	To      Mode      `json:"to"`
	Trigger Trigger   `json:"trigger"`
	At      time.Time `json:"at"`
}

// TransitionError is returned for refused transitions
type TransitionError struct {
	From   Mode
	To     Mode
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s refused: %s", e.From, e.To, e.Reason)
}

// Machine tracks the current mode and the in-flight flag. A transition is
// begun with Begin and finished with Complete; nothing else may start in
// between. It is not safe for concurrent use; the engine drives it from one loop.
type Machine struct {
	current       Mode
	transitioning bool
	history       []TransitionRecord
}

// NewMachine creates a machine in Overview
func NewMachine() *Machine {
	return &Machine{current: ModeOverview}
}

// Mode returns the current mode. During a transition this is already the target.
func (m *Machine) Mode() Mode { return m.current }

// Transitioning reports whether a transition is in flight
func (m *Machine) Transitioning() bool { return m.transitioning }

// History returns completed and begun transitions, oldest first
func (m *Machine) History() []TransitionRecord {
	out := make([]TransitionRecord, len(m.history))
	copy(out, m.history)
	return out
}

// CanBegin reports whether a transition to target may start now
func (m *Machine) CanBegin(target Mode) bool {
	return !m.transitioning && validTransitions[m.current][target]
}

// Begin switches to target and raises the in-flight flag
func (m *Machine) Begin(target Mode, trigger Trigger, at time.Time) error {
	if m.transitioning {
		return &TransitionError{From: m.current, To: target, Reason: "transition in flight"}
	}
	if !validTransitions[m.current][target] {
		return &TransitionError{From: m.current, To: target, Reason: "not a valid transition"}
	}
	m.history = append(m.history, TransitionRecord{From: m.current, To: target, Trigger: trigger, At: at})
	m.current = target
	m.transitioning = true
	return nil
}

// Complete clears the in-flight flag
func (m *Machine) Complete() {
	m.transitioning = false
}
