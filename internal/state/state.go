// Package state holds the calculator's form state and the pure reducer that
// advances it. Every surface (terminal form, HTTP handlers) drives the same
// transitions: a successful calculation replaces any previous result, and a
// rejected one discards it.
package state

import (
	"github.com/alexiusacademia/gosfd/internal/beam"
)

// Phase is the observable state of the calculator
type Phase int

const (
	// PhaseIdle shows no diagram, optionally with an error message
	PhaseIdle Phase = iota
	// PhaseResult shows the diagrams and maxima
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

// Inputs are the raw texts typed by the user
type Inputs struct {
	Length   string
	Load     string
	Position string
}

// State is an immutable snapshot of the calculator
type State struct {
	Inputs Inputs
	Result *beam.Result
	Err    string
}

// Phase reports which of the two observable states s is in
func (s State) Phase() Phase {
	if s.Result != nil {
		return PhaseResult
	}
	return PhaseIdle
}

// Initial returns the idle state with empty inputs and no error
func Initial() State {
	return State{}
}

// Action is an input event for Reduce
type Action interface {
	apply(State) State
}

// SetLength replaces the beam length text
type SetLength string

// SetLoad replaces the point load text
type SetLoad string

// SetPosition replaces the load position text
type SetPosition string

// Calculate runs the analysis on the current inputs
type Calculate struct{}

// Reset returns to the initial state
type Reset struct{}

func (a SetLength) apply(s State) State {
	s.Inputs.Length = string(a)
	return s
}

func (a SetLoad) apply(s State) State {
	s.Inputs.Load = string(a)
	return s
}

func (a SetPosition) apply(s State) State {
	s.Inputs.Position = string(a)
	return s
}

func (Calculate) apply(s State) State {
	res, err := beam.Compute(s.Inputs.Length, s.Inputs.Load, s.Inputs.Position)
	if err != nil {
		return State{Inputs: s.Inputs, Err: beam.InvalidInputMessage}
	}
	return State{Inputs: s.Inputs, Result: res}
}

func (Reset) apply(State) State {
	return Initial()
}

// Reduce returns the state that follows s after action.
// A nil action leaves the state unchanged.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}
