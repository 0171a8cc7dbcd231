// Package motion integrates the small ODE systems behind physically
// animated scenes.
package motion

import (
	"errors"
	"math"
)

// ErrInvalidState indicates a state vector holding NaN or Inf.
var ErrInvalidState = errors.New("motion: invalid state (NaN or Inf detected)")

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System returns the time derivative of a state.
type System interface {
	Derive(x State, t float64) State
}

// SystemFunc adapts a function to System.
type SystemFunc func(x State, t float64) State

func (f SystemFunc) Derive(x State, t float64) State { return f(x, t) }

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// Advance integrates over dt in substeps no longer than maxStep, keeping
// stiff scenes stable when a frame arrives late. An invalid result is
// reported and the input state returned untouched.
func Advance(integ Integrator, sys System, x State, t, dt, maxStep float64) (State, error) {
	if dt <= 0 {
		return x, nil
	}
	n := 1
	if maxStep > 0 && dt > maxStep {
		n = int(math.Ceil(dt / maxStep))
	}
	h := dt / float64(n)
	cur := x
	for i := 0; i < n; i++ {
		cur = integ.Step(sys, cur, t+float64(i)*h, h)
	}
	if !cur.IsValid() {
		return x, ErrInvalidState
	}
	return cur, nil
}
