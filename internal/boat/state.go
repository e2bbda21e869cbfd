package boat

import (
	"fmt"

	"github.com/soren-h/plantlab/internal/sim"
)

// StateLen is the number of scalar components in a boat state vector.
const StateLen = 8

// State is the full state of the vessel. Position is in the global frame,
// velocities are in the body frame. Psi is always kept wrapped.
type State struct {
	X, Y   float64 // position [m]
	Psi    float64 // heading [rad]
	Vx     float64 // surge velocity [m/s]
	Vy     float64 // sway velocity [m/s]
	Omega  float64 // yaw rate [rad/s]
	Adapt1 float64 // forward-force uncertainty estimate
	Adapt2 float64 // moment uncertainty estimate
}

// FromArray builds a State from the flat 8-element interchange form:
// x, y, psi, Vx, Vy, omega, adapt1, adapt2.
func FromArray(arr sim.State) (*State, error) {
	if len(arr) != StateLen {
		return nil, fmt.Errorf("%w: boat state needs %d elements, got %d",
			sim.ErrDimensionMismatch, StateLen, len(arr))
	}
	return &State{
		X:      arr[0],
		Y:      arr[1],
		Psi:    arr[2],
		Vx:     arr[3],
		Vy:     arr[4],
		Omega:  arr[5],
		Adapt1: arr[6],
		Adapt2: arr[7],
	}, nil
}

// ToArray is the inverse of FromArray.
func (s *State) ToArray() sim.State {
	return sim.State{s.X, s.Y, s.Psi, s.Vx, s.Vy, s.Omega, s.Adapt1, s.Adapt2}
}

// Update advances the state in place by one explicit Euler step. The heading
// is wrapped after its update. On a length mismatch nothing is mutated.
func (s *State) Update(derivatives sim.State, dt float64) error {
	if len(derivatives) != StateLen {
		return fmt.Errorf("%w: boat derivatives need %d elements, got %d",
			sim.ErrDimensionMismatch, StateLen, len(derivatives))
	}
	s.X += derivatives[0] * dt
	s.Y += derivatives[1] * dt
	s.Psi = sim.WrapAngle(s.Psi + derivatives[2]*dt)
	s.Vx += derivatives[3] * dt
	s.Vy += derivatives[4] * dt
	s.Omega += derivatives[5] * dt
	s.Adapt1 += derivatives[6] * dt
	s.Adapt2 += derivatives[7] * dt
	return nil
}
