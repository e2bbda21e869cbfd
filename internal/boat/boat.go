package boat

import (
	"fmt"
	"math"

	"github.com/soren-h/plantlab/internal/sim"
)

// Thruster decodes a control vector into body-frame forces and yaw moment.
// It is the variant point between actuation layouts.
type Thruster interface {
	Forces(p Parameters, u sim.Control) (fx, fy, m float64)
	ControlDim() int
}

// DifferentialThrust models two fixed thrusters mounted symmetrically at
// lever arm L. It cannot command lateral force.
type DifferentialThrust struct{}

func (DifferentialThrust) Forces(p Parameters, u sim.Control) (float64, float64, float64) {
	left, right := 0.0, 0.0
	switch {
	case len(u) >= 2:
		left, right = u[0], u[1]
	case len(u) == 1:
		left, right = u[0]/2, u[0]/2
	}

	fx := left + right
	m := p.L * (right - left)
	return fx, 0, m
}

func (DifferentialThrust) ControlDim() int { return 2 }

// SteerableThrust models a single thruster at lever arm L that rotates in
// the body frame. The same angle drives both the lateral force and the
// moment, so thrust direction and torque are coupled.
type SteerableThrust struct{}

func (SteerableThrust) Forces(p Parameters, u sim.Control) (float64, float64, float64) {
	thrust, angle := 0.0, 0.0
	switch {
	case len(u) >= 2:
		thrust, angle = u[0], u[1]
	case len(u) == 1:
		thrust = u[0]
	}

	fx := thrust * math.Cos(angle)
	fy := thrust * math.Sin(angle)
	m := thrust * p.L * math.Sin(angle)
	return fx, fy, m
}

func (SteerableThrust) ControlDim() int { return 2 }

// Boat owns one mutable State and immutable Parameters, plus an optional
// wind field collaborator. Thruster control is deliberately unsaturated;
// bounding actuation is the caller's job.
type Boat struct {
	State    *State
	Params   Parameters
	Wind     WindField
	Thruster Thruster
}

// NewDifferentialThrustBoat builds a boat driven by two fixed thrusters.
// wind may be nil.
func NewDifferentialThrustBoat(init *State, p Parameters, wind WindField) *Boat {
	return &Boat{State: init, Params: p, Wind: wind, Thruster: DifferentialThrust{}}
}

// NewSteerableThrustBoat builds a boat driven by one steerable thruster.
// wind may be nil.
func NewSteerableThrustBoat(init *State, p Parameters, wind WindField) *Boat {
	return &Boat{State: init, Params: p, Wind: wind, Thruster: SteerableThrust{}}
}

// Dynamics computes the 6-vector [dx, dy, dpsi, dVx, dVy, domega] for the
// boat's current state under the given control.
func (b *Boat) Dynamics(u sim.Control) sim.State {
	fx, fy, m := b.Thruster.Forces(b.Params, u)
	return b.kinematics(b.State, fx, fy, m)
}

// kinematics maps body-frame forces and moment to state derivatives,
// folding in sail forces from the apparent wind when a field is present.
func (b *Boat) kinematics(s *State, fx, fy, m float64) sim.State {
	sinPsi, cosPsi := math.Sin(s.Psi), math.Cos(s.Psi)

	dx := s.Vx*cosPsi - s.Vy*sinPsi
	dy := s.Vx*sinPsi + s.Vy*cosPsi
	dpsi := s.Omega

	sailX, sailY := 0.0, 0.0
	if b.Wind != nil {
		wxGlobal, wyGlobal := b.Wind.Wind(s.X, s.Y)

		// Rotate global wind into the body frame.
		wxBody := cosPsi*wxGlobal + sinPsi*wyGlobal
		wyBody := -sinPsi*wxGlobal + cosPsi*wyGlobal

		// Apparent wind: wind relative to the moving hull.
		awx := wxBody - s.Vx
		awy := wyBody - s.Vy

		q := 0.5 * b.Params.AirDensity * b.Params.SailArea
		sailX = q * b.Params.SailCx * awx
		sailY = q * b.Params.SailCy * awy
	}

	dvx := (fx+sailX)/b.Params.Mass - b.Params.Damping[0]*s.Vx
	dvy := (fy+sailY)/b.Params.Mass - b.Params.Damping[1]*s.Vy
	domega := m/b.Params.Inertia - b.Params.Damping[2]*s.Omega

	return sim.State{dx, dy, dpsi, dvx, dvy, domega}
}

// UpdateState advances the boat by one Euler step. adaptDerivs supplies the
// time derivatives of the two adaptive-disturbance estimates; the physical
// dynamics never produce them.
func (b *Boat) UpdateState(u sim.Control, adaptDerivs sim.State, dt float64) error {
	if len(adaptDerivs) != 2 {
		return fmt.Errorf("%w: adaptation derivatives need 2 elements, got %d",
			sim.ErrDimensionMismatch, len(adaptDerivs))
	}
	derivs := append(b.Dynamics(u), adaptDerivs...)
	return b.State.Update(derivs, dt)
}

// Derivative implements sim.Dynamics over the flat 8-element state form so
// a Boat can drive the generic simulator. The adaptation components have no
// intrinsic dynamics and derive to zero here.
func (b *Boat) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	s, err := FromArray(x)
	if err != nil {
		return make(sim.State, StateLen)
	}
	fx, fy, m := b.Thruster.Forces(b.Params, u)
	return append(b.kinematics(s, fx, fy, m), 0, 0)
}

func (b *Boat) StateDim() int   { return StateLen }
func (b *Boat) ControlDim() int { return b.Thruster.ControlDim() }

// Energy reports the kinetic energy of the hull for a flat state vector.
func (b *Boat) Energy(x sim.State) float64 {
	if len(x) != StateLen {
		return 0
	}
	vx, vy, omega := x[3], x[4], x[5]
	ke := 0.5 * b.Params.Mass * (vx*vx + vy*vy)
	keRot := 0.5 * b.Params.Inertia * omega * omega
	return ke + keRot
}
