package cartpole

import (
	"fmt"
	"math"

	"github.com/soren-h/plantlab/internal/sim"
)

// StateLen is the number of components in a cart-pole state vector:
// cart position, cart velocity, pole angle, pole angular velocity.
const StateLen = 4

// Params holds the physical constants of the cart-pole. The dynamics
// denominator degenerates only when PoleMass >= 4/3 of the total mass;
// staying away from that is a precondition on parameters, not a runtime
// check.
type Params struct {
	CartMass      float64 // [kg]
	PoleMass      float64 // [kg]
	HalfLength    float64 // half pole length [m]
	Gravity       float64 // [m/s^2]
	Damping       float64 // linear cart friction
	RotaryDamping float64 // pole angular damping
	MaxForce      float64 // actuation limit [N]
}

func DefaultParams() Params {
	return Params{
		CartMass:      1.0,
		PoleMass:      0.1,
		HalfLength:    0.5,
		Gravity:       9.81,
		Damping:       10.0,
		RotaryDamping: 0.1,
		MaxForce:      300.0,
	}
}

// CartPole owns one state vector and its parameters. The state is mutated
// in place by Update, once per step.
type CartPole struct {
	State  sim.State
	Params Params
}

func New(init sim.State, p Params) (*CartPole, error) {
	if len(init) != StateLen {
		return nil, fmt.Errorf("%w: cart-pole state needs %d elements, got %d",
			sim.ErrDimensionMismatch, StateLen, len(init))
	}
	return &CartPole{State: init.Clone(), Params: p}, nil
}

// Dynamics evaluates the cart-pole equations of motion for one state and
// force, returning [dx, ddx, dtheta, ddtheta]. It is pure: no clamping, no
// mutation.
func Dynamics(p Params, x sim.State, force float64) sim.State {
	xDot := x[1]
	theta := x[2]
	thetaDot := x[3]

	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)

	totalMass := p.CartMass + p.PoleMass
	poleMassLength := p.PoleMass * p.HalfLength

	temp := (force + poleMassLength*thetaDot*thetaDot*sinTheta - p.Damping*xDot) / totalMass

	thetaAcc := (p.Gravity*sinTheta - cosTheta*temp - p.RotaryDamping*thetaDot) /
		(p.HalfLength * (4.0/3.0 - p.PoleMass*cosTheta*cosTheta/totalMass))

	xAcc := temp - poleMassLength*thetaAcc*cosTheta/totalMass

	return sim.State{xDot, xAcc, thetaDot, thetaAcc}
}

// Update clamps force to the actuation limit, advances the state by one
// explicit Euler step and wraps the pole angle. Saturation is silent.
func (c *CartPole) Update(force, dt float64) {
	force = clamp(force, -c.Params.MaxForce, c.Params.MaxForce)
	derivs := Dynamics(c.Params, c.State, force)
	for i := range c.State {
		c.State[i] += derivs[i] * dt
	}
	c.State[2] = sim.WrapAngle(c.State[2])
}

// Derivative implements sim.Dynamics. The force limit belongs to the Update
// contract, so the generic form stays unclamped.
func (c *CartPole) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	if len(x) != StateLen {
		return make(sim.State, StateLen)
	}
	force := 0.0
	if len(u) > 0 {
		force = u[0]
	}
	return Dynamics(c.Params, x, force)
}

func (c *CartPole) StateDim() int   { return StateLen }
func (c *CartPole) ControlDim() int { return 1 }

// Energy reports cart kinetic plus pole kinetic and potential energy.
func (c *CartPole) Energy(x sim.State) float64 {
	if len(x) != StateLen {
		return 0
	}
	p := c.Params
	xDot, theta, thetaDot := x[1], x[2], x[3]

	cartKE := 0.5 * p.CartMass * xDot * xDot
	tipVx := xDot + p.HalfLength*thetaDot*math.Cos(theta)
	tipVy := -p.HalfLength * thetaDot * math.Sin(theta)
	poleKE := 0.5 * p.PoleMass * (tipVx*tipVx + tipVy*tipVy)
	polePE := p.PoleMass * p.Gravity * p.HalfLength * math.Cos(theta)

	return cartKE + poleKE + polePE
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
