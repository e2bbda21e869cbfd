package boat

import (
	"math"
	"testing"

	"github.com/soren-h/plantlab/internal/sim"
)

func testParams() Parameters {
	return Parameters{
		Mass:       10.0,
		Inertia:    5.0,
		Damping:    [3]float64{0, 0, 0},
		L:          1.0,
		AirDensity: 1.225,
		SailCx:     0.8,
		SailCy:     1.2,
		SailArea:   10.0,
	}
}

func TestDifferentialThrustZeroSideForce(t *testing.T) {
	p := testParams()
	controls := []sim.Control{
		{0, 0}, {1, 1}, {5, -3}, {-2, 7}, {0.5, 0.5},
	}

	for _, u := range controls {
		_, fy, _ := DifferentialThrust{}.Forces(p, u)
		if fy != 0 {
			t.Errorf("control %v: Fy = %f, want exactly 0", u, fy)
		}
	}
}

func TestDifferentialThrustForces(t *testing.T) {
	p := testParams()

	fx, fy, m := DifferentialThrust{}.Forces(p, sim.Control{2, 5})
	if fx != 7 {
		t.Errorf("Fx = %f, want 7", fx)
	}
	if fy != 0 {
		t.Errorf("Fy = %f, want 0", fy)
	}
	if m != 3 {
		t.Errorf("M = %f, want L*(right-left) = 3", m)
	}
}

func TestSteerableThrustForces(t *testing.T) {
	p := testParams()
	thrust, angle := 4.0, 0.3

	fx, fy, m := SteerableThrust{}.Forces(p, sim.Control{thrust, angle})

	if math.Abs(fx-thrust*math.Cos(angle)) > 1e-12 {
		t.Errorf("Fx = %f, want %f", fx, thrust*math.Cos(angle))
	}
	if math.Abs(fy-thrust*math.Sin(angle)) > 1e-12 {
		t.Errorf("Fy = %f, want %f", fy, thrust*math.Sin(angle))
	}
	if math.Abs(m-thrust*p.L*math.Sin(angle)) > 1e-12 {
		t.Errorf("M = %f, want %f", m, thrust*p.L*math.Sin(angle))
	}
}

func TestStraightLineAcceleration(t *testing.T) {
	b := NewDifferentialThrustBoat(&State{}, testParams(), nil)

	if err := b.UpdateState(sim.Control{1, 1}, sim.State{0, 0}, 1.0); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	// Fx = 2, mass = 10, so one Euler step at dt=1 gives Vx = 0.2.
	if math.Abs(b.State.Vx-0.2) > 1e-12 {
		t.Errorf("Vx = %f, want 0.2", b.State.Vx)
	}

	rest := []float64{b.State.X, b.State.Y, b.State.Psi, b.State.Vy, b.State.Omega, b.State.Adapt1, b.State.Adapt2}
	for i, v := range rest {
		if v != 0 {
			t.Errorf("component %d moved: %f", i, v)
		}
	}
}

func TestNoWindEquivalence(t *testing.T) {
	init := sim.State{1, -2, 0.4, 0.5, -0.1, 0.2, 0, 0}
	u := sim.Control{3, 1}

	calmState, _ := FromArray(init)
	nilState, _ := FromArray(init)

	calm := NewDifferentialThrustBoat(calmState, testParams(), ConstantWind{})
	bare := NewDifferentialThrustBoat(nilState, testParams(), nil)

	for i := 0; i < 200; i++ {
		if err := calm.UpdateState(u, sim.State{0, 0}, 0.01); err != nil {
			t.Fatalf("calm update failed: %v", err)
		}
		if err := bare.UpdateState(u, sim.State{0, 0}, 0.01); err != nil {
			t.Fatalf("bare update failed: %v", err)
		}
	}

	a, b := calm.State.ToArray(), bare.State.ToArray()
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-12 {
			t.Errorf("component %d: wind=0 gives %f, no field gives %f", i, a[i], b[i])
		}
	}
}

func TestUpdateStateAdaptValidation(t *testing.T) {
	b := NewDifferentialThrustBoat(&State{}, testParams(), nil)

	for _, n := range []int{0, 1, 3} {
		if err := b.UpdateState(sim.Control{1, 1}, make(sim.State, n), 0.1); err == nil {
			t.Errorf("expected error for %d adaptation derivatives", n)
		}
	}
}

func TestUpdateStateIntegratesAdaptation(t *testing.T) {
	b := NewDifferentialThrustBoat(&State{}, testParams(), nil)

	if err := b.UpdateState(sim.Control{0, 0}, sim.State{0.5, -0.2}, 0.1); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if math.Abs(b.State.Adapt1-0.05) > 1e-12 {
		t.Errorf("Adapt1 = %f, want 0.05", b.State.Adapt1)
	}
	if math.Abs(b.State.Adapt2+0.02) > 1e-12 {
		t.Errorf("Adapt2 = %f, want -0.02", b.State.Adapt2)
	}
}

func TestTurningDirection(t *testing.T) {
	b := NewDifferentialThrustBoat(&State{}, testParams(), nil)

	// More thrust on the right turns the bow left (positive yaw).
	d := b.Dynamics(sim.Control{0, 2})
	if d[5] <= 0 {
		t.Errorf("domega = %f, want positive for right-heavy thrust", d[5])
	}
}

func TestDerivativeMatchesDynamics(t *testing.T) {
	init := sim.State{0.5, 1.0, -0.3, 0.2, 0.1, -0.05, 0.3, -0.4}
	st, _ := FromArray(init)
	b := NewSteerableThrustBoat(st, testParams(), ConstantWind{Wx: 2, Wy: -1})
	u := sim.Control{3, 0.2}

	viaDynamics := b.Dynamics(u)
	viaDerivative := b.Derivative(init, u, 0)

	if len(viaDerivative) != StateLen {
		t.Fatalf("Derivative length = %d, want %d", len(viaDerivative), StateLen)
	}
	for i := 0; i < 6; i++ {
		if viaDerivative[i] != viaDynamics[i] {
			t.Errorf("component %d: Derivative %f, Dynamics %f", i, viaDerivative[i], viaDynamics[i])
		}
	}
	if viaDerivative[6] != 0 || viaDerivative[7] != 0 {
		t.Error("adaptation components must derive to zero in the generic form")
	}
}
