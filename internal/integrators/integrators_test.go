package integrators

import (
	"math"
	"testing"

	"github.com/soren-h/plantlab/internal/sim"
)

type oscillator struct{}

func (s *oscillator) Derivative(x sim.State, u sim.Control, t float64) sim.State {
	return sim.State{x[1], -x[0]}
}

func (s *oscillator) StateDim() int   { return 2 }
func (s *oscillator) ControlDim() int { return 0 }

func TestRK4Accuracy(t *testing.T) {
	dyn := &oscillator{}
	integ := NewRK4()

	x := sim.State{1.0, 0.0}
	u := sim.Control{}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = integ.Step(dyn, x, u, float64(i)*dt, dt)
	}

	expectedX := math.Cos(float64(steps) * dt)
	expectedV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-expectedX) > 1e-4 {
		t.Errorf("position error too large: got %.6f, expected %.6f", x[0], expectedX)
	}

	if math.Abs(x[1]-expectedV) > 1e-4 {
		t.Errorf("velocity error too large: got %.6f, expected %.6f", x[1], expectedV)
	}
}

func TestEulerStep(t *testing.T) {
	dyn := &oscillator{}
	integ := NewEuler()

	x := integ.Step(dyn, sim.State{1.0, 0.0}, sim.Control{}, 0, 0.1)

	if math.Abs(x[0]-1.0) > 1e-12 {
		t.Errorf("position = %f, want 1.0", x[0])
	}
	if math.Abs(x[1]+0.1) > 1e-12 {
		t.Errorf("velocity = %f, want -0.1", x[1])
	}
}

func TestEulerConvergesToRK4(t *testing.T) {
	dyn := &oscillator{}
	euler := NewEuler()
	rk4 := NewRK4()

	// With a small enough step the first-order result approaches RK4.
	dt := 1e-4
	xe := sim.State{1.0, 0.0}
	xr := sim.State{1.0, 0.0}
	for i := 0; i < 1000; i++ {
		xe = euler.Step(dyn, xe, sim.Control{}, float64(i)*dt, dt)
		xr = rk4.Step(dyn, xr, sim.Control{}, float64(i)*dt, dt)
	}

	if math.Abs(xe[0]-xr[0]) > 1e-4 {
		t.Errorf("euler %f and rk4 %f diverged", xe[0], xr[0])
	}
}

func BenchmarkRK4(b *testing.B) {
	dyn := &oscillator{}
	integ := NewRK4()
	x := sim.State{1.0, 0.0}
	u := sim.Control{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, u, 0, 0.01)
	}
}

func BenchmarkEuler(b *testing.B) {
	dyn := &oscillator{}
	integ := NewEuler()
	x := sim.State{1.0, 0.0}
	u := sim.Control{}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(dyn, x, u, 0, 0.01)
	}
}
