package boat

import (
	"errors"
	"math"
	"testing"

	"github.com/soren-h/plantlab/internal/sim"
)

func TestFromArrayRoundTrip(t *testing.T) {
	arr := sim.State{1.5, -2.0, 0.3, 0.7, -0.1, 0.05, 0.01, -0.02}

	s, err := FromArray(arr)
	if err != nil {
		t.Fatalf("FromArray failed: %v", err)
	}

	back := s.ToArray()
	for i := range arr {
		if back[i] != arr[i] {
			t.Errorf("component %d: got %f, want %f", i, back[i], arr[i])
		}
	}
}

func TestFromArrayValidation(t *testing.T) {
	for _, n := range []int{0, 7, 9} {
		_, err := FromArray(make(sim.State, n))
		if err == nil {
			t.Errorf("expected error for length %d", n)
		}
		if !errors.Is(err, sim.ErrDimensionMismatch) {
			t.Errorf("length %d: expected ErrDimensionMismatch, got %v", n, err)
		}
	}
}

func TestStateUpdate(t *testing.T) {
	s := &State{X: 1, Y: 2, Psi: 0.1, Vx: 0.5}

	derivs := sim.State{1, -1, 0.2, 0.1, 0.3, 0.4, 0.01, 0.02}
	if err := s.Update(derivs, 0.5); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if math.Abs(s.X-1.5) > 1e-12 {
		t.Errorf("X = %f, want 1.5", s.X)
	}
	if math.Abs(s.Y-1.5) > 1e-12 {
		t.Errorf("Y = %f, want 1.5", s.Y)
	}
	if math.Abs(s.Psi-0.2) > 1e-12 {
		t.Errorf("Psi = %f, want 0.2", s.Psi)
	}
	if math.Abs(s.Vx-0.55) > 1e-12 {
		t.Errorf("Vx = %f, want 0.55", s.Vx)
	}
	if math.Abs(s.Adapt1-0.005) > 1e-12 {
		t.Errorf("Adapt1 = %f, want 0.005", s.Adapt1)
	}
	if math.Abs(s.Adapt2-0.01) > 1e-12 {
		t.Errorf("Adapt2 = %f, want 0.01", s.Adapt2)
	}
}

func TestStateUpdateWrapsHeading(t *testing.T) {
	s := &State{Psi: math.Pi - 0.1}

	derivs := sim.State{0, 0, 1, 0, 0, 0, 0, 0}
	if err := s.Update(derivs, 0.2); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	want := sim.WrapAngle(math.Pi + 0.1)
	if math.Abs(s.Psi-want) > 1e-12 {
		t.Errorf("Psi = %f, want wrapped %f", s.Psi, want)
	}
	if s.Psi > math.Pi || s.Psi < -math.Pi {
		t.Errorf("Psi = %f not wrapped", s.Psi)
	}
}

func TestStateUpdateValidation(t *testing.T) {
	s := &State{X: 1, Y: 2, Psi: 0.3}
	before := *s

	for _, n := range []int{0, 7, 9} {
		err := s.Update(make(sim.State, n), 0.1)
		if err == nil {
			t.Errorf("expected error for %d derivatives", n)
		}
		if !errors.Is(err, sim.ErrDimensionMismatch) {
			t.Errorf("length %d: expected ErrDimensionMismatch, got %v", n, err)
		}
		if *s != before {
			t.Fatalf("state mutated on failed update: %+v", *s)
		}
	}
}
