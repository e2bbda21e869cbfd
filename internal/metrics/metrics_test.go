package metrics

import (
	"math"
	"testing"

	"github.com/soren-h/plantlab/internal/sim"
)

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	m.Observe(sim.State{0}, sim.Control{2.0}, 0)
	m.Observe(sim.State{0}, sim.Control{-4.0}, 0.1)

	if math.Abs(m.Value()-3.0) > 1e-12 {
		t.Errorf("mean effort = %f, want 3.0", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should zero the metric")
	}
}

func TestStability(t *testing.T) {
	m := NewStability(1.0)

	m.Observe(sim.State{0.5}, nil, 0)
	m.Observe(sim.State{2.0}, nil, 0.1)
	m.Observe(sim.State{0.1}, nil, 0.2)
	m.Observe(sim.State{0.9}, nil, 0.3)

	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("stability = %f, want 0.75", m.Value())
	}
}

type constEnergy struct{ e float64 }

func (c *constEnergy) Energy(x sim.State) float64 { return c.e }

func TestEnergyDrift(t *testing.T) {
	ec := &constEnergy{e: 10.0}
	m := NewEnergyDrift(ec)

	m.Observe(sim.State{0}, nil, 0)
	ec.e = 11.0
	m.Observe(sim.State{0}, nil, 0.1)

	if math.Abs(m.Value()-0.1) > 1e-12 {
		t.Errorf("drift = %f, want 0.1", m.Value())
	}
}
