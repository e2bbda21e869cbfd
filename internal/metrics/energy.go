package metrics

import (
	"math"

	"github.com/soren-h/plantlab/internal/sim"
)

// EnergyDrift tracks the relative drift of mechanical energy against the
// first observed sample, using whatever energy the dynamics reports.
type EnergyDrift struct {
	name    string
	ec      sim.EnergyComputer
	initial float64
	current float64
	first   bool
}

func NewEnergyDrift(ec sim.EnergyComputer) *EnergyDrift {
	return &EnergyDrift{
		name:  "energy_drift",
		ec:    ec,
		first: true,
	}
}

func (e *EnergyDrift) Name() string {
	return e.name
}

func (e *EnergyDrift) Observe(x sim.State, u sim.Control, t float64) {
	e.current = e.ec.Energy(x)
	if e.first {
		e.initial = e.current
		e.first = false
	}
}

func (e *EnergyDrift) Value() float64 {
	if e.first || e.initial == 0 {
		return 0
	}
	return math.Abs(e.current-e.initial) / math.Abs(e.initial)
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.current = 0
	e.first = true
}
