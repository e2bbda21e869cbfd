package cartpole

import (
	"fmt"

	"github.com/soren-h/plantlab/internal/sim"
)

// batchMinChunk is the smallest per-goroutine slice worth the scheduling cost.
const batchMinChunk = 256

// DynamicsBatch evaluates the cart-pole equations for N independent
// (state, force) pairs. Rows never interact, so the work is split across
// goroutines; each row matches what Dynamics returns for it.
func DynamicsBatch(p Params, states []sim.State, forces []float64) ([]sim.State, error) {
	if len(forces) != len(states) {
		return nil, fmt.Errorf("%w: %d forces for %d states",
			sim.ErrDimensionMismatch, len(forces), len(states))
	}
	for i, x := range states {
		if len(x) != StateLen {
			return nil, fmt.Errorf("%w: state %d has %d elements, want %d",
				sim.ErrDimensionMismatch, i, len(x), StateLen)
		}
	}

	derivs := make([]sim.State, len(states))
	sim.ParallelFor(len(states), batchMinChunk, func(start, end int) {
		for i := start; i < end; i++ {
			derivs[i] = Dynamics(p, states[i], forces[i])
		}
	})

	return derivs, nil
}
