package controllers

import "github.com/soren-h/plantlab/internal/sim"

// LQR applies a fixed gain matrix to the state error: u = -K(x - target).
type LQR struct {
	K      [][]float64
	Target sim.State
}

func NewLQR(k [][]float64, target sim.State) *LQR {
	return &LQR{K: k, Target: target}
}

func (l *LQR) Compute(x sim.State, t float64) sim.Control {
	u := make(sim.Control, len(l.K))
	for i, row := range l.K {
		for j, gain := range row {
			if j >= len(x) {
				break
			}
			target := 0.0
			if j < len(l.Target) {
				target = l.Target[j]
			}
			u[i] -= gain * (x[j] - target)
		}
	}
	return u
}

// NewCartPoleLQR returns gains that hold the pole upright at the origin
// for the default cart-pole parameters. Gains were tuned offline.
func NewCartPoleLQR() *LQR {
	k := [][]float64{{-3.16, -9.8, 120.0, 18.5}}
	return NewLQR(k, sim.State{0, 0, 0, 0})
}
