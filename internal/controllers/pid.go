package controllers

import "github.com/soren-h/plantlab/internal/sim"

// PID regulates one state component toward a target value.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	Index    int // state component being regulated
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64, index int) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		Index:  index,
		first:  true,
	}
}

func (p *PID) Compute(x sim.State, t float64) sim.Control {
	if p.Index >= len(x) {
		return sim.Control{0}
	}

	err := p.Target - x[p.Index]

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return sim.Control{p.Kp * err}
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return sim.Control{u}
	}
	return sim.Control{p.Kp * err}
}
