package experiment

import (
	"fmt"

	"github.com/soren-h/plantlab/internal/boat"
	"github.com/soren-h/plantlab/internal/cartpole"
	"github.com/soren-h/plantlab/internal/config"
	"github.com/soren-h/plantlab/internal/controllers"
	"github.com/soren-h/plantlab/internal/integrators"
	"github.com/soren-h/plantlab/internal/metrics"
	"github.com/soren-h/plantlab/internal/sim"
)

type Registry struct {
	models      map[string]func(cfg *config.Config) (sim.Dynamics, error)
	integrators map[string]func() sim.Integrator
	controllers map[string]func(params map[string]float64) sim.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func(cfg *config.Config) (sim.Dynamics, error)),
		integrators: make(map[string]func() sim.Integrator),
		controllers: make(map[string]func(map[string]float64) sim.Controller),
	}

	r.models["cartpole"] = func(cfg *config.Config) (sim.Dynamics, error) {
		return cartpole.New(cfg.GetInitState(), cfg.CartPoleParams())
	}
	r.models["boat"] = func(cfg *config.Config) (sim.Dynamics, error) {
		init, err := boat.FromArray(cfg.GetInitState())
		if err != nil {
			return nil, err
		}
		params := cfg.BoatParameters()
		wind := cfg.WindField()
		switch cfg.Topology {
		case "", "differential":
			return boat.NewDifferentialThrustBoat(init, params, wind), nil
		case "steerable":
			return boat.NewSteerableThrustBoat(init, params, wind), nil
		default:
			return nil, fmt.Errorf("unknown boat topology: %s", cfg.Topology)
		}
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }

	r.controllers["none"] = func(params map[string]float64) sim.Controller {
		dim := int(params["dim"])
		if dim == 0 {
			dim = 1
		}
		return controllers.NewNone(dim)
	}
	r.controllers["pid"] = func(params map[string]float64) sim.Controller {
		return controllers.NewPID(params["kp"], params["ki"], params["kd"],
			params["target"], int(params["index"]))
	}
	r.controllers["lqr"] = func(params map[string]float64) sim.Controller {
		return controllers.NewCartPoleLQR()
	}

	return r
}

func (r *Registry) GetModel(name string, cfg *config.Config) (sim.Dynamics, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(cfg)
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (sim.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics builds the standard metric set for a dynamics, adding the
// energy-drift metric when the dynamics can report energy.
func (r *Registry) DefaultMetrics(dyn sim.Dynamics) []sim.Metric {
	set := []sim.Metric{
		metrics.NewStability(50.0),
		metrics.NewControlEffort(),
	}
	if ec, ok := dyn.(sim.EnergyComputer); ok {
		set = append(set, metrics.NewEnergyDrift(ec))
	}
	return set
}
