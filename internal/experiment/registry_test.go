package experiment

import (
	"context"
	"testing"

	"github.com/soren-h/plantlab/internal/config"
)

func TestRegistryModels(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()

	for _, model := range []string{"cartpole", "boat"} {
		cfg.Model = model
		dyn, err := r.GetModel(model, cfg)
		if err != nil {
			t.Fatalf("model %s: %v", model, err)
		}
		if dyn.StateDim() == 0 {
			t.Errorf("model %s: zero state dim", model)
		}
	}

	if _, err := r.GetModel("pendulum", cfg); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestRegistryBoatTopologies(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Model = "boat"

	for _, topo := range []string{"differential", "steerable", ""} {
		cfg.Topology = topo
		if _, err := r.GetModel("boat", cfg); err != nil {
			t.Errorf("topology %q: %v", topo, err)
		}
	}

	cfg.Topology = "outboard"
	if _, err := r.GetModel("boat", cfg); err == nil {
		t.Error("expected error for unknown topology")
	}
}

func TestRegistryIntegratorsAndControllers(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"euler", "rk4"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("integrator %s: %v", name, err)
		}
	}
	if _, err := r.GetIntegrator("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}

	params := map[string]float64{"dim": 2, "kp": 1, "ki": 0, "kd": 0}
	for _, name := range []string{"none", "pid", "lqr"} {
		if _, err := r.GetController(name, params); err != nil {
			t.Errorf("controller %s: %v", name, err)
		}
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Model = "cartpole"

	dyn, err := r.GetModel("cartpole", cfg)
	if err != nil {
		t.Fatal(err)
	}
	integ, _ := r.GetIntegrator("euler")
	ctrl, _ := r.GetController("none", map[string]float64{"dim": 1})

	exp := New(Config{
		Model:     "cartpole",
		InitState: cfg.GetInitState(),
		Dt:        0.01,
		Duration:  1.0,
	})
	if err := exp.Setup(dyn, integ, ctrl, r.DefaultMetrics(dyn)); err != nil {
		t.Fatal(err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.StepsTaken != 100 {
		t.Errorf("expected 100 steps, got %d", result.StepsTaken)
	}
	if _, ok := result.Metrics["control_effort"]; !ok {
		t.Error("expected control_effort metric")
	}
}

func TestExperimentNotSetup(t *testing.T) {
	exp := New(Config{InitState: []float64{0}, Dt: 0.1, Duration: 1})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error for un-setup experiment")
	}
}
