package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soren-h/plantlab/internal/boat"
	"github.com/soren-h/plantlab/internal/cartpole"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultKp       = 80.0
	DefaultKi       = 0.5
	DefaultKd       = 12.0
)

type Config struct {
	Model            string           `yaml:"model"`
	Topology         string           `yaml:"topology"` // boat only: differential | steerable
	Integrator       string           `yaml:"integrator"`
	Controller       string           `yaml:"controller"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	Seed             int64            `yaml:"seed"`
	InitState        InitStateConfig  `yaml:"init_state"`
	Boat             BoatConfig       `yaml:"boat"`
	CartPole         CartPoleConfig   `yaml:"cartpole"`
	Wind             WindConfig       `yaml:"wind"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
}

type InitStateConfig struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Psi      float64 `yaml:"psi"`
	Vx       float64 `yaml:"vx"`
	Vy       float64 `yaml:"vy"`
	Omega    float64 `yaml:"omega"`
	Pos      float64 `yaml:"pos"`
	Vel      float64 `yaml:"vel"`
	Theta    float64 `yaml:"theta"`
	ThetaDot float64 `yaml:"theta_dot"`
}

type BoatConfig struct {
	Mass       float64    `yaml:"mass"`
	Inertia    float64    `yaml:"inertia"`
	Damping    [3]float64 `yaml:"damping"`
	LeverArm   float64    `yaml:"lever_arm"`
	AirDensity float64    `yaml:"air_density"`
	SailCx     float64    `yaml:"sail_cx"`
	SailCy     float64    `yaml:"sail_cy"`
	SailArea   float64    `yaml:"sail_area"`
}

type CartPoleConfig struct {
	CartMass      float64 `yaml:"cart_mass"`
	PoleMass      float64 `yaml:"pole_mass"`
	HalfLength    float64 `yaml:"half_length"`
	Gravity       float64 `yaml:"gravity"`
	Damping       float64 `yaml:"damping"`
	RotaryDamping float64 `yaml:"rotary_damping"`
	MaxForce      float64 `yaml:"max_force"`
}

type WindConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Speed     float64 `yaml:"speed"`
	Direction float64 `yaml:"direction"` // radians, global frame
}

type ControllerConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
}

func DefaultConfig() *Config {
	bp := boat.DefaultParameters()
	cp := cartpole.DefaultParams()
	return &Config{
		Model:      "cartpole",
		Topology:   "differential",
		Integrator: "euler",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitStateConfig{
			Theta: 0.1,
		},
		Boat: BoatConfig{
			Mass:       bp.Mass,
			Inertia:    bp.Inertia,
			Damping:    bp.Damping,
			LeverArm:   bp.L,
			AirDensity: bp.AirDensity,
			SailCx:     bp.SailCx,
			SailCy:     bp.SailCy,
			SailArea:   bp.SailArea,
		},
		CartPole: CartPoleConfig{
			CartMass:      cp.CartMass,
			PoleMass:      cp.PoleMass,
			HalfLength:    cp.HalfLength,
			Gravity:       cp.Gravity,
			Damping:       cp.Damping,
			RotaryDamping: cp.RotaryDamping,
			MaxForce:      cp.MaxForce,
		},
		ControllerParams: ControllerConfig{
			Kp: DefaultKp,
			Ki: DefaultKi,
			Kd: DefaultKd,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// GetInitState returns the flat initial state for the configured model.
func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "boat":
		return []float64{c.InitState.X, c.InitState.Y, c.InitState.Psi,
			c.InitState.Vx, c.InitState.Vy, c.InitState.Omega, 0, 0}
	default:
		return []float64{c.InitState.Pos, c.InitState.Vel, c.InitState.Theta, c.InitState.ThetaDot}
	}
}

// BoatParameters converts the yaml form into the physics record.
func (c *Config) BoatParameters() boat.Parameters {
	return boat.Parameters{
		Mass:       c.Boat.Mass,
		Inertia:    c.Boat.Inertia,
		Damping:    c.Boat.Damping,
		L:          c.Boat.LeverArm,
		AirDensity: c.Boat.AirDensity,
		SailCx:     c.Boat.SailCx,
		SailCy:     c.Boat.SailCy,
		SailArea:   c.Boat.SailArea,
	}
}

// CartPoleParams converts the yaml form into the physics record.
func (c *Config) CartPoleParams() cartpole.Params {
	return cartpole.Params{
		CartMass:      c.CartPole.CartMass,
		PoleMass:      c.CartPole.PoleMass,
		HalfLength:    c.CartPole.HalfLength,
		Gravity:       c.CartPole.Gravity,
		Damping:       c.CartPole.Damping,
		RotaryDamping: c.CartPole.RotaryDamping,
		MaxForce:      c.CartPole.MaxForce,
	}
}

// WindField returns the configured wind field, or nil when disabled.
func (c *Config) WindField() boat.WindField {
	if !c.Wind.Enabled {
		return nil
	}
	return boat.WindFromPolar(c.Wind.Speed, c.Wind.Direction)
}
