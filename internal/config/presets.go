package config

// Presets are named starting points per model, applied before config files
// and CLI flags.
var presets = map[string]map[string]func(*Config){
	"cartpole": {
		"balance": func(c *Config) {
			c.Controller = "lqr"
			c.InitState.Theta = 0.2
			c.Duration = 20.0
		},
		"swing": func(c *Config) {
			c.Controller = "none"
			c.InitState.Theta = 3.0
			c.Duration = 15.0
		},
	},
	"boat": {
		"straight": func(c *Config) {
			c.Topology = "differential"
			c.Duration = 30.0
		},
		"crosswind": func(c *Config) {
			c.Topology = "differential"
			c.Wind = WindConfig{Enabled: true, Speed: 6.0, Direction: 1.5708}
			c.Duration = 60.0
		},
		"vectored": func(c *Config) {
			c.Topology = "steerable"
			c.Duration = 30.0
		},
	},
}

// GetPreset returns a fresh config for a named preset, or nil when the
// model or preset is unknown.
func GetPreset(model, name string) *Config {
	modelPresets, ok := presets[model]
	if !ok {
		return nil
	}
	apply, ok := modelPresets[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Model = model
	apply(cfg)
	return cfg
}

// ListPresets names the presets available for a model, or nil for an
// unknown model.
func ListPresets(model string) []string {
	modelPresets, ok := presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
