package config

import "fmt"

// Preset returns a named ready-to-run configuration.
func Preset(name string) (*Config, error) {
	cfg := DefaultConfig()
	switch name {
	case "bouncing_ball":
		cfg.Model = "ball"
		cfg.Dt = 2.5e-3
		cfg.T1 = 2.0
		cfg.Params.Y = 1.0
		cfg.Params.ProxR = 1e3
	case "pendulum":
		cfg.Model = "pendulum"
		cfg.Dt = 1e-3
		cfg.T1 = 5.0
	case "pendulum_damped":
		cfg.Model = "pendulum"
		cfg.Dt = 1e-2
		cfg.T1 = 10.0
		cfg.RhoInf = 0.6
	case "chain":
		cfg.Model = "chain"
		cfg.Dt = 1e-3
		cfg.T1 = 2.0
		cfg.Params.Links = 5
	default:
		return nil, fmt.Errorf("config: unknown preset %q (have %v)", name, PresetNames())
	}
	return cfg, nil
}

// PresetNames lists the available presets.
func PresetNames() []string {
	return []string{"bouncing_ball", "pendulum", "pendulum_damped", "chain"}
}
