// Package config holds the yaml run configuration for the condyn CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mweb/condyn/internal/la"
	"github.com/mweb/condyn/internal/solver"
)

const (
	DefaultDt      = 1e-3
	DefaultT1      = 5.0
	DefaultRhoInf  = 1.0
	DefaultAtol    = 1e-8
	DefaultMaxIter = 40
)

// Config describes one simulation run: the model, the time grid and
// the integrator settings.
type Config struct {
	Model    string  `yaml:"model"`
	Dt       float64 `yaml:"dt"`
	T1       float64 `yaml:"t1"`
	RhoInf   float64 `yaml:"rho_inf"`
	Atol     float64 `yaml:"atol"`
	MaxIter  int     `yaml:"max_iter"`
	DAEIndex int     `yaml:"dae_index"`
	GGL      bool    `yaml:"ggl"`
	Jacobian string  `yaml:"jacobian"` // "fd2" (forward) or "fd3" (central)

	Params ModelParams `yaml:"model_params"`
}

// ModelParams overrides built-in model parameters; zero values keep the
// model defaults.
type ModelParams struct {
	Mass        float64 `yaml:"mass"`
	Length      float64 `yaml:"length"`
	Gravity     float64 `yaml:"gravity"`
	Y           float64 `yaml:"y"`
	Theta       float64 `yaml:"theta"`
	Omega       float64 `yaml:"omega"`
	Links       int     `yaml:"links"`
	ProxR       float64 `yaml:"prox_r"`
	Restitution float64 `yaml:"restitution"`
	Torque      float64 `yaml:"torque"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    "pendulum",
		Dt:       DefaultDt,
		T1:       DefaultT1,
		RhoInf:   DefaultRhoInf,
		Atol:     DefaultAtol,
		MaxIter:  DefaultMaxIter,
		DAEIndex: int(solver.Index2),
		GGL:      true,
		Jacobian: "fd2",
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

// SolverOptions translates the configuration into solver options.
func (c *Config) SolverOptions() (solver.Options, error) {
	opts := solver.DefaultOptions()
	opts.RhoInf = c.RhoInf
	opts.Atol = c.Atol
	opts.MaxIter = c.MaxIter
	opts.DAEIndex = solver.DAEIndex(c.DAEIndex)
	opts.GGL = c.GGL
	switch c.Jacobian {
	case "", "fd2":
		opts.Jacobian = solver.FDJacobian{Method: la.Forward}
	case "fd3":
		opts.Jacobian = solver.FDJacobian{Method: la.Central}
	default:
		return opts, fmt.Errorf("config: unknown jacobian %q (want fd2 or fd3)", c.Jacobian)
	}
	return opts, nil
}
