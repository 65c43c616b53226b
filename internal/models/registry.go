package models

import (
	"fmt"

	"github.com/mweb/condyn/internal/model"
)

// New constructs a built-in model by name with default parameters.
func New(name string) (model.Model, error) {
	switch name {
	case "ball":
		return NewBall(), nil
	case "pendulum":
		return NewPendulum(), nil
	case "chain":
		return NewChain(3), nil
	case "rotor":
		return NewRotor(), nil
	default:
		return nil, fmt.Errorf("models: unknown model %q (have %v)", name, Names())
	}
}

// Names lists the built-in model names.
func Names() []string {
	return []string{"ball", "pendulum", "chain", "rotor"}
}
