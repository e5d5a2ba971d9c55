// Package profile loads declarative binding profiles from yaml: which
// inputs drive which actions, the device scope, dead zone, diff epsilon,
// and clash strategy for one player or context.
package profile

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/actionmap/action"
	"github.com/milk9111/actionmap/inputmap"
)

// BindingSpec binds one named action to its input descriptors. Bindings are
// a list, not a map, so registration order in the file is the tie-break
// order for clash resolution.
type BindingSpec struct {
	Action string   `yaml:"action"`
	Inputs []string `yaml:"inputs"`
}

// Profile is the on-disk shape of one context's input configuration.
type Profile struct {
	Device        string        `yaml:"device"`
	DeadZone      *float64      `yaml:"dead_zone"`
	Epsilon       *float64      `yaml:"epsilon"`
	ClashStrategy string        `yaml:"clash_strategy"`
	Bindings      []BindingSpec `yaml:"bindings"`
}

// Load reads and validates a profile file. Invalid numeric configuration
// fails here rather than propagating into per-frame logic.
func Load(filename string) (*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("profile: load %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse decodes and validates profile yaml.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: unmarshal: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	if p.DeadZone != nil {
		v := *p.DeadZone
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("profile: invalid dead_zone %v", v)
		}
	}
	if p.Epsilon != nil {
		v := *p.Epsilon
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("profile: invalid epsilon %v", v)
		}
	}
	if _, err := p.Strategy(); err != nil {
		return err
	}
	for _, b := range p.Bindings {
		if b.Action == "" {
			return fmt.Errorf("profile: binding with empty action name")
		}
		for _, desc := range b.Inputs {
			if _, err := ParseInput(desc); err != nil {
				return fmt.Errorf("profile: action %q: %w", b.Action, err)
			}
		}
	}
	return nil
}

// Strategy resolves the configured clash strategy. An empty value defaults
// to PrioritizeLargest.
func (p *Profile) Strategy() (inputmap.ClashStrategy, error) {
	switch p.ClashStrategy {
	case "", "prioritize_largest":
		return inputmap.PrioritizeLargest, nil
	case "use_all":
		return inputmap.UseAll, nil
	default:
		return 0, fmt.Errorf("profile: unknown clash_strategy %q", p.ClashStrategy)
	}
}

// Build constructs an input map from the profile's bindings, in file order.
func (p *Profile) Build() (*inputmap.InputMap[action.Named], error) {
	m := inputmap.NewInputMap[action.Named]()
	m.SetDevice(p.Device)
	if p.DeadZone != nil {
		if err := m.SetDeadZone(*p.DeadZone); err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
	}
	for _, b := range p.Bindings {
		for _, desc := range b.Inputs {
			in, err := ParseInput(desc)
			if err != nil {
				return nil, fmt.Errorf("profile: action %q: %w", b.Action, err)
			}
			m.Insert(action.Named(b.Action), in)
		}
	}
	return m, nil
}
