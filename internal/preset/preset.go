// Package preset loads YAML parameter presets and applies them to a
// vocalchain.Processor.
//
// A preset names modules by their Name and sets any subset of their
// parameters:
//
//	master_mix: 0.6
//	modules:
//	  PitchDriftBrain:
//	    enabled: true
//	    cents_low: -30
//	    cents_high: 30
//	  RubberDuckFM:
//	    enabled: true
//	    mode: angry
//
// Values are handed to the module setters, which clamp them. The symmetric
// PitchDriftBrain intensity and its cents_low/cents_high range are mutually
// exclusive.
package preset

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/cwbudde/algo-vocal/dsp/vocalchain"
	"gopkg.in/yaml.v2"
)

var (
	// ErrUnknownModule is returned when a preset names a module the
	// processor does not have.
	ErrUnknownModule = errors.New("preset: unknown module")
	// ErrUnknownParameter is returned for a parameter key a module does not
	// accept.
	ErrUnknownParameter = errors.New("preset: unknown parameter")
	// ErrInvalidValue is returned when a parameter has the wrong type or an
	// unknown enumeration name.
	ErrInvalidValue = errors.New("preset: invalid value")
)

// Preset is a parsed preset file. Nil fields leave the processor untouched.
type Preset struct {
	MasterMix *float64          `yaml:"master_mix"`
	Modules   map[string]Module `yaml:"modules"`
}

// Module holds the settings for one module.
type Module struct {
	Enabled *bool                  `yaml:"enabled"`
	Mix     *float64               `yaml:"mix"`
	Params  map[string]interface{} `yaml:",inline"`
}

// Parse decodes a preset from YAML.
func Parse(data []byte) (*Preset, error) {
	p := &Preset{}

	err := yaml.Unmarshal(data, p)
	if err != nil {
		return nil, fmt.Errorf("preset: parse: %w", err)
	}

	return p, nil
}

// Load decodes a preset from r.
func Load(r io.Reader) (*Preset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("preset: read: %w", err)
	}

	return Parse(data)
}

// LoadFile decodes the preset stored at path.
func LoadFile(path string) (*Preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// ModuleNames returns the module names the preset configures, sorted.
func (p *Preset) ModuleNames() []string {
	return slices.Sorted(maps.Keys(p.Modules))
}

// Apply writes the preset into proc. Modules are applied in name order and
// the first error stops the walk; settings applied before it are kept.
func (p *Preset) Apply(proc *vocalchain.Processor) error {
	if p.MasterMix != nil {
		proc.SetMasterMix(*p.MasterMix)
	}

	table := parameterTable(proc)

	for _, name := range p.ModuleNames() {
		settings := p.Modules[name]

		m, ok := proc.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownModule, name)
		}

		if settings.Enabled != nil {
			m.SetEnabled(*settings.Enabled)
		}

		if settings.Mix != nil {
			m.SetMix(*settings.Mix)
		}

		err := checkExclusive(name, settings.Params)
		if err != nil {
			return err
		}

		params := table[name]

		for _, key := range slices.Sorted(maps.Keys(settings.Params)) {
			set, ok := params[key]
			if !ok {
				return fmt.Errorf("%w: %s.%s", ErrUnknownParameter, name, key)
			}

			err := set(settings.Params[key])
			if err != nil {
				return fmt.Errorf("%s.%s: %w", name, key, err)
			}
		}
	}

	return nil
}
