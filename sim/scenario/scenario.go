// Package scenario loads queue run configurations from YAML files.
package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/opsim/sim"
	"github.com/inference-sim/opsim/sim/variate"
)

// CurrentVersion is the scenario file format version.
const CurrentVersion = "1"

// File is the top-level scenario document.
// Loaded from YAML via Load(path).
type File struct {
	Version   string     `yaml:"version"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario describes one queue run.
type Scenario struct {
	Name         string        `yaml:"name"`
	Seed         int64         `yaml:"seed"`
	Customers    int           `yaml:"customers"`
	ArrivalRate  float64       `yaml:"arrival_rate"` // per hour
	ServiceRate  float64       `yaml:"service_rate"` // per hour
	Interarrival *variate.Spec `yaml:"interarrival,omitempty"`
	Service      *variate.Spec `yaml:"service,omitempty"`
}

// Config converts the scenario into a run configuration.
func (s Scenario) Config() sim.Config {
	cfg := sim.NewConfig(s.Seed, s.Customers, s.ArrivalRate, s.ServiceRate)
	cfg.Interarrival = s.Interarrival
	cfg.Service = s.Service
	return cfg
}

// Load reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Decode(bytes.NewReader(data))
}

// Decode parses a scenario document from r with strict field checking.
func Decode(r io.Reader) (*File, error) {
	var f File
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if f.Version == "" {
		f.Version = CurrentVersion
	}
	return &f, nil
}

// Validate checks the document shape. Per-scenario parameters are checked by
// ValidateScenario so that one bad scenario does not hide its siblings.
func (f *File) Validate() error {
	if f.Version != CurrentVersion {
		return fmt.Errorf("unsupported scenario version %q; want %q", f.Version, CurrentVersion)
	}
	if len(f.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario required: %w", sim.ErrInvalidParameter)
	}
	seen := make(map[string]bool, len(f.Scenarios))
	for i, s := range f.Scenarios {
		if s.Name == "" {
			return fmt.Errorf("scenario[%d]: name required: %w", i, sim.ErrInvalidParameter)
		}
		if s.Name == "." || s.Name == ".." || strings.ContainsAny(s.Name, `/\`) {
			return fmt.Errorf("scenario[%d]: name %q must not contain path separators: %w", i, s.Name, sim.ErrInvalidParameter)
		}
		if seen[s.Name] {
			return fmt.Errorf("scenario[%d]: duplicate name %q: %w", i, s.Name, sim.ErrInvalidParameter)
		}
		seen[s.Name] = true
	}
	return nil
}

// ValidateScenario checks one scenario's run configuration.
func ValidateScenario(s Scenario) error {
	if err := s.Config().Validate(); err != nil {
		return fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return nil
}
