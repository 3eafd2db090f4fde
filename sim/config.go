package sim

import (
	"fmt"

	"github.com/inference-sim/opsim/sim/variate"
)

// Config is everything one queue run needs. It is built per run and passed
// down explicitly; nothing in this package keeps process-wide state.
type Config struct {
	Seed        int64   // master seed, >= 0
	Customers   int     // number of arrivals to simulate, >= 1
	ArrivalRate float64 // λ, customers per hour
	ServiceRate float64 // μ, customers per hour

	// Optional overrides for the variate distributions, in minutes. When nil,
	// both default to exponential with mean 60/rate (the M/M/1 model).
	Interarrival *variate.Spec
	Service      *variate.Spec
}

// NewConfig returns an M/M/1 configuration.
func NewConfig(seed int64, customers int, lambda, mu float64) Config {
	return Config{Seed: seed, Customers: customers, ArrivalRate: lambda, ServiceRate: mu}
}

// Rates returns the nominal rates of the run.
func (c Config) Rates() Rates {
	return NewRates(c.ArrivalRate, c.ServiceRate)
}

// InterarrivalSpec returns the distribution for the interarrival stream.
func (c Config) InterarrivalSpec() variate.Spec {
	if c.Interarrival != nil {
		return *c.Interarrival
	}
	return variate.Exponential(MinutesPerHour / c.ArrivalRate)
}

// ServiceSpec returns the distribution for the service stream.
func (c Config) ServiceSpec() variate.Spec {
	if c.Service != nil {
		return *c.Service
	}
	return variate.Exponential(MinutesPerHour / c.ServiceRate)
}

// Validate checks the whole configuration before any variate is drawn.
func (c Config) Validate() error {
	if c.Seed < 0 {
		return fmt.Errorf("seed = %d must be >= 0: %w", c.Seed, ErrInvalidParameter)
	}
	if c.Customers < 1 {
		return fmt.Errorf("customers = %d must be >= 1: %w", c.Customers, ErrInvalidParameter)
	}
	if err := c.Rates().Validate(); err != nil {
		return err
	}
	if err := c.InterarrivalSpec().Validate(); err != nil {
		return fmt.Errorf("interarrival distribution: %w", err)
	}
	if err := c.ServiceSpec().Validate(); err != nil {
		return fmt.Errorf("service distribution: %w", err)
	}
	return nil
}
