package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/opsim/sim/variate"
)

// Result is the outcome of one queue run.
type Result struct {
	Key            SimulationKey
	Config         Config
	Trace          Trace
	Reconciliation *Reconciliation
}

// Run validates cfg, draws the substreams in DrawOrder from a fresh
// PartitionedRNG, simulates the queue and reconciles the trace.
//
// A validation failure returns before anything is drawn. Instability is not
// an error; it is reported in Result.Reconciliation.Warning.
func Run(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key := NewSimulationKey(cfg.Seed)
	rng := NewPartitionedRNG(key)

	specs := map[string]variate.Spec{
		StreamInterarrival: cfg.InterarrivalSpec(),
		StreamService:      cfg.ServiceSpec(),
	}
	drawn := make(map[string][]float64, len(DrawOrder))
	for _, name := range DrawOrder {
		vals, err := rng.Generator(name).Draw(specs[name], cfg.Customers)
		if err != nil {
			return nil, fmt.Errorf("drawing %s stream: %w", name, err)
		}
		drawn[name] = vals
	}

	logrus.Infof("Simulating %d customers, seed=%d, lambda=%.4g/h, mu=%.4g/h, interarrival=%s, service=%s",
		cfg.Customers, cfg.Seed, cfg.ArrivalRate, cfg.ServiceRate, cfg.InterarrivalSpec(), cfg.ServiceSpec())

	trace, err := Simulate(drawn[StreamInterarrival], drawn[StreamService])
	if err != nil {
		return nil, err
	}
	rec, err := Reconcile(trace, cfg.Rates())
	if err != nil {
		return nil, err
	}
	if rec.Warning != nil {
		logrus.Warnf("closed-form metrics undefined: %v", rec.Warning)
	}
	logrus.Debugf("Simulation complete: %d customers, total time %s min", trace.Len(), rec.Observed.TotalTime)

	return &Result{Key: key, Config: cfg, Trace: trace, Reconciliation: rec}, nil
}
