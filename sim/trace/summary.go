// Package trace summarizes and exports customer traces produced by sim.Simulate.
package trace

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/opsim/sim"
)

// Distribution summarizes one per-customer quantity.
type Distribution struct {
	Mean float64 `yaml:"mean"`
	P50  float64 `yaml:"p50"`
	P90  float64 `yaml:"p90"`
	P99  float64 `yaml:"p99"`
	Max  float64 `yaml:"max"`
}

// Summary aggregates a trace. Times are in trace units (minutes).
type Summary struct {
	Customers      int          `yaml:"customers"`
	WaitedCount    int          `yaml:"waited_count"` // customers with queue_wait > 0
	WaitedFraction float64      `yaml:"waited_fraction"`
	MaxInSystem    int          `yaml:"max_in_system"` // largest population seen by an arrival, itself included
	QueueWait      Distribution `yaml:"queue_wait"`
	SystemTime     Distribution `yaml:"system_time"`
	ServiceTime    Distribution `yaml:"service_time"`
	IdleTime       float64      `yaml:"idle_time"` // total time the server waited for arrivals
}

// Summarize computes aggregate statistics from a trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(tr sim.Trace) *Summary {
	summary := &Summary{Customers: len(tr)}
	if len(tr) == 0 {
		return summary
	}

	prevEnd := 0.0
	for _, c := range tr {
		if c.QueueWait > 0 {
			summary.WaitedCount++
		}
		if c.ServiceStartTime > prevEnd {
			summary.IdleTime += c.ServiceStartTime - prevEnd
		}
		prevEnd = c.ServiceEndTime
	}
	summary.WaitedFraction = float64(summary.WaitedCount) / float64(len(tr))

	for _, n := range sim.InSystemAtArrival(tr) {
		if n+1 > summary.MaxInSystem {
			summary.MaxInSystem = n + 1
		}
	}

	summary.QueueWait = distribution(tr.Column(func(c sim.CustomerRecord) float64 { return c.QueueWait }))
	summary.SystemTime = distribution(tr.Column(func(c sim.CustomerRecord) float64 { return c.SystemTime }))
	summary.ServiceTime = distribution(tr.Column(func(c sim.CustomerRecord) float64 { return c.ServiceTime }))
	return summary
}

// distribution sorts vals in place and summarizes them.
func distribution(vals []float64) Distribution {
	sort.Float64s(vals)
	return Distribution{
		Mean: stat.Mean(vals, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, vals, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, vals, nil),
		P99:  stat.Quantile(0.99, stat.Empirical, vals, nil),
		Max:  floats.Max(vals),
	}
}
