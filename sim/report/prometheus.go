package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inference-sim/opsim/sim"
)

// Exporter collects reconciled metrics of one or more runs as Prometheus
// gauges and writes them in the text exposition format.
type Exporter struct {
	registry  *prometheus.Registry
	metric    *prometheus.GaugeVec
	customers *prometheus.GaugeVec
}

// NewExporter creates an Exporter with its own registry.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		metric: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "opsim_queue_metric",
				Help: "Queue metric by scenario, metric name and kind (observed|theoretical|delta)",
			},
			[]string{"scenario", "run_id", "metric", "kind"},
		),
		customers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "opsim_queue_customers_total",
				Help: "Customers simulated per scenario",
			},
			[]string{"scenario", "run_id"},
		),
	}
	e.registry.MustRegister(e.metric, e.customers)
	return e
}

// Record adds one run. Undefined and unstable values are omitted, so a
// missing series means the value does not exist.
func (e *Exporter) Record(runID, name string, res *sim.Result) {
	rec := res.Reconciliation
	for _, k := range sim.MetricKeys {
		c := rec.Metrics[k]
		for kind, v := range map[string]sim.Value{
			"observed":    c.Observed,
			"theoretical": c.Theoretical,
			"delta":       c.Delta,
		} {
			if x, ok := v.Float64(); ok {
				e.metric.WithLabelValues(name, runID, k, kind).Set(x)
			}
		}
	}
	e.customers.WithLabelValues(name, runID).Set(float64(rec.Observed.TotalCustomers))
}

// Gatherer exposes the registry, for tests and embedding.
func (e *Exporter) Gatherer() prometheus.Gatherer {
	return e.registry
}

// WriteTextfile writes all recorded runs to path atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("writing prometheus textfile %s: %w", path, err)
	}
	return nil
}
