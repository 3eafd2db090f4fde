// Package report formats queue run results for people and for other tools.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inference-sim/opsim/sim"
	"github.com/inference-sim/opsim/sim/trace"
)

// metricLabels gives the unit shown next to each compared metric.
var metricLabels = map[string]string{
	sim.MetricRho:    "rho (utilization)",
	sim.MetricLambda: "lambda (customers/h)",
	sim.MetricLs:     "Ls (customers)",
	sim.MetricLq:     "Lq (customers)",
	sim.MetricWs:     "Ws (min)",
	sim.MetricWq:     "Wq (min)",
}

// Print writes the observed-vs-theoretical table for one run.
func Print(w io.Writer, name string, res *sim.Result) error {
	rec := res.Reconciliation
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "=== Queue Metrics: %s ===\n", name)
	fmt.Fprintf(tw, "Customers\t%d\n", rec.Observed.TotalCustomers)
	fmt.Fprintf(tw, "Seed\t%d\n", res.Config.Seed)
	fmt.Fprintf(tw, "lambda / mu\t%g / %g per hour\n", res.Config.ArrivalRate, res.Config.ServiceRate)
	fmt.Fprintf(tw, "Simulated time\t%s min (%s h)\n", rec.Observed.TotalTime, rec.Observed.TotalTimeUnits)
	fmt.Fprintf(tw, "Avg service time\t%s min\n", rec.Observed.AvgServiceTime)
	fmt.Fprintf(tw, "Avg interarrival time\t%s min\n", rec.Observed.AvgInterarrivalTime)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Metric\tObserved\tTheoretical\tDelta")
	for _, k := range sim.MetricKeys {
		c := rec.Metrics[k]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", metricLabels[k], c.Observed, c.Theoretical, c.Delta)
	}
	if rec.Warning != nil {
		fmt.Fprintf(tw, "\nWARNING: %v\n", rec.Warning)
	}
	return tw.Flush()
}

// PrintSummary writes the trace distribution summary.
func PrintSummary(w io.Writer, s *trace.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Waited\t%d of %d (%.1f%%)\n", s.WaitedCount, s.Customers, 100*s.WaitedFraction)
	fmt.Fprintf(tw, "Max in system\t%d\n", s.MaxInSystem)
	fmt.Fprintf(tw, "Server idle\t%.2f min\n", s.IdleTime)
	fmt.Fprintln(tw, "\tMean\tP50\tP90\tP99\tMax")
	for _, row := range []struct {
		name string
		d    trace.Distribution
	}{
		{"Queue wait (min)", s.QueueWait},
		{"System time (min)", s.SystemTime},
		{"Service time (min)", s.ServiceTime},
	} {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n", row.name, row.d.Mean, row.d.P50, row.d.P90, row.d.P99, row.d.Max)
	}
	return tw.Flush()
}
