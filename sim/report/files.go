package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/opsim/sim"
	"github.com/inference-sim/opsim/sim/trace"
)

// File names written per run by WriteRun.
const (
	TraceFile   = "trace.csv"
	EventsFile  = "events.csv"
	MetricsFile = "metrics.yaml"
)

// MetricsDocument is the content of metrics.yaml.
type MetricsDocument struct {
	RunID       string                    `yaml:"run_id"`
	Scenario    string                    `yaml:"scenario"`
	Seed        int64                     `yaml:"seed"`
	Customers   int                       `yaml:"customers"`
	ArrivalRate float64                   `yaml:"arrival_rate"`
	ServiceRate float64                   `yaml:"service_rate"`
	Service     string                    `yaml:"service_distribution"`
	Stable      bool                      `yaml:"stable"`
	Metrics     map[string]sim.Comparison `yaml:"metrics"`
	Observed    sim.Observed              `yaml:"observed"`
	Summary     *trace.Summary            `yaml:"summary"`
}

// NewMetricsDocument collects everything metrics.yaml records about a run.
func NewMetricsDocument(runID, name string, res *sim.Result) MetricsDocument {
	return MetricsDocument{
		RunID:       runID,
		Scenario:    name,
		Seed:        res.Config.Seed,
		Customers:   res.Config.Customers,
		ArrivalRate: res.Config.ArrivalRate,
		ServiceRate: res.Config.ServiceRate,
		Service:     res.Config.ServiceSpec().String(),
		Stable:      res.Reconciliation.Stable(),
		Metrics:     res.Reconciliation.Metrics,
		Observed:    res.Reconciliation.Observed,
		Summary:     trace.Summarize(res.Trace),
	}
}

// WriteRun writes trace.csv, events.csv and metrics.yaml for one run into
// dir/<runID>-<name>, creating the directory if needed. It returns the run
// directory.
func WriteRun(dir, runID, name string, res *sim.Result) (string, error) {
	if err := checkPathElem("run id", runID); err != nil {
		return "", err
	}
	if err := checkPathElem("scenario name", name); err != nil {
		return "", err
	}
	runDir := filepath.Join(dir, runID+"-"+name)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", runDir, err)
	}

	tracePath := filepath.Join(runDir, TraceFile)
	if err := writeFile(tracePath, func(w io.Writer) error { return trace.WriteCSV(w, res.Trace) }); err != nil {
		return "", err
	}
	eventsPath := filepath.Join(runDir, EventsFile)
	if err := writeFile(eventsPath, func(w io.Writer) error { return trace.WriteEventsCSV(w, res.Trace) }); err != nil {
		return "", err
	}

	data, err := yaml.Marshal(NewMetricsDocument(runID, name, res))
	if err != nil {
		return "", fmt.Errorf("encoding metrics: %w", err)
	}
	metricsPath := filepath.Join(runDir, MetricsFile)
	if err := os.WriteFile(metricsPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", metricsPath, err)
	}

	logrus.Debugf("Wrote %s, %s and %s", tracePath, eventsPath, metricsPath)
	return runDir, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// checkPathElem rejects values that would not stay a single directory name.
func checkPathElem(what, v string) error {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) {
		return fmt.Errorf("%s %q is not usable as a directory name", what, v)
	}
	return nil
}
