package cmd

import (
	"fmt"
	"io"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/opsim/sim/report"
	"github.com/inference-sim/opsim/sim/scenario"
)

var scenariosPath string // YAML scenario file for batch

// batchCmd runs every scenario in a YAML file
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run every scenario in a scenario file",
	Run: func(cmd *cobra.Command, args []string) {
		if scenariosPath == "" {
			logrus.Fatalf("--scenarios is required")
		}
		f, err := scenario.Load(scenariosPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := f.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario file %s: %v", scenariosPath, err)
		}

		var exporter *report.Exporter
		if promTextfile != "" {
			exporter = report.NewExporter()
		}
		failed := runBatch(cmd.OutOrStdout(), f, exporter)
		if exporter != nil {
			if err := exporter.WriteTextfile(promTextfile); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if failed > 0 {
			logrus.Fatalf("%d of %d scenarios failed", failed, len(f.Scenarios))
		}
		logrus.Infof("All %d scenarios complete.", len(f.Scenarios))
	},
}

// runBatch runs each scenario with its own configuration. A failing scenario
// is logged and counted; it never stops the scenarios after it.
func runBatch(w io.Writer, f *scenario.File, exporter *report.Exporter) (failed int) {
	for _, s := range f.Scenarios {
		runID := ulid.Make().String()
		err := scenario.ValidateScenario(s)
		if err == nil {
			err = runOne(w, runID, s.Name, s.Config(), exporter)
		}
		if err != nil {
			logrus.Errorf("Run %s: scenario %q failed: %v", runID, s.Name, err)
			fmt.Fprintf(w, "=== Scenario %s FAILED: %v ===\n", s.Name, err)
			failed++
			continue
		}
		fmt.Fprintln(w)
	}
	return failed
}

func init() {
	batchCmd.Flags().StringVar(&scenariosPath, "scenarios", "", "Path to a YAML scenario file")
}
