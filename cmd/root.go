package cmd

import (
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/opsim/sim"
	"github.com/inference-sim/opsim/sim/report"
	"github.com/inference-sim/opsim/sim/trace"
	"github.com/inference-sim/opsim/sim/variate"
)

var (
	// CLI flags shared by run and batch
	logLevel     string // Log verbosity level
	outDir       string // Directory for per-run result files (empty = none)
	promTextfile string // Prometheus textfile path (empty = none)

	// CLI flags for a single run
	seed         int64   // Master seed for all variate streams
	customers    int     // Number of customers to simulate
	arrivalRate  float64 // λ, customers per hour
	serviceRate  float64 // μ, customers per hour
	serviceDist  string  // Service time distribution: exponential or erlang
	serviceK     int     // Erlang phases when serviceDist is erlang
	scenarioName string  // Name used in reports
	showSummary  bool    // Print trace distribution summary
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "opsim",
	Short: "Single-server queue simulator with M/M/1 reconciliation",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd simulates one queue configuration from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one single-server queue",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := sim.NewConfig(seed, customers, arrivalRate, serviceRate)
		switch serviceDist {
		case variate.KindExponential:
		case variate.KindErlang:
			spec := variate.Erlang(serviceK, sim.MinutesPerHour/serviceRate)
			cfg.Service = &spec
		default:
			logrus.Fatalf("Unknown --service-dist %q; valid: exponential, erlang", serviceDist)
		}

		var exporter *report.Exporter
		if promTextfile != "" {
			exporter = report.NewExporter()
		}
		runID := ulid.Make().String()
		if err := runOne(cmd.OutOrStdout(), runID, scenarioName, cfg, exporter); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		if exporter != nil {
			if err := exporter.WriteTextfile(promTextfile); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		logrus.Info("Simulation complete.")
	},
}

// runOne executes a single configuration and emits every configured report.
func runOne(w io.Writer, runID, name string, cfg sim.Config, exporter *report.Exporter) error {
	logrus.Infof("Run %s: scenario %q", runID, name)
	res, err := sim.Run(cfg)
	if err != nil {
		return err
	}
	if err := report.Print(w, name, res); err != nil {
		return err
	}
	if showSummary {
		if err := report.PrintSummary(w, trace.Summarize(res.Trace)); err != nil {
			return err
		}
	}
	if outDir != "" {
		dir, err := report.WriteRun(outDir, runID, name, res)
		if err != nil {
			return err
		}
		logrus.Infof("Run %s: results written to %s", runID, dir)
	}
	if exporter != nil {
		exporter.Record(runID, name, res)
	}
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outDir, "out", "", "Directory for per-run trace.csv, events.csv and metrics.yaml")
	rootCmd.PersistentFlags().StringVar(&promTextfile, "prom-textfile", "", "Write metrics in Prometheus text format to this file")
	rootCmd.PersistentFlags().BoolVar(&showSummary, "summary", false, "Print the trace distribution summary")

	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for all variate streams")
	runCmd.Flags().IntVar(&customers, "customers", 300, "Number of customers to simulate")
	runCmd.Flags().Float64Var(&arrivalRate, "lambda", 10, "Arrival rate (customers per hour)")
	runCmd.Flags().Float64Var(&serviceRate, "mu", 15, "Service rate (customers per hour)")
	runCmd.Flags().StringVar(&serviceDist, "service-dist", variate.KindExponential, "Service time distribution (exponential, erlang)")
	runCmd.Flags().IntVar(&serviceK, "service-k", 2, "Erlang phases for --service-dist erlang")
	runCmd.Flags().StringVar(&scenarioName, "name", "mm1", "Scenario name used in reports")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(batchCmd)
}
