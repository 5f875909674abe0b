package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// CLI flags for `run`
	quantum          int64  // Round-robin time quantum (in ticks)
	inputPath        string // Process description file
	outputPath       string // Results file
	logFilePath      string // Per-tick event log file
	logLevel         string // Log verbosity level
	outputFormat     string // Results format: text, table or json
	snapshotInterval int64  // Queue-state snapshot period in the event log
	idleMarkers      bool   // Print "no event" lines for idle ticks
	configPath       string // Optional YAML run config
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "rr-sim",
	Short: "Discrete-event simulator for a single-CPU round-robin scheduler",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes one simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the round-robin simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := defaultRunConfig()
		if configPath != "" {
			var err error
			if cfg, err = loadRunConfig(configPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		// CLI flags win over the file only when set explicitly
		if err := cfg.applyFlags(cmd.Flags()); err != nil {
			logrus.Fatalf("Reading flags: %v", err)
		}
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", cfg.LogLevel)
		}
		logrus.SetLevel(level)
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid run config: %v", err)
		}

		logrus.Infof("Starting simulation of %s with quantum=%d", cfg.Input, cfg.Quantum)
		if err := executeRun(cfg); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
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

	bindRunFlags(runCmd.Flags())

	sweepCmd.Flags().StringVar(&inputPath, "input", "", "Process description file")
	sweepCmd.Flags().Int64SliceVar(&sweepQuanta, "quanta", []int64{1, 2, 4, 8}, "Comma-separated quanta to compare")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", 4, "Maximum simulations running at once")

	validateCmd.Flags().StringVar(&inputPath, "input", "", "Process description file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(validateCmd)
}

// bindRunFlags declares the `run` flags on fs.
func bindRunFlags(fs *pflag.FlagSet) {
	defaults := defaultRunConfig()
	fs.Int64Var(&quantum, "quantum", 0, "Round-robin time quantum in ticks (required unless set in --config)")
	fs.StringVar(&inputPath, "input", "", "Process description file")
	fs.StringVar(&outputPath, "output", defaults.Output, "Results file (\"-\" for stdout)")
	fs.StringVar(&logFilePath, "log-file", defaults.LogFile, "Per-tick event log file (empty disables the log)")
	fs.StringVar(&outputFormat, "format", defaults.Format, "Results format (text, table, json)")
	fs.Int64Var(&snapshotInterval, "snapshot-interval", defaults.SnapshotInterval, "Print queue states every N idle ticks (0 disables)")
	fs.BoolVar(&idleMarkers, "idle-markers", defaults.IdleMarkers, "Print a line for every tick without events")
	fs.StringVar(&configPath, "config", "", "YAML run config; explicit flags override its values")
}
