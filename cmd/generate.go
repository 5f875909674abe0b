package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rr-sim/rr-sim/sim/workload"
)

var (
	genConfigPath string  // Optional YAML generate spec
	genCount      int     // Number of processes
	genSeed       int64   // Seed for the arrival and burst streams
	genRate       float64 // Arrivals per tick
	genOutput     string  // Destination process file
)

// generateCmd writes a synthetic process file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic process description file",
	Run: func(cmd *cobra.Command, args []string) {
		spec := workload.DefaultGenerateSpec()
		if genConfigPath != "" {
			var err error
			if spec, err = workload.LoadGenerateSpec(genConfigPath); err != nil {
				logrus.Fatalf("%v", err)
			}
		}
		if cmd.Flags().Changed("count") {
			spec.Count = genCount
		}
		if cmd.Flags().Changed("seed") {
			spec.Seed = genSeed
		}
		if cmd.Flags().Changed("rate") {
			spec.Arrival.Rate = genRate
		}

		specs, err := workload.Generate(spec)
		if err != nil {
			logrus.Fatalf("Generating processes: %v", err)
		}
		if err := writeFile(genOutput, func(f *os.File) error {
			return workload.WriteSpecs(f, specs)
		}); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Wrote %d processes (seed %d)", len(specs), spec.Seed)
	},
}

func init() {
	defaults := workload.DefaultGenerateSpec()
	generateCmd.Flags().StringVar(&genConfigPath, "config", "", "YAML generate spec; explicit flags override its values")
	generateCmd.Flags().IntVar(&genCount, "count", defaults.Count, "Number of processes")
	generateCmd.Flags().Int64Var(&genSeed, "seed", defaults.Seed, "Seed for random generation")
	generateCmd.Flags().Float64Var(&genRate, "rate", defaults.Arrival.Rate, "Arrivals per tick")
	generateCmd.Flags().StringVar(&genOutput, "output", "-", "Destination file (\"-\" for stdout)")

	rootCmd.AddCommand(generateCmd)
}
