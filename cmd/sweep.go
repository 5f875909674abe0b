package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rr-sim/rr-sim/sim/report"
	"github.com/rr-sim/rr-sim/sim/trace"
	"github.com/rr-sim/rr-sim/sim/workload"
)

var (
	sweepQuanta   []int64 // Quanta compared by `sweep`
	sweepParallel int     // Concurrency limit for `sweep`
)

// sweepCmd runs the same input under several quanta and compares the results
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare scheduler metrics across several quanta",
	Run: func(cmd *cobra.Command, args []string) {
		if inputPath == "" {
			logrus.Fatalf("--input is required")
		}
		res, err := workload.LoadFile(inputPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		rows, err := runSweep(cmd.Context(), res, sweepQuanta, sweepParallel)
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		if err := report.WriteSweep(os.Stdout, rows); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runSweep simulates res once per quantum, at most parallel at a time. Each simulation
// is independent and single-threaded; rows come back in the order of quanta.
func runSweep(ctx context.Context, res *workload.ParseResult, quanta []int64, parallel int) ([]report.SweepRow, error) {
	if len(quanta) == 0 {
		return nil, fmt.Errorf("no quanta to sweep")
	}
	if parallel < 1 {
		parallel = 1
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows := make([]report.SweepRow, len(quanta))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, q := range quanta {
		i, q := i, q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := simulate(res, q, trace.TraceLevelNone)
			if err != nil {
				return fmt.Errorf("quantum %d: %w", q, err)
			}
			rows[i] = report.SweepRow{Quantum: q, Summary: s.Summary()}
			logrus.Debugf("Sweep: quantum %d done, CPU utilization %d%%", q, rows[i].Summary.CPUUtilization)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
