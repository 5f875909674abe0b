package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/rr-sim/rr-sim/sim"
	"github.com/rr-sim/rr-sim/sim/report"
	"github.com/rr-sim/rr-sim/sim/trace"
	"github.com/rr-sim/rr-sim/sim/workload"
)

// simulate builds and runs one simulator over the parsed input.
func simulate(res *workload.ParseResult, quantum int64, level trace.TraceLevel) (*sim.Simulator, error) {
	procs, err := res.Processes()
	if err != nil {
		return nil, err
	}
	s, err := sim.NewSimulator(sim.NewSimConfig(quantum, level), procs)
	if err != nil {
		return nil, err
	}
	if err := s.Run(); err != nil {
		return nil, err
	}
	return s, nil
}

// executeRun performs a full `run`: parse, simulate, then write the log and summary files.
func executeRun(cfg RunConfig) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	res, err := workload.LoadFile(cfg.Input)
	if err != nil {
		return err
	}

	level := trace.TraceLevelTransitions
	if cfg.LogFile == "" {
		level = trace.TraceLevelNone
	}
	s, err := simulate(res, cfg.Quantum, level)
	if err != nil {
		return fmt.Errorf("simulating %s: %w", cfg.Input, err)
	}

	if cfg.LogFile != "" {
		if err := writeFile(cfg.LogFile, func(f *os.File) error {
			return report.WriteLog(f, res.InvalidMessages(), s.Trace, cfg.logOptions())
		}); err != nil {
			return err
		}
	}
	summary := s.Summary()
	if err := writeFile(cfg.Output, func(f *os.File) error {
		return report.WriteSummary(f, summary, format)
	}); err != nil {
		return err
	}

	logrus.Infof("Quantum %d: %d/%d processes finished at t=%d, CPU utilization %d%%",
		cfg.Quantum, summary.Completed, summary.Loaded, summary.SimEndedTime, summary.CPUUtilization)
	if s.Trace.Enabled() {
		ts := trace.Summarize(s.Trace)
		logrus.Infof("Trace: %d instants, %d transitions, %d context switches, %d IO starts, max ready queue %d",
			ts.Instants, ts.TotalTransitions, ts.ContextSwitches(), ts.IOStarts, ts.MaxReadyQueueDepth)
	}
	return nil
}

// writeFile creates path, hands it to fn and closes it, keeping the first error.
// An empty path writes to stdout.
func writeFile(path string, fn func(f *os.File) error) (err error) {
	if path == "" || path == "-" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return fn(f)
}
