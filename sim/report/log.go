// Package report renders simulation results for humans: the per-tick event log and
// the end-of-run summary in text, table or JSON form.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rr-sim/rr-sim/sim/trace"
)

// DefaultSnapshotInterval is how often (in ticks) queue states are printed during idle gaps.
const DefaultSnapshotInterval = 5

// LogOptions controls the idle-gap affordances of the event log.
type LogOptions struct {
	IdleMarkers      bool  // print "<t>: no event" for every tick between instants
	SnapshotInterval int64 // print queue states every N idle ticks; 0 disables
}

// DefaultLogOptions matches the classic log layout.
func DefaultLogOptions() LogOptions {
	return LogOptions{IdleMarkers: true, SnapshotInterval: DefaultSnapshotInterval}
}

// causePhrases maps event-driven causes to the verb printed before the state change.
var causePhrases = map[trace.Cause]string{
	trace.CauseArrival:     "arrives, ",
	trace.CausePreemption:  "preempted, ",
	trace.CauseIORequest:   "requests I/O, ",
	trace.CauseIODone:      "finishes I/O, ",
	trace.CauseTermination: "terminates, ",
	trace.CauseDispatch:    "",
}

// WriteLog renders invalid input messages followed by the transition trace.
// The trace must have been recorded at TraceLevelTransitions.
func WriteLog(w io.Writer, invalid []string, st *trace.SimulationTrace, opts LogOptions) error {
	bw := bufio.NewWriter(w)
	lw := &logWriter{w: bw, opts: opts}

	for _, msg := range invalid {
		lw.printf("%s\n", msg)
	}

	var (
		clock      int64
		readyQueue []int
		ioQueue    []int
	)
	if st != nil {
		for _, inst := range st.Instants {
			if opts.IdleMarkers {
				// the tick of the previous instant counts as idle too
				for clock < inst.Clock {
					lw.printf("%d: no event\n", clock)
					clock++
					if opts.SnapshotInterval > 0 && clock%opts.SnapshotInterval == 0 {
						lw.queueStates(clock, readyQueue, ioQueue)
					}
				}
			}
			clock = inst.Clock
			for _, tr := range inst.Transitions {
				lw.transition(tr)
			}
			if inst.IOStart != nil {
				lw.printf("%d: P%d starts I/O\n", inst.IOStart.Clock, inst.IOStart.PID)
			}
			readyQueue, ioQueue = inst.ReadyQueue, inst.IOQueue
		}
	}
	lw.printf("%d: simulation finished.\n", clock)

	if lw.err != nil {
		return fmt.Errorf("writing log: %w", lw.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing log: %w", err)
	}
	return nil
}

// logWriter keeps the first write error so rendering code stays linear.
type logWriter struct {
	w    io.Writer
	opts LogOptions
	err  error
}

func (lw *logWriter) printf(format string, args ...any) {
	if lw.err != nil {
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, format, args...)
}

func (lw *logWriter) transition(tr trace.TransitionRecord) {
	lw.printf("%d: P%d %schanges state from %s to %s\n", tr.Clock, tr.PID, causePhrases[tr.Cause], tr.From, tr.To)
}

func (lw *logWriter) queueStates(clock int64, readyQueue, ioQueue []int) {
	lw.printf("%d: ----- Queue States (before events) -----\n", clock)
	lw.printf("%-15s%s\n", "Ready Queue:", formatQueue(readyQueue))
	lw.printf("%-15s%s\n", "I/O Queue:", formatQueue(ioQueue))
	lw.printf("----------------------------------\n")
}

func formatQueue(pids []int) string {
	if len(pids) == 0 {
		return "empty"
	}
	out := ""
	for i, pid := range pids {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("P%d", pid)
	}
	return out
}
