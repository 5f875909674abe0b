package sim

import (
	"testing"

	"github.com/rr-sim/rr-sim/sim/trace"
)

// procSpec is a compact process description for tests: arrival time, then
// alternating CPU and IO bursts ending on CPU.
type procSpec struct {
	arrival int64
	bursts  []int64
}

// newTestProcesses builds processes with PIDs in slice order.
func newTestProcesses(t *testing.T, specs ...procSpec) []*Process {
	t.Helper()
	procs := make([]*Process, 0, len(specs))
	for i, s := range specs {
		var cpu, io []int64
		for j, b := range s.bursts {
			if j%2 == 0 {
				cpu = append(cpu, b)
			} else {
				io = append(io, b)
			}
		}
		p, err := NewProcess(i, s.arrival, cpu, io)
		if err != nil {
			t.Fatalf("NewProcess(%d): %v", i, err)
		}
		procs = append(procs, p)
	}
	return procs
}

// runToCompletion builds a tracing simulator, steps it to the end while checking
// the resource invariants after every instant, and returns it.
func runToCompletion(t *testing.T, quantum int64, specs ...procSpec) *Simulator {
	t.Helper()
	s, err := NewSimulator(NewSimConfig(quantum, trace.TraceLevelTransitions), newTestProcesses(t, specs...))
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	for {
		more, err := s.Step()
		if err != nil {
			t.Fatalf("Step at tick %d: %v", s.Clock, err)
		}
		if err := s.CheckInvariants(); err != nil {
			t.Fatalf("after tick %d: %v", s.Clock, err)
		}
		if !more {
			break
		}
	}
	return s
}

// causesFor returns the transition causes recorded for pid, in order.
func causesFor(s *Simulator, pid int) []trace.Cause {
	var out []trace.Cause
	for _, tr := range s.Trace.Transitions() {
		if tr.PID == pid {
			out = append(out, tr.Cause)
		}
	}
	return out
}
