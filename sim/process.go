// Defines the Process struct that models one simulated process in the scheduler.
// Tracks the static burst description plus the runtime cursors and wait accumulators
// that the state machine and dispatcher mutate.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process (five-state model).
type ProcessState int

const (
	StateNew ProcessState = iota
	StateReady
	StateRunning
	StateBlocked
	StateExit
)

var processStateNames = [...]string{
	StateNew:     "NEW",
	StateReady:   "READY",
	StateRunning: "RUNNING",
	StateBlocked: "BLOCKED",
	StateExit:    "EXIT",
}

func (s ProcessState) String() string {
	if s < 0 || int(s) >= len(processStateNames) {
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
	return processStateNames[s]
}

// Process models a single process's lifecycle in the simulation.
// A process is created at load time, mutated throughout the run and never destroyed,
// so it can be read back for the final report.
type Process struct {
	PID         int   // Assigned in input order starting at 0
	ArrivalTime int64 // Tick at which the ARRIVAL event fires (>= 1)
	CPUBursts   []int64
	IOBursts    []int64 // Always len(CPUBursts)-1: a process ends on a CPU burst

	State ProcessState

	CPUBurstIdx           int   // Next CPU burst to start
	IOBurstIdx            int   // Next IO burst to start
	RemainingCPUBurstTime int64 // Nonzero only while a burst is split across a preemption

	FinishTime int64 // Valid only when finished is true
	finished   bool

	TotalReadyWait int64
	TotalIOWait    int64

	LastReadyEnqueueTime int64
	LastIOEnqueueTime    int64
}

// NewProcess builds a process in the NEW state after checking the structural
// invariants the engine relies on.
func NewProcess(pid int, arrival int64, cpuBursts, ioBursts []int64) (*Process, error) {
	if arrival < 1 {
		return nil, fmt.Errorf("process %d: arrival time must be >= 1, got %d", pid, arrival)
	}
	if len(cpuBursts) == 0 {
		return nil, fmt.Errorf("process %d: at least one CPU burst required", pid)
	}
	if len(ioBursts) != len(cpuBursts)-1 {
		return nil, fmt.Errorf("process %d: %d CPU bursts need %d IO bursts, got %d",
			pid, len(cpuBursts), len(cpuBursts)-1, len(ioBursts))
	}
	for i, b := range cpuBursts {
		if b <= 0 {
			return nil, fmt.Errorf("process %d: CPU burst %d must be > 0, got %d", pid, i, b)
		}
	}
	for i, b := range ioBursts {
		if b <= 0 {
			return nil, fmt.Errorf("process %d: IO burst %d must be > 0, got %d", pid, i, b)
		}
	}
	return &Process{
		PID:         pid,
		ArrivalTime: arrival,
		CPUBursts:   append([]int64(nil), cpuBursts...),
		IOBursts:    append([]int64(nil), ioBursts...),
		State:       StateNew,
	}, nil
}

// Finished reports whether the process reached EXIT and has a finish time.
func (p *Process) Finished() bool {
	return p.finished
}

func (p *Process) markFinished(now int64) {
	p.FinishTime = now
	p.finished = true
}

// TurnaroundTime returns finishTime - arrivalTime, or 0 if the process never finished.
func (p *Process) TurnaroundTime() int64 {
	if !p.finished {
		return 0
	}
	return p.FinishTime - p.ArrivalTime
}

// ServiceTime is the total CPU and IO demand of the process.
func (p *Process) ServiceTime() int64 {
	var total int64
	for _, b := range p.CPUBursts {
		total += b
	}
	for _, b := range p.IOBursts {
		total += b
	}
	return total
}

// hasNextCPUBurst reports whether another CPU burst follows the current cursor.
func (p *Process) hasNextCPUBurst() bool {
	return p.CPUBurstIdx < len(p.CPUBursts)
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, State: %s, ArrivalTime: %d, CPUBurstIdx: %d/%d)",
		p.PID, p.State, p.ArrivalTime, p.CPUBurstIdx, len(p.CPUBursts))
}
