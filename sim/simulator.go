// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rr-sim/rr-sim/sim/trace"
)

var (
	// ErrInvariantViolation marks an event or dispatch that contradicts the
	// process lifecycle. It means event generation is broken; the run is aborted.
	ErrInvariantViolation = errors.New("scheduler invariant violation")
	// ErrInvalidQuantum is returned for a non-positive time quantum.
	ErrInvalidQuantum = errors.New("time quantum must be > 0")
	// ErrAlreadyRun is returned when Run is called on a finished simulator.
	ErrAlreadyRun = errors.New("simulation already run")
)

const idle = -1

// Simulator is the core object that holds simulation time, scheduler state, and the event loop.
// All mutable scheduler state lives here; the CPU and the IO device are each a
// capacity-1 resource represented by the PID holding it (or idle).
type Simulator struct {
	Clock   int64
	Quantum int64
	// EventQueue has all future ARRIVAL, PREEMPTION, IO_REQUEST, IO_DONE and TERMINATION events
	EventQueue *EventQueue
	// ReadyQ holds processes waiting for the CPU, IOQ those waiting for the IO device
	ReadyQ *ProcessQueue
	IOQ    *ProcessQueue
	// Processes is indexed by PID
	Processes []*Process
	Metrics   *Metrics
	Trace     *trace.SimulationTrace

	cpuHolder int // PID on the CPU, or idle
	ioHolder  int // PID on the IO device, or idle

	// transitions and IO start of the instant being processed
	instant   []trace.TransitionRecord
	instantIO *trace.IOStartRecord

	started bool
}

// NewSimulator builds a simulator for the given processes and seeds one ARRIVAL
// event per process. Processes must be in PID order with PIDs 0..n-1 and in the
// NEW state.
func NewSimulator(cfg SimConfig, processes []*Process) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		Clock:      0,
		Quantum:    cfg.Quantum,
		EventQueue: NewEventQueue(),
		ReadyQ:     &ProcessQueue{},
		IOQ:        &ProcessQueue{},
		Processes:  processes,
		Metrics:    NewMetrics(cfg.Quantum),
		Trace:      trace.NewSimulationTrace(cfg.Trace),
		cpuHolder:  idle,
		ioHolder:   idle,
	}
	for i, p := range processes {
		if p == nil {
			return nil, fmt.Errorf("process %d is nil", i)
		}
		if p.PID != i {
			return nil, fmt.Errorf("process at index %d has PID %d; PIDs must be assigned in input order from 0", i, p.PID)
		}
		if p.State != StateNew {
			return nil, fmt.Errorf("process %d must start in state NEW, got %s", p.PID, p.State)
		}
		s.Schedule(Event{Time: p.ArrivalTime, Type: EventArrival, PID: p.PID})
	}
	logrus.Debugf("Simulator ready: %d processes, quantum=%d", len(processes), cfg.Quantum)
	return s, nil
}

// Schedule pushes an event into the simulator's EventQueue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

// CPUIdle reports whether no process holds the CPU.
func (sim *Simulator) CPUIdle() bool {
	return sim.cpuHolder == idle
}

// IODeviceIdle reports whether no process holds the IO device.
func (sim *Simulator) IODeviceIdle() bool {
	return sim.ioHolder == idle
}

// RunningPID returns the PID on the CPU; false when the CPU is idle.
func (sim *Simulator) RunningPID() (int, bool) {
	return sim.cpuHolder, sim.cpuHolder != idle
}

// IOPID returns the PID on the IO device; false when the device is idle.
func (sim *Simulator) IOPID() (int, bool) {
	return sim.ioHolder, sim.ioHolder != idle
}

// Run drains the event queue. It returns the first invariant violation, if any,
// and leaves the simulator in the state it reached.
func (sim *Simulator) Run() error {
	if sim.started {
		return ErrAlreadyRun
	}
	for {
		more, err := sim.Step()
		if err != nil {
			logrus.Errorf("[tick %07d] Simulation aborted: %v", sim.Clock, err)
			return err
		}
		if !more {
			break
		}
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return nil
}

// Step processes one simulated instant: every event at the earliest pending time in
// priority order, then one dispatcher pass (CPU, then IO). It returns false once
// the event queue is empty.
func (sim *Simulator) Step() (bool, error) {
	sim.started = true
	batch := sim.EventQueue.PopAllAtEarliestTime()
	if len(batch) == 0 {
		sim.Metrics.SimEndedTime = sim.Clock
		return false, nil
	}
	now := batch[0].Time
	if now < sim.Clock {
		return false, fmt.Errorf("%w: event time %d is before clock %d", ErrInvariantViolation, now, sim.Clock)
	}
	// advance the clock
	sim.Clock = now
	logrus.Debugf("[tick %07d] Executing %d event(s)", sim.Clock, len(batch))

	sim.instant = nil
	sim.instantIO = nil
	for _, ev := range batch {
		if err := sim.applyEvent(ev); err != nil {
			return false, fmt.Errorf("tick %d, %s: %w", sim.Clock, ev, err)
		}
	}
	if err := sim.dispatch(); err != nil {
		return false, fmt.Errorf("tick %d, dispatch: %w", sim.Clock, err)
	}
	sim.recordInstant()
	sim.Metrics.SimEndedTime = sim.Clock
	return sim.EventQueue.Len() > 0, nil
}

func (sim *Simulator) recordInstant() {
	if !sim.Trace.Enabled() {
		return
	}
	sim.Trace.RecordInstant(trace.InstantRecord{
		Clock:       sim.Clock,
		Transitions: sim.instant,
		IOStart:     sim.instantIO,
		ReadyQueue:  sim.ReadyQ.Items(),
		IOQueue:     sim.IOQ.Items(),
	})
}

// CheckInvariants verifies the resource invariants: at most one RUNNING process,
// the CPU and IO holders agree with process states, and the two queues are disjoint
// and only hold processes in the matching state.
func (sim *Simulator) CheckInvariants() error {
	running := 0
	for _, p := range sim.Processes {
		if p.State == StateRunning {
			running++
			if p.PID != sim.cpuHolder {
				return fmt.Errorf("%w: P%d is RUNNING but CPU holder is %d", ErrInvariantViolation, p.PID, sim.cpuHolder)
			}
		}
	}
	if running > 1 {
		return fmt.Errorf("%w: %d processes RUNNING", ErrInvariantViolation, running)
	}
	if sim.ioHolder != idle && sim.Processes[sim.ioHolder].State != StateBlocked {
		return fmt.Errorf("%w: IO device holds P%d in state %s", ErrInvariantViolation, sim.ioHolder, sim.Processes[sim.ioHolder].State)
	}
	for _, pid := range sim.ReadyQ.Items() {
		if sim.Processes[pid].State != StateReady {
			return fmt.Errorf("%w: ready queue holds P%d in state %s", ErrInvariantViolation, pid, sim.Processes[pid].State)
		}
		if sim.IOQ.Contains(pid) {
			return fmt.Errorf("%w: P%d is in both queues", ErrInvariantViolation, pid)
		}
	}
	for _, pid := range sim.IOQ.Items() {
		if sim.Processes[pid].State != StateBlocked || pid == sim.ioHolder {
			return fmt.Errorf("%w: IO queue holds P%d in state %s", ErrInvariantViolation, pid, sim.Processes[pid].State)
		}
	}
	return nil
}

// Summary returns the end-of-run metrics for the report writer.
func (sim *Simulator) Summary() Summary {
	return sim.Metrics.Summarize(sim.Processes)
}
