package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rr-sim/rr-sim/sim/trace"
)

// dispatch runs once per instant after all of its events were applied:
// CPU assignment first, then IO assignment.
func (sim *Simulator) dispatch() error {
	if err := sim.dispatchCPU(); err != nil {
		return err
	}
	return sim.dispatchIO()
}

// dispatchCPU hands an idle CPU to the head of the ready queue for at most one quantum.
// A burst that fits the quantum exactly completes without a preemption.
func (sim *Simulator) dispatchCPU() error {
	if !sim.CPUIdle() {
		return nil
	}
	pid, ok := sim.ReadyQ.Dequeue()
	if !ok {
		return nil
	}
	p := sim.Processes[pid]
	if p.State != StateReady {
		return fmt.Errorf("%w: dispatching P%d in state %s", ErrInvariantViolation, pid, p.State)
	}
	if p.RemainingCPUBurstTime == 0 && !p.hasNextCPUBurst() {
		return fmt.Errorf("%w: P%d has no CPU burst left to run", ErrInvariantViolation, pid)
	}

	p.TotalReadyWait += sim.Clock - p.LastReadyEnqueueTime
	sim.cpuHolder = pid
	sim.setState(p, StateRunning, trace.CauseDispatch)

	if p.RemainingCPUBurstTime == 0 {
		p.RemainingCPUBurstTime = p.CPUBursts[p.CPUBurstIdx]
	}
	burst := p.RemainingCPUBurstTime

	if burst > sim.Quantum {
		sim.Metrics.CPUBusyTime += sim.Quantum
		p.RemainingCPUBurstTime = burst - sim.Quantum
		sim.Schedule(Event{Time: sim.Clock + sim.Quantum, Type: EventPreemption, PID: pid})
		return nil
	}

	sim.Metrics.CPUBusyTime += burst
	p.RemainingCPUBurstTime = 0
	p.CPUBurstIdx++
	next := EventTermination
	if p.hasNextCPUBurst() {
		next = EventIORequest
	}
	sim.Schedule(Event{Time: sim.Clock + burst, Type: next, PID: pid})
	return nil
}

// dispatchIO hands an idle IO device to the head of the IO queue. IO bursts run
// to completion.
func (sim *Simulator) dispatchIO() error {
	if !sim.IODeviceIdle() {
		return nil
	}
	pid, ok := sim.IOQ.Dequeue()
	if !ok {
		return nil
	}
	p := sim.Processes[pid]
	if p.State != StateBlocked {
		return fmt.Errorf("%w: starting IO for P%d in state %s", ErrInvariantViolation, pid, p.State)
	}
	if p.IOBurstIdx >= len(p.IOBursts) {
		return fmt.Errorf("%w: P%d has no IO burst left", ErrInvariantViolation, pid)
	}

	p.TotalIOWait += sim.Clock - p.LastIOEnqueueTime
	sim.ioHolder = pid

	duration := p.IOBursts[p.IOBurstIdx]
	p.IOBurstIdx++
	logrus.Debugf("[tick %07d] P%d starts I/O for %d ticks", sim.Clock, pid, duration)
	if sim.Trace.Enabled() {
		sim.instantIO = &trace.IOStartRecord{Clock: sim.Clock, PID: pid, Duration: duration}
	}
	sim.Schedule(Event{Time: sim.Clock + duration, Type: EventIODone, PID: pid})
	return nil
}
