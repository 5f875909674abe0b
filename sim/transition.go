package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rr-sim/rr-sim/sim/trace"
)

// causeOf maps an event type to the trace cause it produces.
func causeOf(t EventType) (trace.Cause, error) {
	switch t {
	case EventArrival:
		return trace.CauseArrival, nil
	case EventPreemption:
		return trace.CausePreemption, nil
	case EventIORequest:
		return trace.CauseIORequest, nil
	case EventIODone:
		return trace.CauseIODone, nil
	case EventTermination:
		return trace.CauseTermination, nil
	}
	return "", fmt.Errorf("%w: unknown event type %d", ErrInvariantViolation, int(t))
}

// applyEvent executes one row of the transition table for the event's process.
func (sim *Simulator) applyEvent(ev Event) error {
	p, err := sim.process(ev.PID)
	if err != nil {
		return err
	}
	cause, err := causeOf(ev.Type)
	if err != nil {
		return err
	}

	switch ev.Type {
	case EventArrival:
		if p.State != StateNew {
			return sim.violation(p, ev)
		}
		sim.enqueueReady(p, cause)

	case EventPreemption:
		if err := sim.releaseCPU(p, ev); err != nil {
			return err
		}
		sim.enqueueReady(p, cause)

	case EventIORequest:
		if err := sim.releaseCPU(p, ev); err != nil {
			return err
		}
		sim.setState(p, StateBlocked, cause)
		p.LastIOEnqueueTime = sim.Clock
		sim.IOQ.Enqueue(p.PID)

	case EventIODone:
		if p.State != StateBlocked || sim.ioHolder != p.PID {
			return sim.violation(p, ev)
		}
		sim.ioHolder = idle
		sim.enqueueReady(p, cause)

	case EventTermination:
		if err := sim.releaseCPU(p, ev); err != nil {
			return err
		}
		sim.setState(p, StateExit, cause)
		p.markFinished(sim.Clock)
	}
	return nil
}

// releaseCPU frees the CPU held by p. The event must target the running process.
func (sim *Simulator) releaseCPU(p *Process, ev Event) error {
	if p.State != StateRunning || sim.cpuHolder != p.PID {
		return sim.violation(p, ev)
	}
	sim.cpuHolder = idle
	return nil
}

// enqueueReady moves p to READY and appends it to the ready queue.
func (sim *Simulator) enqueueReady(p *Process, cause trace.Cause) {
	sim.setState(p, StateReady, cause)
	p.LastReadyEnqueueTime = sim.Clock
	sim.ReadyQ.Enqueue(p.PID)
}

// setState changes p's state and records the transition.
func (sim *Simulator) setState(p *Process, to ProcessState, cause trace.Cause) {
	from := p.State
	p.State = to
	logrus.Debugf("[tick %07d] P%d %s: %s -> %s", sim.Clock, p.PID, cause, from, to)
	if sim.Trace.Enabled() {
		sim.instant = append(sim.instant, trace.TransitionRecord{
			Clock: sim.Clock,
			PID:   p.PID,
			From:  from.String(),
			To:    to.String(),
			Cause: cause,
		})
	}
}

func (sim *Simulator) process(pid int) (*Process, error) {
	if pid < 0 || pid >= len(sim.Processes) {
		return nil, fmt.Errorf("%w: unknown PID %d", ErrInvariantViolation, pid)
	}
	return sim.Processes[pid], nil
}

func (sim *Simulator) violation(p *Process, ev Event) error {
	return fmt.Errorf("%w: %s cannot fire for P%d in state %s", ErrInvariantViolation, ev.Type, p.PID, p.State)
}
