package sim

import "fmt"

// EventType identifies what happens to a process when an event fires.
type EventType int

const (
	EventArrival EventType = iota
	EventPreemption
	EventIORequest
	EventIODone
	EventTermination
)

var eventTypeNames = [...]string{
	EventArrival:     "ARRIVAL",
	EventPreemption:  "PREEMPTION",
	EventIORequest:   "IO_REQUEST",
	EventIODone:      "IO_DONE",
	EventTermination: "TERMINATION",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return fmt.Sprintf("EventType(%d)", int(t))
	}
	return eventTypeNames[t]
}

// EventTypePriority defines ordering for simultaneous events.
// Lower values are processed first: arrivals and IO completions fill the ready
// queue before the CPU and IO device are vacated.
var EventTypePriority = map[EventType]int{
	EventArrival:     0,
	EventIODone:      1,
	EventPreemption:  2,
	EventIORequest:   3,
	EventTermination: 4,
}

// Event is a scheduled state change for one process.
type Event struct {
	Time int64     // Simulation time at which the event fires (in ticks)
	Type EventType // What happens
	PID  int       // Subject process

	seq uint64 // Insertion order, set by EventQueue.Schedule
}

// Timestamp returns the scheduled time of the event.
func (e Event) Timestamp() int64 {
	return e.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%s(P%d@%d)", e.Type, e.PID, e.Time)
}
