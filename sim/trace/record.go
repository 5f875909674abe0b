// Package trace provides state-transition recording for scheduler simulations.
// It stores pure data types and does not import sim/.
package trace

// Cause tags why a transition happened. Every event type has one, plus
// CauseDispatch for the dispatcher's READY → RUNNING move.
type Cause string

const (
	CauseArrival     Cause = "arrival"
	CausePreemption  Cause = "preemption"
	CauseIORequest   Cause = "io_request"
	CauseIODone      Cause = "io_done"
	CauseTermination Cause = "termination"
	CauseDispatch    Cause = "dispatch"
)

// TransitionRecord captures a single process state change.
type TransitionRecord struct {
	Clock int64
	PID   int
	From  string
	To    string
	Cause Cause
}

// IOStartRecord captures the IO device picking up a blocked process.
type IOStartRecord struct {
	Clock    int64
	PID      int
	Duration int64
}

// InstantRecord captures everything that happened at one simulated instant:
// event-driven transitions in priority order, then the CPU dispatch, then the IO start.
// ReadyQueue and IOQueue are the queue contents after the dispatcher pass.
type InstantRecord struct {
	Clock       int64
	Transitions []TransitionRecord
	IOStart     *IOStartRecord // nil when the IO device was not (re)assigned
	ReadyQueue  []int
	IOQueue     []int
}
