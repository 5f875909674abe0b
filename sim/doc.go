// Package sim provides the core discrete-event simulation engine for rr-sim, a
// single-CPU, single-IO-device preemptive round-robin scheduler.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - process.go: Process lifecycle (NEW → READY → RUNNING → BLOCKED/EXIT) and burst cursors
//   - event.go, event_queue.go: Event types and the time → type priority → FIFO ordering
//   - simulator.go: The event loop; one Step per simulated instant
//   - transition.go: The transition table applied for each event
//   - dispatcher.go: Round-robin CPU assignment with quantum slicing, FIFO IO assignment
//
// # Architecture
//
// The sim package owns all scheduler state; collaborators live in sub-packages:
//   - sim/trace/: Transition records (pure data, no sim import)
//   - sim/workload/: Input parsing and validation, plus a seeded synthetic generator
//   - sim/report/: Log-line rendering and summary writers
//
// A run is single-threaded and deterministic: identical processes and quantum always
// produce an identical trace and summary.
package sim
