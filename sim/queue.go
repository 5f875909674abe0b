// Implements ProcessQueue, the FIFO used for both the ready queue and the IO queue.
// Entries are process IDs; the Process records themselves live in Simulator.Processes.

package sim

import (
	"fmt"
	"strings"
)

// ProcessQueue represents a FIFO queue of processes waiting for a resource
// (the CPU for the ready queue, the IO device for the IO queue).
type ProcessQueue struct {
	queue []int // FIFO of process IDs
}

// Enqueue adds a process to the back of the queue.
func (pq *ProcessQueue) Enqueue(pid int) {
	pq.queue = append(pq.queue, pid)
}

// String renders the queue as "P0 P3 P1", or "empty".
func (pq *ProcessQueue) String() string {
	if len(pq.queue) == 0 {
		return "empty"
	}
	var sb strings.Builder
	for i, pid := range pq.queue {
		sb.WriteString(fmt.Sprintf("P%d", pid))
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

// Len returns the number of processes in the queue.
func (pq *ProcessQueue) Len() int {
	return len(pq.queue)
}

// Peek returns the process at the front of the queue without removing it.
// The boolean is false if the queue is empty.
func (pq *ProcessQueue) Peek() (int, bool) {
	if len(pq.queue) == 0 {
		return 0, false
	}
	return pq.queue[0], true
}

// Contains reports whether pid is currently queued.
func (pq *ProcessQueue) Contains(pid int) bool {
	for _, p := range pq.queue {
		if p == pid {
			return true
		}
	}
	return false
}

// Items returns a copy of the queue contents, front first.
func (pq *ProcessQueue) Items() []int {
	return append([]int(nil), pq.queue...)
}

// Dequeue removes the process at the front of the queue.
func (pq *ProcessQueue) Dequeue() (int, bool) {
	if len(pq.queue) == 0 {
		return 0, false
	}
	pid := pq.queue[0]
	pq.queue = pq.queue[1:]
	return pid, true
}
