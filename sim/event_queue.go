package sim

import "container/heap"

// eventHeap implements heap.Interface with deterministic ordering.
// Order by: timestamp → type priority → insertion sequence.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	ei, ej := h[i], h[j]

	// Primary: timestamp (lower first)
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}

	// Secondary: type priority (lower priority value = processed first)
	priI := EventTypePriority[ei.Type]
	priJ := EventTypePriority[ej.Type]
	if priI != priJ {
		return priI < priJ
	}

	// Tertiary: insertion sequence (FIFO tie-breaker)
	return ei.seq < ej.seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue holds future simulation events.
// The sequence counter is per queue, so two simulators never share ordering state.
type EventQueue struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make(eventHeap, 0)}
	heap.Init(&q.events)
	return q
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.events.Len()
}

// Schedule adds an event to the queue in O(log n).
func (q *EventQueue) Schedule(ev Event) {
	ev.seq = q.nextSeq
	q.nextSeq++
	heap.Push(&q.events, ev)
}

// PeekTime returns the earliest pending event time.
// The boolean is false if the queue is empty.
func (q *EventQueue) PeekTime() (int64, bool) {
	if q.events.Len() == 0 {
		return 0, false
	}
	return q.events[0].Time, true
}

// PopAllAtEarliestTime removes and returns every event sharing the minimum time,
// already in type-priority order. Returns nil if the queue is empty.
func (q *EventQueue) PopAllAtEarliestTime() []Event {
	now, ok := q.PeekTime()
	if !ok {
		return nil
	}
	var batch []Event
	for q.events.Len() > 0 && q.events[0].Time == now {
		batch = append(batch, heap.Pop(&q.events).(Event))
	}
	return batch
}
