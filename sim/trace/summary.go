package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Instants           int
	TotalTransitions   int
	CauseCounts        map[Cause]int // cause → number of transitions
	IOStarts           int
	MaxReadyQueueDepth int
	MaxIOQueueDepth    int
	LastClock          int64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		CauseCounts: make(map[Cause]int),
	}
	if st == nil {
		return summary
	}

	summary.Instants = len(st.Instants)
	for _, inst := range st.Instants {
		for _, tr := range inst.Transitions {
			summary.CauseCounts[tr.Cause]++
			summary.TotalTransitions++
		}
		if inst.IOStart != nil {
			summary.IOStarts++
		}
		summary.MaxReadyQueueDepth = max(summary.MaxReadyQueueDepth, len(inst.ReadyQueue))
		summary.MaxIOQueueDepth = max(summary.MaxIOQueueDepth, len(inst.IOQueue))
		summary.LastClock = inst.Clock
	}

	return summary
}

// ContextSwitches returns how many times the CPU was handed to a process.
func (s *TraceSummary) ContextSwitches() int {
	return s.CauseCounts[CauseDispatch]
}
