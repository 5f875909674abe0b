package trace

// TraceLevel controls the verbosity of transition tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures every state transition, grouped by instant.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects instant records during a simulation run.
type SimulationTrace struct {
	Config   TraceConfig
	Instants []InstantRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Instants: make([]InstantRecord, 0),
	}
}

// Enabled reports whether records are being kept. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelTransitions
}

// RecordInstant appends an instant record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordInstant(record InstantRecord) {
	if !st.Enabled() {
		return
	}
	st.Instants = append(st.Instants, record)
}

// Transitions flattens every recorded transition in trace order.
func (st *SimulationTrace) Transitions() []TransitionRecord {
	if st == nil {
		return nil
	}
	var out []TransitionRecord
	for _, inst := range st.Instants {
		out = append(out, inst.Transitions...)
	}
	return out
}
