package sim

import (
	"fmt"

	"github.com/rr-sim/rr-sim/sim/trace"
)

// SimConfig groups the parameters fixed for the whole run.
type SimConfig struct {
	Quantum int64             // round-robin time slice in ticks (must be > 0)
	Trace   trace.TraceConfig // transition recording (Level "none" disables it)
}

// NewSimConfig builds a SimConfig. Zero-value arguments are kept as-is; Validate
// reports them.
func NewSimConfig(quantum int64, traceLevel trace.TraceLevel) SimConfig {
	return SimConfig{
		Quantum: quantum,
		Trace:   trace.TraceConfig{Level: traceLevel},
	}
}

// Validate checks the config before a simulator is built from it.
func (c SimConfig) Validate() error {
	if c.Quantum <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantum, c.Quantum)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q; valid: none, transitions", c.Trace.Level)
	}
	return nil
}
