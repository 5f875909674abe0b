package workload

import (
	"fmt"

	"github.com/rr-sim/rr-sim/sim"
)

// Processes converts the valid specs into sim processes. PIDs are assigned in input
// order starting at 0, counting valid lines only.
func (r *ParseResult) Processes() ([]*sim.Process, error) {
	procs := make([]*sim.Process, 0, len(r.Specs))
	for i, spec := range r.Specs {
		p, err := sim.NewProcess(i, spec.Arrival, spec.CPUBursts, spec.IOBursts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", spec.LineNo, err)
		}
		procs = append(procs, p)
	}
	return procs, nil
}
