// Tracks simulation-wide and per-process performance metrics:
// CPU busy time, turnaround, ready wait and IO wait.

package sim

// Metrics aggregates statistics about the simulation
// for final reporting.
type Metrics struct {
	Quantum      int64
	CPUBusyTime  int64 // Sum of quantum/burst credits granted at dispatch
	SimEndedTime int64 // Clock of the last processed instant
}

// ProcessMetrics is the per-process result row for a finished process.
type ProcessMetrics struct {
	PID         int   `json:"pid"`
	ArrivalTime int64 `json:"arrival_time"`
	FinishTime  int64 `json:"finish_time"`
	Turnaround  int64 `json:"turnaround"`
	ReadyWait   int64 `json:"ready_wait"`
	IOWait      int64 `json:"io_wait"`
}

// Summary is what the report writer receives at the end of a run.
type Summary struct {
	Quantum        int64            `json:"quantum"`
	CPUUtilization int              `json:"cpu_utilization_pct"`
	CPUBusyTime    int64            `json:"cpu_busy_time"`
	SimEndedTime   int64            `json:"sim_ended_time"`
	ActiveCPUUtil  int              `json:"active_cpu_utilization_pct"`
	FirstArrival   int64            `json:"first_arrival"`
	Loaded         int              `json:"loaded_processes"`
	Completed      int              `json:"completed_processes"`
	Processes      []ProcessMetrics `json:"processes"`
	AvgTurnaround  float64          `json:"avg_turnaround"`
	AvgReadyWait   float64          `json:"avg_ready_wait"`
	AvgIOWait      float64          `json:"avg_io_wait"`
}

func NewMetrics(quantum int64) *Metrics {
	return &Metrics{Quantum: quantum}
}

// CPUUtilization returns busy/end*100 rounded half to even, or 0 before time advanced.
func (m *Metrics) CPUUtilization() int {
	return UtilizationPercent(m.CPUBusyTime, m.SimEndedTime)
}

// Summarize builds the Summary. Averages cover finished processes only; processes
// that never reached EXIT are left out without error.
func (m *Metrics) Summarize(processes []*Process) Summary {
	s := Summary{
		Quantum:        m.Quantum,
		CPUUtilization: m.CPUUtilization(),
		CPUBusyTime:    m.CPUBusyTime,
		SimEndedTime:   m.SimEndedTime,
		Loaded:         len(processes),
		Processes:      make([]ProcessMetrics, 0, len(processes)),
	}
	for i, p := range processes {
		if i == 0 || p.ArrivalTime < s.FirstArrival {
			s.FirstArrival = p.ArrivalTime
		}
	}
	// CPU utilization over the window in which any process existed
	s.ActiveCPUUtil = UtilizationPercent(m.CPUBusyTime, m.SimEndedTime-s.FirstArrival)

	var turnarounds, readyWaits, ioWaits []int64
	for _, p := range processes {
		if !p.Finished() {
			continue
		}
		row := ProcessMetrics{
			PID:         p.PID,
			ArrivalTime: p.ArrivalTime,
			FinishTime:  p.FinishTime,
			Turnaround:  p.TurnaroundTime(),
			ReadyWait:   p.TotalReadyWait,
			IOWait:      p.TotalIOWait,
		}
		s.Processes = append(s.Processes, row)
		turnarounds = append(turnarounds, row.Turnaround)
		readyWaits = append(readyWaits, row.ReadyWait)
		ioWaits = append(ioWaits, row.IOWait)
	}

	s.Completed = len(s.Processes)
	s.AvgTurnaround = CalculateMean(turnarounds)
	s.AvgReadyWait = CalculateMean(readyWaits)
	s.AvgIOWait = CalculateMean(ioWaits)
	return s
}
