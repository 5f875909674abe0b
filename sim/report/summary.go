package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/rr-sim/rr-sim/sim"
)

// Format selects how a summary is written.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

var validFormats = map[Format]bool{
	FormatText:  true,
	FormatTable: true,
	FormatJSON:  true,
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !validFormats[f] {
		return "", fmt.Errorf("unknown output format %q; valid: text, table, json", s)
	}
	return f, nil
}

// WriteSummary writes the end-of-run summary in the requested format.
func WriteSummary(w io.Writer, s sim.Summary, format Format) error {
	switch format {
	case FormatText:
		return writeText(w, s)
	case FormatTable:
		return writeTable(w, s)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding summary: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeText(w io.Writer, s sim.Summary) error {
	lw := &logWriter{w: w}
	lw.printf("<Output File - Simulation Results>\n")
	lw.printf("> Results for quantum = %d CPU utilization = %d%%\n", s.Quantum, s.CPUUtilization)
	if s.Loaded == 0 {
		lw.printf("No valid processes to simulate.\n")
		return lw.err
	}
	for _, p := range s.Processes {
		lw.printf("P%d (Turn Around Time = %d, ReadyWait = %d, I/O-wait=%d)\n", p.PID, p.Turnaround, p.ReadyWait, p.IOWait)
	}
	if s.Completed > 0 {
		lw.printf("\nCPU Utilization = %d%%\n", s.CPUUtilization)
		lw.printf("Average Turnaround = %.2f\n", s.AvgTurnaround)
		lw.printf("Average Ready Wait = %.2f\n", s.AvgReadyWait)
		lw.printf("Average I/O Wait = %.2f\n", s.AvgIOWait)
	}
	return lw.err
}

func writeTable(w io.Writer, s sim.Summary) error {
	title := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	if _, err := fmt.Fprintln(w, title.Render(fmt.Sprintf("Round robin, quantum = %d", s.Quantum))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "CPU utilization %d%% (active window %d%%), %d/%d processes finished at t=%d\n",
		s.CPUUtilization, s.ActiveCPUUtil, s.Completed, s.Loaded, s.SimEndedTime); err != nil {
		return err
	}

	rows := make([][]string, 0, len(s.Processes))
	for _, p := range s.Processes {
		rows = append(rows, []string{
			fmt.Sprintf("P%d", p.PID),
			strconv.FormatInt(p.ArrivalTime, 10),
			strconv.FormatInt(p.FinishTime, 10),
			strconv.FormatInt(p.Turnaround, 10),
			strconv.FormatInt(p.ReadyWait, 10),
			strconv.FormatInt(p.IOWait, 10),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "Finish", "Turnaround", "Ready Wait", "IO Wait"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("Average\n%.2f", s.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", s.AvgReadyWait),
		fmt.Sprintf("Average\n%.2f", s.AvgIOWait)})
	table.Render()
	return nil
}

// SweepRow is one quantum's result in a quantum sweep.
type SweepRow struct {
	Quantum int64
	Summary sim.Summary
}

// WriteSweep writes a comparison table with one row per quantum, in the given order.
func WriteSweep(w io.Writer, rows []SweepRow) error {
	title := lipgloss.NewRenderer(w).NewStyle().Bold(true)
	if _, err := fmt.Fprintln(w, title.Render("Quantum sweep")); err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Quantum", "CPU %", "Finished", "End", "Avg Turnaround", "Avg Ready Wait", "Avg IO Wait"})
	for _, r := range rows {
		table.Append([]string{
			strconv.FormatInt(r.Quantum, 10),
			strconv.Itoa(r.Summary.CPUUtilization),
			fmt.Sprintf("%d/%d", r.Summary.Completed, r.Summary.Loaded),
			strconv.FormatInt(r.Summary.SimEndedTime, 10),
			fmt.Sprintf("%.2f", r.Summary.AvgTurnaround),
			fmt.Sprintf("%.2f", r.Summary.AvgReadyWait),
			fmt.Sprintf("%.2f", r.Summary.AvgIOWait),
		})
	}
	table.Render()
	return nil
}
