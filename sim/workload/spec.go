// Package workload reads the line-oriented process description format and turns
// valid lines into sim processes. Invalid lines are reported and skipped, never fatal.
//
// Line format: arrival numBursts cpu1 io1 cpu2 io2 ... cpuN
package workload

import "fmt"

// ProcessSpec is one validated input line.
type ProcessSpec struct {
	LineNo    int // 1-based line number in the input
	Arrival   int64
	CPUBursts []int64
	IOBursts  []int64 // len(CPUBursts)-1 entries
}

// InvalidLine is an input line that failed validation.
type InvalidLine struct {
	LineNo int
	Text   string // the trimmed line
	Reason string
}

// Message renders the line in the "Invalid Input: <line> < <reason>" form used in logs.
func (l InvalidLine) Message() string {
	return fmt.Sprintf("Invalid Input: %s < %s", l.Text, l.Reason)
}

// ParseResult holds the outcome of parsing a whole input.
type ParseResult struct {
	Specs   []ProcessSpec
	Invalid []InvalidLine
}

// InvalidMessages returns the rendered message for every invalid line, in input order.
func (r *ParseResult) InvalidMessages() []string {
	out := make([]string, 0, len(r.Invalid))
	for _, l := range r.Invalid {
		out = append(out, l.Message())
	}
	return out
}
