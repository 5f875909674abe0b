package report

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rr-sim/rr-sim/sim"
	"github.com/rr-sim/rr-sim/sim/internal/testutil"
	"github.com/rr-sim/rr-sim/sim/trace"
	"github.com/rr-sim/rr-sim/sim/workload"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.ErrorLevel)
	}
	os.Exit(m.Run())
}

// simulateFixture loads a testdata input and runs it with tracing on.
func simulateFixture(t *testing.T, name string, quantum int64) (*workload.ParseResult, *sim.Simulator) {
	t.Helper()
	res, err := workload.LoadFile(testutil.TestdataPath(t, name))
	require.NoError(t, err)
	procs, err := res.Processes()
	require.NoError(t, err)
	s, err := sim.NewSimulator(sim.NewSimConfig(quantum, trace.TraceLevelTransitions), procs)
	require.NoError(t, err)
	require.NoError(t, s.Run())
	return res, s
}

func TestWriteLog_SingleProcess_MatchesGolden(t *testing.T) {
	// GIVEN one process (arrival 1, burst 4) simulated with quantum 2
	res, s := simulateFixture(t, "single.txt", 2)

	// WHEN the log is rendered with the default options
	var buf bytes.Buffer
	require.NoError(t, WriteLog(&buf, res.InvalidMessages(), s.Trace, DefaultLogOptions()))

	// THEN it matches the golden log line for line
	assert.Equal(t, testutil.ReadGolden(t, "single_q2.log"), buf.String())
}

func TestWriteSummary_Text_SingleProcess_MatchesGolden(t *testing.T) {
	_, s := simulateFixture(t, "single.txt", 2)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s.Summary(), FormatText))

	assert.Equal(t, testutil.ReadGolden(t, "single_q2.out"), buf.String())
}

func TestWriteSummary_Text_NoValidProcesses(t *testing.T) {
	// GIVEN an input whose only line has arrival 0
	res, s := simulateFixture(t, "invalid_only.txt", 3)
	require.Len(t, res.Invalid, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s.Summary(), FormatText))

	// THEN the report has 0% utilization and no metrics
	assert.Equal(t, testutil.ReadGolden(t, "invalid_only.out"), buf.String())
}

func TestWriteLog_InvalidLinesComeFirst(t *testing.T) {
	res, s := simulateFixture(t, "invalid_only.txt", 3)

	var buf bytes.Buffer
	require.NoError(t, WriteLog(&buf, res.InvalidMessages(), s.Trace, DefaultLogOptions()))

	want := "Invalid Input: 0 2 3 1 2 < invalid start time; start time must be > 0; start time input = 0\n" +
		"0: simulation finished.\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteLog_WithoutIdleMarkers_OnlyTransitions(t *testing.T) {
	_, s := simulateFixture(t, "single.txt", 2)

	var buf bytes.Buffer
	require.NoError(t, WriteLog(&buf, nil, s.Trace, LogOptions{}))

	assert.NotContains(t, buf.String(), "no event")
	assert.NotContains(t, buf.String(), "Queue States")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 6)
}

func TestWriteLog_IOStartAndQueueSnapshot(t *testing.T) {
	// GIVEN a hand-built trace with an IO start at t=2 and non-empty queues until t=6
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTransitions})
	st.RecordInstant(trace.InstantRecord{
		Clock: 2,
		Transitions: []trace.TransitionRecord{
			{Clock: 2, PID: 0, From: "RUNNING", To: "BLOCKED", Cause: trace.CauseIORequest},
			{Clock: 2, PID: 1, From: "READY", To: "RUNNING", Cause: trace.CauseDispatch},
		},
		IOStart: &trace.IOStartRecord{Clock: 2, PID: 0, Duration: 8},
		ReadyQueue: []int{2, 4},
		IOQueue:    []int{3},
	})
	st.RecordInstant(trace.InstantRecord{Clock: 6})

	var buf bytes.Buffer
	require.NoError(t, WriteLog(&buf, nil, st, DefaultLogOptions()))

	out := buf.String()
	assert.Contains(t, out, "2: P0 requests I/O, changes state from RUNNING to BLOCKED\n")
	assert.Contains(t, out, "2: P1 changes state from READY to RUNNING\n2: P0 starts I/O\n")
	assert.Contains(t, out, "5: ----- Queue States (before events) -----\nReady Queue:   P2 P4\nI/O Queue:     P3\n")
	assert.True(t, strings.HasSuffix(out, "6: simulation finished.\n"))
}

func TestWriteSummary_JSON_RoundTripsFields(t *testing.T) {
	_, s := simulateFixture(t, "single.txt", 2)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s.Summary(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(80), decoded["cpu_utilization_pct"])
	assert.Equal(t, float64(2), decoded["quantum"])
	assert.Len(t, decoded["processes"], 1)
	testutil.AssertFloat64Equal(t, "avg_turnaround", 4.0, decoded["avg_turnaround"].(float64), 1e-9)
}

func TestWriteSummary_Table_ContainsRowsAndAverages(t *testing.T) {
	_, s := simulateFixture(t, "mixed.txt", 3)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, s.Summary(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Round robin, quantum = 3")
	upper := strings.ToUpper(out)
	assert.Contains(t, upper, "TURNAROUND")
	for _, pid := range []string{"P0", "P1", "P2"} {
		assert.Contains(t, out, pid)
	}
	assert.Contains(t, upper, "AVERAGE")
}

func TestWriteSweep_KeepsRowOrder(t *testing.T) {
	rows := []SweepRow{
		{Quantum: 1, Summary: sim.Summary{Quantum: 1, CPUUtilization: 70, Loaded: 2, Completed: 2}},
		{Quantum: 8, Summary: sim.Summary{Quantum: 8, CPUUtilization: 75, Loaded: 2, Completed: 2}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSweep(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "Quantum sweep")
	assert.Less(t, strings.Index(out, " 70 "), strings.Index(out, " 75 "))
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"text", "table", "json"} {
		f, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(name), f)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unknown output format")
}
