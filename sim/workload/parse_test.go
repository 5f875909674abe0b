package workload

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rr-sim/rr-sim/sim/internal/testutil"
)

func TestParse_ValidLine_SplitsCPUAndIOBursts(t *testing.T) {
	// GIVEN a line with three CPU bursts and two IO bursts
	res, err := Parse(strings.NewReader("4 3 10 2 20 3 30\n"))
	require.NoError(t, err)

	// THEN bursts alternate CPU, IO, CPU, IO, CPU
	require.Len(t, res.Specs, 1)
	assert.Empty(t, res.Invalid)
	assert.Equal(t, ProcessSpec{
		LineNo:    1,
		Arrival:   4,
		CPUBursts: []int64{10, 20, 30},
		IOBursts:  []int64{2, 3},
	}, res.Specs[0])
}

func TestParse_ValidationRules(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		reason string
	}{
		{"zero arrival", "0 2 3 1 2", "invalid start time; start time must be > 0; start time input = 0"},
		{"negative arrival", "-4 1 3", "invalid start time; start time must be > 0; start time input = -4"},
		{"zero bursts", "2 0", "invalid number of CPU bursts; must be > 0; number of CPU bursts = 0"},
		{"too few values", "3 2 5 1", "number of CPU bursts = 2; number of CPU bursts input = 1"},
		{"too many values", "3 1 5 1 5", "number of CPU bursts = 1; number of CPU bursts input = 2"},
		{"zero burst", "4 1 0", "CPU burst and/or I/O burst value must be > 0; one of the burst values = 0"},
		{"negative io burst", "4 2 3 -1 3", "CPU burst and/or I/O burst value must be > 0; one of the burst values = -1"},
		{"non-integer", "x 1 3", `non-integer value "x"`},
		{"single token", "7", "expected start time and number of CPU bursts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(strings.NewReader(tt.line))
			require.NoError(t, err)

			assert.Empty(t, res.Specs)
			require.Len(t, res.Invalid, 1)
			assert.Equal(t, tt.reason, res.Invalid[0].Reason)
			assert.Equal(t, "Invalid Input: "+tt.line+" < "+tt.reason, res.Invalid[0].Message())
		})
	}
}

func TestParse_ArrivalCheckedBeforeBurstCount(t *testing.T) {
	// GIVEN a line that is wrong on arrival and on field count
	res, err := Parse(strings.NewReader("0 3 1"))
	require.NoError(t, err)

	// THEN the first rule in order decides the reason
	require.Len(t, res.Invalid, 1)
	assert.Contains(t, res.Invalid[0].Reason, "invalid start time")
}

func TestLoadFile_MixedInput_SkipsInvalidAndBlankLines(t *testing.T) {
	// GIVEN the mixed fixture with three valid lines, five invalid and one blank
	res, err := LoadFile(testutil.TestdataPath(t, "mixed.txt"))
	require.NoError(t, err)

	// THEN valid specs keep their line numbers
	require.Len(t, res.Specs, 3)
	assert.Equal(t, []int{1, 3, 9}, []int{res.Specs[0].LineNo, res.Specs[1].LineNo, res.Specs[2].LineNo})

	// AND invalid lines are reported in order with their line numbers
	var lines []int
	for _, l := range res.Invalid {
		lines = append(lines, l.LineNo)
	}
	assert.Equal(t, []int{4, 5, 6, 7, 8}, lines)
	assert.Len(t, res.InvalidMessages(), 5)
}

func TestLoadFile_InvalidOnly_ZeroProcesses(t *testing.T) {
	res, err := LoadFile(testutil.TestdataPath(t, "invalid_only.txt"))
	require.NoError(t, err)

	procs, err := res.Processes()
	require.NoError(t, err)
	assert.Empty(t, procs)
	assert.Len(t, res.Invalid, 1)
}

func TestLoadFile_MissingFile_ReturnsWrappedError(t *testing.T) {
	_, err := LoadFile(testutil.TestdataPath(t, "does-not-exist.txt"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}
