// Package testutil provides shared test infrastructure for the rr-sim simulator.
// It locates fixtures under the repository testdata/ directory and holds assertion
// helpers used across sim/ sub-package tests.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// TestdataPath returns the absolute path of a file in the repository testdata/ directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", name)
}

// ReadGolden returns the contents of a testdata file as a string.
func ReadGolden(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(TestdataPath(t, name))
	if err != nil {
		t.Fatalf("Failed to read golden file %s: %v", name, err)
	}
	return string(data)
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
