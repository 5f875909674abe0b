package workload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// LoadFile parses the process description file at path.
// The file is closed before LoadFile returns.
func LoadFile(path string) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening process file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			logrus.Warnf("Error closing %s: %v", path, closeErr)
		}
	}()
	res, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return res, nil
}

// Parse reads process descriptions from r. Blank lines are skipped; invalid lines
// are logged at warn level and collected in ParseResult.Invalid. Only read errors
// are returned.
func Parse(r io.Reader) (*ParseResult, error) {
	res := &ParseResult{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		spec, reason := parseLine(text)
		if reason != "" {
			bad := InvalidLine{LineNo: lineNo, Text: text, Reason: reason}
			logrus.Warnf("line %d: %s", lineNo, bad.Message())
			res.Invalid = append(res.Invalid, bad)
			continue
		}
		spec.LineNo = lineNo
		res.Specs = append(res.Specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning input: %w", err)
	}
	logrus.Infof("Parsed %d valid and %d invalid process lines", len(res.Specs), len(res.Invalid))
	return res, nil
}

// parseLine validates one non-blank line. A non-empty reason means the line is invalid.
// Checks run in order and the first failure wins.
func parseLine(text string) (ProcessSpec, string) {
	fields := strings.Fields(text)
	values := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return ProcessSpec{}, fmt.Sprintf("non-integer value %q", f)
		}
		values[i] = v
	}

	if len(values) < 2 {
		return ProcessSpec{}, "expected start time and number of CPU bursts"
	}
	arrival, numBursts := values[0], values[1]

	if arrival <= 0 {
		return ProcessSpec{}, fmt.Sprintf("invalid start time; start time must be > 0; start time input = %d", arrival)
	}
	if numBursts <= 0 {
		return ProcessSpec{}, fmt.Sprintf("invalid number of CPU bursts; must be > 0; number of CPU bursts = %d", numBursts)
	}

	bursts := values[2:]
	if int64(len(bursts)) != 2*numBursts-1 {
		given := (len(bursts) + 1) / 2
		return ProcessSpec{}, fmt.Sprintf("number of CPU bursts = %d; number of CPU bursts input = %d", numBursts, given)
	}
	for _, b := range bursts {
		if b <= 0 {
			return ProcessSpec{}, fmt.Sprintf("CPU burst and/or I/O burst value must be > 0; one of the burst values = %d", b)
		}
	}

	spec := ProcessSpec{Arrival: arrival}
	for i, b := range bursts {
		if i%2 == 0 {
			spec.CPUBursts = append(spec.CPUBursts, b)
		} else {
			spec.IOBursts = append(spec.IOBursts, b)
		}
	}
	return spec, ""
}
