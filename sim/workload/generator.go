package workload

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// GenerateSpec describes a synthetic process population.
// Generation is deterministic for a given spec, seed included.
type GenerateSpec struct {
	Seed         int64       `yaml:"seed"`
	Count        int         `yaml:"count"`
	FirstArrival int64       `yaml:"first_arrival"`
	Arrival      ArrivalSpec `yaml:"arrival"`
	Bursts       DistSpec    `yaml:"bursts"` // CPU bursts per process
	CPU          DistSpec    `yaml:"cpu"`
	IO           DistSpec    `yaml:"io"`
}

// DefaultGenerateSpec is a small mixed CPU/IO population.
func DefaultGenerateSpec() GenerateSpec {
	return GenerateSpec{
		Seed:         42,
		Count:        10,
		FirstArrival: 1,
		Arrival:      ArrivalSpec{Process: "poisson", Rate: 0.25},
		Bursts:       DistSpec{Type: "uniform", Params: map[string]float64{"min": 1, "max": 4}},
		CPU:          DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5, "std_dev": 3, "min": 1, "max": 20}},
		IO:           DistSpec{Type: "exponential", Params: map[string]float64{"mean": 8}},
	}
}

// LoadGenerateSpec reads a YAML generation spec over the defaults. Unknown keys are errors.
func LoadGenerateSpec(path string) (GenerateSpec, error) {
	spec := DefaultGenerateSpec()
	data, err := os.ReadFile(path)
	if err != nil {
		return spec, fmt.Errorf("reading generate spec: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return spec, fmt.Errorf("parsing generate spec %s: %w", path, err)
	}
	return spec, nil
}

// Validate checks the scalar fields. Distributions are checked when samplers are built.
func (s GenerateSpec) Validate() error {
	var errs []error
	if s.Count < 0 {
		errs = append(errs, fmt.Errorf("count must be >= 0, got %d", s.Count))
	}
	if s.FirstArrival < 1 {
		errs = append(errs, fmt.Errorf("first_arrival must be >= 1, got %d", s.FirstArrival))
	}
	return errors.Join(errs...)
}

// Generate draws spec.Count processes. Arrivals are non-decreasing and start at
// FirstArrival; every burst is >= 1, so each result is a valid input line.
func Generate(spec GenerateSpec) ([]ProcessSpec, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generate spec: %w", err)
	}
	arrivals, err := NewArrivalSampler(spec.Arrival)
	if err != nil {
		return nil, fmt.Errorf("arrival: %w", err)
	}
	counts, err := NewBurstSampler(spec.Bursts)
	if err != nil {
		return nil, fmt.Errorf("bursts: %w", err)
	}
	cpu, err := NewBurstSampler(spec.CPU)
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}
	ioDist, err := NewBurstSampler(spec.IO)
	if err != nil {
		return nil, fmt.Errorf("io: %w", err)
	}

	rng := NewPartitionedRNG(spec.Seed)
	arrivalRNG := rng.ForStream(StreamArrivals)
	burstRNG := rng.ForStream(StreamBursts)

	specs := make([]ProcessSpec, 0, spec.Count)
	now := spec.FirstArrival
	for i := 0; i < spec.Count; i++ {
		if i > 0 {
			now += arrivals.NextGap(arrivalRNG)
		}
		n := counts.Sample(burstRNG)
		ps := ProcessSpec{LineNo: i + 1, Arrival: now, CPUBursts: make([]int64, 0, n)}
		for b := int64(0); b < n; b++ {
			if b > 0 {
				ps.IOBursts = append(ps.IOBursts, ioDist.Sample(burstRNG))
			}
			ps.CPUBursts = append(ps.CPUBursts, cpu.Sample(burstRNG))
		}
		specs = append(specs, ps)
	}
	logrus.Debugf("Generated %d processes with seed %d", len(specs), spec.Seed)
	return specs, nil
}

// WriteSpecs writes specs in the input line format, one process per line.
func WriteSpecs(w io.Writer, specs []ProcessSpec) error {
	bw := bufio.NewWriter(w)
	for _, ps := range specs {
		line := strconv.AppendInt(nil, ps.Arrival, 10)
		line = append(line, ' ')
		line = strconv.AppendInt(line, int64(len(ps.CPUBursts)), 10)
		for i, c := range ps.CPUBursts {
			if i > 0 {
				line = append(line, ' ')
				line = strconv.AppendInt(line, ps.IOBursts[i-1], 10)
			}
			line = append(line, ' ')
			line = strconv.AppendInt(line, c, 10)
		}
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("writing process line: %w", err)
		}
	}
	return bw.Flush()
}
