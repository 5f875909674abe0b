package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// DistSpec names a burst-length distribution and its parameters.
type DistSpec struct {
	Type   string             `yaml:"type"` // constant, uniform, gaussian or exponential
	Params map[string]float64 `yaml:"params"`
}

// BurstSampler generates burst lengths in ticks.
type BurstSampler interface {
	// Sample returns a positive length (>= 1).
	Sample(rng *rand.Rand) int64
}

// ConstantSampler always returns the same length.
type ConstantSampler struct {
	value int64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int64 {
	return max(s.value, 1)
}

// UniformSampler draws from [min, max] inclusive.
type UniformSampler struct {
	min, max int64
}

func (s *UniformSampler) Sample(rng *rand.Rand) int64 {
	if s.max <= s.min {
		return max(s.min, 1)
	}
	return max(s.min+rng.Int63n(s.max-s.min+1), 1)
}

// GaussianSampler produces clamped Gaussian lengths.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int64
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int64 {
	if s.min == s.max {
		return max(s.min, 1)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	return max(int64(math.Round(clamped)), 1)
}

// ExponentialSampler produces exponentially distributed lengths.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int64 {
	return max(int64(math.Round(rng.ExpFloat64()*s.mean)), 1)
}

func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewBurstSampler creates a BurstSampler from a DistSpec.
func NewBurstSampler(spec DistSpec) (BurstSampler, error) {
	switch spec.Type {
	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int64(spec.Params["value"])}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		lo, hi := int64(spec.Params["min"]), int64(spec.Params["max"])
		if lo > hi {
			return nil, fmt.Errorf("uniform distribution min %d exceeds max %d", lo, hi)
		}
		return &UniformSampler{min: lo, max: hi}, nil

	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		return &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    int64(spec.Params["min"]),
			max:    int64(spec.Params["max"]),
		}, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil
	}
	return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
}
