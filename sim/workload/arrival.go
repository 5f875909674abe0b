package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ArrivalSpec describes the arrival process of generated processes.
type ArrivalSpec struct {
	Process string   `yaml:"process"` // poisson, gamma or weibull
	Rate    float64  `yaml:"rate"`    // processes per tick
	CV      *float64 `yaml:"cv,omitempty"`
}

// ArrivalSampler generates gaps between consecutive arrivals.
type ArrivalSampler interface {
	// NextGap returns the ticks until the next arrival. Zero means a simultaneous arrival.
	NextGap(rng *rand.Rand) int64
}

// PoissonSampler draws exponential gaps (CV=1).
type PoissonSampler struct {
	rate float64 // processes per tick
}

func (s *PoissonSampler) NextGap(rng *rand.Rand) int64 {
	return int64(rng.ExpFloat64() / s.rate)
}

// GammaSampler draws Gamma-distributed gaps. CV > 1 gives bursty arrivals.
type GammaSampler struct {
	shape float64 // 1/CV²
	scale float64 // CV²/rate in ticks
}

func (s *GammaSampler) NextGap(rng *rand.Rand) int64 {
	return int64(gammaRand(rng, s.shape, s.scale))
}

// gammaRand samples Gamma(shape, scale) with Marsaglia-Tsang, boosting shape < 1
// through Gamma(a) = Gamma(a+1) * U^(1/a).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// squeeze
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// WeibullSampler draws Weibull-distributed gaps by inverse CDF.
type WeibullSampler struct {
	shape float64 // k
	scale float64 // λ in ticks
}

func (s *WeibullSampler) NextGap(rng *rand.Rand) int64 {
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64
	}
	return int64(s.scale * math.Pow(-math.Log(u), 1.0/s.shape))
}

// NewArrivalSampler builds the sampler for spec.
func NewArrivalSampler(spec ArrivalSpec) (ArrivalSampler, error) {
	if spec.Rate <= 0 {
		return nil, fmt.Errorf("arrival rate must be > 0, got %g", spec.Rate)
	}
	cv := 1.0
	if spec.CV != nil {
		cv = *spec.CV
	}
	if cv <= 0 {
		return nil, fmt.Errorf("arrival cv must be > 0, got %g", cv)
	}
	mean := 1.0 / spec.Rate

	switch spec.Process {
	case "", "poisson":
		return &PoissonSampler{rate: spec.Rate}, nil
	case "gamma":
		shape := 1.0 / (cv * cv)
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{rate: spec.Rate}, nil
		}
		return &GammaSampler{shape: shape, scale: mean * cv * cv}, nil
	case "weibull":
		k := weibullShapeFromCV(cv)
		return &WeibullSampler{shape: k, scale: mean / math.Gamma(1.0+1.0/k)}, nil
	}
	return nil, fmt.Errorf("unknown arrival process %q; valid: poisson, gamma, weibull", spec.Process)
}

// weibullShapeFromCV bisects k in [0.1, 100] until the Weibull CV is within 0.001 of target.
func weibullShapeFromCV(targetCV float64) float64 {
	lo, hi := 0.1, 100.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2.0
		cv := weibullCV(mid)
		if math.Abs(cv-targetCV) < 0.001 {
			return mid
		}
		// CV decreases as k grows
		if cv > targetCV {
			lo = mid
		} else {
			hi = mid
		}
	}
	logrus.Warnf("weibullShapeFromCV: no convergence for CV=%.3f; using k=%.3f", targetCV, (lo+hi)/2.0)
	return (lo + hi) / 2.0
}

func weibullCV(k float64) float64 {
	g1 := math.Gamma(1.0 + 1.0/k)
	g2 := math.Gamma(1.0 + 2.0/k)
	return math.Sqrt(g2/(g1*g1) - 1.0)
}
