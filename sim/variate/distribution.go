package variate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution kinds accepted in Spec.Type.
const (
	KindUniform     = "uniform"
	KindBernoulli   = "bernoulli"
	KindCategorical = "categorical"
	KindNormal      = "normal"
	KindExponential = "exponential"
	KindErlang      = "erlang"
)

// ProbabilityTolerance is how far a categorical probability vector may drift
// from summing to exactly 1.
const ProbabilityTolerance = 1e-9

// Spec parameterizes a distribution.
//
// Scalar parameters live in Params ("mean", "std", "k", "p"). Categorical
// distributions use Outcomes and Probabilities instead, index-aligned.
type Spec struct {
	Type          string             `yaml:"type"`
	Params        map[string]float64 `yaml:"params,omitempty"`
	Outcomes      []float64          `yaml:"outcomes,omitempty"`
	Probabilities []float64          `yaml:"probabilities,omitempty"`
}

// Exponential returns the Spec for an exponential distribution with the given mean.
func Exponential(mean float64) Spec {
	return Spec{Type: KindExponential, Params: map[string]float64{"mean": mean}}
}

// Erlang returns the Spec for an Erlang distribution with k phases and the given mean.
func Erlang(k int, mean float64) Spec {
	return Spec{Type: KindErlang, Params: map[string]float64{"k": float64(k), "mean": mean}}
}

// Normal returns the Spec for a normal distribution.
func Normal(mean, std float64) Spec {
	return Spec{Type: KindNormal, Params: map[string]float64{"mean": mean, "std": std}}
}

// Bernoulli returns the Spec for a Bernoulli(p) distribution.
func Bernoulli(p float64) Spec {
	return Spec{Type: KindBernoulli, Params: map[string]float64{"p": p}}
}

// Uniform returns the Spec for the uniform distribution on [0,1).
func Uniform() Spec {
	return Spec{Type: KindUniform}
}

// Categorical returns the Spec for a categorical distribution over outcomes.
func Categorical(outcomes, probabilities []float64) Spec {
	return Spec{Type: KindCategorical, Outcomes: outcomes, Probabilities: probabilities}
}

// Mean returns the expected value of the distribution described by s.
// It assumes s has already passed validation.
func (s Spec) Mean() float64 {
	switch s.Type {
	case KindUniform:
		return 0.5
	case KindBernoulli:
		return s.Params["p"]
	case KindCategorical:
		m := 0.0
		for i, o := range s.Outcomes {
			m += o * s.Probabilities[i]
		}
		return m
	default:
		return s.Params["mean"]
	}
}

func (s Spec) String() string {
	switch s.Type {
	case KindCategorical:
		return fmt.Sprintf("categorical(%v, %v)", s.Outcomes, s.Probabilities)
	case KindUniform:
		return "uniform(0,1)"
	default:
		return fmt.Sprintf("%s%v", s.Type, s.Params)
	}
}

// Sampler draws one variate per call from its bound source.
type Sampler interface {
	Rand() float64
}

// MaxErlangPhaseSum is the largest k drawn as an explicit sum of exponential
// phases. Larger k draw from the equivalent Gamma(k, k/mean) in constant time.
const MaxErlangPhaseSum = 64

// erlangSampler sums k exponential phases, each with mean mean/k.
type erlangSampler struct {
	phase distuv.Exponential
	k     int
}

func (s *erlangSampler) Rand() float64 {
	sum := 0.0
	for i := 0; i < s.k; i++ {
		sum += s.phase.Rand()
	}
	return sum
}

// categoricalSampler maps a drawn category index to its outcome value.
type categoricalSampler struct {
	dist     distuv.Categorical
	outcomes []float64
}

func (s *categoricalSampler) Rand() float64 {
	return s.outcomes[int(s.dist.Rand())]
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		v, ok := params[k]
		if !ok {
			return fmt.Errorf("distribution requires parameter %q: %w", k, ErrInvalidParameter)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("parameter %q = %v is not finite: %w", k, v, ErrInvalidParameter)
		}
	}
	return nil
}

// Validate checks the spec without binding it to a source.
func (s Spec) Validate() error {
	switch s.Type {
	case KindUniform:
		return nil

	case KindBernoulli:
		if err := requireParam(s.Params, "p"); err != nil {
			return err
		}
		if p := s.Params["p"]; p < 0 || p > 1 {
			return fmt.Errorf("bernoulli p = %v outside [0,1]: %w", p, ErrInvalidParameter)
		}
		return nil

	case KindCategorical:
		return validateProbabilities(s.Outcomes, s.Probabilities)

	case KindNormal:
		if err := requireParam(s.Params, "mean", "std"); err != nil {
			return err
		}
		if std := s.Params["std"]; std <= 0 {
			return fmt.Errorf("normal std = %v must be > 0: %w", std, ErrInvalidParameter)
		}
		return nil

	case KindExponential:
		if err := requireParam(s.Params, "mean"); err != nil {
			return err
		}
		if mean := s.Params["mean"]; mean <= 0 {
			return fmt.Errorf("exponential mean = %v must be > 0: %w", mean, ErrInvalidParameter)
		}
		return nil

	case KindErlang:
		if err := requireParam(s.Params, "k", "mean"); err != nil {
			return err
		}
		k := s.Params["k"]
		if k < 1 || k != math.Trunc(k) {
			return fmt.Errorf("erlang k = %v must be an integer >= 1: %w", k, ErrInvalidParameter)
		}
		if mean := s.Params["mean"]; mean <= 0 {
			return fmt.Errorf("erlang mean = %v must be > 0: %w", mean, ErrInvalidParameter)
		}
		return nil

	default:
		return fmt.Errorf("unknown distribution type %q: %w", s.Type, ErrInvalidParameter)
	}
}

func validateProbabilities(outcomes, probs []float64) error {
	if len(probs) == 0 {
		return fmt.Errorf("categorical distribution has no probabilities: %w", ErrInvalidDistribution)
	}
	if len(outcomes) != len(probs) {
		return fmt.Errorf("categorical has %d outcomes but %d probabilities: %w",
			len(outcomes), len(probs), ErrInvalidDistribution)
	}
	for i, p := range probs {
		if p < 0 || math.IsNaN(p) {
			return fmt.Errorf("probability[%d] = %v is negative: %w", i, p, ErrInvalidDistribution)
		}
	}
	if sum := floats.Sum(probs); math.Abs(sum-1) > ProbabilityTolerance {
		return fmt.Errorf("probabilities sum to %v, want 1: %w", sum, ErrInvalidDistribution)
	}
	return nil
}

// NewSampler validates spec and binds it to src.
func NewSampler(spec Spec, src rand.Source) (Sampler, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Type {
	case KindUniform:
		return distuv.Uniform{Min: 0, Max: 1, Src: src}, nil
	case KindBernoulli:
		return distuv.Bernoulli{P: spec.Params["p"], Src: src}, nil
	case KindCategorical:
		outcomes := append([]float64(nil), spec.Outcomes...)
		return &categoricalSampler{
			dist:     distuv.NewCategorical(spec.Probabilities, src),
			outcomes: outcomes,
		}, nil
	case KindNormal:
		return distuv.Normal{Mu: spec.Params["mean"], Sigma: spec.Params["std"], Src: src}, nil
	case KindExponential:
		return distuv.Exponential{Rate: 1 / spec.Params["mean"], Src: src}, nil
	default: // KindErlang; Validate rejected everything else
		k, mean := spec.Params["k"], spec.Params["mean"]
		if k > MaxErlangPhaseSum {
			return distuv.Gamma{Alpha: k, Beta: k / mean, Src: src}, nil
		}
		return &erlangSampler{
			phase: distuv.Exponential{Rate: k / mean, Src: src},
			k:     int(k),
		}, nil
	}
}
