package variate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestErlang_HugePhaseCount_DrawsInConstantTime(t *testing.T) {
	// GIVEN an Erlang spec with far more phases than can be summed one by one
	spec := Spec{Type: KindErlang, Params: map[string]float64{"k": 1e15, "mean": 4}}
	require.NoError(t, spec.Validate())

	// WHEN drawn
	vals, err := Generate(42, spec, 1000)
	require.NoError(t, err)

	// THEN the draws concentrate at the mean, as Erlang variance mean²/k vanishes
	for i, v := range vals {
		require.InDelta(t, 4.0, v, 1e-3, "draw %d", i)
	}
}

func TestErlang_AbovePhaseSumLimit_MeanHolds(t *testing.T) {
	vals, err := Generate(7, Erlang(MaxErlangPhaseSum+1, 15), 10000)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, stat.Mean(vals, nil), 15*0.01)
}

func TestErlang_MeanWithinTwoPercent_NeverNegative(t *testing.T) {
	// GIVEN 10,000 Erlang(k=2, mean=15) variates
	vals, err := Generate(42, Erlang(2, 15), 10000)
	require.NoError(t, err)

	// THEN none is negative and the sample mean is within 2% of 15
	for i, v := range vals {
		if v < 0 {
			t.Fatalf("variate %d = %v, want >= 0", i, v)
		}
	}
	mean := stat.Mean(vals, nil)
	assert.InDelta(t, 15.0, mean, 0.02*15, "erlang sample mean")
}

func TestExponential_MeanMatchesParam(t *testing.T) {
	vals, err := Generate(42, Exponential(6), 10000)
	require.NoError(t, err)

	mean := stat.Mean(vals, nil)
	if math.Abs(mean-6)/6 > 0.05 {
		t.Errorf("exponential mean = %.3f, want ≈ 6 (within 5%%)", mean)
	}
}

func TestNormal_MeanAndStdMatchParams(t *testing.T) {
	vals, err := Generate(7, Normal(100, 5), 20000)
	require.NoError(t, err)

	mean, std := stat.MeanStdDev(vals, nil)
	assert.InDelta(t, 100, mean, 0.5)
	assert.InDelta(t, 5, std, 0.25)
}

func TestUniform_InUnitInterval(t *testing.T) {
	vals, err := Generate(1, Uniform(), 5000)
	require.NoError(t, err)
	for i, v := range vals {
		if v < 0 || v >= 1 {
			t.Fatalf("uniform variate %d = %v outside [0,1)", i, v)
		}
	}
	assert.InDelta(t, 0.5, stat.Mean(vals, nil), 0.02)
}

func TestBernoulli_OnlyZeroOrOne(t *testing.T) {
	vals, err := Generate(3, Bernoulli(0.3), 10000)
	require.NoError(t, err)

	ones := 0
	for _, v := range vals {
		switch v {
		case 0:
		case 1:
			ones++
		default:
			t.Fatalf("bernoulli produced %v", v)
		}
	}
	assert.InDelta(t, 0.3, float64(ones)/float64(len(vals)), 0.02)
}

func TestCategorical_ReturnsOutcomesWithTheirFrequencies(t *testing.T) {
	// GIVEN a demand distribution over {20, 30, 40} units
	spec := Categorical([]float64{20, 30, 40}, []float64{0.2, 0.5, 0.3})

	// WHEN 20,000 draws are made
	vals, err := Generate(42, spec, 20000)
	require.NoError(t, err)

	// THEN only declared outcomes appear, in roughly the declared proportions
	counts := map[float64]int{}
	for _, v := range vals {
		counts[v]++
	}
	require.Len(t, counts, 3)
	assert.InDelta(t, 0.2, float64(counts[20])/20000, 0.015)
	assert.InDelta(t, 0.5, float64(counts[30])/20000, 0.015)
	assert.InDelta(t, 0.3, float64(counts[40])/20000, 0.015)
	assert.InDelta(t, 31.0, spec.Mean(), 1e-12)
}

func TestCategorical_ToleratesRoundingInProbabilitySum(t *testing.T) {
	spec := Categorical([]float64{1, 2, 3}, []float64{0.1, 0.2, 0.7 + 1e-12})
	assert.NoError(t, spec.Validate())
}

func TestValidate_RejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"zero exponential mean", Exponential(0), ErrInvalidParameter},
		{"negative exponential mean", Exponential(-1), ErrInvalidParameter},
		{"zero normal std", Normal(10, 0), ErrInvalidParameter},
		{"negative normal std", Normal(10, -2), ErrInvalidParameter},
		{"erlang k zero", Erlang(0, 15), ErrInvalidParameter},
		{"erlang fractional k", Spec{Type: KindErlang, Params: map[string]float64{"k": 1.5, "mean": 3}}, ErrInvalidParameter},
		{"erlang zero mean", Erlang(2, 0), ErrInvalidParameter},
		{"bernoulli p above one", Bernoulli(1.2), ErrInvalidParameter},
		{"missing mean", Spec{Type: KindExponential}, ErrInvalidParameter},
		{"nan mean", Exponential(math.NaN()), ErrInvalidParameter},
		{"unknown type", Spec{Type: "weibull"}, ErrInvalidParameter},
		{"negative probability", Categorical([]float64{1, 2}, []float64{1.2, -0.2}), ErrInvalidDistribution},
		{"probabilities short of one", Categorical([]float64{1, 2}, []float64{0.4, 0.4}), ErrInvalidDistribution},
		{"length mismatch", Categorical([]float64{1, 2, 3}, []float64{0.5, 0.5}), ErrInvalidDistribution},
		{"empty vector", Categorical(nil, nil), ErrInvalidDistribution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			assert.ErrorIs(t, err, tt.want)

			_, err = Generate(42, tt.spec, 10)
			assert.ErrorIs(t, err, tt.want, "Generate must validate eagerly")
		})
	}
}

func TestValidate_AcceptsWellFormedSpecs(t *testing.T) {
	for _, spec := range []Spec{
		Uniform(),
		Bernoulli(0),
		Bernoulli(1),
		Normal(-3, 1),
		Exponential(4),
		Erlang(1, 4),
		Erlang(3, 4),
		Categorical([]float64{0}, []float64{1}),
	} {
		assert.NoError(t, spec.Validate(), spec.String())
	}
}
