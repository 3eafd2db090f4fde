package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/opsim/sim/variate"
)

func TestRun_SameConfig_IdenticalTraces(t *testing.T) {
	// GIVEN the same seed, N, λ, μ
	a, err := Run(NewConfig(42, 300, 10, 15))
	require.NoError(t, err)
	b, err := Run(NewConfig(42, 300, 10, 15))
	require.NoError(t, err)

	// THEN traces are field-for-field identical, and so are the metrics
	assert.Equal(t, a.Trace, b.Trace)
	assert.Equal(t, a.Reconciliation.Flatten(), b.Reconciliation.Flatten())
	assert.Equal(t, SimulationKey(42), a.Key)
}

func TestRun_DifferentSeeds_NoCrossContamination(t *testing.T) {
	// GIVEN reference traces from isolated runs
	refA, err := Run(NewConfig(1, 200, 10, 15))
	require.NoError(t, err)
	refB, err := Run(NewConfig(2, 200, 12, 15))
	require.NoError(t, err)

	// WHEN the two configurations run again back to back in the opposite order,
	// with an unrelated run in between
	b, err := Run(NewConfig(2, 200, 12, 15))
	require.NoError(t, err)
	_, err = Run(NewConfig(99, 1000, 20, 15))
	require.NoError(t, err)
	a, err := Run(NewConfig(1, 200, 10, 15))
	require.NoError(t, err)

	// THEN each reproduces its own reference and the two differ from each other
	assert.Equal(t, refA.Trace, a.Trace)
	assert.Equal(t, refB.Trace, b.Trace)
	assert.NotEqual(t, a.Trace, b.Trace)
	assert.Equal(t, refA.Reconciliation, a.Reconciliation)
}

func TestRun_MatchesManualPipeline(t *testing.T) {
	// The three entry points composed by hand give the same result as Run.
	cfg := NewConfig(42, 100, 10, 15)
	res, err := Run(cfg)
	require.NoError(t, err)

	rng := NewPartitionedRNG(NewSimulationKey(42))
	ia, err := rng.Generator(StreamInterarrival).Draw(variate.Exponential(6), 100)
	require.NoError(t, err)
	svc, err := rng.Generator(StreamService).Draw(variate.Exponential(4), 100)
	require.NoError(t, err)
	trace, err := Simulate(ia, svc)
	require.NoError(t, err)
	rec, err := Reconcile(trace, NewRates(10, 15))
	require.NoError(t, err)

	assert.Equal(t, trace, res.Trace)
	assert.Equal(t, rec, res.Reconciliation)
}

func TestRun_InvalidConfig_NoTrace(t *testing.T) {
	res, err := Run(NewConfig(42, 0, 10, 15))
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.Nil(t, res)
}

func TestRun_NegativeDrawnDuration_InvalidVariate(t *testing.T) {
	// GIVEN a service distribution that can go negative
	svc := variate.Normal(0.5, 5)
	cfg := NewConfig(42, 200, 10, 15)
	cfg.Service = &svc

	// WHEN run
	res, err := Run(cfg)

	// THEN it fails fast instead of clamping
	assert.ErrorIs(t, err, ErrInvalidVariate)
	assert.Nil(t, res)
}

func TestRun_ErlangService_SatisfiesInvariants(t *testing.T) {
	svc := variate.Erlang(2, 4)
	cfg := NewConfig(42, 300, 10, 15)
	cfg.Service = &svc

	res, err := Run(cfg)
	require.NoError(t, err)
	assertTraceInvariants(t, res.Trace)
}

func TestRun_Unstable_ReportsWarningNotError(t *testing.T) {
	res, err := Run(NewConfig(42, 300, 20, 15))
	require.NoError(t, err)
	assert.ErrorIs(t, res.Reconciliation.Warning, ErrInstability)
	assertTraceInvariants(t, res.Trace)
}
