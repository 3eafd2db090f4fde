package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mm1Trace runs an M/M/1 configuration and returns its trace.
func mm1Trace(t *testing.T, seed int64, customers int, lambda, mu float64) Trace {
	t.Helper()
	res, err := Run(NewConfig(seed, customers, lambda, mu))
	require.NoError(t, err)
	return res.Trace
}

// mustValue unwraps a defined Value or fails the test.
func mustValue(t *testing.T, v Value) float64 {
	t.Helper()
	x, ok := v.Float64()
	require.True(t, ok, "value is %s, want defined", v)
	return x
}
