// Package testutil provides shared assertion helpers for the sim test packages.
// It does not import sim so that in-package tests can use it without a cycle.
package testutil

import (
	"math"
	"testing"
)

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

// AssertNonDecreasing fails if vals ever decreases.
func AssertNonDecreasing(t *testing.T, name string, vals []float64) {
	t.Helper()
	for i := 1; i < len(vals); i++ {
		if vals[i] < vals[i-1] {
			t.Errorf("%s decreases at index %d: %v -> %v", name, i, vals[i-1], vals[i])
			return
		}
	}
}

// AssertAllFinite fails on the first NaN or infinite value.
func AssertAllFinite(t *testing.T, name string, vals map[string]float64) {
	t.Helper()
	for k, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s[%s] = %v, want finite", name, k, v)
		}
	}
}
