package testutil

import (
	"fmt"
	"math"
	"testing"
)

// DefaultTol is the relative tolerance every kernel must meet against the
// scalar reference.
const DefaultTol = 1e-5

// Scale returns the magnitude results over x are compared at: the RMS of
// the samples, or 1 if that is smaller.
func Scale(x []float32) float64 {
	if len(x) == 0 {
		return 1
	}
	var sq float64
	for _, v := range x {
		sq += float64(v) * float64(v)
	}
	return math.Max(1, math.Sqrt(sq/float64(len(x))))
}

// Within reports whether got and want differ by at most tol*scale.
// Two NaNs are considered equal.
func Within(got, want float32, tol, scale float64) bool {
	if math.IsNaN(float64(got)) || math.IsNaN(float64(want)) {
		return math.IsNaN(float64(got)) && math.IsNaN(float64(want))
	}
	return math.Abs(float64(got)-float64(want)) <= tol*scale
}

// RequireMeanStdDev fails t if either result leaves tol relative to the
// scale of x.
func RequireMeanStdDev(t testing.TB, x []float32, gotMean, gotStd, wantMean, wantStd float32, tol float64) {
	t.Helper()
	scale := Scale(x)
	if !Within(gotMean, wantMean, tol, scale) {
		t.Fatalf("n=%d: mean = %v, want %v (tol %g at scale %g)", len(x), gotMean, wantMean, tol, scale)
	}
	if !Within(gotStd, wantStd, tol, scale) {
		t.Fatalf("n=%d: stddev = %v, want %v (tol %g at scale %g)", len(x), gotStd, wantStd, tol, scale)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float32) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
